package chip

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/paylinkhq/paylink/internal/config"
	"github.com/paylinkhq/paylink/internal/domain/gateway"
)

// Adapter implements the Chip purchase-creation gateway
type Adapter struct {
	baseURL     string
	brandID     string
	secretKey   string
	successURL  string
	cancelURL   string
	callbackURL string
	httpClient  *http.Client
}

// NewAdapter creates a new Chip adapter
func NewAdapter(cfg config.ChipConfig) *Adapter {
	return &Adapter{
		baseURL:     cfg.URL,
		brandID:     cfg.BrandID,
		secretKey:   cfg.SecretKey,
		successURL:  cfg.SuccessURL,
		cancelURL:   cfg.CancelURL,
		callbackURL: cfg.CallbackURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Name returns the gateway type
func (a *Adapter) Name() gateway.Type {
	return gateway.TypeChip
}

// GenerateURL creates a purchase and returns its checkout URL
func (a *Adapter) GenerateURL(ctx context.Context, req gateway.PaymentRequest) (string, error) {
	if a.baseURL == "" || a.brandID == "" || a.secretKey == "" {
		return "", fmt.Errorf("chip url, brand id or secret key: %w", gateway.ErrConfigurationMissing)
	}

	payload := map[string]interface{}{
		"brand_id": a.brandID,
		"client": map[string]interface{}{
			"email":     req.Email,
			"phone":     req.MobileNumber,
			"full_name": req.Name,
		},
		"purchase": map[string]interface{}{
			"products": []map[string]interface{}{
				{
					"name":  req.Description,
					"price": gateway.MinorUnits(req.Amount),
				},
			},
		},
		"success_redirect": a.successURL,
		"failure_redirect": a.cancelURL,
		"success_callback": a.callbackURL,
	}

	resp, err := a.doRequest(ctx, "/purchases/", payload)
	if err != nil {
		return "", err
	}

	checkoutURL, ok := resp["checkout_url"].(string)
	if !ok || checkoutURL == "" {
		return "", fmt.Errorf("chip response missing checkout_url")
	}

	return checkoutURL, nil
}

// doRequest makes an HTTP request to the Chip API
func (a *Adapter) doRequest(ctx context.Context, endpoint string, body interface{}) (map[string]interface{}, error) {
	url := a.baseURL + endpoint

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.secretKey)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp map[string]interface{}
		json.Unmarshal(respBody, &errResp)
		errMsg := "Unknown error"
		if msg, ok := errResp["message"].(string); ok {
			errMsg = msg
		}
		return nil, fmt.Errorf("chip error (%d): %s", resp.StatusCode, errMsg)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return result, nil
}
