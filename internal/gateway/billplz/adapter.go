package billplz

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/paylinkhq/paylink/internal/config"
	"github.com/paylinkhq/paylink/internal/domain/gateway"
)

// Adapter implements the Billplz bill-creation gateway
type Adapter struct {
	baseURL        string
	collectionCode string
	merchantID     string
	callbackURL    string
	httpClient     *http.Client
}

// NewAdapter creates a new Billplz adapter
func NewAdapter(cfg config.BillplzConfig) *Adapter {
	return &Adapter{
		baseURL:        cfg.URL,
		collectionCode: cfg.CollectionCode,
		merchantID:     cfg.MerchantID,
		callbackURL:    cfg.CallbackURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Name returns the gateway type
func (a *Adapter) Name() gateway.Type {
	return gateway.TypeBillplz
}

// GenerateURL creates a bill and returns its hosted URL
func (a *Adapter) GenerateURL(ctx context.Context, req gateway.PaymentRequest) (string, error) {
	if a.baseURL == "" || a.merchantID == "" {
		return "", fmt.Errorf("billplz url or merchant id: %w", gateway.ErrConfigurationMissing)
	}

	payload := map[string]interface{}{
		"collection_id":     a.collectionCode,
		"email":             req.Email,
		"mobile":            req.MobileNumber,
		"name":              req.Name,
		"amount":            gateway.MinorUnits(req.Amount),
		"callback_url":      a.callbackURL,
		"description":       req.Description,
		"reference_1_label": "",
		"reference_1":       "",
		"reference_2_label": "",
		"reference_2":       "",
	}

	resp, err := a.doRequest(ctx, "/bills", payload)
	if err != nil {
		return "", err
	}

	url, ok := resp["url"].(string)
	if !ok || url == "" {
		return "", fmt.Errorf("billplz response missing bill url")
	}

	return url, nil
}

// doRequest makes an HTTP request to the Billplz API
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

	// Billplz authenticates with the API key as a base64 basic credential
	auth := base64.StdEncoding.EncodeToString([]byte(a.merchantID))
	req.Header.Set("Authorization", "Basic "+auth)

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
		if e, ok := errResp["error"].(map[string]interface{}); ok {
			if msg, ok := e["message"].(string); ok {
				errMsg = msg
			}
		}
		return nil, fmt.Errorf("billplz error (%d): %s", resp.StatusCode, errMsg)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return result, nil
}
