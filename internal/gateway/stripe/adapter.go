package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/paylinkhq/paylink/internal/config"
	"github.com/paylinkhq/paylink/internal/domain/gateway"
)

// Country selects a Stripe credential set and its checkout currency
type Country string

const (
	CountryMY Country = "my"
	CountrySG Country = "sg"
)

// Adapter implements the Stripe checkout gateway for one country.
// The MY and SG variants share all logic and differ only in currency
// and credentials, so the registry carries one instance per country.
type Adapter struct {
	apiURL     string
	country    Country
	currency   string
	secretKey  string
	successURL string
	cancelURL  string
	httpClient *http.Client
}

// NewAdapter creates a new Stripe adapter for the given country
func NewAdapter(cfg config.StripeConfig, country Country) *Adapter {
	creds := cfg.MY
	currency := "myr"
	if country == CountrySG {
		creds = cfg.SG
		currency = "sgd"
	}

	return &Adapter{
		apiURL:     cfg.APIURL,
		country:    country,
		currency:   currency,
		secretKey:  creds.SecretKey,
		successURL: creds.SuccessURL,
		cancelURL:  creds.CallbackURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Name returns the gateway type
func (a *Adapter) Name() gateway.Type {
	if a.country == CountrySG {
		return gateway.TypeStripeSG
	}
	return gateway.TypeStripeMY
}

// GenerateURL creates a customer and a checkout session, returning the
// session's hosted URL
func (a *Adapter) GenerateURL(ctx context.Context, req gateway.PaymentRequest) (string, error) {
	if a.apiURL == "" || a.secretKey == "" {
		return "", fmt.Errorf("stripe %s api url or secret key: %w", a.country, gateway.ErrConfigurationMissing)
	}

	customerID, err := a.createCustomer(ctx, req)
	if err != nil {
		return "", err
	}

	return a.createCheckoutSession(ctx, req, customerID)
}

// createCustomer creates a Stripe customer for the payer
func (a *Adapter) createCustomer(ctx context.Context, req gateway.PaymentRequest) (string, error) {
	form := url.Values{}
	form.Set("name", req.Name)
	form.Set("email", req.Email)
	form.Set("phone", req.MobileNumber)

	resp, err := a.doRequest(ctx, "/v1/customers", form)
	if err != nil {
		return "", err
	}

	id, _ := resp["id"].(string)
	return id, nil
}

// createCheckoutSession creates a single line-item checkout session in
// payment mode
func (a *Adapter) createCheckoutSession(ctx context.Context, req gateway.PaymentRequest, customerID string) (string, error) {
	form := url.Values{}
	form.Set("line_items[0][price_data][currency]", a.currency)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(gateway.MinorUnits(req.Amount), 10))
	form.Set("line_items[0][price_data][product_data][name]", req.Description)
	form.Set("line_items[0][quantity]", "1")
	form.Set("mode", "payment")
	form.Set("success_url", a.successURL)
	form.Set("cancel_url", a.cancelURL)
	form.Set("currency", a.currency)
	form.Set("customer_email", req.Email)
	if customerID != "" {
		form.Set("customer", customerID)
		form.Del("customer_email") // Stripe rejects both on one session
	}

	resp, err := a.doRequest(ctx, "/v1/checkout/sessions", form)
	if err != nil {
		return "", err
	}

	sessionURL, ok := resp["url"].(string)
	if !ok || sessionURL == "" {
		return "", fmt.Errorf("stripe response missing session url")
	}

	return sessionURL, nil
}

// doRequest makes a form-encoded HTTP request to the Stripe API
func (a *Adapter) doRequest(ctx context.Context, endpoint string, form url.Values) (map[string]interface{}, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", a.apiURL+endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
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
		if e, ok := errResp["error"].(map[string]interface{}); ok {
			if msg, ok := e["message"].(string); ok {
				errMsg = msg
			}
		}
		return nil, fmt.Errorf("stripe error (%d): %s", resp.StatusCode, errMsg)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return result, nil
}
