package senangpay

import (
	"context"
	"fmt"
	"net/url"

	"github.com/paylinkhq/paylink/internal/config"
	"github.com/paylinkhq/paylink/internal/domain/gateway"
)

// Adapter implements the SenangPay redirect gateway. No server-side call is
// made; the signed URL itself carries the transaction for the provider.
type Adapter struct {
	baseURL    string
	merchantID string
	secretKey  string
}

// NewAdapter creates a new SenangPay adapter
func NewAdapter(cfg config.SenangPayConfig) *Adapter {
	return &Adapter{
		baseURL:    cfg.URL,
		merchantID: cfg.MerchantID,
		secretKey:  cfg.SecretKey,
	}
}

// Name returns the gateway type
func (a *Adapter) Name() gateway.Type {
	return gateway.TypeSenangPay
}

// GenerateURL builds a signed redirect URL for the payment
func (a *Adapter) GenerateURL(ctx context.Context, req gateway.PaymentRequest) (string, error) {
	if a.baseURL == "" || a.merchantID == "" || a.secretKey == "" {
		return "", fmt.Errorf("senangpay url, merchant id or secret key: %w", gateway.ErrConfigurationMissing)
	}

	orderID, err := NewOrderID()
	if err != nil {
		return "", fmt.Errorf("failed to generate order id: %w", err)
	}

	amount := gateway.FormatAmount(req.Amount)
	hash := Sign(a.secretKey, req.Description, amount, orderID)

	params := url.Values{}
	params.Set("detail", req.Description)
	params.Set("amount", amount)
	params.Set("order_id", orderID)
	params.Set("hash", hash)
	params.Set("name", req.Name)
	params.Set("email", req.Email)
	params.Set("phone", req.MobileNumber)

	return fmt.Sprintf("%s/payment/%s?%s", a.baseURL, a.merchantID, params.Encode()), nil
}
