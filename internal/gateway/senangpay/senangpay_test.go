package senangpay

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paylinkhq/paylink/internal/config"
	"github.com/paylinkhq/paylink/internal/domain/gateway"
)

func TestSign(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		a := Sign("secret", "Donation", "10.00", "2023010112345678901")
		b := Sign("secret", "Donation", "10.00", "2023010112345678901")
		assert.Equal(t, a, b)
	})

	t.Run("matches hmac over concatenated fields", func(t *testing.T) {
		mac := hmac.New(sha256.New, []byte("secret"))
		mac.Write([]byte("secret" + "Donation" + "10.00" + "2023010112345678901"))
		want := hex.EncodeToString(mac.Sum(nil))

		assert.Equal(t, want, Sign("secret", "Donation", "10.00", "2023010112345678901"))
	})

	t.Run("different key changes hash", func(t *testing.T) {
		a := Sign("secret-a", "Donation", "10.00", "2023010112345678901")
		b := Sign("secret-b", "Donation", "10.00", "2023010112345678901")
		assert.NotEqual(t, a, b)
	})

	t.Run("different amount changes hash", func(t *testing.T) {
		a := Sign("secret", "Donation", "10.00", "2023010112345678901")
		b := Sign("secret", "Donation", "10.01", "2023010112345678901")
		assert.NotEqual(t, a, b)
	})
}

func TestNewOrderID(t *testing.T) {
	t.Run("format", func(t *testing.T) {
		id, err := NewOrderID()
		require.NoError(t, err)

		assert.Regexp(t, regexp.MustCompile(`^\d{19}$`), id)
		assert.True(t, strings.HasPrefix(id, time.Now().Format("20060102")))
	})

	t.Run("unique across calls", func(t *testing.T) {
		a, err := NewOrderID()
		require.NoError(t, err)
		b, err := NewOrderID()
		require.NoError(t, err)

		assert.NotEqual(t, a, b)
	})
}

func TestAdapterGenerateURL(t *testing.T) {
	adapter := NewAdapter(config.SenangPayConfig{
		URL:        "https://app.senangpay.my",
		MerchantID: "merchant123",
		SecretKey:  "sk_test",
	})

	raw, err := adapter.GenerateURL(context.Background(), gateway.PaymentRequest{
		Name:         "Jane Lim",
		Email:        "jane@example.com",
		MobileNumber: "0123456789",
		Amount:       10,
		Description:  "Donation",
	})
	require.NoError(t, err)

	parsed, err := url.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "app.senangpay.my", parsed.Host)
	assert.Equal(t, "/payment/merchant123", parsed.Path)

	params := parsed.Query()
	assert.Equal(t, "10.00", params.Get("amount"))
	assert.Equal(t, "Donation", params.Get("detail"))
	assert.Equal(t, "Jane Lim", params.Get("name"))
	assert.Equal(t, "jane@example.com", params.Get("email"))
	assert.Equal(t, "0123456789", params.Get("phone"))
	assert.Regexp(t, regexp.MustCompile(`^\d{19}$`), params.Get("order_id"))

	// The hash must be recomputable from the URL's own fields
	want := Sign("sk_test", params.Get("detail"), params.Get("amount"), params.Get("order_id"))
	assert.Equal(t, want, params.Get("hash"))
}

func TestAdapterGenerateURLMissingConfig(t *testing.T) {
	adapter := NewAdapter(config.SenangPayConfig{URL: "https://app.senangpay.my"})

	_, err := adapter.GenerateURL(context.Background(), gateway.PaymentRequest{Amount: 10})
	assert.True(t, errors.Is(err, gateway.ErrConfigurationMissing))
}
