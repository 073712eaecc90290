package billplz

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paylinkhq/paylink/internal/config"
	"github.com/paylinkhq/paylink/internal/domain/gateway"
)

func TestAdapterGenerateURL(t *testing.T) {
	var gotPath, gotAuth string
	var gotPayload map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotPayload)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":  "bill_abc",
			"url": "https://www.billplz.com/bills/bill_abc",
		})
	}))
	defer srv.Close()

	adapter := NewAdapter(config.BillplzConfig{
		URL:            srv.URL,
		CollectionCode: "coll_1",
		MerchantID:     "key_123",
		CallbackURL:    "https://example.com/api/payment/callback/billplz",
	})

	url, err := adapter.GenerateURL(context.Background(), gateway.PaymentRequest{
		Name:         "Jane Lim",
		Email:        "jane@example.com",
		MobileNumber: "0123456789",
		Amount:       19.995,
		Description:  "Donation",
	})
	require.NoError(t, err)

	assert.Equal(t, "https://www.billplz.com/bills/bill_abc", url)
	assert.Equal(t, "/bills", gotPath)
	assert.Equal(t, "Basic "+base64.StdEncoding.EncodeToString([]byte("key_123")), gotAuth)

	assert.Equal(t, "coll_1", gotPayload["collection_id"])
	assert.Equal(t, "jane@example.com", gotPayload["email"])
	assert.Equal(t, "0123456789", gotPayload["mobile"])
	assert.Equal(t, "Jane Lim", gotPayload["name"])
	assert.Equal(t, float64(2000), gotPayload["amount"])
	assert.Equal(t, "https://example.com/api/payment/callback/billplz", gotPayload["callback_url"])
	assert.Equal(t, "Donation", gotPayload["description"])
	assert.Equal(t, "", gotPayload["reference_1"])
}

func TestAdapterGenerateURLProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]interface{}{"message": "Email is invalid"},
		})
	}))
	defer srv.Close()

	adapter := NewAdapter(config.BillplzConfig{URL: srv.URL, MerchantID: "key_123"})

	url, err := adapter.GenerateURL(context.Background(), gateway.PaymentRequest{Amount: 10})
	assert.Error(t, err)
	assert.Empty(t, url)
	assert.Contains(t, err.Error(), "Email is invalid")
}

func TestAdapterGenerateURLMissingConfig(t *testing.T) {
	adapter := NewAdapter(config.BillplzConfig{})

	_, err := adapter.GenerateURL(context.Background(), gateway.PaymentRequest{Amount: 10})
	assert.True(t, errors.Is(err, gateway.ErrConfigurationMissing))
}

func TestAdapterGenerateURLMissingBillURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"id": "bill_abc"})
	}))
	defer srv.Close()

	adapter := NewAdapter(config.BillplzConfig{URL: srv.URL, MerchantID: "key_123"})

	_, err := adapter.GenerateURL(context.Background(), gateway.PaymentRequest{Amount: 10})
	assert.Error(t, err)
}
