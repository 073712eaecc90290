package senangpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Sign computes the SenangPay transaction hash:
// hex(HMAC-SHA256(secretKey, secretKey + description + amount + orderID)).
// The amount must already be formatted with two decimal places; the
// concatenation order must match the provider's signing scheme exactly.
func Sign(secretKey, description, amount, orderID string) string {
	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write([]byte(secretKey + description + amount + orderID))
	return hex.EncodeToString(mac.Sum(nil))
}
