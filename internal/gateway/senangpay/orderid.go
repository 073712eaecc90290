package senangpay

import (
	"crypto/rand"
	"fmt"
	"time"
)

const randomDigits = 11

// NewOrderID produces a merchant-assigned order id of the form
// YYYYMMDD followed by 11 random decimal digits.
func NewOrderID() (string, error) {
	buf := make([]byte, randomDigits)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	digits := make([]byte, randomDigits)
	for i, b := range buf {
		digits[i] = '0' + b%10
	}

	return time.Now().Format("20060102") + string(digits), nil
}
