package billplz

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"sort"
)

// VerifySignature checks a callback's x_signature against
// HMAC-SHA256(key, "k1|v1|k2|v2|...") over the payload fields sorted by
// name, excluding x_signature itself.
func VerifySignature(payload map[string]string, xSignature, key string) bool {
	keys := make([]string, 0, len(payload))
	for k := range payload {
		if k == "x_signature" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	mac := hmac.New(sha256.New, []byte(key))
	for i, k := range keys {
		if i > 0 {
			mac.Write([]byte("|"))
		}
		mac.Write([]byte(k + "|" + payload[k]))
	}

	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(xSignature))
}
