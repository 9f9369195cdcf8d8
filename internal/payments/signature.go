package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Signature computes the gateway callback signature: hex-encoded
// HMAC-SHA256 over "orderID|paymentID" with the shared key secret.
func Signature(orderID, paymentID string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature reports whether the supplied signature matches the
// expected one for the order/payment pair. The comparison is constant-time
// and accepts only the exact full hex digest.
func VerifySignature(orderID, paymentID, signature string, secret []byte) bool {
	expected := Signature(orderID, paymentID, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}
