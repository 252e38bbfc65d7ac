package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// GenerateSignature returns the lowercase hex HMAC-SHA256 of
// "orderID|paymentID" keyed by secret, the value Razorpay hands the client
// after a successful checkout.
func GenerateSignature(orderID, paymentID, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(h.Sum(nil))
}

// VerifySignature reports whether signature authenticates the order/payment
// pair. The comparison runs in constant time.
func VerifySignature(orderID, paymentID, signature, secret string) bool {
	expected := GenerateSignature(orderID, paymentID, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}
