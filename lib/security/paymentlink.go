package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// GeneratePaymentSignature returns the hex HMAC-SHA256 digest binding a
// payment token to the user and expense it was issued for. The digest is
// deterministic: the same tuple and secret always produce the same signature.
func GeneratePaymentSignature(userID, expenseID int64, paymentUID string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	fmt.Fprintf(mac, "%d:%d:%s", userID, expenseID, paymentUID)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyPaymentSignature recomputes the expected digest and compares in
// constant time.
func VerifyPaymentSignature(userID, expenseID int64, paymentUID, providedSignature string, secret []byte) bool {
	expected := GeneratePaymentSignature(userID, expenseID, paymentUID, secret)
	return hmac.Equal([]byte(expected), []byte(providedSignature))
}
