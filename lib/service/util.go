package service

import (
	"crypto/rand"
	"encoding/hex"
)

// makePaymentID returns an unguessable opaque payment token.
func makePaymentID() (string, error) {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return "pay_" + hex.EncodeToString(b), nil
}
