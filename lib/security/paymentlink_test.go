package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var secret = []byte("test-payment-link-secret")

func TestSignatureIsDeterministic(t *testing.T) {
	a := GeneratePaymentSignature(1, 42, "pay_abcdef0123456789", secret)
	b := GeneratePaymentSignature(1, 42, "pay_abcdef0123456789", secret)
	assert.Equal(t, a, b)
	assert.Len(t, a, 64) // hex encoded sha256
}

func TestSignatureBindsEveryField(t *testing.T) {
	base := GeneratePaymentSignature(1, 42, "pay_abcdef0123456789", secret)

	assert.NotEqual(t, base, GeneratePaymentSignature(2, 42, "pay_abcdef0123456789", secret))
	assert.NotEqual(t, base, GeneratePaymentSignature(1, 43, "pay_abcdef0123456789", secret))
	assert.NotEqual(t, base, GeneratePaymentSignature(1, 42, "pay_abcdef0123456788", secret))
	assert.NotEqual(t, base, GeneratePaymentSignature(1, 42, "pay_abcdef0123456789", []byte("other-secret")))
}

func TestVerifyPaymentSignature(t *testing.T) {
	sig := GeneratePaymentSignature(7, 99, "pay_deadbeefcafe0123", secret)

	assert.True(t, VerifyPaymentSignature(7, 99, "pay_deadbeefcafe0123", sig, secret))
	assert.False(t, VerifyPaymentSignature(8, 99, "pay_deadbeefcafe0123", sig, secret))
	assert.False(t, VerifyPaymentSignature(7, 99, "pay_deadbeefcafe0123", "", secret))

	// a single flipped character must fail
	mutated := []byte(sig)
	if mutated[0] == 'a' {
		mutated[0] = 'b'
	} else {
		mutated[0] = 'a'
	}
	assert.False(t, VerifyPaymentSignature(7, 99, "pay_deadbeefcafe0123", string(mutated), secret))
}
