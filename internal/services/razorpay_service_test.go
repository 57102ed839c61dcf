package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func signHMAC(secret, data string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}

func TestIsEnabled(t *testing.T) {
	assert.True(t, NewRazorpayService("key", "secret", "", nil, nil).IsEnabled())
	assert.False(t, NewRazorpayService("", "secret", "", nil, nil).IsEnabled())
	assert.False(t, NewRazorpayService("key", "", "", nil, nil).IsEnabled())
}

func TestVerifySignature(t *testing.T) {
	s := NewRazorpayService("key", "secret", "", nil, nil)

	valid := signHMAC("secret", "order_abc|pay_xyz")
	assert.True(t, s.verifySignature("order_abc", "pay_xyz", valid))
	assert.False(t, s.verifySignature("order_abc", "pay_xyz", "tampered"))
	assert.False(t, s.verifySignature("order_other", "pay_xyz", valid))
}

func TestVerifySignatureWithoutSecret(t *testing.T) {
	s := NewRazorpayService("key", "", "", nil, nil)
	assert.False(t, s.verifySignature("order_abc", "pay_xyz", signHMAC("", "order_abc|pay_xyz")))
}

func TestVerifyWebhookSignature(t *testing.T) {
	s := NewRazorpayService("key", "secret", "whsecret", nil, nil)

	body := []byte(`{"event":"payment.captured"}`)
	assert.True(t, s.VerifyWebhookSignature(body, signHMAC("whsecret", string(body))))
	assert.False(t, s.VerifyWebhookSignature(body, "bad"))
}

func TestVerifyWebhookSignatureSkippedWhenUnconfigured(t *testing.T) {
	s := NewRazorpayService("key", "secret", "", nil, nil)
	assert.True(t, s.VerifyWebhookSignature([]byte("anything"), "whatever"))
}

func TestGetPaymentStatus(t *testing.T) {
	status := NewRazorpayService("rzp_test_123", "secret", "", nil, nil).GetPaymentStatus()
	assert.True(t, status.Enabled)
	assert.Equal(t, "rzp_test_123", status.KeyID)

	status = NewRazorpayService("", "", "", nil, nil).GetPaymentStatus()
	assert.False(t, status.Enabled)
}
