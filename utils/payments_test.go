package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"learnhub/config"

	"github.com/stretchr/testify/assert"
)

func TestVerifyWebhookSignature(t *testing.T) {
	config.AppConfig = &config.Config{CheckoutSecretKey: "whsec-test"}

	payload := []byte(`{"session_id":"sess_1","event":"checkout.completed"}`)
	mac := hmac.New(sha256.New, []byte("whsec-test"))
	mac.Write(payload)
	signature := hex.EncodeToString(mac.Sum(nil))

	assert.True(t, VerifyWebhookSignature(payload, signature))
	assert.False(t, VerifyWebhookSignature(payload, "tampered"))
	assert.False(t, VerifyWebhookSignature([]byte(`{"other":"body"}`), signature))
	assert.False(t, VerifyWebhookSignature(payload, ""))
}

func TestVerifyWebhookSignatureNoSecret(t *testing.T) {
	config.AppConfig = &config.Config{CheckoutSecretKey: ""}
	assert.False(t, VerifyWebhookSignature([]byte("payload"), "anything"))
}
