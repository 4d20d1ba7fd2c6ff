package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"learnhub/config"

	"github.com/go-resty/resty/v2"
)

// CheckoutSession is the hosted payment page the student is redirected to
type CheckoutSession struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Status string `json:"status"` // open, completed, expired
}

// CreateCheckoutSession asks the payment provider for a hosted checkout page.
// The provider owns the whole payment flow; we only hold the session ID until
// the webhook reports the outcome.
func CreateCheckoutSession(customerEmail, courseTitle string, amountCents int64) (*CheckoutSession, error) {
	client := resty.New()

	var session CheckoutSession
	resp, err := client.R().
		SetHeader("Authorization", "Bearer "+config.AppConfig.CheckoutApiKey).
		SetBody(map[string]interface{}{
			"customer_email": customerEmail,
			"description":    courseTitle,
			"amount_cents":   amountCents,
			"currency":       "usd",
			"return_url":     config.AppConfig.CheckoutReturnURL,
		}).
		SetResult(&session).
		Post(config.AppConfig.CheckoutApiURL + "checkout/sessions")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("checkout provider returned %d: %s", resp.StatusCode(), resp.String())
	}
	if session.ID == "" || session.URL == "" {
		return nil, fmt.Errorf("checkout provider returned an incomplete session")
	}
	return &session, nil
}

// GetCheckoutSession fetches the provider-side state of a session. Used by
// the scheduler to reconcile purchases whose webhook never arrived.
func GetCheckoutSession(sessionID string) (*CheckoutSession, error) {
	client := resty.New()

	var session CheckoutSession
	resp, err := client.R().
		SetHeader("Authorization", "Bearer "+config.AppConfig.CheckoutApiKey).
		SetResult(&session).
		Get(config.AppConfig.CheckoutApiURL + "checkout/sessions/" + sessionID)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("checkout provider returned %d: %s", resp.StatusCode(), resp.String())
	}
	return &session, nil
}

// VerifyWebhookSignature checks the HMAC-SHA256 signature the provider sends
// with every webhook delivery.
func VerifyWebhookSignature(payload []byte, signature string) bool {
	if config.AppConfig.CheckoutSecretKey == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(config.AppConfig.CheckoutSecretKey))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
