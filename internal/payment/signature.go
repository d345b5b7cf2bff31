package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"promotube-be/internal/logger"
)

// hmacHex computes the hex HMAC-SHA256 digest of message under key.
func hmacHex(key string, message []byte) string {
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write(message)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyPaymentSignature authenticates a checkout callback. The provider
// signs "orderID|paymentID" with the key secret; anything the client could
// have tampered with flips the result to false. A returned error means the
// request was malformed, never that the signature was wrong.
func (g *razorpayGateway) VerifyPaymentSignature(req VerificationRequest) (bool, error) {
	if !g.configured() {
		return false, ErrNotConfigured
	}
	if req.OrderID == "" || req.PaymentID == "" || req.Signature == "" {
		return false, ErrMissingParameters
	}

	expected := hmacHex(g.keySecret, []byte(req.OrderID+"|"+req.PaymentID))

	// Constant-time compare, attacker-observable timing must not leak a prefix.
	return hmac.Equal([]byte(expected), []byte(req.Signature)), nil
}

// VerifyWebhookSignature authenticates a webhook delivery. The HMAC is keyed
// by the separate webhook secret and computed over the exact raw body bytes;
// re-serializing the JSON would invalidate it.
func (g *razorpayGateway) VerifyWebhookSignature(rawBody []byte, signatureHeader string) bool {
	if g.webhookSecret == "" {
		logger.L().Warn("webhook secret not configured, rejecting webhook")
		return false
	}
	if signatureHeader == "" {
		return false
	}

	expected := hmacHex(g.webhookSecret, rawBody)
	return hmac.Equal([]byte(expected), []byte(signatureHeader))
}
