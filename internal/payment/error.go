package payment

import (
	"errors"
	"fmt"
)

var (
	ErrNotConfigured     = errors.New("payment gateway not configured")
	ErrInvalidAmount     = errors.New("amount must be greater than zero")
	ErrMissingParameters = errors.New("order id, payment id and signature are required")
	ErrMissingPaymentID  = errors.New("payment id is required")
)

// ProviderError wraps any provider-side rejection, preserving the provider's
// message. Rejections such as "already refunded" are expected outcomes for
// the caller, not adapter failures.
type ProviderError struct {
	Status  int
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("razorpay error (status %d): %s", e.Status, e.Message)
}
