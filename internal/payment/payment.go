package payment

import "context"

// Gateway is the adapter boundary to the payment provider. The provider is
// the source of truth for order, payment and refund state; the adapter never
// retries and never mutates local state.
type Gateway interface {
	CreateOrder(ctx context.Context, amount float64, currency, receipt string, notes map[string]string) (*Order, error)
	FetchOrder(ctx context.Context, orderID string) (*Order, error)
	FetchPayment(ctx context.Context, paymentID string) (*Payment, error)
	CreateRefund(ctx context.Context, req RefundRequest) (*Refund, error)
	FetchRefund(ctx context.Context, paymentID, refundID string) (*Refund, error)
	VerifyPaymentSignature(req VerificationRequest) (bool, error)
	VerifyWebhookSignature(rawBody []byte, signatureHeader string) bool
	KeyID() string
}
