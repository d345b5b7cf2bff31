package payment

// Order mirrors the provider's order entity. Amounts are integer minor
// currency units (paise for INR).
type Order struct {
	ID         string            `json:"id"`
	Entity     string            `json:"entity"`
	Amount     int64             `json:"amount"`
	AmountPaid int64             `json:"amount_paid"`
	AmountDue  int64             `json:"amount_due"`
	Currency   string            `json:"currency"`
	Receipt    string            `json:"receipt"`
	Status     string            `json:"status"`
	Attempts   int               `json:"attempts"`
	Notes      map[string]string `json:"notes,omitempty"`
	CreatedAt  int64             `json:"created_at"`
}

type Payment struct {
	ID               string `json:"id"`
	Entity           string `json:"entity"`
	Amount           int64  `json:"amount"`
	Currency         string `json:"currency"`
	Status           string `json:"status"`
	OrderID          string `json:"order_id"`
	Method           string `json:"method"`
	Captured         bool   `json:"captured"`
	Email            string `json:"email,omitempty"`
	Contact          string `json:"contact,omitempty"`
	ErrorCode        string `json:"error_code,omitempty"`
	ErrorDescription string `json:"error_description,omitempty"`
	CreatedAt        int64  `json:"created_at"`
}

type Refund struct {
	ID             string            `json:"id"`
	Entity         string            `json:"entity"`
	Amount         int64             `json:"amount"`
	Currency       string            `json:"currency"`
	PaymentID      string            `json:"payment_id"`
	Status         string            `json:"status"`
	SpeedRequested string            `json:"speed_requested,omitempty"`
	SpeedProcessed string            `json:"speed_processed,omitempty"`
	Notes          map[string]string `json:"notes,omitempty"`
	CreatedAt      int64             `json:"created_at"`
}

// VerificationRequest is what the checkout widget posts back after payment.
// Consumed exactly once; all fields are required.
type VerificationRequest struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}

const (
	RefundSpeedNormal    = "normal"
	RefundSpeedExpedited = "optimum"
)

// RefundRequest describes a refund against a captured payment. A nil Amount
// means full refund; the amount is in major units and converted on the wire.
type RefundRequest struct {
	PaymentID string
	Amount    *float64
	Speed     string
	Notes     map[string]string
}
