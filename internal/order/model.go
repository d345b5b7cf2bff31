package order

import "time"

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusPaid     Status = "PAID"
	StatusFailed   Status = "FAILED"
	StatusRefunded Status = "REFUNDED"
)

// Order is a promotion purchase: a package applied to a YouTube video.
// Amounts are major currency units; the payment record keeps minor units.
type Order struct {
	ID                uint      `json:"id"`
	UserID            uint      `json:"user_id"`
	PackageID         uint      `json:"package_id"`
	VideoURL          string    `json:"video_url"`
	VideoID           string    `json:"video_id"`
	BaseAmount        float64   `json:"base_amount"`
	GSTAmount         float64   `json:"gst_amount"`
	TotalAmount       float64   `json:"total_amount"`
	Currency          string    `json:"currency"`
	ReceiptID         string    `json:"receipt_id"`
	InvoiceNo         string    `json:"invoice_no"`
	ProviderOrderID   string    `json:"provider_order_id"`
	ProviderPaymentID string    `json:"provider_payment_id,omitempty"`
	RefundID          string    `json:"refund_id,omitempty"`
	Status            Status    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
