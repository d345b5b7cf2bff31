package payment

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// Record is the local mirror of a provider order, enough to reconcile
// checkout state. The provider remains the source of truth.
type Record struct {
	ID                int64
	OrderID           uint
	ProviderOrderID   string
	ProviderPaymentID string
	AmountMinor       int64
	Currency          string
	Status            string
	InvoiceNo         string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type Repository interface {
	SavePayment(ctx context.Context, rec *Record) error
	UpdateStatusByProviderOrderID(ctx context.Context, providerOrderID, status, providerPaymentID string) error
	GetByProviderOrderID(ctx context.Context, providerOrderID string) (*Record, error)

	SavePaymentWebhook(
		ctx context.Context,
		provider string,
		eventID string,
		eventType string,
		providerOrderID string,
		payload json.RawMessage,
		signatureValid bool,
	) (webhookID int64, isDuplicate bool, err error)

	MarkWebhookProcessed(ctx context.Context, webhookID int64) error
	MarkWebhookFailed(ctx context.Context, webhookID int64, reason string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) SavePayment(ctx context.Context, rec *Record) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO payments (order_id,
		provider_order_id,
		amount_minor,
		currency,
		status,
		invoice_no,
		provider)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		rec.OrderID, rec.ProviderOrderID, rec.AmountMinor, rec.Currency,
		rec.Status, rec.InvoiceNo, "RAZORPAY",
	)
	return err
}

func (r *repository) UpdateStatusByProviderOrderID(ctx context.Context, providerOrderID, status, providerPaymentID string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE payments
		SET status = $1, provider_payment_id = NULLIF($2, ''), updated_at = now()
		WHERE provider_order_id = $3
	`, status, providerPaymentID, providerOrderID)
	return err
}

func (r *repository) GetByProviderOrderID(ctx context.Context, providerOrderID string) (*Record, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, order_id, provider_order_id, COALESCE(provider_payment_id, ''),
		       amount_minor, currency, status, invoice_no, created_at, updated_at
		FROM payments WHERE provider_order_id = $1
	`, providerOrderID)

	var rec Record
	err := row.Scan(
		&rec.ID, &rec.OrderID, &rec.ProviderOrderID, &rec.ProviderPaymentID,
		&rec.AmountMinor, &rec.Currency, &rec.Status, &rec.InvoiceNo,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *repository) SavePaymentWebhook(
	ctx context.Context,
	provider string,
	eventID string,
	eventType string,
	providerOrderID string,
	payload json.RawMessage,
	signatureValid bool,
) (int64, bool, error) {

	const q = `
	INSERT INTO payment_webhooks (
		provider,
		event_type,
		event_id,
		provider_order_id,
		signature_valid,
		payload
	)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (provider, event_id)
	DO NOTHING
	RETURNING id;
	`

	var id int64
	err := r.db.QueryRowContext(
		ctx,
		q,
		provider,
		eventType,
		eventID,
		providerOrderID,
		signatureValid,
		payload,
	).Scan(&id)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Already stored. A processed event is an idempotent success;
			// one whose processing failed earlier is handed back so the
			// provider's redelivery actually reprocesses it.
			var processed bool
			err := r.db.QueryRowContext(ctx, `
				SELECT id, processed_at IS NOT NULL
				FROM payment_webhooks
				WHERE provider = $1 AND event_id = $2
			`, provider, eventID).Scan(&id, &processed)
			if err != nil {
				return 0, false, err
			}
			return id, processed, nil
		}
		return 0, false, err
	}

	return id, false, nil
}

func (r *repository) MarkWebhookProcessed(ctx context.Context, webhookID int64) error {
	const q = `
	UPDATE payment_webhooks
	SET processed_at = now(), process_error = NULL
	WHERE id = $1;
	`

	_, err := r.db.ExecContext(ctx, q, webhookID)
	return err
}

func (r *repository) MarkWebhookFailed(ctx context.Context, webhookID int64, reason string) error {
	const q = `
	UPDATE payment_webhooks
	SET process_error = $2
	WHERE id = $1;
	`

	_, err := r.db.ExecContext(ctx, q, webhookID, reason)
	return err
}
