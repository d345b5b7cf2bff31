package order

import (
	"context"
	"database/sql"
	"errors"
)

type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id uint) (*Order, error)
	GetByProviderOrderID(ctx context.Context, providerOrderID string) (*Order, error)
	UpdateStatusByProviderOrderID(ctx context.Context, providerOrderID string, status Status, providerPaymentID string) error
	MarkRefunded(ctx context.Context, id uint, refundID string) error
	ListByUser(ctx context.Context, userID uint) ([]*Order, error)
	ListAll(ctx context.Context) ([]*Order, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `id, user_id, package_id, video_url, video_id,
	base_amount, gst_amount, total_amount, currency,
	receipt_id, invoice_no, provider_order_id,
	COALESCE(provider_payment_id, ''), COALESCE(refund_id, ''),
	status, created_at, updated_at`

func (r *repository) Create(ctx context.Context, o *Order) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO orders (user_id, package_id, video_url, video_id,
			base_amount, gst_amount, total_amount, currency,
			receipt_id, invoice_no, provider_order_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at
	`,
		o.UserID, o.PackageID, o.VideoURL, o.VideoID,
		o.BaseAmount, o.GSTAmount, o.TotalAmount, o.Currency,
		o.ReceiptID, o.InvoiceNo, o.ProviderOrderID, o.Status,
	).Scan(&o.ID, &o.CreatedAt)
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Order, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
}

func (r *repository) GetByProviderOrderID(ctx context.Context, providerOrderID string) (*Order, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE provider_order_id = $1`, providerOrderID))
}

func (r *repository) UpdateStatusByProviderOrderID(ctx context.Context, providerOrderID string, status Status, providerPaymentID string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET status = $1, provider_payment_id = NULLIF($2, ''), updated_at = now()
		WHERE provider_order_id = $3
	`, status, providerPaymentID, providerOrderID)
	return err
}

func (r *repository) MarkRefunded(ctx context.Context, id uint, refundID string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET status = $1, refund_id = $2, updated_at = now()
		WHERE id = $3
	`, StatusRefunded, refundID, id)
	return err
}

func (r *repository) ListByUser(ctx context.Context, userID uint) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	return r.scanAll(rows)
}

func (r *repository) ListAll(ctx context.Context) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return r.scanAll(rows)
}

func (r *repository) scanOne(row *sql.Row) (*Order, error) {
	var o Order
	err := row.Scan(
		&o.ID, &o.UserID, &o.PackageID, &o.VideoURL, &o.VideoID,
		&o.BaseAmount, &o.GSTAmount, &o.TotalAmount, &o.Currency,
		&o.ReceiptID, &o.InvoiceNo, &o.ProviderOrderID,
		&o.ProviderPaymentID, &o.RefundID,
		&o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *repository) scanAll(rows *sql.Rows) ([]*Order, error) {
	defer rows.Close()

	var result []*Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(
			&o.ID, &o.UserID, &o.PackageID, &o.VideoURL, &o.VideoID,
			&o.BaseAmount, &o.GSTAmount, &o.TotalAmount, &o.Currency,
			&o.ReceiptID, &o.InvoiceNo, &o.ProviderOrderID,
			&o.ProviderPaymentID, &o.RefundID,
			&o.Status, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &o)
	}
	return result, rows.Err()
}
