package packages

import (
	"context"
	"database/sql"
	"errors"
)

type Repository interface {
	List(ctx context.Context) ([]*Package, error)
	GetByID(ctx context.Context, id uint) (*Package, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]*Package, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, description, views, price, currency, active, created_at
		FROM promo_packages WHERE active = true ORDER BY price
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*Package
	for rows.Next() {
		var p Package
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Views,
			&p.Price, &p.Currency, &p.Active, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &p)
	}
	return result, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Package, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, description, views, price, currency, active, created_at
		FROM promo_packages WHERE id = $1
	`, id)

	var p Package
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Views,
		&p.Price, &p.Currency, &p.Active, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPackageNotFound
		}
		return nil, err
	}
	return &p, nil
}
