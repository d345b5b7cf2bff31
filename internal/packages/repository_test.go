package packages

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func packageRows() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "name", "description", "views", "price", "currency", "active", "created_at",
	}).
		AddRow(int64(1), "Starter", "5k views", 5000, 999.0, "INR", true, now).
		AddRow(int64(2), "Growth", "25k views", 25000, 3999.0, "INR", true, now)
}

func TestRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .+ FROM promo_packages WHERE active`).
			WillReturnRows(packageRows())

		pkgs, err := repo.List(context.Background())
		require.NoError(t, err)
		require.Len(t, pkgs, 2)
		assert.Equal(t, "Starter", pkgs[0].Name)
		assert.Equal(t, 3999.0, pkgs[1].Price)
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .+ FROM promo_packages`).
			WillReturnError(errors.New("database error"))

		_, err := repo.List(context.Background())
		assert.Error(t, err)
	})
}

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		rows := sqlmock.NewRows([]string{
			"id", "name", "description", "views", "price", "currency", "active", "created_at",
		}).AddRow(int64(1), "Starter", "5k views", 5000, 999.0, "INR", true, now)

		mock.ExpectQuery(`SELECT .+ FROM promo_packages WHERE id`).
			WithArgs(uint(1)).
			WillReturnRows(rows)

		pkg, err := repo.GetByID(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "Starter", pkg.Name)
		assert.True(t, pkg.Active)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .+ FROM promo_packages WHERE id`).
			WithArgs(uint(99)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetByID(context.Background(), 99)
		assert.ErrorIs(t, err, ErrPackageNotFound)
	})
}
