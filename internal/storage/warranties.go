package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"smartspend/internal/core"
)

func (r *Repository) ListWarranties(ctx context.Context) ([]core.Warranty, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, product, retailer, category, purchase_price_cents, purchase_date, expiration_date, is_lifetime
		FROM warranties ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list warranties: %w", err)
	}
	defer rows.Close()

	var out []core.Warranty
	for rows.Next() {
		var w core.Warranty
		var purchased, expires string
		if err := rows.Scan(&w.ID, &w.Product, &w.Retailer, &w.Category,
			&w.PurchasePrice.Cents, &purchased, &expires, &w.IsLifetime); err != nil {
			return nil, fmt.Errorf("scan warranty: %w", err)
		}
		w.PurchaseDate = core.ParseFlexDate(purchased)
		w.ExpirationDate = core.ParseFlexDate(expires)
		out = append(out, w)
	}
	return out, rows.Err()
}

func (r *Repository) GetWarranty(ctx context.Context, id string) (core.Warranty, error) {
	var w core.Warranty
	var purchased, expires string
	err := r.db.QueryRowContext(ctx, `
		SELECT id, product, retailer, category, purchase_price_cents, purchase_date, expiration_date, is_lifetime
		FROM warranties WHERE id = ?`, id).
		Scan(&w.ID, &w.Product, &w.Retailer, &w.Category,
			&w.PurchasePrice.Cents, &purchased, &expires, &w.IsLifetime)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Warranty{}, core.ErrNotFound
	}
	if err != nil {
		return core.Warranty{}, fmt.Errorf("get warranty: %w", err)
	}
	w.PurchaseDate = core.ParseFlexDate(purchased)
	w.ExpirationDate = core.ParseFlexDate(expires)
	return w, nil
}

func (r *Repository) CreateWarranty(ctx context.Context, w core.Warranty) (core.Warranty, error) {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO warranties (id, product, retailer, category, purchase_price_cents, purchase_date, expiration_date, is_lifetime)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		w.ID, w.Product, w.Retailer, w.Category, w.PurchasePrice.Cents,
		w.PurchaseDate.String(), w.ExpirationDate.String(), w.IsLifetime)
	if err != nil {
		return core.Warranty{}, fmt.Errorf("create warranty: %w", err)
	}

	slog.InfoContext(ctx, "Warranty saved", "id", w.ID, "product", w.Product)

	return w, nil
}

func (r *Repository) UpdateWarranty(ctx context.Context, w core.Warranty) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE warranties
		SET product = ?, retailer = ?, category = ?, purchase_price_cents = ?, purchase_date = ?, expiration_date = ?, is_lifetime = ?
		WHERE id = ?`,
		w.Product, w.Retailer, w.Category, w.PurchasePrice.Cents,
		w.PurchaseDate.String(), w.ExpirationDate.String(), w.IsLifetime, w.ID)
	if err != nil {
		return fmt.Errorf("update warranty: %w", err)
	}
	return checkUpdated(res)
}

func (r *Repository) DeleteWarranty(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "warranties", id)
}

func (r *Repository) BulkDeleteWarranties(ctx context.Context, ids []string) error {
	return r.bulkDelete(ctx, "warranties", ids)
}
