package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"smartspend/internal/core"
)

func (r *Repository) ListBills(ctx context.Context) ([]core.Bill, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, amount_cents, category, due_date, is_paid
		FROM bills ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	defer rows.Close()

	var out []core.Bill
	for rows.Next() {
		var b core.Bill
		var due string
		if err := rows.Scan(&b.ID, &b.Name, &b.Amount.Cents, &b.Category, &due, &b.IsPaid); err != nil {
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		b.DueDate = core.ParseFlexDate(due)
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *Repository) GetBill(ctx context.Context, id string) (core.Bill, error) {
	var b core.Bill
	var due string
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, amount_cents, category, due_date, is_paid
		FROM bills WHERE id = ?`, id).
		Scan(&b.ID, &b.Name, &b.Amount.Cents, &b.Category, &due, &b.IsPaid)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Bill{}, core.ErrNotFound
	}
	if err != nil {
		return core.Bill{}, fmt.Errorf("get bill: %w", err)
	}
	b.DueDate = core.ParseFlexDate(due)
	return b, nil
}

func (r *Repository) CreateBill(ctx context.Context, b core.Bill) (core.Bill, error) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO bills (id, name, amount_cents, category, due_date, is_paid)
		VALUES (?, ?, ?, ?, ?, ?)`,
		b.ID, b.Name, b.Amount.Cents, b.Category, b.DueDate.String(), b.IsPaid)
	if err != nil {
		return core.Bill{}, fmt.Errorf("create bill: %w", err)
	}

	slog.InfoContext(ctx, "Bill saved",
		"id", b.ID,
		"name", b.Name,
		"due_date", b.DueDate.String())

	return b, nil
}

func (r *Repository) UpdateBill(ctx context.Context, b core.Bill) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE bills SET name = ?, amount_cents = ?, category = ?, due_date = ?, is_paid = ?
		WHERE id = ?`,
		b.Name, b.Amount.Cents, b.Category, b.DueDate.String(), b.IsPaid, b.ID)
	if err != nil {
		return fmt.Errorf("update bill: %w", err)
	}
	return checkUpdated(res)
}

func (r *Repository) DeleteBill(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "bills", id)
}

func (r *Repository) BulkDeleteBills(ctx context.Context, ids []string) error {
	return r.bulkDelete(ctx, "bills", ids)
}

// BulkSetBillsPaid flips the paid flag for every listed bill.
func (r *Repository) BulkSetBillsPaid(ctx context.Context, ids []string, paid bool) error {
	if len(ids) == 0 {
		return nil
	}
	args := make([]any, 0, len(ids)+1)
	args = append(args, paid)
	for _, id := range ids {
		args = append(args, id)
	}
	q := "UPDATE bills SET is_paid = ? WHERE id IN (?" + strings.Repeat(",?", len(ids)-1) + ")"
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("bulk set bills paid: %w", err)
	}
	return nil
}
