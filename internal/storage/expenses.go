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

func (r *Repository) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, description, amount_cents, category, date, is_recurring
		FROM expenses ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var out []core.Expense
	for rows.Next() {
		var e core.Expense
		var date string
		if err := rows.Scan(&e.ID, &e.Description, &e.Amount.Cents, &e.Category, &date, &e.IsRecurring); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		e.Date = core.ParseFlexDate(date)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *Repository) GetExpense(ctx context.Context, id string) (core.Expense, error) {
	var e core.Expense
	var date string
	err := r.db.QueryRowContext(ctx, `
		SELECT id, description, amount_cents, category, date, is_recurring
		FROM expenses WHERE id = ?`, id).
		Scan(&e.ID, &e.Description, &e.Amount.Cents, &e.Category, &date, &e.IsRecurring)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, core.ErrNotFound
	}
	if err != nil {
		return core.Expense{}, fmt.Errorf("get expense: %w", err)
	}
	e.Date = core.ParseFlexDate(date)
	return e, nil
}

func (r *Repository) CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO expenses (id, description, amount_cents, category, date, is_recurring)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Description, e.Amount.Cents, e.Category, e.Date.String(), e.IsRecurring)
	if err != nil {
		return core.Expense{}, fmt.Errorf("create expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"id", e.ID,
		"description", e.Description,
		"amount_cents", e.Amount.Cents,
		"category", e.Category)

	return e, nil
}

func (r *Repository) UpdateExpense(ctx context.Context, e core.Expense) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE expenses SET description = ?, amount_cents = ?, category = ?, date = ?, is_recurring = ?
		WHERE id = ?`,
		e.Description, e.Amount.Cents, e.Category, e.Date.String(), e.IsRecurring, e.ID)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	return checkUpdated(res)
}

func (r *Repository) DeleteExpense(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "expenses", id)
}

func (r *Repository) BulkDeleteExpenses(ctx context.Context, ids []string) error {
	return r.bulkDelete(ctx, "expenses", ids)
}

// BulkRecategorizeExpenses moves all listed expenses to one category.
func (r *Repository) BulkRecategorizeExpenses(ctx context.Context, ids []string, category string) error {
	if len(ids) == 0 {
		return nil
	}
	args := make([]any, 0, len(ids)+1)
	args = append(args, category)
	placeholders := ""
	for i, id := range ids {
		if i > 0 {
			placeholders += ","
		}
		placeholders += "?"
		args = append(args, id)
	}
	q := "UPDATE expenses SET category = ? WHERE id IN (" + placeholders + ")"
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("bulk recategorize expenses: %w", err)
	}
	return nil
}
