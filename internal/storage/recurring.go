package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"smartspend/internal/core"
)

const recurringColumns = "id, description, amount_cents, category, type, frequency, start_date, next_recurring_date"

func scanRecurring(scan func(...any) error) (core.RecurringTransaction, error) {
	var rt core.RecurringTransaction
	var start, next string
	err := scan(&rt.ID, &rt.Description, &rt.Amount.Cents, &rt.Category, &rt.Type, &rt.Frequency, &start, &next)
	if err != nil {
		return core.RecurringTransaction{}, err
	}
	rt.StartDate = core.ParseFlexDate(start)
	rt.NextRecurringDate = core.ParseFlexDate(next)
	return rt, nil
}

func (r *Repository) ListRecurring(ctx context.Context) ([]core.RecurringTransaction, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+recurringColumns+" FROM recurring_transactions ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("list recurring transactions: %w", err)
	}
	defer rows.Close()

	var out []core.RecurringTransaction
	for rows.Next() {
		rt, err := scanRecurring(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan recurring transaction: %w", err)
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}

// ListDueRecurring returns templates whose next occurrence is on or before
// now. Rows with a blank or malformed next date never come back; they need
// an explicit repair, not a surprise firing.
func (r *Repository) ListDueRecurring(ctx context.Context, now time.Time) ([]core.RecurringTransaction, error) {
	cutoff := now.UTC().Format("2006-01-02")
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+recurringColumns+` FROM recurring_transactions
		WHERE next_recurring_date != '' AND next_recurring_date <= ?
		ORDER BY next_recurring_date`, cutoff)
	if err != nil {
		return nil, fmt.Errorf("list due recurring transactions: %w", err)
	}
	defer rows.Close()

	var out []core.RecurringTransaction
	for rows.Next() {
		rt, err := scanRecurring(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan recurring transaction: %w", err)
		}
		if !rt.NextRecurringDate.Valid {
			continue
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}

func (r *Repository) GetRecurring(ctx context.Context, id string) (core.RecurringTransaction, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+recurringColumns+" FROM recurring_transactions WHERE id = ?", id)
	rt, err := scanRecurring(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return core.RecurringTransaction{}, core.ErrNotFound
	}
	if err != nil {
		return core.RecurringTransaction{}, fmt.Errorf("get recurring transaction: %w", err)
	}
	return rt, nil
}

func (r *Repository) CreateRecurring(ctx context.Context, rt core.RecurringTransaction) (core.RecurringTransaction, error) {
	if rt.ID == "" {
		rt.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO recurring_transactions (id, description, amount_cents, category, type, frequency, start_date, next_recurring_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rt.ID, rt.Description, rt.Amount.Cents, rt.Category, rt.Type, rt.Frequency,
		rt.StartDate.String(), rt.NextRecurringDate.String())
	if err != nil {
		return core.RecurringTransaction{}, fmt.Errorf("create recurring transaction: %w", err)
	}

	slog.InfoContext(ctx, "Recurring transaction saved",
		"id", rt.ID,
		"description", rt.Description,
		"frequency", rt.Frequency,
		"next", rt.NextRecurringDate.String())

	return rt, nil
}

func (r *Repository) UpdateRecurring(ctx context.Context, rt core.RecurringTransaction) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE recurring_transactions
		SET description = ?, amount_cents = ?, category = ?, type = ?, frequency = ?, start_date = ?, next_recurring_date = ?
		WHERE id = ?`,
		rt.Description, rt.Amount.Cents, rt.Category, rt.Type, rt.Frequency,
		rt.StartDate.String(), rt.NextRecurringDate.String(), rt.ID)
	if err != nil {
		return fmt.Errorf("update recurring transaction: %w", err)
	}
	return checkUpdated(res)
}

// AdvanceRecurring moves a template's next occurrence forward after the
// worker materializes it.
func (r *Repository) AdvanceRecurring(ctx context.Context, id string, next core.FlexDate) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE recurring_transactions SET next_recurring_date = ? WHERE id = ?",
		next.String(), id)
	if err != nil {
		return fmt.Errorf("advance recurring transaction: %w", err)
	}
	return checkUpdated(res)
}

func (r *Repository) DeleteRecurring(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "recurring_transactions", id)
}

func (r *Repository) BulkDeleteRecurring(ctx context.Context, ids []string) error {
	return r.bulkDelete(ctx, "recurring_transactions", ids)
}
