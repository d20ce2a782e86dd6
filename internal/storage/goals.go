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

func (r *Repository) ListGoals(ctx context.Context) ([]core.Goal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, target_amount_cents, saved_amount_cents, category, target_date
		FROM goals ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	var out []core.Goal
	for rows.Next() {
		var g core.Goal
		var target string
		if err := rows.Scan(&g.ID, &g.Name, &g.TargetAmount.Cents, &g.SavedAmount.Cents, &g.Category, &target); err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		g.TargetDate = core.ParseFlexDate(target)
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *Repository) GetGoal(ctx context.Context, id string) (core.Goal, error) {
	var g core.Goal
	var target string
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, target_amount_cents, saved_amount_cents, category, target_date
		FROM goals WHERE id = ?`, id).
		Scan(&g.ID, &g.Name, &g.TargetAmount.Cents, &g.SavedAmount.Cents, &g.Category, &target)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Goal{}, core.ErrNotFound
	}
	if err != nil {
		return core.Goal{}, fmt.Errorf("get goal: %w", err)
	}
	g.TargetDate = core.ParseFlexDate(target)
	return g, nil
}

func (r *Repository) CreateGoal(ctx context.Context, g core.Goal) (core.Goal, error) {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO goals (id, name, target_amount_cents, saved_amount_cents, category, target_date)
		VALUES (?, ?, ?, ?, ?, ?)`,
		g.ID, g.Name, g.TargetAmount.Cents, g.SavedAmount.Cents, g.Category, g.TargetDate.String())
	if err != nil {
		return core.Goal{}, fmt.Errorf("create goal: %w", err)
	}

	slog.InfoContext(ctx, "Goal saved", "id", g.ID, "name", g.Name)

	return g, nil
}

func (r *Repository) UpdateGoal(ctx context.Context, g core.Goal) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE goals SET name = ?, target_amount_cents = ?, saved_amount_cents = ?, category = ?, target_date = ?
		WHERE id = ?`,
		g.Name, g.TargetAmount.Cents, g.SavedAmount.Cents, g.Category, g.TargetDate.String(), g.ID)
	if err != nil {
		return fmt.Errorf("update goal: %w", err)
	}
	return checkUpdated(res)
}

// AddContribution bumps the saved amount. Contributions only accumulate;
// corrections go through UpdateGoal.
func (r *Repository) AddContribution(ctx context.Context, id string, amount core.Money) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE goals SET saved_amount_cents = saved_amount_cents + ? WHERE id = ?",
		amount.Cents, id)
	if err != nil {
		return fmt.Errorf("add contribution: %w", err)
	}
	return checkUpdated(res)
}

func (r *Repository) DeleteGoal(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "goals", id)
}

func (r *Repository) BulkDeleteGoals(ctx context.Context, ids []string) error {
	return r.bulkDelete(ctx, "goals", ids)
}
