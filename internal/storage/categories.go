package storage

import (
	"context"
	"fmt"

	"smartspend/internal/categories"
)

// LoadCategories returns the persisted list for one type, in stored order.
// An empty result means the user never customized the list; callers fall
// back to the system defaults.
func (r *Repository) LoadCategories(ctx context.Context, t categories.Type) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT name FROM categories WHERE type = ? ORDER BY position", string(t))
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

// SaveCategories replaces the stored list for one type with names, order
// preserved. The whole list is rewritten; the Set owns the invariants.
func (r *Repository) SaveCategories(ctx context.Context, t categories.Type, names []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin category save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM categories WHERE type = ?", string(t)); err != nil {
		return fmt.Errorf("clear categories: %w", err)
	}
	for i, name := range names {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO categories (type, position, name) VALUES (?, ?, ?)",
			string(t), i, name); err != nil {
			return fmt.Errorf("insert category %q: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit category save: %w", err)
	}
	return nil
}
