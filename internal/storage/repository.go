// Package storage is the SQLite persistence layer for every entity plus
// the per-user category lists. Record dates are stored as TEXT and
// re-parsed on read; an invalid date persists as an empty string and
// comes back invalid, never silently repaired.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"smartspend/internal/core"

	_ "modernc.org/sqlite"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

// Ping backs the readiness probe.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// deleteByID is the shared single-row delete; every entity uses it.
func (r *Repository) deleteByID(ctx context.Context, table, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

// bulkDelete removes all ids in one statement. Missing ids are not an
// error; bulk operations are fire-and-forget over whatever still exists.
func (r *Repository) bulkDelete(ctx context.Context, table string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	q := "DELETE FROM " + table + " WHERE id IN (?" + strings.Repeat(",?", len(ids)-1) + ")"
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("bulk delete from %s: %w", table, err)
	}
	return nil
}

func checkUpdated(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

// IsNotFound reports whether err is the store's missing-record error.
func IsNotFound(err error) bool {
	return errors.Is(err, core.ErrNotFound)
}
