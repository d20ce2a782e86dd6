// Package view ties one entity's list page together. It holds the raw
// snapshot fetched from the store plus the active filter/sort/page state,
// and implements both mutation strategies: refetch-after-write for creates
// and updates (the server may compute derived fields the client cannot
// predict), and optimistic local patching for deletes and bulk operations,
// rolled back to a full refetch on failure.
package view

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"smartspend/internal/listview"
)

// Store is the per-entity CRUD surface the session talks to.
type Store[T any] interface {
	FetchAll(ctx context.Context) ([]T, error)
	Create(ctx context.Context, record T) (T, error)
	Update(ctx context.Context, record T) error
	Delete(ctx context.Context, id string) error
	BulkDelete(ctx context.Context, ids []string) error
}

// Session is single-goroutine state for one list page. It has no notion of
// in-flight requests; each call sees whatever snapshot is current when it
// runs, and the caller is responsible for not firing two mutations on the
// same record concurrently.
type Session[T any] struct {
	store Store[T]
	cfg   listview.Config[T]
	idOf  func(T) string
	now   func() time.Time

	records []T
	filter  listview.FilterSpec
	sort    listview.SortSpec
	page    int
}

func NewSession[T any](store Store[T], cfg listview.Config[T], idOf func(T) string, now func() time.Time) *Session[T] {
	if now == nil {
		now = time.Now
	}
	return &Session[T]{
		store: store,
		cfg:   cfg,
		idOf:  idOf,
		now:   now,
		sort:  cfg.DefaultSort,
		page:  1,
	}
}

// Reload replaces the snapshot with a fresh fetch. This is both the
// refetch-after-write strategy and the rollback path for failed
// optimistic patches.
func (s *Session[T]) Reload(ctx context.Context) error {
	records, err := s.store.FetchAll(ctx)
	if err != nil {
		// Keep showing the last-good snapshot; the caller surfaces the
		// fetch error one layer up.
		return fmt.Errorf("fetch records: %w", err)
	}
	s.records = records
	return nil
}

// Create persists the record and refetches.
func (s *Session[T]) Create(ctx context.Context, record T) error {
	if _, err := s.store.Create(ctx, record); err != nil {
		return fmt.Errorf("create record: %w", err)
	}
	return s.Reload(ctx)
}

// Update persists the change and refetches.
func (s *Session[T]) Update(ctx context.Context, record T) error {
	if err := s.store.Update(ctx, record); err != nil {
		return fmt.Errorf("update record: %w", err)
	}
	return s.Reload(ctx)
}

// Delete removes the record optimistically, then confirms with the store.
// On failure the local patch is rolled back by forcing a full refetch; the
// snapshot is never left optimistically wrong.
func (s *Session[T]) Delete(ctx context.Context, id string) error {
	s.removeLocal(id)
	if err := s.store.Delete(ctx, id); err != nil {
		s.rollback(ctx, err)
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}

// BulkDelete removes all ids optimistically, confirming with one store call.
func (s *Session[T]) BulkDelete(ctx context.Context, ids []string) error {
	for _, id := range ids {
		s.removeLocal(id)
	}
	if err := s.store.BulkDelete(ctx, ids); err != nil {
		s.rollback(ctx, err)
		return fmt.Errorf("bulk delete: %w", err)
	}
	return nil
}

// BulkPatch applies a field update to the listed ids locally and runs the
// provided remote operation. A failed remote operation rolls the snapshot
// back via refetch.
func (s *Session[T]) BulkPatch(ctx context.Context, ids []string, apply func(T) T, persist func(context.Context, []string) error) error {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	for i, r := range s.records {
		if want[s.idOf(r)] {
			s.records[i] = apply(r)
		}
	}
	if err := persist(ctx, ids); err != nil {
		s.rollback(ctx, err)
		return fmt.Errorf("bulk update: %w", err)
	}
	return nil
}

func (s *Session[T]) removeLocal(id string) {
	out := s.records[:0]
	for _, r := range s.records {
		if s.idOf(r) != id {
			out = append(out, r)
		}
	}
	s.records = out
}

func (s *Session[T]) rollback(ctx context.Context, cause error) {
	if err := s.Reload(ctx); err != nil {
		slog.ErrorContext(ctx, "Rollback refetch failed after mutation error",
			"mutation_error", cause,
			"refetch_error", err)
	}
}

// SetFilter replaces the filter spec. The page snaps back to 1: a changed
// filter almost always changes the page count, and View re-clamps anyway.
func (s *Session[T]) SetFilter(f listview.FilterSpec) {
	s.filter = f
	s.page = 1
}

func (s *Session[T]) SetSort(spec listview.SortSpec) {
	s.sort = spec
}

func (s *Session[T]) SetPage(page int) {
	s.page = page
}

func (s *Session[T]) Page() int {
	return s.page
}

// View derives the visible page from the current snapshot and re-clamps the
// active page. Deriving after every mutation keeps the page-index invariant
// without the mutations having to know about pagination.
func (s *Session[T]) View() listview.View[T] {
	v := s.cfg.Derive(s.records, s.filter, s.sort, s.page, s.now())
	s.page = v.Page
	return v
}
