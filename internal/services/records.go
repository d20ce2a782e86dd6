// Package services orchestrates record mutations across the SQLite store
// and the AMQP change-event stream. Writes land in SQLite first; event
// publishing is best effort and never fails the user's request.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"smartspend/internal/amqp"
	"smartspend/internal/categories"
	"smartspend/internal/core"
	"smartspend/internal/storage"
)

// Entity names carried in change events and used as API path segments.
const (
	EntityExpense   = "expenses"
	EntityBill      = "bills"
	EntityRecurring = "recurring"
	EntityWarranty  = "warranties"
	EntityGoal      = "goals"
)

// Records bundles every entity's mutation path behind one service. The
// repository does the persistence; this layer validates, publishes change
// events, and keeps the two concerns out of the HTTP handlers.
type Records struct {
	repo *storage.Repository
	amqp *amqp.Client
	now  func() time.Time
}

func NewRecords(repo *storage.Repository, amqpClient *amqp.Client) *Records {
	return &Records{repo: repo, amqp: amqpClient, now: time.Now}
}

func (s *Records) publish(ctx context.Context, entity, op string, ids ...string) {
	if s.amqp == nil {
		return
	}
	if err := s.amqp.PublishChange(ctx, amqp.NewRecordChange(entity, op, ids...)); err != nil {
		slog.ErrorContext(ctx, "Failed to publish change event",
			"entity", entity, "op", op, "error", err)
	}
}

// --- expenses ---

func (s *Records) CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	created, err := s.repo.CreateExpense(ctx, e)
	if err != nil {
		return core.Expense{}, fmt.Errorf("create expense: %w", err)
	}
	s.publish(ctx, EntityExpense, amqp.OpCreate, created.ID)
	return created, nil
}

func (s *Records) UpdateExpense(ctx context.Context, e core.Expense) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if err := s.repo.UpdateExpense(ctx, e); err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	s.publish(ctx, EntityExpense, amqp.OpUpdate, e.ID)
	return nil
}

func (s *Records) DeleteExpense(ctx context.Context, id string) error {
	if err := s.repo.DeleteExpense(ctx, id); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	s.publish(ctx, EntityExpense, amqp.OpDelete, id)
	return nil
}

func (s *Records) BulkDeleteExpenses(ctx context.Context, ids []string) error {
	if err := s.repo.BulkDeleteExpenses(ctx, ids); err != nil {
		return fmt.Errorf("bulk delete expenses: %w", err)
	}
	s.publish(ctx, EntityExpense, amqp.OpBulkDelete, ids...)
	return nil
}

func (s *Records) BulkRecategorizeExpenses(ctx context.Context, ids []string, category string) error {
	if err := s.repo.BulkRecategorizeExpenses(ctx, ids, category); err != nil {
		return fmt.Errorf("bulk recategorize expenses: %w", err)
	}
	s.publish(ctx, EntityExpense, amqp.OpBulkUpdate, ids...)
	return nil
}

// --- bills ---

func (s *Records) CreateBill(ctx context.Context, b core.Bill) (core.Bill, error) {
	if err := b.Validate(); err != nil {
		return core.Bill{}, err
	}
	created, err := s.repo.CreateBill(ctx, b)
	if err != nil {
		return core.Bill{}, fmt.Errorf("create bill: %w", err)
	}
	s.publish(ctx, EntityBill, amqp.OpCreate, created.ID)
	return created, nil
}

func (s *Records) UpdateBill(ctx context.Context, b core.Bill) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if err := s.repo.UpdateBill(ctx, b); err != nil {
		return fmt.Errorf("update bill: %w", err)
	}
	s.publish(ctx, EntityBill, amqp.OpUpdate, b.ID)
	return nil
}

func (s *Records) DeleteBill(ctx context.Context, id string) error {
	if err := s.repo.DeleteBill(ctx, id); err != nil {
		return fmt.Errorf("delete bill: %w", err)
	}
	s.publish(ctx, EntityBill, amqp.OpDelete, id)
	return nil
}

func (s *Records) BulkDeleteBills(ctx context.Context, ids []string) error {
	if err := s.repo.BulkDeleteBills(ctx, ids); err != nil {
		return fmt.Errorf("bulk delete bills: %w", err)
	}
	s.publish(ctx, EntityBill, amqp.OpBulkDelete, ids...)
	return nil
}

func (s *Records) BulkSetBillsPaid(ctx context.Context, ids []string, paid bool) error {
	if err := s.repo.BulkSetBillsPaid(ctx, ids, paid); err != nil {
		return fmt.Errorf("bulk set bills paid: %w", err)
	}
	s.publish(ctx, EntityBill, amqp.OpBulkUpdate, ids...)
	return nil
}

// --- recurring transactions ---

// CreateRecurring fills in the first occurrence when the caller left it
// unset: the start date if usable, otherwise the next occurrence computed
// from now. Clients cannot predict this field, which is why their views
// refetch after writes here.
func (s *Records) CreateRecurring(ctx context.Context, rt core.RecurringTransaction) (core.RecurringTransaction, error) {
	if err := rt.Validate(); err != nil {
		return core.RecurringTransaction{}, err
	}
	if !rt.NextRecurringDate.Valid {
		rt.NextRecurringDate = firstOccurrence(rt, s.now())
	}
	created, err := s.repo.CreateRecurring(ctx, rt)
	if err != nil {
		return core.RecurringTransaction{}, fmt.Errorf("create recurring transaction: %w", err)
	}
	s.publish(ctx, EntityRecurring, amqp.OpCreate, created.ID)
	return created, nil
}

func (s *Records) UpdateRecurring(ctx context.Context, rt core.RecurringTransaction) error {
	if err := rt.Validate(); err != nil {
		return err
	}
	if err := s.repo.UpdateRecurring(ctx, rt); err != nil {
		return fmt.Errorf("update recurring transaction: %w", err)
	}
	s.publish(ctx, EntityRecurring, amqp.OpUpdate, rt.ID)
	return nil
}

func (s *Records) DeleteRecurring(ctx context.Context, id string) error {
	if err := s.repo.DeleteRecurring(ctx, id); err != nil {
		return fmt.Errorf("delete recurring transaction: %w", err)
	}
	s.publish(ctx, EntityRecurring, amqp.OpDelete, id)
	return nil
}

func (s *Records) BulkDeleteRecurring(ctx context.Context, ids []string) error {
	if err := s.repo.BulkDeleteRecurring(ctx, ids); err != nil {
		return fmt.Errorf("bulk delete recurring transactions: %w", err)
	}
	s.publish(ctx, EntityRecurring, amqp.OpBulkDelete, ids...)
	return nil
}

// --- warranties ---

func (s *Records) CreateWarranty(ctx context.Context, w core.Warranty) (core.Warranty, error) {
	if err := w.Validate(); err != nil {
		return core.Warranty{}, err
	}
	created, err := s.repo.CreateWarranty(ctx, w)
	if err != nil {
		return core.Warranty{}, fmt.Errorf("create warranty: %w", err)
	}
	s.publish(ctx, EntityWarranty, amqp.OpCreate, created.ID)
	return created, nil
}

func (s *Records) UpdateWarranty(ctx context.Context, w core.Warranty) error {
	if err := w.Validate(); err != nil {
		return err
	}
	if err := s.repo.UpdateWarranty(ctx, w); err != nil {
		return fmt.Errorf("update warranty: %w", err)
	}
	s.publish(ctx, EntityWarranty, amqp.OpUpdate, w.ID)
	return nil
}

func (s *Records) DeleteWarranty(ctx context.Context, id string) error {
	if err := s.repo.DeleteWarranty(ctx, id); err != nil {
		return fmt.Errorf("delete warranty: %w", err)
	}
	s.publish(ctx, EntityWarranty, amqp.OpDelete, id)
	return nil
}

func (s *Records) BulkDeleteWarranties(ctx context.Context, ids []string) error {
	if err := s.repo.BulkDeleteWarranties(ctx, ids); err != nil {
		return fmt.Errorf("bulk delete warranties: %w", err)
	}
	s.publish(ctx, EntityWarranty, amqp.OpBulkDelete, ids...)
	return nil
}

// --- goals ---

func (s *Records) CreateGoal(ctx context.Context, g core.Goal) (core.Goal, error) {
	if err := g.Validate(); err != nil {
		return core.Goal{}, err
	}
	created, err := s.repo.CreateGoal(ctx, g)
	if err != nil {
		return core.Goal{}, fmt.Errorf("create goal: %w", err)
	}
	s.publish(ctx, EntityGoal, amqp.OpCreate, created.ID)
	return created, nil
}

func (s *Records) UpdateGoal(ctx context.Context, g core.Goal) error {
	if err := g.Validate(); err != nil {
		return err
	}
	if err := s.repo.UpdateGoal(ctx, g); err != nil {
		return fmt.Errorf("update goal: %w", err)
	}
	s.publish(ctx, EntityGoal, amqp.OpUpdate, g.ID)
	return nil
}

func (s *Records) AddContribution(ctx context.Context, id string, amount core.Money) error {
	if amount.Cents < 0 {
		return core.ErrInvalidAmount
	}
	if err := s.repo.AddContribution(ctx, id, amount); err != nil {
		return fmt.Errorf("add contribution: %w", err)
	}
	s.publish(ctx, EntityGoal, amqp.OpUpdate, id)
	return nil
}

func (s *Records) DeleteGoal(ctx context.Context, id string) error {
	if err := s.repo.DeleteGoal(ctx, id); err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	s.publish(ctx, EntityGoal, amqp.OpDelete, id)
	return nil
}

func (s *Records) BulkDeleteGoals(ctx context.Context, ids []string) error {
	if err := s.repo.BulkDeleteGoals(ctx, ids); err != nil {
		return fmt.Errorf("bulk delete goals: %w", err)
	}
	s.publish(ctx, EntityGoal, amqp.OpBulkDelete, ids...)
	return nil
}

// --- categories ---

// Categories loads the set for one type, defaulting when the user never
// customized it.
func (s *Records) Categories(ctx context.Context, t categories.Type) (*categories.Set, error) {
	names, err := s.repo.LoadCategories(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	if len(names) == 0 {
		names = categories.DefaultFor(t)
	}
	return categories.New(names), nil
}

func (s *Records) AddCategory(ctx context.Context, t categories.Type, name string) ([]string, error) {
	set, err := s.Categories(ctx, t)
	if err != nil {
		return nil, err
	}
	if err := set.Add(name); err != nil {
		return set.Names(), err
	}
	if err := s.repo.SaveCategories(ctx, t, set.Names()); err != nil {
		return nil, fmt.Errorf("save categories: %w", err)
	}
	return set.Names(), nil
}

func (s *Records) RemoveCategory(ctx context.Context, t categories.Type, name string) ([]string, error) {
	set, err := s.Categories(ctx, t)
	if err != nil {
		return nil, err
	}
	set.Remove(name)
	if err := s.repo.SaveCategories(ctx, t, set.Names()); err != nil {
		return nil, fmt.Errorf("save categories: %w", err)
	}
	return set.Names(), nil
}

func (s *Records) ResetCategories(ctx context.Context, t categories.Type) ([]string, error) {
	set := categories.New(nil)
	set.ResetToDefault(categories.DefaultFor(t))
	if err := s.repo.SaveCategories(ctx, t, set.Names()); err != nil {
		return nil, fmt.Errorf("save categories: %w", err)
	}
	return set.Names(), nil
}

func (s *Records) Close() error {
	var errs []error
	if s.repo != nil {
		if err := s.repo.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}
	if s.amqp != nil {
		if err := s.amqp.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close record services: %v", errs)
	}
	return nil
}
