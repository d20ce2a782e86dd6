package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"smartspend/internal/amqp"
	"smartspend/internal/core"
	"smartspend/internal/storage"
)

// NextOccurrence returns the occurrence that follows from, given the
// schedule's frequency and its anchor (the start date). Monthly and
// yearly schedules keep the anchor's day of month, clamping to the last
// day when the target month is shorter. A Jan 31 anchor therefore fires
// on Feb 28 (or 29), then back on Mar 31.
func NextOccurrence(from time.Time, freq core.Frequency, anchor core.FlexDate) time.Time {
	switch freq {
	case core.Daily:
		return from.AddDate(0, 0, 1)
	case core.Weekly:
		return from.AddDate(0, 0, 7)
	case core.Monthly:
		return addMonthsClamped(from, 1, anchorDay(from, anchor))
	case core.Yearly:
		return addMonthsClamped(from, 12, anchorDay(from, anchor))
	default:
		return from.AddDate(0, 1, 0)
	}
}

func anchorDay(from time.Time, anchor core.FlexDate) int {
	if anchor.Valid {
		return anchor.Time.Day()
	}
	return from.Day()
}

func addMonthsClamped(from time.Time, months, day int) time.Time {
	year, month, _ := from.Date()
	target := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, from.Location())
	lastDay := time.Date(target.Year(), target.Month()+1, 0, 0, 0, 0, 0, from.Location()).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(target.Year(), target.Month(), day, 0, 0, 0, 0, from.Location())
}

// firstOccurrence picks the initial due date for a new schedule: the
// start date when it is still ahead of now, otherwise the next slot
// computed from now.
func firstOccurrence(rt core.RecurringTransaction, now time.Time) core.FlexDate {
	if rt.StartDate.Valid && !rt.StartDate.Time.Before(now) {
		return rt.StartDate
	}
	next := NextOccurrence(now, rt.Frequency, rt.StartDate)
	return core.NewDate(next.Year(), next.Month(), next.Day())
}

// Processor materializes due recurring transactions into concrete
// expenses and advances each schedule past now. It is driven on an
// interval by the recurring worker.
type Processor struct {
	repo    *storage.Repository
	records *Records
}

func NewProcessor(repo *storage.Repository, records *Records) *Processor {
	return &Processor{repo: repo, records: records}
}

// ProcessDue handles every schedule whose next occurrence is on or
// before now. Due expense schedules materialize an expense record per
// occurrence; income schedules only advance, since there is no income
// ledger. A schedule that errors is logged and skipped so one bad row
// cannot wedge the whole batch.
func (p *Processor) ProcessDue(ctx context.Context, now time.Time) (int, error) {
	due, err := p.repo.ListDueRecurring(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("list due recurring transactions: %w", err)
	}

	processed := 0
	for _, rt := range due {
		if err := p.processOne(ctx, rt, now); err != nil {
			slog.ErrorContext(ctx, "Failed to process recurring transaction",
				"id", rt.ID, "description", rt.Description, "error", err)
			continue
		}
		processed++
	}
	return processed, nil
}

func (p *Processor) processOne(ctx context.Context, rt core.RecurringTransaction, now time.Time) error {
	// Catch up one occurrence at a time so a schedule that was down for
	// three months produces three records, each dated to its slot.
	next := rt.NextRecurringDate
	for next.Valid && !next.Time.After(now) {
		if rt.Type == core.TypeExpense {
			if _, err := p.records.CreateExpense(ctx, core.Expense{
				Description: rt.Description,
				Amount:      rt.Amount,
				Category:    rt.Category,
				Date:        next,
				IsRecurring: true,
			}); err != nil {
				return fmt.Errorf("materialize occurrence: %w", err)
			}
		}
		advanced := NextOccurrence(next.Time, rt.Frequency, rt.StartDate)
		next = core.NewDate(advanced.Year(), advanced.Month(), advanced.Day())
	}

	if err := p.repo.AdvanceRecurring(ctx, rt.ID, next); err != nil {
		return fmt.Errorf("advance schedule: %w", err)
	}
	p.records.publish(ctx, EntityRecurring, amqp.OpUpdate, rt.ID)
	return nil
}
