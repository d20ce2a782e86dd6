// Package listview implements the derivation pipeline behind every list
// page: filter, sort, paginate, summarize. All operations are pure and run
// on an in-memory snapshot; the current time is an explicit parameter so
// month buckets are deterministic under test.
package listview

import (
	"time"

	"smartspend/internal/core"
)

// DateRange selects which calendar bucket a date filter covers.
type DateRange string

const (
	RangeAll       DateRange = "all"
	RangeThisMonth DateRange = "thisMonth"
	RangeLastMonth DateRange = "lastMonth"
	RangeCustom    DateRange = "custom"
)

// FilterSpec is a conjunction of independent predicates. Zero values mean
// match-all: an empty search term, category, or flag passes everything.
type FilterSpec struct {
	Search   string
	Category string
	// Flag matches the entity's discriminant value (bill status,
	// transaction type). Empty matches all.
	Flag string
	Range DateRange
	// CustomMonth/CustomYear define the bucket for RangeCustom. When either
	// is unset the custom filter degrades to match-all; that leniency is
	// part of the contract, not a bug.
	CustomMonth time.Month
	CustomYear  int
}

// Direction is the sort order.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// SortSpec names a sort key from the view's configured set.
type SortSpec struct {
	Key string
	Dir Direction
}

// Kind is the semantic type of a sort key's comparator.
type Kind int

const (
	KindDate Kind = iota
	KindNumber
	KindText
	KindPriority
)

// SortKey describes how one sortable key extracts its comparison value.
// Exactly one accessor matching Kind is set.
type SortKey[T any] struct {
	Kind     Kind
	Date     func(T) core.FlexDate
	Number   func(T) int64
	Text     func(T) string
	Priority func(T, time.Time) int
}

// Config parameterizes the engine for one entity view. Which fields are
// searchable, which keys are sortable, and the page size are per-entity
// design choices supplied by the integrating layer, never hard-coded here.
type Config[T any] struct {
	SearchFields []func(T) string
	SortKeys     map[string]SortKey[T]
	DefaultSort  SortSpec

	// DateOf selects the field date-range filters and the period total
	// apply to. Nil disables date filtering for the view.
	DateOf func(T) core.FlexDate
	// AmountOf feeds totals. Nil views have no amount summary.
	AmountOf func(T) int64
	// CategoryOf backs the category equality filter.
	CategoryOf func(T) string
	// FlagOf yields the discriminant used for the flag filter and the
	// per-discriminant counts. Nil disables both.
	FlagOf func(T, time.Time) string

	PageSize int
}

// Summary aggregates the filtered set, never just the visible page.
type Summary struct {
	TotalCents int64 `json:"totalCents"`
	// PeriodCents is the current-calendar-month total, computed
	// independently of the active date filter so the stat holds steady
	// while the user explores other buckets.
	PeriodCents int64          `json:"periodCents"`
	Counts      map[string]int `json:"counts,omitempty"`
}

// View is the derived output handed to the rendering layer.
type View[T any] struct {
	Items         []T     `json:"items"`
	FilteredCount int     `json:"filteredCount"`
	PageCount     int     `json:"pageCount"`
	Page          int     `json:"page"`
	Summary       Summary `json:"summary"`
}
