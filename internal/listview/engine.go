package listview

import (
	"sort"
	"strings"
	"time"

	"smartspend/internal/core"
)

// Filter evaluates the spec's predicates against each record, short-
// circuiting on the first failure. The result is a subsequence of records
// in the original relative order; filtering never reorders.
func (c Config[T]) Filter(records []T, spec FilterSpec, now time.Time) []T {
	term := strings.ToLower(strings.TrimSpace(spec.Search))
	start, end, bounded := spec.bucket(now)

	out := make([]T, 0, len(records))
	for _, r := range records {
		if term != "" && !c.matchesSearch(r, term) {
			continue
		}
		if spec.Category != "" && c.CategoryOf != nil && c.CategoryOf(r) != spec.Category {
			continue
		}
		if spec.Flag != "" && c.FlagOf != nil && c.FlagOf(r, now) != spec.Flag {
			continue
		}
		// An invalid record date fails any bounded bucket.
		if bounded && c.DateOf != nil && !c.DateOf(r).In(start, end) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func (c Config[T]) matchesSearch(r T, term string) bool {
	for _, field := range c.SearchFields {
		if strings.Contains(strings.ToLower(field(r)), term) {
			return true
		}
	}
	return false
}

// bucket resolves the spec's date range to a [start, end) interval.
// bounded is false for RangeAll and for a custom range with month or year
// unset, in which case the date predicate passes everything.
func (spec FilterSpec) bucket(now time.Time) (start, end time.Time, bounded bool) {
	switch spec.Range {
	case RangeThisMonth:
		start, end = core.MonthBounds(now.Year(), now.Month())
		return start, end, true
	case RangeLastMonth:
		prev := now.AddDate(0, -1, -now.Day()+1)
		start, end = core.MonthBounds(prev.Year(), prev.Month())
		return start, end, true
	case RangeCustom:
		if spec.CustomMonth < time.January || spec.CustomMonth > time.December || spec.CustomYear == 0 {
			return time.Time{}, time.Time{}, false
		}
		start, end = core.MonthBounds(spec.CustomYear, spec.CustomMonth)
		return start, end, true
	}
	return time.Time{}, time.Time{}, false
}

// Sort orders a copy of records by the named key. Unknown keys fall back to
// the view's default sort. The underlying sort is not stable; equal elements
// group contiguously but their relative order is unspecified.
func (c Config[T]) Sort(records []T, spec SortSpec, now time.Time) []T {
	key, ok := c.SortKeys[spec.Key]
	if !ok {
		spec = c.DefaultSort
		key, ok = c.SortKeys[spec.Key]
		if !ok {
			out := make([]T, len(records))
			copy(out, records)
			return out
		}
	}

	cmp := comparator(key, now)
	out := make([]T, len(records))
	copy(out, records)
	sort.Slice(out, func(i, j int) bool {
		v := cmp(out[i], out[j])
		if spec.Dir == Desc {
			return v > 0
		}
		return v < 0
	})
	return out
}

func comparator[T any](key SortKey[T], now time.Time) func(a, b T) int {
	switch key.Kind {
	case KindDate:
		return func(a, b T) int {
			return compareInt64(key.Date(a).EpochMillis(), key.Date(b).EpochMillis())
		}
	case KindNumber:
		return func(a, b T) int {
			return compareInt64(key.Number(a), key.Number(b))
		}
	case KindPriority:
		return func(a, b T) int {
			return compareInt64(int64(key.Priority(a, now)), int64(key.Priority(b, now)))
		}
	default:
		return func(a, b T) int {
			return strings.Compare(strings.ToLower(key.Text(a)), strings.ToLower(key.Text(b)))
		}
	}
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Paginate slices out the requested page. An out-of-range page yields an
// empty slice, not an error; clamping the active page is the caller's job.
func Paginate[T any](sorted []T, page, pageSize int) (items []T, pageCount int) {
	if pageSize <= 0 {
		pageSize = 10
	}
	pageCount = (len(sorted) + pageSize - 1) / pageSize
	if page < 1 || page > pageCount {
		return []T{}, pageCount
	}
	lo := (page - 1) * pageSize
	hi := lo + pageSize
	if hi > len(sorted) {
		hi = len(sorted)
	}
	return sorted[lo:hi], pageCount
}

// ClampPage pins page into [1, max(pageCount, 1)]. Called whenever the
// filtered count changes: filter edits, deletions, bulk operations.
func ClampPage(page, pageCount int) int {
	if pageCount < 1 {
		return 1
	}
	if page < 1 {
		return 1
	}
	if page > pageCount {
		return pageCount
	}
	return page
}

// Summarize aggregates the filtered set: grand total, current-calendar-month
// total, and counts by discriminant. It intentionally ignores pagination.
func (c Config[T]) Summarize(filtered []T, now time.Time) Summary {
	s := Summary{}
	var start, end time.Time
	if c.DateOf != nil {
		start, end = core.MonthBounds(now.Year(), now.Month())
	}
	for _, r := range filtered {
		if c.AmountOf != nil {
			amt := c.AmountOf(r)
			s.TotalCents += amt
			if c.DateOf != nil && c.DateOf(r).In(start, end) {
				s.PeriodCents += amt
			}
		}
		if c.FlagOf != nil {
			if s.Counts == nil {
				s.Counts = make(map[string]int)
			}
			s.Counts[c.FlagOf(r, now)]++
		}
	}
	return s
}

// Derive runs the full pipeline and clamps the page against the result.
func (c Config[T]) Derive(records []T, filter FilterSpec, sortSpec SortSpec, page int, now time.Time) View[T] {
	filtered := c.Filter(records, filter, now)
	sorted := c.Sort(filtered, sortSpec, now)
	pageCount := (len(sorted) + c.pageSize() - 1) / c.pageSize()
	page = ClampPage(page, pageCount)
	items, _ := Paginate(sorted, page, c.pageSize())
	return View[T]{
		Items:         items,
		FilteredCount: len(filtered),
		PageCount:     pageCount,
		Page:          page,
		Summary:       c.Summarize(filtered, now),
	}
}

func (c Config[T]) pageSize() int {
	if c.PageSize <= 0 {
		return 10
	}
	return c.PageSize
}
