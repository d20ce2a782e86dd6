package listview

import (
	"testing"
	"time"

	"smartspend/internal/core"
)

// fixedNow keeps month buckets deterministic across the suite.
var fixedNow = time.Date(2024, time.February, 15, 12, 0, 0, 0, time.UTC)

func expense(id, desc, category, date string, cents int64) core.Expense {
	return core.Expense{
		ID:          id,
		Description: desc,
		Category:    category,
		Date:        core.ParseFlexDate(date),
		Amount:      core.Money{Cents: cents},
	}
}

func sampleExpenses() []core.Expense {
	return []core.Expense{
		expense("e1", "Grocery Run", "Food", "2024-02-01", 4500),
		expense("e2", "Rent", "Housing", "2024-02-05", 120000),
		expense("e3", "Cinema", "Fun", "2024-01-15", 1800),
		expense("e4", "Groceries again", "Food", "2024-02-28", 3200),
		expense("e5", "Mystery", "Other", "not-a-date", 999),
	}
}

func ids(expenses []core.Expense) []string {
	out := make([]string, len(expenses))
	for i, e := range expenses {
		out[i] = e.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilterPreservesOrder(t *testing.T) {
	cfg := ExpenseView()

	tests := []struct {
		name string
		spec FilterSpec
		want []string
	}{
		{
			name: "match all keeps input order",
			spec: FilterSpec{Range: RangeAll},
			want: []string{"e1", "e2", "e3", "e4", "e5"},
		},
		{
			name: "category filter is a subsequence",
			spec: FilterSpec{Category: "Food", Range: RangeAll},
			want: []string{"e1", "e4"},
		},
		{
			name: "this month excludes january and invalid dates",
			spec: FilterSpec{Range: RangeThisMonth},
			want: []string{"e1", "e2", "e4"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cfg.Filter(sampleExpenses(), tt.spec, fixedNow)
			if !equalIDs(ids(got), tt.want) {
				t.Errorf("Filter() = %v, want %v", ids(got), tt.want)
			}
		})
	}
}

func TestFilterConjunction(t *testing.T) {
	cfg := ExpenseView()
	records := sampleExpenses()

	search := FilterSpec{Search: "grocer", Range: RangeAll}
	date := FilterSpec{Range: RangeThisMonth}
	combined := FilterSpec{Search: "grocer", Range: RangeThisMonth}

	bySearch := map[string]bool{}
	for _, e := range cfg.Filter(records, search, fixedNow) {
		bySearch[e.ID] = true
	}
	byDate := map[string]bool{}
	for _, e := range cfg.Filter(records, date, fixedNow) {
		byDate[e.ID] = true
	}

	got := cfg.Filter(records, combined, fixedNow)
	for _, e := range got {
		if !bySearch[e.ID] || !byDate[e.ID] {
			t.Errorf("combined filter included %s which fails an individual predicate", e.ID)
		}
	}
	// Everything passing both individually must survive the conjunction.
	wantCount := 0
	for id := range bySearch {
		if byDate[id] {
			wantCount++
		}
	}
	if len(got) != wantCount {
		t.Errorf("combined filter returned %d records, want %d", len(got), wantCount)
	}
}

func TestSearchCaseInsensitive(t *testing.T) {
	cfg := ExpenseView()
	records := []core.Expense{expense("e1", "Grocery Run", "Food", "2024-02-01", 100)}

	tests := []struct {
		term string
		want int
	}{
		{"grocery", 1},
		{"GROCERY RUN", 1},
		{"groceries", 0},
		{"  grocery  ", 1}, // term is trimmed before matching
		{"", 1},
	}

	for _, tt := range tests {
		t.Run("term="+tt.term, func(t *testing.T) {
			got := cfg.Filter(records, FilterSpec{Search: tt.term, Range: RangeAll}, fixedNow)
			if len(got) != tt.want {
				t.Errorf("search %q matched %d records, want %d", tt.term, len(got), tt.want)
			}
		})
	}
}

func TestDateBuckets(t *testing.T) {
	cfg := ExpenseView()
	records := []core.Expense{
		expense("jan", "a", "c", "2024-01-15", 100),
		expense("feb1", "b", "c", "2024-02-01", 100),
		expense("feb28", "c", "c", "2024-02-28", 100),
	}

	tests := []struct {
		name string
		spec FilterSpec
		want []string
	}{
		{
			name: "custom february picks exactly both february records",
			spec: FilterSpec{Range: RangeCustom, CustomMonth: time.February, CustomYear: 2024},
			want: []string{"feb1", "feb28"},
		},
		{
			name: "last month from mid february is january",
			spec: FilterSpec{Range: RangeLastMonth},
			want: []string{"jan"},
		},
		{
			name: "custom with unset year degrades to match all",
			spec: FilterSpec{Range: RangeCustom, CustomMonth: time.February},
			want: []string{"jan", "feb1", "feb28"},
		},
		{
			name: "custom with unset month degrades to match all",
			spec: FilterSpec{Range: RangeCustom, CustomYear: 2024},
			want: []string{"jan", "feb1", "feb28"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cfg.Filter(records, tt.spec, fixedNow)
			if !equalIDs(ids(got), tt.want) {
				t.Errorf("Filter() = %v, want %v", ids(got), tt.want)
			}
		})
	}
}

func TestMalformedDateDegradation(t *testing.T) {
	cfg := ExpenseView()
	records := []core.Expense{expense("bad", "x", "c", "not-a-date", 100)}

	if got := cfg.Filter(records, FilterSpec{Range: RangeThisMonth}, fixedNow); len(got) != 0 {
		t.Errorf("record with invalid date should be excluded under thisMonth, got %d", len(got))
	}
	if got := cfg.Filter(records, FilterSpec{Range: RangeAll}, fixedNow); len(got) != 1 {
		t.Errorf("record with invalid date should appear under all, got %d", len(got))
	}
}

func TestSortDirectionAndTotality(t *testing.T) {
	cfg := ExpenseView()
	records := sampleExpenses() // distinct amounts, so no ties

	asc := cfg.Sort(records, SortSpec{Key: "amount", Dir: Asc}, fixedNow)
	desc := cfg.Sort(records, SortSpec{Key: "amount", Dir: Desc}, fixedNow)

	for i := 1; i < len(asc); i++ {
		if asc[i-1].Amount.Cents > asc[i].Amount.Cents {
			t.Fatalf("ascending sort out of order at %d: %v", i, ids(asc))
		}
	}
	for i := range asc {
		if asc[i].ID != desc[len(desc)-1-i].ID {
			t.Errorf("desc is not the reverse of asc: asc=%v desc=%v", ids(asc), ids(desc))
			break
		}
	}
	// Input must not be reordered under the caller's nose.
	if !equalIDs(ids(records), []string{"e1", "e2", "e3", "e4", "e5"}) {
		t.Errorf("Sort mutated its input: %v", ids(records))
	}
}

func TestSortTiesGroupContiguously(t *testing.T) {
	cfg := ExpenseView()
	records := []core.Expense{
		expense("a", "x", "c", "2024-02-01", 500),
		expense("b", "x", "c", "2024-02-02", 100),
		expense("c", "x", "c", "2024-02-03", 500),
		expense("d", "x", "c", "2024-02-04", 100),
	}
	sorted := cfg.Sort(records, SortSpec{Key: "amount", Dir: Asc}, fixedNow)
	seen := map[int64]bool{}
	var last int64 = -1
	for _, e := range sorted {
		if e.Amount.Cents != last {
			if seen[e.Amount.Cents] {
				t.Fatalf("equal amounts not contiguous: %v", ids(sorted))
			}
			seen[e.Amount.Cents] = true
			last = e.Amount.Cents
		}
	}
}

func TestSortInvalidDatesFirst(t *testing.T) {
	cfg := ExpenseView()
	records := []core.Expense{
		expense("ok", "x", "c", "2024-02-01", 100),
		expense("bad", "x", "c", "garbage", 100),
	}
	sorted := cfg.Sort(records, SortSpec{Key: "date", Dir: Asc}, fixedNow)
	if sorted[0].ID != "bad" {
		t.Errorf("invalid date should sort as epoch 0 (first ascending), got %v", ids(sorted))
	}
}

func TestBillStatusPrioritySort(t *testing.T) {
	now := fixedNow
	bills := []core.Bill{
		{ID: "paid", Name: "a", DueDate: core.NewDate(2024, time.February, 1), IsPaid: true},
		{ID: "upcoming", Name: "b", DueDate: core.NewDate(2024, time.March, 20)},
		{ID: "overdue", Name: "c", DueDate: core.NewDate(2024, time.February, 1)},
		{ID: "soon", Name: "d", DueDate: core.NewDate(2024, time.February, 18)},
		{ID: "invalid", Name: "e", DueDate: core.ParseFlexDate("junk")},
	}
	sorted := BillView().Sort(bills, SortSpec{Key: "status", Dir: Asc}, now)
	want := []string{"invalid", "overdue", "soon", "upcoming", "paid"}
	got := make([]string, len(sorted))
	for i, b := range sorted {
		got[i] = b.ID
	}
	if !equalIDs(got, want) {
		t.Errorf("status sort = %v, want %v", got, want)
	}
}

func TestPaginationCoverage(t *testing.T) {
	cfg := ExpenseView()
	var records []core.Expense
	for i := 0; i < 37; i++ {
		records = append(records, expense(string(rune('A'+i)), "x", "c", "2024-02-01", int64(i)))
	}
	sorted := cfg.Sort(records, SortSpec{Key: "amount", Dir: Asc}, fixedNow)

	const pageSize = 10
	var rebuilt []core.Expense
	_, pageCount := Paginate(sorted, 1, pageSize)
	if pageCount != 4 {
		t.Fatalf("pageCount = %d, want 4", pageCount)
	}
	for page := 1; page <= pageCount; page++ {
		items, _ := Paginate(sorted, page, pageSize)
		rebuilt = append(rebuilt, items...)
	}
	if !equalIDs(ids(rebuilt), ids(sorted)) {
		t.Errorf("concatenated pages do not reconstruct the sorted sequence")
	}

	if items, _ := Paginate(sorted, 99, pageSize); len(items) != 0 {
		t.Errorf("out-of-range page should be empty, got %d items", len(items))
	}
	if items, pc := Paginate([]core.Expense{}, 1, pageSize); len(items) != 0 || pc != 0 {
		t.Errorf("empty input: items=%d pageCount=%d, want 0/0", len(items), pc)
	}
}

func TestClampPage(t *testing.T) {
	tests := []struct {
		name            string
		page, pageCount int
		want            int
	}{
		{"zero pages resets to one", 5, 0, 1},
		{"page beyond count clamps", 7, 3, 3},
		{"page within range unchanged", 2, 3, 2},
		{"page below one clamps up", 0, 3, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampPage(tt.page, tt.pageCount); got != tt.want {
				t.Errorf("ClampPage(%d, %d) = %d, want %d", tt.page, tt.pageCount, got, tt.want)
			}
		})
	}
}

func TestSummaryIndependentOfPagination(t *testing.T) {
	cfg := ExpenseView()
	records := sampleExpenses()
	spec := FilterSpec{Range: RangeAll}

	want := cfg.Summarize(cfg.Filter(records, spec, fixedNow), fixedNow)
	for _, page := range []int{1, 2, 7} {
		for _, size := range []int{3, 10, 12} {
			cfg.PageSize = size
			v := cfg.Derive(records, spec, SortSpec{Key: "date", Dir: Desc}, page, fixedNow)
			if v.Summary.TotalCents != want.TotalCents {
				t.Errorf("page=%d size=%d: total %d, want %d", page, size, v.Summary.TotalCents, want.TotalCents)
			}
		}
	}
}

func TestSummarizePeriodTotalIgnoresActiveFilter(t *testing.T) {
	cfg := ExpenseView()
	records := sampleExpenses()

	// Filtered to January, but the period total still reports this
	// calendar month (February under fixedNow).
	spec := FilterSpec{Range: RangeCustom, CustomMonth: time.January, CustomYear: 2024}
	filtered := cfg.Filter(records, spec, fixedNow)
	s := cfg.Summarize(filtered, fixedNow)
	if s.TotalCents != 1800 {
		t.Errorf("january total = %d, want 1800", s.TotalCents)
	}
	if s.PeriodCents != 0 {
		t.Errorf("periodCents = %d, want 0 (no january record is in february)", s.PeriodCents)
	}

	all := cfg.Filter(records, FilterSpec{Range: RangeAll}, fixedNow)
	s = cfg.Summarize(all, fixedNow)
	if s.PeriodCents != 4500+120000+3200 {
		t.Errorf("periodCents = %d, want %d", s.PeriodCents, 4500+120000+3200)
	}
}

func TestSummarizeCountsByDiscriminant(t *testing.T) {
	bills := []core.Bill{
		{ID: "1", Name: "a", IsPaid: true, Amount: core.Money{Cents: 100}},
		{ID: "2", Name: "b", IsPaid: false, Amount: core.Money{Cents: 200}},
		{ID: "3", Name: "c", IsPaid: false, Amount: core.Money{Cents: 300}},
	}
	s := BillView().Summarize(bills, fixedNow)
	if s.Counts["paid"] != 1 || s.Counts["unpaid"] != 2 {
		t.Errorf("counts = %v, want paid:1 unpaid:2", s.Counts)
	}
}

func TestDeriveClampsPageAfterShrink(t *testing.T) {
	cfg := ExpenseView()
	cfg.PageSize = 2
	records := sampleExpenses()

	v := cfg.Derive(records, FilterSpec{Range: RangeAll}, SortSpec{Key: "date", Dir: Desc}, 3, fixedNow)
	if v.Page != 3 || v.PageCount != 3 {
		t.Fatalf("page=%d pageCount=%d, want 3/3", v.Page, v.PageCount)
	}

	// A narrower filter shrinks the result set; the page must follow.
	v = cfg.Derive(records, FilterSpec{Category: "Food", Range: RangeAll}, SortSpec{Key: "date", Dir: Desc}, 3, fixedNow)
	if v.Page != 1 || v.PageCount != 1 {
		t.Errorf("page=%d pageCount=%d after shrink, want 1/1", v.Page, v.PageCount)
	}

	// No matches at all: page resets to 1, zero pages.
	v = cfg.Derive(records, FilterSpec{Category: "Nope", Range: RangeAll}, SortSpec{Key: "date", Dir: Desc}, 3, fixedNow)
	if v.Page != 1 || v.PageCount != 0 {
		t.Errorf("page=%d pageCount=%d on empty result, want 1/0", v.Page, v.PageCount)
	}
}

func TestUnknownSortKeyFallsBackToDefault(t *testing.T) {
	cfg := ExpenseView()
	records := sampleExpenses()
	got := cfg.Sort(records, SortSpec{Key: "bogus", Dir: Asc}, fixedNow)
	want := cfg.Sort(records, cfg.DefaultSort, fixedNow)
	if !equalIDs(ids(got), ids(want)) {
		t.Errorf("unknown key sort = %v, want default order %v", ids(got), ids(want))
	}
}
