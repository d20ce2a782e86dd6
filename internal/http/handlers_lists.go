package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"smartspend/internal/core"
	"smartspend/internal/listview"
)

// listHandler loads the full snapshot, runs the derivation pipeline, and
// writes the resulting page. Filtering and sorting happen in memory; the
// store only ever hands back everything.
func listHandler[T any](s *Server, w http.ResponseWriter, r *http.Request,
	fetch func(context.Context) ([]T, error), cfg listview.Config[T]) {

	records, err := fetch(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load records", "error", err, "url", r.URL.Path)
		writeError(w, http.StatusInternalServerError, "failed to load records")
		return
	}

	q := parseListQuery(r.URL.Query())
	view := cfg.Derive(records, q.filter, q.sort, q.page, s.now())
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) listExpenses(w http.ResponseWriter, r *http.Request) {
	listHandler(s, w, r, s.repo.ListExpenses, listview.ExpenseView())
}

func (s *Server) listBills(w http.ResponseWriter, r *http.Request) {
	listHandler(s, w, r, s.repo.ListBills, listview.BillView())
}

func (s *Server) listRecurring(w http.ResponseWriter, r *http.Request) {
	listHandler(s, w, r, s.repo.ListRecurring, listview.RecurringView())
}

func (s *Server) listWarranties(w http.ResponseWriter, r *http.Request) {
	listHandler(s, w, r, s.repo.ListWarranties, listview.WarrantyView())
}

func (s *Server) listGoals(w http.ResponseWriter, r *http.Request) {
	listHandler(s, w, r, s.repo.ListGoals, listview.GoalView())
}

// DashboardData is the cross-entity aggregate behind the landing page.
type DashboardData struct {
	MonthExpensesCents int64          `json:"monthExpensesCents"`
	TotalExpensesCents int64          `json:"totalExpensesCents"`
	UnpaidBillsCents   int64          `json:"unpaidBillsCents"`
	BillCounts         map[string]int `json:"billCounts"`
	GoalsSavedCents    int64          `json:"goalsSavedCents"`
	GoalsTargetCents   int64          `json:"goalsTargetCents"`
	ActiveWarranties   int            `json:"activeWarranties"`
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	const key = "dashboard"
	if data, found := s.dashCache.Get(key); found {
		slog.DebugContext(r.Context(), "Dashboard cache hit")
		writeJSON(w, http.StatusOK, data)
		return
	}

	data, err := s.buildDashboard(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Dashboard build error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to build dashboard")
		return
	}

	s.dashCache.Set(key, data)
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) buildDashboard(ctx context.Context) (DashboardData, error) {
	now := s.now()
	data := DashboardData{}

	expenses, err := s.repo.ListExpenses(ctx)
	if err != nil {
		return data, err
	}
	summary := listview.ExpenseView().Summarize(expenses, now)
	data.TotalExpensesCents = summary.TotalCents
	data.MonthExpensesCents = summary.PeriodCents

	bills, err := s.repo.ListBills(ctx)
	if err != nil {
		return data, err
	}
	data.BillCounts = make(map[string]int)
	for _, b := range bills {
		status := b.Status(now)
		data.BillCounts[string(status)]++
		if !b.IsPaid {
			data.UnpaidBillsCents += b.Amount.Cents
		}
	}

	goals, err := s.repo.ListGoals(ctx)
	if err != nil {
		return data, err
	}
	for _, g := range goals {
		data.GoalsSavedCents += g.SavedAmount.Cents
		data.GoalsTargetCents += g.TargetAmount.Cents
	}

	warranties, err := s.repo.ListWarranties(ctx)
	if err != nil {
		return data, err
	}
	for _, wty := range warranties {
		if wty.IsLifetime || activeWarranty(wty.ExpirationDate, now) {
			data.ActiveWarranties++
		}
	}

	return data, nil
}

func activeWarranty(expiration core.FlexDate, now time.Time) bool {
	return expiration.Valid && expiration.Time.After(now)
}
