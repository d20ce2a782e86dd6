package http

import (
	"log/slog"
	"net/http"

	"smartspend/internal/listview"
)

// handleExportExpenses writes the filtered, sorted expense rows to the
// configured spreadsheet. The same query parameters as the list endpoint
// apply, so what the caller sees is what gets exported.
func (s *Server) handleExportExpenses(w http.ResponseWriter, r *http.Request) {
	if s.exporter == nil {
		writeError(w, http.StatusServiceUnavailable, "spreadsheet export is not configured")
		return
	}

	expenses, err := s.repo.ListExpenses(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load expenses for export", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load records")
		return
	}

	q := parseListQuery(r.URL.Query())
	cfg := listview.ExpenseView()
	now := s.now()
	rows := cfg.Sort(cfg.Filter(expenses, q.filter, now), q.sort, now)

	if err := s.exporter.ExportExpenses(r.Context(), rows); err != nil {
		slog.ErrorContext(r.Context(), "Spreadsheet export failed", "error", err, "rows", len(rows))
		writeError(w, http.StatusBadGateway, "spreadsheet export failed")
		return
	}

	slog.InfoContext(r.Context(), "Exported expenses to spreadsheet", "rows", len(rows))
	writeJSON(w, http.StatusOK, map[string]int{"exported": len(rows)})
}
