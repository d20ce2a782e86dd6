package http

import (
	"net/http"

	"smartspend/internal/core"
)

// Mutations invalidate the dashboard cache; list views are derived fresh
// per request so they need no invalidation.
func (s *Server) invalidate() {
	s.dashCache.Purge()
}

type idsRequest struct {
	IDs []string `json:"ids"`
}

func expenseMutations(s *Server) entityMutations {
	return entityMutations{
		create: func(w http.ResponseWriter, r *http.Request) {
			var e core.Expense
			if err := decodeJSON(r, &e); err != nil {
				writeError(w, http.StatusBadRequest, "invalid request body")
				return
			}
			e.Description = sanitizeInput(e.Description)
			created, err := s.records.CreateExpense(r.Context(), e)
			if err != nil {
				writeServiceError(w, r, err)
				return
			}
			s.invalidate()
			writeJSON(w, http.StatusCreated, created)
		},
		update: func(w http.ResponseWriter, r *http.Request) {
			var e core.Expense
			if err := decodeJSON(r, &e); err != nil {
				writeError(w, http.StatusBadRequest, "invalid request body")
				return
			}
			e.ID = r.PathValue("id")
			e.Description = sanitizeInput(e.Description)
			if err := s.records.UpdateExpense(r.Context(), e); err != nil {
				writeServiceError(w, r, err)
				return
			}
			s.invalidate()
			writeJSON(w, http.StatusOK, e)
		},
		deleteOne: func(w http.ResponseWriter, r *http.Request) {
			if err := s.records.DeleteExpense(r.Context(), r.PathValue("id")); err != nil {
				writeServiceError(w, r, err)
				return
			}
			s.invalidate()
			w.WriteHeader(http.StatusNoContent)
		},
		bulkDelete: func(w http.ResponseWriter, r *http.Request) {
			var req idsRequest
			if err := decodeJSON(r, &req); err != nil {
				writeError(w, http.StatusBadRequest, "invalid request body")
				return
			}
			if err := s.records.BulkDeleteExpenses(r.Context(), req.IDs); err != nil {
				writeServiceError(w, r, err)
				return
			}
			s.invalidate()
			w.WriteHeader(http.StatusNoContent)
		},
	}
}

func billMutations(s *Server) entityMutations {
	return entityMutations{
		create: func(w http.ResponseWriter, r *http.Request) {
			var b core.Bill
			if err := decodeJSON(r, &b); err != nil {
				writeError(w, http.StatusBadRequest, "invalid request body")
				return
			}
			b.Name = sanitizeInput(b.Name)
			created, err := s.records.CreateBill(r.Context(), b)
			if err != nil {
				writeServiceError(w, r, err)
				return
			}
			s.invalidate()
			writeJSON(w, http.StatusCreated, created)
		},
		update: func(w http.ResponseWriter, r *http.Request) {
			var b core.Bill
			if err := decodeJSON(r, &b); err != nil {
				writeError(w, http.StatusBadRequest, "invalid request body")
				return
			}
			b.ID = r.PathValue("id")
			b.Name = sanitizeInput(b.Name)
			if err := s.records.UpdateBill(r.Context(), b); err != nil {
				writeServiceError(w, r, err)
				return
			}
			s.invalidate()
			writeJSON(w, http.StatusOK, b)
		},
		deleteOne: func(w http.ResponseWriter, r *http.Request) {
			if err := s.records.DeleteBill(r.Context(), r.PathValue("id")); err != nil {
				writeServiceError(w, r, err)
				return
			}
			s.invalidate()
			w.WriteHeader(http.StatusNoContent)
		},
		bulkDelete: func(w http.ResponseWriter, r *http.Request) {
			var req idsRequest
			if err := decodeJSON(r, &req); err != nil {
				writeError(w, http.StatusBadRequest, "invalid request body")
				return
			}
			if err := s.records.BulkDeleteBills(r.Context(), req.IDs); err != nil {
				writeServiceError(w, r, err)
				return
			}
			s.invalidate()
			w.WriteHeader(http.StatusNoContent)
		},
	}
}

func recurringMutations(s *Server) entityMutations {
	return entityMutations{
		create: func(w http.ResponseWriter, r *http.Request) {
			var rt core.RecurringTransaction
			if err := decodeJSON(r, &rt); err != nil {
				writeError(w, http.StatusBadRequest, "invalid request body")
				return
			}
			rt.Description = sanitizeInput(rt.Description)
			created, err := s.records.CreateRecurring(r.Context(), rt)
			if err != nil {
				writeServiceError(w, r, err)
				return
			}
			s.invalidate()
			writeJSON(w, http.StatusCreated, created)
		},
		update: func(w http.ResponseWriter, r *http.Request) {
			var rt core.RecurringTransaction
			if err := decodeJSON(r, &rt); err != nil {
				writeError(w, http.StatusBadRequest, "invalid request body")
				return
			}
			rt.ID = r.PathValue("id")
			rt.Description = sanitizeInput(rt.Description)
			if err := s.records.UpdateRecurring(r.Context(), rt); err != nil {
				writeServiceError(w, r, err)
				return
			}
			s.invalidate()
			writeJSON(w, http.StatusOK, rt)
		},
		deleteOne: func(w http.ResponseWriter, r *http.Request) {
			if err := s.records.DeleteRecurring(r.Context(), r.PathValue("id")); err != nil {
				writeServiceError(w, r, err)
				return
			}
			s.invalidate()
			w.WriteHeader(http.StatusNoContent)
		},
		bulkDelete: func(w http.ResponseWriter, r *http.Request) {
			var req idsRequest
			if err := decodeJSON(r, &req); err != nil {
				writeError(w, http.StatusBadRequest, "invalid request body")
				return
			}
			if err := s.records.BulkDeleteRecurring(r.Context(), req.IDs); err != nil {
				writeServiceError(w, r, err)
				return
			}
			s.invalidate()
			w.WriteHeader(http.StatusNoContent)
		},
	}
}

func warrantyMutations(s *Server) entityMutations {
	return entityMutations{
		create: func(w http.ResponseWriter, r *http.Request) {
			var wty core.Warranty
			if err := decodeJSON(r, &wty); err != nil {
				writeError(w, http.StatusBadRequest, "invalid request body")
				return
			}
			wty.Product = sanitizeInput(wty.Product)
			created, err := s.records.CreateWarranty(r.Context(), wty)
			if err != nil {
				writeServiceError(w, r, err)
				return
			}
			s.invalidate()
			writeJSON(w, http.StatusCreated, created)
		},
		update: func(w http.ResponseWriter, r *http.Request) {
			var wty core.Warranty
			if err := decodeJSON(r, &wty); err != nil {
				writeError(w, http.StatusBadRequest, "invalid request body")
				return
			}
			wty.ID = r.PathValue("id")
			wty.Product = sanitizeInput(wty.Product)
			if err := s.records.UpdateWarranty(r.Context(), wty); err != nil {
				writeServiceError(w, r, err)
				return
			}
			s.invalidate()
			writeJSON(w, http.StatusOK, wty)
		},
		deleteOne: func(w http.ResponseWriter, r *http.Request) {
			if err := s.records.DeleteWarranty(r.Context(), r.PathValue("id")); err != nil {
				writeServiceError(w, r, err)
				return
			}
			s.invalidate()
			w.WriteHeader(http.StatusNoContent)
		},
		bulkDelete: func(w http.ResponseWriter, r *http.Request) {
			var req idsRequest
			if err := decodeJSON(r, &req); err != nil {
				writeError(w, http.StatusBadRequest, "invalid request body")
				return
			}
			if err := s.records.BulkDeleteWarranties(r.Context(), req.IDs); err != nil {
				writeServiceError(w, r, err)
				return
			}
			s.invalidate()
			w.WriteHeader(http.StatusNoContent)
		},
	}
}

func goalMutations(s *Server) entityMutations {
	return entityMutations{
		create: func(w http.ResponseWriter, r *http.Request) {
			var g core.Goal
			if err := decodeJSON(r, &g); err != nil {
				writeError(w, http.StatusBadRequest, "invalid request body")
				return
			}
			g.Name = sanitizeInput(g.Name)
			created, err := s.records.CreateGoal(r.Context(), g)
			if err != nil {
				writeServiceError(w, r, err)
				return
			}
			s.invalidate()
			writeJSON(w, http.StatusCreated, created)
		},
		update: func(w http.ResponseWriter, r *http.Request) {
			var g core.Goal
			if err := decodeJSON(r, &g); err != nil {
				writeError(w, http.StatusBadRequest, "invalid request body")
				return
			}
			g.ID = r.PathValue("id")
			g.Name = sanitizeInput(g.Name)
			if err := s.records.UpdateGoal(r.Context(), g); err != nil {
				writeServiceError(w, r, err)
				return
			}
			s.invalidate()
			writeJSON(w, http.StatusOK, g)
		},
		deleteOne: func(w http.ResponseWriter, r *http.Request) {
			if err := s.records.DeleteGoal(r.Context(), r.PathValue("id")); err != nil {
				writeServiceError(w, r, err)
				return
			}
			s.invalidate()
			w.WriteHeader(http.StatusNoContent)
		},
		bulkDelete: func(w http.ResponseWriter, r *http.Request) {
			var req idsRequest
			if err := decodeJSON(r, &req); err != nil {
				writeError(w, http.StatusBadRequest, "invalid request body")
				return
			}
			if err := s.records.BulkDeleteGoals(r.Context(), req.IDs); err != nil {
				writeServiceError(w, r, err)
				return
			}
			s.invalidate()
			w.WriteHeader(http.StatusNoContent)
		},
	}
}

func (s *Server) handleBulkRecategorize(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs      []string `json:"ids"`
		Category string   `json:"category"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Category = sanitizeInput(req.Category)
	if req.Category == "" {
		writeError(w, http.StatusUnprocessableEntity, "category cannot be empty")
		return
	}
	if err := s.records.BulkRecategorizeExpenses(r.Context(), req.IDs, req.Category); err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.invalidate()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleBulkSetPaid(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs  []string `json:"ids"`
		Paid bool     `json:"paid"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.records.BulkSetBillsPaid(r.Context(), req.IDs, req.Paid); err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.invalidate()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleContribute(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AmountCents int64 `json:"amountCents"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.records.AddContribution(r.Context(), r.PathValue("id"), core.Money{Cents: req.AmountCents}); err != nil {
		writeServiceError(w, r, err)
		return
	}
	s.invalidate()
	w.WriteHeader(http.StatusNoContent)
}
