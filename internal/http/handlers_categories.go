package http

import (
	"net/http"

	"smartspend/internal/categories"
)

func categoryType(r *http.Request) (categories.Type, bool) {
	t := categories.Type(r.PathValue("type"))
	return t, t.Valid()
}

type categoriesResponse struct {
	Type       categories.Type `json:"type"`
	Categories []string        `json:"categories"`
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	t, ok := categoryType(r)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown category type")
		return
	}
	set, err := s.records.Categories(r.Context(), t)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, categoriesResponse{Type: t, Categories: set.Names()})
}

func (s *Server) handleAddCategory(w http.ResponseWriter, r *http.Request) {
	t, ok := categoryType(r)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown category type")
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	names, err := s.records.AddCategory(r.Context(), t, sanitizeInput(req.Name))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, categoriesResponse{Type: t, Categories: names})
}

func (s *Server) handleRemoveCategory(w http.ResponseWriter, r *http.Request) {
	t, ok := categoryType(r)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown category type")
		return
	}
	names, err := s.records.RemoveCategory(r.Context(), t, r.PathValue("name"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, categoriesResponse{Type: t, Categories: names})
}

func (s *Server) handleResetCategories(w http.ResponseWriter, r *http.Request) {
	t, ok := categoryType(r)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown category type")
		return
	}
	names, err := s.records.ResetCategories(r.Context(), t)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, categoriesResponse{Type: t, Categories: names})
}
