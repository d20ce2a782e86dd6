package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"smartspend/internal/categories"
	"smartspend/internal/core"
	"smartspend/internal/storage"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps domain sentinels onto status codes. Validation
// failures are the client's fault; everything else is a 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case storage.IsNotFound(err):
		writeError(w, http.StatusNotFound, "record not found")
	case errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrEmptyDescription),
		errors.Is(err, core.ErrEmptyName),
		errors.Is(err, core.ErrInvalidType),
		errors.Is(err, core.ErrInvalidFrequency),
		errors.Is(err, categories.ErrEmptyCategory):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, categories.ErrDuplicateCategory):
		writeError(w, http.StatusConflict, err.Error())
	default:
		slog.ErrorContext(r.Context(), "Request failed", "error", err, "url", r.URL.Path)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeJSON(r *http.Request, v any) error {
	body := io.LimitReader(r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// sanitizeInput strips control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
