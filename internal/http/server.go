// Package http exposes the ledger over a JSON API. List endpoints run the
// derivation pipeline server side and hand back the ready-to-render page.
package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"smartspend/internal/cache"
	"smartspend/internal/config"
	"smartspend/internal/export"
	"smartspend/internal/services"
	"smartspend/internal/storage"
)

type Server struct {
	http.Server
	repo        *storage.Repository
	records     *services.Records
	rateLimiter *rateLimiter

	// exporter is nil when no spreadsheet is configured.
	exporter *export.SheetsExporter

	// Dashboard responses are the only cached derivation: they aggregate
	// every entity and get hit on each page load.
	dashCache *cache.LRU[DashboardData]

	// now is injected so derived views are deterministic under test.
	now func() time.Time

	stopCacheCleanup chan struct{}
	shutdownOnce     sync.Once
}

// NewServer wires routes and middleware, returning a ready-to-run server.
func NewServer(cfg *config.Config, repo *storage.Repository, records *services.Records, exporter *export.SheetsExporter) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    ":" + cfg.Port,
			Handler: mux,
		},
		repo:             repo,
		records:          records,
		exporter:         exporter,
		rateLimiter:      newRateLimiter(cfg.RateLimitPerMin),
		dashCache:        cache.NewLRU[DashboardData](100, cfg.CacheTTL),
		now:              time.Now,
		stopCacheCleanup: make(chan struct{}),
	}

	go s.startCacheCleanup()

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	registerEntityRoutes(mux, s, services.EntityExpense, s.listExpenses, expenseMutations(s))
	registerEntityRoutes(mux, s, services.EntityBill, s.listBills, billMutations(s))
	registerEntityRoutes(mux, s, services.EntityRecurring, s.listRecurring, recurringMutations(s))
	registerEntityRoutes(mux, s, services.EntityWarranty, s.listWarranties, warrantyMutations(s))
	registerEntityRoutes(mux, s, services.EntityGoal, s.listGoals, goalMutations(s))

	mux.HandleFunc("POST /api/expenses/export", s.secure(s.handleExportExpenses))
	mux.HandleFunc("POST /api/expenses/bulk-category", s.secure(s.handleBulkRecategorize))
	mux.HandleFunc("POST /api/bills/bulk-paid", s.secure(s.handleBulkSetPaid))
	mux.HandleFunc("POST /api/goals/{id}/contribute", s.secure(s.handleContribute))

	mux.HandleFunc("GET /api/categories/{type}", s.secure(s.handleListCategories))
	mux.HandleFunc("POST /api/categories/{type}", s.secure(s.handleAddCategory))
	mux.HandleFunc("DELETE /api/categories/{type}/{name}", s.secure(s.handleRemoveCategory))
	mux.HandleFunc("POST /api/categories/{type}/reset", s.secure(s.handleResetCategories))

	mux.HandleFunc("GET /api/dashboard", s.secure(s.handleDashboard))

	return s
}

// entityMutations is the common CRUD surface each entity exposes.
type entityMutations struct {
	create     http.HandlerFunc
	update     http.HandlerFunc
	deleteOne  http.HandlerFunc
	bulkDelete http.HandlerFunc
}

func registerEntityRoutes(mux *http.ServeMux, s *Server, entity string, list http.HandlerFunc, m entityMutations) {
	base := "/api/" + entity
	mux.HandleFunc("GET "+base, s.secure(list))
	mux.HandleFunc("POST "+base, s.secure(m.create))
	mux.HandleFunc("PUT "+base+"/{id}", s.secure(m.update))
	mux.HandleFunc("DELETE "+base+"/{id}", s.secure(m.deleteOne))
	mux.HandleFunc("POST "+base+"/bulk-delete", s.secure(m.bulkDelete))
}

// secure adds request logging, rate limiting on writes, and the standard
// security headers.
func (s *Server) secure(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"client_ip", clientIP)

		if r.Method != http.MethodGet && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded", "client_ip", clientIP, "method", r.Method, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds())
	}
}

type requestIDKey struct{}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func (s *Server) startCacheCleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if cleaned := s.dashCache.CleanExpired(); cleaned > 0 {
				slog.Debug("Cache cleanup completed", "entries_removed", cleaned)
			}
		case <-s.stopCacheCleanup:
			return
		}
	}
}

// Shutdown stops the cleanup goroutines before draining connections.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		close(s.stopCacheCleanup)
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := s.repo.Ping(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
