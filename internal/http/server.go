// Package http exposes the tracked collections, derived summaries and
// the backup round trip as a JSON API for the dashboard frontend.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"cruscotto/internal/cache"
	"cruscotto/internal/core"
	applog "cruscotto/internal/log"
	"cruscotto/internal/store"
	"cruscotto/internal/tracker"
)

type Server struct {
	http.Server

	finance *tracker.Finance
	habits  *tracker.Habits
	library *tracker.Library
	note    *tracker.Note
	col     *store.Collections

	budget float64

	rateLimiter *rateLimiter
	metrics     *securityMetrics

	// dashboardCache keeps the computed summary between mutations;
	// every mutation purges it.
	dashboardCache *cache.LRUCache[dashboardResponse]

	stopCacheCleanup chan struct{}
	shutdownOnce     sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server.
func NewServer(addr string, fin *tracker.Finance, hab *tracker.Habits, lib *tracker.Library, note *tracker.Note, col *store.Collections, budget float64) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		finance:          fin,
		habits:           hab,
		library:          lib,
		note:             note,
		col:              col,
		budget:           budget,
		rateLimiter:      newRateLimiter(),
		metrics:          &securityMetrics{},
		dashboardCache:   cache.NewLRU[dashboardResponse](8, 5*time.Minute),
		stopCacheCleanup: make(chan struct{}),
	}

	go s.startCacheCleanup()

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("GET /api/finance", s.withMiddleware(s.handleListFinance))
	mux.HandleFunc("POST /api/finance", s.withMiddleware(s.handleAddFinance))
	mux.HandleFunc("DELETE /api/finance/{id}", s.withMiddleware(s.handleRemoveFinance))

	mux.HandleFunc("GET /api/habits", s.withMiddleware(s.handleListHabits))
	mux.HandleFunc("POST /api/habits", s.withMiddleware(s.handleAddHabit))
	mux.HandleFunc("DELETE /api/habits/{id}", s.withMiddleware(s.handleRemoveHabit))
	mux.HandleFunc("POST /api/habits/{id}/toggle", s.withMiddleware(s.handleToggleHabit))

	mux.HandleFunc("GET /api/library", s.withMiddleware(s.handleListLibrary))
	mux.HandleFunc("POST /api/library", s.withMiddleware(s.handleAddLibrary))
	mux.HandleFunc("DELETE /api/library/{id}", s.withMiddleware(s.handleRemoveLibrary))

	mux.HandleFunc("GET /api/note", s.withMiddleware(s.handleGetNote))
	mux.HandleFunc("PUT /api/note", s.withMiddleware(s.handleSaveNote))

	mux.HandleFunc("GET /api/dashboard", s.withMiddleware(s.handleDashboard))

	mux.HandleFunc("GET /api/backup", s.withMiddleware(s.handleExportBackup))
	mux.HandleFunc("POST /api/backup", s.withMiddleware(s.handleImportBackup))

	return s
}

// withMiddleware adds security headers, rate limiting on mutations,
// request-id tracing and request logging.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		clientIP := extractClientIP(r)
		requestID := uuid.NewString()

		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			applog.FieldRequestID, requestID,
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldClientIP, clientIP,
			applog.FieldUserAgent, r.Header.Get("User-Agent"))

		if isMutation(r.Method) && !s.rateLimiter.allow(clientIP, s.metrics) {
			slog.WarnContext(ctx, "Rate limit exceeded",
				applog.FieldClientIP, clientIP,
				applog.FieldMethod, r.Method,
				applog.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		slog.InfoContext(ctx, "Request completed",
			applog.FieldRequestID, requestID,
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldStatusCode, rw.statusCode,
			applog.FieldDuration, time.Since(start).Milliseconds(),
			applog.FieldClientIP, clientIP)
	}
}

type requestIDKey struct{}

func isMutation(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodDelete:
		return true
	}
	return false
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (s *Server) startCacheCleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if cleaned := s.dashboardCache.CleanExpired(); cleaned > 0 {
				slog.Debug("Cache cleanup completed", applog.FieldCount, cleaned)
			}
		case <-s.stopCacheCleanup:
			return
		}
	}
}

// invalidateDashboard drops the cached summary after any mutation that
// feeds it.
func (s *Server) invalidateDashboard() {
	s.dashboardCache.Purge()
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.stopCacheCleanup != nil {
			close(s.stopCacheCleanup)
		}
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// todayKey derives the day key from local wall-clock time. The core
// aggregation functions take it as an argument; the HTTP layer is the
// caller that owns "today".
func todayKey() string {
	return core.TodayKey(time.Now())
}
