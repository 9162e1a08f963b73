// Package api exposes the HTTP interface for the audit service.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/auditkit/seo-audit/internal/audit"
	"github.com/auditkit/seo-audit/internal/metrics"
)

// Runner executes one audit. Satisfied by *audit.Auditor.
type Runner interface {
	Run(ctx context.Context, req audit.Request) (audit.Report, error)
}

// Server wires HTTP handlers to the audit orchestrator.
type Server struct {
	router chi.Router
	runner Runner
	logger *zap.Logger
}

// NewServer constructs a Server with middleware and routes.
func NewServer(runner Runner, logger *zap.Logger) *Server {
	s := &Server{
		runner: runner,
		logger: logger,
	}
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(logger))
	r.Use(recoverMiddleware(logger))
	r.Use(timeoutMiddleware(90 * time.Second))

	r.Get("/", s.liveness)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())
	r.Post("/api/seo-checker", s.runAudit)

	s.router = r
	return s
}

// Handler returns the Router for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) liveness(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte("SEO audit service is running")); err != nil {
		s.logger.Error("liveness write failed", zap.Error(err))
	}
}

func (s *Server) runAudit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req audit.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.ObserveAudit("bad_request", time.Since(start))
		writeError(s.logger, w, http.StatusBadRequest, "invalid JSON", "")
		return
	}
	if req.URL == "" {
		metrics.ObserveAudit("bad_request", time.Since(start))
		writeError(s.logger, w, http.StatusBadRequest, audit.ErrMissingURL.Error(), "")
		return
	}

	report, err := s.runner.Run(r.Context(), req)
	switch {
	case err == nil:
		metrics.ObserveAudit("ok", time.Since(start))
		writeJSON(s.logger, w, http.StatusOK, report)
	case errors.Is(err, audit.ErrMissingURL), errors.Is(err, audit.ErrInvalidURL):
		metrics.ObserveAudit("bad_request", time.Since(start))
		writeError(s.logger, w, http.StatusBadRequest, err.Error(), "")
	default:
		// Nothing inside the audit should reach here; collectors absorb
		// their own failures. Keep the process alive and report 500.
		metrics.ObserveAudit("error", time.Since(start))
		s.logger.Error("audit failed", zap.String("url", req.URL), zap.Error(err))
		writeError(s.logger, w, http.StatusInternalServerError, "audit failed", err.Error())
	}
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		ctx := context.WithValue(r.Context(), requestIDKey{}, reqID)
		w.Header().Set("X-Request-ID", reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func loggingMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &responseWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			logger.Info("request completed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.status),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
			)
		})
	}
}

func recoverMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic recovered", zap.Any("error", rec))
					writeError(logger, w, http.StatusInternalServerError, "internal server error", "")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func timeoutMiddleware(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, d, "request timed out")
	}
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	if err != nil {
		return n, fmt.Errorf("write response: %w", err)
	}
	return n, nil
}

type requestIDKey struct{}

func writeJSON(logger *zap.Logger, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("write JSON failed", zap.Error(err))
	}
}

func writeError(logger *zap.Logger, w http.ResponseWriter, status int, msg, details string) {
	body := map[string]string{"error": msg}
	if details != "" {
		body["details"] = details
	}
	writeJSON(logger, w, status, body)
}
