// Package http serves advisability assessments alongside the health,
// readiness, and metrics endpoints.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/event-advisor/internal/assess"
	"github.com/couchcryptid/event-advisor/internal/domain"
	"github.com/couchcryptid/event-advisor/internal/prediction"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

const maxRequestBytes = 1 << 16

// Server exposes the assessment API plus health, readiness, and metrics.
type Server struct {
	httpServer *http.Server
	assessor   assess.Assessor
	logger     *slog.Logger
}

// NewServer wires the routes. A nil limiter disables rate limiting.
func NewServer(addr string, assessor assess.Assessor, ready sharedobs.ReadinessChecker, limiter *rate.Limiter, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		assessor: assessor,
		logger:   logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("POST /v1/advisability", rateLimited(limiter, http.HandlerFunc(s.handleAssess)))
	mux.HandleFunc("GET /v1/models", handleModels)

	return s
}

// NewLimiter returns a token bucket allowing rps requests per second, or nil
// when rps is not positive.
func NewLimiter(rps float64, burst int) *rate.Limiter {
	if rps <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

type assessRequest struct {
	Event domain.Event `json:"event"`
	Model string       `json:"model"`
	Days  int          `json:"days"`
}

func (s *Server) handleAssess(w http.ResponseWriter, r *http.Request) {
	var body assessRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "decode request: "+err.Error())
		return
	}

	kind, err := prediction.ParseKind(body.Model)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	a, err := s.assessor.Assess(r.Context(), assess.Request{
		Event: body.Event,
		Model: kind,
		Days:  body.Days,
	})
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, a)
	case assess.IsInputError(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvalidDataset):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		s.logger.Error("assessment failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

type modelInfo struct {
	Kind       prediction.Kind `json:"kind"`
	Name       string          `json:"name"`
	UsesWindow bool            `json:"uses_window"`
}

func handleModels(w http.ResponseWriter, _ *http.Request) {
	models := make([]modelInfo, 0, len(prediction.Kinds))
	for _, k := range prediction.Kinds {
		models = append(models, modelInfo{Kind: k, Name: k.DisplayName(), UsesWindow: k.UsesWindow()})
	}
	writeJSON(w, http.StatusOK, map[string]any{"models": models})
}

func rateLimited(limiter *rate.Limiter, next http.Handler) http.Handler {
	if limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			w.Header().Set("Retry-After", "1")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // client may have gone away
}
