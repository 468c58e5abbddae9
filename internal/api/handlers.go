package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"oil-dashboard/internal/cache"
	"oil-dashboard/internal/dashboard"
	"oil-dashboard/internal/store"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	svc     *dashboard.Service
	health  store.HealthChecker
	cacheHC store.HealthChecker
	timeout time.Duration
	logger  *slog.Logger
}

// NewHandler creates a new Handler. health guards requests against a dead
// store; cacheHC may be nil when caching is disabled.
func NewHandler(svc *dashboard.Service, health, cacheHC store.HealthChecker, timeout time.Duration, logger *slog.Logger) *Handler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Handler{svc: svc, health: health, cacheHC: cacheHC, timeout: timeout, logger: logger}
}

// envelope wraps every payload with its provenance tag.
type envelope struct {
	Source cache.Source `json:"source"`
	Data   any          `json:"data"`
}

// apiError is the body of a 500 response. Missing data is never an error;
// only store connectivity failures reach this shape.
type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// NavInfo handles GET /nav-info.
func (h *Handler) NavInfo(w http.ResponseWriter, r *http.Request) {
	ctx, cancel, ok := h.begin(w, r)
	if !ok {
		return
	}
	defer cancel()

	data, source, err := h.svc.NavInfo(ctx)
	h.respond(w, source, data, err)
}

// BarGraph handles GET /bar-graph.
func (h *Handler) BarGraph(w http.ResponseWriter, r *http.Request) {
	ctx, cancel, ok := h.begin(w, r)
	if !ok {
		return
	}
	defer cancel()

	data, source, err := h.svc.BarGraph(ctx)
	h.respond(w, source, data, err)
}

// LinearGraph handles GET /linear-graph.
func (h *Handler) LinearGraph(w http.ResponseWriter, r *http.Request) {
	ctx, cancel, ok := h.begin(w, r)
	if !ok {
		return
	}
	defer cancel()

	data, source, err := h.svc.LinearGraph(ctx)
	h.respond(w, source, data, err)
}

// Comparison handles GET /comparison.
func (h *Handler) Comparison(w http.ResponseWriter, r *http.Request) {
	ctx, cancel, ok := h.begin(w, r)
	if !ok {
		return
	}
	defer cancel()

	data, source, err := h.svc.Comparison(ctx)
	h.respond(w, source, data, err)
}

// NationalAverage handles GET /national-average.
func (h *Handler) NationalAverage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel, ok := h.begin(w, r)
	if !ok {
		return
	}
	defer cancel()

	data, source, err := h.svc.NationalAverage(ctx)
	h.respond(w, source, data, err)
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := map[string]string{"status": "healthy", "store": "up", "cache": "disabled"}
	code := http.StatusOK
	if h.health != nil {
		if err := h.health.Healthy(ctx); err != nil {
			status["status"] = "unhealthy"
			status["store"] = "down"
			code = http.StatusServiceUnavailable
		}
	}
	if h.cacheHC != nil {
		status["cache"] = "up"
		if err := h.cacheHC.Healthy(ctx); err != nil {
			// Cache is advisory; a dead cache does not fail the check.
			status["cache"] = "down"
		}
	}
	respondJSON(w, code, status)
}

// begin applies the request-scoped timeout and rejects the request when
// the snapshot store is unreachable. The resolver's scan bounds keep a
// slow store from running away, but a dead one is a hard 500.
func (h *Handler) begin(w http.ResponseWriter, r *http.Request) (context.Context, context.CancelFunc, bool) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	if h.health != nil {
		if err := h.health.Healthy(ctx); err != nil {
			h.logger.Error("snapshot store unreachable", "err", err)
			respondJSON(w, http.StatusInternalServerError, apiError{
				Error:   "store unavailable",
				Message: err.Error(),
			})
			cancel()
			return nil, nil, false
		}
	}
	return ctx, cancel, true
}

// respond writes the enveloped payload, or a 500 when the computation
// itself failed (which only happens on connectivity-level errors).
func (h *Handler) respond(w http.ResponseWriter, source cache.Source, data any, err error) {
	if err != nil {
		h.logger.Error("request failed", "err", err)
		respondJSON(w, http.StatusInternalServerError, apiError{
			Error:   "server error",
			Message: err.Error(),
		})
		return
	}
	respondJSON(w, http.StatusOK, envelope{Source: source, Data: data})
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
