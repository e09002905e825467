package handlers

import (
	"context"
	"net/http"
	"time"

	"bizfinder/internal/contextutil"
	"bizfinder/internal/vocab"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// VocabularyStats exposes the loaded vocabulary sizes.
type VocabularyStats interface {
	Stats() vocab.Stats
}

// HealthHandler handles HTTP requests for health checks.
type HealthHandler struct {
	store              Pinger
	generator          Pinger
	vocabulary         VocabularyStats
	healthCheckTimeout time.Duration
}

// NewHealthHandler creates a new HealthHandler. A nil generator skips its check.
func NewHealthHandler(store, generator Pinger, vocabulary VocabularyStats) *HealthHandler {
	return &HealthHandler{
		store:              store,
		generator:          generator,
		vocabulary:         vocabulary,
		healthCheckTimeout: 5 * time.Second,
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	// Overall health status: "healthy", "degraded" or "unhealthy"
	Status string `json:"status"`

	// Timestamp of the health check
	Timestamp string `json:"timestamp"`

	// Individual check results
	Checks map[string]string `json:"checks"`

	// Vocabulary sizes loaded at startup
	Vocabulary vocab.Stats `json:"vocabulary"`

	// List of issues (only present if status is not healthy)
	Issues []string `json:"issues,omitempty"`
}

// ServeHTTP handles HTTP requests for health checks.
// Returns 503 Service Unavailable if the store is down; an unreachable
// generator only degrades the status.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	checkCtx, cancel := context.WithTimeout(ctx, h.healthCheckTimeout)
	defer cancel()

	checks := make(map[string]string)
	var issues []string

	if err := h.store.Ping(checkCtx); err != nil {
		logger.WarnContext(ctx, "store health check failed", "error", err)
		checks["store"] = "error"
		issues = append(issues, "store_unavailable")
	} else {
		checks["store"] = "ok"
	}

	degraded := false
	if h.generator != nil {
		if err := h.generator.Ping(checkCtx); err != nil {
			logger.WarnContext(ctx, "generator health check failed", "error", err)
			checks["generator"] = "error"
			issues = append(issues, "generator_unavailable")
			degraded = true
		} else {
			checks["generator"] = "ok"
		}
	}

	stats := h.vocabulary.Stats()
	if stats.Categories == 0 {
		checks["vocabulary"] = "empty"
	} else {
		checks["vocabulary"] = "ok"
	}

	status := "healthy"
	httpStatus := http.StatusOK
	switch {
	case checks["store"] != "ok":
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	case degraded:
		status = "degraded"
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status:     status,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Checks:     checks,
		Vocabulary: stats,
		Issues:     issues,
	})
}
