package observability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/scrapekit/scrapekit/pkg/async"
	"github.com/scrapekit/scrapekit/pkg/settings"
)

// HealthChecker probes the engine's two load-bearing dependencies: the
// settings store the oracle reads, and the shared worker pool.
type HealthChecker struct {
	store settings.Store
	pool  *async.Pool
}

// NewHealthChecker creates a health checker. Either dependency may be nil;
// nil dependencies are simply not probed.
func NewHealthChecker(store settings.Store, pool *async.Pool) *HealthChecker {
	return &HealthChecker{store: store, pool: pool}
}

// HealthStatus represents the overall health status
type HealthStatus struct {
	Status       string                      `json:"status"`
	Timestamp    time.Time                   `json:"timestamp"`
	Dependencies map[string]DependencyStatus `json:"dependencies,omitempty"`
}

// DependencyStatus represents the health of a single dependency
type DependencyStatus struct {
	Status    string        `json:"status"`
	Message   string        `json:"message,omitempty"`
	Latency   time.Duration `json:"latency_ms,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// Liveness returns a simple liveness probe (always 200 while serving).
func (h *HealthChecker) Liveness(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    StatusHealthy,
		"timestamp": time.Now(),
	})
}

// Readiness checks all dependencies and returns 503 when unhealthy.
func (h *HealthChecker) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := h.Check(ctx)

	w.Header().Set("Content-Type", "application/json")
	if status.Status == StatusUnhealthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	json.NewEncoder(w).Encode(status)
}

// Check performs a health check across the registered dependencies.
func (h *HealthChecker) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:       StatusHealthy,
		Timestamp:    time.Now(),
		Dependencies: make(map[string]DependencyStatus),
	}

	if h.store != nil {
		dep := h.checkStore(ctx)
		status.Dependencies["settings"] = dep
		if dep.Status == StatusUnhealthy {
			status.Status = StatusDegraded
		}
	}

	if h.pool != nil {
		dep := h.checkPool()
		status.Dependencies["pool"] = dep
		if dep.Status == StatusUnhealthy {
			// No pool means no query path at all.
			status.Status = StatusUnhealthy
		}
	}

	return status
}

func (h *HealthChecker) checkStore(ctx context.Context) DependencyStatus {
	start := time.Now()
	_, err := h.store.Get(ctx, "provider._healthcheck")
	latency := time.Since(start)

	// Key absence is the expected answer from a reachable store.
	if err != nil && !errors.Is(err, settings.ErrKeyNotFound) {
		return DependencyStatus{
			Status:    StatusUnhealthy,
			Message:   err.Error(),
			Latency:   latency,
			Timestamp: time.Now(),
		}
	}

	return DependencyStatus{
		Status:    StatusHealthy,
		Latency:   latency,
		Timestamp: time.Now(),
	}
}

func (h *HealthChecker) checkPool() DependencyStatus {
	state := h.pool.State()
	dep := DependencyStatus{
		Status:    StatusHealthy,
		Timestamp: time.Now(),
	}
	if state != async.StateRunning {
		dep.Status = StatusUnhealthy
		dep.Message = fmt.Sprintf("pool is %s", state)
	}
	return dep
}
