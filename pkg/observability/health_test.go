package observability

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrapekit/scrapekit/pkg/async"
	"github.com/scrapekit/scrapekit/pkg/settings"
)

type unreachableStore struct{}

func (unreachableStore) Get(context.Context, string) (string, error) {
	return "", errors.New("connection refused")
}

func (unreachableStore) Close() error { return nil }

func TestHealthChecker_AllHealthy(t *testing.T) {
	pool := async.NewPool(2)
	defer pool.Shutdown()

	checker := NewHealthChecker(settings.NewMemory(nil), pool)
	status := checker.Check(context.Background())

	assert.Equal(t, StatusHealthy, status.Status)
	assert.Equal(t, StatusHealthy, status.Dependencies["settings"].Status)
	assert.Equal(t, StatusHealthy, status.Dependencies["pool"].Status)
}

func TestHealthChecker_StoreUnreachableIsDegraded(t *testing.T) {
	pool := async.NewPool(2)
	defer pool.Shutdown()

	checker := NewHealthChecker(unreachableStore{}, pool)
	status := checker.Check(context.Background())

	assert.Equal(t, StatusDegraded, status.Status)
	assert.Equal(t, StatusUnhealthy, status.Dependencies["settings"].Status)
}

func TestHealthChecker_TerminatedPoolIsUnhealthy(t *testing.T) {
	pool := async.NewPool(2)
	pool.Shutdown()

	checker := NewHealthChecker(settings.NewMemory(nil), pool)
	status := checker.Check(context.Background())

	assert.Equal(t, StatusUnhealthy, status.Status)
	assert.Contains(t, status.Dependencies["pool"].Message, "terminated")
}

func TestHealthChecker_Liveness(t *testing.T) {
	checker := NewHealthChecker(nil, nil)

	rec := httptest.NewRecorder()
	checker.Liveness(rec, httptest.NewRequest("GET", "/healthz", nil))

	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), StatusHealthy)
}

func TestHealthChecker_ReadinessStatusCodes(t *testing.T) {
	pool := async.NewPool(2)
	pool.Shutdown()

	checker := NewHealthChecker(settings.NewMemory(nil), pool)
	rec := httptest.NewRecorder()
	checker.Readiness(rec, httptest.NewRequest("GET", "/readyz", nil))

	require.Equal(t, 503, rec.Code)
}
