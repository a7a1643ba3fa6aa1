package async

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPool(t *testing.T) {
	pool := NewPool(4)
	defer pool.Shutdown()

	assert.Equal(t, 4, pool.Capacity())
	assert.Equal(t, StateRunning, pool.State())
}

func TestNewPool_DefaultCapacity(t *testing.T) {
	pool := NewPool(0)
	defer pool.Shutdown()

	assert.Equal(t, DefaultCapacity, pool.Capacity())
}

func TestPool_SubmitAndWait(t *testing.T) {
	pool := NewPool(2)
	defer pool.Shutdown()

	task, err := pool.Submit(func() (any, error) {
		return 42, nil
	})
	require.NoError(t, err)

	value, err := task.Wait()
	require.NoError(t, err)
	assert.Equal(t, 42, value)
}

func TestPool_TaskError(t *testing.T) {
	pool := NewPool(2)
	defer pool.Shutdown()

	wantErr := errors.New("boom")
	task, err := pool.Submit(func() (any, error) {
		return nil, wantErr
	})
	require.NoError(t, err)

	_, err = task.Wait()
	assert.ErrorIs(t, err, wantErr)
}

func TestPool_TaskPanicIsCaptured(t *testing.T) {
	pool := NewPool(2)
	defer pool.Shutdown()

	task, err := pool.Submit(func() (any, error) {
		panic("scraper exploded")
	})
	require.NoError(t, err)

	_, err = task.Wait()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scraper exploded")

	// The worker that recovered the panic keeps serving tasks.
	task, err = pool.Submit(func() (any, error) { return "ok", nil })
	require.NoError(t, err)
	value, err := task.Wait()
	require.NoError(t, err)
	assert.Equal(t, "ok", value)
}

func TestPool_CapacityIsNeverExceeded(t *testing.T) {
	const capacity = 4
	const tasks = 100

	pool := NewPool(capacity)
	defer pool.Shutdown()

	var current, max int64
	var wg sync.WaitGroup
	wg.Add(tasks)

	for i := 0; i < tasks; i++ {
		_, err := pool.Submit(func() (any, error) {
			defer wg.Done()
			n := atomic.AddInt64(&current, 1)
			for {
				prev := atomic.LoadInt64(&max)
				if n <= prev || atomic.CompareAndSwapInt64(&max, prev, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt64(&current, -1)
			return nil, nil
		})
		require.NoError(t, err)
	}

	wg.Wait()
	assert.LessOrEqual(t, atomic.LoadInt64(&max), int64(capacity))
}

func TestPool_ShutdownDrainsQueuedTasks(t *testing.T) {
	pool := NewPool(1)

	var completed int64
	for i := 0; i < 10; i++ {
		_, err := pool.Submit(func() (any, error) {
			time.Sleep(time.Millisecond)
			atomic.AddInt64(&completed, 1)
			return nil, nil
		})
		require.NoError(t, err)
	}

	pool.Shutdown()

	assert.Equal(t, int64(10), atomic.LoadInt64(&completed))
	assert.Equal(t, StateTerminated, pool.State())
}

func TestPool_SubmitAfterShutdown(t *testing.T) {
	pool := NewPool(2)
	pool.Shutdown()

	_, err := pool.Submit(func() (any, error) { return nil, nil })
	assert.ErrorIs(t, err, ErrPoolClosed)
}

func TestPool_ShutdownIsIdempotent(t *testing.T) {
	pool := NewPool(2)
	pool.Shutdown()
	pool.Shutdown()

	assert.Equal(t, StateTerminated, pool.State())
}

func TestPool_WithMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	pool := NewPool(2, WithMetrics(reg))
	defer pool.Shutdown()

	task, err := pool.Submit(func() (any, error) { return nil, nil })
	require.NoError(t, err)
	_, err = task.Wait()
	require.NoError(t, err)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["scrapekit_pool_tasks_submitted_total"])
	assert.True(t, names["scrapekit_pool_tasks_completed_total"])
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "running", StateRunning.String())
	assert.Equal(t, "shutting-down", StateShuttingDown.String())
	assert.Equal(t, "terminated", StateTerminated.String())
}
