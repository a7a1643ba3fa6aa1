package async

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunAndWait_AllItemsProcessed(t *testing.T) {
	pool := NewPool(4)
	defer pool.Shutdown()

	var count int64
	err := RunAndWait(pool, func(n int) error {
		atomic.AddInt64(&count, int64(n))
		return nil
	}, []int{1, 2, 3, 4, 5})

	require.NoError(t, err)
	assert.Equal(t, int64(15), atomic.LoadInt64(&count))
}

func TestRunAndWait_FailuresDoNotAbortSiblings(t *testing.T) {
	pool := NewPool(4)
	defer pool.Shutdown()

	var succeeded int64
	err := RunAndWait(pool, func(n int) error {
		if n%2 == 0 {
			return errors.New("even numbers fail")
		}
		atomic.AddInt64(&succeeded, 1)
		return nil
	}, []int{1, 2, 3, 4, 5, 6})

	require.NoError(t, err)
	assert.Equal(t, int64(3), atomic.LoadInt64(&succeeded))
}

func TestRunAndWait_PoolClosed(t *testing.T) {
	pool := NewPool(2)
	pool.Shutdown()

	err := RunAndWait(pool, func(int) error { return nil }, []int{1, 2})
	assert.ErrorIs(t, err, ErrPoolClosed)
}

func TestMap_PreservesSubmissionOrder(t *testing.T) {
	pool := NewPool(8)
	defer pool.Shutdown()

	items := make([]int, 50)
	for i := range items {
		items[i] = i
	}

	// Randomized completion timing must not affect result order.
	results, err := Map(pool, func(n int) (string, error) {
		time.Sleep(time.Duration(rand.Intn(5)) * time.Millisecond)
		return fmt.Sprintf("item-%d", n), nil
	}, items)

	require.NoError(t, err)
	require.Len(t, results, len(items))
	for i, r := range results {
		assert.Equal(t, fmt.Sprintf("item-%d", i), r)
	}
}

func TestMap_FirstErrorReturnedAfterJoin(t *testing.T) {
	pool := NewPool(4)
	defer pool.Shutdown()

	var processed int64
	results, err := Map(pool, func(n int) (int, error) {
		atomic.AddInt64(&processed, 1)
		if n == 2 {
			return 0, errors.New("item 2 failed")
		}
		return n * 10, nil
	}, []int{1, 2, 3})

	require.Error(t, err)
	assert.Equal(t, int64(3), atomic.LoadInt64(&processed))
	assert.Equal(t, []int{10, 0, 30}, results)
}

func TestMap_PoolClosed(t *testing.T) {
	pool := NewPool(2)
	pool.Shutdown()

	_, err := Map(pool, func(n int) (int, error) { return n, nil }, []int{1})
	assert.ErrorIs(t, err, ErrPoolClosed)
}

func TestPipeline_FansOutProducedValues(t *testing.T) {
	pool := NewPool(4)
	defer pool.Shutdown()

	var mu sync.Mutex
	var consumed []int

	err := Pipeline(pool, func(n int) ([]int, error) {
		return []int{n * 10, n*10 + 1}, nil
	}, func(v int) error {
		mu.Lock()
		consumed = append(consumed, v)
		mu.Unlock()
		return nil
	}, []int{1, 2, 3})

	require.NoError(t, err)
	sort.Ints(consumed)
	assert.Equal(t, []int{10, 11, 20, 21, 30, 31}, consumed)
}

func TestPipeline_ProducerFailureIsIsolated(t *testing.T) {
	pool := NewPool(4)
	defer pool.Shutdown()

	var mu sync.Mutex
	var consumed []int

	// producer(2) fails, producer(1) yields two values, producer(3) one:
	// the consumer must run exactly three times.
	err := Pipeline(pool, func(n int) ([]int, error) {
		switch n {
		case 1:
			return []int{10, 11}, nil
		case 2:
			return nil, errors.New("provider down")
		case 3:
			return []int{20}, nil
		}
		return nil, nil
	}, func(v int) error {
		mu.Lock()
		consumed = append(consumed, v)
		mu.Unlock()
		return nil
	}, []int{1, 2, 3})

	require.NoError(t, err)
	sort.Ints(consumed)
	assert.Equal(t, []int{10, 11, 20}, consumed)
}

func TestPipeline_EmptyProducerOutputForwardsNothing(t *testing.T) {
	pool := NewPool(4)
	defer pool.Shutdown()

	var consumerCalls int64
	err := Pipeline(pool, func(int) ([]int, error) {
		return nil, nil
	}, func(int) error {
		atomic.AddInt64(&consumerCalls, 1)
		return nil
	}, []int{1, 2, 3})

	require.NoError(t, err)
	assert.Equal(t, int64(0), atomic.LoadInt64(&consumerCalls))
}

func TestPipeline_ConsumerFailureDoesNotPropagate(t *testing.T) {
	pool := NewPool(4)
	defer pool.Shutdown()

	var consumerCalls int64
	err := Pipeline(pool, func(n int) ([]int, error) {
		return []int{n}, nil
	}, func(int) error {
		atomic.AddInt64(&consumerCalls, 1)
		return errors.New("consumer failed")
	}, []int{1, 2, 3})

	require.NoError(t, err)
	assert.Equal(t, int64(3), atomic.LoadInt64(&consumerCalls))
}

func TestPipeline_PanickingProducerIsIsolated(t *testing.T) {
	pool := NewPool(4)
	defer pool.Shutdown()

	var mu sync.Mutex
	var consumed []int

	err := Pipeline(pool, func(n int) ([]int, error) {
		if n == 2 {
			panic("bad provider")
		}
		return []int{n}, nil
	}, func(v int) error {
		mu.Lock()
		consumed = append(consumed, v)
		mu.Unlock()
		return nil
	}, []int{1, 2, 3})

	require.NoError(t, err)
	sort.Ints(consumed)
	assert.Equal(t, []int{1, 3}, consumed)
}

func TestPipeline_PoolClosed(t *testing.T) {
	pool := NewPool(2)
	pool.Shutdown()

	err := Pipeline(pool, func(n int) ([]int, error) { return []int{n}, nil },
		func(int) error { return nil }, []int{1})
	assert.ErrorIs(t, err, ErrPoolClosed)
}
