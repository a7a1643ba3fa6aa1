package async

import (
	"errors"
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// DefaultCapacity is the worker count used when no explicit capacity is
// configured. It matches the upstream scraper deployments this engine was
// extracted from.
const DefaultCapacity = 40

// ErrPoolClosed is returned by Submit once Shutdown has begun. Submitting
// after shutdown is a usage error on the caller's side.
var ErrPoolClosed = errors.New("async: pool is shut down")

// State describes the pool lifecycle: running -> shutting-down -> terminated.
type State int32

const (
	StateRunning State = iota
	StateShuttingDown
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateShuttingDown:
		return "shutting-down"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Task is a submitted unit of work. The pool owns it until completion; after
// Wait returns, ownership of the result transfers to the caller.
type Task struct {
	fn    func() (any, error)
	done  chan struct{}
	value any
	err   error
}

// Wait blocks until the task has finished and returns its result. A panic
// inside the task body is reported as an error, never re-raised.
func (t *Task) Wait() (any, error) {
	<-t.done
	return t.value, t.err
}

// Done returns a channel closed when the task has finished.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Pool is a fixed-capacity concurrent task executor with an unbounded
// internal queue. It is safe for use from any number of goroutines.
type Pool struct {
	capacity int
	log      *logrus.Logger
	metrics  *poolMetrics

	mu      sync.Mutex
	cond    *sync.Cond
	queue   []*Task
	state   State
	workers sync.WaitGroup
}

// Option configures a Pool.
type Option func(*Pool)

// WithLogger sets the logger used for recovered panics and swallowed
// pattern-level failures.
func WithLogger(log *logrus.Logger) Option {
	return func(p *Pool) {
		if log != nil {
			p.log = log
		}
	}
}

// WithMetrics registers the pool's Prometheus collectors with the given
// registerer.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(p *Pool) {
		p.metrics = newPoolMetrics(reg)
	}
}

// NewPool creates a pool with the given worker capacity and starts its
// workers. Capacity values below one fall back to DefaultCapacity.
func NewPool(capacity int, opts ...Option) *Pool {
	if capacity < 1 {
		capacity = DefaultCapacity
	}

	p := &Pool{
		capacity: capacity,
		log:      logrus.New(),
		state:    StateRunning,
	}
	p.cond = sync.NewCond(&p.mu)

	for _, opt := range opts {
		opt(p)
	}

	for i := 0; i < capacity; i++ {
		p.workers.Add(1)
		go p.worker()
	}

	return p
}

// Capacity returns the configured worker count.
func (p *Pool) Capacity() int {
	return p.capacity
}

// State returns the current lifecycle state.
func (p *Pool) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Submit enqueues fn for execution and returns a handle to its eventual
// result. It returns ErrPoolClosed once Shutdown has begun.
func (p *Pool) Submit(fn func() (any, error)) (*Task, error) {
	t := &Task{fn: fn, done: make(chan struct{})}

	p.mu.Lock()
	if p.state != StateRunning {
		p.mu.Unlock()
		return nil, ErrPoolClosed
	}
	p.queue = append(p.queue, t)
	depth := len(p.queue)
	p.mu.Unlock()
	p.cond.Signal()

	if p.metrics != nil {
		p.metrics.submitted.Inc()
		p.metrics.queueDepth.Set(float64(depth))
	}

	return t, nil
}

// Shutdown transitions the pool to shutting-down, blocks until every
// in-flight and queued task has completed, then terminates the workers.
// No new submissions are accepted once shutdown has begun. Shutdown is
// idempotent; concurrent callers all block until termination.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	if p.state == StateRunning {
		p.state = StateShuttingDown
	}
	p.mu.Unlock()
	p.cond.Broadcast()

	p.workers.Wait()

	p.mu.Lock()
	p.state = StateTerminated
	p.mu.Unlock()
}

func (p *Pool) worker() {
	defer p.workers.Done()

	for {
		p.mu.Lock()
		for len(p.queue) == 0 && p.state == StateRunning {
			p.cond.Wait()
		}
		if len(p.queue) == 0 {
			// Shutting down and fully drained.
			p.mu.Unlock()
			return
		}
		t := p.queue[0]
		p.queue = p.queue[1:]
		depth := len(p.queue)
		p.mu.Unlock()

		if p.metrics != nil {
			p.metrics.queueDepth.Set(float64(depth))
		}
		p.run(t)
	}
}

func (p *Pool) run(t *Task) {
	if p.metrics != nil {
		p.metrics.inflight.Inc()
	}

	defer func() {
		if r := recover(); r != nil {
			t.err = fmt.Errorf("task panic: %v", r)
			p.log.WithFields(logrus.Fields{
				"panic": r,
				"stack": string(debug.Stack()),
			}).Warn("Recovered panic in pool task")
		}
		if p.metrics != nil {
			p.metrics.inflight.Dec()
			if t.err != nil {
				p.metrics.completed.WithLabelValues("error").Inc()
			} else {
				p.metrics.completed.WithLabelValues("ok").Inc()
			}
		}
		close(t.done)
	}()

	t.value, t.err = t.fn()
}
