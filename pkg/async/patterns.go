package async

import "fmt"

// RunAndWait submits one task per item and blocks until every task has
// finished, success or failure. Results and per-item errors are discarded;
// this is the pattern for pure side-effecting fan-out. A failing item never
// aborts its siblings or the wait.
//
// The only error returned is ErrPoolClosed when the pool refused a
// submission; tasks submitted before that point are still waited for.
func RunAndWait[T any](p *Pool, fn func(T) error, items []T) error {
	tasks := make([]*Task, 0, len(items))
	var submitErr error

	for _, item := range items {
		item := item
		t, err := p.Submit(func() (any, error) {
			return nil, fn(item)
		})
		if err != nil {
			submitErr = err
			break
		}
		tasks = append(tasks, t)
	}

	for _, t := range tasks {
		t.Wait()
	}

	return submitErr
}

// Map submits one task per item and returns the results in submission order,
// regardless of completion timing. For failed items the zero value is left in
// place and the first failure is returned after the whole batch has joined.
func Map[T, R any](p *Pool, fn func(T) (R, error), items []T) ([]R, error) {
	tasks := make([]*Task, 0, len(items))
	for _, item := range items {
		item := item
		t, err := p.Submit(func() (any, error) {
			return fn(item)
		})
		if err != nil {
			for _, submitted := range tasks {
				submitted.Wait()
			}
			return nil, err
		}
		tasks = append(tasks, t)
	}

	results := make([]R, len(items))
	var firstErr error
	for i, t := range tasks {
		v, err := t.Wait()
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		results[i] = v.(R)
	}

	return results, firstErr
}

// Pipeline runs a two-stage producer/consumer graph on the pool.
//
// Stage one submits one producer task per input item. As each producer
// completes, in completion order, its output fans out consumer tasks: a nil
// or empty slice forwards nothing, otherwise one consumer task is submitted
// per element. A failing producer removes only its own contribution; it stops
// neither stage. Stage two is joined before Pipeline returns; consumer
// failures are logged at warning level and swallowed, matching the producer
// isolation semantics.
//
// Pipeline returns nothing but an ErrPoolClosed submission error; the side
// effects of the consumer stage are the caller's observable outcome.
func Pipeline[T, R any](p *Pool, producer func(T) ([]R, error), consumer func(R) error, items []T) error {
	type produced struct {
		values []R
		err    error
	}

	completed := make(chan produced, len(items))
	submitted := 0
	for _, item := range items {
		item := item
		_, err := p.Submit(func() (any, error) {
			var out produced
			// The completion-order handoff must happen even when the
			// producer panics, or the collection loop below would hang.
			func() {
				defer func() {
					if r := recover(); r != nil {
						out.err = fmt.Errorf("pipeline producer panic: %v", r)
					}
				}()
				out.values, out.err = producer(item)
			}()
			completed <- out
			return nil, out.err
		})
		if err != nil {
			break
		}
		submitted++
	}

	var consumers []*Task
	closed := submitted < len(items)
	for i := 0; i < submitted; i++ {
		out := <-completed
		if out.err != nil {
			// Producer failure is isolated to its own item.
			continue
		}
		for _, v := range out.values {
			v := v
			t, err := p.Submit(func() (any, error) {
				return nil, consumer(v)
			})
			if err != nil {
				closed = true
				break
			}
			consumers = append(consumers, t)
		}
	}

	for _, t := range consumers {
		if _, err := t.Wait(); err != nil {
			p.log.WithError(err).Warn("Pipeline consumer task failed")
		}
	}

	if closed {
		return ErrPoolClosed
	}
	return nil
}
