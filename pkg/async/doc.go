// Package async provides the shared bounded worker pool and the coordination
// patterns built on top of it.
//
// # Overview
//
// One Pool instance is created at process start and handed to every component
// that needs concurrent execution: provider discovery, query fan-out, and the
// producer/consumer pipeline all draw from the same fixed set of workers. The
// pool has a fixed worker count and an unbounded FIFO task queue, so the
// number of concurrently executing tasks never exceeds the configured
// capacity no matter how many call sites submit at once.
//
// # Key Functions
//
// Pool: Fixed-capacity task executor with an explicit lifecycle
//
//	pool := async.NewPool(40, async.WithLogger(log))
//	defer pool.Shutdown()
//
//	task, err := pool.Submit(func() (any, error) {
//		return fetchSources(query)
//	})
//	result, err := task.Wait()
//
// RunAndWait: Submit one task per item, block until all finish, discard results
//
//	async.RunAndWait(pool, warmProvider, providers)
//
// Map: Submit one task per item, results returned in submission order
//
//	results, err := async.Map(pool, resolveTitle, titles)
//
// Pipeline: Two-stage producer/consumer graph with completion-order handoff
//
//	async.Pipeline(pool, queryProvider, collectResult, loaded)
//
// # Failure Isolation
//
// A failing or panicking task never aborts sibling tasks or the batch join.
// Pipeline producer failures remove only their own contribution; consumer
// failures are logged and swallowed. Submission after Shutdown has begun
// returns ErrPoolClosed.
//
// # Limitations
//
// No per-task cancellation or deadline is exposed. Once submitted, a task
// runs to completion; callers needing a timeout must treat an unreturned
// batch as abandoned.
//
// # Related Packages
//
//   - pkg/sources: bounds its parallel loads independently of this pool
//   - pkg/aggregate: drives Pipeline across loaded sources
package async
