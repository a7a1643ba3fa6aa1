// Package observability provides structured logging, Prometheus metrics,
// health probes, and graceful-shutdown plumbing for the scraper engine.
//
// # Overview
//
// Logger: structured JSON logging on stdlib slog, with a level knob and
// context propagation
//
//	logger := observability.NewLogger(observability.InfoLevel, os.Stdout)
//	logger.WithField("provider", name).Warn("load failed")
//
// Metrics: engine-level metric families (discovery cycles, loaded provider
// counts) on a caller-owned Prometheus registry; the pool and aggregator
// register their own collectors against the same registry
//
// HealthChecker: liveness/readiness HTTP handlers that probe the settings
// store and the worker pool state
//
// ShutdownManager: signal-driven graceful shutdown with registered hooks
// (pool drain, store close) and a hard timeout
//
// # Related Packages
//
//   - pkg/async: registers pool collectors via async.WithMetrics
//   - pkg/aggregate: registers per-provider counters
package observability
