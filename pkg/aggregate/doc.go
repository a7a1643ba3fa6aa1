// Package aggregate fans a query across loaded provider sources and collects
// the combined result set.
//
// # Overview
//
// The aggregator is the main downstream consumer of the discovery engine: it
// takes the loaded set from one discovery cycle plus the shared worker pool,
// runs one producer task per provider (the provider's Query call, network
// I/O included) and one consumer task per returned result, then hands back a
// deduplicated, seeder-sorted slice.
//
//	agg := aggregate.New(pool, log)
//	results := agg.Search(ctx, loaded, sources.Query{Title: "...", Year: 2024})
//
// A provider that fails or hangs affects only its own contribution; the
// pipeline's per-item isolation guarantees the rest of the batch completes.
//
// # Related Packages
//
//   - pkg/async: the pipeline pattern this is built on
//   - pkg/sources: the loaded provider handles
package aggregate
