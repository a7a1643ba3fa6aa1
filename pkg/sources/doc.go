// Package sources implements provider discovery for the scraper engine.
//
// # Overview
//
// A provider is a self-contained "source" plugin that answers queries for
// streamable results. Providers live on disk under a two-level layout:
//
//	<root>/<category>/<name>.yaml
//
// The top level groups providers by category (for example "torrents" or
// "hosters"); each leaf manifest names a provider and the registered driver
// that constructs it. Subdirectories below a category are not leaf providers
// and are skipped.
//
// Because Go resolves code at build time rather than import time, the
// dynamic-loading behavior of the original system is represented as a
// factory registry: provider packages call Register in an init function, and
// discovery resolves what it finds on disk against that registry.
//
// # Discovery
//
//	oracle := sources.NewOracle(store, sources.FailOpen, log)
//	loader := sources.NewLoader(log, cfg.Diagnostics)
//	disco := sources.NewDiscovery(cfg.ProviderRoot, oracle, loader, log)
//
//	loaded, _ := disco.Discover(ctx, nil, false)
//
// Discover never fails under the default SkipAndLog policy: a provider whose
// load fails is silently absent from the output, and a missing root yields an
// empty result. Output order is completion order of the parallel loads;
// callers must not depend on it. Every call re-enumerates and re-loads from
// scratch; nothing is cached across cycles.
//
// # Enablement
//
// The oracle reads "provider.<name>" from the settings store. The value
// "true" enables a provider; any other correctly-read value disables it. A
// failed lookup is fail-open by default so configuration breakage never
// silently hides providers.
//
// # Related Packages
//
//   - pkg/settings: the store the oracle reads
//   - pkg/aggregate: queries the loaded set
package sources
