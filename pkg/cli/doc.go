// Package cli provides the scrapekit command-line interface for provider management.
//
// # Overview
//
// This package implements the `scrapekit` CLI tool for inspecting the provider
// tree, loading the enabled sources, checking pack capability and running
// aggregated searches from the terminal.
//
// # Commands
//
// providers: List provider manifests under the provider root
//
//	scrapekit providers \
//		-root ./providers \
//		-categories torrents \
//		-all  # include disabled providers
//
// sources: Discover and load the enabled sources
//
//	scrapekit sources \
//		-root ./providers \
//		-settings-backend file \
//		-settings-file ./settings.yaml
//
// pack: List pack-capable providers in a category
//
//	scrapekit pack \
//		-root ./providers \
//		-category torrents
//
// search: Run an aggregated search across the enabled sources
//
//	scrapekit search \
//		-root ./providers \
//		-title "Big Buck Bunny" \
//		-year 2008 \
//		-workers 40 \
//		-json
//
// # Related Packages
//
//   - pkg/sources: Discovery, enablement and loading
//   - pkg/aggregate: Fan-out search and dedupe
//   - pkg/settings: Enablement setting backends
package cli
