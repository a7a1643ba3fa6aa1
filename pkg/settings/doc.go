// Package settings provides read access to the externally owned
// configuration store that holds per-provider enablement flags.
//
// # Overview
//
// The engine never writes settings; it only reads keys of the form
// "provider.<name>". The store itself is owned by the surrounding
// application (a settings UI, an installer wizard), so this package is a
// thin set of backends behind one Store interface:
//
//	Memory: in-process map, used by tests and embedding callers
//	File:   flat YAML file, hot-reloaded on change
//	Redis:  shared store for multi-process deployments
//	SQLite: local single-file store
//
// # Usage
//
//	store, err := settings.New(settings.Config{Type: "file", FilePath: "/etc/scrapekit/settings.yaml"})
//	value, err := store.Get(ctx, "provider.magnetdl")
//	if errors.Is(err, settings.ErrKeyNotFound) { ... }
//
// # Related Packages
//
//   - pkg/sources: the enablement oracle reads through Store
package settings
