package sources

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// DefaultParallelism bounds how many provider loads run at once. It is
// deliberately smaller than the shared query pool: discovery's construction
// cost must not starve query traffic, and the two capacities are independent
// (running discovery from inside a pool task can therefore exceed either
// nominal bound on its own — a documented hazard, not a guarantee).
const DefaultParallelism = 10

// Discovery enumerates the provider tree and loads the included set.
type Discovery struct {
	root        string
	oracle      *Oracle
	loader      *Loader
	parallelism int
	policy      LoadPolicy
	log         *logrus.Logger
}

// NewDiscovery creates a discovery service over the given provider root.
func NewDiscovery(root string, oracle *Oracle, loader *Loader, log *logrus.Logger) *Discovery {
	if log == nil {
		log = logrus.New()
	}
	return &Discovery{
		root:        root,
		oracle:      oracle,
		loader:      loader,
		parallelism: DefaultParallelism,
		policy:      SkipAndLog,
		log:         log,
	}
}

// SetParallelism overrides the discovery-local load concurrency bound.
func (d *Discovery) SetParallelism(n int) {
	if n > 0 {
		d.parallelism = n
	}
}

// SetLoadPolicy overrides what a per-provider load failure means.
func (d *Discovery) SetLoadPolicy(p LoadPolicy) {
	d.policy = p
}

// Discover enumerates categories under the root, applies the category filter
// and the enablement oracle, and loads the surviving descriptors in
// parallel.
//
// When categories is non-empty, only matching category directories are
// visited; names with no matching directory are silently ignored. When
// includeDisabled is set, enablement flags are not consulted — the full
// loadable set comes back, which is what a configuration UI listing wants.
//
// Under the default SkipAndLog policy Discover never returns an error: a
// failing load contributes nothing, and a missing or unreadable root yields
// an empty result. Output order is the completion order of the parallel
// loads.
func (d *Discovery) Discover(ctx context.Context, categories []string, includeDisabled bool) ([]Loaded, error) {
	descriptors := d.enumerate(ctx, categories, includeDisabled)
	if len(descriptors) == 0 {
		return nil, nil
	}

	var (
		resultMu sync.Mutex
		results  []Loaded
	)

	var g errgroup.Group
	g.SetLimit(d.parallelism)

	for _, desc := range descriptors {
		desc := desc
		g.Go(func() error {
			loaded, err := d.loader.Load(desc)
			if err != nil {
				if d.policy == Propagate {
					return err
				}
				// Loader already logged; the provider is simply absent.
				return nil
			}
			resultMu.Lock()
			results = append(results, loaded)
			resultMu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Descriptors returns the descriptors Discover would attempt to load,
// without loading them. Useful for operator-facing listings.
func (d *Discovery) Descriptors(ctx context.Context, categories []string, includeDisabled bool) []Descriptor {
	return d.enumerate(ctx, categories, includeDisabled)
}

func (d *Discovery) enumerate(ctx context.Context, categories []string, includeDisabled bool) []Descriptor {
	entries, err := os.ReadDir(d.root)
	if err != nil {
		d.log.WithError(err).WithField("root", d.root).Warn("Failed to enumerate provider root")
		return nil
	}

	wanted := make(map[string]bool, len(categories))
	for _, c := range categories {
		wanted[c] = true
	}

	var descriptors []Descriptor
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if len(wanted) > 0 && !wanted[entry.Name()] {
			continue
		}
		descriptors = append(descriptors, d.enumerateCategory(ctx, entry.Name(), includeDisabled)...)
	}
	return descriptors
}

func (d *Discovery) enumerateCategory(ctx context.Context, category string, includeDisabled bool) []Descriptor {
	dir := filepath.Join(d.root, category)
	entries, err := os.ReadDir(dir)
	if err != nil {
		d.log.WithError(err).WithField("category", category).Warn("Failed to enumerate category")
		return nil
	}

	var descriptors []Descriptor
	for _, entry := range entries {
		name, ok := leafName(entry)
		if !ok {
			continue
		}
		if !includeDisabled && !d.oracle.IsEnabled(ctx, name) {
			continue
		}
		descriptors = append(descriptors, Descriptor{
			Category: category,
			Name:     name,
			Location: filepath.Join(dir, entry.Name()),
		})
	}
	return descriptors
}

// leafName extracts the provider name from a directory entry, rejecting
// non-leaf entries (subdirectories) and anything that is not a manifest.
func leafName(entry os.DirEntry) (string, bool) {
	if entry.IsDir() {
		return "", false
	}
	base := entry.Name()
	ext := filepath.Ext(base)
	if ext != ".yaml" && ext != ".yml" {
		return "", false
	}
	return strings.TrimSuffix(base, ext), true
}
