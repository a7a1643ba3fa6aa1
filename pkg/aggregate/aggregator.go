package aggregate

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/scrapekit/scrapekit/pkg/async"
	"github.com/scrapekit/scrapekit/pkg/sources"
)

// dedupeWindow bounds how many result fingerprints one search remembers.
const dedupeWindow = 4096

// Aggregator drives concurrent queries across a set of loaded providers.
type Aggregator struct {
	pool    *async.Pool
	log     *logrus.Logger
	metrics *aggregateMetrics
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithMetrics registers per-provider result and failure counters.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(a *Aggregator) {
		a.metrics = newAggregateMetrics(reg)
	}
}

// New creates an aggregator over the shared pool.
func New(pool *async.Pool, log *logrus.Logger, opts ...Option) *Aggregator {
	if log == nil {
		log = logrus.New()
	}
	a := &Aggregator{pool: pool, log: log}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Search queries every loaded provider concurrently and returns the merged,
// deduplicated result set sorted by seeders, then size. Provider failures
// are logged and drop only that provider's contribution. The loaded set is
// whatever the caller's last discovery cycle produced; Search never caches
// it.
func (a *Aggregator) Search(ctx context.Context, loaded []sources.Loaded, q sources.Query) []sources.Result {
	seen, err := lru.New[string, struct{}](dedupeWindow)
	if err != nil {
		// Only reachable with a non-positive size constant.
		panic(err)
	}

	var (
		mu      sync.Mutex
		results []sources.Result
	)

	collect := func(r sources.Result) error {
		key := fingerprint(r)
		mu.Lock()
		defer mu.Unlock()
		if _, dup := seen.Get(key); dup {
			return nil
		}
		seen.Add(key, struct{}{})
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		results = append(results, r)
		if a.metrics != nil {
			a.metrics.results.WithLabelValues(r.Provider).Inc()
		}
		return nil
	}

	query := func(l sources.Loaded) ([]sources.Result, error) {
		found, qerr := l.Source.Query(ctx, q)
		if qerr != nil {
			a.log.WithError(qerr).WithField("provider", l.Name).Warn("Provider query failed")
			if a.metrics != nil {
				a.metrics.failures.WithLabelValues(l.Name).Inc()
			}
			return nil, qerr
		}
		for i := range found {
			if found[i].Provider == "" {
				found[i].Provider = l.Name
			}
		}
		return found, nil
	}

	if err := async.Pipeline(a.pool, query, collect, loaded); err != nil {
		a.log.WithError(err).Warn("Search aborted: pool unavailable")
		return nil
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Seeders != results[j].Seeders {
			return results[i].Seeders > results[j].Seeders
		}
		return results[i].Size > results[j].Size
	})
	return results
}

// fingerprint produces the dedupe key for a result. URL identity wins;
// providers that return no URL fall back to title and size.
func fingerprint(r sources.Result) string {
	if r.URL != "" {
		return strings.ToLower(r.URL)
	}
	return fmt.Sprintf("%s|%d", strings.ToLower(r.Title), r.Size)
}
