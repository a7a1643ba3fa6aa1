package sources

import (
	"context"
	"fmt"
)

// Query describes one title lookup fanned out across providers.
type Query struct {
	Title   string
	Year    int
	IMDB    string
	Season  int
	Episode int
}

// IsEpisode reports whether the query targets a single episode.
func (q Query) IsEpisode() bool {
	return q.Season > 0 && q.Episode > 0
}

// Result is one candidate stream returned by a provider source.
type Result struct {
	ID       string
	Provider string
	Title    string
	URL      string
	Quality  string
	Size     int64
	Seeders  int
	Package  bool // part of a season or collection pack
}

// Source is the capability object every provider exposes.
type Source interface {
	// Query returns candidate results for q. Blocking network I/O inside
	// is expected; the caller bounds concurrency, not the provider.
	Query(ctx context.Context, q Query) ([]Result, error)

	// PackCapable reports whether the provider can resolve season or
	// collection packs.
	PackCapable() bool
}

// Factory constructs a provider's source object.
type Factory func() (Source, error)

// Descriptor identifies a discoverable provider. Immutable once enumerated.
type Descriptor struct {
	Category string
	Name     string
	Location string // manifest path
}

// Loaded pairs a provider name with its instantiated source. It is never
// mutated after creation and is rebuilt from scratch each discovery cycle.
type Loaded struct {
	Name   string
	Source Source
}

// LoadError reports a single provider's failure to load. Under the default
// discovery policy it is logged and the provider is skipped; it is never a
// batch-fatal condition.
type LoadError struct {
	Name string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load provider %q: %v", e.Name, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
