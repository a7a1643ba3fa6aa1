package sources

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// LoadPolicy decides what a per-provider load failure means to a batch.
type LoadPolicy int

const (
	// SkipAndLog drops the failing provider from the batch and logs it.
	// This is the default: one broken provider must not take down the rest.
	SkipAndLog LoadPolicy = iota
	// Propagate surfaces the first load failure to the caller.
	Propagate
)

// Loader resolves a descriptor's manifest against the driver registry and
// instantiates the provider's source. Per-provider failures are isolated:
// any error or panic during construction comes back as a *LoadError.
type Loader struct {
	log         *logrus.Logger
	diagnostics bool
}

// NewLoader creates a provider loader. When diagnostics is set, load
// failures are logged at warning level with the provider name and cause.
func NewLoader(log *logrus.Logger, diagnostics bool) *Loader {
	if log == nil {
		log = logrus.New()
	}
	return &Loader{log: log, diagnostics: diagnostics}
}

// Load instantiates the provider named by the descriptor.
func (l *Loader) Load(d Descriptor) (Loaded, error) {
	loaded, err := l.load(d)
	if err != nil {
		if l.diagnostics {
			l.log.WithError(err).WithFields(logrus.Fields{
				"provider": d.Name,
				"category": d.Category,
			}).Warn("Failed to load provider")
		}
		return Loaded{}, err
	}
	return loaded, nil
}

func (l *Loader) load(d Descriptor) (loaded Loaded, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &LoadError{Name: d.Name, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	manifest, merr := LoadManifest(d.Location)
	if merr != nil {
		return Loaded{}, &LoadError{Name: d.Name, Err: merr}
	}
	if manifest.Name != d.Name {
		return Loaded{}, &LoadError{
			Name: d.Name,
			Err:  fmt.Errorf("manifest names %q, file names %q", manifest.Name, d.Name),
		}
	}

	factory, ferr := Lookup(manifest.DriverName())
	if ferr != nil {
		return Loaded{}, &LoadError{Name: d.Name, Err: ferr}
	}

	source, serr := factory()
	if serr != nil {
		return Loaded{}, &LoadError{Name: d.Name, Err: serr}
	}
	if source == nil {
		return Loaded{}, &LoadError{Name: d.Name, Err: fmt.Errorf("driver %q returned nil source", manifest.DriverName())}
	}

	return Loaded{Name: d.Name, Source: source}, nil
}
