package sources

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/scrapekit/scrapekit/pkg/settings"
)

// stubSource is a canned provider source for tests.
type stubSource struct {
	name        string
	results     []Result
	queryErr    error
	packCapable bool
}

func (s *stubSource) Query(context.Context, Query) ([]Result, error) {
	return s.results, s.queryErr
}

func (s *stubSource) PackCapable() bool {
	return s.packCapable
}

// registerStub registers a driver producing a stubSource and removes it when
// the test ends.
func registerStub(t *testing.T, name string, packCapable bool) {
	t.Helper()
	require.NoError(t, Register(name, func() (Source, error) {
		return &stubSource{name: name, packCapable: packCapable}, nil
	}))
	t.Cleanup(func() { unregister(name) })
}

// registerBroken registers a driver whose factory always fails.
func registerBroken(t *testing.T, name string) {
	t.Helper()
	require.NoError(t, Register(name, func() (Source, error) {
		return nil, errors.New("driver is broken")
	}))
	t.Cleanup(func() { unregister(name) })
}

func unregister(name string) {
	mu.Lock()
	defer mu.Unlock()
	delete(factories, name)
}

// writeProviderTree materializes root/<category>/<name>.yaml manifests.
func writeProviderTree(t *testing.T, tree map[string][]string) string {
	t.Helper()
	root := t.TempDir()
	for category, names := range tree {
		dir := filepath.Join(root, category)
		require.NoError(t, os.MkdirAll(dir, 0755))
		for _, name := range names {
			writeManifest(t, dir, name, fmt.Sprintf("name: %s\n", name))
		}
	}
	return root
}

func writeManifest(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".yaml"), []byte(content), 0644))
}

// newTestDiscovery wires a discovery over the given tree and settings.
func newTestDiscovery(t *testing.T, root string, values map[string]string) *Discovery {
	t.Helper()
	log := logrus.New()
	log.SetOutput(os.Stderr)
	oracle := NewOracle(settings.NewMemory(values), FailOpen, log)
	loader := NewLoader(log, true)
	return NewDiscovery(root, oracle, loader, log)
}

func loadedNames(loaded []Loaded) []string {
	names := make([]string, 0, len(loaded))
	for _, l := range loaded {
		names = append(names, l.Name)
	}
	return names
}
