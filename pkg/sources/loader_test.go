package sources

import (
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Load(t *testing.T) {
	registerStub(t, "magnetdl", true)
	dir := t.TempDir()
	writeManifest(t, dir, "magnetdl", "name: magnetdl\n")

	loader := NewLoader(logrus.New(), false)
	loaded, err := loader.Load(Descriptor{
		Category: "torrents",
		Name:     "magnetdl",
		Location: filepath.Join(dir, "magnetdl.yaml"),
	})

	require.NoError(t, err)
	assert.Equal(t, "magnetdl", loaded.Name)
	assert.True(t, loaded.Source.PackCapable())
}

func TestLoader_UnknownDriver(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "mystery", "name: mystery\n")

	loader := NewLoader(logrus.New(), true)
	_, err := loader.Load(Descriptor{Name: "mystery", Location: filepath.Join(dir, "mystery.yaml")})

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "mystery", loadErr.Name)
}

func TestLoader_ManifestNameMismatch(t *testing.T) {
	registerStub(t, "impostor", false)
	dir := t.TempDir()
	writeManifest(t, dir, "impostor", "name: somebody-else\n")

	loader := NewLoader(logrus.New(), false)
	_, err := loader.Load(Descriptor{Name: "impostor", Location: filepath.Join(dir, "impostor.yaml")})

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, loadErr.Error(), "impostor")
}

func TestLoader_FactoryError(t *testing.T) {
	registerBroken(t, "brokendl")
	dir := t.TempDir()
	writeManifest(t, dir, "brokendl", "name: brokendl\n")

	loader := NewLoader(logrus.New(), true)
	_, err := loader.Load(Descriptor{Name: "brokendl", Location: filepath.Join(dir, "brokendl.yaml")})

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.ErrorContains(t, loadErr.Err, "broken")
}

func TestLoader_FactoryPanicIsCaptured(t *testing.T) {
	require.NoError(t, Register("volatile", func() (Source, error) {
		panic("factory exploded")
	}))
	t.Cleanup(func() { unregister("volatile") })

	dir := t.TempDir()
	writeManifest(t, dir, "volatile", "name: volatile\n")

	loader := NewLoader(logrus.New(), true)
	_, err := loader.Load(Descriptor{Name: "volatile", Location: filepath.Join(dir, "volatile.yaml")})

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.ErrorContains(t, loadErr.Err, "factory exploded")
}

func TestLoader_NilSource(t *testing.T) {
	require.NoError(t, Register("hollow", func() (Source, error) {
		return nil, nil
	}))
	t.Cleanup(func() { unregister("hollow") })

	dir := t.TempDir()
	writeManifest(t, dir, "hollow", "name: hollow\n")

	loader := NewLoader(logrus.New(), false)
	_, err := loader.Load(Descriptor{Name: "hollow", Location: filepath.Join(dir, "hollow.yaml")})

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.ErrorContains(t, loadErr.Err, "nil source")
}
