package sources

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/scrapekit/scrapekit/pkg/settings"
)

// failingStore always errors on Get.
type failingStore struct{}

func (failingStore) Get(context.Context, string) (string, error) {
	return "", errors.New("store unreachable")
}

func (failingStore) Close() error { return nil }

func TestOracle_EnabledFlag(t *testing.T) {
	store := settings.NewMemory(map[string]string{
		"provider.magnetdl": "true",
		"provider.eztv":     "false",
		"provider.rarbg":    "TRUE", // case sensitive: not enabled
	})
	oracle := NewOracle(store, FailOpen, logrus.New())

	assert.True(t, oracle.IsEnabled(context.Background(), "magnetdl"))
	assert.False(t, oracle.IsEnabled(context.Background(), "eztv"))
	assert.False(t, oracle.IsEnabled(context.Background(), "rarbg"))
}

func TestOracle_AbsentFlagFailsOpen(t *testing.T) {
	oracle := NewOracle(settings.NewMemory(nil), FailOpen, logrus.New())

	assert.True(t, oracle.IsEnabled(context.Background(), "magnetdl"))
}

func TestOracle_AbsentFlagFailsClosed(t *testing.T) {
	oracle := NewOracle(settings.NewMemory(nil), FailClosed, logrus.New())

	assert.False(t, oracle.IsEnabled(context.Background(), "magnetdl"))
}

func TestOracle_LookupErrorFailsOpen(t *testing.T) {
	oracle := NewOracle(failingStore{}, FailOpen, logrus.New())

	assert.True(t, oracle.IsEnabled(context.Background(), "magnetdl"))
}

func TestOracle_LookupErrorFailsClosed(t *testing.T) {
	oracle := NewOracle(failingStore{}, FailClosed, logrus.New())

	assert.False(t, oracle.IsEnabled(context.Background(), "magnetdl"))
}
