package settings

import (
	"context"
	"errors"
	"fmt"
)

// ErrKeyNotFound is returned by Get when the key is absent from the store.
var ErrKeyNotFound = errors.New("settings: key not found")

// Store is the read-only view of the external settings store.
type Store interface {
	// Get returns the raw string value for key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) (string, error)
	// Close releases backend resources. Safe to call more than once.
	Close() error
}

// Config selects and configures a settings backend.
type Config struct {
	Type string // "memory", "file", "redis", "sqlite"

	// File config
	FilePath string
	Watch    bool

	// Redis config
	RedisURL      string
	RedisPassword string
	RedisDB       int

	// SQLite config
	SQLitePath string
}

// DefaultConfig returns the backend configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Type:  "memory",
		Watch: true,
	}
}

// New constructs the backend named by cfg.Type.
func New(cfg Config) (Store, error) {
	switch cfg.Type {
	case "", "memory":
		return NewMemory(nil), nil
	case "file":
		return NewFile(cfg.FilePath, cfg.Watch)
	case "redis":
		return NewRedis(cfg)
	case "sqlite":
		return OpenSQLite(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown settings backend: %q", cfg.Type)
	}
}
