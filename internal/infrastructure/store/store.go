package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Undanomi/OSINT-GAME-sub000/internal/infrastructure/logging"
)

// ErrClosed is returned by operations on a closed store
var ErrClosed = errors.New("store is closed")

// KV is a small durable key-value store
type KV interface {
	// Read returns the values present for keys. Missing keys are absent from the map.
	Read(ctx context.Context, keys ...string) (map[string][]byte, error)
	// Write stores all values in one transaction.
	Write(ctx context.Context, values map[string][]byte) error
	// Delete removes keys in one transaction. Missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// Backend names
const (
	BackendBadger = "badger"
	BackendSQLite = "sqlite"
)

// Config selects and configures a backend
type Config struct {
	Backend  string
	Path     string
	InMemory bool
	Logger   *logging.Logger
}

// Open creates the configured backend
func Open(cfg Config) (KV, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", BackendBadger:
		return OpenBadger(BadgerConfig{
			Path:       cfg.Path,
			InMemory:   cfg.InMemory,
			SyncWrites: !cfg.InMemory,
			Logger:     cfg.Logger,
		})
	case BackendSQLite:
		path := cfg.Path
		if cfg.InMemory {
			path = ":memory:"
		}
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.Backend)
	}
}
