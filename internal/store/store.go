// Package store persists raw calculator inputs as string key/value pairs.
// Writes are last-write-wins; there is no history.
package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/iwvelando/staffing-cost/internal/config"
	"github.com/iwvelando/staffing-cost/pkg/constants"
	"go.uber.org/zap"
)

// Store is a persistent string key/value store.
type Store interface {
	// Load returns every stored entry whose key starts with prefix.
	Load(ctx context.Context, prefix string) (map[string]string, error)
	// Save upserts every entry.
	Save(ctx context.Context, entries map[string]string) error
	// Remove deletes every entry whose key starts with prefix.
	Remove(ctx context.Context, prefix string) error
	Close() error
}

// Open returns the store selected by cfg.Driver.
func Open(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Driver {
	case "", constants.StorageDriverMemory:
		logger.Debug("using in-memory storage", zap.String("op", "store.open"))
		return NewMemory(), nil
	case constants.StorageDriverSQLite:
		path := cfg.Path
		if path == "" {
			path = constants.DefaultSQLitePath
		}
		return OpenSQLite(ctx, path, logger)
	case constants.StorageDriverMongo:
		db := cfg.Database
		if db == "" {
			db = constants.DefaultMongoDatabase
		}
		coll := cfg.Collection
		if coll == "" {
			coll = constants.DefaultMongoCollection
		}
		return OpenMongo(ctx, cfg.URI, db, coll, logger)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// Memory is an in-process Store. It is lost on exit.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]string
}

var _ Store = (*Memory)(nil)

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]string)}
}

// Load implements Store.
func (m *Memory) Load(_ context.Context, prefix string) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]string)
	for k, v := range m.entries {
		if strings.HasPrefix(k, prefix) {
			out[k] = v
		}
	}
	return out, nil
}

// Save implements Store.
func (m *Memory) Save(_ context.Context, entries map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for k, v := range entries {
		m.entries[k] = v
	}
	return nil
}

// Remove implements Store.
func (m *Memory) Remove(_ context.Context, prefix string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for k := range m.entries {
		if strings.HasPrefix(k, prefix) {
			delete(m.entries, k)
		}
	}
	return nil
}

// Close implements Store.
func (m *Memory) Close() error { return nil }

// Keys returns the stored keys in sorted order.
func (m *Memory) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
