// Package session owns the single active input snapshot. Every action
// recomputes the outputs, keeps the normalized inputs, and persists the raw
// inputs under the DSM_ key prefix.
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/iwvelando/staffing-cost/internal/calculator"
	"github.com/iwvelando/staffing-cost/internal/snapshot"
	"github.com/iwvelando/staffing-cost/internal/store"
	"github.com/iwvelando/staffing-cost/pkg/constants"
	"go.uber.org/zap"
)

// Session serializes access to the active snapshot.
type Session struct {
	mu       sync.Mutex
	store    store.Store
	policies calculator.Policies
	base     snapshot.Snapshot
	current  calculator.Result
	logger   *zap.Logger
}

// Options configure a Session.
type Options struct {
	Policies calculator.Policies
	// Base is the snapshot used before any stored value and after a reset.
	// The zero value reads the field defaults.
	Base   snapshot.Snapshot
	Logger *zap.Logger
}

// New returns a session holding the recomputed base snapshot. Call Restore to
// load persisted inputs.
func New(st store.Store, opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if st == nil {
		st = store.NewMemory()
	}
	return &Session{
		store:    st,
		policies: opts.Policies,
		base:     opts.Base,
		current:  calculator.Recompute(opts.Base, opts.Policies),
		logger:   logger,
	}
}

// Restore loads persisted inputs over the base snapshot and recomputes. Stored
// derived subtotals are ignored; they are always rebuilt from their items.
func (s *Session) Restore(ctx context.Context) (calculator.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.store.Load(ctx, constants.StoragePrefix)
	if err != nil {
		return s.current, fmt.Errorf("failed to restore inputs: %w", err)
	}

	raw := make(map[string]string, len(stored))
	for key, value := range stored {
		name := strings.TrimPrefix(key, constants.StoragePrefix)
		if f, ok := snapshot.Lookup(name); !ok || f.Derived {
			continue
		}
		raw[name] = value
	}

	s.logger.Debug("restoring inputs",
		zap.String("op", "session.restore"),
		zap.Int("stored", len(stored)),
		zap.Int("applied", len(raw)),
	)
	return s.commit(ctx, s.base.Apply(raw))
}

// Update applies raw form edits to the current inputs and recomputes.
func (s *Session) Update(ctx context.Context, edits map[string]string) (calculator.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.Debug("updating inputs",
		zap.String("op", "session.update"),
		zap.Int("edits", len(edits)),
	)
	return s.commit(ctx, s.current.Inputs.Apply(edits))
}

// UpdateValues applies decoded JSON/YAML edits and recomputes.
func (s *Session) UpdateValues(ctx context.Context, edits map[string]interface{}) (calculator.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.Debug("updating inputs",
		zap.String("op", "session.update"),
		zap.Int("edits", len(edits)),
	)
	return s.commit(ctx, s.current.Inputs.ApplyValues(edits))
}

// ApplyReplacement copies the computed replacement coefficient into the
// manual input, enables it, and recomputes.
func (s *Session) ApplyReplacement(ctx context.Context) (calculator.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := calculator.ApplyComputedReplacement(s.current.Inputs)
	s.logger.Info("applied computed replacement coefficient",
		zap.String("op", "session.applyReplacement"),
		zap.Float64("replacement", next.Num(snapshot.KeyReplacement)),
	)
	return s.commit(ctx, next)
}

// Reset clears every persisted input, returns to the base snapshot and
// persists it.
func (s *Session) Reset(ctx context.Context) (calculator.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Remove(ctx, constants.StoragePrefix); err != nil {
		return s.current, fmt.Errorf("failed to clear stored inputs: %w", err)
	}
	s.logger.Info("reset inputs", zap.String("op", "session.reset"))
	return s.commit(ctx, s.base)
}

// State returns the current result.
func (s *Session) State() calculator.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Policies returns the pricing policies the session recomputes with.
func (s *Session) Policies() calculator.Policies {
	return s.State().Policies
}

// commit recomputes next, keeps the normalized inputs and persists them. The
// in-memory state is updated even if persistence fails.
func (s *Session) commit(ctx context.Context, next snapshot.Snapshot) (calculator.Result, error) {
	s.current = calculator.Recompute(next, s.policies)

	entries := make(map[string]string)
	for key, value := range s.current.Inputs.Persistable() {
		entries[constants.StoragePrefix+key] = value
	}
	if err := s.store.Save(ctx, entries); err != nil {
		return s.current, fmt.Errorf("failed to persist inputs: %w", err)
	}
	return s.current, nil
}
