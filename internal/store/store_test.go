package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/iwvelando/staffing-cost/internal/config"
	"github.com/iwvelando/staffing-cost/pkg/constants"
	"go.uber.org/zap"
)

// exerciseStore runs the behavior every backend must share.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if err := s.Save(ctx, map[string]string{
		"DSM_smig":      "17.92",
		"DSM_secAgents": "7",
		"other_key":     "kept",
	}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// Last write wins.
	if err := s.Save(ctx, map[string]string{"DSM_secAgents": "9"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := s.Load(ctx, constants.StoragePrefix)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got) != 2 || got["DSM_smig"] != "17.92" || got["DSM_secAgents"] != "9" {
		t.Errorf("Load() = %v", got)
	}

	if err := s.Remove(ctx, constants.StoragePrefix); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	got, err = s.Load(ctx, constants.StoragePrefix)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Load() after Remove() = %v", got)
	}

	others, err := s.Load(ctx, "other_")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if others["other_key"] != "kept" {
		t.Errorf("Remove() deleted keys outside the prefix: %v", others)
	}
}

func TestMemoryStore(t *testing.T) {
	m := NewMemory()
	exerciseStore(t, m)
	if keys := m.Keys(); len(keys) != 1 || keys[0] != "other_key" {
		t.Errorf("Keys() = %v", keys)
	}
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "inputs.db")
	s, err := OpenSQLite(context.Background(), path, zap.NewNop())
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	defer s.Close()

	exerciseStore(t, s)
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "inputs.db")

	s, err := OpenSQLite(ctx, path, nil)
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	if err := s.Save(ctx, map[string]string{"DSM_busCount": "3"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	// Reopening re-runs migrations, which must be a no-op.
	s, err = OpenSQLite(ctx, path, nil)
	if err != nil {
		t.Fatalf("OpenSQLite() reopen error = %v", err)
	}
	defer s.Close()

	got, err := s.Load(ctx, constants.StoragePrefix)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got["DSM_busCount"] != "3" {
		t.Errorf("Load() = %v", got)
	}
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("STAFFING_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("STAFFING_TEST_MONGO_URI not set")
	}

	ctx := context.Background()
	s, err := OpenMongo(ctx, uri, "staffing_cost_test", "inputs_"+filepath.Base(t.TempDir()), zap.NewNop())
	if err != nil {
		t.Fatalf("OpenMongo() error = %v", err)
	}
	defer func() {
		_ = s.collection.Drop(ctx)
		s.Close()
	}()

	exerciseStore(t, s)
}

func TestOpen(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.StorageConfig
		wantError bool
	}{
		{"Default is memory", config.StorageConfig{}, false},
		{"Memory", config.StorageConfig{Driver: constants.StorageDriverMemory}, false},
		{"SQLite", config.StorageConfig{Driver: constants.StorageDriverSQLite, Path: filepath.Join(t.TempDir(), "open.db")}, false},
		{"Mongo without uri", config.StorageConfig{Driver: constants.StorageDriverMongo}, true},
		{"Unknown driver", config.StorageConfig{Driver: "redis"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Open(context.Background(), tt.cfg, zap.NewNop())
			if tt.wantError {
				if err == nil {
					s.Close()
					t.Error("Open() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			s.Close()
		})
	}
}
