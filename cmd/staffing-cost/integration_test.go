package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/iwvelando/staffing-cost/internal/calculator"
	"github.com/iwvelando/staffing-cost/internal/config"
	"github.com/iwvelando/staffing-cost/internal/session"
	"github.com/iwvelando/staffing-cost/internal/snapshot"
	"github.com/iwvelando/staffing-cost/internal/store"
	"github.com/iwvelando/staffing-cost/pkg/constants"
	"github.com/iwvelando/staffing-cost/pkg/output"
	"github.com/iwvelando/staffing-cost/pkg/testutil"
	"go.uber.org/zap"
)

const exampleConfig = "../../config.yaml.example"

// openExample loads the example configuration exactly as main() does, with
// storage redirected to a temporary SQLite file.
func openExample(t *testing.T, dbPath string) (*config.Configuration, *session.Session) {
	t.Helper()

	conf, err := config.LoadConfiguration(exampleConfig)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if warnings := conf.ValidateConfiguration(); len(warnings) != 0 {
		t.Fatalf("unexpected configuration warnings: %v", warnings)
	}
	conf.Storage.Path = dbPath

	st, err := store.Open(context.Background(), conf.Storage, zap.NewNop())
	if err != nil {
		t.Fatalf("store.Open() error = %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	sess := session.New(st, session.Options{
		Policies: conf.Policies(),
		Base:     conf.InitialSnapshot(),
		Logger:   zap.NewNop(),
	})
	return conf, sess
}

func TestMainIntegrationBaseline(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "staffing.db")
	conf, sess := openExample(t, dbPath)

	result, err := sess.Restore(context.Background())
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}

	testutil.NearlyEqual(t, "security monthly", result.Opex.SecurityMonthly, 1337*17.92*1.2109*1.085)
	testutil.NearlyEqual(t, "capex total", result.CapexTotal, 38690)
	testutil.NearlyEqual(t, "transport", result.Opex.TransportMonthly, 5520)
	testutil.NearlyEqual(t, "month 1", result.Month1Total, result.Opex.Total+38690)

	var buf bytes.Buffer
	output.PrettyFormat(&buf, result, calculator.Render(result, conf.Capabilities()))
	for _, want := range []string{
		"CAPEX total              | 38 690 MAD",
		"Included in month 1      | Yes",
		"Status                   | Security staffing OK: no overtime required.",
	} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("pretty output missing %q", want)
		}
	}
}

func TestEditsSurviveRestart(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "staffing.db")
	ctx := context.Background()

	_, sess := openExample(t, dbPath)
	if _, err := sess.Restore(ctx); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	edits := editFlags{}
	for _, arg := range []string{"secPlannedHours=220", "includeCapex=false"} {
		if err := edits.Set(arg); err != nil {
			t.Fatalf("Set(%q) error = %v", arg, err)
		}
	}
	if _, err := sess.Update(ctx, edits); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	// A second process over the same database sees the edits.
	_, restarted := openExample(t, dbPath)
	result, err := restarted.Restore(ctx)
	if err != nil {
		t.Fatalf("Restore() after restart error = %v", err)
	}
	if got := result.Inputs.Num(snapshot.KeySecPlannedHours); got != 220 {
		t.Errorf("secPlannedHours = %v, expected 220", got)
	}
	if result.IncludeCapex {
		t.Error("includeCapex should stay disabled after restart")
	}
	testutil.NearlyEqual(t, "month 1", result.Month1Total, result.Opex.Total)

	// Reset starts over from the configured inputs.
	result, err = restarted.Reset(ctx)
	if err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if got := result.Inputs.Num(snapshot.KeySecPlannedHours); got != 191 {
		t.Errorf("secPlannedHours after reset = %v, expected 191", got)
	}
}

func TestCsvOutputFormat(t *testing.T) {
	_, sess := openExample(t, filepath.Join(t.TempDir(), "staffing.db"))
	result, err := sess.Restore(context.Background())
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}

	var buf bytes.Buffer
	if err := output.CsvFormat(&buf, calculator.OutputKeys(), calculator.Render(result, calculator.Capabilities{})); err != nil {
		t.Fatalf("CsvFormat() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if lines[0] != "output,value" {
		t.Errorf("unexpected header %q", lines[0])
	}
	if !strings.Contains(buf.String(), calculator.OutTransport+",5 520 MAD") {
		t.Errorf("csv missing transport record:\n%s", buf.String())
	}
}

func TestEditFlags(t *testing.T) {
	tests := []struct {
		name      string
		arg       string
		key       string
		value     string
		expectErr bool
	}{
		{name: "Number", arg: "secAgents=9", key: "secAgents", value: "9"},
		{name: "Spaces trimmed", arg: " busCount = 2 ", key: "busCount", value: "2"},
		{name: "Empty value", arg: "otherFixed=", key: "otherFixed", value: ""},
		{name: "Value with equals", arg: "note=a=b", key: "note", value: "a=b"},
		{name: "Missing equals", arg: "secAgents", expectErr: true},
		{name: "Missing key", arg: "=9", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edits := editFlags{}
			err := edits.Set(tt.arg)
			if tt.expectErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.arg)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if edits[tt.key] != tt.value {
				t.Errorf("edits[%q] = %q, expected %q", tt.key, edits[tt.key], tt.value)
			}
		})
	}
}

// TestPerformance times a full load and recompute cycle.
func TestPerformance(t *testing.T) {
	if !testing.Verbose() {
		t.Skip("Skipping performance test. Run with -v to enable.")
	}

	start := time.Now()
	conf, err := config.LoadConfiguration(exampleConfig)
	if err != nil {
		t.Fatalf("LoadConfiguration failed: %v", err)
	}
	loadTime := time.Since(start)

	start = time.Now()
	base := conf.InitialSnapshot()
	var first calculator.Result
	for i := 0; i < 1000; i++ {
		r := calculator.Recompute(base, conf.Policies())
		if i == 0 {
			first = r
			continue
		}
		if r.Opex.Total != first.Opex.Total || r.Month1Total != first.Month1Total {
			t.Fatalf("iteration %d: totals drifted from %v to %v", i, first.Opex.Total, r.Opex.Total)
		}
	}
	recomputeTime := time.Since(start)

	t.Logf("Performance metrics:")
	t.Logf("  Load config: %v", loadTime)
	t.Logf("  1000 recomputes: %v", recomputeTime)

	if recomputeTime > 5*time.Second {
		t.Errorf("recompute time %v exceeds 5 second threshold", recomputeTime)
	}
	if conf.Storage.Driver != constants.StorageDriverSQLite {
		t.Errorf("example config storage driver = %q", conf.Storage.Driver)
	}
}
