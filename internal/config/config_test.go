package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/staffing-cost/internal/calculator"
	"github.com/iwvelando/staffing-cost/internal/snapshot"
	"github.com/iwvelando/staffing-cost/pkg/constants"
	"github.com/iwvelando/staffing-cost/pkg/testutil"
)

func TestLoadConfiguration(t *testing.T) {
	tests := []struct {
		name       string
		configPath string
		wantError  bool
	}{
		{
			name:       "Non-existent config file",
			configPath: "nonexistent.yaml",
			wantError:  true,
		},
		{
			name:       "Test fixture",
			configPath: "../../test/test_config.yaml",
		},
		{
			name:       "Example config",
			configPath: "../../config.yaml.example",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfiguration(tt.configPath)
			if tt.wantError {
				if err == nil {
					t.Errorf("LoadConfiguration() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("LoadConfiguration() error = %v", err)
				return
			}
			if config == nil {
				t.Errorf("LoadConfiguration() returned nil config")
			}
		})
	}
}

func TestLoadConfigurationStructure(t *testing.T) {
	config, err := LoadConfiguration("../../test/test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if config.Logging.Level != "warn" {
		t.Errorf("Expected logging level warn, got %q", config.Logging.Level)
	}
	if config.Output.Format != constants.OutputFormatCSV {
		t.Errorf("Expected output format csv, got %q", config.Output.Format)
	}
	if config.Storage.Driver != constants.StorageDriverSQLite || config.Storage.Path != "staffing-test.db" {
		t.Errorf("Unexpected storage config %+v", config.Storage)
	}

	expected := calculator.Policies{Security: constants.PolicyCoverage, Cleaning: constants.PolicyHeadcount}
	if got := config.Policies(); got != expected {
		t.Errorf("Policies() = %+v, expected %+v", got, expected)
	}

	if config.Profile.Name != "site-audit" || config.Profile.Version != 1 || len(config.Profile.Outputs) != 7 {
		t.Errorf("Unexpected profile %+v", config.Profile)
	}
	caps := config.Capabilities()
	if !caps.Supports(calculator.OutSecTotal) || caps.Supports(calculator.OutNetHourly) {
		t.Error("Capabilities() does not match the profile outputs")
	}

	s := config.InitialSnapshot()
	if s.Num(snapshot.KeySecAgents) != 9 || s.Num(snapshot.KeySecNightAgents) != 4 {
		t.Errorf("Inputs not applied: secAgents=%v secNightAgents=%v", s.Num(snapshot.KeySecAgents), s.Num(snapshot.KeySecNightAgents))
	}
	if s.Flag(snapshot.KeyIncludeCapex) {
		t.Error("includeCapex should be false")
	}
	if s.Num(snapshot.KeyOtherFixed) != 1500 {
		t.Errorf("otherFixed = %v", s.Num(snapshot.KeyOtherFixed))
	}
	if s.Num(snapshot.KeyGrossRate) != 17.92 {
		t.Errorf("smig should keep its default, got %v", s.Num(snapshot.KeyGrossRate))
	}

	if warnings := config.ValidateConfiguration(); len(warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", warnings)
	}
}

func TestLoadConfigurationDefaults(t *testing.T) {
	config, err := LoadConfigurationFromReader(strings.NewReader("logging:\n  level: debug\n"))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}

	if config.Storage.Driver != constants.StorageDriverMemory {
		t.Errorf("Expected default storage driver memory, got %q", config.Storage.Driver)
	}
	if config.Output.Format != constants.OutputFormatPretty {
		t.Errorf("Expected default output format pretty, got %q", config.Output.Format)
	}
	if config.Policies() != calculator.DefaultPolicies() {
		t.Errorf("Expected default policies, got %+v", config.Policies())
	}
	if config.Profile.Version != constants.ProfileVersion {
		t.Errorf("Expected profile version %d, got %d", constants.ProfileVersion, config.Profile.Version)
	}
	if !config.InitialSnapshot().Equal(snapshot.Defaults()) {
		t.Error("Expected default snapshot without inputs")
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("storage:\n  driver: memory\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("STAFFING_PRICING_CLEANING=weekly\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("STAFFING_STORAGE_DRIVER", "sqlite")
	// godotenv never overrides a variable that is already set.
	t.Setenv("STAFFING_PRICING_CLEANING", "")
	os.Unsetenv("STAFFING_PRICING_CLEANING")

	config, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if config.Storage.Driver != constants.StorageDriverSQLite {
		t.Errorf("Expected env override sqlite, got %q", config.Storage.Driver)
	}
	if config.Pricing.Cleaning != constants.PolicyWeekly {
		t.Errorf("Expected .env override weekly, got %q", config.Pricing.Cleaning)
	}
}

func TestValidateConfiguration(t *testing.T) {
	tests := []struct {
		name     string
		config   Configuration
		contains string
	}{
		{
			name:     "Unknown policy",
			config:   Configuration{Storage: StorageConfig{Driver: "memory"}, Pricing: PricingConfig{Security: "hourly", Cleaning: "headcount"}},
			contains: "unknown security pricing policy",
		},
		{
			name:     "Unknown storage driver",
			config:   Configuration{Storage: StorageConfig{Driver: "redis"}, Pricing: PricingConfig{Security: "headcount", Cleaning: "headcount"}},
			contains: "unknown storage driver",
		},
		{
			name:     "Mongo without uri",
			config:   Configuration{Storage: StorageConfig{Driver: "mongo"}, Pricing: PricingConfig{Security: "headcount", Cleaning: "headcount"}},
			contains: "requires storage.uri",
		},
		{
			name: "Unknown outputs",
			config: Configuration{
				Storage: StorageConfig{Driver: "memory"},
				Pricing: PricingConfig{Security: "headcount", Cleaning: "headcount"},
				Profile: Profile{Name: "kiosk", Version: 1, Outputs: []string{"secTotal", "bogusOut"}},
			},
			contains: "unknown outputs: bogusOut",
		},
		{
			name: "Newer profile version",
			config: Configuration{
				Storage: StorageConfig{Driver: "memory"},
				Pricing: PricingConfig{Security: "headcount", Cleaning: "headcount"},
				Profile: Profile{Name: "future", Version: constants.ProfileVersion + 1},
			},
			contains: "newer than supported",
		},
		{
			name: "Unknown and derived inputs",
			config: Configuration{
				Storage: StorageConfig{Driver: "memory"},
				Pricing: PricingConfig{Security: "headcount", Cleaning: "headcount"},
				Inputs:  map[string]interface{}{"notafield": 1, "secppecapex": 10},
			},
			contains: "unknown inputs ignored: notafield",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := tt.config.ValidateConfiguration()
			if _, found := testutil.FindWarning(warnings, tt.contains); !found {
				t.Errorf("ValidateConfiguration() = %v, expected a warning containing %q", warnings, tt.contains)
			}
		})
	}
}
