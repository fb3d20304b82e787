// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/iwvelando/staffing-cost/internal/calculator"
	"github.com/iwvelando/staffing-cost/internal/snapshot"
	"github.com/iwvelando/staffing-cost/pkg/constants"
	"github.com/iwvelando/staffing-cost/pkg/validation"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for staffing-cost.
type Configuration struct {
	Logging LoggingConfig          `yaml:"logging,omitempty"`
	Output  OutputConfig           `yaml:"output,omitempty"`
	Storage StorageConfig          `yaml:"storage,omitempty"`
	Pricing PricingConfig          `yaml:"pricing,omitempty"`
	Profile Profile                `yaml:"profile,omitempty"`
	Inputs  map[string]interface{} `yaml:"inputs,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// StorageConfig selects where raw inputs are persisted between sessions.
type StorageConfig struct {
	Driver     string `yaml:"driver,omitempty"`     // memory, sqlite, mongo
	Path       string `yaml:"path,omitempty"`       // sqlite database file
	URI        string `yaml:"uri,omitempty"`        // mongo connection string
	Database   string `yaml:"database,omitempty"`   // mongo database
	Collection string `yaml:"collection,omitempty"` // mongo collection
}

// PricingConfig names the labor pricing policy of each service line.
type PricingConfig struct {
	Security string `yaml:"security,omitempty"` // headcount, coverage, weekly
	Cleaning string `yaml:"cleaning,omitempty"`
}

// Profile describes a deployment: which optional outputs it displays.
type Profile struct {
	Name    string   `yaml:"name,omitempty"`
	Version int      `yaml:"version,omitempty"`
	Outputs []string `yaml:"outputs,omitempty"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("storage.driver", constants.StorageDriverMemory)
	v.SetDefault("storage.path", constants.DefaultSQLitePath)
	v.SetDefault("storage.uri", "")
	v.SetDefault("storage.database", constants.DefaultMongoDatabase)
	v.SetDefault("storage.collection", constants.DefaultMongoCollection)
	v.SetDefault("pricing.security", constants.PolicyHeadcount)
	v.SetDefault("pricing.cleaning", constants.PolicyHeadcount)
	v.SetDefault("profile.name", "default")
	v.SetDefault("profile.version", constants.ProfileVersion)
	return v
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. A .env file next to the config is loaded first so its
// STAFFING_* variables can override file values.
func LoadConfiguration(configPath string) (*Configuration, error) {
	if err := loadDotEnv(filepath.Join(filepath.Dir(configPath), ".env")); err != nil {
		return nil, err
	}

	v := newViper()
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %w", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads a YAML configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config, %w", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}
	return &configuration, nil
}

func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed loading env file %s: %w", path, err)
	}
	return nil
}

// Policies returns the configured pricing policies.
func (c *Configuration) Policies() calculator.Policies {
	return calculator.Policies{
		Security: strings.ToLower(strings.TrimSpace(c.Pricing.Security)),
		Cleaning: strings.ToLower(strings.TrimSpace(c.Pricing.Cleaning)),
	}
}

// Capabilities returns the profile's output capability set. Unknown output
// keys are dropped.
func (c *Configuration) Capabilities() calculator.Capabilities {
	caps, _ := calculator.NewCapabilities(c.Profile.Version, c.Profile.Outputs)
	return caps
}

// InitialSnapshot returns the defaults with the configured inputs applied.
func (c *Configuration) InitialSnapshot() snapshot.Snapshot {
	return snapshot.FromValues(c.Inputs)
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	policies := c.Policies()
	if !calculator.ValidPolicy(policies.Security) {
		warnings = append(warnings, fmt.Sprintf("unknown security pricing policy %q, using %s", c.Pricing.Security, constants.PolicyHeadcount))
	}
	if !calculator.ValidPolicy(policies.Cleaning) {
		warnings = append(warnings, fmt.Sprintf("unknown cleaning pricing policy %q, using %s", c.Pricing.Cleaning, constants.PolicyHeadcount))
	}

	warnings = append(warnings, validation.ValidateStorage(c.Storage.Driver, c.Storage.URI)...)
	if w := validation.ValidateProfileVersion(c.Profile.Name, c.Profile.Version, constants.ProfileVersion); w != "" {
		warnings = append(warnings, w)
	}
	if _, unknown := calculator.NewCapabilities(c.Profile.Version, c.Profile.Outputs); len(unknown) > 0 {
		warnings = append(warnings, fmt.Sprintf("profile %q lists unknown outputs: %s", c.Profile.Name, strings.Join(unknown, ", ")))
	}

	var unknownInputs []string
	for key := range c.Inputs {
		canonical, ok := snapshot.Canonical(key)
		if !ok {
			unknownInputs = append(unknownInputs, key)
			continue
		}
		if f, _ := snapshot.Lookup(canonical); f.Derived {
			warnings = append(warnings, fmt.Sprintf("input %s is derived from its item table and will be recomputed", canonical))
		}
	}
	if len(unknownInputs) > 0 {
		sort.Strings(unknownInputs)
		warnings = append(warnings, fmt.Sprintf("unknown inputs ignored: %s", strings.Join(unknownInputs, ", ")))
	}

	return warnings
}
