package server

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/iwvelando/staffing-cost/internal/config"
	"github.com/iwvelando/staffing-cost/pkg/constants"
	"gopkg.in/yaml.v3"
)

// Config defines runtime parameters of staffing-cost-server.
type Config struct {
	Address     string `yaml:"address"`
	MaxBodySize string `yaml:"maxBodySize"`
	// Timeouts are Go duration strings such as "15s".
	ReadTimeout     string               `yaml:"readTimeout"`
	WriteTimeout    string               `yaml:"writeTimeout"`
	ShutdownTimeout string               `yaml:"shutdownTimeout"`
	Logging         config.LoggingConfig `yaml:"logging"`

	bodySizeBytes int64
	timeouts      Timeouts
}

// Timeouts are the parsed server timeouts.
type Timeouts struct {
	Read     time.Duration
	Write    time.Duration
	Shutdown time.Duration
}

// LoadConfig loads the server configuration from YAML. A missing file yields
// the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read server config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse server config: %w", err)
			}
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// BodySizeBytes returns the request body limit in bytes.
func (c *Config) BodySizeBytes() int64 {
	return c.bodySizeBytes
}

// Timeouts returns the parsed read, write and shutdown timeouts.
func (c *Config) Timeouts() Timeouts {
	return c.timeouts
}

// MergeLogging returns base with every non-empty server logging field applied.
func (c *Config) MergeLogging(base config.LoggingConfig) config.LoggingConfig {
	if c.Logging.Level != "" {
		base.Level = c.Logging.Level
	}
	if c.Logging.Format != "" {
		base.Format = c.Logging.Format
	}
	if c.Logging.OutputFile != "" {
		base.OutputFile = c.Logging.OutputFile
	}
	return base
}

func (c *Config) normalize() error {
	c.Address = strings.TrimSpace(c.Address)
	if c.Address == "" {
		c.Address = constants.DefaultServerAddress
	}

	size, err := ParseSize(c.MaxBodySize)
	if err != nil {
		return err
	}
	if size <= 0 {
		size = constants.DefaultMaxBodySizeBytes
	}
	c.bodySizeBytes = size
	c.MaxBodySize = strconv.FormatInt(size, 10)

	durations := []struct {
		name  string
		value string
		def   time.Duration
		dst   *time.Duration
	}{
		{"readTimeout", c.ReadTimeout, constants.DefaultReadTimeout, &c.timeouts.Read},
		{"writeTimeout", c.WriteTimeout, constants.DefaultWriteTimeout, &c.timeouts.Write},
		{"shutdownTimeout", c.ShutdownTimeout, constants.DefaultShutdownTimeout, &c.timeouts.Shutdown},
	}
	for _, d := range durations {
		*d.dst = d.def
		value := strings.TrimSpace(d.value)
		if value == "" {
			continue
		}
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", d.name, d.value, err)
		}
		if parsed > 0 {
			*d.dst = parsed
		}
	}
	return nil
}

// ParseSize converts a byte string such as "256K" or "10M" into bytes. An
// empty string is the default request body limit.
func ParseSize(value string) (int64, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(value))
	if trimmed == "" {
		return constants.DefaultMaxBodySizeBytes, nil
	}

	idx := strings.IndexFunc(trimmed, func(r rune) bool { return !unicode.IsDigit(r) })
	if idx == -1 {
		idx = len(trimmed)
	}
	if idx == 0 {
		return 0, fmt.Errorf("invalid size: %s", value)
	}

	n, err := strconv.ParseInt(trimmed[:idx], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size value %q: %w", value, err)
	}

	var multiplier int64
	switch strings.TrimSpace(trimmed[idx:]) {
	case "", "B":
		multiplier = 1
	case "K", "KB":
		multiplier = 1 << 10
	case "M", "MB":
		multiplier = 1 << 20
	case "G", "GB":
		multiplier = 1 << 30
	default:
		return 0, fmt.Errorf("unsupported size unit in %q", value)
	}

	if n > math.MaxInt64/multiplier {
		return 0, fmt.Errorf("size overflow for value %s", value)
	}
	return n * multiplier, nil
}
