package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
	_ "time/tzdata" // zone names resolve on hosts without a zoneinfo database

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/ccollicutt/chatlens/pkg/parser"
)

// Load reads and validates a configuration file. Files ending in .toml are
// decoded as TOML, everything else as YAML.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := decode(path, data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault loads path, or returns the defaults with environment
// overrides applied when path is empty.
func LoadOrDefault(ctx context.Context, path string) (*Config, error) {
	if path != "" {
		return Load(ctx, path)
	}
	cfg := DefaultConfig()
	cfg.applyEnvironmentOverrides()
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Unmarshal(data, cfg)
	default:
		return yaml.Unmarshal(data, cfg)
	}
}

// Validate checks a configuration for errors.
func Validate(cfg *Config) error {
	switch cfg.DateOrder {
	case DateOrderDayFirst, DateOrderMonthFirst, DateOrderAuto:
	default:
		return fmt.Errorf("date_order: invalid value %q (must be dmy, mdy, or auto)", cfg.DateOrder)
	}

	if cfg.Timezone == "" {
		return errors.New("timezone: is required")
	}
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return fmt.Errorf("timezone: %w", err)
	}

	if cfg.MediaMarker == "" {
		return errors.New("media_marker: is required")
	}

	if cfg.TopWords < 1 {
		return errors.New("top_words: must be at least 1")
	}
	if cfg.TopUsers < 1 {
		return errors.New("top_users: must be at least 1")
	}

	if !slices.Contains(logLevels, cfg.LogLevel) {
		return fmt.Errorf("log_level: invalid value %q (must be debug, info, warn, or error)", cfg.LogLevel)
	}

	if err := validateServer(&cfg.Server); err != nil {
		return fmt.Errorf("server: %w", err)
	}

	return nil
}

func validateServer(s *ServerConfig) error {
	if s.Addr == "" {
		return errors.New("addr is required")
	}
	if s.MaxUploadBytes <= 0 {
		return errors.New("max_upload_bytes must be positive")
	}
	if s.MaxUploads < 1 {
		return errors.New("max_uploads must be at least 1")
	}
	return nil
}

// Location returns the configured time zone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ParserOrder returns the fixed date order for the parser and whether the
// header detector should decide instead.
func (c *Config) ParserOrder() (order parser.DateOrder, auto bool) {
	if c.DateOrder == DateOrderAuto {
		return parser.DayFirst, true
	}
	order = parser.DateOrder(c.DateOrder)
	if !order.Valid() {
		return parser.DayFirst, false
	}
	return order, false
}
