package config

import (
	"os"
)

// Default values for configuration.
const (
	DefaultDateOrder      = DateOrderDayFirst
	DefaultTimezone       = "UTC"
	DefaultMediaMarker    = "media omitted"
	DefaultTopWords       = 20
	DefaultTopUsers       = 10
	DefaultLogLevel       = "info"
	DefaultServerAddr     = ":8080"
	DefaultMaxUploadBytes = 16 << 20
	DefaultMaxUploads     = 32
)

// Environment variable names.
const (
	EnvLogLevel      = "CHATLENS_LOG_LEVEL"
	EnvServerAddr    = "CHATLENS_SERVER_ADDR"
	EnvStopWordsFile = "CHATLENS_STOP_WORDS_FILE"
	EnvTimezone      = "CHATLENS_TIMEZONE"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		DateOrder:   DefaultDateOrder,
		Timezone:    DefaultTimezone,
		MediaMarker: DefaultMediaMarker,
		TopWords:    DefaultTopWords,
		TopUsers:    DefaultTopUsers,
		LogLevel:    DefaultLogLevel,
		Server: ServerConfig{
			Addr:           DefaultServerAddr,
			MaxUploadBytes: DefaultMaxUploadBytes,
			MaxUploads:     DefaultMaxUploads,
		},
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvServerAddr); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(EnvStopWordsFile); v != "" {
		c.StopWordsFile = v
	}
	if v := os.Getenv(EnvTimezone); v != "" {
		c.Timezone = v
	}
}
