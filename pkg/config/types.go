// Package config provides configuration loading and validation for chatlens.
package config

// Config is the root configuration structure loaded from YAML or TOML.
type Config struct {
	// DateOrder is how the two date fields of a header are read:
	// "dmy", "mdy", or "auto" to run the header detector first.
	DateOrder string `yaml:"date_order" toml:"date_order"`

	// Timezone is the IANA zone resolved timestamps are placed in.
	Timezone string `yaml:"timezone" toml:"timezone"`

	// StopWordsFile is an optional list of words, one per line, left out
	// of the common words table.
	StopWordsFile string `yaml:"stop_words_file,omitempty" toml:"stop_words_file"`

	// MediaMarker is matched case-insensitively against message bodies to
	// count media messages.
	MediaMarker string `yaml:"media_marker" toml:"media_marker"`

	TopWords int    `yaml:"top_words" toml:"top_words"`
	TopUsers int    `yaml:"top_users" toml:"top_users"`
	LogLevel string `yaml:"log_level" toml:"log_level"`

	Server ServerConfig `yaml:"server" toml:"server"`
}

// ServerConfig configures the upload server.
type ServerConfig struct {
	Addr string `yaml:"addr" toml:"addr"`

	// MaxUploadBytes caps the size of a single chat export.
	MaxUploadBytes int64 `yaml:"max_upload_bytes" toml:"max_upload_bytes"`

	// MaxUploads is how many parsed uploads are kept in memory. The oldest
	// is evicted when the limit is reached.
	MaxUploads int `yaml:"max_uploads" toml:"max_uploads"`
}

// Date orders accepted in DateOrder.
const (
	DateOrderDayFirst   = "dmy"
	DateOrderMonthFirst = "mdy"
	DateOrderAuto       = "auto"
)

// Log levels accepted in LogLevel.
var logLevels = []string{"debug", "info", "warn", "error"}
