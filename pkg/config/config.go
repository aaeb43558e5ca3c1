package config

import (
	"context"
	"os"
	"time"

	"github.com/beehive/jxunxo/pkg/jsonfmt"
)

const (
	// EnvPrefix prefixes every environment variable read by the loader,
	// e.g. JXUNXO_OUTPUT_STYLE -> output.style.
	EnvPrefix = "JXUNXO_"
	// EnvConfigFile names the YAML config file when --config is not given.
	EnvConfigFile = "JXUNXO_CONFIG"
	// DefaultConfigFile is read from the working directory when present.
	DefaultConfigFile = "jxunxo.yaml"
)

// Config represents the complete configuration for jxunxo.
type Config struct {
	Output OutputConfig `koanf:"output" validate:"required"`
	Log    LogConfig    `koanf:"log"    validate:"required"`
}

// OutputConfig controls how converted JSON is printed.
type OutputConfig struct {
	Pretty      bool   `koanf:"pretty"`
	Color       string `koanf:"color"       validate:"oneof=auto always never"`
	Highlighter string `koanf:"highlighter" validate:"oneof=chroma pretty none"`
	Style       string `koanf:"style"       validate:"required"`
	Formatter   string `koanf:"formatter"   validate:"oneof=terminal terminal8 terminal16 terminal256 terminal16m"`
	Indent      int    `koanf:"indent"      validate:"min=0,max=16"`
	SortKeys    bool   `koanf:"sort_keys"`
}

// LogConfig contains logger configuration.
type LogConfig struct {
	Level  string `koanf:"level"  validate:"oneof=debug info warn error disabled"`
	JSON   bool   `koanf:"json"`
	Source bool   `koanf:"source"`
}

// Service defines the interface for configuration management.
type Service interface {
	// Load builds the configuration from defaults, sources and environment.
	Load(ctx context.Context, sources ...Source) (*Config, error)
	// Validate checks the configuration against its constraints.
	Validate(config *Config) error
	// GetSource reports which source provided a key.
	GetSource(key string) SourceType
}

// Source defines the interface for configuration sources.
type Source interface {
	// Load reads configuration from the source.
	Load() (map[string]any, error)
	// Type returns the source type identifier.
	Type() SourceType
}

// SourceType identifies the type of configuration source.
type SourceType string

const (
	SourceCLI     SourceType = "cli"
	SourceYAML    SourceType = "yaml"
	SourceEnv     SourceType = "env"
	SourceDefault SourceType = "default"
)

// Metadata contains metadata about configuration sources.
type Metadata struct {
	Sources  map[string]SourceType `json:"sources"`
	LoadedAt time.Time             `json:"loaded_at"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Pretty:      false,
			Color:       "auto",
			Highlighter: string(jsonfmt.HighlighterChroma),
			Style:       "monokai",
			Formatter:   "terminal256",
			Indent:      4,
			SortKeys:    false,
		},
		Log: LogConfig{
			Level:  "warn",
			JSON:   false,
			Source: false,
		},
	}
}

// FormatOptions maps the output section onto formatter options. colorize
// false disables highlighting regardless of the configured highlighter.
func (c *Config) FormatOptions(colorize bool) *jsonfmt.Options {
	opts := &jsonfmt.Options{
		Indent:      c.Output.Indent,
		SortKeys:    c.Output.SortKeys,
		Highlighter: jsonfmt.Highlighter(c.Output.Highlighter),
		Style:       c.Output.Style,
		Formatter:   c.Output.Formatter,
	}
	if !colorize {
		opts.Highlighter = jsonfmt.HighlighterNone
	}
	return opts
}

// ResolveConfigPath picks the YAML config file: the explicit flag value,
// then $JXUNXO_CONFIG, then DefaultConfigFile.
func ResolveConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if p := os.Getenv(EnvConfigFile); p != "" {
		return p
	}
	return DefaultConfigFile
}
