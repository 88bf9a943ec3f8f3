// Package config provides configuration management for srcconv.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration values for the tool.
type Config struct {
	// Board is the board used when a command does not name one.
	Board string `yaml:"board"`

	// DefinitionsDir holds additional board definitions (*.yaml) that extend
	// or replace the built-in ones. Empty means built-ins only.
	DefinitionsDir string `yaml:"definitionsDir,omitempty"`

	// Workers bounds batch encode/decode parallelism.
	Workers int `yaml:"workers"`

	// SourceFields are the document keys whose scalar values are source
	// tokens.
	SourceFields []string `yaml:"sourceFields"`

	HTTP    HTTPConfig    `yaml:"http"`
	Logging LoggingConfig `yaml:"logging"`
}

// HTTPConfig configures the serve command.
type HTTPConfig struct {
	Addr        string   `yaml:"addr"`
	CORSOrigins []string `yaml:"corsOrigins,omitempty"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
	// Format is "text" (console encoder) or "json".
	Format string `yaml:"format"`
	// File receives log output in addition to stderr when set.
	File string `yaml:"file,omitempty"`
}

// Environment variables that override file values.
const (
	EnvBoard          = "SRCCONV_BOARD"
	EnvDefinitionsDir = "SRCCONV_DEFINITIONS_DIR"
	EnvWorkers        = "SRCCONV_WORKERS"
	EnvHTTPAddr       = "SRCCONV_HTTP_ADDR"
	EnvLogLevel       = "SRCCONV_LOG_LEVEL"
)

var logLevels = []string{"debug", "info", "warn", "error"}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Board:        "tx16s",
		Workers:      4,
		SourceFields: []string{"srcRaw", "source", "src"},
		HTTP: HTTPConfig{
			Addr:        ":8080",
			CORSOrigins: []string{"http://localhost:3000"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds the configuration from defaults, then the YAML file at path
// (a missing file is not an error), then a .env file in the working
// directory, then environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		}
	}

	// .env is optional
	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Board = getEnv(EnvBoard, c.Board)
	c.DefinitionsDir = getEnv(EnvDefinitionsDir, c.DefinitionsDir)
	c.HTTP.Addr = getEnv(EnvHTTPAddr, c.HTTP.Addr)
	c.Logging.Level = strings.ToLower(getEnv(EnvLogLevel, c.Logging.Level))

	if value, ok := os.LookupEnv(EnvWorkers); ok && value != "" {
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvWorkers, value, err)
		}
		c.Workers = n
	}
	return nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.Board == "" {
		return fmt.Errorf("board must be set")
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if !slices.Contains(logLevels, c.Logging.Level) {
		return fmt.Errorf("unknown log level %q (want one of %s)", c.Logging.Level, strings.Join(logLevels, ", "))
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Logging.Format)
	}
	if len(c.SourceFields) == 0 {
		return fmt.Errorf("at least one source field is required")
	}
	return nil
}

// String returns a human-readable summary, matching the layout of the
// board summaries.
func (c *Config) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Board: %s\n", c.Board)
	if c.DefinitionsDir != "" {
		fmt.Fprintf(&sb, "Definitions: %s\n", c.DefinitionsDir)
	}
	fmt.Fprintf(&sb, "Workers: %d\n", c.Workers)
	fmt.Fprintf(&sb, "Source fields: %s\n", strings.Join(c.SourceFields, ", "))
	fmt.Fprintf(&sb, "HTTP: %s\n", c.HTTP.Addr)
	fmt.Fprintf(&sb, "Logging: %s (%s)\n", c.Logging.Level, c.Logging.Format)
	return sb.String()
}

// getEnv returns the value of an environment variable or a default value.
// An empty variable counts as unset.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}
