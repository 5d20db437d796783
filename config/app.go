package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Search defaults applied when the configuration leaves them unset.
const (
	DefaultMaxResults      = 3
	DefaultMaxResultsLimit = 100
)

// AppConfig holds the styleguide-search runtime configuration.
type AppConfig struct {
	DataDir      string        `yaml:"data_dir"`      // Directory holding the collection CSV files
	RegistryFile string        `yaml:"registry_file"` // Optional YAML registry overriding the built-in one
	HTTP         HTTPConfig    `yaml:"http"`
	Search       SearchConfig  `yaml:"search"`
	Logging      LoggingConfig `yaml:"logging"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int   `yaml:"port"`
	ReadTimeoutSec  int   `yaml:"read_timeout_sec"`
	WriteTimeoutSec int   `yaml:"write_timeout_sec"`
	ShutdownSec     int   `yaml:"shutdown_timeout_sec"`
	MaxBodyBytes    int64 `yaml:"max_body_bytes"`
}

// SearchConfig holds search defaults.
type SearchConfig struct {
	DefaultMaxResults int  `yaml:"default_max_results"`
	MaxResultsLimit   int  `yaml:"max_results_limit"` // Upper bound accepted from API callers
	CacheCollections  bool `yaml:"cache_collections"` // Keep loaded collections in memory between searches
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// LoadApp reads configuration from a YAML file. An empty path yields the defaults.
// ${VAR} and ${VAR:-default} references in the file are expanded from the environment.
func LoadApp(configPath string) (AppConfig, error) {
	var cfg AppConfig

	if configPath != "" {
		data, err := os.ReadFile(filepath.Clean(configPath))
		if err != nil {
			return AppConfig{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
		}

		data = expandEnvVars(data)

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return AppConfig{}, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return AppConfig{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *AppConfig) ApplyDefaults() {
	if c.DataDir == "" {
		if dir := os.Getenv("STYLEGUIDE_DATA_DIR"); dir != "" {
			c.DataDir = dir
		} else {
			c.DataDir = "./data"
		}
	}
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.HTTP.MaxBodyBytes <= 0 {
		c.HTTP.MaxBodyBytes = 1 << 20
	}
	c.Search.ApplyDefaults()
}

// ApplyDefaults fills empty search settings with default values.
func (s *SearchConfig) ApplyDefaults() {
	if s.DefaultMaxResults <= 0 {
		s.DefaultMaxResults = DefaultMaxResults
	}
	if s.MaxResultsLimit <= 0 {
		s.MaxResultsLimit = DefaultMaxResultsLimit
	}
}

// Validate checks the configuration for correctness.
func (c *AppConfig) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Search.DefaultMaxResults > c.Search.MaxResultsLimit {
		return fmt.Errorf("search.default_max_results (%d) exceeds search.max_results_limit (%d)",
			c.Search.DefaultMaxResults, c.Search.MaxResultsLimit)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
		// ok
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}
	return nil
}

// Registry returns the registry file's contents, or the built-in registry when none is configured.
func (c *AppConfig) Registry() (*Registry, error) {
	if c.RegistryFile == "" {
		return DefaultRegistry(), nil
	}
	return LoadRegistry(c.RegistryFile)
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
