// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. CVS_SERVER_PORT.
const EnvPrefix = "CVS"

// Config is the full runtime configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Extraction ExtractionConfig `mapstructure:"extraction"`
	Ranking    RankingConfig    `mapstructure:"ranking"`
	RateLimit  RateLimitConfig  `mapstructure:"ratelimit"`
	Log        LogConfig        `mapstructure:"log"`
	Database   DatabaseConfig   `mapstructure:"database"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port           int   `mapstructure:"port"`
	MaxUploadBytes int64 `mapstructure:"max_upload_bytes"`
}

// ExtractionConfig configures the extraction pipeline.
type ExtractionConfig struct {
	Timeout         time.Duration `mapstructure:"timeout"`
	Concurrency     int           `mapstructure:"concurrency"`
	LibraryFallback bool          `mapstructure:"library_fallback"` // try the PDF library when the raw decoder finds no text
}

// RankingConfig configures candidate scoring.
type RankingConfig struct {
	AcceptThreshold float64 `mapstructure:"accept_threshold"`
}

// RateLimitConfig configures per-client request limiting on the server.
type RateLimitConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	RequestsPerMinute int    `mapstructure:"requests_per_minute"`
	Whitelist         string `mapstructure:"whitelist"` // comma-separated client IPs never limited
	Blacklist         string `mapstructure:"blacklist"` // comma-separated client IPs always refused
}

// LogConfig configures the zap logger.
type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// DatabaseConfig configures the optional candidate store.
type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.max_upload_bytes", int64(10<<20))
	v.SetDefault("extraction.timeout", 30*time.Second)
	v.SetDefault("extraction.concurrency", 4)
	v.SetDefault("extraction.library_fallback", false)
	v.SetDefault("ranking.accept_threshold", 60.0)
	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.requests_per_minute", 60)
	v.SetDefault("ratelimit.whitelist", "")
	v.SetDefault("ratelimit.blacklist", "")
	v.SetDefault("log.json", false)
	v.SetDefault("log.debug", false)
	v.SetDefault("database.url", "")
}

// Default returns the configuration with no file and no environment applied.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, _ := decode(v)
	return cfg
}

// Load reads configuration from defaults, the optional file at path (YAML or JSON,
// chosen by extension) and CVS_-prefixed environment variables, in increasing priority.
func Load(path string) (*Config, error) {
	return LoadWith(viper.New(), path)
}

// LoadWith is Load on a caller-supplied viper instance, so command-line flags bound to
// v take precedence over everything else.
func LoadWith(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("config error: 'server.port' must be between 1 and 65535"))
	}
	if c.Server.MaxUploadBytes <= 0 {
		errs = append(errs, fmt.Errorf("config error: 'server.max_upload_bytes' must be positive"))
	}
	if c.Extraction.Timeout < 0 {
		errs = append(errs, fmt.Errorf("config error: 'extraction.timeout' must be non-negative"))
	}
	if c.Extraction.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("config error: 'extraction.concurrency' must be at least 1"))
	}
	if c.Ranking.AcceptThreshold < 0 || c.Ranking.AcceptThreshold > 100 {
		errs = append(errs, fmt.Errorf("config error: 'ranking.accept_threshold' must be between 0 and 100"))
	}
	if c.RateLimit.Enabled && c.RateLimit.RequestsPerMinute < 1 {
		errs = append(errs, fmt.Errorf("config error: 'ratelimit.requests_per_minute' must be at least 1"))
	}

	return errors.Join(errs...)
}
