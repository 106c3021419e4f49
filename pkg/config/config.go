// Package config loads the upcalld configuration from file, environment
// and defaults.
//
// Configuration sources, in order of precedence:
//  1. Environment variables (UPCALLD_*)
//  2. Configuration file (YAML)
//  3. Default values
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/marmos91/upcalld/internal/logger"
	"github.com/marmos91/upcalld/internal/telemetry"
	"github.com/marmos91/upcalld/pkg/api"
	"github.com/marmos91/upcalld/pkg/fridge"
)

// Config represents the upcalld configuration.
type Config struct {
	// Logging controls log output behavior
	Logging logger.Config `mapstructure:"logging" yaml:"logging"`

	// Telemetry controls OpenTelemetry distributed tracing
	Telemetry telemetry.Config `mapstructure:"telemetry" yaml:"telemetry"`

	// Profiling controls Pyroscope continuous profiling
	Profiling telemetry.ProfilingConfig `mapstructure:"profiling" yaml:"profiling"`

	// Fridge configures the upcall worker pool
	Fridge fridge.Config `mapstructure:"fridge" yaml:"fridge"`

	// API configures the management HTTP server
	API api.Config `mapstructure:"api" yaml:"api"`

	// Metrics controls whether Prometheus metrics are collected
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`

	// ShutdownTimeout is the maximum time to wait for graceful shutdown
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// MetricsConfig controls metrics collection.
type MetricsConfig struct {
	// Enabled controls whether upcall metrics are registered
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Logging: logger.Config{
			Level:  "INFO",
			Format: "text",
			Output: "stdout",
		},
		Telemetry: telemetry.DefaultConfig(),
		Profiling: telemetry.ProfilingConfig{
			Enabled:     false,
			ServiceName: "upcalld",
			Endpoint:    "http://localhost:4040",
		},
		Fridge:          fridge.DefaultConfig(),
		API:             api.DefaultConfig(),
		Metrics:         MetricsConfig{Enabled: true},
		ShutdownTimeout: 30 * time.Second,
	}
}

// Load loads configuration from file, environment and defaults.
// An empty configPath uses the default location; a missing file falls back
// to defaults (environment overrides still apply).
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setupViper(v, configPath)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := Default()
	if err := v.Unmarshal(cfg, viper.DecodeHook(decodeHooks())); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks configuration invariants not expressible in types.
func Validate(cfg *Config) error {
	switch strings.ToUpper(cfg.Logging.Level) {
	case "DEBUG", "INFO", "WARN", "ERROR", "":
	default:
		return fmt.Errorf("invalid logging level %q", cfg.Logging.Level)
	}

	switch strings.ToLower(cfg.Logging.Format) {
	case "text", "json", "":
	default:
		return fmt.Errorf("invalid logging format %q", cfg.Logging.Format)
	}

	if cfg.Fridge.Workers < 0 {
		return fmt.Errorf("fridge workers must be >= 0, got %d", cfg.Fridge.Workers)
	}
	if cfg.Fridge.QueueSize < 0 {
		return fmt.Errorf("fridge queue size must be >= 0, got %d", cfg.Fridge.QueueSize)
	}

	if cfg.API.Enabled && (cfg.API.Port <= 0 || cfg.API.Port > 65535) {
		return fmt.Errorf("api port must be in (0, 65535], got %d", cfg.API.Port)
	}

	if cfg.Telemetry.SampleRate < 0 || cfg.Telemetry.SampleRate > 1 {
		return fmt.Errorf("telemetry sample rate must be in [0, 1], got %f", cfg.Telemetry.SampleRate)
	}

	if cfg.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be > 0, got %s", cfg.ShutdownTimeout)
	}

	return nil
}

// Save writes the configuration to path in YAML form.
func Save(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultPath returns the default configuration file location,
// $XDG_CONFIG_HOME/upcalld/config.yaml.
func DefaultPath() string {
	return filepath.Join(defaultDir(), "config.yaml")
}

func defaultDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "upcalld")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "upcalld")
}

// setupViper configures environment variables and the config file location.
// Environment variables use the UPCALLD_ prefix with underscores, e.g.
// UPCALLD_LOGGING_LEVEL=DEBUG or UPCALLD_FRIDGE_WORKERS=16.
func setupViper(v *viper.Viper, configPath string) {
	v.SetEnvPrefix("UPCALLD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		return
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(defaultDir())
	v.AddConfigPath(".")
}

// decodeHooks returns the mapstructure hooks used when unmarshalling.
func decodeHooks() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		durationDecodeHook(),
		stringToBoolDecodeHook(),
	)
}

// durationDecodeHook converts strings to time.Duration. This enables config
// files to use human-readable durations like "30s", "5m", "1h".
func durationDecodeHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}

		switch v := data.(type) {
		case string:
			return time.ParseDuration(v)
		case int:
			// Assume nanoseconds for raw integers
			return time.Duration(v), nil
		case int64:
			return time.Duration(v), nil
		case float64:
			return time.Duration(int64(v)), nil
		default:
			return data, nil
		}
	}
}

// stringToBoolDecodeHook tolerates "true"/"false" strings from environment
// variables for bool fields.
func stringToBoolDecodeHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if from.Kind() != reflect.String || to.Kind() != reflect.Bool {
			return data, nil
		}
		s := strings.ToLower(data.(string))
		return s == "true" || s == "1" || s == "yes", nil
	}
}
