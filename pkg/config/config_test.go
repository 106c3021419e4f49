package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, 4, cfg.Fridge.Workers)
	assert.Equal(t, 1024, cfg.Fridge.QueueSize)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)

	assert.NoError(t, Validate(cfg), "defaults must validate")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "ValidDefaults",
			mutate: func(*Config) {},
		},
		{
			name:    "InvalidLogLevel",
			mutate:  func(c *Config) { c.Logging.Level = "VERBOSE" },
			wantErr: "logging level",
		},
		{
			name:    "InvalidLogFormat",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "logging format",
		},
		{
			name:    "NegativeWorkers",
			mutate:  func(c *Config) { c.Fridge.Workers = -1 },
			wantErr: "workers",
		},
		{
			name:    "NegativeQueueSize",
			mutate:  func(c *Config) { c.Fridge.QueueSize = -5 },
			wantErr: "queue size",
		},
		{
			name:    "InvalidAPIPort",
			mutate:  func(c *Config) { c.API.Port = 70000 },
			wantErr: "api port",
		},
		{
			name:   "APIPortIgnoredWhenDisabled",
			mutate: func(c *Config) { c.API.Enabled = false; c.API.Port = 70000 },
		},
		{
			name:    "SampleRateOutOfRange",
			mutate:  func(c *Config) { c.Telemetry.SampleRate = 1.5 },
			wantErr: "sample rate",
		},
		{
			name:    "ZeroShutdownTimeout",
			mutate:  func(c *Config) { c.ShutdownTimeout = 0 },
			wantErr: "shutdown timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("MissingFileFallsBackToDefaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
		require.NoError(t, err)
		assert.Equal(t, Default().Fridge, cfg.Fridge)
	})

	t.Run("FileOverridesDefaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := []byte(`
logging:
  level: DEBUG
  format: json
fridge:
  workers: 16
  queue_size: 4096
api:
  enabled: false
shutdown_timeout: 5s
`)
		require.NoError(t, os.WriteFile(path, content, 0600))

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "DEBUG", cfg.Logging.Level)
		assert.Equal(t, "json", cfg.Logging.Format)
		assert.Equal(t, 16, cfg.Fridge.Workers)
		assert.Equal(t, 4096, cfg.Fridge.QueueSize)
		assert.False(t, cfg.API.Enabled)
		assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)

		// Untouched sections keep their defaults.
		assert.Equal(t, Default().API.Port, cfg.API.Port)
		assert.True(t, cfg.Metrics.Enabled)
	})

	t.Run("InvalidValuesAreRejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: SHOUTING\n"), 0600))

		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validation")
	})

	t.Run("MalformedYAMLIsRejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("fridge: [not a map"), 0600))

		_, err := Load(path)
		require.Error(t, err)
	})
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Logging.Level = "WARN"
	cfg.Fridge.Workers = 8
	cfg.API.Port = 9191

	require.NoError(t, Save(cfg, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "WARN", loaded.Logging.Level)
	assert.Equal(t, 8, loaded.Fridge.Workers)
	assert.Equal(t, 9191, loaded.API.Port)
}
