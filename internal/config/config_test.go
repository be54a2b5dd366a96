package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultMetricsNamespace, cfg.Metrics.Namespace)
	assert.False(t, cfg.AllowNegation)
	assert.NotNil(t, cfg.SolverOptions)
	assert.NoError(t, Validate(cfg))

	// Idempotent.
	before := *cfg
	ApplyDefaults(cfg)
	assert.Equal(t, before, *cfg)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "smtsolve.yaml")
	content := `
timeout: 1500ms
allow_negation: true
log_level: debug
solver_options:
  smt.random_seed: "7"
metrics:
  enabled: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, cfg.Timeout)
	assert.True(t, cfg.AllowNegation)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, map[string]string{"smt.random_seed": "7"}, cfg.SolverOptions)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, DefaultMetricsNamespace, cfg.Metrics.Namespace)
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	unknown := filepath.Join(dir, "unknown.yaml")
	require.NoError(t, os.WriteFile(unknown, []byte("timeot: 5s\n"), 0o644))
	_, err = Load(unknown)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeot")

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("timeout: -1s\nlog_level: loud\n"), 0o644))
	_, err = Load(invalid)
	var verr ValidationError
	require.True(t, errors.As(err, &verr), "got %v", err)
	require.Len(t, verr.Errors, 2)
	assert.Equal(t, "timeout", verr.Errors[0].Field)
	assert.Equal(t, "log_level", verr.Errors[1].Field)
	assert.True(t, strings.HasPrefix(verr.Error(), "configuration validation failed with 2 errors:"))
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SMTSOLVE_TIMEOUT", "2s")
	t.Setenv("SMTSOLVE_LOG_LEVEL", "warn")
	t.Setenv("SMTSOLVE_ALLOW_NEGATION", "true")

	cfg, err := Decode(strings.NewReader("timeout: 10s\nlog_level: debug\n"))
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.Timeout)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.True(t, cfg.AllowNegation)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"negative timeout", func(c *Config) { c.Timeout = -time.Second }, "timeout"},
		{"bad level", func(c *Config) { c.LogLevel = "verbose" }, "log_level"},
		{"bad option", func(c *Config) { c.SolverOptions["a b"] = "1" }, "solver_options"},
		{"bad namespace", func(c *Config) {
			c.Metrics.Enabled = true
			c.Metrics.Namespace = "9lives"
		}, "metrics.namespace"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := Validate(cfg)
			var verr ValidationError
			require.True(t, errors.As(err, &verr))
			require.Len(t, verr.Errors, 1)
			assert.Equal(t, tt.field, verr.Errors[0].Field)
		})
	}

	// The namespace is only checked when metrics are on.
	cfg := Default()
	cfg.Metrics.Namespace = "9lives"
	assert.NoError(t, Validate(cfg))
}

func TestWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	cfg := Default()
	cfg.Timeout = 3 * time.Second
	cfg.SolverOptions["smt.random_seed"] = "11"
	require.NoError(t, Write(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("error")
	require.NoError(t, err)
	assert.Equal(t, "error", lvl.String())

	_, err = ParseLevel("chatty")
	assert.Error(t, err)
}
