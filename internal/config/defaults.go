package config

import "time"

// Default values.
const (
	DefaultFile             = ".smtsolve.yaml"
	DefaultTimeout          = 30 * time.Second
	DefaultLogLevel         = "info"
	DefaultMetricsNamespace = "smtsolve"
)

// Default returns a configuration holding only defaults.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills zero-valued fields of cfg. It is idempotent.
func ApplyDefaults(cfg *Config) {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.SolverOptions == nil {
		cfg.SolverOptions = make(map[string]string)
	}
}
