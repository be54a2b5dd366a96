// Package config loads the smtsolve configuration file.
//
// Values are applied in this order, later ones overriding earlier ones:
//
//  1. Defaults (see defaults.go)
//  2. The YAML file
//  3. SMTSOLVE_* environment variables
//  4. Validation, which fails fast
//
// A minimal file:
//
//	timeout: 10s
//	allow_negation: true
//	log_level: debug
//	solver_options:
//	  smt.arith.solver: "2"
package config

import "time"

// Config is the root configuration.
type Config struct {
	// Timeout bounds every satisfiability check. Zero means no limit.
	Timeout time.Duration `yaml:"timeout"`

	// AllowNegation enables translation of logical negation.
	AllowNegation bool `yaml:"allow_negation"`

	// LogLevel is a zap level name: debug, info, warn or error.
	LogLevel string `yaml:"log_level"`

	// SolverOptions are Z3 global parameters set before the context is
	// created, such as "smt.random_seed": "7".
	SolverOptions map[string]string `yaml:"solver_options,omitempty"`

	Metrics MetricsConfig `yaml:"metrics"`
}

// MetricsConfig controls the Prometheus collectors.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`

	// Namespace prefixes every metric name.
	Namespace string `yaml:"namespace"`
}
