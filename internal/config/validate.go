package config

import (
	"fmt"
	"strings"

	"go.uber.org/zap/zapcore"
)

// FieldError is a validation failure of one field.
type FieldError struct {
	// Field is the YAML key path, such as "metrics.namespace".
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError collects every FieldError of a configuration.
type ValidationError struct {
	Errors []FieldError
}

func (e ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return "configuration validation failed: " + e.Errors[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "configuration validation failed with %d errors:", len(e.Errors))
	for _, err := range e.Errors {
		sb.WriteString("\n  - ")
		sb.WriteString(err.Error())
	}
	return sb.String()
}

// Validate checks cfg and returns a ValidationError listing every problem,
// or nil.
func Validate(cfg *Config) error {
	var errs []FieldError
	if cfg.Timeout < 0 {
		errs = append(errs, FieldError{"timeout", "must not be negative"})
	}
	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		errs = append(errs, FieldError{"log_level", err.Error()})
	}
	for k := range cfg.SolverOptions {
		if k == "" || strings.ContainsAny(k, " \t\n=") {
			errs = append(errs, FieldError{"solver_options", fmt.Sprintf("invalid parameter name %q", k)})
		}
	}
	if cfg.Metrics.Enabled && !validMetricPrefix(cfg.Metrics.Namespace) {
		errs = append(errs, FieldError{"metrics.namespace", fmt.Sprintf("%q is not a valid metric name prefix", cfg.Metrics.Namespace)})
	}
	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

// ParseLevel maps a level name to a zap level.
func ParseLevel(name string) (zapcore.Level, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(name)); err != nil {
		return lvl, fmt.Errorf("unknown level %q", name)
	}
	return lvl, nil
}

func validMetricPrefix(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		ok := r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || i > 0 && r >= '0' && r <= '9'
		if !ok {
			return false
		}
	}
	return true
}
