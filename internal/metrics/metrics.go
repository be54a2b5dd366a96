// Package metrics exposes translation and solver activity as Prometheus
// metrics.
//
// Metrics:
//   - <ns>_translated_nodes_total{kind}: formula nodes translated, by node kind
//   - <ns>_translation_errors_total{class}: rejected formulas, by error class
//   - <ns>_check_duration_seconds{result}: satisfiability check latency
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vhavlena/z3-constraints/internal/config"
	"github.com/vhavlena/z3-constraints/translate"
	"github.com/vhavlena/z3-constraints/z3"
)

// Collector records metrics. It implements translate.Observer and the
// check hook of solver sessions. A Collector built from a disabled config
// records nothing.
type Collector struct {
	cfg      *config.MetricsConfig
	registry *prometheus.Registry

	translated    *prometheus.CounterVec
	rejected      *prometheus.CounterVec
	checkDuration *prometheus.HistogramVec
}

// NewCollector registers the collectors with registry, or with a fresh
// registry if it is nil.
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	ns := cfg.Namespace
	if ns == "" {
		ns = config.DefaultMetricsNamespace
	}
	c := &Collector{
		cfg:      cfg,
		registry: registry,
		translated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "translated_nodes_total",
				Help:      "Formula nodes translated into solver terms.",
			},
			[]string{"kind"},
		),
		rejected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "translation_errors_total",
				Help:      "Formulas rejected by the translator.",
			},
			[]string{"class"},
		),
		checkDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: ns,
				Name:      "check_duration_seconds",
				Help:      "Duration of satisfiability checks in seconds.",
				// 1ms to ~65s
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 17),
			},
			[]string{"result"},
		),
	}
	registry.MustRegister(c.translated, c.rejected, c.checkDuration)
	return c
}

// Registry returns the registry the collectors live in.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Translated counts one translated node of the given kind.
func (c *Collector) Translated(kind string) {
	if !c.cfg.Enabled {
		return
	}
	c.translated.WithLabelValues(kind).Inc()
}

// Rejected counts one rejected formula by translate.Class of err.
func (c *Collector) Rejected(err error) {
	if !c.cfg.Enabled {
		return
	}
	c.rejected.WithLabelValues(translate.Class(err)).Inc()
}

// Checked observes the latency of one satisfiability check.
func (c *Collector) Checked(res z3.CheckResult, d time.Duration) {
	if !c.cfg.Enabled {
		return
	}
	c.checkDuration.WithLabelValues(res.String()).Observe(d.Seconds())
}

// WriteToTextfile writes every metric of the registry to path in the
// Prometheus text format.
func (c *Collector) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}
