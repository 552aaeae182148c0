package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"meridian-hq/meridian/pkg/redact"
	"meridian-hq/meridian/pkg/routing"
)

// Config contains configuration for the metrics collector.
type Config struct {
	// Namespace is the metric name prefix. Default: "meridian".
	Namespace string
}

// Collector owns the Prometheus registry and the metric families for both
// pipelines.
type Collector struct {
	config    Config
	registry  *prometheus.Registry
	redaction *RedactionMetrics
	routing   *RoutingMetrics
}

// NewCollector creates a collector and registers all metrics with the
// provided registry. A nil registry creates a fresh one.
func NewCollector(cfg Config, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if cfg.Namespace == "" {
		cfg.Namespace = "meridian"
	}

	return &Collector{
		config:    cfg,
		registry:  registry,
		redaction: newRedactionMetrics(cfg.Namespace, registry),
		routing:   newRoutingMetrics(cfg.Namespace, registry),
	}
}

// Registry returns the underlying Prometheus registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Redaction returns the redaction pipeline metrics.
func (c *Collector) Redaction() *RedactionMetrics {
	return c.redaction
}

// Routing returns the routing pipeline metrics.
func (c *Collector) Routing() *RoutingMetrics {
	return c.routing
}

// RedactionMetrics tracks the body-scrubbing pipeline.
//
// Metrics:
//   - meridian_redaction_scans_total: bodies seen, by scrub verdict
//   - meridian_redaction_matches_total: pattern matches, by pattern name
//   - meridian_redaction_scan_duration_seconds: time spent scanning
type RedactionMetrics struct {
	scansTotal   *prometheus.CounterVec
	matchesTotal *prometheus.CounterVec
	scanDuration prometheus.Histogram
}

func newRedactionMetrics(namespace string, registry *prometheus.Registry) *RedactionMetrics {
	rm := &RedactionMetrics{
		scansTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "redaction",
				Name:      "scans_total",
				Help:      "Response bodies seen by the scrubber, labeled by scrub verdict",
			},
			[]string{"verdict"},
		),
		matchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "redaction",
				Name:      "matches_total",
				Help:      "PII pattern matches, labeled by pattern name",
			},
			[]string{"pattern"},
		),
		scanDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "redaction",
				Name:      "scan_duration_seconds",
				Help:      "Duration of a full-body scan",
				// The body scan budget is 500µs; buckets resolve well below it.
				Buckets: prometheus.ExponentialBuckets(0.000001, 2, 14), // 1µs to 8ms
			},
		),
	}

	registry.MustRegister(rm.scansTotal, rm.matchesTotal, rm.scanDuration)
	return rm
}

// RecordVerdict counts one body by its scrub verdict.
func (rm *RedactionMetrics) RecordVerdict(verdict redact.ScrubVerdict) {
	rm.scansTotal.WithLabelValues(string(verdict)).Inc()
}

// RecordScan records the result and duration of one full-body scan.
func (rm *RedactionMetrics) RecordScan(result redact.Result, duration time.Duration) {
	rm.scanDuration.Observe(duration.Seconds())
	for _, name := range result.MatchedPatterns {
		rm.matchesTotal.WithLabelValues(name).Inc()
	}
}

// RoutingMetrics tracks the request classification pipeline.
//
// Metrics:
//   - meridian_routing_decisions_total: decisions, by target and rule
//   - meridian_routing_evaluation_duration_seconds: rule walk latency
type RoutingMetrics struct {
	decisionsTotal     *prometheus.CounterVec
	evaluationDuration prometheus.Histogram
}

func newRoutingMetrics(namespace string, registry *prometheus.Registry) *RoutingMetrics {
	rm := &RoutingMetrics{
		decisionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "routing",
				Name:      "decisions_total",
				Help:      "Routing decisions, labeled by target and matched rule",
			},
			[]string{"target", "rule"},
		),
		evaluationDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "routing",
				Name:      "evaluation_duration_seconds",
				Help:      "Duration of one rule-set evaluation",
				// Header evaluation budget is 1ms.
				Buckets: prometheus.ExponentialBuckets(0.000001, 2, 12), // 1µs to 2ms
			},
		),
	}

	registry.MustRegister(rm.decisionsTotal, rm.evaluationDuration)
	return rm
}

// RecordDecision records one routing decision and its evaluation latency.
// Default decisions are labeled with rule "default".
func (rm *RoutingMetrics) RecordDecision(decision routing.Decision, duration time.Duration) {
	rule := decision.MatchedRule
	if rule == "" {
		rule = "default"
	}
	rm.decisionsTotal.WithLabelValues(decision.Target, rule).Inc()
	rm.evaluationDuration.Observe(duration.Seconds())
}
