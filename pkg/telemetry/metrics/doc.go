// Package metrics exposes Prometheus metrics for both filter pipelines:
// body scan outcomes and pattern match counts for the redaction side,
// decision counts and evaluation latency for the routing side.
//
// Metric label cardinality is bounded by configuration: pattern names and
// rule names come from the loaded plugin config, never from request data.
package metrics
