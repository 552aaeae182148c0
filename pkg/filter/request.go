package filter

import (
	"log/slog"
	"strings"
	"time"

	"meridian-hq/meridian/pkg/audit/recorder"
	"meridian-hq/meridian/pkg/routing"
	"meridian-hq/meridian/pkg/telemetry/metrics"
)

// DefaultPathRewrites maps routing targets to the path prefix requests to
// that target are rewritten under.
func DefaultPathRewrites() map[string]string {
	return map[string]string{"v2": "/v2"}
}

// RequestFilterConfig contains configuration for the request filter.
type RequestFilterConfig struct {
	// Engine is the routing decision engine. Required.
	Engine *routing.Engine

	// PathRewrites maps targets to rewrite prefixes. Nil selects
	// DefaultPathRewrites; an empty map disables rewriting.
	PathRewrites map[string]string

	// Logger defaults to slog.Default.
	Logger *slog.Logger

	// Metrics records decision counters when set.
	Metrics *metrics.RoutingMetrics

	// Audit records decisions asynchronously when set.
	Audit *recorder.Recorder
}

// RequestFilter evaluates the routing rule set on request headers.
// It is stateless and safe for concurrent use across requests.
type RequestFilter struct {
	engine   *routing.Engine
	rewrites map[string]string
	logger   *slog.Logger
	metrics  *metrics.RoutingMetrics
	audit    *recorder.Recorder
}

// RequestResult is the outcome of one request-headers event.
type RequestResult struct {
	// Decision is the routing outcome.
	Decision routing.Decision

	// Headers are the request header mutations to apply before forwarding.
	Headers HeaderMutations

	// RewrittenPath is the new request path, or empty when unchanged.
	RewrittenPath string
}

// NewRequestFilter creates a request filter.
func NewRequestFilter(cfg RequestFilterConfig) *RequestFilter {
	rewrites := cfg.PathRewrites
	if rewrites == nil {
		rewrites = DefaultPathRewrites()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &RequestFilter{
		engine:   cfg.Engine,
		rewrites: rewrites,
		logger:   logger.With("component", "filter.request"),
		metrics:  cfg.Metrics,
		audit:    cfg.Audit,
	}
}

// OnRequestHeaders evaluates the rule set against the request attributes and
// returns the decision with the header mutations to apply.
func (f *RequestFilter) OnRequestHeaders(method, path, rawQuery string, headers map[string]string) RequestResult {
	start := time.Now()

	attrs := routing.NewRequestAttributes(headers, path, rawQuery)
	decision := f.engine.Decide(attrs)
	duration := time.Since(start)

	mutations := NewHeaderMutations()
	mutations.Set[HeaderRoutedBy] = RoutedByValue

	reason := decision.MatchedRule
	if reason == "" {
		reason = DefaultRouteReason
	}
	mutations.Set[HeaderRouteReason] = reason

	for name, value := range decision.AddHeaders {
		mutations.Set[name] = value
	}
	mutations.Remove = append(mutations.Remove, decision.RemoveHeaders...)

	result := RequestResult{
		Decision:      decision,
		Headers:       mutations,
		RewrittenPath: f.rewritePath(path, decision.Target),
	}

	if f.metrics != nil {
		f.metrics.RecordDecision(decision, duration)
	}
	if f.audit != nil {
		f.audit.RecordRouting(method, path, decision, duration)
	}

	f.logger.Debug("request routed",
		"path", path,
		"target", decision.Target,
		"rule", reason,
	)

	return result
}

// rewritePath returns the rewritten path for the target, or empty when the
// path stays as is. Paths already under the prefix are left alone so a
// rewritten request passing through twice stays stable.
func (f *RequestFilter) rewritePath(path, target string) string {
	prefix, ok := f.rewrites[target]
	if !ok || prefix == "" {
		return ""
	}
	if path == prefix || strings.HasPrefix(path, prefix+"/") {
		return ""
	}
	return prefix + path
}
