package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"meridian-hq/meridian/pkg/redact"
	"meridian-hq/meridian/pkg/routing"
)

func TestCollectorDefaults(t *testing.T) {
	c := NewCollector(Config{}, nil)
	if c.Registry() == nil {
		t.Fatal("Registry() returned nil")
	}
	if c.config.Namespace != "meridian" {
		t.Errorf("namespace = %q, want meridian", c.config.Namespace)
	}
}

func TestRedactionMetrics(t *testing.T) {
	c := NewCollector(Config{}, prometheus.NewRegistry())
	rm := c.Redaction()

	rm.RecordVerdict(redact.VerdictWillScrub)
	rm.RecordVerdict(redact.VerdictWillScrub)
	rm.RecordVerdict(redact.VerdictBypassed)

	got := testutil.ToFloat64(rm.scansTotal.WithLabelValues(string(redact.VerdictWillScrub)))
	if got != 2 {
		t.Errorf("scans_total{verdict=will-scrub} = %v, want 2", got)
	}

	rm.RecordScan(redact.Result{
		Redacted:        true,
		MatchCount:      3,
		MatchedPatterns: []string{redact.PatternCreditCard, redact.PatternSSN},
	}, 100*time.Microsecond)

	if got := testutil.ToFloat64(rm.matchesTotal.WithLabelValues(redact.PatternCreditCard)); got != 1 {
		t.Errorf("matches_total{pattern=credit_card} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(rm.matchesTotal.WithLabelValues(redact.PatternSSN)); got != 1 {
		t.Errorf("matches_total{pattern=ssn} = %v, want 1", got)
	}
}

func TestRoutingMetricsDefaultRuleLabel(t *testing.T) {
	c := NewCollector(Config{}, prometheus.NewRegistry())
	rm := c.Routing()

	rm.RecordDecision(routing.Decision{Target: "v2", MatchedRule: "beta-testers"}, 50*time.Microsecond)
	rm.RecordDecision(routing.Decision{Target: "v1"}, 20*time.Microsecond)

	if got := testutil.ToFloat64(rm.decisionsTotal.WithLabelValues("v2", "beta-testers")); got != 1 {
		t.Errorf("decisions_total{v2,beta-testers} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(rm.decisionsTotal.WithLabelValues("v1", "default")); got != 1 {
		t.Errorf("decisions_total{v1,default} = %v, want 1", got)
	}
}

func TestHandlerServesExposition(t *testing.T) {
	c := NewCollector(Config{}, prometheus.NewRegistry())
	c.Redaction().RecordVerdict(redact.VerdictTooLarge)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "meridian_redaction_scans_total") {
		t.Errorf("exposition missing scans_total:\n%s", rec.Body.String())
	}
}
