package audit

import (
	"context"
	"time"
)

// RecordKind identifies which pipeline produced a record.
type RecordKind string

const (
	// KindRouting marks a record produced by the request classification pipeline.
	KindRouting RecordKind = "routing"

	// KindRedaction marks a record produced by the body scrubbing pipeline.
	KindRedaction RecordKind = "redaction"
)

// Record captures the outcome of a single pipeline decision. Routing and
// redaction records share the identity and request fields; the remaining
// fields are populated per kind.
type Record struct {
	// Identity
	ID   string     `json:"id"` // UUID v4
	Kind RecordKind `json:"kind"`

	// Timestamps
	DecisionTime time.Time `json:"decision_time"` // When the pipeline decided
	RecordedTime time.Time `json:"recorded_time"` // When the record was written

	// Request metadata
	Method string `json:"method"`
	Path   string `json:"path"`

	// Routing outcome
	Target      string `json:"target,omitempty"`       // Selected upstream target
	MatchedRule string `json:"matched_rule,omitempty"` // Rule name, empty for default decisions

	// Redaction outcome
	Verdict         string   `json:"verdict,omitempty"` // Scrub verdict for the response
	MatchCount      int      `json:"match_count,omitempty"`
	MatchedPatterns []string `json:"matched_patterns,omitempty"`
	BodySize        int      `json:"body_size,omitempty"` // Observed body size in bytes

	// Latency of the decision itself.
	Duration time.Duration `json:"duration"`
}

// Query defines filter parameters for retrieving audit records.
type Query struct {
	// Time range over DecisionTime, both inclusive.
	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`

	// Filters
	Kind        RecordKind `json:"kind,omitempty"`
	Target      string     `json:"target,omitempty"`
	MatchedRule string     `json:"matched_rule,omitempty"`
	Verdict     string     `json:"verdict,omitempty"`

	// Pagination
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

// Storage defines the interface for audit storage backends.
// Implementations must be safe for concurrent use.
type Storage interface {
	// Store persists an audit record.
	Store(ctx context.Context, record *Record) error

	// Query retrieves records matching the query filters, ordered by
	// DecisionTime ascending. Returns an empty slice when nothing matches.
	Query(ctx context.Context, query *Query) ([]*Record, error)

	// Count returns the number of records matching the query filters.
	Count(ctx context.Context, query *Query) (int64, error)

	// Delete removes records matching the query filters and returns the
	// number deleted. Used by retention enforcement.
	Delete(ctx context.Context, query *Query) (int64, error)

	// Close releases any resources held by the backend.
	Close() error
}
