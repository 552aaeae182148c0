package filter

import (
	"log/slog"
	"strconv"
	"time"

	"meridian-hq/meridian/pkg/audit/recorder"
	"meridian-hq/meridian/pkg/redact"
	"meridian-hq/meridian/pkg/telemetry/metrics"
)

// BodyAction tells the host what to do with the response body stream.
type BodyAction int

const (
	// ActionPass resumes the stream unchanged.
	ActionPass BodyAction = iota

	// ActionBuffer holds the stream while the filter accumulates chunks.
	ActionBuffer

	// ActionReplace substitutes the buffered body with Content.
	ActionReplace
)

// String returns the action name for logs.
func (a BodyAction) String() string {
	switch a {
	case ActionBuffer:
		return "buffer"
	case ActionReplace:
		return "replace"
	default:
		return "pass"
	}
}

// ResponseFilterConfig contains configuration shared by response filters.
type ResponseFilterConfig struct {
	// Engine is the redaction engine. Required.
	Engine *redact.Engine

	// Logger defaults to slog.Default.
	Logger *slog.Logger

	// Metrics records scan counters when set.
	Metrics *metrics.RedactionMetrics

	// Audit records scrub outcomes asynchronously when set.
	Audit *recorder.Recorder
}

// ResponseFilter holds the per-request state of one response stream.
// Create one per HTTP exchange; it is not safe for concurrent use.
type ResponseFilter struct {
	engine  *redact.Engine
	logger  *slog.Logger
	metrics *metrics.RedactionMetrics
	audit   *recorder.Recorder

	method  string
	path    string
	verdict redact.ScrubVerdict
	buffer  *redact.BodyBuffer
}

// HeadersResult is the outcome of one response-headers event.
type HeadersResult struct {
	// Verdict is the scrub decision for this response.
	Verdict redact.ScrubVerdict

	// Headers are the response header mutations to apply.
	Headers HeaderMutations
}

// BodyResult is the outcome of one response-body event.
type BodyResult struct {
	// Action tells the host how to treat the stream.
	Action BodyAction

	// Content is the replacement body when Action is ActionReplace.
	Content []byte

	// Headers are mutations for the host to attach on trailers or observe.
	Headers HeaderMutations

	// Scan is the redaction outcome, zero until end of stream.
	Scan redact.Result
}

// NewResponseFilter creates the filter for one response stream.
func NewResponseFilter(cfg ResponseFilterConfig) *ResponseFilter {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &ResponseFilter{
		engine:  cfg.Engine,
		logger:  logger.With("component", "filter.response"),
		metrics: cfg.Metrics,
		audit:   cfg.Audit,
		buffer:  redact.NewBodyBuffer(cfg.Engine.MaxBodySize()),
	}
}

// OnRequestHeaders records the request identity used for the bypass check
// and the audit trail. Call before any response event.
func (f *ResponseFilter) OnRequestHeaders(method, path string) {
	f.method = method
	f.path = path
}

// OnResponseHeaders decides the scrub verdict from the response headers and
// returns the observability header mutations. Content-Length is removed
// when the body will be rewritten, since its length may change.
func (f *ResponseFilter) OnResponseHeaders(contentType string, contentLength int) HeadersResult {
	f.verdict = f.engine.Verdict(f.path, contentType, contentLength)

	mutations := NewHeaderMutations()
	mutations.Set[HeaderScrubActive] = "true"
	mutations.Set[HeaderScrubVerdict] = string(f.verdict)
	if f.verdict == redact.VerdictWillScrub {
		mutations.Remove = append(mutations.Remove, "Content-Length")
	}

	if f.metrics != nil {
		f.metrics.RecordVerdict(f.verdict)
	}

	f.logger.Debug("response verdict",
		"path", f.path,
		"content_type", contentType,
		"verdict", f.verdict,
	)

	return HeadersResult{Verdict: f.verdict, Headers: mutations}
}

// OnResponseBody consumes one body chunk. While the verdict is will-scrub
// it buffers until end of stream, then scans the whole body once. Growing
// past the size cap mid-stream abandons the buffer and resumes the stream,
// since the host still holds the original bytes.
//
// Any panic in the scan path fails open to a pass-through result.
func (f *ResponseFilter) OnResponseBody(chunk []byte, endOfStream bool) (result BodyResult) {
	defer func() {
		if r := recover(); r != nil {
			f.logger.Error("response body filter panicked, passing through",
				"path", f.path,
				"panic", r,
			)
			result = BodyResult{Action: ActionPass}
		}
	}()

	if f.verdict != redact.VerdictWillScrub {
		return BodyResult{Action: ActionPass}
	}

	if !f.buffer.Write(chunk) {
		f.verdict = redact.VerdictTooLarge
		f.logger.Debug("body exceeded size cap mid-stream, passing through",
			"path", f.path,
			"observed_size", f.buffer.Size(),
		)
		if f.metrics != nil {
			f.metrics.RecordVerdict(redact.VerdictTooLarge)
		}
		if f.audit != nil {
			f.audit.RecordRedaction(f.method, f.path, redact.VerdictTooLarge, redact.Result{}, f.buffer.Size(), 0)
		}
		return BodyResult{Action: ActionPass}
	}

	if !endOfStream {
		return BodyResult{Action: ActionBuffer}
	}

	start := time.Now()
	scan := f.engine.Redact(f.buffer.Bytes())
	duration := time.Since(start)

	if f.metrics != nil {
		f.metrics.RecordScan(scan, duration)
	}
	if f.audit != nil {
		f.audit.RecordRedaction(f.method, f.path, redact.VerdictWillScrub, scan, f.buffer.Size(), duration)
	}

	if !scan.Redacted {
		return BodyResult{Action: ActionPass, Scan: scan}
	}

	mutations := NewHeaderMutations()
	mutations.Set[HeaderRedacted] = "true"
	mutations.Set[HeaderRedactionCount] = strconv.Itoa(scan.MatchCount)

	f.logger.Info("response body redacted",
		"path", f.path,
		"match_count", scan.MatchCount,
		"patterns", scan.MatchedPatterns,
		"duration_us", duration.Microseconds(),
	)

	return BodyResult{
		Action:  ActionReplace,
		Content: scan.Content,
		Headers: mutations,
		Scan:    scan,
	}
}

// Verdict returns the current scrub verdict for this stream.
func (f *ResponseFilter) Verdict() redact.ScrubVerdict {
	return f.verdict
}
