package redact

import (
	"log/slog"
	"strings"
	"unicode/utf8"
)

// DefaultMaxBodySize is the scan cap applied when none is configured (1 MiB).
const DefaultMaxBodySize = 1 << 20

// EngineConfig configures a redaction Engine.
type EngineConfig struct {
	// Table is the pattern table to scan with. Required.
	Table *Table

	// BypassPaths lists request paths that skip scanning entirely. A path
	// ending in '*' matches by prefix; anything else matches exactly.
	BypassPaths []string

	// MaxBodySize is the largest body, in bytes, the engine will scan.
	// Zero selects DefaultMaxBodySize.
	MaxBodySize int

	// Logger receives scan diagnostics. Defaults to slog.Default.
	Logger *slog.Logger
}

// Engine scans response bodies against a pattern table. An Engine is
// immutable after construction and safe for concurrent use.
type Engine struct {
	table       *Table
	bypassPaths []string
	maxBodySize int
	logger      *slog.Logger
}

// NewEngine creates a redaction engine from the configuration.
func NewEngine(cfg EngineConfig) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	maxBody := cfg.MaxBodySize
	if maxBody <= 0 {
		maxBody = DefaultMaxBodySize
	}
	table := cfg.Table
	if table == nil {
		table = &Table{}
	}
	return &Engine{
		table:       table,
		bypassPaths: cfg.BypassPaths,
		maxBodySize: maxBody,
		logger:      logger.With("component", "redact.engine"),
	}
}

// MaxBodySize returns the configured scan cap in bytes.
func (e *Engine) MaxBodySize() int {
	return e.maxBodySize
}

// BypassesPath reports whether the request path is configured to skip
// scanning. Paths ending in '*' match by prefix.
func (e *Engine) BypassesPath(path string) bool {
	for _, bp := range e.bypassPaths {
		if strings.HasSuffix(bp, "*") {
			if strings.HasPrefix(path, bp[:len(bp)-1]) {
				return true
			}
		} else if path == bp {
			return true
		}
	}
	return false
}

// ScannableContentType reports whether the response content type qualifies
// for scanning. Only text and JSON bodies are scanned; an empty content type
// is treated as scannable because origins frequently omit it on JSON.
func ScannableContentType(contentType string) bool {
	if contentType == "" {
		return true
	}
	ct := strings.ToLower(contentType)
	return strings.Contains(ct, "json") || strings.Contains(ct, "text")
}

// Verdict decides up front whether a response body should be scanned.
// contentLength is the declared Content-Length, or -1 when unknown; a body
// that later grows past the cap is still bypassed by the buffer.
func (e *Engine) Verdict(path, contentType string, contentLength int) ScrubVerdict {
	if e.BypassesPath(path) {
		return VerdictBypassed
	}
	if !ScannableContentType(contentType) {
		return VerdictNonText
	}
	if contentLength >= 0 && contentLength > e.maxBodySize {
		return VerdictTooLarge
	}
	return VerdictWillScrub
}

// Redact scans content against the pattern table and returns the masked
// body with match metadata. Identical input and table always produce
// identical output. Any internal failure passes the body through unchanged.
func (e *Engine) Redact(content []byte) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("redaction scan failed, passing body through",
				"panic", r,
				"body_size", len(content),
			)
			result = passthrough(content)
		}
	}()

	if len(content) == 0 || e.table.Len() == 0 {
		return passthrough(content)
	}

	if len(content) > e.maxBodySize {
		return passthrough(content)
	}

	// The structural scanners operate byte-wise and tolerate invalid UTF-8;
	// log it so truncated-encoding bodies are attributable.
	if !utf8.Valid(content) {
		e.logger.Debug("body is not valid UTF-8, scanning at byte level",
			"body_size", len(content),
		)
	}

	current := content
	var matched []string
	total := 0

	for _, p := range e.table.patterns {
		next, n := p.Apply(current)
		if n > 0 {
			matched = append(matched, p.Name())
			total += n
			current = next
		}
	}

	if total == 0 {
		return passthrough(content)
	}

	return Result{
		Redacted:        true,
		MatchCount:      total,
		MatchedPatterns: matched,
		Content:         current,
	}
}
