// Package logging provides structured logging for the traffic-policy engine
// on top of log/slog.
//
// The logger parses level and format from plugin configuration and can
// redact sensitive values in log attributes with the same pattern table the
// body scrubber uses, so PII that the engine exists to mask never leaks
// through its own diagnostics.
package logging
