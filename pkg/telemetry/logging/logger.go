package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"meridian-hq/meridian/pkg/redact"
)

// LogFormat is the output format for logs.
type LogFormat string

const (
	// FormatJSON outputs logs in JSON format.
	FormatJSON LogFormat = "json"
	// FormatText outputs logs in logfmt-style text.
	FormatText LogFormat = "text"
)

// Config contains configuration for New.
type Config struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	Level string

	// Format is the output format ("json", "text").
	Format string

	// AddSource includes file and line number in log records.
	AddSource bool

	// RedactValues masks PII in string attribute values using the provided
	// redaction engine.
	RedactValues bool

	// RedactEngine scans attribute values when RedactValues is set. When
	// nil, a default-pattern engine is built.
	RedactEngine *redact.Engine

	// Writer is the output writer (defaults to os.Stdout).
	Writer io.Writer
}

// New creates a slog.Logger from the configuration. The returned logger is
// plain slog so callers pass it anywhere a *slog.Logger is accepted.
func New(cfg Config) (*slog.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	format, err := parseFormat(cfg.Format)
	if err != nil {
		return nil, fmt.Errorf("invalid log format: %w", err)
	}

	writer := cfg.Writer
	if writer == nil {
		writer = os.Stdout
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: cfg.AddSource,
	}

	if cfg.RedactValues {
		engine := cfg.RedactEngine
		if engine == nil {
			table, err := redact.NewTable(redact.DefaultTableConfig())
			if err != nil {
				return nil, fmt.Errorf("building redaction table: %w", err)
			}
			engine = redact.NewEngine(redact.EngineConfig{Table: table})
		}
		opts.ReplaceAttr = redactAttr(engine)
	}

	var handler slog.Handler
	switch format {
	case FormatText:
		handler = slog.NewTextHandler(writer, opts)
	default:
		handler = slog.NewJSONHandler(writer, opts)
	}

	return slog.New(handler), nil
}

// redactAttr returns a ReplaceAttr hook that masks PII in string values.
func redactAttr(engine *redact.Engine) func(groups []string, a slog.Attr) slog.Attr {
	return func(groups []string, a slog.Attr) slog.Attr {
		if a.Value.Kind() != slog.KindString {
			return a
		}
		result := engine.Redact([]byte(a.Value.String()))
		if result.Redacted {
			a.Value = slog.StringValue(string(result.Content))
		}
		return a
	}
}

// ParseLevel parses a log level string into slog.Level. The empty string
// selects info.
func ParseLevel(levelStr string) (slog.Level, error) {
	switch levelStr {
	case "debug", "DEBUG", "trace", "TRACE":
		return slog.LevelDebug, nil
	case "info", "INFO", "":
		return slog.LevelInfo, nil
	case "warn", "WARN", "warning", "WARNING":
		return slog.LevelWarn, nil
	case "error", "ERROR":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %s", levelStr)
	}
}

func parseFormat(formatStr string) (LogFormat, error) {
	switch formatStr {
	case "json", "JSON", "":
		return FormatJSON, nil
	case "text", "TEXT":
		return FormatText, nil
	default:
		return FormatJSON, fmt.Errorf("unknown log format: %s", formatStr)
	}
}
