package config

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"

	"meridian-hq/meridian/pkg/redact"
	"meridian-hq/meridian/pkg/routing"
	"meridian-hq/meridian/pkg/telemetry/logging"
)

// FieldError is a validation error for one configuration field.
type FieldError struct {
	// Field is the dotted path to the field (e.g. "routing.rules[2].target").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError aggregates every validation failure in a configuration.
type ValidationError struct {
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "configuration validation failed with %d errors:\n", len(e.Errors))
	for _, err := range e.Errors {
		fmt.Fprintf(&sb, "  - %s\n", err.Error())
	}
	return sb.String()
}

// Validate checks the whole configuration, collecting every failure.
// Returns nil when the configuration is valid.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateRedaction(&cfg.Redaction)...)
	errs = append(errs, validateRouting(&cfg.Routing)...)
	errs = append(errs, validateAudit(&cfg.Audit)...)
	errs = append(errs, validateLogging(&cfg.Logging)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

func validateRedaction(cfg *RedactionConfig) []FieldError {
	var errs []FieldError

	if cfg.LogLevel != "" {
		if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
			errs = append(errs, FieldError{
				Field:   "redaction.log_level",
				Message: err.Error(),
			})
		}
	}

	if cfg.MaxBodySizeBytes < 0 {
		errs = append(errs, FieldError{
			Field:   "redaction.max_body_size_bytes",
			Message: "must be non-negative",
		})
	}

	for i, cp := range cfg.CustomPatterns {
		if cp.Name == "" {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("redaction.custom_patterns[%d].name", i),
				Message: "name is required",
			})
		}
		if cp.Regex == "" {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("redaction.custom_patterns[%d].regex", i),
				Message: "regex is required",
			})
		}
	}

	// Building the table compiles every custom regex.
	if _, err := redact.NewTable(cfg.TableConfig()); err != nil {
		errs = append(errs, FieldError{
			Field:   "redaction.custom_patterns",
			Message: err.Error(),
		})
	}

	return errs
}

func validateRouting(cfg *RoutingConfig) []FieldError {
	var errs []FieldError

	if cfg.LogLevel != "" {
		if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
			errs = append(errs, FieldError{
				Field:   "routing.log_level",
				Message: err.Error(),
			})
		}
	}

	if cfg.DefaultTarget == "" {
		errs = append(errs, FieldError{
			Field:   "routing.default_target",
			Message: "default target is required",
		})
	}

	// Building the rule set validates names, operators, condition types
	// and compiles every regex condition.
	if _, err := routing.NewRuleSet(cfg.DefaultTarget, cfg.Rules); err != nil {
		errs = append(errs, FieldError{
			Field:   "routing.rules",
			Message: err.Error(),
		})
	}

	return errs
}

func validateAudit(cfg *AuditConfig) []FieldError {
	var errs []FieldError

	switch cfg.Backend {
	case "", "memory":
	case "sqlite":
		if cfg.SQLitePath == "" {
			errs = append(errs, FieldError{
				Field:   "audit.sqlite_path",
				Message: "sqlite backend requires a database path",
			})
		}
	default:
		errs = append(errs, FieldError{
			Field:   "audit.backend",
			Message: fmt.Sprintf("unknown backend %q (expected memory or sqlite)", cfg.Backend),
		})
	}

	if cfg.RetentionDays != nil && *cfg.RetentionDays < 0 {
		errs = append(errs, FieldError{
			Field:   "audit.retention_days",
			Message: "must be non-negative",
		})
	}
	if cfg.MaxRecords < 0 {
		errs = append(errs, FieldError{
			Field:   "audit.max_records",
			Message: "must be non-negative",
		})
	}

	if cfg.PruneSchedule != "" {
		if _, err := cron.ParseStandard(cfg.PruneSchedule); err != nil {
			errs = append(errs, FieldError{
				Field:   "audit.prune_schedule",
				Message: fmt.Sprintf("invalid cron expression: %v", err),
			})
		}
	}

	return errs
}

func validateLogging(cfg *LoggingConfig) []FieldError {
	var errs []FieldError

	if _, err := logging.ParseLevel(cfg.Level); err != nil {
		errs = append(errs, FieldError{
			Field:   "logging.level",
			Message: err.Error(),
		})
	}

	switch strings.ToLower(cfg.Format) {
	case "", "json", "text":
	default:
		errs = append(errs, FieldError{
			Field:   "logging.format",
			Message: fmt.Sprintf("unknown format %q (expected json or text)", cfg.Format),
		})
	}

	return errs
}
