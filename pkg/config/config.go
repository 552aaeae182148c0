package config

import (
	"meridian-hq/meridian/pkg/redact"
	"meridian-hq/meridian/pkg/routing"
)

// Config is the full engine configuration: one section per pipeline plus
// the ambient audit and logging settings.
type Config struct {
	Redaction RedactionConfig `json:"redaction" yaml:"redaction"`
	Routing   RoutingConfig   `json:"routing" yaml:"routing"`
	Audit     AuditConfig     `json:"audit" yaml:"audit"`
	Logging   LoggingConfig   `json:"logging" yaml:"logging"`
}

// RedactionConfig configures the body scrubbing pipeline.
type RedactionConfig struct {
	// LogLevel overrides the global log level for the redaction filter.
	LogLevel string `json:"log_level,omitempty" yaml:"log_level,omitempty"`

	// Patterns toggles the built-in patterns. Omitted toggles take their
	// defaults (credit_card, ssn and email on; phone_us off).
	Patterns PatternsConfig `json:"patterns" yaml:"patterns"`

	// CustomPatterns are user-supplied regex patterns, applied after the
	// built-ins in declaration order.
	CustomPatterns []CustomPatternConfig `json:"custom_patterns,omitempty" yaml:"custom_patterns,omitempty"`

	// BypassPaths skip scanning entirely. A trailing '*' matches by prefix.
	BypassPaths []string `json:"bypass_paths,omitempty" yaml:"bypass_paths,omitempty"`

	// MaxBodySizeBytes caps the body size the scrubber will buffer and scan.
	MaxBodySizeBytes int `json:"max_body_size_bytes,omitempty" yaml:"max_body_size_bytes,omitempty"`
}

// PatternsConfig toggles the built-in redaction patterns. Pointers
// distinguish "omitted" from an explicit false.
type PatternsConfig struct {
	CreditCard *bool `json:"credit_card,omitempty" yaml:"credit_card,omitempty"`
	SSN        *bool `json:"ssn,omitempty" yaml:"ssn,omitempty"`
	Email      *bool `json:"email,omitempty" yaml:"email,omitempty"`
	PhoneUS    *bool `json:"phone_us,omitempty" yaml:"phone_us,omitempty"`
}

// CustomPatternConfig is one user-supplied pattern.
type CustomPatternConfig struct {
	Name        string `json:"name" yaml:"name"`
	Regex       string `json:"regex" yaml:"regex"`
	Replacement string `json:"replacement" yaml:"replacement"`
}

// RoutingConfig configures the request classification pipeline.
type RoutingConfig struct {
	// LogLevel overrides the global log level for the routing filter.
	LogLevel string `json:"log_level,omitempty" yaml:"log_level,omitempty"`

	// DefaultTarget receives requests no rule matches.
	DefaultTarget string `json:"default_target,omitempty" yaml:"default_target,omitempty"`

	// Rules are evaluated in ascending priority order.
	Rules []routing.Rule `json:"rules,omitempty" yaml:"rules,omitempty"`
}

// AuditConfig configures the decision audit trail.
type AuditConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Backend selects the storage backend: "memory" or "sqlite".
	Backend string `json:"backend,omitempty" yaml:"backend,omitempty"`

	// SQLitePath is the database file for the sqlite backend.
	SQLitePath string `json:"sqlite_path,omitempty" yaml:"sqlite_path,omitempty"`

	// RetentionDays is how long records are kept. An explicit 0 keeps them
	// forever; omitted selects the 90 day default. The pointer distinguishes
	// the two, like PatternsConfig.
	RetentionDays *int `json:"retention_days,omitempty" yaml:"retention_days,omitempty"`

	// MaxRecords caps the trail size; 0 means unlimited.
	MaxRecords int64 `json:"max_records,omitempty" yaml:"max_records,omitempty"`

	// PruneSchedule is a cron expression for retention pruning.
	PruneSchedule string `json:"prune_schedule,omitempty" yaml:"prune_schedule,omitempty"`
}

// LoggingConfig configures the process-wide logger.
type LoggingConfig struct {
	Level  string `json:"level,omitempty" yaml:"level,omitempty"`
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// TableConfig converts the redaction section into the engine's pattern
// table configuration.
func (c *RedactionConfig) TableConfig() redact.TableConfig {
	tc := redact.TableConfig{
		CreditCard: toggleValue(c.Patterns.CreditCard, true),
		SSN:        toggleValue(c.Patterns.SSN, true),
		Email:      toggleValue(c.Patterns.Email, true),
		PhoneUS:    toggleValue(c.Patterns.PhoneUS, false),
	}
	for _, cp := range c.CustomPatterns {
		tc.Custom = append(tc.Custom, redact.CustomPattern{
			Name:        cp.Name,
			Regex:       cp.Regex,
			Replacement: cp.Replacement,
		})
	}
	return tc
}

func toggleValue(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
