package config

import "meridian-hq/meridian/pkg/redact"

// Default values applied by ApplyDefaults.
const (
	DefaultTarget        = "v1"
	DefaultAuditBackend  = "memory"
	DefaultSQLitePath    = "data/audit.db"
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "json"
	DefaultPruneSchedule = "0 3 * * *"
	DefaultRetentionDays = 90
)

// DefaultBypassPaths returns the stock bypass paths: health checks and the
// metrics endpoint are never scanned.
func DefaultBypassPaths() []string {
	return []string{"/health", "/metrics"}
}

// DefaultConfig returns a configuration with every default applied.
func DefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills unset fields in place. It is called on every load
// path before validation.
func ApplyDefaults(cfg *Config) {
	if cfg.Redaction.BypassPaths == nil {
		cfg.Redaction.BypassPaths = DefaultBypassPaths()
	}
	if cfg.Redaction.MaxBodySizeBytes <= 0 {
		cfg.Redaction.MaxBodySizeBytes = redact.DefaultMaxBodySize
	}

	if cfg.Routing.DefaultTarget == "" {
		cfg.Routing.DefaultTarget = DefaultTarget
	}

	if cfg.Audit.Backend == "" {
		cfg.Audit.Backend = DefaultAuditBackend
	}
	if cfg.Audit.Backend == "sqlite" && cfg.Audit.SQLitePath == "" {
		cfg.Audit.SQLitePath = DefaultSQLitePath
	}
	if cfg.Audit.RetentionDays == nil {
		days := DefaultRetentionDays
		cfg.Audit.RetentionDays = &days
	}
	if cfg.Audit.PruneSchedule == "" {
		cfg.Audit.PruneSchedule = DefaultPruneSchedule
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLogFormat
	}
}
