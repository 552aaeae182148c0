package config

import (
	"errors"
	"strings"
	"testing"

	"meridian-hq/meridian/pkg/routing"
)

func validConfig() *Config {
	cfg := DefaultConfig()
	cfg.Routing.Rules = []routing.Rule{
		{
			Name:     "beta-testers",
			Priority: 10,
			Conditions: []routing.Condition{
				{Type: routing.ConditionCookie, Key: "beta", Operator: routing.OperatorEquals, Value: "true"},
			},
			Target: "v2",
		},
	}
	return cfg
}

func TestValidateValid(t *testing.T) {
	if err := Validate(validConfig()); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			"bad redaction log level",
			func(c *Config) { c.Redaction.LogLevel = "loud" },
			"redaction.log_level",
		},
		{
			"negative body size",
			func(c *Config) { c.Redaction.MaxBodySizeBytes = -1 },
			"redaction.max_body_size_bytes",
		},
		{
			"unnamed custom pattern",
			func(c *Config) {
				c.Redaction.CustomPatterns = []CustomPatternConfig{{Regex: "x", Replacement: "y"}}
			},
			"redaction.custom_patterns[0].name",
		},
		{
			"invalid custom regex",
			func(c *Config) {
				c.Redaction.CustomPatterns = []CustomPatternConfig{{Name: "bad", Regex: "([", Replacement: "y"}}
			},
			"redaction.custom_patterns",
		},
		{
			"empty default target",
			func(c *Config) { c.Routing.DefaultTarget = "" },
			"routing.default_target",
		},
		{
			"rule without target",
			func(c *Config) { c.Routing.Rules[0].Target = "" },
			"routing.rules",
		},
		{
			"bad condition operator",
			func(c *Config) { c.Routing.Rules[0].Conditions[0].Operator = "like" },
			"routing.rules",
		},
		{
			"unknown audit backend",
			func(c *Config) { c.Audit.Backend = "postgres" },
			"audit.backend",
		},
		{
			"sqlite without path",
			func(c *Config) {
				c.Audit.Backend = "sqlite"
				c.Audit.SQLitePath = ""
			},
			"audit.sqlite_path",
		},
		{
			"bad cron schedule",
			func(c *Config) { c.Audit.PruneSchedule = "every so often" },
			"audit.prune_schedule",
		},
		{
			"bad logging format",
			func(c *Config) { c.Logging.Format = "xml" },
			"logging.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Redaction.LogLevel = "loud"
	cfg.Routing.DefaultTarget = ""
	cfg.Audit.Backend = "postgres"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Validate() = nil")
	}

	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error is %T, want ValidationError", err)
	}
	if len(verr.Errors) < 3 {
		t.Errorf("collected %d errors, want at least 3: %v", len(verr.Errors), verr)
	}
}
