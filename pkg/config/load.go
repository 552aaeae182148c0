package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is the configuration encoding.
type Format string

const (
	// FormatJSON is the primary encoding, matching the control plane push.
	FormatJSON Format = "json"

	// FormatYAML is accepted for local files.
	FormatYAML Format = "yaml"
)

// FormatForPath selects the encoding from a file extension. Anything that
// is not .yaml/.yml decodes as JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads, decodes, defaults and validates a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading configuration file %q: %w", path, err)
	}
	cfg, err := Parse(data, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("configuration file %q: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes, defaults and validates configuration bytes.
func Parse(data []byte, format Format) (*Config, error) {
	var cfg Config
	if err := decode(data, format, &cfg); err != nil {
		return nil, err
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadRedaction loads a standalone redaction section, the document shape
// the control plane pushes to the scrub filter.
func LoadRedaction(path string) (*RedactionConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading configuration file %q: %w", path, err)
	}
	section, err := ParseRedaction(data, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("configuration file %q: %w", path, err)
	}
	return section, nil
}

// ParseRedaction decodes, defaults and validates a standalone redaction
// section.
func ParseRedaction(data []byte, format Format) (*RedactionConfig, error) {
	var section RedactionConfig
	if err := decode(data, format, &section); err != nil {
		return nil, err
	}

	cfg := &Config{Redaction: section}
	ApplyDefaults(cfg)
	if errs := validateRedaction(&cfg.Redaction); len(errs) > 0 {
		return nil, ValidationError{Errors: errs}
	}
	return &cfg.Redaction, nil
}

// LoadRouting loads a standalone routing section, the document shape the
// control plane pushes to the routing filter.
func LoadRouting(path string) (*RoutingConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading configuration file %q: %w", path, err)
	}
	section, err := ParseRouting(data, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("configuration file %q: %w", path, err)
	}
	return section, nil
}

// ParseRouting decodes, defaults and validates a standalone routing section.
func ParseRouting(data []byte, format Format) (*RoutingConfig, error) {
	var section RoutingConfig
	if err := decode(data, format, &section); err != nil {
		return nil, err
	}

	cfg := &Config{Routing: section}
	ApplyDefaults(cfg)
	if errs := validateRouting(&cfg.Routing); len(errs) > 0 {
		return nil, ValidationError{Errors: errs}
	}
	return &cfg.Routing, nil
}

func decode(data []byte, format Format, v interface{}) error {
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("parsing YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("parsing JSON: %w", err)
		}
	}
	return nil
}
