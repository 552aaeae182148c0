package config

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"meridian-hq/meridian/pkg/redact"
	"meridian-hq/meridian/pkg/routing"
)

// Source supplies raw configuration bytes. Implementations live in the
// source subpackage (local file, git worktree); anything that can produce a
// document and name its encoding plugs in here.
type Source interface {
	// Fetch returns the current configuration document.
	Fetch(ctx context.Context) ([]byte, error)

	// Format returns the encoding of the fetched document.
	Format() Format
}

// Snapshot is one immutable generation of configuration plus the engines
// built from it. Readers take the whole snapshot and never see a half
// reloaded state.
type Snapshot struct {
	Config    *Config
	Redaction *redact.Engine
	Routing   *routing.Engine
	LoadedAt  time.Time
}

// BuildSnapshot builds both engines from a validated configuration.
func BuildSnapshot(cfg *Config, logger *slog.Logger) (*Snapshot, error) {
	if logger == nil {
		logger = slog.Default()
	}

	table, err := redact.NewTable(cfg.Redaction.TableConfig())
	if err != nil {
		return nil, fmt.Errorf("building pattern table: %w", err)
	}
	redaction := redact.NewEngine(redact.EngineConfig{
		Table:       table,
		BypassPaths: cfg.Redaction.BypassPaths,
		MaxBodySize: cfg.Redaction.MaxBodySizeBytes,
		Logger:      logger,
	})

	rules, err := routing.NewRuleSet(cfg.Routing.DefaultTarget, cfg.Routing.Rules)
	if err != nil {
		return nil, fmt.Errorf("building rule set: %w", err)
	}

	return &Snapshot{
		Config:    cfg,
		Redaction: redaction,
		Routing:   routing.NewEngine(rules, logger),
		LoadedAt:  time.Now(),
	}, nil
}

// Manager owns the active configuration snapshot. Current is a single
// atomic load, cheap enough for the request hot path; Reload swaps in a
// fully built snapshot or leaves the old one serving.
type Manager struct {
	path    string
	source  Source
	logger  *slog.Logger
	current atomic.Pointer[Snapshot]
}

// NewManager loads the configuration file and builds the initial snapshot.
// A broken configuration at startup is fatal: there is no previous
// snapshot to fall back to.
func NewManager(path string, logger *slog.Logger) (*Manager, error) {
	if logger == nil {
		logger = slog.Default()
	}

	m := &Manager{
		path:   path,
		logger: logger.With("component", "config.manager"),
	}
	if err := m.Reload(); err != nil {
		return nil, err
	}
	return m, nil
}

// NewManagerFromSource is NewManager over an arbitrary source instead of a
// local path. Source-backed managers reload on demand; the file watcher
// only applies to path-backed ones.
func NewManagerFromSource(src Source, logger *slog.Logger) (*Manager, error) {
	if logger == nil {
		logger = slog.Default()
	}

	m := &Manager{
		source: src,
		logger: logger.With("component", "config.manager"),
	}
	if err := m.Reload(); err != nil {
		return nil, err
	}
	return m, nil
}

// Current returns the active snapshot.
func (m *Manager) Current() *Snapshot {
	return m.current.Load()
}

// Reload loads the configuration, builds a new snapshot, and swaps it in.
// On any failure the active snapshot is left untouched and the error
// returned.
func (m *Manager) Reload() error {
	cfg, err := m.load()
	if err != nil {
		return err
	}

	snap, err := BuildSnapshot(cfg, m.logger)
	if err != nil {
		return err
	}

	m.current.Store(snap)
	m.logger.Info("configuration loaded",
		"path", m.path,
		"rules", len(cfg.Routing.Rules),
		"custom_patterns", len(cfg.Redaction.CustomPatterns),
	)
	return nil
}

// load fetches the configuration from the source when one is set, the local
// path otherwise.
func (m *Manager) load() (*Config, error) {
	if m.source != nil {
		data, err := m.source.Fetch(context.Background())
		if err != nil {
			return nil, fmt.Errorf("fetching configuration: %w", err)
		}
		return Parse(data, m.source.Format())
	}
	return Load(m.path)
}
