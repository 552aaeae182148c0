package config

import (
	"context"
	"errors"
	"os"
	"testing"

	"meridian-hq/meridian/pkg/routing"
)

const managerConfig = `{
	"routing": {
		"default_target": "v1",
		"rules": [
			{
				"name": "beta-testers",
				"priority": 10,
				"conditions": [
					{"type": "cookie", "key": "beta", "operator": "equals", "value": "true"}
				],
				"target": "v2"
			}
		]
	}
}`

func TestManagerLoadsSnapshot(t *testing.T) {
	path := writeConfig(t, "meridian.json", managerConfig)

	m, err := NewManager(path, nil)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}

	snap := m.Current()
	if snap == nil {
		t.Fatal("Current() = nil")
	}
	if snap.Redaction == nil || snap.Routing == nil {
		t.Fatal("snapshot engines not built")
	}

	attrs := routing.NewRequestAttributes(map[string]string{"Cookie": "beta=true"}, "/", "")
	if decision := snap.Routing.Decide(attrs); decision.Target != "v2" {
		t.Errorf("Decide() target = %q", decision.Target)
	}
}

func TestManagerStartupFailure(t *testing.T) {
	path := writeConfig(t, "broken.json", `{"routing": {"rules": [{"priority": 1}]}}`)

	if _, err := NewManager(path, nil); err == nil {
		t.Error("NewManager() accepted a broken configuration")
	}
}

func TestManagerReloadSwapsSnapshot(t *testing.T) {
	path := writeConfig(t, "meridian.json", managerConfig)

	m, err := NewManager(path, nil)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	first := m.Current()

	updated := `{"routing": {"default_target": "stable"}}`
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		t.Fatalf("rewriting config: %v", err)
	}
	if err := m.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	second := m.Current()
	if second == first {
		t.Fatal("Reload() did not swap the snapshot")
	}
	if second.Routing.RuleSet().DefaultTarget() != "stable" {
		t.Errorf("reloaded default target = %q", second.Routing.RuleSet().DefaultTarget())
	}
}

func TestManagerFailedReloadKeepsOldSnapshot(t *testing.T) {
	path := writeConfig(t, "meridian.json", managerConfig)

	m, err := NewManager(path, nil)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	before := m.Current()

	if err := os.WriteFile(path, []byte(`{"routing": `), 0o644); err != nil {
		t.Fatalf("rewriting config: %v", err)
	}
	if err := m.Reload(); err == nil {
		t.Fatal("Reload() accepted malformed JSON")
	}

	if m.Current() != before {
		t.Error("failed reload replaced the snapshot")
	}
}

type memorySource struct {
	data []byte
	err  error
}

func (s *memorySource) Fetch(ctx context.Context) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.data, nil
}

func (s *memorySource) Format() Format { return FormatJSON }

func TestManagerFromSource(t *testing.T) {
	src := &memorySource{data: []byte(managerConfig)}

	m, err := NewManagerFromSource(src, nil)
	if err != nil {
		t.Fatalf("NewManagerFromSource() error = %v", err)
	}

	snap := m.Current()
	if snap == nil {
		t.Fatal("Current() = nil")
	}

	attrs := routing.NewRequestAttributes(map[string]string{"Cookie": "beta=true"}, "/", "")
	if decision := snap.Routing.Decide(attrs); decision.Target != "v2" {
		t.Errorf("Decide() target = %q", decision.Target)
	}
}

func TestManagerFromSourceReload(t *testing.T) {
	src := &memorySource{data: []byte(managerConfig)}

	m, err := NewManagerFromSource(src, nil)
	if err != nil {
		t.Fatalf("NewManagerFromSource() error = %v", err)
	}
	before := m.Current()

	src.data = []byte(`{"routing": {"default_target": "stable"}}`)
	if err := m.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if m.Current() == before {
		t.Fatal("Reload() did not swap the snapshot")
	}
	if got := m.Current().Routing.RuleSet().DefaultTarget(); got != "stable" {
		t.Errorf("reloaded default target = %q", got)
	}

	src.err = errors.New("upstream unreachable")
	after := m.Current()
	if err := m.Reload(); err == nil {
		t.Fatal("Reload() ignored a fetch failure")
	}
	if m.Current() != after {
		t.Error("failed reload replaced the snapshot")
	}
}

func TestBuildSnapshotBadRules(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Routing.Rules = []routing.Rule{{Name: "x", Priority: 1, Target: ""}}

	if _, err := BuildSnapshot(cfg, nil); err == nil {
		t.Error("BuildSnapshot() accepted a rule without target")
	}
}
