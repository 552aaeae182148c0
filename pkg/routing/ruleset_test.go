package routing

import (
	"strings"
	"testing"
)

func TestNewRuleSetSortsByPriority(t *testing.T) {
	rs, err := NewRuleSet("v1", []Rule{
		{Name: "low", Priority: 100, Target: "v1"},
		{Name: "high", Priority: 1, Target: "v2"},
		{Name: "mid", Priority: 50, Target: "v1"},
	})
	if err != nil {
		t.Fatalf("NewRuleSet() error = %v", err)
	}

	want := []string{"high", "mid", "low"}
	for i, rule := range rs.Rules() {
		if rule.Name != want[i] {
			t.Errorf("rule[%d] = %q, want %q", i, rule.Name, want[i])
		}
	}
}

func TestNewRuleSetStableForEqualPriority(t *testing.T) {
	// Equal-priority rules keep their source order.
	rs, err := NewRuleSet("v1", []Rule{
		{Name: "first", Priority: 10, Target: "a"},
		{Name: "second", Priority: 10, Target: "b"},
		{Name: "third", Priority: 10, Target: "c"},
		{Name: "earlier", Priority: 5, Target: "d"},
	})
	if err != nil {
		t.Fatalf("NewRuleSet() error = %v", err)
	}

	want := []string{"earlier", "first", "second", "third"}
	for i, rule := range rs.Rules() {
		if rule.Name != want[i] {
			t.Errorf("rule[%d] = %q, want %q", i, rule.Name, want[i])
		}
	}
}

func TestNewRuleSetDefaultTargetFallback(t *testing.T) {
	rs, err := NewRuleSet("", nil)
	if err != nil {
		t.Fatalf("NewRuleSet() error = %v", err)
	}
	if rs.DefaultTarget() != DefaultTarget {
		t.Errorf("DefaultTarget() = %q, want %q", rs.DefaultTarget(), DefaultTarget)
	}
}

func TestNewRuleSetValidation(t *testing.T) {
	tests := []struct {
		name    string
		rule    Rule
		wantErr string
	}{
		{
			name:    "missing name",
			rule:    Rule{Target: "v2"},
			wantErr: "name is required",
		},
		{
			name:    "missing target",
			rule:    Rule{Name: "r"},
			wantErr: "target is required",
		},
		{
			name: "unknown condition type",
			rule: Rule{Name: "r", Target: "v2", Conditions: []Condition{
				{Type: "body", Key: "k", Operator: OperatorEquals},
			}},
			wantErr: "unknown condition type",
		},
		{
			name: "unknown operator",
			rule: Rule{Name: "r", Target: "v2", Conditions: []Condition{
				{Type: ConditionHeader, Key: "k", Operator: "matches"},
			}},
			wantErr: "unknown operator",
		},
		{
			name: "missing key for header condition",
			rule: Rule{Name: "r", Target: "v2", Conditions: []Condition{
				{Type: ConditionHeader, Operator: OperatorExists},
			}},
			wantErr: "key is required",
		},
		{
			name: "invalid regex",
			rule: Rule{Name: "r", Target: "v2", Conditions: []Condition{
				{Type: ConditionHeader, Key: "k", Operator: OperatorRegex, Value: "([bad"},
			}},
			wantErr: "invalid regex",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRuleSet("v1", []Rule{tt.rule})
			if err == nil {
				t.Fatal("NewRuleSet() accepted an invalid rule")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestNewRuleSetPathConditionWithoutKey(t *testing.T) {
	_, err := NewRuleSet("v1", []Rule{
		{Name: "p", Target: "v2", Conditions: []Condition{
			{Type: ConditionPath, Operator: OperatorPrefix, Value: "/v2"},
		}},
	})
	if err != nil {
		t.Errorf("path condition without key rejected: %v", err)
	}
}
