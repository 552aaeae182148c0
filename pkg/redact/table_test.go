package redact

import (
	"testing"
)

func TestNewTableDefaults(t *testing.T) {
	table, err := NewTable(DefaultTableConfig())
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}

	want := []string{"credit_card", "ssn", "email"}
	got := table.Names()
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNewTableOrdering(t *testing.T) {
	cfg := TableConfig{
		SSN:     true,
		PhoneUS: true,
		Custom: []CustomPattern{
			{Name: "api_key", Regex: `sk-[A-Za-z0-9]{8}`, Replacement: "[KEY REDACTED]"},
			{Name: "order_id", Regex: `ORD-\d{6}`, Replacement: "ORD-XXXXXX"},
		},
	}

	table, err := NewTable(cfg)
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}

	// Built-ins keep fixed order, custom patterns keep declaration order.
	want := []string{"ssn", "phone_us", "api_key", "order_id"}
	got := table.Names()
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNewTableCustomPattern(t *testing.T) {
	table, err := NewTable(TableConfig{
		Custom: []CustomPattern{
			{Name: "ticket", Regex: `TCK-(\d{2})\d{4}`, Replacement: "TCK-$1XXXX"},
		},
	})
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}

	engine := NewEngine(EngineConfig{Table: table})
	result := engine.Redact([]byte("see TCK-123456 for details"))
	if string(result.Content) != "see TCK-12XXXX for details" {
		t.Errorf("Content = %q, want capture group preserved", result.Content)
	}
	if result.MatchCount != 1 || len(result.MatchedPatterns) != 1 || result.MatchedPatterns[0] != "ticket" {
		t.Errorf("metadata = %+v, want one ticket match", result)
	}
}

func TestNormalizeReplacement(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "bare reference with trailing text", input: "TCK-$1XXXX", want: "TCK-${1}XXXX"},
		{name: "bare reference alone", input: "$1", want: "${1}"},
		{name: "multi digit reference", input: "$12-end", want: "${12}-end"},
		{name: "already braced", input: "${1}XXXX", want: "${1}XXXX"},
		{name: "escaped dollar", input: "$$1", want: "$$1"},
		{name: "named group untouched", input: "$prefix-x", want: "$prefix-x"},
		{name: "trailing dollar", input: "cost$", want: "cost$"},
		{name: "no references", input: "[REDACTED]", want: "[REDACTED]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeReplacement(tt.input); got != tt.want {
				t.Errorf("normalizeReplacement(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewTableInvalidRegex(t *testing.T) {
	_, err := NewTable(TableConfig{
		Custom: []CustomPattern{{Name: "broken", Regex: `([unclosed`, Replacement: "x"}},
	})
	if err == nil {
		t.Fatal("NewTable() accepted an invalid regex")
	}
}

func TestNewTableUnnamedCustomPattern(t *testing.T) {
	_, err := NewTable(TableConfig{
		Custom: []CustomPattern{{Regex: `\d+`, Replacement: "N"}},
	})
	if err == nil {
		t.Fatal("NewTable() accepted a custom pattern with no name")
	}
}
