package redact

import (
	"fmt"
	"regexp"
	"strings"
)

// CustomPattern is a user-supplied redaction pattern compiled with the
// standard regexp package. Replacement may reference capture groups using
// $1, ${name} syntax.
type CustomPattern struct {
	Name        string
	Regex       string
	Replacement string
}

// TableConfig selects which built-in patterns are enabled and carries any
// custom patterns. The zero value enables nothing; use DefaultTableConfig
// for the stock pattern set.
type TableConfig struct {
	CreditCard bool
	SSN        bool
	Email      bool
	PhoneUS    bool

	Custom []CustomPattern
}

// DefaultTableConfig enables credit card, SSN and email patterns. The US
// phone pattern stays off because it collides with order and ticket number
// formats in common API payloads.
func DefaultTableConfig() TableConfig {
	return TableConfig{
		CreditCard: true,
		SSN:        true,
		Email:      true,
		PhoneUS:    false,
	}
}

// Table is an ordered, immutable set of enabled redaction patterns. It is
// built once at configuration time and shared read-only across requests.
type Table struct {
	patterns []Pattern
}

// NewTable builds a pattern table from the configuration. Built-ins are
// applied in fixed order (credit_card, ssn, email, phone_us), followed by
// custom patterns in declaration order. An invalid custom regex is a
// configuration error and fails the build.
func NewTable(cfg TableConfig) (*Table, error) {
	var patterns []Pattern

	if cfg.CreditCard {
		patterns = append(patterns, creditCardPattern{})
	}
	if cfg.SSN {
		patterns = append(patterns, ssnPattern{})
	}
	if cfg.Email {
		patterns = append(patterns, emailPattern{})
	}
	if cfg.PhoneUS {
		patterns = append(patterns, phoneUSPattern{})
	}

	for _, c := range cfg.Custom {
		if c.Name == "" {
			return nil, fmt.Errorf("custom pattern with empty name")
		}
		re, err := regexp.Compile(c.Regex)
		if err != nil {
			return nil, fmt.Errorf("custom pattern %q: invalid regex: %w", c.Name, err)
		}
		patterns = append(patterns, &regexPattern{
			name:        c.Name,
			re:          re,
			replacement: normalizeReplacement(c.Replacement),
		})
	}

	return &Table{patterns: patterns}, nil
}

// Len returns the number of enabled patterns.
func (t *Table) Len() int {
	return len(t.patterns)
}

// Names returns the enabled pattern names in application order.
func (t *Table) Names() []string {
	names := make([]string, len(t.patterns))
	for i, p := range t.patterns {
		names[i] = p.Name()
	}
	return names
}

// normalizeReplacement rewrites bare numeric group references to braced form
// ($1XXXX becomes ${1}XXXX). Regexp.ReplaceAll reads $1XXXX as a reference to
// a group named "1XXXX", which silently expands to nothing; bracing the digit
// run keeps the trailing text literal. $$ escapes and already braced
// references pass through unchanged.
func normalizeReplacement(repl string) string {
	var b strings.Builder
	b.Grow(len(repl))

	for i := 0; i < len(repl); {
		if repl[i] != '$' {
			b.WriteByte(repl[i])
			i++
			continue
		}
		if i+1 >= len(repl) || repl[i+1] == '$' || repl[i+1] == '{' {
			b.WriteByte(repl[i])
			i++
			if i < len(repl) {
				b.WriteByte(repl[i])
				i++
			}
			continue
		}
		if isDigit(repl[i+1]) {
			j := i + 1
			for j < len(repl) && isDigit(repl[j]) {
				j++
			}
			b.WriteString("${")
			b.WriteString(repl[i+1 : j])
			b.WriteByte('}')
			i = j
			continue
		}
		b.WriteByte(repl[i])
		i++
	}
	return b.String()
}

// regexPattern adapts a compiled regular expression to the Pattern interface.
type regexPattern struct {
	name        string
	re          *regexp.Regexp
	replacement string
}

func (p *regexPattern) Name() string { return p.name }

func (p *regexPattern) Apply(input []byte) ([]byte, int) {
	matches := p.re.FindAllIndex(input, -1)
	if len(matches) == 0 {
		return input, 0
	}
	return p.re.ReplaceAll(input, []byte(p.replacement)), len(matches)
}
