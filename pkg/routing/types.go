package routing

// ConditionType selects which request attribute a condition inspects.
type ConditionType string

const (
	ConditionHeader ConditionType = "header"
	ConditionCookie ConditionType = "cookie"
	ConditionPath   ConditionType = "path"
	ConditionQuery  ConditionType = "query"
)

// Operator is the comparison a condition applies to the attribute value.
type Operator string

const (
	// OperatorEquals matches on exact string equality.
	OperatorEquals Operator = "equals"

	// OperatorContains matches when the value contains the condition value.
	OperatorContains Operator = "contains"

	// OperatorPrefix matches when the value starts with the condition value.
	OperatorPrefix Operator = "prefix"

	// OperatorSuffix matches when the value ends with the condition value.
	OperatorSuffix Operator = "suffix"

	// OperatorRegex matches the value against the condition value as a
	// regular expression, compiled once at rule-set build time.
	OperatorRegex Operator = "regex"

	// OperatorExists matches when the key is present; the condition value
	// is ignored.
	OperatorExists Operator = "exists"
)

// Condition is one atomic predicate over a request attribute. All
// conditions of a rule are AND'd.
type Condition struct {
	Type     ConditionType `json:"type" yaml:"type"`
	Key      string        `json:"key" yaml:"key"`
	Operator Operator      `json:"operator" yaml:"operator"`
	Value    string        `json:"value,omitempty" yaml:"value,omitempty"`
}

// Rule is a named routing rule: a priority, AND'd conditions, a target, and
// header mutations to apply when the rule wins.
type Rule struct {
	Name          string            `json:"name" yaml:"name"`
	Priority      int               `json:"priority" yaml:"priority"`
	Conditions    []Condition       `json:"conditions" yaml:"conditions"`
	Target        string            `json:"target" yaml:"target"`
	AddHeaders    map[string]string `json:"add_headers,omitempty" yaml:"add_headers,omitempty"`
	RemoveHeaders []string          `json:"remove_headers,omitempty" yaml:"remove_headers,omitempty"`
}

// Decision is the outcome of evaluating a rule set against one request.
type Decision struct {
	// Target is the selected routing target.
	Target string

	// MatchedRule is the name of the winning rule, or empty when the
	// default target was used.
	MatchedRule string

	// AddHeaders are the winning rule's header additions, nil for the
	// default decision.
	AddHeaders map[string]string

	// RemoveHeaders are the winning rule's header removals, nil for the
	// default decision.
	RemoveHeaders []string
}

// Matched reports whether a rule (rather than the default) produced the
// decision.
func (d Decision) Matched() bool {
	return d.MatchedRule != ""
}
