package routing

import (
	"fmt"
	"regexp"
	"sort"
)

// DefaultTarget is the routing target used when configuration does not name
// one.
const DefaultTarget = "v1"

// compiledCondition is a Condition with its regex (if any) compiled at
// build time, so per-request evaluation never compiles.
type compiledCondition struct {
	Condition
	re *regexp.Regexp
}

// compiledRule is a Rule with compiled conditions.
type compiledRule struct {
	Rule
	conditions []compiledCondition
}

// RuleSet is an immutable, priority-ordered collection of routing rules
// plus the default target. Built once at configuration time and shared
// read-only across all requests.
type RuleSet struct {
	defaultTarget string
	rules         []compiledRule
}

// NewRuleSet validates and compiles the rules, then sorts them ascending by
// priority. The sort is stable: rules with equal priority keep their source
// order. An empty defaultTarget selects DefaultTarget.
func NewRuleSet(defaultTarget string, rules []Rule) (*RuleSet, error) {
	if defaultTarget == "" {
		defaultTarget = DefaultTarget
	}

	compiled := make([]compiledRule, 0, len(rules))
	for i, rule := range rules {
		cr, err := compileRule(rule)
		if err != nil {
			name := rule.Name
			if name == "" {
				name = fmt.Sprintf("#%d", i)
			}
			return nil, fmt.Errorf("rule %s: %w", name, err)
		}
		compiled = append(compiled, cr)
	}

	sort.SliceStable(compiled, func(i, j int) bool {
		return compiled[i].Priority < compiled[j].Priority
	})

	return &RuleSet{
		defaultTarget: defaultTarget,
		rules:         compiled,
	}, nil
}

// compileRule validates one rule and compiles its regex conditions.
func compileRule(rule Rule) (compiledRule, error) {
	if rule.Name == "" {
		return compiledRule{}, fmt.Errorf("rule name is required")
	}
	if rule.Target == "" {
		return compiledRule{}, fmt.Errorf("target is required")
	}

	conditions := make([]compiledCondition, 0, len(rule.Conditions))
	for i, cond := range rule.Conditions {
		cc, err := compileCondition(cond)
		if err != nil {
			return compiledRule{}, fmt.Errorf("condition %d: %w", i, err)
		}
		conditions = append(conditions, cc)
	}

	return compiledRule{Rule: rule, conditions: conditions}, nil
}

func compileCondition(cond Condition) (compiledCondition, error) {
	switch cond.Type {
	case ConditionHeader, ConditionCookie, ConditionQuery:
		if cond.Key == "" {
			return compiledCondition{}, fmt.Errorf("key is required for %s conditions", cond.Type)
		}
	case ConditionPath:
		// Path conditions inspect the path itself; key is ignored.
	default:
		return compiledCondition{}, fmt.Errorf("unknown condition type %q", cond.Type)
	}

	cc := compiledCondition{Condition: cond}

	switch cond.Operator {
	case OperatorEquals, OperatorContains, OperatorPrefix, OperatorSuffix:
	case OperatorExists:
		// Value is ignored.
	case OperatorRegex:
		re, err := regexp.Compile(cond.Value)
		if err != nil {
			return compiledCondition{}, fmt.Errorf("invalid regex %q: %w", cond.Value, err)
		}
		cc.re = re
	default:
		return compiledCondition{}, fmt.Errorf("unknown operator %q", cond.Operator)
	}

	return cc, nil
}

// DefaultTarget returns the target used when no rule matches.
func (rs *RuleSet) DefaultTarget() string {
	return rs.defaultTarget
}

// Len returns the number of rules.
func (rs *RuleSet) Len() int {
	return len(rs.rules)
}

// Rules returns the rules in evaluation (priority) order.
func (rs *RuleSet) Rules() []Rule {
	out := make([]Rule, len(rs.rules))
	for i, r := range rs.rules {
		out[i] = r.Rule
	}
	return out
}

// defaultDecision is the decision returned when no rule matches.
func (rs *RuleSet) defaultDecision() Decision {
	return Decision{Target: rs.defaultTarget}
}
