package routing

import "log/slog"

// Engine evaluates a rule set against per-request attributes. An Engine is
// immutable after construction and safe for concurrent use.
type Engine struct {
	rules  *RuleSet
	logger *slog.Logger
}

// NewEngine creates a decision engine over the rule set.
func NewEngine(rules *RuleSet, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		rules:  rules,
		logger: logger.With("component", "routing.engine"),
	}
}

// RuleSet returns the engine's rule set.
func (e *Engine) RuleSet() *RuleSet {
	return e.rules
}

// Decide walks the rules in priority order and returns the decision of the
// first rule whose conditions all hold. When no rule matches, or when
// evaluation fails internally, the default target is returned with empty
// header mutations; a routing fault never blocks a request.
func (e *Engine) Decide(attrs AttributeSource) (decision Decision) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("rule evaluation failed, using default target",
				"panic", r,
				"default_target", e.rules.defaultTarget,
			)
			decision = e.rules.defaultDecision()
		}
	}()

	for i := range e.rules.rules {
		rule := &e.rules.rules[i]
		if rule.matches(attrs) {
			e.logger.Debug("routing rule matched",
				"rule", rule.Name,
				"target", rule.Target,
				"priority", rule.Priority,
			)
			// Copies, so a caller mutating the decision cannot reach into
			// the shared rule set.
			var add map[string]string
			if len(rule.AddHeaders) > 0 {
				add = make(map[string]string, len(rule.AddHeaders))
				for k, v := range rule.AddHeaders {
					add[k] = v
				}
			}
			var remove []string
			if len(rule.RemoveHeaders) > 0 {
				remove = append([]string(nil), rule.RemoveHeaders...)
			}

			return Decision{
				Target:        rule.Target,
				MatchedRule:   rule.Name,
				AddHeaders:    add,
				RemoveHeaders: remove,
			}
		}
	}

	return e.rules.defaultDecision()
}
