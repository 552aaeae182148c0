package routing

import "strings"

// evaluate applies the condition to the attribute source. An absent key
// evaluates false for every operator; exists is the only positive presence
// test (there is no negated form).
func (c *compiledCondition) evaluate(attrs AttributeSource) bool {
	value, ok := c.lookup(attrs)
	if !ok {
		return false
	}

	switch c.Operator {
	case OperatorExists:
		return true
	case OperatorEquals:
		return value == c.Value
	case OperatorContains:
		return strings.Contains(value, c.Value)
	case OperatorPrefix:
		return strings.HasPrefix(value, c.Value)
	case OperatorSuffix:
		return strings.HasSuffix(value, c.Value)
	case OperatorRegex:
		return c.re.MatchString(value)
	}
	return false
}

// lookup fetches the attribute value the condition inspects.
func (c *compiledCondition) lookup(attrs AttributeSource) (string, bool) {
	switch c.Type {
	case ConditionHeader:
		return attrs.Header(c.Key)
	case ConditionCookie:
		return attrs.Cookie(c.Key)
	case ConditionPath:
		return attrs.Path(), true
	case ConditionQuery:
		return attrs.Query(c.Key)
	}
	return "", false
}

// matches reports whether every condition of the rule holds, short-circuiting
// on the first false.
func (r *compiledRule) matches(attrs AttributeSource) bool {
	for i := range r.conditions {
		if !r.conditions[i].evaluate(attrs) {
			return false
		}
	}
	return true
}
