package resolver

import (
	"fmt"
	"regexp"

	"github.com/fxmartin/create-project-sub002/pkg/schema"
)

// firstRuleViolation applies the variable's validation rules in order
// to an already type-checked value. It returns (message, false) for
// the first failing rule, preferring the rule's custom message.
func firstRuleViolation(v *schema.Variable, value interface{}) (string, bool) {
	for _, rule := range v.Rules {
		if ok := ruleHolds(rule, value); !ok {
			if rule.Message != "" {
				return rule.Message, false
			}
			return generatedMessage(rule), false
		}
	}
	return "", true
}

func ruleHolds(rule schema.Rule, value interface{}) bool {
	switch rule.Kind {
	case schema.RulePattern:
		s, sOK := value.(string)
		pattern, pOK := rule.Value.(string)
		if !sOK || !pOK {
			return false
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return false
		}
		return re.MatchString(s)
	case schema.RuleMinLength:
		s, sOK := value.(string)
		n, nOK := ruleInt(rule.Value)
		return sOK && nOK && len(s) >= n
	case schema.RuleMaxLength:
		s, sOK := value.(string)
		n, nOK := ruleInt(rule.Value)
		return sOK && nOK && len(s) <= n
	case schema.RuleMinValue:
		f, fOK := numeric(value)
		limit, lOK := numeric(rule.Value)
		return fOK && lOK && f >= limit
	case schema.RuleMaxValue:
		f, fOK := numeric(value)
		limit, lOK := numeric(rule.Value)
		return fOK && lOK && f <= limit
	case schema.RuleMinItems:
		count, cOK := itemCount(value)
		n, nOK := ruleInt(rule.Value)
		return cOK && nOK && count >= n
	case schema.RuleMaxItems:
		count, cOK := itemCount(value)
		n, nOK := ruleInt(rule.Value)
		return cOK && nOK && count <= n
	}
	return true
}

func generatedMessage(rule schema.Rule) string {
	switch rule.Kind {
	case schema.RulePattern:
		return fmt.Sprintf("value does not match pattern %v", rule.Value)
	case schema.RuleMinLength:
		return fmt.Sprintf("value must be at least %v characters", rule.Value)
	case schema.RuleMaxLength:
		return fmt.Sprintf("value must be at most %v characters", rule.Value)
	case schema.RuleMinValue:
		return fmt.Sprintf("value must be at least %v", rule.Value)
	case schema.RuleMaxValue:
		return fmt.Sprintf("value must be at most %v", rule.Value)
	case schema.RuleMinItems:
		return fmt.Sprintf("at least %v items required", rule.Value)
	case schema.RuleMaxItems:
		return fmt.Sprintf("at most %v items allowed", rule.Value)
	}
	return fmt.Sprintf("rule %s failed", rule.Kind)
}

func ruleInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}

func numeric(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func itemCount(v interface{}) (int, bool) {
	switch items := v.(type) {
	case []string:
		return len(items), true
	case []interface{}:
		return len(items), true
	}
	return 0, false
}
