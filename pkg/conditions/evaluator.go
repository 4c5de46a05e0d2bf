// Package conditions evaluates the two kinds of boolean conditions in
// a template: structured comparisons attached to variables, and string
// conditions attached to structure items. Evaluation is deterministic
// and never executes host code; malformed input evaluates to false.
package conditions

import (
	"regexp"
	"strings"

	"github.com/fxmartin/create-project-sub002/pkg/logging"
	"github.com/fxmartin/create-project-sub002/pkg/schema"
	"github.com/fxmartin/create-project-sub002/pkg/subst"
)

// Eval evaluates a structured condition against the resolved-variable
// map. An absent variable makes the condition false. Any operator or
// type mismatch yields false, never an error.
func Eval(c schema.Condition, vars map[string]interface{}) bool {
	value, ok := vars[c.Variable]
	if !ok {
		return false
	}

	switch c.Operator {
	case schema.OpEquals:
		return looseEqual(value, c.Value)
	case schema.OpNotEquals:
		return !looseEqual(value, c.Value)
	case schema.OpLess, schema.OpLessEqual, schema.OpGreater, schema.OpGreaterEqual:
		return evalOrdering(c.Operator, value, c.Value)
	case schema.OpIn:
		return membership(value, c.Value)
	case schema.OpNotIn:
		return !membership(value, c.Value)
	case schema.OpContains:
		return containment(value, c.Value)
	case schema.OpNotContains:
		return !containment(value, c.Value)
	case schema.OpStartsWith:
		s, sOK := asString(value)
		prefix, pOK := asString(c.Value)
		return sOK && pOK && strings.HasPrefix(s, prefix)
	case schema.OpEndsWith:
		s, sOK := asString(value)
		suffix, pOK := asString(c.Value)
		return sOK && pOK && strings.HasSuffix(s, suffix)
	case schema.OpIsEmpty:
		return isEmpty(value)
	case schema.OpIsNotEmpty:
		return !isEmpty(value)
	case schema.OpMatches:
		return regexMatch(value, c.Value)
	case schema.OpNotMatches:
		s, sOK := asString(value)
		pattern, pOK := asString(c.Value)
		if !sOK || !pOK {
			return false
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return false
		}
		return !re.MatchString(s)
	}
	return false
}

// Visible applies the composition rule: a variable is shown iff all
// show_if conditions hold and none of the hide_if conditions hold.
func Visible(v *schema.Variable, vars map[string]interface{}) bool {
	for _, c := range v.ShowIf {
		if !Eval(c, vars) {
			return false
		}
	}
	for _, c := range v.HideIf {
		if Eval(c, vars) {
			return false
		}
	}
	return true
}

// EvalString evaluates a string condition attached to a structure
// item. Resolution order: case-insensitive boolean literal tokens,
// then variable substitution followed by a literal re-check, then the
// restricted boolean-expression grammar. Anything unparseable is
// false.
func EvalString(cond string, vars map[string]interface{}) bool {
	if b, ok := boolLiteral(cond); ok {
		return b
	}

	rendered := subst.Expand(cond, vars)
	if b, ok := boolLiteral(rendered); ok {
		return b
	}

	result, err := evalExpr(rendered, vars)
	if err != nil {
		logger := logging.GetLogger("conditions")
		logger.Warn().
			Str("condition", cond).
			Err(err).
			Msg("Condition did not parse, treating as false")
		return false
	}
	return result
}

// boolLiteral recognizes the case-insensitive literal tokens. The
// empty string is a false literal.
func boolLiteral(s string) (value, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on":
		return true, true
	case "false", "0", "no", "off", "":
		return false, true
	}
	return false, false
}

func asString(v interface{}) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asFloat(v interface{}) (float64, bool) {
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

// looseEqual compares across the numeric types YAML and callers may
// hand us; everything else falls back to exact interface equality on
// comparable kinds.
func looseEqual(a, b interface{}) bool {
	if af, aOK := asFloat(a); aOK {
		if bf, bOK := asFloat(b); bOK {
			return af == bf
		}
		return false
	}
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	}
	as, aOK := toStringSlice(a)
	bs, bOK := toStringSlice(b)
	if aOK && bOK {
		if len(as) != len(bs) {
			return false
		}
		for i := range as {
			if as[i] != bs[i] {
				return false
			}
		}
		return true
	}
	return false
}

func evalOrdering(op schema.Operator, a, b interface{}) bool {
	if af, aOK := asFloat(a); aOK {
		bf, bOK := asFloat(b)
		if !bOK {
			return false
		}
		switch op {
		case schema.OpLess:
			return af < bf
		case schema.OpLessEqual:
			return af <= bf
		case schema.OpGreater:
			return af > bf
		case schema.OpGreaterEqual:
			return af >= bf
		}
		return false
	}
	as, aOK := asString(a)
	bs, bOK := asString(b)
	if !aOK || !bOK {
		return false
	}
	switch op {
	case schema.OpLess:
		return as < bs
	case schema.OpLessEqual:
		return as <= bs
	case schema.OpGreater:
		return as > bs
	case schema.OpGreaterEqual:
		return as >= bs
	}
	return false
}

// membership: value in operand, where the operand is a list or string.
func membership(value, operand interface{}) bool {
	if items, ok := toStringSlice(operand); ok {
		s, sOK := asString(value)
		if sOK {
			for _, item := range items {
				if item == s {
					return true
				}
			}
			return false
		}
		if vf, vOK := asFloat(value); vOK {
			for _, item := range items {
				if item == subst.FormatValue(vf) {
					return true
				}
			}
		}
		return false
	}
	haystack, hOK := asString(operand)
	needle, nOK := asString(value)
	return hOK && nOK && strings.Contains(haystack, needle)
}

// containment: operand in value, the mirror of membership.
func containment(value, operand interface{}) bool {
	if items, ok := toStringSlice(value); ok {
		needle, nOK := asString(operand)
		if !nOK {
			return false
		}
		for _, item := range items {
			if item == needle {
				return true
			}
		}
		return false
	}
	haystack, hOK := asString(value)
	needle, nOK := asString(operand)
	return hOK && nOK && strings.Contains(haystack, needle)
}

func isEmpty(v interface{}) bool {
	switch value := v.(type) {
	case nil:
		return true
	case string:
		return value == ""
	case []string:
		return len(value) == 0
	case []interface{}:
		return len(value) == 0
	case map[string]interface{}:
		return len(value) == 0
	}
	return false
}

func regexMatch(value, operand interface{}) bool {
	s, sOK := asString(value)
	pattern, pOK := asString(operand)
	if !sOK || !pOK {
		return false
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(s)
}

func toStringSlice(v interface{}) ([]string, bool) {
	switch items := v.(type) {
	case []string:
		return items, true
	case []interface{}:
		out := make([]string, 0, len(items))
		for _, item := range items {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}
