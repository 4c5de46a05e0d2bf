// Package resolver combines a template's variable declarations with
// caller-supplied values to produce the final resolved-variable map.
package resolver

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fxmartin/create-project-sub002/pkg/conditions"
	"github.com/fxmartin/create-project-sub002/pkg/schema"
)

// Problem is one resolution failure tied to a variable.
type Problem struct {
	Variable string
	Message  string
}

// ResolutionError aggregates every missing-required and rule-violation
// problem found during one resolution pass. Resolution never stops at
// the first failing variable.
type ResolutionError struct {
	Problems []Problem
}

// Error implements the error interface.
func (e *ResolutionError) Error() string {
	msgs := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		msgs[i] = fmt.Sprintf("%s: %s", p.Variable, p.Message)
	}
	return "variable resolution failed: " + strings.Join(msgs, "; ")
}

// SystemVariables returns the engine-provided variables injected into
// every resolution: values a template may reference without declaring.
// The license text is supplied by the external license provider via
// Options.Extra.
func SystemVariables(t *schema.Template) map[string]interface{} {
	now := time.Now()
	return map[string]interface{}{
		"current_date":     now.Format("2006-01-02"),
		"current_year":     now.Year(),
		"template_name":    t.Metadata.Name,
		"template_version": t.Metadata.Version,
	}
}

// Options adjusts a resolution pass.
type Options struct {
	// Extra holds caller-injected system variables, e.g. license_text
	// from the license provider.
	Extra map[string]interface{}
}

// Resolve produces the resolved-variable map for the template from the
// supplied values, or a *ResolutionError naming every problem.
func Resolve(t *schema.Template, supplied map[string]interface{}) (map[string]interface{}, error) {
	return ResolveWith(t, supplied, Options{})
}

// ResolveWith is Resolve with options.
//
// Variables are processed in declaration order, which is also the
// evaluation order for visibility conditions: a condition referencing
// a variable declared later sees it as absent and therefore false.
// Hidden variables are skipped entirely: requiredness is not enforced,
// and they are omitted from the resolved map even when supplied.
func ResolveWith(t *schema.Template, supplied map[string]interface{}, opts Options) (map[string]interface{}, error) {
	resolved := make(map[string]interface{})
	scope := SystemVariables(t)
	for k, v := range opts.Extra {
		scope[k] = v
	}

	var problems []Problem

	for i := range t.Variables {
		v := &t.Variables[i]

		if !conditions.Visible(v, scope) {
			continue
		}

		raw, haveValue := supplied[v.Name]
		if !haveValue {
			if v.Required {
				problems = append(problems, Problem{
					Variable: v.Name,
					Message:  "required variable has no value",
				})
				continue
			}
			if v.Default != nil {
				value := applyFilters(v.Default, v.Filters)
				resolved[v.Name] = value
				scope[v.Name] = value
			}
			continue
		}

		value, err := coerceValue(raw, v.Type)
		if err != nil {
			problems = append(problems, Problem{Variable: v.Name, Message: err.Error()})
			continue
		}
		if err := schema.CheckValueType(value, v.Type, v.Choices); err != nil {
			problems = append(problems, Problem{Variable: v.Name, Message: err.Error()})
			continue
		}
		if msg, ok := firstRuleViolation(v, value); !ok {
			problems = append(problems, Problem{Variable: v.Name, Message: msg})
			continue
		}

		value = applyFilters(value, v.Filters)
		resolved[v.Name] = value
		scope[v.Name] = value
	}

	if len(problems) > 0 {
		return nil, &ResolutionError{Problems: problems}
	}
	return resolved, nil
}

// coerceValue converts string input (the shape CLI flags and wizard
// answers arrive in) to the declared type. Values already of the right
// shape pass through.
func coerceValue(raw interface{}, t schema.VariableType) (interface{}, error) {
	s, isString := raw.(string)
	switch t {
	case schema.TypeBoolean:
		if !isString {
			return raw, nil
		}
		b, err := strconv.ParseBool(strings.ToLower(s))
		if err != nil {
			return nil, fmt.Errorf("cannot interpret %q as a boolean", s)
		}
		return b, nil
	case schema.TypeInteger:
		if !isString {
			return raw, nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("cannot interpret %q as an integer", s)
		}
		return n, nil
	case schema.TypeFloat:
		if !isString {
			return raw, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("cannot interpret %q as a number", s)
		}
		return f, nil
	case schema.TypeList, schema.TypeMultichoice:
		if !isString {
			return raw, nil
		}
		parts := strings.Split(s, ",")
		out := make([]interface{}, 0, len(parts))
		for _, p := range parts {
			out = append(out, strings.TrimSpace(p))
		}
		return out, nil
	}
	return raw, nil
}
