package conditions_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fxmartin/create-project-sub002/pkg/conditions"
	"github.com/fxmartin/create-project-sub002/pkg/schema"
)

func cond(variable string, op schema.Operator, value interface{}) schema.Condition {
	return schema.Condition{Variable: variable, Operator: op, Value: value}
}

func TestEval(t *testing.T) {
	vars := map[string]interface{}{
		"name":    "demo-app",
		"count":   3,
		"ratio":   0.5,
		"enabled": true,
		"empty":   "",
		"deps":    []interface{}{"flask", "pytest"},
	}

	tests := []struct {
		name string
		cond schema.Condition
		want bool
	}{
		{"equals string", cond("name", schema.OpEquals, "demo-app"), true},
		{"equals mismatch", cond("name", schema.OpEquals, "other"), false},
		{"equals across int and float", cond("count", schema.OpEquals, 3.0), true},
		{"not equals", cond("name", schema.OpNotEquals, "other"), true},
		{"less", cond("count", schema.OpLess, 5), true},
		{"less equal boundary", cond("count", schema.OpLessEqual, 3), true},
		{"greater", cond("ratio", schema.OpGreater, 0.1), true},
		{"greater equal fails", cond("count", schema.OpGreaterEqual, 10), false},
		{"string ordering", cond("name", schema.OpLess, "zzz"), true},
		{"in list", cond("name", schema.OpIn, []interface{}{"demo-app", "other"}), true},
		{"not in list", cond("name", schema.OpNotIn, []interface{}{"a", "b"}), true},
		{"in string", cond("name", schema.OpIn, "my demo-app here"), true},
		{"contains on list", cond("deps", schema.OpContains, "flask"), true},
		{"not contains on list", cond("deps", schema.OpNotContains, "rails"), true},
		{"contains on string", cond("name", schema.OpContains, "demo"), true},
		{"startswith", cond("name", schema.OpStartsWith, "demo"), true},
		{"endswith", cond("name", schema.OpEndsWith, "app"), true},
		{"is empty", cond("empty", schema.OpIsEmpty, nil), true},
		{"is not empty", cond("name", schema.OpIsNotEmpty, nil), true},
		{"matches", cond("name", schema.OpMatches, `^demo-\w+$`), true},
		{"not matches", cond("name", schema.OpNotMatches, `^\d+$`), true},

		// Absent variables and mismatches always evaluate false.
		{"absent variable", cond("missing", schema.OpEquals, "x"), false},
		{"ordering on bool", cond("enabled", schema.OpLess, true), false},
		{"ordering type mismatch", cond("count", schema.OpLess, "five"), false},
		{"startswith on int", cond("count", schema.OpStartsWith, "3"), false},
		{"bad regex", cond("name", schema.OpMatches, "("), false},
		{"bad regex not_matches", cond("name", schema.OpNotMatches, "("), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, conditions.Eval(tt.cond, vars))
		})
	}
}

func TestVisible(t *testing.T) {
	vars := map[string]interface{}{"use_docker": true, "language": "python"}

	t.Run("all_show_if_must_hold", func(t *testing.T) {
		v := &schema.Variable{
			ShowIf: []schema.Condition{
				cond("use_docker", schema.OpEquals, true),
				cond("language", schema.OpEquals, "python"),
			},
		}
		assert.True(t, conditions.Visible(v, vars))

		v.ShowIf = append(v.ShowIf, cond("language", schema.OpEquals, "go"))
		assert.False(t, conditions.Visible(v, vars))
	})

	t.Run("any_hide_if_hides", func(t *testing.T) {
		v := &schema.Variable{
			HideIf: []schema.Condition{
				cond("language", schema.OpEquals, "rust"),
				cond("use_docker", schema.OpEquals, true),
			},
		}
		assert.False(t, conditions.Visible(v, vars))
	})

	t.Run("no_conditions_means_visible", func(t *testing.T) {
		assert.True(t, conditions.Visible(&schema.Variable{}, vars))
	})
}

func TestEvalString(t *testing.T) {
	vars := map[string]interface{}{
		"use_tests": true,
		"no_docs":   false,
		"language":  "python",
		"count":     3,
	}

	tests := []struct {
		name string
		cond string
		want bool
	}{
		{"literal true", "true", true},
		{"literal yes mixed case", "YES", true},
		{"literal on", "on", true},
		{"literal 1", "1", true},
		{"literal false", "false", false},
		{"literal off", "off", false},
		{"literal 0", "0", false},
		{"empty string", "", false},
		{"substituted boolean", "{{ use_tests }}", true},
		{"substituted false boolean", "{{ no_docs }}", false},
		{"substituted absent variable", "{{ nonexistent }}", false},
		{"expression equality", "language == 'python'", true},
		{"expression inequality", "language != 'python'", false},
		// A substituted value becomes a bare word, which reads as an
		// absent identifier: deterministic false, never an error.
		{"substituted bare word comparison", "{{ language }} == 'python'", false},
		{"expression and", "use_tests and language == 'python'", true},
		{"expression or", "no_docs or use_tests", true},
		{"expression not", "not no_docs", true},
		{"expression comparison", "count >= 2", true},
		{"expression parens", "not (no_docs or count < 1)", true},
		{"garbage is false", ")(bad syntax", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, conditions.EvalString(tt.cond, vars))
		})
	}
}
