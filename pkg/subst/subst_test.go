package subst_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fxmartin/create-project-sub002/pkg/subst"
)

func TestExpand(t *testing.T) {
	vars := map[string]interface{}{
		"project_name": "demo",
		"use_tests":    true,
		"port":         8080,
		"ratio":        0.5,
		"deps":         []interface{}{"flask", "pytest"},
	}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text untouched", "hello world", "hello world"},
		{"single token", "# {{ project_name }}", "# demo"},
		{"no inner spaces", "{{project_name}}", "demo"},
		{"extra spaces", "{{   project_name   }}", "demo"},
		{"boolean formatting", "tests={{ use_tests }}", "tests=true"},
		{"integer formatting", "port={{ port }}", "port=8080"},
		{"float formatting", "ratio={{ ratio }}", "ratio=0.5"},
		{"list formatting", "deps: {{ deps }}", "deps: flask, pytest"},
		{"unknown token left alone", "{{ missing }}", "{{ missing }}"},
		{"multiple tokens", "{{ project_name }}-{{ port }}", "demo-8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, subst.Expand(tt.input, vars))
		})
	}
}

func TestTokens(t *testing.T) {
	assert.Nil(t, subst.Tokens("no placeholders here"))
	assert.Equal(t, []string{"a", "b"}, subst.Tokens("{{ a }} {{ b }} {{ a }}"))
	assert.Equal(t, []string{"name"}, subst.Tokens("{{name}}"))
	// Malformed or non-identifier tokens are not placeholders.
	assert.Nil(t, subst.Tokens("{{ 1bad }} {{ a.b }}"))
}

func TestHasTokens(t *testing.T) {
	assert.True(t, subst.HasTokens("{{ x }}"))
	assert.False(t, subst.HasTokens("plain"))
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "", subst.FormatValue(nil))
	assert.Equal(t, "false", subst.FormatValue(false))
	assert.Equal(t, "3.14", subst.FormatValue(3.14))
	assert.Equal(t, "a, b", subst.FormatValue([]string{"a", "b"}))
}
