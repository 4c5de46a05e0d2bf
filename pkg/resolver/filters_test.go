package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyFilters(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		filters []string
		want    string
	}{
		{"lower", "MyProject", []string{"lower"}, "myproject"},
		{"upper", "MyProject", []string{"upper"}, "MYPROJECT"},
		{"trim", "  padded  ", []string{"trim"}, "padded"},
		{"snake from camel", "myDemoApp", []string{"snake"}, "my_demo_app"},
		{"snake from spaces", "My Demo App", []string{"snake"}, "my_demo_app"},
		{"kebab", "My Demo App", []string{"kebab"}, "my-demo-app"},
		{"camel", "my demo app", []string{"camel"}, "myDemoApp"},
		{"pascal", "my-demo-app", []string{"pascal"}, "MyDemoApp"},
		{"chained", " My App ", []string{"trim", "kebab"}, "my-app"},
		{"no filters", "AsIs", nil, "AsIs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, applyFilters(tt.input, tt.filters))
		})
	}
}

func TestApplyFiltersNonString(t *testing.T) {
	assert.Equal(t, 42, applyFilters(42, []string{"upper"}))
	assert.Equal(t, true, applyFilters(true, []string{"snake"}))
}
