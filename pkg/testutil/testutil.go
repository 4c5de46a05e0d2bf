// Package testutil provides template builders shared by tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fxmartin/create-project-sub002/pkg/schema"
)

// NewTemplate returns a minimal valid template to build cases on.
func NewTemplate() *schema.Template {
	return &schema.Template{
		Metadata: schema.Metadata{
			Name:        "demo",
			Description: "A demo template",
			Version:     "1.0.0",
			Category:    schema.CategoryCLI,
			Author:      "Test Author",
			License:     "MIT",
		},
		Structure: schema.Structure{
			Root: schema.DirectoryItem{Name: "root"},
		},
	}
}

// StringVar declares a string variable.
func StringVar(name string, required bool) schema.Variable {
	return schema.Variable{
		Name:        name,
		Type:        schema.TypeString,
		Description: name + " value",
		Required:    required,
	}
}

// BoolVar declares a boolean variable with a default.
func BoolVar(name string, def bool) schema.Variable {
	return schema.Variable{
		Name:        name,
		Type:        schema.TypeBoolean,
		Description: name + " flag",
		Default:     def,
	}
}

// WriteTemplateFile writes a template definition to a temp dir and
// returns its path.
func WriteTemplateFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "template.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}
