package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fxmartin/create-project-sub002/pkg/errors"
	"github.com/fxmartin/create-project-sub002/pkg/schema"
	"github.com/fxmartin/create-project-sub002/pkg/testutil"
)

const sampleYAML = `
metadata:
  name: flask-app
  description: A Flask application skeleton
  version: 1.2.0
  category: web
  tags: [python, web]
  author: Jane Doe
  author_email: jane@example.com
  license: MIT
  min_engine_version: 0.3.0
  compatibility: [linux, darwin]
variables:
  - name: project_name
    type: string
    description: Project name
    required: true
  - name: use_tests
    type: boolean
    description: Include a test suite
    default: true
structure:
  root_directory:
    name: "{{ project_name }}"
    files:
      - name: README.md
        content: "# {{ project_name }}"
    directories:
      - name: tests
        condition: "{{ use_tests }}"
        files:
          - name: test_app.py
            content: "import pytest"
template_files:
  files:
    - name: setup.cfg.tmpl
      content: "[metadata]\nname = {{ project_name }}"
hooks:
  post_generate:
    - name: git_init
      type: git
      command: git init
`

func TestParse(t *testing.T) {
	t.Run("valid_yaml", func(t *testing.T) {
		tpl, err := schema.Parse([]byte(sampleYAML))
		require.NoError(t, err)

		assert.Equal(t, "flask-app", tpl.Metadata.Name)
		assert.Equal(t, schema.CategoryWeb, tpl.Metadata.Category)
		require.Len(t, tpl.Variables, 2)
		assert.Equal(t, schema.TypeBoolean, tpl.Variables[1].Type)
		assert.Equal(t, true, tpl.Variables[1].Default)
		require.Len(t, tpl.Structure.Root.Directories, 1)
		assert.Equal(t, "{{ use_tests }}", tpl.Structure.Root.Directories[0].Condition)
		require.Len(t, tpl.TemplateFiles.Files, 1)
		require.Len(t, tpl.Hooks.PostGenerate, 1)
		assert.Equal(t, schema.ActionGit, tpl.Hooks.PostGenerate[0].Type)
	})

	t.Run("valid_json", func(t *testing.T) {
		data := `{"metadata": {"name": "x", "description": "d", "version": "1.0.0",
			"category": "cli", "author": "a", "license": "MIT"},
			"structure": {"root_directory": {"name": "root"}}}`
		tpl, err := schema.Parse([]byte(data))
		require.NoError(t, err)
		assert.Equal(t, "x", tpl.Metadata.Name)
	})

	t.Run("garbage_fails_with_parse_code", func(t *testing.T) {
		_, err := schema.Parse([]byte("{{{not yaml"))
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateParse))
	})

	t.Run("invalid_template_fails_validation", func(t *testing.T) {
		data := "metadata:\n  name: x\nstructure:\n  root_directory:\n    name: root\n"
		_, err := schema.Parse([]byte(data))
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateInvalid))
	})
}

func TestLoad(t *testing.T) {
	t.Run("round_trip_from_disk", func(t *testing.T) {
		path := testutil.WriteTemplateFile(t, sampleYAML)
		tpl, err := schema.Load(path)
		require.NoError(t, err)
		assert.Equal(t, "flask-app", tpl.Metadata.Name)
	})

	t.Run("missing_file", func(t *testing.T) {
		_, err := schema.Load("/nonexistent/template.yaml")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateNotFound))
	})
}

func TestTemplateVariableLookup(t *testing.T) {
	tpl := testutil.NewTemplate()
	tpl.Variables = []schema.Variable{testutil.StringVar("project_name", true)}

	v, ok := tpl.Variable("project_name")
	require.True(t, ok)
	assert.Equal(t, schema.TypeString, v.Type)

	_, ok = tpl.Variable("missing")
	assert.False(t, ok)
}
