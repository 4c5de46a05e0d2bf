package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fxmartin/create-project-sub002/pkg/errors"
	"github.com/fxmartin/create-project-sub002/pkg/schema"
	"github.com/fxmartin/create-project-sub002/pkg/testutil"
)

func TestTemplateValidate_Metadata(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*schema.Template)
		wantErr bool
	}{
		{
			name:    "valid template passes",
			mutate:  func(tpl *schema.Template) {},
			wantErr: false,
		},
		{
			name:    "missing name",
			mutate:  func(tpl *schema.Template) { tpl.Metadata.Name = "" },
			wantErr: true,
		},
		{
			name:    "missing description",
			mutate:  func(tpl *schema.Template) { tpl.Metadata.Description = "" },
			wantErr: true,
		},
		{
			name:    "bad version",
			mutate:  func(tpl *schema.Template) { tpl.Metadata.Version = "1.0" },
			wantErr: true,
		},
		{
			name:    "version with pre-release is allowed",
			mutate:  func(tpl *schema.Template) { tpl.Metadata.Version = "1.0.0-beta.1+build.5" },
			wantErr: false,
		},
		{
			name:    "min engine version must be strict",
			mutate:  func(tpl *schema.Template) { tpl.Metadata.MinEngineVersion = "1.0.0-rc1" },
			wantErr: true,
		},
		{
			name:    "unknown category",
			mutate:  func(tpl *schema.Template) { tpl.Metadata.Category = "mobile" },
			wantErr: true,
		},
		{
			name:    "uppercase tag rejected",
			mutate:  func(tpl *schema.Template) { tpl.Metadata.Tags = []string{"Web"} },
			wantErr: true,
		},
		{
			name:    "valid tags",
			mutate:  func(tpl *schema.Template) { tpl.Metadata.Tags = []string{"web", "api_v2", "go-cli"} },
			wantErr: false,
		},
		{
			name:    "bad author email",
			mutate:  func(tpl *schema.Template) { tpl.Metadata.AuthorEmail = "not-an-email" },
			wantErr: true,
		},
		{
			name: "updated before created rejected",
			mutate: func(tpl *schema.Template) {
				tpl.Metadata.CreatedAt = "2024-06-01"
				tpl.Metadata.UpdatedAt = "2024-01-01"
			},
			wantErr: true,
		},
		{
			name:    "unknown compatibility platform",
			mutate:  func(tpl *schema.Template) { tpl.Metadata.Compatibility = []string{"plan9"} },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl := testutil.NewTemplate()
			tt.mutate(tpl)
			err := tpl.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateInvalid))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTemplateValidate_Variables(t *testing.T) {
	t.Run("default_must_type_check", func(t *testing.T) {
		tpl := testutil.NewTemplate()
		tpl.Variables = []schema.Variable{{
			Name:        "count",
			Type:        schema.TypeInteger,
			Description: "a count",
			Default:     "three",
		}}
		err := tpl.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "default")
	})

	t.Run("choice_default_must_be_a_choice", func(t *testing.T) {
		tpl := testutil.NewTemplate()
		tpl.Variables = []schema.Variable{{
			Name:        "framework",
			Type:        schema.TypeChoice,
			Description: "framework",
			Default:     "rails",
			Choices: []schema.Choice{
				{Value: "flask"},
				{Value: "django"},
			},
		}}
		require.Error(t, tpl.Validate())
	})

	t.Run("choice_requires_two_choices", func(t *testing.T) {
		tpl := testutil.NewTemplate()
		tpl.Variables = []schema.Variable{{
			Name:        "framework",
			Type:        schema.TypeChoice,
			Description: "framework",
			Choices:     []schema.Choice{{Value: "flask"}},
		}}
		require.Error(t, tpl.Validate())
	})

	t.Run("choices_forbidden_on_string", func(t *testing.T) {
		tpl := testutil.NewTemplate()
		tpl.Variables = []schema.Variable{{
			Name:        "name",
			Type:        schema.TypeString,
			Description: "name",
			Choices:     []schema.Choice{{Value: "a"}, {Value: "b"}},
		}}
		require.Error(t, tpl.Validate())
	})

	t.Run("rule_kind_must_match_type", func(t *testing.T) {
		tpl := testutil.NewTemplate()
		tpl.Variables = []schema.Variable{{
			Name:        "flag",
			Type:        schema.TypeBoolean,
			Description: "flag",
			Rules:       []schema.Rule{{Kind: schema.RuleMinLength, Value: 3}},
		}}
		require.Error(t, tpl.Validate())
	})

	t.Run("invalid_identifier_rejected", func(t *testing.T) {
		tpl := testutil.NewTemplate()
		tpl.Variables = []schema.Variable{{
			Name:        "my-var",
			Type:        schema.TypeString,
			Description: "bad name",
		}}
		require.Error(t, tpl.Validate())
	})

	t.Run("unknown_filter_rejected", func(t *testing.T) {
		tpl := testutil.NewTemplate()
		v := testutil.StringVar("name", false)
		v.Filters = []string{"reverse"}
		tpl.Variables = []schema.Variable{v}
		require.Error(t, tpl.Validate())
	})
}

func TestTemplateValidate_Structure(t *testing.T) {
	t.Run("two_content_sources_rejected", func(t *testing.T) {
		tpl := testutil.NewTemplate()
		tpl.Structure.Root.Files = []schema.FileItem{{
			Name:         "main.go",
			Content:      "package main",
			TemplateFile: "main.tmpl",
		}}
		err := tpl.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "content source")
	})

	t.Run("bad_permissions_rejected", func(t *testing.T) {
		tpl := testutil.NewTemplate()
		tpl.Structure.Root.Files = []schema.FileItem{{
			Name: "run.sh",
			Mode: "0755",
		}}
		require.Error(t, tpl.Validate())
	})

	t.Run("traversal_rejected", func(t *testing.T) {
		tpl := testutil.NewTemplate()
		tpl.Structure.Root.Directories = []schema.DirectoryItem{{
			Name: "../escape",
		}}
		require.Error(t, tpl.Validate())
	})

	t.Run("nested_directories_validated", func(t *testing.T) {
		tpl := testutil.NewTemplate()
		tpl.Structure.Root.Directories = []schema.DirectoryItem{{
			Name: "src",
			Directories: []schema.DirectoryItem{{
				Name: "inner",
				Mode: "999",
			}},
		}}
		require.Error(t, tpl.Validate())
	})
}

func TestTemplateValidate_ActionsAndTemplateFiles(t *testing.T) {
	t.Run("template_file_needs_suffix", func(t *testing.T) {
		tpl := testutil.NewTemplate()
		tpl.TemplateFiles.Files = []schema.TemplateFile{{
			Name:    "Makefile",
			Content: "all:",
		}}
		require.Error(t, tpl.Validate())
	})

	t.Run("action_workdir_must_be_relative", func(t *testing.T) {
		tpl := testutil.NewTemplate()
		tpl.Hooks.PostGenerate = []schema.Action{{
			Name:    "install_deps",
			Type:    schema.ActionCommand,
			Command: "npm install",
			WorkDir: "/etc",
		}}
		require.Error(t, tpl.Validate())
	})

	t.Run("negative_timeout_rejected", func(t *testing.T) {
		tpl := testutil.NewTemplate()
		tpl.Hooks.Cleanup = []schema.Action{{
			Name:           "tidy",
			Type:           schema.ActionDelete,
			Command:        "rm -rf tmp",
			TimeoutSeconds: -1,
		}}
		require.Error(t, tpl.Validate())
	})

	t.Run("valid_hooks_pass", func(t *testing.T) {
		tpl := testutil.NewTemplate()
		tpl.Hooks.PreGenerate = []schema.Action{{
			Name:    "check_git",
			Type:    schema.ActionCommand,
			Command: "git --version",
		}}
		tpl.ActionGroups = []schema.ActionGroup{{
			Name: "setup",
			Actions: []schema.Action{{
				Name:    "init_repo",
				Type:    schema.ActionGit,
				Command: "git init",
			}},
		}}
		assert.NoError(t, tpl.Validate())
	})
}
