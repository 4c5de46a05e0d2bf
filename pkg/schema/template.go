package schema

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fxmartin/create-project-sub002/pkg/errors"
	"github.com/fxmartin/create-project-sub002/pkg/logging"
)

// Template is the aggregate, validated description of a project:
// metadata, variables, structure, template files, hooks, and action
// groups. Constructed once from a definition file and used read-only
// for potentially many renderings.
type Template struct {
	Metadata      Metadata      `yaml:"metadata" json:"metadata"`
	Variables     []Variable    `yaml:"variables,omitempty" json:"variables,omitempty"`
	Structure     Structure     `yaml:"structure" json:"structure"`
	TemplateFiles TemplateFiles `yaml:"template_files,omitempty" json:"template_files,omitempty"`
	Hooks         Hooks         `yaml:"hooks,omitempty" json:"hooks,omitempty"`
	ActionGroups  []ActionGroup `yaml:"action_groups,omitempty" json:"action_groups,omitempty"`
}

// Variable returns the declared variable with the given name.
func (t *Template) Variable(name string) (*Variable, bool) {
	for i := range t.Variables {
		if t.Variables[i].Name == name {
			return &t.Variables[i], true
		}
	}
	return nil, false
}

// Parse decodes a template definition from YAML or JSON bytes and runs
// construction-time validation. YAML being a superset of JSON, one
// decoder serves both formats.
func Parse(data []byte) (*Template, error) {
	var t Template
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, errors.Wrap(err, errors.ErrTemplateParse, "failed to parse template definition")
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Load reads and parses a template definition file.
func Load(path string) (*Template, error) {
	logger := logging.GetLogger("schema")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrTemplateNotFound, "template definition not found: %s", path).
				WithDetail("path", path)
		}
		return nil, errors.Wrapf(err, errors.ErrTemplateParse, "failed to read template definition: %s", path).
			WithDetail("path", path)
	}

	t, err := Parse(data)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("path", path).
		Str("template", t.Metadata.Name).
		Str("version", t.Metadata.Version).
		Int("variables", len(t.Variables)).
		Msg("Template loaded")

	return t, nil
}
