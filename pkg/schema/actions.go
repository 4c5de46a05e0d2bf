package schema

// ActionType identifies the closed set of post-generation action types.
// Action commands are opaque to the engine; they are validated and
// passed through, never interpreted.
type ActionType string

const (
	ActionCommand ActionType = "command"
	ActionScript  ActionType = "script"
	ActionGit     ActionType = "git"
	ActionCopy    ActionType = "copy"
	ActionMove    ActionType = "move"
	ActionDelete  ActionType = "delete"
	ActionMkdir   ActionType = "mkdir"
	ActionChmod   ActionType = "chmod"
)

var actionTypes = map[ActionType]bool{
	ActionCommand: true,
	ActionScript:  true,
	ActionGit:     true,
	ActionCopy:    true,
	ActionMove:    true,
	ActionDelete:  true,
	ActionMkdir:   true,
	ActionChmod:   true,
}

// IsValid reports whether t is a member of the closed action type set.
func (t ActionType) IsValid() bool {
	return actionTypes[t]
}

// Action is a named unit of post-generation work.
type Action struct {
	// Name must be unique across the whole template, not merely
	// within a stage.
	Name string `yaml:"name" json:"name"`

	Type ActionType `yaml:"type" json:"type"`

	// Command is the opaque action payload.
	Command string `yaml:"command" json:"command"`

	// Platforms restricts where the action applies; empty means all.
	Platforms []string `yaml:"platforms,omitempty" json:"platforms,omitempty"`

	// WorkDir must be relative with no traversal.
	WorkDir string `yaml:"working_directory,omitempty" json:"working_directory,omitempty"`

	// TimeoutSeconds bounds the external action's execution only.
	TimeoutSeconds int `yaml:"timeout,omitempty" json:"timeout,omitempty"`

	// Condition controls whether the action runs.
	Condition string `yaml:"condition,omitempty" json:"condition,omitempty"`

	// Required: failure aborts generation; otherwise failure is
	// recorded and generation continues.
	Required bool `yaml:"required,omitempty" json:"required,omitempty"`
}

// Hooks groups actions into the six fixed lifecycle stages.
type Hooks struct {
	PreGenerate  []Action `yaml:"pre_generate,omitempty" json:"pre_generate,omitempty"`
	PostGenerate []Action `yaml:"post_generate,omitempty" json:"post_generate,omitempty"`
	PreFile      []Action `yaml:"pre_file,omitempty" json:"pre_file,omitempty"`
	PostFile     []Action `yaml:"post_file,omitempty" json:"post_file,omitempty"`
	OnError      []Action `yaml:"on_error,omitempty" json:"on_error,omitempty"`
	Cleanup      []Action `yaml:"cleanup,omitempty" json:"cleanup,omitempty"`
}

// Stages returns the hook stages in lifecycle order, keyed by name.
func (h *Hooks) Stages() []struct {
	Name    string
	Actions []Action
} {
	return []struct {
		Name    string
		Actions []Action
	}{
		{"pre_generate", h.PreGenerate},
		{"post_generate", h.PostGenerate},
		{"pre_file", h.PreFile},
		{"post_file", h.PostFile},
		{"on_error", h.OnError},
		{"cleanup", h.Cleanup},
	}
}

// ActionGroup is a named collection of actions outside the hook stages.
type ActionGroup struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Actions     []Action `yaml:"actions,omitempty" json:"actions,omitempty"`
}
