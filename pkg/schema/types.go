package schema

// VariableType identifies the closed set of supported variable types.
type VariableType string

const (
	TypeString      VariableType = "string"
	TypeBoolean     VariableType = "boolean"
	TypeInteger     VariableType = "integer"
	TypeFloat       VariableType = "float"
	TypeChoice      VariableType = "choice"
	TypeMultichoice VariableType = "multichoice"
	TypeList        VariableType = "list"
	TypeEmail       VariableType = "email"
	TypeURL         VariableType = "url"
	TypePath        VariableType = "path"
)

// variableTypes is the authoritative set of valid types.
var variableTypes = map[VariableType]bool{
	TypeString:      true,
	TypeBoolean:     true,
	TypeInteger:     true,
	TypeFloat:       true,
	TypeChoice:      true,
	TypeMultichoice: true,
	TypeList:        true,
	TypeEmail:       true,
	TypeURL:         true,
	TypePath:        true,
}

// IsValid reports whether t is a member of the closed type set.
func (t VariableType) IsValid() bool {
	return variableTypes[t]
}

// RequiresChoices reports whether variables of this type must declare choices.
func (t VariableType) RequiresChoices() bool {
	return t == TypeChoice || t == TypeMultichoice
}

// Category identifies the closed set of template categories.
type Category string

const (
	CategoryWeb         Category = "web"
	CategoryCLI         Category = "cli"
	CategoryLibrary     Category = "library"
	CategoryAPI         Category = "api"
	CategoryDataScience Category = "data-science"
	CategoryDevOps      Category = "devops"
	CategoryOther       Category = "other"
)

var categories = map[Category]bool{
	CategoryWeb:         true,
	CategoryCLI:         true,
	CategoryLibrary:     true,
	CategoryAPI:         true,
	CategoryDataScience: true,
	CategoryDevOps:      true,
	CategoryOther:       true,
}

// IsValid reports whether c is a member of the closed category set.
func (c Category) IsValid() bool {
	return categories[c]
}

// Operator identifies a structured condition operator.
type Operator string

const (
	OpEquals       Operator = "=="
	OpNotEquals    Operator = "!="
	OpLess         Operator = "<"
	OpLessEqual    Operator = "<="
	OpGreater      Operator = ">"
	OpGreaterEqual Operator = ">="
	OpIn           Operator = "in"
	OpNotIn        Operator = "not_in"
	OpContains     Operator = "contains"
	OpNotContains  Operator = "not_contains"
	OpStartsWith   Operator = "startswith"
	OpEndsWith     Operator = "endswith"
	OpIsEmpty      Operator = "is_empty"
	OpIsNotEmpty   Operator = "is_not_empty"
	OpMatches      Operator = "matches"
	OpNotMatches   Operator = "not_matches"
)

var operators = map[Operator]bool{
	OpEquals:       true,
	OpNotEquals:    true,
	OpLess:         true,
	OpLessEqual:    true,
	OpGreater:      true,
	OpGreaterEqual: true,
	OpIn:           true,
	OpNotIn:        true,
	OpContains:     true,
	OpNotContains:  true,
	OpStartsWith:   true,
	OpEndsWith:     true,
	OpIsEmpty:      true,
	OpIsNotEmpty:   true,
	OpMatches:      true,
	OpNotMatches:   true,
}

// IsValid reports whether o is a member of the closed operator set.
func (o Operator) IsValid() bool {
	return operators[o]
}

// Condition is a structured comparison against one resolved variable.
// It is a pure value; evaluation lives in the conditions package.
type Condition struct {
	// Variable is the name of the variable the condition reads.
	Variable string `yaml:"variable" json:"variable"`

	// Operator selects the comparison applied to (value, Value).
	Operator Operator `yaml:"operator" json:"operator"`

	// Value is the operand. Unused by is_empty/is_not_empty.
	Value interface{} `yaml:"value,omitempty" json:"value,omitempty"`
}

// RuleKind identifies a validation rule applied to a supplied value.
type RuleKind string

const (
	RulePattern   RuleKind = "pattern"
	RuleMinLength RuleKind = "min_length"
	RuleMaxLength RuleKind = "max_length"
	RuleMinValue  RuleKind = "min_value"
	RuleMaxValue  RuleKind = "max_value"
	RuleMinItems  RuleKind = "min_items"
	RuleMaxItems  RuleKind = "max_items"
)

var ruleKinds = map[RuleKind]bool{
	RulePattern:   true,
	RuleMinLength: true,
	RuleMaxLength: true,
	RuleMinValue:  true,
	RuleMaxValue:  true,
	RuleMinItems:  true,
	RuleMaxItems:  true,
}

// IsValid reports whether k is a member of the closed rule set.
func (k RuleKind) IsValid() bool {
	return ruleKinds[k]
}

// Rule is a single validation constraint on a variable value.
type Rule struct {
	Kind    RuleKind    `yaml:"rule" json:"rule"`
	Value   interface{} `yaml:"value" json:"value"`
	Message string      `yaml:"message,omitempty" json:"message,omitempty"`
}

// Choice is one selectable value for choice/multichoice variables.
type Choice struct {
	Value       string `yaml:"value" json:"value"`
	Label       string `yaml:"label,omitempty" json:"label,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Variable declares one template variable.
type Variable struct {
	// Name is a valid identifier, unique within the template.
	Name string `yaml:"name" json:"name"`

	// Type is one of the closed VariableType set.
	Type VariableType `yaml:"type" json:"type"`

	// Description is the prompt text shown by the wizard.
	Description string `yaml:"description" json:"description"`

	// Default, if present, must type-check against Type before any
	// other validation runs.
	Default interface{} `yaml:"default,omitempty" json:"default,omitempty"`

	// Required marks the variable as mandatory when visible.
	Required bool `yaml:"required,omitempty" json:"required,omitempty"`

	// Choices lists selectable values; required (>=2) for
	// choice/multichoice types, forbidden otherwise.
	Choices []Choice `yaml:"choices,omitempty" json:"choices,omitempty"`

	// Rules are applied to supplied values after type-checking.
	Rules []Rule `yaml:"validation_rules,omitempty" json:"validation_rules,omitempty"`

	// ShowIf: all must hold for the variable to be shown.
	ShowIf []Condition `yaml:"show_if,omitempty" json:"show_if,omitempty"`

	// HideIf: any holding forces the variable hidden.
	HideIf []Condition `yaml:"hide_if,omitempty" json:"hide_if,omitempty"`

	// Filters are name-transform operations applied to the value
	// before substitution (lower, upper, snake, kebab, camel,
	// pascal, trim).
	Filters []string `yaml:"filters,omitempty" json:"filters,omitempty"`
}

// Metadata describes a template. Immutable once loaded.
type Metadata struct {
	Name             string   `yaml:"name" json:"name"`
	Description      string   `yaml:"description" json:"description"`
	Version          string   `yaml:"version" json:"version"`
	Category         Category `yaml:"category" json:"category"`
	Tags             []string `yaml:"tags,omitempty" json:"tags,omitempty"`
	Author           string   `yaml:"author" json:"author"`
	AuthorEmail      string   `yaml:"author_email,omitempty" json:"author_email,omitempty"`
	License          string   `yaml:"license" json:"license"`
	CreatedAt        string   `yaml:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt        string   `yaml:"updated_at,omitempty" json:"updated_at,omitempty"`
	MinEngineVersion string   `yaml:"min_engine_version,omitempty" json:"min_engine_version,omitempty"`
	Compatibility    []string `yaml:"compatibility,omitempty" json:"compatibility,omitempty"`
}
