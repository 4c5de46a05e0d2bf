package schema

import (
	"fmt"
	"net/mail"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/fxmartin/create-project-sub002/pkg/errors"
)

var (
	identifierPattern  = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
	tagPattern         = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)
	semverFullPattern  = regexp.MustCompile(`^\d+\.\d+\.\d+(-[a-zA-Z0-9.-]+)?(\+[a-zA-Z0-9.-]+)?$`)
	semverStrict       = regexp.MustCompile(`^\d+\.\d+\.\d+$`)
	octalModePattern   = regexp.MustCompile(`^[0-7]{3}$`)
	templateFileSuffix = []string{".tmpl", ".template"}
)

var knownPlatforms = map[string]bool{
	"linux":   true,
	"darwin":  true,
	"windows": true,
}

var knownEncodings = map[string]bool{
	"utf-8":   true,
	"ascii":   true,
	"latin-1": true,
	"utf-16":  true,
}

var knownFilters = map[string]bool{
	"lower":  true,
	"upper":  true,
	"snake":  true,
	"kebab":  true,
	"camel":  true,
	"pascal": true,
	"trim":   true,
}

// Validate runs all construction-time checks: per-field syntactic
// rules that need no filesystem or cross-reference knowledge. The
// first failure is returned as a fatal ScaffoldError; a template that
// fails here cannot be used at all. Whole-template semantic checks
// live in the validate package.
func (t *Template) Validate() error {
	if err := t.Metadata.validate(); err != nil {
		return err
	}
	for i := range t.Variables {
		if err := t.Variables[i].validate(); err != nil {
			return err
		}
	}
	if err := validateDirectory(&t.Structure.Root, "structure.root_directory"); err != nil {
		return err
	}
	for i := range t.TemplateFiles.Files {
		if err := t.TemplateFiles.Files[i].validate(); err != nil {
			return err
		}
	}
	for _, stage := range t.Hooks.Stages() {
		for i := range stage.Actions {
			if err := stage.Actions[i].validate(stage.Name); err != nil {
				return err
			}
		}
	}
	for i := range t.ActionGroups {
		g := &t.ActionGroups[i]
		if g.Name == "" {
			return invalid("action_groups", "action group name is required")
		}
		for j := range g.Actions {
			if err := g.Actions[j].validate("group " + g.Name); err != nil {
				return err
			}
		}
	}
	return nil
}

func invalid(field, msg string) *errors.ScaffoldError {
	return errors.Newf(errors.ErrTemplateInvalid, "%s: %s", field, msg).
		WithDetail("field", field)
}

func (m *Metadata) validate() error {
	if m.Name == "" {
		return invalid("metadata.name", "template name is required")
	}
	if m.Description == "" {
		return invalid("metadata.description", "template description is required")
	}
	if m.Author == "" {
		return invalid("metadata.author", "template author is required")
	}
	if m.License == "" {
		return invalid("metadata.license", "template license is required")
	}
	if !semverFullPattern.MatchString(m.Version) {
		return invalid("metadata.version",
			fmt.Sprintf("invalid version %q (expected semantic version like 1.0.0)", m.Version))
	}
	if !m.Category.IsValid() {
		return invalid("metadata.category", fmt.Sprintf("unknown category %q", m.Category))
	}
	for _, tag := range m.Tags {
		if !tagPattern.MatchString(tag) {
			return invalid("metadata.tags",
				fmt.Sprintf("invalid tag %q (lowercase letters, digits, hyphens, underscores)", tag))
		}
	}
	if m.AuthorEmail != "" {
		if _, err := mail.ParseAddress(m.AuthorEmail); err != nil {
			return invalid("metadata.author_email", fmt.Sprintf("invalid email %q", m.AuthorEmail))
		}
	}
	if m.MinEngineVersion != "" && !semverStrict.MatchString(m.MinEngineVersion) {
		return invalid("metadata.min_engine_version",
			fmt.Sprintf("invalid version %q (expected strict X.Y.Z)", m.MinEngineVersion))
	}
	for _, platform := range m.Compatibility {
		if !knownPlatforms[platform] {
			return invalid("metadata.compatibility", fmt.Sprintf("unknown platform %q", platform))
		}
	}
	created, err := parseTimestamp(m.CreatedAt)
	if err != nil {
		return invalid("metadata.created_at", err.Error())
	}
	updated, err := parseTimestamp(m.UpdatedAt)
	if err != nil {
		return invalid("metadata.updated_at", err.Error())
	}
	if !created.IsZero() && !updated.IsZero() && updated.Before(created) {
		return invalid("metadata.updated_at", "updated_at must not precede created_at")
	}
	return nil
}

// parseTimestamp accepts RFC3339 or a bare date; empty is allowed.
func parseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if ts, err := time.Parse("2006-01-02", s); err == nil {
		return ts, nil
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q (expected RFC3339 or YYYY-MM-DD)", s)
}

func (v *Variable) validate() error {
	field := "variables." + v.Name
	if !identifierPattern.MatchString(v.Name) {
		return invalid("variables", fmt.Sprintf("invalid variable name %q (must be an identifier)", v.Name))
	}
	if !v.Type.IsValid() {
		return invalid(field+".type", fmt.Sprintf("unknown variable type %q", v.Type))
	}
	if v.Description == "" {
		return invalid(field+".description", "variable description is required")
	}

	if v.Type.RequiresChoices() {
		if len(v.Choices) < 2 {
			return invalid(field+".choices",
				fmt.Sprintf("%s variables require at least 2 choices", v.Type))
		}
		for _, c := range v.Choices {
			if c.Value == "" {
				return invalid(field+".choices", "choice value is required")
			}
		}
	} else if len(v.Choices) > 0 {
		return invalid(field+".choices",
			fmt.Sprintf("choices are only valid for choice/multichoice variables, not %s", v.Type))
	}

	// The default must type-check before any other validation runs.
	if v.Default != nil {
		if err := CheckValueType(v.Default, v.Type, v.Choices); err != nil {
			return invalid(field+".default", err.Error())
		}
	}

	for _, r := range v.Rules {
		if !r.Kind.IsValid() {
			return invalid(field+".validation_rules", fmt.Sprintf("unknown rule %q", r.Kind))
		}
		if err := checkRuleCompat(r.Kind, v.Type); err != nil {
			return invalid(field+".validation_rules", err.Error())
		}
	}

	for _, c := range append(append([]Condition{}, v.ShowIf...), v.HideIf...) {
		if !identifierPattern.MatchString(c.Variable) {
			return invalid(field, fmt.Sprintf("condition references invalid variable name %q", c.Variable))
		}
		if !c.Operator.IsValid() {
			return invalid(field, fmt.Sprintf("unknown condition operator %q", c.Operator))
		}
	}

	for _, f := range v.Filters {
		if !knownFilters[f] {
			return invalid(field+".filters", fmt.Sprintf("unknown filter %q", f))
		}
	}
	return nil
}

// checkRuleCompat rejects rule kinds that cannot apply to a type.
func checkRuleCompat(kind RuleKind, t VariableType) error {
	switch kind {
	case RulePattern, RuleMinLength, RuleMaxLength:
		switch t {
		case TypeString, TypeEmail, TypeURL, TypePath, TypeChoice:
			return nil
		}
		return fmt.Errorf("rule %s does not apply to %s variables", kind, t)
	case RuleMinValue, RuleMaxValue:
		if t == TypeInteger || t == TypeFloat {
			return nil
		}
		return fmt.Errorf("rule %s does not apply to %s variables", kind, t)
	case RuleMinItems, RuleMaxItems:
		if t == TypeList || t == TypeMultichoice {
			return nil
		}
		return fmt.Errorf("rule %s does not apply to %s variables", kind, t)
	}
	return nil
}

// CheckValueType verifies that a concrete value matches the declared
// variable type. Choice membership is part of the type contract for
// choice/multichoice.
func CheckValueType(value interface{}, t VariableType, choices []Choice) error {
	switch t {
	case TypeString, TypePath:
		if _, ok := value.(string); !ok {
			return fmt.Errorf("expected a string, got %T", value)
		}
	case TypeBoolean:
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("expected a boolean, got %T", value)
		}
	case TypeInteger:
		switch value.(type) {
		case int, int64:
		default:
			return fmt.Errorf("expected an integer, got %T", value)
		}
	case TypeFloat:
		switch value.(type) {
		case float64, float32, int, int64:
		default:
			return fmt.Errorf("expected a number, got %T", value)
		}
	case TypeEmail:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected a string, got %T", value)
		}
		if _, err := mail.ParseAddress(s); err != nil {
			return fmt.Errorf("invalid email address %q", s)
		}
	case TypeURL:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected a string, got %T", value)
		}
		u, err := url.Parse(s)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid URL %q", s)
		}
	case TypeChoice:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected a string, got %T", value)
		}
		if !choiceAllowed(s, choices) {
			return fmt.Errorf("value %q is not one of the declared choices", s)
		}
	case TypeMultichoice:
		items, err := stringSlice(value)
		if err != nil {
			return err
		}
		for _, s := range items {
			if !choiceAllowed(s, choices) {
				return fmt.Errorf("value %q is not one of the declared choices", s)
			}
		}
	case TypeList:
		if _, err := anySlice(value); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown variable type %q", t)
	}
	return nil
}

func choiceAllowed(value string, choices []Choice) bool {
	for _, c := range choices {
		if c.Value == value {
			return true
		}
	}
	return false
}

func stringSlice(value interface{}) ([]string, error) {
	switch v := value.(type) {
	case []string:
		return v, nil
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expected a list of strings, got %T element", item)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, fmt.Errorf("expected a list, got %T", value)
}

func anySlice(value interface{}) ([]interface{}, error) {
	switch v := value.(type) {
	case []interface{}:
		return v, nil
	case []string:
		out := make([]interface{}, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, nil
	}
	return nil, fmt.Errorf("expected a list, got %T", value)
}

func validateDirectory(d *DirectoryItem, field string) error {
	if d.Name == "" {
		return invalid(field+".name", "directory name is required")
	}
	if err := checkRelativeName(d.Name); err != nil {
		return invalid(field+".name", err.Error())
	}
	if d.Mode != "" && !octalModePattern.MatchString(d.Mode) {
		return invalid(field+".permissions",
			fmt.Sprintf("invalid permissions %q (expected 3-digit octal like 755)", d.Mode))
	}
	for i := range d.Files {
		f := &d.Files[i]
		sub := fmt.Sprintf("%s.files[%d]", field, i)
		if f.Name == "" {
			return invalid(sub+".name", "file name is required")
		}
		if err := checkRelativeName(f.Name); err != nil {
			return invalid(sub+".name", err.Error())
		}
		if f.ContentSourceCount() > 1 {
			return invalid(sub,
				fmt.Sprintf("file %q must have exactly one content source (content, template_file, or binary_source)", f.Name))
		}
		if f.Mode != "" && !octalModePattern.MatchString(f.Mode) {
			return invalid(sub+".permissions",
				fmt.Sprintf("invalid permissions %q (expected 3-digit octal like 644)", f.Mode))
		}
		if f.Encoding != "" && !knownEncodings[strings.ToLower(f.Encoding)] {
			return invalid(sub+".encoding", fmt.Sprintf("unknown encoding %q", f.Encoding))
		}
	}
	for i := range d.Directories {
		sub := fmt.Sprintf("%s.directories[%d]", field, i)
		if err := validateDirectory(&d.Directories[i], sub); err != nil {
			return err
		}
	}
	return nil
}

// checkRelativeName rejects absolute paths and directory traversal in
// item names.
func checkRelativeName(name string) error {
	if filepath.IsAbs(name) || strings.HasPrefix(name, "/") {
		return fmt.Errorf("name %q must be relative", name)
	}
	for _, part := range strings.Split(filepath.ToSlash(name), "/") {
		if part == ".." {
			return fmt.Errorf("name %q must not contain directory traversal", name)
		}
	}
	return nil
}

func (tf *TemplateFile) validate() error {
	field := "template_files." + tf.Name
	if tf.Name == "" {
		return invalid("template_files", "template file name is required")
	}
	suffixOK := false
	for _, suffix := range templateFileSuffix {
		if strings.HasSuffix(tf.Name, suffix) {
			suffixOK = true
			break
		}
	}
	if !suffixOK {
		return invalid(field, fmt.Sprintf("template file name %q must end in .tmpl or .template", tf.Name))
	}
	if tf.Output != "" {
		if err := checkRelativeName(tf.Output); err != nil {
			return invalid(field+".output", err.Error())
		}
	}
	return nil
}

func (a *Action) validate(stage string) error {
	field := fmt.Sprintf("hooks.%s.%s", stage, a.Name)
	if !identifierPattern.MatchString(a.Name) {
		return invalid(field, fmt.Sprintf("invalid action name %q (must be an identifier)", a.Name))
	}
	if !a.Type.IsValid() {
		return invalid(field+".type", fmt.Sprintf("unknown action type %q", a.Type))
	}
	if a.Command == "" {
		return invalid(field+".command", "action command is required")
	}
	for _, p := range a.Platforms {
		if !knownPlatforms[p] {
			return invalid(field+".platforms", fmt.Sprintf("unknown platform %q", p))
		}
	}
	if a.WorkDir != "" {
		if err := checkRelativeName(a.WorkDir); err != nil {
			return invalid(field+".working_directory", err.Error())
		}
	}
	if a.TimeoutSeconds < 0 {
		return invalid(field+".timeout", "timeout must not be negative")
	}
	return nil
}
