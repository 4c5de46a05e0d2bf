package schema

// Encoding identifies the text encoding of a file's content.
const DefaultEncoding = "utf-8"

// FileItem is a leaf in the template tree. Exactly one of Content,
// TemplateFile, or BinarySource must be set.
type FileItem struct {
	// Name may embed {{ variable }} placeholders.
	Name string `yaml:"name" json:"name"`

	// Content is an inline template string.
	Content string `yaml:"content,omitempty" json:"content,omitempty"`

	// TemplateFile references an entry in the template's external
	// template-file collection by name.
	TemplateFile string `yaml:"template_file,omitempty" json:"template_file,omitempty"`

	// BinarySource is base64-encoded binary content.
	BinarySource string `yaml:"binary_source,omitempty" json:"binary_source,omitempty"`

	// Encoding defaults to utf-8.
	Encoding string `yaml:"encoding,omitempty" json:"encoding,omitempty"`

	// Mode is a 3-digit octal permission string, e.g. "644".
	Mode string `yaml:"permissions,omitempty" json:"permissions,omitempty"`

	// Condition controls inclusion; empty means always included.
	Condition string `yaml:"condition,omitempty" json:"condition,omitempty"`

	// Executable adds the execute bits on top of Mode.
	Executable bool `yaml:"executable,omitempty" json:"executable,omitempty"`
}

// HasInline reports whether the file carries inline content. An
// explicitly empty inline file is represented by all three sources
// empty, which ContentSourceCount treats as inline.
func (f *FileItem) HasInline() bool {
	return f.TemplateFile == "" && f.BinarySource == ""
}

// ContentSourceCount returns how many content sources are set.
func (f *FileItem) ContentSourceCount() int {
	n := 0
	if f.Content != "" {
		n++
	}
	if f.TemplateFile != "" {
		n++
	}
	if f.BinarySource != "" {
		n++
	}
	return n
}

// DirectoryItem is a recursive node in the template tree.
type DirectoryItem struct {
	// Name may embed {{ variable }} placeholders.
	Name string `yaml:"name" json:"name"`

	// Mode is a 3-digit octal permission string, e.g. "755".
	Mode string `yaml:"permissions,omitempty" json:"permissions,omitempty"`

	// Condition controls inclusion of the whole subtree.
	Condition string `yaml:"condition,omitempty" json:"condition,omitempty"`

	Files       []FileItem      `yaml:"files,omitempty" json:"files,omitempty"`
	Directories []DirectoryItem `yaml:"directories,omitempty" json:"directories,omitempty"`
}

// Walk calls fn for this directory and every descendant directory,
// parent before children. Walking stops when fn returns false.
func (d *DirectoryItem) Walk(fn func(*DirectoryItem) bool) bool {
	if !fn(d) {
		return false
	}
	for i := range d.Directories {
		if !d.Directories[i].Walk(fn) {
			return false
		}
	}
	return true
}

// Structure wraps the root of the template tree.
type Structure struct {
	Root DirectoryItem `yaml:"root_directory" json:"root_directory"`
}

// TemplateFile is a standalone external template rendered outside the
// directory tree.
type TemplateFile struct {
	// Name must end in .tmpl or .template.
	Name string `yaml:"name" json:"name"`

	Content string `yaml:"content" json:"content"`

	// Output is the relative output path; defaults to Name with the
	// template suffix stripped.
	Output string `yaml:"output,omitempty" json:"output,omitempty"`
}

// TemplateFiles is the template's external template-file collection.
type TemplateFiles struct {
	Files []TemplateFile `yaml:"files,omitempty" json:"files,omitempty"`
}

// Lookup returns the template file with the given name, if present.
func (tf *TemplateFiles) Lookup(name string) (*TemplateFile, bool) {
	for i := range tf.Files {
		if tf.Files[i].Name == name {
			return &tf.Files[i], true
		}
	}
	return nil, false
}
