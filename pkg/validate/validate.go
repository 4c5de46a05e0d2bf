// Package validate performs whole-template semantic checks, distinct
// from the per-field syntactic validation done at construction.
// Every check collects human-readable diagnostics instead of raising:
// the returned list is advisory, and callers decide whether a
// non-empty result blocks rendering.
package validate

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fxmartin/create-project-sub002/pkg/schema"
	"github.com/fxmartin/create-project-sub002/pkg/subst"
)

// systemVariables are engine-injected names a template may reference
// without declaring. license_text comes from the external license
// provider; the rest are supplied by the resolver.
var systemVariables = map[string]bool{
	"license_text":     true,
	"current_date":     true,
	"current_year":     true,
	"template_name":    true,
	"template_version": true,
}

// foreignTemplateExtensions marks file types whose inline content
// belongs to an unrelated templating target (client-side templates and
// the like); their content is excluded from the undefined-variable
// scan. Names are always scanned.
var foreignTemplateExtensions = map[string]bool{
	".html":   true,
	".htm":    true,
	".js":     true,
	".jsx":    true,
	".ts":     true,
	".tsx":    true,
	".vue":    true,
	".svelte": true,
}

// Template runs every cross-validation check and returns the combined
// diagnostics. It never halts early.
func Template(t *schema.Template) []string {
	var diags []string
	diags = append(diags, Variables(t)...)
	diags = append(diags, Structure(t)...)
	diags = append(diags, VariableRefs(t)...)
	diags = append(diags, TemplateFileRefs(t)...)
	diags = append(diags, Actions(t)...)
	return diags
}

// Variables reports duplicate variable names across the template.
func Variables(t *schema.Template) []string {
	var diags []string
	seen := make(map[string]bool)
	for i := range t.Variables {
		name := t.Variables[i].Name
		if seen[name] {
			diags = append(diags, fmt.Sprintf("Duplicate variable name: %s", name))
			continue
		}
		seen[name] = true
	}
	return diags
}

// Structure reports duplicate file names, duplicate directory names,
// and file/directory name collisions, recursively through the tree.
func Structure(t *schema.Template) []string {
	return checkDirectory(&t.Structure.Root, t.Structure.Root.Name)
}

func checkDirectory(d *schema.DirectoryItem, path string) []string {
	var diags []string

	fileSeen := make(map[string]bool)
	for i := range d.Files {
		name := d.Files[i].Name
		if fileSeen[name] {
			diags = append(diags, fmt.Sprintf(
				"Duplicate file name in %s: %s and %s", path, name, name))
			continue
		}
		fileSeen[name] = true
	}

	dirSeen := make(map[string]bool)
	for i := range d.Directories {
		name := d.Directories[i].Name
		if dirSeen[name] {
			diags = append(diags, fmt.Sprintf(
				"Duplicate directory name in %s: %s and %s", path, name, name))
			continue
		}
		dirSeen[name] = true
		if fileSeen[name] {
			diags = append(diags, fmt.Sprintf(
				"Duplicate name in %s: file %s collides with directory %s", path, name, name))
		}
	}

	for i := range d.Directories {
		child := &d.Directories[i]
		diags = append(diags, checkDirectory(child, path+"/"+child.Name)...)
	}
	return diags
}

// VariableRefs reports {{ variable }} tokens in directory/file names
// and inline file content that match neither a declared variable nor a
// recognized system variable.
func VariableRefs(t *schema.Template) []string {
	declared := make(map[string]bool)
	for i := range t.Variables {
		declared[t.Variables[i].Name] = true
	}

	known := func(name string) bool {
		return declared[name] || systemVariables[name]
	}

	var diags []string
	report := func(where, name string) {
		diags = append(diags, fmt.Sprintf("undefined variable %q referenced in %s", name, where))
	}

	t.Structure.Root.Walk(func(d *schema.DirectoryItem) bool {
		for _, name := range subst.Tokens(d.Name) {
			if !known(name) {
				report("directory name "+d.Name, name)
			}
		}
		for i := range d.Files {
			f := &d.Files[i]
			for _, name := range subst.Tokens(f.Name) {
				if !known(name) {
					report("file name "+f.Name, name)
				}
			}
			if f.Content != "" && !foreignTemplateExtensions[strings.ToLower(filepath.Ext(f.Name))] {
				for _, name := range subst.Tokens(f.Content) {
					if !known(name) {
						report("content of "+f.Name, name)
					}
				}
			}
		}
		return true
	})

	for i := range t.TemplateFiles.Files {
		tf := &t.TemplateFiles.Files[i]
		for _, name := range subst.Tokens(tf.Content) {
			if !known(name) {
				report("template file "+tf.Name, name)
			}
		}
	}
	return diags
}

// TemplateFileRefs reports FileItems whose template_file reference
// names no entry in the template's external template-file collection.
func TemplateFileRefs(t *schema.Template) []string {
	var diags []string
	t.Structure.Root.Walk(func(d *schema.DirectoryItem) bool {
		for i := range d.Files {
			f := &d.Files[i]
			if f.TemplateFile == "" {
				continue
			}
			if _, ok := t.TemplateFiles.Lookup(f.TemplateFile); !ok {
				diags = append(diags, fmt.Sprintf(
					"file %s references unknown template file %q", f.Name, f.TemplateFile))
			}
		}
		return true
	})
	return diags
}

// Actions reports duplicate action names across all six hook stages
// and every action group combined.
func Actions(t *schema.Template) []string {
	var diags []string
	seen := make(map[string]string)

	check := func(where string, actions []schema.Action) {
		for i := range actions {
			name := actions[i].Name
			if prev, ok := seen[name]; ok {
				diags = append(diags, fmt.Sprintf(
					"Duplicate action name %q in %s (already defined in %s)", name, where, prev))
				continue
			}
			seen[name] = where
		}
	}

	for _, stage := range t.Hooks.Stages() {
		check("hook stage "+stage.Name, stage.Actions)
	}
	for i := range t.ActionGroups {
		check("action group "+t.ActionGroups[i].Name, t.ActionGroups[i].Actions)
	}
	return diags
}
