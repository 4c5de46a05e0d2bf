// Package render materializes a validated template plus a resolved
// variable map onto disk. Rendering is a strictly sequential
// depth-first walk, parent before children; no two writes overlap.
package render

import (
	"encoding/base64"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fxmartin/create-project-sub002/pkg/conditions"
	"github.com/fxmartin/create-project-sub002/pkg/errors"
	"github.com/fxmartin/create-project-sub002/pkg/logging"
	"github.com/fxmartin/create-project-sub002/pkg/resolver"
	"github.com/fxmartin/create-project-sub002/pkg/schema"
	"github.com/fxmartin/create-project-sub002/pkg/subst"
)

const (
	defaultFileMode fs.FileMode = 0644
	defaultDirMode  fs.FileMode = 0755
)

// Stats is the aggregate outcome of one rendering run.
type Stats struct {
	// RunID uniquely identifies this run in logs and reports.
	RunID string

	FilesCreated       int
	DirectoriesCreated int
	FilesSkipped       int
	FilesOverwritten   int

	// Errors holds the messages of every failure encountered, fatal
	// or recorded.
	Errors []string

	// Planned lists the paths a dry run would have written.
	Planned []string

	Duration time.Duration
}

// Engine walks a template's structure and writes it to the filesystem.
type Engine struct {
	fs     FS
	logger zerolog.Logger
}

// NewEngine returns an engine backed by the OS filesystem.
func NewEngine() *Engine {
	return NewEngineWithFS(NewOSFilesystem())
}

// NewEngineWithFS returns an engine backed by the given filesystem.
func NewEngineWithFS(filesystem FS) *Engine {
	return &Engine{
		fs:     filesystem,
		logger: logging.GetLogger("render"),
	}
}

// Render materializes the template into outputPath. The returned
// Stats is non-nil even on failure; a non-nil error is always a
// *errors.ScaffoldError and means the run aborted.
func (e *Engine) Render(t *schema.Template, vars map[string]interface{}, outputPath string, overwrite bool) (*Stats, error) {
	return e.run(t, vars, outputPath, overwrite, false)
}

// DryRun walks the template exactly like Render but writes nothing,
// recording the paths that would be produced in Stats.Planned.
func (e *Engine) DryRun(t *schema.Template, vars map[string]interface{}, outputPath string, overwrite bool) (*Stats, error) {
	return e.run(t, vars, outputPath, overwrite, true)
}

func (e *Engine) run(t *schema.Template, vars map[string]interface{}, outputPath string, overwrite, dryRun bool) (*Stats, error) {
	start := time.Now()
	stats := &Stats{RunID: uuid.NewString()}
	logger := e.logger.With().Str("run_id", stats.RunID).Str("template", t.Metadata.Name).Logger()

	// The substitution scope is the resolved map on top of the
	// system-injected variables, so names and content may reference
	// current_date, template_name and friends without declaring them.
	// Caller-supplied values win; external injections like license_text
	// arrive merged into vars by the caller.
	scope := resolver.SystemVariables(t)
	for k, v := range vars {
		scope[k] = v
	}
	vars = scope

	defer func() {
		stats.Duration = time.Since(start)
	}()

	// All-or-nothing precondition: refuse a non-empty output
	// directory before any mutation.
	if !overwrite {
		entries, err := e.fs.ReadDir(outputPath)
		if err == nil && len(entries) > 0 {
			return stats, errors.Newf(errors.ErrOutputNotEmpty,
				"output path %s exists and is not empty (use overwrite to proceed)", outputPath).
				WithDetail("path", outputPath)
		}
	}

	logger.Info().
		Str("output", outputPath).
		Bool("overwrite", overwrite).
		Bool("dry_run", dryRun).
		Msg("Rendering template")

	// The output path is the rendered root: the root item's children
	// land directly inside it.
	root := &t.Structure.Root
	if root.Condition != "" && !conditions.EvalString(root.Condition, vars) {
		logger.Debug().Msg("Root condition false, nothing to render")
		return stats, nil
	}
	if err := e.ensureDirectory(outputPath, root.Mode, stats, dryRun); err != nil {
		return stats, err
	}
	for i := range root.Files {
		if err := e.renderFile(t, &root.Files[i], outputPath, vars, overwrite, stats, dryRun, logger); err != nil {
			return stats, err
		}
	}
	for i := range root.Directories {
		if err := e.renderDirectory(t, &root.Directories[i], outputPath, vars, overwrite, stats, dryRun, logger); err != nil {
			return stats, err
		}
	}

	// Standalone template files render independently of the tree.
	// Failures here are recorded, not fatal.
	e.renderTemplateFiles(t, vars, outputPath, overwrite, stats, dryRun, logger)

	logger.Info().
		Int("files_created", stats.FilesCreated).
		Int("directories_created", stats.DirectoriesCreated).
		Int("files_skipped", stats.FilesSkipped).
		Int("files_overwritten", stats.FilesOverwritten).
		Int("errors", len(stats.Errors)).
		Msg("Rendering finished")

	return stats, nil
}

// renderDirectory renders one directory and its subtree. A false
// condition skips the whole subtree with no stats change.
func (e *Engine) renderDirectory(t *schema.Template, d *schema.DirectoryItem, parent string, vars map[string]interface{}, overwrite bool, stats *Stats, dryRun bool, logger zerolog.Logger) error {
	if d.Condition != "" && !conditions.EvalString(d.Condition, vars) {
		logger.Debug().Str("directory", d.Name).Msg("Condition false, skipping subtree")
		return nil
	}

	name := subst.Expand(d.Name, vars)
	path := filepath.Join(parent, name)

	if err := e.ensureDirectory(path, d.Mode, stats, dryRun); err != nil {
		return err
	}

	for i := range d.Files {
		if err := e.renderFile(t, &d.Files[i], path, vars, overwrite, stats, dryRun, logger); err != nil {
			return err
		}
	}
	for i := range d.Directories {
		if err := e.renderDirectory(t, &d.Directories[i], path, vars, overwrite, stats, dryRun, logger); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) ensureDirectory(path, mode string, stats *Stats, dryRun bool) error {
	if _, err := e.fs.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot stat directory %s", path)
	}

	if dryRun {
		stats.DirectoriesCreated++
		stats.Planned = append(stats.Planned, path+string(os.PathSeparator))
		return nil
	}
	if err := e.fs.MkdirAll(path, parseMode(mode, defaultDirMode)); err != nil {
		wrapped := errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", path)
		stats.Errors = append(stats.Errors, wrapped.Error())
		return wrapped
	}
	stats.DirectoriesCreated++
	return nil
}

// renderFile renders one tree-embedded file. Skip conditions are
// recorded in stats; any real failure is appended to stats.Errors and
// returned, aborting the whole run.
func (e *Engine) renderFile(t *schema.Template, f *schema.FileItem, dir string, vars map[string]interface{}, overwrite bool, stats *Stats, dryRun bool, logger zerolog.Logger) error {
	if f.Condition != "" && !conditions.EvalString(f.Condition, vars) {
		stats.FilesSkipped++
		return nil
	}

	name := subst.Expand(f.Name, vars)
	path := filepath.Join(dir, name)

	_, statErr := e.fs.Stat(path)
	exists := statErr == nil

	if exists && !overwrite {
		logger.Debug().Str("file", path).Msg("Exists and overwrite disabled, skipping")
		stats.FilesSkipped++
		return nil
	}

	content, err := e.resolveContent(t, f, vars)
	if err != nil {
		stats.Errors = append(stats.Errors, err.Error())
		return err
	}

	if dryRun {
		stats.Planned = append(stats.Planned, path)
		if exists {
			stats.FilesOverwritten++
		} else {
			stats.FilesCreated++
		}
		return nil
	}

	mode := parseMode(f.Mode, defaultFileMode)
	if f.Executable {
		mode |= 0111
	}
	if err := e.fs.WriteFile(path, content, mode); err != nil {
		wrapped := errors.Wrapf(err, errors.ErrFileWrite, "failed to write file %s", path)
		stats.Errors = append(stats.Errors, wrapped.Error())
		return wrapped
	}
	// WriteFile permissions only apply on create; chmod covers the
	// overwrite path and umask interference.
	if err := e.fs.Chmod(path, mode); err != nil {
		wrapped := errors.Wrapf(err, errors.ErrFileWrite, "failed to set permissions on %s", path)
		stats.Errors = append(stats.Errors, wrapped.Error())
		return wrapped
	}

	if exists {
		stats.FilesOverwritten++
	} else {
		stats.FilesCreated++
	}
	return nil
}

// resolveContent produces the file's bytes from its single content
// source.
func (e *Engine) resolveContent(t *schema.Template, f *schema.FileItem, vars map[string]interface{}) ([]byte, error) {
	switch {
	case f.TemplateFile != "":
		tf, ok := t.TemplateFiles.Lookup(f.TemplateFile)
		if !ok {
			return nil, errors.Newf(errors.ErrTemplateFileRef,
				"file %s references unknown template file %q", f.Name, f.TemplateFile)
		}
		return []byte(subst.Expand(tf.Content, vars)), nil
	case f.BinarySource != "":
		data, err := base64.StdEncoding.DecodeString(f.BinarySource)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrContentSource,
				"invalid base64 binary source for file %s", f.Name)
		}
		return data, nil
	default:
		return []byte(subst.Expand(f.Content, vars)), nil
	}
}

// renderTemplateFiles runs the standalone template-file pass. Unlike
// the tree walk, per-file failures are recorded and the pass
// continues.
func (e *Engine) renderTemplateFiles(t *schema.Template, vars map[string]interface{}, outputPath string, overwrite bool, stats *Stats, dryRun bool, logger zerolog.Logger) {
	for i := range t.TemplateFiles.Files {
		tf := &t.TemplateFiles.Files[i]

		out := tf.Output
		if out == "" {
			out = stripTemplateSuffix(tf.Name)
		}
		path := filepath.Join(outputPath, subst.Expand(out, vars))

		_, statErr := e.fs.Stat(path)
		exists := statErr == nil
		if exists && !overwrite {
			stats.FilesSkipped++
			continue
		}

		content := []byte(subst.Expand(tf.Content, vars))

		if dryRun {
			stats.Planned = append(stats.Planned, path)
			if exists {
				stats.FilesOverwritten++
			} else {
				stats.FilesCreated++
			}
			continue
		}

		parent := filepath.Dir(path)
		if err := e.fs.MkdirAll(parent, defaultDirMode); err != nil {
			stats.Errors = append(stats.Errors, errors.Wrapf(err, errors.ErrDirCreate,
				"failed to create directory %s for template file %s", parent, tf.Name).Error())
			continue
		}
		if err := e.fs.WriteFile(path, content, defaultFileMode); err != nil {
			logger.Warn().Str("template_file", tf.Name).Err(err).Msg("Template file failed, continuing")
			stats.Errors = append(stats.Errors, errors.Wrapf(err, errors.ErrFileWrite,
				"failed to write template file %s", tf.Name).Error())
			continue
		}

		if exists {
			stats.FilesOverwritten++
		} else {
			stats.FilesCreated++
		}
	}
}

func stripTemplateSuffix(name string) string {
	for _, suffix := range []string{".tmpl", ".template"} {
		if strings.HasSuffix(name, suffix) {
			return strings.TrimSuffix(name, suffix)
		}
	}
	return name
}

// parseMode converts a 3-digit octal permission string, already
// validated at construction, into a file mode.
func parseMode(mode string, fallback fs.FileMode) fs.FileMode {
	if mode == "" {
		return fallback
	}
	n, err := strconv.ParseUint(mode, 8, 32)
	if err != nil {
		return fallback
	}
	return fs.FileMode(n)
}
