package main

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/fxmartin/create-project-sub002/pkg/cache"
	"github.com/fxmartin/create-project-sub002/pkg/config"
	"github.com/fxmartin/create-project-sub002/pkg/errors"
	"github.com/fxmartin/create-project-sub002/pkg/render"
	"github.com/fxmartin/create-project-sub002/pkg/resolver"
	"github.com/fxmartin/create-project-sub002/pkg/schema"
	"github.com/fxmartin/create-project-sub002/pkg/validate"
)

// templateCache persists across invocations within one process; the
// CLI is short-lived but library callers reuse it.
var templateCache = cache.New(nil)

func newGenerateCmd() *cobra.Command {
	var (
		output    string
		overwrite bool
		dryRun    bool
		varFlags  []string
	)

	cmd := &cobra.Command{
		Use:   "generate TEMPLATE",
		Short: "Generate a project from a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("overwrite") {
				overwrite = cfg.Output.Overwrite
			}

			t, err := loadTemplate(args[0], cfg)
			if err != nil {
				return err
			}

			if diags := validate.Template(t); len(diags) > 0 {
				pterm.Error.Printfln("Template failed cross-validation (%d issue(s)):", len(diags))
				for _, d := range diags {
					pterm.Println("  - " + d)
				}
				return errors.New(errors.ErrTemplateInvalid, "template failed cross-validation")
			}

			supplied, err := parseVarFlags(varFlags)
			if err != nil {
				return err
			}
			vars, err := resolver.Resolve(t, supplied)
			if err != nil {
				return err
			}

			engine := render.NewEngine()
			var stats *render.Stats
			if dryRun {
				stats, err = engine.DryRun(t, vars, output, overwrite)
			} else {
				stats, err = engine.Render(t, vars, output, overwrite)
			}
			if stats != nil {
				printStats(stats, dryRun)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", ".", "Output directory")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing files")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview without writing files")
	cmd.Flags().StringArrayVar(&varFlags, "var", nil, "Variable value as name=value (repeatable)")

	return cmd
}

// loadTemplate goes through the cache unless caching is disabled.
func loadTemplate(path string, cfg *config.Config) (*schema.Template, error) {
	if cfg.Cache.Enabled {
		return templateCache.GetOrLoad(path)
	}
	return schema.Load(path)
}

// parseVarFlags turns repeated name=value flags into the supplied map.
func parseVarFlags(flags []string) (map[string]interface{}, error) {
	supplied := make(map[string]interface{}, len(flags))
	for _, f := range flags {
		name, value, found := strings.Cut(f, "=")
		if !found || name == "" {
			return nil, errors.Newf(errors.ErrInvalidInput, "invalid --var %q (expected name=value)", f)
		}
		supplied[name] = value
	}
	return supplied, nil
}

func printStats(stats *render.Stats, dryRun bool) {
	label := "Generated"
	if dryRun {
		label = "Would generate"
	}
	pterm.Success.Printfln("%s %d file(s), %d director(ies); %d skipped, %d overwritten",
		label, stats.FilesCreated, stats.DirectoriesCreated, stats.FilesSkipped, stats.FilesOverwritten)
	if dryRun {
		for _, p := range stats.Planned {
			pterm.Println("  " + p)
		}
	}
	if len(stats.Errors) > 0 {
		pterm.Warning.Printfln("%d error(s) recorded:", len(stats.Errors))
		for _, e := range stats.Errors {
			pterm.Println("  - " + e)
		}
	}
	fmt.Println()
}
