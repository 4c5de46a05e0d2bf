package main

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/fxmartin/create-project-sub002/pkg/schema"
	"github.com/fxmartin/create-project-sub002/pkg/validate"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate TEMPLATE",
		Short: "Validate a template definition",
		Long: `Validate runs both validation passes on a template definition:
construction-time field checks, then whole-template cross-validation
(duplicate names, undefined variable references, dangling template-file
references, duplicate action names).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := schema.Load(args[0])
			if err != nil {
				return err
			}
			pterm.Success.Printfln("Template %q parsed and field-validated", t.Metadata.Name)

			diags := validate.Template(t)
			if len(diags) == 0 {
				pterm.Success.Println("Cross-validation passed")
				return nil
			}
			pterm.Warning.Printfln("Cross-validation found %d issue(s):", len(diags))
			for _, d := range diags {
				pterm.Println("  - " + d)
			}
			return nil
		},
	}
}
