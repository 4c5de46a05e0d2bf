package main

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/fxmartin/create-project-sub002/pkg/schema"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info TEMPLATE",
		Short: "Show template metadata and variables",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := schema.Load(args[0])
			if err != nil {
				return err
			}

			m := t.Metadata
			pterm.DefaultSection.Printfln("%s %s (%s)", m.Name, m.Version, m.Category)
			printMarkdown(m.Description)

			pterm.Printfln("Author:  %s", authorLine(m))
			pterm.Printfln("License: %s", m.License)
			if len(m.Tags) > 0 {
				pterm.Printfln("Tags:    %s", strings.Join(m.Tags, ", "))
			}
			if len(m.Compatibility) > 0 {
				pterm.Printfln("OS:      %s", strings.Join(m.Compatibility, ", "))
			}

			if len(t.Variables) > 0 {
				pterm.DefaultSection.Println("Variables")
				for i := range t.Variables {
					v := &t.Variables[i]
					required := ""
					if v.Required {
						required = " (required)"
					}
					pterm.Printfln("  %-20s %-12s %s%s", v.Name, v.Type, v.Description, required)
				}
			}
			return nil
		},
	}
}

func authorLine(m schema.Metadata) string {
	if m.AuthorEmail != "" {
		return m.Author + " <" + m.AuthorEmail + ">"
	}
	return m.Author
}

// printMarkdown renders the description through glamour, falling back
// to plain text when the terminal renderer cannot be built.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(80))
	if err != nil {
		pterm.Println(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		pterm.Println(md)
		return
	}
	pterm.Print(out)
}
