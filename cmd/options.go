package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"prompt_generator/generator"
)

func newOptionsCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "options",
		Short: "List the preset choices offered by the form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := generator.DefaultOptions()
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(opts)
			}
			printList(out, "Profiles", opts.Profiles, opts.Defaults.Profile)
			printList(out, "Audiences", opts.Audiences, opts.Defaults.Audience)
			printList(out, "Formats", opts.Formats, opts.Defaults.FormatOutput)
			printList(out, "Lengths", opts.Lengths, opts.Defaults.Length)
			printList(out, "Languages", opts.Languages, opts.Defaults.Language)
			printList(out, "Tones", opts.Tones, opts.Defaults.Tone)
			fmt.Fprintf(out, "Save folder: %s\nSystem: %s\n", a.runtime.SaveDir, a.runtime.OS)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

func printList(out io.Writer, title string, items []string, def string) {
	fmt.Fprintf(out, "%s:\n", title)
	for _, it := range items {
		mark := " "
		if it == def {
			mark = "*"
		}
		fmt.Fprintf(out, "  %s %s\n", mark, it)
	}
	fmt.Fprintln(out, strings.Repeat("-", 20))
}
