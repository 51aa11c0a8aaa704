package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"prompt_generator/apperr"
	"prompt_generator/clipboard"
	"prompt_generator/generator"
)

func newGenerateCmd(a *app) *cobra.Command {
	var (
		spec        generator.PromptSpec
		exampleFile string
		copyOut     bool
		saveFormat  string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Assemble a prompt and print it",
		Example: `  promptgen generate --role "a Rust mentor" --objective "explain ownership" \
    --format Markdown --example "fn main() {}" --save json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if exampleFile != "" {
				data, err := os.ReadFile(exampleFile)
				if err != nil {
					return fmt.Errorf("read example: %w", err)
				}
				spec.Example = string(data)
			}

			doc, err := generator.Assemble(spec)
			if err != nil {
				return statusError(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), doc)

			var failed error
			if copyOut {
				tool, err := clipboard.CopyPrompt(cmd.Context(), a.copier, doc)
				if err != nil {
					failed = errors.Join(failed, statusError(err))
				} else {
					fmt.Fprintf(cmd.ErrOrStderr(), "✅ Prompt copied to the clipboard (%s)\n", tool)
				}
			}
			if saveFormat != "" {
				path, err := a.writer.Save(doc, saveFormat)
				if err != nil {
					failed = errors.Join(failed, statusError(err))
				} else {
					fmt.Fprintf(cmd.ErrOrStderr(), "✅ Prompt saved!\n📂 %s\n", path)
				}
			}
			return failed
		},
	}

	f := cmd.Flags()
	f.StringVar(&spec.Role, "role", "", "role/expertise the AI should take")
	f.StringVar(&spec.Profile, "profile", "", "your profile")
	f.StringVar(&spec.Audience, "audience", "", "target audience")
	f.StringVar(&spec.Objective, "objective", "", "precise objective")
	f.StringVar(&spec.Context, "context", "", "technical context")
	f.StringVar(&spec.Restrictions, "restrictions", "", "what the AI must not do")
	f.StringVar(&spec.FormatOutput, "format", "", "output format")
	f.StringVar(&spec.Length, "length", "", "expected length")
	f.StringVar(&spec.Language, "language", "", "language/technology")
	f.StringVar(&spec.Tone, "tone", "", "tone and style")
	f.StringVar(&spec.Example, "example", "", "example of the expected result")
	f.StringVar(&exampleFile, "example-file", "", "read the example from a file")
	f.BoolVar(&spec.ClarificationNeeded, "clarify", true, "let the AI ask clarification questions")
	f.BoolVar(&copyOut, "copy", false, "copy the prompt to the clipboard")
	f.StringVar(&saveFormat, "save", "", "save the prompt: txt|plain or json|structured")
	cmd.MarkFlagsMutuallyExclusive("example", "example-file")

	return cmd
}

// statusError replaces err's text with the user-facing status line while
// keeping it matchable with errors.As.
func statusError(err error) error {
	return &displayError{msg: apperr.Status(err), err: err}
}

type displayError struct {
	msg string
	err error
}

func (e *displayError) Error() string { return e.msg }
func (e *displayError) Unwrap() error { return e.err }
