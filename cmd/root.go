package cmd

import (
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"prompt_generator/clipboard"
	"prompt_generator/config"
	"prompt_generator/storage"
)

// version is reported by --version.
var version = "2.0.0"

// app carries what the commands share once configuration is resolved.
type app struct {
	cfgFile string
	verbose bool

	cfg     config.Config
	runtime config.Runtime
	logger  zerolog.Logger
	writer  *storage.Writer
	copier  clipboard.Copier
}

// NewRootCmd builds the command tree. Output goes to out, logs to errOut.
func NewRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "promptgen",
		Short: "Build structured AI prompts from labeled fields",
		Long: `promptgen assembles a structured prompt (role, audience, objective, format,
restrictions, example, tone) and can copy it to the clipboard or save it as
a timestamped .txt or .json file.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(errOut)
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file (default is $HOME/.promptgen.yaml or ./.promptgen.yaml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logs")

	root.AddCommand(newGenerateCmd(a), newServeCmd(a), newOptionsCmd(a))
	return root
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	root := NewRootCmd(os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		root.PrintErrln(err)
		os.Exit(1)
	}
}

func (a *app) init(errOut io.Writer) error {
	level := zerolog.InfoLevel
	if a.verbose {
		level = zerolog.DebugLevel
	}
	a.logger = zerolog.New(zerolog.ConsoleWriter{Out: errOut, NoColor: true}).
		Level(level).
		With().Timestamp().Logger()

	// A missing .env is fine; it only carries optional API keys.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		a.logger.Warn().Err(err).Msg("read .env")
	}

	cfg, err := config.Load(viper.New(), a.cfgFile)
	if err != nil {
		return err
	}
	rt, err := config.Resolve(cfg, config.DetectOS(), os.Getenv)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.runtime = rt

	a.writer = storage.NewOsWriter(rt.SaveDir, rt.OS, a.logger)
	if err := a.writer.EnsureDir(); err != nil {
		// Saving will report the failure again on first use.
		a.logger.Error().Err(err).Msg("create save directory")
	} else {
		a.logger.Debug().Str("dir", rt.SaveDir).Msg("save directory ready")
	}
	a.copier = clipboard.New(rt.OS, a.logger)
	return nil
}
