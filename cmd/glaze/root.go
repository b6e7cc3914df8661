package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/glaze/internal/config"
	"github.com/alexisbeaulieu97/glaze/internal/logger"
)

type rootFlags struct {
	verbose    bool
	configPath string
}

// isTerminal is swapped out by tests.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "glaze",
		Short:         "glaze designs glass and soft-shadow UI panels and exports the HTML, CSS and JS",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Without a subcommand, open the studio on a terminal.
			if isTerminal() {
				return runStudio(cmd, flags, &sourceFlags{})
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Path to settings file (default "+config.DefaultPath()+")")

	cmd.AddCommand(newStudioCmd(flags))
	cmd.AddCommand(newGenerateCmd(flags))
	cmd.AddCommand(newPresetsCmd(flags))
	cmd.AddCommand(newServeCmd(flags))
	cmd.AddCommand(newConfigCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// loadSettings reads the settings file named by --config, or the default one.
func loadSettings(flags *rootFlags) (config.Settings, error) {
	path := flags.configPath
	if path == "" {
		path = config.DefaultPath()
	}

	settings, err := config.Load(path)
	if err != nil {
		return config.Settings{}, newCommandError("load settings", path, err, "Fix or remove the settings file.")
	}
	return settings, nil
}

// newCommandLogger logs to the command's stderr at the configured level.
func newCommandLogger(cmd *cobra.Command, flags *rootFlags, settings config.Settings) (*logger.Logger, error) {
	level := settings.LogLevel
	if flags.verbose {
		level = "debug"
	}

	log, err := logger.New(logger.Options{
		Level:         level,
		HumanReadable: settings.HumanReadable,
		Writer:        cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, newCommandError("create logger", "log_level "+level, err, "Use one of debug, info, warn or error.")
	}
	return log.Component(cmd.Name()), nil
}
