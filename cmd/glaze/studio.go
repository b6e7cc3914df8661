package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/glaze/internal/clipboard"
	"github.com/alexisbeaulieu97/glaze/internal/config"
	"github.com/alexisbeaulieu97/glaze/internal/logger"
	"github.com/alexisbeaulieu97/glaze/internal/tui/studio"
)

func newStudioCmd(root *rootFlags) *cobra.Command {
	src := &sourceFlags{}

	cmd := &cobra.Command{
		Use:   "studio",
		Short: "Open the interactive panel designer",
		Long: `Open the interactive terminal designer. Adjust colours and sliders on the
left, watch the painted preview, and copy the generated HTML, CSS or JS.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStudio(cmd, root, src)
		},
	}
	src.register(cmd)

	return cmd
}

func runStudio(cmd *cobra.Command, root *rootFlags, src *sourceFlags) error {
	settings, err := loadSettings(root)
	if err != nil {
		return err
	}
	initial, presetName, err := src.resolve(settings)
	if err != nil {
		return err
	}

	log, err := newStudioLogger(root, settings)
	if err != nil {
		return err
	}
	defer log.Close() //nolint:errcheck

	// The renderer and OSC 52 share one locked terminal so their writes never interleave.
	tty := clipboard.NewTerminal(os.Stdout)
	clip, err := clipboard.New(settings.ClipboardMode(), tty)
	if err != nil {
		return newCommandError("start studio", "clipboard", err, "Set clipboard to auto, system or osc52.")
	}

	m, err := studio.NewModel(studio.Options{
		Initial:   initial,
		Preset:    presetName,
		Clipboard: clip,
		Logger:    log,
	})
	if err != nil {
		return newCommandError("start studio", "initial parameters", err, "Check the parameter file values.")
	}

	log.WithFields(map[string]any{"preset": presetName}).Info("studio started")
	program := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithOutput(tty),
		tea.WithContext(cmd.Context()),
	)
	if _, err := program.Run(); err != nil {
		log.Error(err, "studio exited with error")
		return newCommandError("run studio", "terminal UI", err, "")
	}
	log.Info("studio closed")
	return nil
}

// newStudioLogger writes to the configured log file, since the terminal
// belongs to the UI. Without one, nothing is logged.
func newStudioLogger(root *rootFlags, settings config.Settings) (*logger.Logger, error) {
	if settings.LogFile == "" {
		return logger.Nop(), nil
	}

	level := settings.LogLevel
	if root.verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Options{
		Level:         level,
		HumanReadable: settings.HumanReadable,
		File:          settings.LogFile,
	})
	if err != nil {
		return nil, newCommandError("open log file", settings.LogFile, err, "Check the log_file setting.")
	}
	return log, nil
}
