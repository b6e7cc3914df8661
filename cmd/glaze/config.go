package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/glaze/internal/config"
)

type configInitOptions struct {
	force bool
}

func newConfigCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the glaze settings file",
	}

	cmd.AddCommand(newConfigInitCmd(root))

	return cmd
}

func newConfigInitCmd(root *rootFlags) *cobra.Command {
	opts := &configInitOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a settings file with the default values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(cmd, root, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.force, "force", false, "Overwrite an existing settings file")

	return cmd
}

func runConfigInit(cmd *cobra.Command, root *rootFlags, opts *configInitOptions) error {
	path := root.configPath
	if path == "" {
		path = config.DefaultPath()
	}

	if _, err := os.Stat(path); err == nil && !opts.force {
		return newCommandError("initialise settings", path, errors.New("file already exists"), "Pass --force to overwrite it.")
	}

	if err := config.Save(path, config.Default()); err != nil {
		return newCommandError("initialise settings", path, err, "Check the directory permissions.")
	}

	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
