package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/glaze/internal/artifact"
	"github.com/alexisbeaulieu97/glaze/internal/clipboard"
	"github.com/alexisbeaulieu97/glaze/internal/params"
	"github.com/alexisbeaulieu97/glaze/internal/session"
)

const copyTimeout = 5 * time.Second

type generateOptions struct {
	source     sourceFlags
	tab        string
	outDir     string
	copy       bool
	jsonOutput bool
	saveParams string
}

func newGenerateCmd(root *rootFlags) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the HTML, CSS and JS for a parameter set",
		Long: `Generate the three files for a preset or a parameter file.

By default the selected tab is printed to stdout. --out writes index.html,
styles.css and script.js into a directory, --json prints the whole bundle,
--copy places the selected tab on the clipboard, and --save-params writes
the parameter set as a YAML file that --params accepts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, root, opts)
		},
	}
	opts.source.register(cmd)
	cmd.Flags().StringVar(&opts.tab, "tab", string(artifact.KindMarkup), "Buffer to print or copy: html, css or js")
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", "", "Write all three files into this directory")
	cmd.Flags().BoolVar(&opts.copy, "copy", false, "Copy the selected tab to the clipboard")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output the bundle as JSON")
	cmd.Flags().StringVar(&opts.saveParams, "save-params", "", "Also write the parameter set to this YAML file")
	cmd.MarkFlagsMutuallyExclusive("out", "json")

	return cmd
}

func runGenerate(cmd *cobra.Command, root *rootFlags, opts *generateOptions) error {
	settings, err := loadSettings(root)
	if err != nil {
		return err
	}
	log, err := newCommandLogger(cmd, root, settings)
	if err != nil {
		return err
	}

	initial, presetName, err := opts.source.resolve(settings)
	if err != nil {
		return err
	}

	var clip clipboard.Writer
	if opts.copy {
		// OSC 52 goes to stderr; stdout carries the generated text.
		clip, err = clipboard.New(settings.ClipboardMode(), cmd.ErrOrStderr())
		if err != nil {
			return newCommandError("generate", "clipboard", err, "Set clipboard to auto, system or osc52.")
		}
	}

	ctrl, err := session.New(initial, session.Options{Clipboard: clip, Logger: log})
	if err != nil {
		return newCommandError("generate", "building the bundle", err, "Fix the reported parameter and try again.")
	}
	if err := ctrl.SelectTab(opts.tab); err != nil {
		return newCommandError("generate", "selecting the tab", err, "Use --tab html, css or js.")
	}

	log.WithFields(map[string]any{"preset": presetName, "tab": opts.tab}).Debug("bundle generated")

	if opts.saveParams != "" {
		if err := saveParams(opts.saveParams, ctrl.Params()); err != nil {
			return err
		}
		log.WithFields(map[string]any{"path": opts.saveParams}).Info("parameters saved")
	}

	switch {
	case opts.outDir != "":
		if err := writeBundle(cmd, opts.outDir, ctrl.Bundle()); err != nil {
			return err
		}
	case opts.jsonOutput:
		if err := renderBundleJSON(cmd, presetName, ctrl); err != nil {
			return err
		}
	case !opts.copy:
		_, text := ctrl.ExportText()
		fmt.Fprintln(cmd.OutOrStdout(), text)
	}

	if opts.copy {
		ctx, cancel := context.WithTimeout(cmd.Context(), copyTimeout)
		defer cancel()
		if err := ctrl.Export(ctx); err != nil {
			return newCommandError("copy", "the "+opts.tab+" buffer", err, "Set clipboard: osc52 in the settings file, or redirect stdout instead.")
		}
		tab, text := ctrl.ExportText()
		log.WithFields(map[string]any{"tab": string(tab), "bytes": len(text)}).Info("copied")
	}

	return nil
}

func writeBundle(cmd *cobra.Command, dir string, bundle artifact.Bundle) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return newCommandError("write files", dir, err, "Check the directory permissions.")
	}

	for _, k := range artifact.Kinds() {
		path := filepath.Join(dir, k.Filename())
		if err := os.WriteFile(path, []byte(bundle.Text(k)+"\n"), 0o644); err != nil {
			return newCommandError("write files", path, err, "Check the directory permissions.")
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	return nil
}

// saveParams writes set with canonical colours so the file loads back with --params.
func saveParams(path string, set params.Set) error {
	data, err := set.Canonical().Marshal()
	if err != nil {
		return newCommandError("save parameters", path, err, "")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return newCommandError("save parameters", dir, err, "Check the directory permissions.")
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return newCommandError("save parameters", path, err, "Check the directory permissions.")
	}
	return nil
}

type bundleJSONPayload struct {
	Version     string            `json:"version"`
	Preset      string            `json:"preset,omitempty"`
	Tab         artifact.Kind     `json:"tab"`
	Params      params.Set        `json:"params"`
	Files       map[string]string `json:"files"`
	InlineStyle string            `json:"inlineStyle"`
	Bundle      artifact.Bundle   `json:"bundle"`
}

func renderBundleJSON(cmd *cobra.Command, presetName string, ctrl *session.Controller) error {
	bundle := ctrl.Bundle()
	payload := bundleJSONPayload{
		Version:     "1.0",
		Preset:      presetName,
		Tab:         ctrl.ActiveTab(),
		Params:      ctrl.Params(),
		Files:       bundle.Files(),
		InlineStyle: bundle.Style.InlineStyle(),
		Bundle:      bundle,
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(payload)
}
