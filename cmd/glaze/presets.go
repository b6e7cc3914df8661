package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/glaze/internal/params"
	"github.com/alexisbeaulieu97/glaze/internal/preset"
)

type presetsOptions struct {
	jsonOutput bool
}

func newPresetsCmd(root *rootFlags) *cobra.Command {
	opts := &presetsOptions{}

	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List the built-in presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPresets(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

func runPresets(cmd *cobra.Command, opts *presetsOptions) error {
	all := preset.All()
	if opts.jsonOutput {
		return renderPresetsJSON(cmd, all)
	}
	return renderPresetsTable(cmd, all)
}

func renderPresetsTable(cmd *cobra.Command, presets []preset.Preset) error {
	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

	fmt.Fprintln(writer, "NAME\tGRADIENT\tBLUR\tGLASS\tDESCRIPTION")
	for _, p := range presets {
		fmt.Fprintf(writer, "%s\t%s → %s @ %d°\t%spx\t%s %s\t%s\n",
			p.Name,
			p.Params.BgColor1,
			p.Params.BgColor2,
			p.Params.GradientAngle,
			params.FormatNumber(p.Params.BlurAmount),
			p.Params.GlassColor,
			params.FormatNumber(p.Params.Transparency),
			p.Description,
		)
	}

	return writer.Flush()
}

type presetsJSONPreset struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Params      params.Set `json:"params"`
}

type presetsJSONPayload struct {
	Version string              `json:"version"`
	Count   int                 `json:"count"`
	Presets []presetsJSONPreset `json:"presets"`
}

func renderPresetsJSON(cmd *cobra.Command, presets []preset.Preset) error {
	payload := presetsJSONPayload{
		Version: "1.0",
		Count:   len(presets),
		Presets: make([]presetsJSONPreset, len(presets)),
	}
	for i, p := range presets {
		payload.Presets[i] = presetsJSONPreset{Name: p.Name, Description: p.Description, Params: p.Params}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
