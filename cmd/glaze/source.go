package main

import (
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/glaze/internal/config"
	"github.com/alexisbeaulieu97/glaze/internal/params"
	"github.com/alexisbeaulieu97/glaze/internal/preset"
)

// sourceFlags choose where the starting parameter set comes from.
type sourceFlags struct {
	preset     string
	paramsPath string
}

func (s *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.preset, "preset", "", "Start from a named preset")
	cmd.Flags().StringVar(&s.paramsPath, "params", "", "Start from a YAML parameter file")
	cmd.MarkFlagsMutuallyExclusive("preset", "params")
}

// resolve returns the starting set and, when it came from a preset, its name.
// With neither flag, the settings' default preset is used.
func (s *sourceFlags) resolve(settings config.Settings) (params.Set, string, error) {
	if s.paramsPath != "" {
		set, err := params.Load(s.paramsPath)
		if err != nil {
			return params.Set{}, "", newCommandError("load parameters", s.paramsPath, err, "Every one of the 13 parameter keys must be present.")
		}
		return set, "", nil
	}

	name := s.preset
	if name == "" {
		name = settings.DefaultPreset
	}
	p, err := preset.Get(name)
	if err != nil {
		return params.Set{}, "", newCommandError("select preset", name, err, "Run 'glaze presets' to list the available presets.")
	}
	return p.Params, p.Name, nil
}
