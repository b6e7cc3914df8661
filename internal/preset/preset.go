// Package preset holds the built-in catalog of named parameter sets.
package preset

import (
	"strings"

	"github.com/alexisbeaulieu97/glaze/internal/params"
	glazeerrors "github.com/alexisbeaulieu97/glaze/pkg/errors"
)

// Preset is a named, complete parameter set.
type Preset struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Params      params.Set `json:"params"`
}

// IOSPreset is a soft, light frosted panel.
var IOSPreset = Preset{
	Name:        "ios",
	Description: "Soft frosted glass with gentle depth",
	Params: params.Set{
		BgColor1:        "#667eea",
		BgColor2:        "#764ba2",
		GradientAngle:   135,
		BlurAmount:      12,
		Transparency:    0.15,
		GlassColor:      "#ffffff",
		ShadowIntensity: 15,
		LightShadow:     "#ffffff",
		DarkShadow:      "#000000",
		BorderRadius:    24,
		BorderWidth:     1,
		BorderColor:     "#ffffff",
		BorderOpacity:   0.3,
	},
}

// StripePreset is a premium look with heavy blur.
var StripePreset = Preset{
	Name:        "stripe",
	Description: "Premium indigo panel with heavy blur",
	Params: params.Set{
		BgColor1:        "#6366f1",
		BgColor2:        "#8b5cf6",
		GradientAngle:   45,
		BlurAmount:      16,
		Transparency:    0.1,
		GlassColor:      "#ffffff",
		ShadowIntensity: 25,
		LightShadow:     "#ffffff",
		DarkShadow:      "#000000",
		BorderRadius:    16,
		BorderWidth:     1.5,
		BorderColor:     "#ffffff",
		BorderOpacity:   0.4,
	},
}

// VibrantPreset is a high contrast pink and gold panel.
var VibrantPreset = Preset{
	Name:        "vibrant",
	Description: "High contrast pink gradient with gold highlights",
	Params: params.Set{
		BgColor1:        "#f093fb",
		BgColor2:        "#f5576c",
		GradientAngle:   180,
		BlurAmount:      20,
		Transparency:    0.2,
		GlassColor:      "#ffffff",
		ShadowIntensity: 30,
		LightShadow:     "#ffd700",
		DarkShadow:      "#ff1493",
		BorderRadius:    32,
		BorderWidth:     2,
		BorderColor:     "#ffffff",
		BorderOpacity:   0.5,
	},
}

// MinimalPreset is a subtle pastel panel.
var MinimalPreset = Preset{
	Name:        "minimal",
	Description: "Subtle pastel panel with a thin border",
	Params: params.Set{
		BgColor1:        "#e0e7ff",
		BgColor2:        "#cffafe",
		GradientAngle:   90,
		BlurAmount:      8,
		Transparency:    0.25,
		GlassColor:      "#ffffff",
		ShadowIntensity: 10,
		LightShadow:     "#ffffff",
		DarkShadow:      "#cbd5e1",
		BorderRadius:    12,
		BorderWidth:     0.5,
		BorderColor:     "#ffffff",
		BorderOpacity:   0.6,
	},
}

var catalog = []Preset{IOSPreset, StripePreset, VibrantPreset, MinimalPreset}

// Names returns preset names in catalog order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for _, p := range catalog {
		names = append(names, p.Name)
	}
	return names
}

// All returns a copy of the catalog.
func All() []Preset {
	return append([]Preset(nil), catalog...)
}

// Get returns the full preset entry for name.
func Get(name string) (Preset, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, p := range catalog {
		if p.Name == key {
			return p, nil
		}
	}
	return Preset{}, glazeerrors.NewPresetLookupError(name, Names())
}

// Lookup returns the parameter set for name.
func Lookup(name string) (params.Set, error) {
	p, err := Get(name)
	if err != nil {
		return params.Set{}, err
	}
	return p.Params, nil
}

// Next returns the preset after current in catalog order, wrapping around.
// An unknown current name yields the first preset.
func Next(current string) string {
	key := strings.ToLower(strings.TrimSpace(current))
	for i, p := range catalog {
		if p.Name == key {
			return catalog[(i+1)%len(catalog)].Name
		}
	}
	return catalog[0].Name
}
