// Package params defines the ParameterSet snapshot that drives artifact
// generation, together with the control table the studio edits it through.
package params

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/alexisbeaulieu97/glaze/internal/colour"
	"github.com/alexisbeaulieu97/glaze/internal/validation"
	glazeerrors "github.com/alexisbeaulieu97/glaze/pkg/errors"
)

// Set is a complete, immutable-by-convention snapshot of every input.
// It is passed by value; With and Nudge return modified copies.
type Set struct {
	BgColor1        string  `yaml:"bgColor1" json:"bgColor1" validate:"hexrgb"`
	BgColor2        string  `yaml:"bgColor2" json:"bgColor2" validate:"hexrgb"`
	GradientAngle   int     `yaml:"gradientAngle" json:"gradientAngle" validate:"min=0,max=360"`
	BlurAmount      float64 `yaml:"blurAmount" json:"blurAmount" validate:"finite,min=0,max=1000"`
	Transparency    float64 `yaml:"transparency" json:"transparency" validate:"finite,min=0,max=1"`
	GlassColor      string  `yaml:"glassColor" json:"glassColor" validate:"hexrgb"`
	ShadowIntensity float64 `yaml:"shadowIntensity" json:"shadowIntensity" validate:"finite,min=0,max=1000"`
	LightShadow     string  `yaml:"lightShadow" json:"lightShadow" validate:"hexrgb"`
	DarkShadow      string  `yaml:"darkShadow" json:"darkShadow" validate:"hexrgb"`
	BorderRadius    float64 `yaml:"borderRadius" json:"borderRadius" validate:"finite,min=0,max=1000"`
	BorderWidth     float64 `yaml:"borderWidth" json:"borderWidth" validate:"finite,min=0,max=1000"`
	BorderColor     string  `yaml:"borderColor" json:"borderColor" validate:"hexrgb"`
	BorderOpacity   float64 `yaml:"borderOpacity" json:"borderOpacity" validate:"finite,min=0,max=1"`
}

// Field keys, matching the yaml/json names.
const (
	FieldBgColor1        = "bgColor1"
	FieldBgColor2        = "bgColor2"
	FieldGradientAngle   = "gradientAngle"
	FieldBlurAmount      = "blurAmount"
	FieldTransparency    = "transparency"
	FieldGlassColor      = "glassColor"
	FieldShadowIntensity = "shadowIntensity"
	FieldLightShadow     = "lightShadow"
	FieldDarkShadow      = "darkShadow"
	FieldBorderRadius    = "borderRadius"
	FieldBorderWidth     = "borderWidth"
	FieldBorderColor     = "borderColor"
	FieldBorderOpacity   = "borderOpacity"
)

// Kind distinguishes how a field is edited and formatted.
type Kind int

const (
	KindColor Kind = iota
	KindInt
	KindFloat
)

// FieldSpec describes one control. Min, Max and Step bound the slider only;
// Validate enforces the looser pipeline constraints.
type FieldSpec struct {
	Name  string
	Label string
	Kind  Kind
	Min   float64
	Max   float64
	Step  float64
	Unit  string
}

var fields = []FieldSpec{
	{Name: FieldBgColor1, Label: "Background 1", Kind: KindColor},
	{Name: FieldBgColor2, Label: "Background 2", Kind: KindColor},
	{Name: FieldGradientAngle, Label: "Gradient angle", Kind: KindInt, Min: 0, Max: 360, Step: 5, Unit: "°"},
	{Name: FieldBlurAmount, Label: "Blur", Kind: KindFloat, Min: 0, Max: 40, Step: 1, Unit: "px"},
	{Name: FieldTransparency, Label: "Transparency", Kind: KindFloat, Min: 0, Max: 1, Step: 0.05},
	{Name: FieldGlassColor, Label: "Glass colour", Kind: KindColor},
	{Name: FieldShadowIntensity, Label: "Shadow", Kind: KindFloat, Min: 0, Max: 50, Step: 1, Unit: "px"},
	{Name: FieldLightShadow, Label: "Light shadow", Kind: KindColor},
	{Name: FieldDarkShadow, Label: "Dark shadow", Kind: KindColor},
	{Name: FieldBorderRadius, Label: "Corner radius", Kind: KindFloat, Min: 0, Max: 50, Step: 1, Unit: "px"},
	{Name: FieldBorderWidth, Label: "Border width", Kind: KindFloat, Min: 0, Max: 5, Step: 0.5, Unit: "px"},
	{Name: FieldBorderColor, Label: "Border colour", Kind: KindColor},
	{Name: FieldBorderOpacity, Label: "Border opacity", Kind: KindFloat, Min: 0, Max: 1, Step: 0.05},
}

// Fields returns the control table in display order.
func Fields() []FieldSpec {
	return append([]FieldSpec(nil), fields...)
}

// Lookup returns the spec for a field key.
func Lookup(name string) (FieldSpec, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// ColorFields returns the colour field keys in display order.
func ColorFields() []string {
	var out []string
	for _, f := range fields {
		if f.Kind == KindColor {
			out = append(out, f.Name)
		}
	}
	return out
}

// Default returns the values the studio starts with.
func Default() Set {
	return Set{
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
	}
}

// Validate checks colour syntax and numeric ranges.
func (s Set) Validate() error {
	return validation.Struct(s)
}

// Get returns a field formatted the way it is written into generated text.
func (s Set) Get(name string) (string, error) {
	switch name {
	case FieldBgColor1:
		return s.BgColor1, nil
	case FieldBgColor2:
		return s.BgColor2, nil
	case FieldGradientAngle:
		return strconv.Itoa(s.GradientAngle), nil
	case FieldBlurAmount:
		return FormatNumber(s.BlurAmount), nil
	case FieldTransparency:
		return FormatNumber(s.Transparency), nil
	case FieldGlassColor:
		return s.GlassColor, nil
	case FieldShadowIntensity:
		return FormatNumber(s.ShadowIntensity), nil
	case FieldLightShadow:
		return s.LightShadow, nil
	case FieldDarkShadow:
		return s.DarkShadow, nil
	case FieldBorderRadius:
		return FormatNumber(s.BorderRadius), nil
	case FieldBorderWidth:
		return FormatNumber(s.BorderWidth), nil
	case FieldBorderColor:
		return s.BorderColor, nil
	case FieldBorderOpacity:
		return FormatNumber(s.BorderOpacity), nil
	}
	return "", unknownField(name)
}

// Number returns a numeric field as float64.
func (s Set) Number(name string) (float64, error) {
	switch name {
	case FieldGradientAngle:
		return float64(s.GradientAngle), nil
	case FieldBlurAmount:
		return s.BlurAmount, nil
	case FieldTransparency:
		return s.Transparency, nil
	case FieldShadowIntensity:
		return s.ShadowIntensity, nil
	case FieldBorderRadius:
		return s.BorderRadius, nil
	case FieldBorderWidth:
		return s.BorderWidth, nil
	case FieldBorderOpacity:
		return s.BorderOpacity, nil
	}
	return 0, unknownField(name)
}

// With returns a copy with one field replaced from raw text. Colour values
// are stored as typed (decoding happens at generation time); numeric values
// must parse.
func (s Set) With(name, raw string) (Set, error) {
	spec, ok := Lookup(name)
	if !ok {
		return s, unknownField(name)
	}

	raw = strings.TrimSpace(raw)
	if spec.Kind == KindColor {
		return s.withColor(name, raw), nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return s, glazeerrors.NewValidationError(name, fmt.Sprintf("%q is not a number", raw), err)
	}
	return s.withNumber(name, v), nil
}

// Nudge moves a numeric field by whole slider steps, clamped to the slider
// range. Colour fields are returned unchanged.
func (s Set) Nudge(name string, steps int) (Set, error) {
	spec, ok := Lookup(name)
	if !ok {
		return s, unknownField(name)
	}
	if spec.Kind == KindColor {
		return s, nil
	}

	current, err := s.Number(name)
	if err != nil {
		return s, err
	}
	next := current + float64(steps)*spec.Step
	next = math.Max(spec.Min, math.Min(spec.Max, next))
	return s.withNumber(name, roundTo(next, 3)), nil
}

// Ratio reports where a numeric field sits within its slider range.
func (s Set) Ratio(name string) float64 {
	spec, ok := Lookup(name)
	if !ok || spec.Kind == KindColor || spec.Max <= spec.Min {
		return 0
	}
	v, err := s.Number(name)
	if err != nil {
		return 0
	}
	r := (v - spec.Min) / (spec.Max - spec.Min)
	return math.Max(0, math.Min(1, r))
}

func (s Set) withColor(name, value string) Set {
	switch name {
	case FieldBgColor1:
		s.BgColor1 = value
	case FieldBgColor2:
		s.BgColor2 = value
	case FieldGlassColor:
		s.GlassColor = value
	case FieldLightShadow:
		s.LightShadow = value
	case FieldDarkShadow:
		s.DarkShadow = value
	case FieldBorderColor:
		s.BorderColor = value
	}
	return s
}

func (s Set) withNumber(name string, v float64) Set {
	switch name {
	case FieldGradientAngle:
		s.GradientAngle = int(math.Round(v))
	case FieldBlurAmount:
		s.BlurAmount = v
	case FieldTransparency:
		s.Transparency = v
	case FieldShadowIntensity:
		s.ShadowIntensity = v
	case FieldBorderRadius:
		s.BorderRadius = v
	case FieldBorderWidth:
		s.BorderWidth = v
	case FieldBorderOpacity:
		s.BorderOpacity = v
	}
	return s
}

// Canonical returns a copy whose colours are lowercase "#rrggbb". Colours
// that do not decode are left as typed.
func (s Set) Canonical() Set {
	for _, name := range ColorFields() {
		raw, _ := s.Get(name)
		if hex, err := colour.Canonical(raw); err == nil {
			s = s.withColor(name, hex)
		}
	}
	return s
}

// FormatNumber renders the shortest decimal that round-trips.
func FormatNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func unknownField(name string) error {
	return glazeerrors.NewValidationError(name, "unknown parameter", nil)
}
