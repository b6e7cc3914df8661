package artifact

import (
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/glaze/internal/colour"
	"github.com/alexisbeaulieu97/glaze/internal/params"
)

// ShadowAlpha is the fixed alpha byte appended to both neumorphic shadows.
const ShadowAlpha uint8 = 0x1a

// Gradient is the linear background behind the panel.
type Gradient struct {
	Angle int        `json:"angle"`
	From  colour.RGB `json:"from"`
	To    colour.RGB `json:"to"`
}

// Fill is the translucent panel colour.
type Fill struct {
	Color colour.RGB `json:"color"`
	Alpha float64    `json:"alpha"`
}

// Border is the panel outline.
type Border struct {
	Width float64    `json:"width"`
	Color colour.RGB `json:"color"`
	Alpha float64    `json:"alpha"`
}

// Shadow is one box-shadow layer.
type Shadow struct {
	X     float64     `json:"x"`
	Y     float64     `json:"y"`
	Blur  float64     `json:"blur"`
	Color colour.RGBA `json:"color"`
}

// CSS renders the layer as a box-shadow component.
func (s Shadow) CSS() string {
	return fmt.Sprintf("%s %s %s %s", px(s.X), px(s.Y), px(s.Blur), s.Color.HexAlpha())
}

// Declaration is one CSS property/value pair.
type Declaration struct {
	Property string `json:"property"`
	Value    string `json:"value"`
}

// StyleDescriptor is the resolved visual description of the panel. The
// stylesheet and every preview surface are driven from it.
type StyleDescriptor struct {
	Gradient Gradient  `json:"gradient"`
	Fill     Fill      `json:"fill"`
	Blur     float64   `json:"blur"`
	Radius   float64   `json:"radius"`
	Border   Border    `json:"border"`
	Shadows  [2]Shadow `json:"shadows"`
}

// Describe decodes and resolves a parameter set. Colours are decoded in
// field table order so the first bad field is the one reported.
func Describe(p params.Set) (StyleDescriptor, error) {
	decoded := make(map[string]colour.RGB, 6)
	for _, name := range params.ColorFields() {
		raw, err := p.Get(name)
		if err != nil {
			return StyleDescriptor{}, err
		}
		rgb, err := colour.Decode(raw)
		if err != nil {
			return StyleDescriptor{}, newDecodeError(name, raw, err)
		}
		decoded[name] = rgb
	}

	if err := p.Validate(); err != nil {
		return StyleDescriptor{}, err
	}

	s := p.ShadowIntensity
	return StyleDescriptor{
		Gradient: Gradient{
			Angle: p.GradientAngle,
			From:  decoded[params.FieldBgColor1],
			To:    decoded[params.FieldBgColor2],
		},
		Fill:   Fill{Color: decoded[params.FieldGlassColor], Alpha: p.Transparency},
		Blur:   p.BlurAmount,
		Radius: p.BorderRadius,
		Border: Border{
			Width: p.BorderWidth,
			Color: decoded[params.FieldBorderColor],
			Alpha: p.BorderOpacity,
		},
		Shadows: [2]Shadow{
			{X: s, Y: s, Blur: 2 * s, Color: decoded[params.FieldDarkShadow].WithAlphaByte(ShadowAlpha)},
			{X: -s, Y: -s, Blur: 2 * s, Color: decoded[params.FieldLightShadow].WithAlphaByte(ShadowAlpha)},
		},
	}, nil
}

// GradientCSS renders the background gradient.
func (d StyleDescriptor) GradientCSS() string {
	return fmt.Sprintf("linear-gradient(%ddeg, %s, %s)", d.Gradient.Angle, d.Gradient.From.Hex(), d.Gradient.To.Hex())
}

// FillCSS renders the panel background.
func (d StyleDescriptor) FillCSS() string {
	return colour.CSSRgba(d.Fill.Color, d.Fill.Alpha)
}

// BlurCSS renders the backdrop filter.
func (d StyleDescriptor) BlurCSS() string {
	return fmt.Sprintf("blur(%s)", px(d.Blur))
}

// RadiusCSS renders the corner radius.
func (d StyleDescriptor) RadiusCSS() string {
	return px(d.Radius)
}

// BorderCSS renders the border shorthand.
func (d StyleDescriptor) BorderCSS() string {
	return fmt.Sprintf("%s solid %s", px(d.Border.Width), colour.CSSRgba(d.Border.Color, d.Border.Alpha))
}

// ShadowCSS renders both shadow layers joined for a single-line value.
func (d StyleDescriptor) ShadowCSS() string {
	return d.Shadows[0].CSS() + ", " + d.Shadows[1].CSS()
}

// Declarations returns the panel's parameter-driven declarations in
// stylesheet order.
func (d StyleDescriptor) Declarations() []Declaration {
	return []Declaration{
		{Property: "background", Value: d.FillCSS()},
		{Property: "backdrop-filter", Value: d.BlurCSS()},
		{Property: "-webkit-backdrop-filter", Value: d.BlurCSS()},
		{Property: "border-radius", Value: d.RadiusCSS()},
		{Property: "border", Value: d.BorderCSS()},
		{Property: "box-shadow", Value: d.ShadowCSS()},
	}
}

// InlineStyle joins Declarations into a style attribute value.
func (d StyleDescriptor) InlineStyle() string {
	decls := d.Declarations()
	parts := make([]string, 0, len(decls))
	for _, decl := range decls {
		parts = append(parts, decl.Property+": "+decl.Value)
	}
	return strings.Join(parts, "; ") + ";"
}

func px(v float64) string {
	return params.FormatNumber(v) + "px"
}
