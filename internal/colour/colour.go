// Package colour decodes the 6-digit hex colours used by glaze parameters
// and formats decoded channels for CSS output.
package colour

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrNoMatch is returned when a string is not a 6-digit hex RGB colour.
var ErrNoMatch = errors.New("not a 6-digit hex colour")

var hexPattern = regexp.MustCompile(`^#?([0-9a-fA-F]{2})([0-9a-fA-F]{2})([0-9a-fA-F]{2})$`)

// RGB represents a colour in 8-bit red/green/blue channels.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// RGBA represents a colour with an 8-bit alpha channel.
type RGBA struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// Decode parses "#rrggbb" or "rrggbb" (any case). Shorthand, alpha and
// padded forms are rejected rather than truncated.
func Decode(s string) (RGB, error) {
	groups := hexPattern.FindStringSubmatch(s)
	if groups == nil {
		return RGB{}, fmt.Errorf("%q: %w", s, ErrNoMatch)
	}

	var channels [3]uint8
	for i, group := range groups[1:] {
		v, err := strconv.ParseUint(group, 16, 8)
		if err != nil {
			return RGB{}, fmt.Errorf("%q: %w", s, ErrNoMatch)
		}
		channels[i] = uint8(v)
	}

	return RGB{R: channels[0], G: channels[1], B: channels[2]}, nil
}

// Valid reports whether s decodes.
func Valid(s string) bool {
	return hexPattern.MatchString(s)
}

// Canonical re-encodes s as lowercase "#rrggbb".
func Canonical(s string) (string, error) {
	rgb, err := Decode(s)
	if err != nil {
		return "", err
	}
	return rgb.Hex(), nil
}

// Hex returns the colour as lowercase "#rrggbb".
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// WithAlphaByte returns an RGBA using a raw alpha byte.
func (rgb RGB) WithAlphaByte(a uint8) RGBA {
	return RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: a}
}

// Colorful converts to a go-colorful colour for blending.
func (rgb RGB) Colorful() colorful.Color {
	return colorful.Color{
		R: float64(rgb.R) / 255.0,
		G: float64(rgb.G) / 255.0,
		B: float64(rgb.B) / 255.0,
	}
}

// RGB drops the alpha channel.
func (c RGBA) RGB() RGB {
	return RGB{R: c.R, G: c.G, B: c.B}
}

// Hex returns "#rrggbb" without alpha.
func (c RGBA) Hex() string {
	return c.RGB().Hex()
}

// HexAlpha returns "#rrggbbaa".
func (c RGBA) HexAlpha() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// CSSRgba formats the channels with an explicit alpha value, keeping the
// caller's alpha verbatim instead of the quantised byte.
func CSSRgba(rgb RGB, alpha float64) string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", rgb.R, rgb.G, rgb.B, strconv.FormatFloat(alpha, 'f', -1, 64))
}
