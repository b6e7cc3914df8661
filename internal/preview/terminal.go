// Package preview paints an approximation of the generated panel into a
// terminal cell grid.
package preview

import (
	"math"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/alexisbeaulieu97/glaze/internal/artifact"
	"github.com/alexisbeaulieu97/glaze/internal/colour"
)

const (
	maxPanelWidth  = 44
	maxPanelHeight = 11
	minWidth       = 16
	minHeight      = 7
)

var white = colorful.Color{R: 1, G: 1, B: 1}

// Cell is one painted terminal cell.
type Cell struct {
	Rune rune
	FG   colorful.Color
	BG   colorful.Color
}

// Region classifies a cell for tests and hit checks.
type Region int

const (
	RegionBackdrop Region = iota
	RegionDarkShadow
	RegionLightShadow
	RegionBorder
	RegionFill
)

// Canvas is a painted grid, row-major.
type Canvas struct {
	Width   int
	Height  int
	Cells   [][]Cell
	Regions [][]Region
}

// Terminal is a preview surface. It is safe for concurrent Apply and View.
type Terminal struct {
	mu    sync.RWMutex
	style artifact.StyleDescriptor
	ready bool
}

// NewTerminal returns an empty preview; View renders nothing until Apply.
func NewTerminal() *Terminal {
	return &Terminal{}
}

// Apply stores the style to paint.
func (t *Terminal) Apply(style artifact.StyleDescriptor) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.style = style
	t.ready = true
}

// Style returns the last applied style.
func (t *Terminal) Style() (artifact.StyleDescriptor, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.style, t.ready
}

// View renders the preview at the given size.
func (t *Terminal) View(width, height int) string {
	style, ok := t.Style()
	if !ok || width < minWidth || height < minHeight {
		return ""
	}
	return Render(Paint(style, width, height))
}

// Paint lays out the backdrop, shadows, border, fill and heading.
func Paint(style artifact.StyleDescriptor, width, height int) Canvas {
	c := Canvas{Width: width, Height: height}
	c.Cells = make([][]Cell, height)
	c.Regions = make([][]Region, height)

	from := style.Gradient.From.Colorful()
	to := style.Gradient.To.Colorful()
	dx, dy := gradientVector(style.Gradient.Angle)

	for y := 0; y < height; y++ {
		c.Cells[y] = make([]Cell, width)
		c.Regions[y] = make([]Region, width)
		for x := 0; x < width; x++ {
			t := gradientPosition(x, y, width, height, dx, dy)
			bg := from.BlendRgb(to, t)
			c.Cells[y][x] = Cell{Rune: ' ', FG: bg, BG: bg}
		}
	}

	pw := min(maxPanelWidth, width-4)
	ph := min(maxPanelHeight, height-2)
	x0 := (width - pw) / 2
	y0 := (height - ph) / 2

	paintShadows(&c, style, x0, y0, pw, ph)
	paintPanel(&c, style, from.BlendRgb(to, 0.5), x0, y0, pw, ph)
	paintText(&c, x0, y0, pw, ph)

	return c
}

// Render converts a canvas into styled lines, merging runs of equal colour.
func Render(c Canvas) string {
	lines := make([]string, 0, c.Height)
	for _, row := range c.Cells {
		var line strings.Builder
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && sameColours(row[x], row[start]) {
				continue
			}
			var run strings.Builder
			for _, cell := range row[start:x] {
				run.WriteRune(cell.Rune)
			}
			cellStyle := lipgloss.NewStyle().
				Foreground(lipgloss.Color(row[start].FG.Hex())).
				Background(lipgloss.Color(row[start].BG.Hex()))
			line.WriteString(cellStyle.Render(run.String()))
			start = x
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

func sameColours(a, b Cell) bool {
	return a.FG.Hex() == b.FG.Hex() && a.BG.Hex() == b.BG.Hex()
}

// gradientVector follows CSS: 0deg points up, 90deg points right.
func gradientVector(angle int) (float64, float64) {
	rad := float64(angle) * math.Pi / 180
	return math.Sin(rad), -math.Cos(rad)
}

func gradientPosition(x, y, width, height int, dx, dy float64) float64 {
	px := float64(x)/math.Max(1, float64(width-1)) - 0.5
	py := float64(y)/math.Max(1, float64(height-1)) - 0.5
	span := (math.Abs(dx) + math.Abs(dy)) / 2
	if span == 0 {
		return 0
	}
	t := (px*dx+py*dy)/(2*span) + 0.5
	return math.Max(0, math.Min(1, t))
}

func paintShadows(c *Canvas, style artifact.StyleDescriptor, x0, y0, pw, ph int) {
	strength := shadowStrength(style)
	if strength == 0 {
		return
	}

	dark := style.Shadows[0].Color.RGB().Colorful()
	light := style.Shadows[1].Color.RGB().Colorful()

	// Dark paints over light where the two overlap.
	shadeRect(c, x0-1, y0-1, pw, ph, light, strength, RegionLightShadow)
	shadeRect(c, x0+1, y0+1, pw, ph, dark, strength, RegionDarkShadow)
}

// shadowStrength scales the shadow alpha by intensity, capped below opaque.
func shadowStrength(style artifact.StyleDescriptor) float64 {
	intensity := style.Shadows[0].X
	if intensity <= 0 {
		return 0
	}
	alpha := float64(style.Shadows[0].Color.A) / 255
	return math.Min(0.85, alpha*(1+intensity/5))
}

func shadeRect(c *Canvas, x0, y0, w, h int, tint colorful.Color, strength float64, region Region) {
	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			if !c.inBounds(x, y) {
				continue
			}
			cell := &c.Cells[y][x]
			cell.BG = cell.BG.BlendRgb(tint, strength)
			cell.FG = cell.BG
			c.Regions[y][x] = region
		}
	}
}

func paintPanel(c *Canvas, style artifact.StyleDescriptor, mid colorful.Color, x0, y0, pw, ph int) {
	soften := math.Min(1, style.Blur/40)
	glass := style.Fill.Color.Colorful()
	borderColour := style.Border.Color.Colorful()
	glyphs := borderGlyphs(style)

	for y := y0; y < y0+ph; y++ {
		for x := x0; x < x0+pw; x++ {
			if !c.inBounds(x, y) {
				continue
			}
			cell := &c.Cells[y][x]
			backdrop := cell.BG
			if c.Regions[y][x] != RegionBackdrop {
				backdrop = c.backdropAt(x, y, style)
			}
			fill := backdrop.BlendRgb(mid, soften).BlendRgb(glass, style.Fill.Alpha)
			cell.BG = fill
			cell.FG = fill
			cell.Rune = ' '
			c.Regions[y][x] = RegionFill

			if style.Border.Width <= 0 {
				continue
			}
			if r, ok := glyphs.at(x-x0, y-y0, pw, ph); ok {
				cell.Rune = r
				cell.FG = fill.BlendRgb(borderColour, math.Max(style.Border.Alpha, 0.2))
				c.Regions[y][x] = RegionBorder
			}
		}
	}
}

func (c *Canvas) backdropAt(x, y int, style artifact.StyleDescriptor) colorful.Color {
	dx, dy := gradientVector(style.Gradient.Angle)
	t := gradientPosition(x, y, c.Width, c.Height, dx, dy)
	return style.Gradient.From.Colorful().BlendRgb(style.Gradient.To.Colorful(), t)
}

func paintText(c *Canvas, x0, y0, pw, ph int) {
	lines := []string{"Preview Card", "", "24K Visitors  98% Success", "", "[ Get Started ]"}
	inner := ph - 2
	top := y0 + 1 + max(0, (inner-len(lines))/2)
	for i, text := range lines {
		y := top + i
		if y >= y0+ph-1 || text == "" {
			continue
		}
		runes := []rune(text)
		if len(runes) > pw-4 {
			runes = runes[:max(0, pw-4)]
		}
		x := x0 + (pw-len(runes))/2
		for j, r := range runes {
			if !c.inBounds(x+j, y) {
				continue
			}
			cell := &c.Cells[y][x+j]
			cell.Rune = r
			cell.FG = textColour(cell.BG)
		}
	}
}

// textColour picks white unless the fill is too light to read it.
func textColour(bg colorful.Color) colorful.Color {
	l, _, _ := bg.Lab()
	if l > 0.75 {
		return colour.RGB{R: 0x33, G: 0x33, B: 0x33}.Colorful()
	}
	return white
}

func (c *Canvas) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.Width && y < c.Height
}

type glyphSet struct {
	tl, tr, bl, br, h, v rune
}

func borderGlyphs(style artifact.StyleDescriptor) glyphSet {
	switch {
	case style.Border.Width >= 2:
		return glyphSet{tl: '┏', tr: '┓', bl: '┗', br: '┛', h: '━', v: '┃'}
	case style.Radius > 0:
		return glyphSet{tl: '╭', tr: '╮', bl: '╰', br: '╯', h: '─', v: '│'}
	default:
		return glyphSet{tl: '┌', tr: '┐', bl: '└', br: '┘', h: '─', v: '│'}
	}
}

func (g glyphSet) at(x, y, w, h int) (rune, bool) {
	top, bottom := y == 0, y == h-1
	left, right := x == 0, x == w-1
	switch {
	case top && left:
		return g.tl, true
	case top && right:
		return g.tr, true
	case bottom && left:
		return g.bl, true
	case bottom && right:
		return g.br, true
	case top || bottom:
		return g.h, true
	case left || right:
		return g.v, true
	}
	return 0, false
}
