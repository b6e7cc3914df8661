package preview

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/glaze/internal/artifact"
	"github.com/alexisbeaulieu97/glaze/internal/params"
	"github.com/alexisbeaulieu97/glaze/internal/preset"
)

const (
	testWidth  = 60
	testHeight = 16
	panelX     = 8
	panelY     = 2
	panelW     = 44
	panelH     = 11
)

func describe(t *testing.T, set params.Set) artifact.StyleDescriptor {
	t.Helper()
	style, err := artifact.Describe(set)
	require.NoError(t, err)
	return style
}

func TestPaintGradientEndpoints(t *testing.T) {
	t.Parallel()

	c := Paint(describe(t, params.Default()), testWidth, testHeight)

	assert.Equal(t, "#667eea", c.Cells[0][0].BG.Hex())
	assert.Equal(t, "#764ba2", c.Cells[testHeight-1][testWidth-1].BG.Hex())
}

func TestPaintVerticalGradient(t *testing.T) {
	t.Parallel()

	set, err := preset.Lookup("vibrant")
	require.NoError(t, err)
	c := Paint(describe(t, set), testWidth, testHeight)

	// 180deg runs top to bottom, so a row shares one colour.
	assert.Equal(t, c.Cells[0][0].BG.Hex(), c.Cells[0][testWidth-1].BG.Hex())
	assert.Equal(t, "#f093fb", c.Cells[0][0].BG.Hex())
	assert.Equal(t, "#f5576c", c.Cells[testHeight-1][0].BG.Hex())
}

func TestPaintPanelRegions(t *testing.T) {
	t.Parallel()

	c := Paint(describe(t, params.Default()), testWidth, testHeight)

	assert.Equal(t, RegionBorder, c.Regions[panelY][panelX])
	assert.Equal(t, '╭', c.Cells[panelY][panelX].Rune)
	assert.Equal(t, '╯', c.Cells[panelY+panelH-1][panelX+panelW-1].Rune)
	assert.Equal(t, RegionFill, c.Regions[panelY+1][panelX+1])
	assert.Equal(t, RegionDarkShadow, c.Regions[panelY+panelH][panelX+panelW])
	assert.Equal(t, RegionLightShadow, c.Regions[panelY-1][panelX-1])
	assert.Equal(t, RegionBackdrop, c.Regions[0][0])
}

func TestPaintSquareAndThickBorders(t *testing.T) {
	t.Parallel()

	set := params.Default()
	set.BorderRadius = 0
	c := Paint(describe(t, set), testWidth, testHeight)
	assert.Equal(t, '┌', c.Cells[panelY][panelX].Rune)

	set.BorderWidth = 2
	c = Paint(describe(t, set), testWidth, testHeight)
	assert.Equal(t, '┏', c.Cells[panelY][panelX].Rune)
}

func TestPaintWithoutBorderOrShadow(t *testing.T) {
	t.Parallel()

	set := params.Default()
	set.BorderWidth = 0
	set.ShadowIntensity = 0
	c := Paint(describe(t, set), testWidth, testHeight)

	for y := range c.Regions {
		for x := range c.Regions[y] {
			assert.NotEqual(t, RegionBorder, c.Regions[y][x])
			assert.NotEqual(t, RegionDarkShadow, c.Regions[y][x])
			assert.NotEqual(t, RegionLightShadow, c.Regions[y][x])
		}
	}
}

func TestPaintOpaqueGlass(t *testing.T) {
	t.Parallel()

	set := params.Default()
	set.Transparency = 1
	set.GlassColor = "#123456"
	c := Paint(describe(t, set), testWidth, testHeight)

	assert.Equal(t, "#123456", c.Cells[panelY+1][panelX+1].BG.Hex())
}

func TestTerminalView(t *testing.T) {
	t.Parallel()

	term := NewTerminal()
	assert.Empty(t, term.View(testWidth, testHeight))

	term.Apply(describe(t, params.Default()))
	out := term.View(testWidth, testHeight)

	assert.Contains(t, out, "Preview Card")
	assert.Contains(t, out, "Get Started")

	lines := strings.Split(out, "\n")
	require.Len(t, lines, testHeight)
	for _, line := range lines {
		assert.Equal(t, testWidth, lipgloss.Width(line))
	}

	assert.Empty(t, term.View(4, 4))
}
