package components

import (
	"fmt"
	"math"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// Slider renders a numeric parameter as a labelled bar.
type Slider struct {
	bar   progress.Model
	label lipgloss.Style
}

// NewSlider creates a slider whose bar is width cells wide.
func NewSlider(width int) Slider {
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = width
	return Slider{bar: bar, label: lipgloss.NewStyle().Bold(true).Width(8).Align(lipgloss.Right)}
}

// Width returns the bar width.
func (s Slider) Width() int {
	return s.bar.Width
}

// View renders the bar at ratio with the formatted value beside it.
func (s Slider) View(ratio float64, value string) string {
	if math.IsNaN(ratio) {
		ratio = 0
	}
	ratio = math.Max(0, math.Min(1, ratio))
	return lipgloss.JoinHorizontal(lipgloss.Left, s.bar.ViewAs(ratio), " ", s.label.Render(value))
}

// FormatValue joins a number with its unit.
func FormatValue(value, unit string) string {
	return fmt.Sprintf("%s%s", value, unit)
}
