package components

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/glaze/internal/params"
)

func TestSliderView(t *testing.T) {
	t.Parallel()

	t.Run("renders value beside bar", func(t *testing.T) {
		t.Parallel()
		s := NewSlider(20)
		view := s.View(0.5, "12px")
		require.Contains(t, view, "12px")
		require.GreaterOrEqual(t, lipgloss.Width(view), 20)
	})

	t.Run("clamps out of range ratios", func(t *testing.T) {
		t.Parallel()
		s := NewSlider(10)
		require.Equal(t, lipgloss.Width(s.View(0, "0")), lipgloss.Width(s.View(4, "0")))
		require.NotEmpty(t, s.View(-1, "0"))
	})

	t.Run("formats units", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "24px", FormatValue("24", "px"))
		require.Equal(t, "0.3", FormatValue("0.3", ""))
	})
}

func TestControlListFollowsFieldTable(t *testing.T) {
	t.Parallel()

	list := NewControlList(params.Default())
	entries := list.Entries()
	require.Equal(t, 13, list.Len())
	require.Equal(t, params.FieldBgColor1, entries[0].Spec.Name)
	require.Equal(t, "#667eea", entries[0].Value)
	require.Equal(t, params.FieldBorderOpacity, entries[12].Spec.Name)
	require.Equal(t, "0.3", entries[12].Value)
	require.InDelta(t, 0.3, entries[12].Ratio, 1e-9)

	entries[0].Value = "changed"
	require.Equal(t, "#667eea", list.Entries()[0].Value)
}

func TestSummaryView(t *testing.T) {
	t.Parallel()

	view := NewSummary(SummaryData{Tab: "CSS", Bytes: 120}).View()
	require.Contains(t, view, "Preset: custom")
	require.Contains(t, view, "Tab: CSS (120 bytes)")
	require.Contains(t, view, "✓ up to date")

	view = NewSummary(SummaryData{Preset: "ios", Tab: "HTML", Err: "bad colour"}).View()
	require.Contains(t, view, "Preset: ios")
	require.Contains(t, view, "✗ bad colour")
}
