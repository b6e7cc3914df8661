package studio

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/glaze/internal/artifact"
	"github.com/alexisbeaulieu97/glaze/internal/colour"
	"github.com/alexisbeaulieu97/glaze/internal/params"
	"github.com/alexisbeaulieu97/glaze/internal/preset"
	"github.com/alexisbeaulieu97/glaze/internal/tui/components"
)

// View renders the current screen.
func (m Model) View() string {
	if m.viewMode == ViewHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("glaze · glass panel studio"))
	b.WriteString("\n")
	if m.showError && m.errorMsg != "" {
		b.WriteString(errorBannerStyle.Render("✗ " + m.errorMsg))
		b.WriteString("\n")
	}

	left := columnStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.renderControls(),
		"",
		m.renderSummary(),
	))
	right := lipgloss.JoinVertical(lipgloss.Left,
		m.renderPreview(),
		m.renderTabs(),
		codeStyle.Render(m.code.View()),
	)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderControls() string {
	list := components.NewControlList(m.ctrl.Params())
	rows := make([]string, 0, list.Len())
	for i, entry := range list.Entries() {
		row := labelStyle.Render(entry.Spec.Label) + m.renderControlValue(i, entry)
		if i == m.cursor {
			rows = append(rows, selectedItemStyle.Render(row))
		} else {
			rows = append(rows, itemStyle.Render(row))
		}
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderControlValue(i int, entry components.ControlEntry) string {
	if i == m.cursor && m.viewMode == ViewInput {
		return m.input.View()
	}
	if entry.Spec.Kind == params.KindColor {
		var swatch string
		if rgb, err := colour.Decode(entry.Value); err == nil {
			swatch = swatchStyle.Background(lipgloss.Color(rgb.Hex())).Render("  ")
		} else {
			swatch = lipgloss.NewStyle().Foreground(errorColor).Render("??")
		}
		return swatch + " " + entry.Value
	}
	return m.slider.View(entry.Ratio, components.FormatValue(entry.Value, entry.Spec.Unit))
}

func (m Model) renderSummary() string {
	tab, text := m.ctrl.ExportText()
	data := components.SummaryData{
		Preset: m.ctrl.Preset(),
		Tab:    tab.Label(),
		Bytes:  len(text),
	}
	if err := m.ctrl.Err(); err != nil {
		data.Err = err.Error()
	}
	return components.NewSummary(data).View()
}

func (m Model) renderPreview() string {
	width := max(20, m.width-leftColumnWidth-4)
	height := max(7, (m.height-6)/2)
	view := m.surface.View(width, height)
	if view == "" {
		return lipgloss.NewStyle().Foreground(mutedColor).Render("preview unavailable")
	}
	return view
}

func (m Model) renderTabs() string {
	active := m.ctrl.ActiveTab()
	tabs := make([]string, 0, 3)
	for _, k := range artifact.Kinds() {
		label := fmt.Sprintf("%s %s", k.Label(), k.Filename())
		if k == active {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if m.ack != "" {
		row += "  " + ackStyle.Render(m.ack)
	}
	return row
}

func (m Model) renderFooter() string {
	var hint string
	switch m.viewMode {
	case ViewInput:
		hint = "enter apply • esc cancel"
	default:
		hint = "↑/↓ select • ←/→ adjust • enter edit • 1-4/p presets • h/c/j tabs • y copy • ? help • q quit"
	}
	return footerStyle.Width(max(20, m.width-2)).Render(hint)
}

func (m Model) renderHelp() string {
	rows := [][2]string{
		{"↑ / ↓", "Select a control"},
		{"← / →", "Adjust the selected slider (shift for ×5)"},
		{"enter", "Type a value for the selected control"},
		{"1-4", "Apply preset " + strings.Join(preset.Names(), ", ")},
		{"p", "Cycle through presets"},
		{"h / c / j", "Show HTML, CSS or JS"},
		{"tab", "Next code tab"},
		{"pgup / pgdown", "Scroll the code"},
		{"y", "Copy the visible code"},
		{"x / esc", "Dismiss the error banner"},
		{"?", "Toggle this help"},
		{"q", "Quit"},
	}

	var b strings.Builder
	b.WriteString(helpTitleStyle.Render("Keyboard shortcuts"))
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString(helpKeyStyle.Render(row[0]))
		b.WriteString(helpDescStyle.Render(row[1]))
		b.WriteString("\n")
	}
	return helpBoxStyle.Render(strings.TrimRight(b.String(), "\n"))
}
