package components

import (
	"fmt"
	"strings"
)

// SummaryData describes the session state shown under the controls.
type SummaryData struct {
	Preset string
	Tab    string
	Bytes  int
	Err    string
}

// Summary renders a short textual status block.
type Summary struct {
	data SummaryData
}

// NewSummary creates a new Summary component.
func NewSummary(data SummaryData) Summary {
	return Summary{data: data}
}

// View renders the summary.
func (s Summary) View() string {
	preset := s.data.Preset
	if preset == "" {
		preset = "custom"
	}

	lines := []string{
		fmt.Sprintf("Preset: %s", preset),
		fmt.Sprintf("Tab: %s (%d bytes)", s.data.Tab, s.data.Bytes),
	}
	if s.data.Err != "" {
		lines = append(lines, "✗ "+s.data.Err)
	} else {
		lines = append(lines, "✓ up to date")
	}

	return strings.Join(lines, "\n")
}
