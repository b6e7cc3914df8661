package studio

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/glaze/internal/artifact"
	"github.com/alexisbeaulieu97/glaze/internal/clipboard"
)

// ackDuration is how long "Copied!" stays visible.
const ackDuration = 2 * time.Second

// copyTimeout bounds a single clipboard write.
const copyTimeout = 5 * time.Second

// copyCmd writes text captured at key time, so later edits cannot change
// what lands on the clipboard.
func copyCmd(w clipboard.Writer, tab artifact.Kind, text string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), copyTimeout)
		defer cancel()

		if err := w.Write(ctx, text); err != nil {
			return CopyFailedMsg{Tab: tab, Error: err}
		}
		return CopiedMsg{Tab: tab, Bytes: len(text)}
	}
}

// clearAckCmd schedules removal of the copy acknowledgement.
func clearAckCmd(seq int) tea.Cmd {
	return tea.Tick(ackDuration, func(time.Time) tea.Msg {
		return ClearAckMsg{Seq: seq}
	})
}
