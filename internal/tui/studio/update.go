package studio

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/glaze/internal/artifact"
	"github.com/alexisbeaulieu97/glaze/internal/preset"
)

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

		if m.width < minWidth || m.height < minHeight {
			m.showError = true
			m.errorMsg = fmt.Sprintf("Terminal too small (%dx%d). Minimum size: %dx%d",
				m.width, m.height, minWidth, minHeight)
		} else if m.showError && strings.HasPrefix(m.errorMsg, "Terminal too small") {
			m.syncError()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case CopiedMsg:
		m.copying = false
		m.ackSeq++
		m.ack = fmt.Sprintf("Copied! (%s, %d bytes)", msg.Tab.Label(), msg.Bytes)
		m.log.WithFields(map[string]any{"tab": string(msg.Tab), "bytes": msg.Bytes}).Info("copied to clipboard")
		return m, clearAckCmd(m.ackSeq)

	case CopyFailedMsg:
		m.copying = false
		m.ack = ""
		m.showError = true
		m.errorMsg = fmt.Sprintf("Copy failed: %s", msg.Error.Error())
		m.log.Error(msg.Error, "copy failed")
		return m, nil

	case ClearAckMsg:
		if msg.Seq == m.ackSeq {
			m.ack = ""
		}
		return m, nil

	case ErrorMsg:
		m.showError = true
		m.errorMsg = msg.Message
		return m, nil

	case ClearErrorMsg:
		m.showError = false
		m.errorMsg = ""
		return m, nil
	}

	if m.viewMode == ViewInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKeyPress handles keyboard input based on current view mode
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.viewMode {
	case ViewEditor:
		return m.handleEditorKeys(msg)
	case ViewInput:
		return m.handleInputKeys(msg)
	case ViewHelp:
		return m.handleHelpKeys(msg)
	default:
		return m, nil
	}
}

// handleEditorKeys handles keys in the main editor view
func (m Model) handleEditorKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "x", "esc":
		m.showError = false
		m.errorMsg = ""
		m.ctrl.ClearError()
		return m, nil

	case "up":
		m.MoveCursorUp()
		return m, nil

	case "down":
		m.MoveCursorDown()
		return m, nil

	case "left", "right", "shift+left", "shift+right":
		steps := 1
		if strings.HasPrefix(key, "shift+") {
			steps = 5
		}
		if strings.HasSuffix(key, "left") {
			steps = -steps
		}
		m.applyResult(m.ctrl.Nudge(m.selectedField().Name, steps))
		return m, nil

	case "enter":
		field := m.selectedField()
		current, _ := m.ctrl.Params().Get(field.Name)
		m.input.SetValue(current)
		m.input.CursorEnd()
		m.viewMode = ViewInput
		return m, m.input.Focus()

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		names := preset.Names()
		index := int(key[0] - '1')
		if index < len(names) {
			m.applyResult(m.ctrl.ApplyPreset(names[index]))
		}
		return m, nil

	case "p":
		m.applyResult(m.ctrl.ApplyPreset(preset.Next(m.ctrl.Preset())))
		return m, nil

	case "h", "c", "j":
		tabs := map[string]artifact.Kind{"h": artifact.KindMarkup, "c": artifact.KindStylesheet, "j": artifact.KindBehavior}
		return m.selectTab(tabs[key])

	case "tab":
		return m.selectTab(nextKind(m.ctrl.ActiveTab()))

	case "pgdown":
		m.code.LineDown(max(1, m.code.Height/2))
		return m, nil

	case "pgup":
		m.code.LineUp(max(1, m.code.Height/2))
		return m, nil

	case "y":
		if m.copying {
			return m, nil
		}
		if m.clipboard == nil {
			m.showError = true
			m.errorMsg = "Copy failed: no clipboard configured"
			return m, nil
		}
		tab, text := m.ctrl.ExportText()
		m.copying = true
		return m, copyCmd(m.clipboard, tab, text)

	case "?":
		m.viewMode = ViewHelp
		return m, nil
	}

	return m, nil
}

// handleInputKeys handles keys while a value is being typed
func (m Model) handleInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.input.Blur()
		m.viewMode = ViewEditor
		return m, nil

	case "enter":
		value := m.input.Value()
		m.input.Blur()
		m.viewMode = ViewEditor
		m.applyResult(m.ctrl.SetField(m.selectedField().Name, value))
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleHelpKeys handles keys in help view
func (m Model) handleHelpKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "?", "esc", "q":
		m.viewMode = ViewEditor
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) selectTab(kind artifact.Kind) (tea.Model, tea.Cmd) {
	if err := m.ctrl.SelectTab(string(kind)); err != nil {
		m.showError = true
		m.errorMsg = err.Error()
		return m, nil
	}
	m.refreshCode()
	m.code.GotoTop()
	return m, nil
}

// applyResult refreshes derived state after a controller call. A failed
// regeneration keeps the previous code on screen and shows the error.
func (m *Model) applyResult(err error) {
	m.refreshCode()
	if err != nil {
		m.showError = true
		m.errorMsg = err.Error()
		return
	}
	m.syncError()
}

func nextKind(current artifact.Kind) artifact.Kind {
	kinds := artifact.Kinds()
	for i, k := range kinds {
		if k == current {
			return kinds[(i+1)%len(kinds)]
		}
	}
	return kinds[0]
}
