// Package studio is the interactive terminal designer: a control list on
// the left, a painted preview and the generated code on the right.
package studio

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/glaze/internal/clipboard"
	"github.com/alexisbeaulieu97/glaze/internal/logger"
	"github.com/alexisbeaulieu97/glaze/internal/params"
	"github.com/alexisbeaulieu97/glaze/internal/preview"
	"github.com/alexisbeaulieu97/glaze/internal/session"
	"github.com/alexisbeaulieu97/glaze/internal/tui/components"
)

const (
	minWidth    = 80
	minHeight   = 24
	sliderWidth = 18
)

// Model is the studio state. The controller is shared by pointer; every
// mutation happens inside Update.
type Model struct {
	ctrl      *session.Controller
	surface   *preview.Terminal
	clipboard clipboard.Writer
	log       *logger.Logger

	// UI state
	viewMode ViewMode
	cursor   int
	input    textinput.Model
	code     viewport.Model
	slider   components.Slider

	// Feedback
	ack       string
	ackSeq    int
	copying   bool
	showError bool
	errorMsg  string

	// Dimensions
	width  int
	height int
}

// Options configures a studio session.
type Options struct {
	Initial   params.Set
	Preset    string
	Clipboard clipboard.Writer
	Logger    *logger.Logger
}

// NewModel builds the session controller and the studio around it.
func NewModel(opts Options) (Model, error) {
	surface := preview.NewTerminal()
	ctrl, err := session.New(opts.Initial, session.Options{
		Surface:   surface,
		Clipboard: opts.Clipboard,
		Logger:    opts.Logger,
	})
	if err != nil {
		return Model{}, err
	}
	if opts.Preset != "" {
		if err := ctrl.ApplyPreset(opts.Preset); err != nil {
			return Model{}, err
		}
	}

	input := textinput.New()
	input.Prompt = "› "
	input.CharLimit = 32

	m := Model{
		ctrl:      ctrl,
		surface:   surface,
		clipboard: opts.Clipboard,
		log:       opts.Logger.Component("studio"),
		viewMode:  ViewEditor,
		input:     input,
		code:      viewport.New(40, 10),
		slider:    components.NewSlider(sliderWidth),
		width:     minWidth,
		height:    minHeight,
	}
	m.resize()
	m.refreshCode()
	return m, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Controller exposes the session for callers that persist or export after
// the program exits.
func (m Model) Controller() *session.Controller {
	return m.ctrl
}

// Cursor returns the selected control index.
func (m Model) Cursor() int {
	return m.cursor
}

// ViewMode returns the current view mode
func (m Model) ViewMode() ViewMode {
	return m.viewMode
}

// selectedField returns the spec under the cursor.
func (m Model) selectedField() params.FieldSpec {
	fields := params.Fields()
	return fields[m.cursor]
}

// MoveCursorUp moves cursor up with wrapping
func (m *Model) MoveCursorUp() {
	n := len(params.Fields())
	m.cursor = (m.cursor - 1 + n) % n
}

// MoveCursorDown moves cursor down with wrapping
func (m *Model) MoveCursorDown() {
	n := len(params.Fields())
	m.cursor = (m.cursor + 1) % n
}

// resize lays the code viewport out in the right-hand column.
func (m *Model) resize() {
	right := max(20, m.width-leftColumnWidth-4)
	previewHeight := max(7, (m.height-6)/2)
	m.code.Width = right
	m.code.Height = max(3, m.height-previewHeight-8)
}

// refreshCode reloads the viewport from the active buffer.
func (m *Model) refreshCode() {
	_, text := m.ctrl.ExportText()
	m.code.SetContent(text)
}

// syncError mirrors the controller's error into the banner.
func (m *Model) syncError() {
	if err := m.ctrl.Err(); err != nil {
		m.showError = true
		m.errorMsg = err.Error()
		return
	}
	m.showError = false
	m.errorMsg = ""
}
