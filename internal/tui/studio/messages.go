package studio

import (
	"github.com/alexisbeaulieu97/glaze/internal/artifact"
)

// ViewMode determines which screen to render
type ViewMode int

const (
	ViewEditor ViewMode = iota
	ViewInput
	ViewHelp
)

// CopiedMsg reports that the active buffer reached the clipboard.
type CopiedMsg struct {
	Tab   artifact.Kind
	Bytes int
}

// CopyFailedMsg reports a rejected clipboard write.
type CopyFailedMsg struct {
	Tab   artifact.Kind
	Error error
}

// ClearAckMsg hides the copy acknowledgement. Seq guards against clearing
// a newer acknowledgement.
type ClearAckMsg struct {
	Seq int
}

// ErrorMsg shows an error banner.
type ErrorMsg struct {
	Message string
}

// ClearErrorMsg clears the error banner
type ClearErrorMsg struct{}
