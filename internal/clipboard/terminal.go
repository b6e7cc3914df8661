package clipboard

import (
	"io"
	"os"
	"sync"
)

// Terminal is a tty shared between a UI renderer and OSC52. Each Write holds
// a lock, so a clipboard sequence never lands inside a rendered frame. It
// keeps the embedded file's Fd and Read, so renderers still treat it as a
// terminal.
type Terminal struct {
	*os.File

	mu sync.Mutex
}

// NewTerminal wraps f.
func NewTerminal(f *os.File) *Terminal {
	return &Terminal{File: f}
}

// Write implements io.Writer.
func (t *Terminal) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.File.Write(p)
}

// WriteString implements io.StringWriter.
func (t *Terminal) WriteString(s string) (int, error) {
	return t.Write([]byte(s))
}

// ReadFrom implements io.ReaderFrom.
func (t *Terminal) ReadFrom(r io.Reader) (int64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return io.Copy(t.File, r)
}
