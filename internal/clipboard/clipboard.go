// Package clipboard copies exported text to the user's clipboard, either
// through the host clipboard or through an OSC 52 terminal escape sequence.
package clipboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"

	glazeerrors "github.com/alexisbeaulieu97/glaze/pkg/errors"
)

// Mode selects a backend.
type Mode string

const (
	ModeAuto   Mode = "auto"
	ModeSystem Mode = "system"
	ModeOSC52  Mode = "osc52"
)

// ErrUnsupported is returned by System when no host clipboard utility exists.
var ErrUnsupported = errors.New("no system clipboard available")

// Writer places text on a clipboard.
type Writer interface {
	Write(ctx context.Context, text string) error
}

// System writes through the host clipboard (pbcopy, xclip, wl-copy, ...).
type System struct{}

// Write implements Writer.
func (System) Write(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return glazeerrors.NewClipboardError(string(ModeSystem), err)
	}
	if clipboard.Unsupported {
		return glazeerrors.NewClipboardError(string(ModeSystem), ErrUnsupported)
	}
	if err := clipboard.WriteAll(text); err != nil {
		return glazeerrors.NewClipboardError(string(ModeSystem), err)
	}
	return nil
}

// OSC52 emits the escape sequence that asks the terminal to set its
// clipboard. Inside tmux or screen the sequence is wrapped accordingly.
type OSC52 struct {
	Out io.Writer

	mu sync.Mutex
}

// NewOSC52 writes sequences to out.
func NewOSC52(out io.Writer) *OSC52 {
	return &OSC52{Out: out}
}

// Write implements Writer.
func (o *OSC52) Write(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return glazeerrors.NewClipboardError(string(ModeOSC52), err)
	}
	if o.Out == nil {
		return glazeerrors.NewClipboardError(string(ModeOSC52), errors.New("no terminal to write to"))
	}

	seq := osc52.New(text)
	switch {
	case os.Getenv("TMUX") != "":
		seq = seq.Tmux()
	case strings.HasPrefix(os.Getenv("TERM"), "screen"):
		seq = seq.Screen()
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if _, err := seq.WriteTo(o.Out); err != nil {
		return glazeerrors.NewClipboardError(string(ModeOSC52), err)
	}
	return nil
}

// Fallback tries each writer in order and stops at the first success.
type Fallback []Writer

// Write implements Writer. When every backend fails the last error is returned.
func (f Fallback) Write(ctx context.Context, text string) error {
	if len(f) == 0 {
		return glazeerrors.NewClipboardError("", errors.New("no clipboard backends configured"))
	}

	var lastErr error
	for _, w := range f {
		if err := ctx.Err(); err != nil {
			return glazeerrors.NewClipboardError("", err)
		}
		if err := w.Write(ctx, text); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}

// New returns the writer for mode. out is the terminal used for OSC 52.
func New(mode Mode, out io.Writer) (Writer, error) {
	switch mode {
	case ModeSystem:
		return System{}, nil
	case ModeOSC52:
		return NewOSC52(out), nil
	case ModeAuto, "":
		return Fallback{System{}, NewOSC52(out)}, nil
	}
	return nil, fmt.Errorf("unknown clipboard mode %q", mode)
}
