// Package session owns the live editing state: the current parameter set,
// the last successful bundle, the active code tab, and the latest error.
package session

import (
	"context"
	"errors"

	"github.com/alexisbeaulieu97/glaze/internal/artifact"
	"github.com/alexisbeaulieu97/glaze/internal/clipboard"
	"github.com/alexisbeaulieu97/glaze/internal/logger"
	"github.com/alexisbeaulieu97/glaze/internal/params"
	"github.com/alexisbeaulieu97/glaze/internal/preset"
	glazeerrors "github.com/alexisbeaulieu97/glaze/pkg/errors"
)

// Surface receives the resolved style after every successful generation.
type Surface interface {
	Apply(style artifact.StyleDescriptor)
}

// Options wires optional collaborators. Nil values are replaced by no-ops.
type Options struct {
	Surface   Surface
	Clipboard clipboard.Writer
	Logger    *logger.Logger
}

// Controller is single-owner; callers sharing one across goroutines must
// serialise access themselves.
type Controller struct {
	params    params.Set
	bundle    artifact.Bundle
	tab       artifact.Kind
	preset    string
	err       error
	surface   Surface
	clipboard clipboard.Writer
	log       *logger.Logger
}

// New generates the initial bundle and pushes it to the surface. An invalid
// initial set is an error.
func New(initial params.Set, opts Options) (*Controller, error) {
	c := &Controller{
		params:    initial,
		tab:       artifact.KindMarkup,
		surface:   opts.Surface,
		clipboard: opts.Clipboard,
		log:       opts.Logger,
	}
	if c.log == nil {
		c.log = logger.Nop()
	}
	c.log = c.log.Component("session")

	bundle, err := artifact.Generate(initial)
	if err != nil {
		return nil, err
	}
	c.commit(bundle)
	return c, nil
}

// Update replaces the parameter set and regenerates. On failure the new set
// is kept, the previous bundle and surface are left alone, and the error is
// both recorded and returned. The set no longer counts as a preset.
func (c *Controller) Update(next params.Set) error {
	c.params = next
	c.preset = ""

	bundle, err := artifact.Generate(next)
	if err != nil {
		c.err = err
		c.log.WithFields(fieldOf(err)).Warn("generation rejected")
		return err
	}

	c.commit(bundle)
	c.log.Debug("bundle regenerated")
	return nil
}

// SetField edits one parameter from raw text and regenerates.
func (c *Controller) SetField(name, raw string) error {
	next, err := c.params.With(name, raw)
	if err != nil {
		c.err = err
		return err
	}
	return c.Update(next)
}

// Nudge moves a numeric parameter by slider steps and regenerates.
func (c *Controller) Nudge(name string, steps int) error {
	next, err := c.params.Nudge(name, steps)
	if err != nil {
		c.err = err
		return err
	}
	if next == c.params {
		return nil
	}
	return c.Update(next)
}

// ApplyPreset overwrites every parameter with the named preset. An unknown
// name leaves all state untouched.
func (c *Controller) ApplyPreset(name string) error {
	p, err := preset.Get(name)
	if err != nil {
		c.log.WithFields(map[string]any{"preset": name}).Warn("unknown preset")
		return err
	}

	if err := c.Update(p.Params); err != nil {
		return err
	}
	c.preset = p.Name
	c.log.WithFields(map[string]any{"preset": p.Name}).Info("preset applied")
	return nil
}

// SelectTab switches the visible code buffer without regenerating.
func (c *Controller) SelectTab(tab string) error {
	k, err := artifact.ParseKind(tab)
	if err != nil {
		return err
	}
	c.tab = k
	return nil
}

// ExportText returns the active tab and the text it shows.
func (c *Controller) ExportText() (artifact.Kind, string) {
	return c.tab, c.bundle.Text(c.tab)
}

// Export copies the active buffer to the clipboard. Failure changes nothing.
func (c *Controller) Export(ctx context.Context) error {
	tab, text := c.ExportText()
	if c.clipboard == nil {
		return glazeerrors.NewClipboardError("", errors.New("clipboard not configured"))
	}
	if err := c.clipboard.Write(ctx, text); err != nil {
		var clipErr *glazeerrors.ClipboardError
		if !errors.As(err, &clipErr) {
			err = glazeerrors.NewClipboardError("", err)
		}
		c.log.Error(err, "copy failed")
		return err
	}
	c.log.WithFields(map[string]any{"tab": string(tab), "bytes": len(text)}).Info("copied to clipboard")
	return nil
}

// ClearError drops the recorded error.
func (c *Controller) ClearError() {
	c.err = nil
}

// Params returns the current set, which may be one that failed to generate.
func (c *Controller) Params() params.Set { return c.params }

// Bundle returns the last successful bundle.
func (c *Controller) Bundle() artifact.Bundle { return c.bundle }

// ActiveTab returns the selected code tab.
func (c *Controller) ActiveTab() artifact.Kind { return c.tab }

// Preset returns the preset the current set came from, or "" once edited.
func (c *Controller) Preset() string { return c.preset }

// Err returns the most recent generation error, or nil.
func (c *Controller) Err() error { return c.err }

func (c *Controller) commit(bundle artifact.Bundle) {
	c.bundle = bundle
	c.err = nil
	if c.surface != nil {
		c.surface.Apply(bundle.Style)
	}
}

func fieldOf(err error) map[string]any {
	var decodeErr *glazeerrors.DecodeError
	if errors.As(err, &decodeErr) {
		return map[string]any{"field": decodeErr.Field, "value": decodeErr.Value}
	}
	var validationErr *glazeerrors.ValidationError
	if errors.As(err, &validationErr) {
		return map[string]any{"field": validationErr.Field}
	}
	return map[string]any{}
}
