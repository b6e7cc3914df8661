package errors

import (
	"fmt"
	"strings"
)

// ParseError represents a YAML parsing failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures parameter or settings validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// DecodeError reports a colour field whose value is not 6-digit hex RGB.
type DecodeError struct {
	Field string
	Value string
	Err   error
}

// NewDecodeError constructs a DecodeError for the named field.
func NewDecodeError(field, value string, err error) error {
	return &DecodeError{Field: field, Value: value, Err: err}
}

func (e *DecodeError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("decode error: %s: %q is not a 6-digit hex colour", e.Field, e.Value)
	}
	return fmt.Sprintf("decode error: %q is not a 6-digit hex colour", e.Value)
}

// Unwrap exposes the underlying error.
func (e *DecodeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// PresetLookupError indicates a preset name that is not in the catalog.
type PresetLookupError struct {
	Name  string
	Known []string
}

// NewPresetLookupError constructs a PresetLookupError.
func NewPresetLookupError(name string, known []string) error {
	return &PresetLookupError{Name: name, Known: append([]string(nil), known...)}
}

func (e *PresetLookupError) Error() string {
	if e == nil {
		return ""
	}
	if len(e.Known) == 0 {
		return fmt.Sprintf("unknown preset %q", e.Name)
	}
	return fmt.Sprintf("unknown preset %q (available: %s)", e.Name, strings.Join(e.Known, ", "))
}

// ClipboardError wraps a rejected or unavailable clipboard write.
type ClipboardError struct {
	Backend string
	Err     error
}

// NewClipboardError constructs a ClipboardError for the given backend.
func NewClipboardError(backend string, err error) error {
	return &ClipboardError{Backend: backend, Err: err}
}

func (e *ClipboardError) Error() string {
	if e == nil {
		return ""
	}
	if e.Backend != "" {
		return fmt.Sprintf("clipboard error [%s]: %v", e.Backend, e.Err)
	}
	return fmt.Sprintf("clipboard error: %v", e.Err)
}

// Unwrap exposes the underlying error.
func (e *ClipboardError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
