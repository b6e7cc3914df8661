// Package artifact turns a parameter set into the exportable panel bundle:
// an HTML skeleton, a stylesheet carrying every visual parameter, and a
// static behaviour script.
package artifact

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/alexisbeaulieu97/glaze/internal/params"
	glazeerrors "github.com/alexisbeaulieu97/glaze/pkg/errors"
)

//go:embed templates/*.tmpl
var templates embed.FS

var tmpl = template.Must(template.ParseFS(templates, "templates/*.tmpl"))

// Kind names one of the three generated buffers.
type Kind string

const (
	KindMarkup     Kind = "html"
	KindStylesheet Kind = "css"
	KindBehavior   Kind = "js"
)

// Kinds lists the buffers in tab order.
func Kinds() []Kind {
	return []Kind{KindMarkup, KindStylesheet, KindBehavior}
}

// ParseKind accepts a tab name ("html", "css", "js"), case-insensitively.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case KindMarkup, KindStylesheet, KindBehavior:
		return k, nil
	}
	return "", glazeerrors.NewValidationError("tab", fmt.Sprintf("unknown tab %q (want html, css or js)", s), nil)
}

// Filename returns the file the buffer is written to on export.
func (k Kind) Filename() string {
	switch k {
	case KindMarkup:
		return "index.html"
	case KindStylesheet:
		return "styles.css"
	case KindBehavior:
		return "script.js"
	}
	return ""
}

// Label is the human readable tab title.
func (k Kind) Label() string {
	switch k {
	case KindMarkup:
		return "HTML"
	case KindStylesheet:
		return "CSS"
	case KindBehavior:
		return "JS"
	}
	return string(k)
}

// Bundle is one complete generation result.
type Bundle struct {
	Style      StyleDescriptor `json:"style"`
	Markup     string          `json:"html"`
	Stylesheet string          `json:"css"`
	Behavior   string          `json:"js"`
}

// Text returns the buffer for kind.
func (b Bundle) Text(k Kind) string {
	switch k {
	case KindMarkup:
		return b.Markup
	case KindStylesheet:
		return b.Stylesheet
	case KindBehavior:
		return b.Behavior
	}
	return ""
}

// Files maps export filenames to their contents.
func (b Bundle) Files() map[string]string {
	files := make(map[string]string, 3)
	for _, k := range Kinds() {
		files[k.Filename()] = b.Text(k)
	}
	return files
}

// Generate produces a bundle for p. Colour decode failures are reported as
// DecodeError and range failures as ValidationError; no partial bundle is
// returned in either case.
func Generate(p params.Set) (Bundle, error) {
	style, err := Describe(p)
	if err != nil {
		return Bundle{}, err
	}

	data := struct{ Style StyleDescriptor }{Style: style}

	markup, err := render("index.html.tmpl", data)
	if err != nil {
		return Bundle{}, err
	}
	stylesheet, err := render("styles.css.tmpl", data)
	if err != nil {
		return Bundle{}, err
	}
	behavior, err := render("script.js.tmpl", data)
	if err != nil {
		return Bundle{}, err
	}

	return Bundle{
		Style:      style,
		Markup:     markup,
		Stylesheet: stylesheet,
		Behavior:   behavior,
	}, nil
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

func newDecodeError(field, value string, err error) error {
	return glazeerrors.NewDecodeError(field, value, err)
}
