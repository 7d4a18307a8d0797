// Package render turns handler data into HTML pages. Templates and static
// assets are embedded in the binary.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/utils"
)

//go:embed templates static
var files embed.FS

// Static exposes the embedded assets rooted at the static directory.
func Static() fs.FS {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// View is what every page template receives.
type View struct {
	Title   string
	Flashes []utils.Flash
	Data    any
	Form    any
	Errors  error
}

type fieldErrors interface {
	For(field string) string
}

// ErrorFor returns the validation message recorded for a form field.
func (v View) ErrorFor(field string) string {
	if fe, ok := v.Errors.(fieldErrors); ok {
		return fe.For(field)
	}
	return ""
}

// Renderer implements echo.Renderer. Each page is parsed together with the
// layout and the partials so pages can override the layout blocks.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses every embedded page. Page names are their paths below
// templates/pages, e.g. "venues.html" or "errors/404.html".
func New() (*Renderer, error) {
	base, err := template.New("layout.html").Funcs(Funcs()).
		ParseFS(files, "templates/layout.html", "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	r := &Renderer{pages: map[string]*template.Template{}}
	err = fs.WalkDir(files, "templates/pages", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || path.Ext(p) != ".html" {
			return err
		}
		t, err := base.Clone()
		if err != nil {
			return err
		}
		if _, err := t.ParseFS(files, p); err != nil {
			return fmt.Errorf("parse %s: %w", p, err)
		}
		r.pages[strings.TrimPrefix(p, "templates/pages/")] = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Render executes the named page into w. Output is buffered so a failing
// template never leaves half a page behind.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("render: unknown page %q", name)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// Has reports whether a page exists.
func (r *Renderer) Has(name string) bool {
	_, ok := r.pages[name]
	return ok
}
