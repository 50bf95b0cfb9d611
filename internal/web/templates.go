// Package web renders the embedded HTML views of the front end.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/sycelim/delivery-web/internal/session"
	"github.com/sycelim/delivery-web/internal/view"
)

//go:embed templates/*.html
var files embed.FS

// pages lists the renderable views; each is parsed together with the layout.
var pages = []string{"home", "login", "register", "deliveries"}

// Renderer executes the embedded page templates.
type Renderer struct {
	templates map[string]*template.Template
}

// NewRenderer parses all embedded templates up front so a broken template
// fails at startup, not on the first request.
func NewRenderer() (*Renderer, error) {
	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		t, err := template.ParseFS(files, "templates/layout.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		templates[page] = t
	}
	return &Renderer{templates: templates}, nil
}

// Render executes the named page template with the given data.
func (r *Renderer) Render(w io.Writer, page string, data any) error {
	t, ok := r.templates[page]
	if !ok {
		return fmt.Errorf("unknown template %q", page)
	}
	if err := t.ExecuteTemplate(w, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	return nil
}

// HomeData feeds the public landing page.
type HomeData struct {
	Title string
	Flash *session.Flash
}

// AuthData feeds the login and register forms. Errors is keyed by field name
// and every invalid field carries its message simultaneously.
type AuthData struct {
	Title  string
	Flash  *session.Flash
	CSRF   string
	Values map[string]string
	Errors map[string]string
}

// TableData feeds the admin and livreur delivery pages.
type TableData struct {
	Title string
	Flash *session.Flash
	CSRF  string
	Table view.Table
	// BasePath prefixes the page's form actions ("/admin" or "/livreur").
	BasePath string
	// WithCreateForm renders the livreur creation form.
	WithCreateForm bool
}
