// Package view renders the server-side HTML pages from an embedded template
// set. Rendered markdown is the only template.HTML value that ever reaches a
// template; everything else goes through html/template's auto-escaping.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageNames = []string{
	"landing", "dashboard", "login", "signup", "post", "post_form", "error",
}

// Renderer holds the parsed page templates.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses the embedded templates. Each page is parsed together with the
// shared layout so pages can only reach the blocks the layout exposes.
func New() (*Renderer, error) {
	funcs := template.FuncMap{
		"formatDate": func(t time.Time) string {
			return t.Format("January 2, 2006")
		},
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.New("layout.html").Funcs(funcs).ParseFS(
			templatesFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	return &Renderer{pages: pages}, nil
}

// Render writes the named page with the given status. Template execution
// errors are logged, not surfaced; by that point the status line is already
// on the wire.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data any) {
	tmpl, ok := r.pages[page]
	if !ok {
		slog.Error("unknown template page", "page", page)
		http.Error(w, "Something went wrong. Please try again.", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "layout.html", data); err != nil {
		slog.Error("execute template", "page", page, "error", err)
	}
}
