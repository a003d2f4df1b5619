package view

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"quizmaster/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Level string // success, danger, info, warning
	Text  string
}

// Page is the envelope every template receives.
type Page struct {
	Title     string
	Flash     *Flash
	Principal *model.Principal
	Data      any
}

// Renderer executes the embedded HTML templates.
type Renderer struct {
	templates *template.Template
}

// New parses all embedded templates.
func New() (*Renderer, error) {
	t, err := template.New("").Funcs(template.FuncMap{
		"date": func(t time.Time) string {
			return t.Format("2006-01-02")
		},
		"datetime": func(t time.Time) string {
			return t.Format("2006-01-02 15:04")
		},
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{templates: t}, nil
}

// Render writes the named template to the response.
func (r *Renderer) Render(w http.ResponseWriter, name string, page Page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := r.templates.ExecuteTemplate(w, name, page); err != nil {
		slog.Error("render error", "template", name, "error", err)
	}
}
