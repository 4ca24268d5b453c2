// Package views holds the storefront HTML templates.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

//go:embed layout.html news/*.html shared/*.html
var files embed.FS

// Renderer executes the named page templates.
type Renderer struct {
	templates map[string]*template.Template
}

var (
	bodyPolicy    = bluemonday.UGCPolicy()
	commentPolicy = bluemonday.StrictPolicy()
)

// Funcs are the helpers available to every template.
var Funcs = template.FuncMap{
	"sanitize":    Sanitize,
	"commentText": CommentText,
	"date":        FormatDate,
	"add":         func(a, b int) int { return a + b },
}

var pages = map[string][]string{
	"home": {"layout.html", "news/home.html"},
	"list": {"layout.html", "news/list.html"},
	"show": {"layout.html", "news/show.html", "shared/comments.html"},
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	r := &Renderer{templates: make(map[string]*template.Template, len(pages))}
	for name, paths := range pages {
		t, err := template.New(name).Funcs(Funcs).ParseFS(files, paths...)
		if err != nil {
			return nil, fmt.Errorf("parse %s templates: %w", name, err)
		}
		r.templates[name] = t
	}
	return r, nil
}

// MustNew is like New but panics on error.
func MustNew() *Renderer {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

// Render writes page name with data to w.
func (r *Renderer) Render(w io.Writer, name string, data any) error {
	t, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

// Sanitize strips unsafe markup from news bodies written in the admin area.
func Sanitize(html string) template.HTML {
	return template.HTML(bodyPolicy.Sanitize(html))
}

// CommentText removes all markup from visitor comments and keeps their line breaks.
func CommentText(text string) template.HTML {
	clean := commentPolicy.Sanitize(text)
	clean = strings.ReplaceAll(clean, "\r\n", "\n")
	return template.HTML(strings.ReplaceAll(clean, "\n", "<br />"))
}

// FormatDate prints a local time the way the storefront shows dates.
func FormatDate(t time.Time) string {
	return t.Format("January 2, 2006 3:04 PM")
}
