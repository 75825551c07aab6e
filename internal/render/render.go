// Copyright (c) 2026 Kodingin Dev Studio <hi@kodingin.dev>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the public site and
// the admin interface. Two template sets are parsed from the embedded
// filesystem: public pages share the public base layout, admin pages share
// the admin base layout, and a few auth pages render standalone.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/ghevaa/kodingin/internal/middleware"
	"github.com/ghevaa/kodingin/internal/session"
)

//go:embed templates/admin/*.html templates/public/*.html
var templateFS embed.FS

// PageData holds all data passed to templates.
type PageData struct {
	Title     string         // Page title for the <title> tag
	Section   string         // Active nav section (e.g. "dashboard", "posts")
	Session   *session.Data  // Current user session (nil if unauthenticated)
	CSRFToken string         // CSRF token for form hidden fields
	Error     string         // Inline error message shown above the form
	Data      map[string]any // Page-specific data
}

// Renderer handles template parsing and execution.
type Renderer struct {
	templates map[string]*template.Template
}

// standaloneTemplates render as full HTML pages without a base layout.
var standaloneTemplates = map[string]bool{
	"login":      true,
	"2fa_setup":  true,
	"2fa_verify": true,
}

// Funcs is the template function map, exported so tests can exercise the
// helpers directly.
var Funcs = template.FuncMap{
	// deref safely dereferences a string pointer for use in templates.
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
	// formatDate renders a timestamp the way the site displays dates.
	"formatDate": func(t time.Time) string {
		return t.Format("January 2, 2006")
	},
	// truncate shortens a string to n runes, appending an ellipsis.
	"truncate": func(s string, n int) string {
		runes := []rune(s)
		if len(runes) <= n {
			return s
		}
		return strings.TrimSpace(string(runes[:n])) + "…"
	},
	// activeClass marks the current nav section.
	"activeClass": func(current, target string) string {
		if current == target {
			return "active"
		}
		return ""
	},
	// safeHTML marks pre-rendered HTML (markdown output) as trusted.
	"safeHTML": func(s string) template.HTML {
		return template.HTML(s)
	},
}

// New creates a Renderer by parsing all templates from the embedded
// filesystem. Each page template is paired with its set's base layout;
// standalone auth pages are parsed on their own.
func New() (*Renderer, error) {
	r := &Renderer{templates: make(map[string]*template.Template)}

	for _, set := range []string{"admin", "public"} {
		entries, err := templateFS.ReadDir("templates/" + set)
		if err != nil {
			return nil, fmt.Errorf("read embedded templates: %w", err)
		}

		for _, e := range entries {
			name := e.Name()
			if e.IsDir() || name == "base.html" {
				continue
			}
			tmplName := strings.TrimSuffix(name, ".html")

			var tmpl *template.Template
			var parseErr error
			if standaloneTemplates[tmplName] {
				tmpl, parseErr = template.New(name).Funcs(Funcs).ParseFS(
					templateFS, "templates/"+set+"/"+name,
				)
			} else {
				tmpl, parseErr = template.New("base.html").Funcs(Funcs).ParseFS(
					templateFS, "templates/"+set+"/base.html", "templates/"+set+"/"+name,
				)
			}
			if parseErr != nil {
				return nil, fmt.Errorf("parse template %s/%s: %w", set, name, parseErr)
			}

			r.templates[tmplName] = tmpl
		}
	}

	return r, nil
}

// Render executes the named template and returns the resulting HTML.
// Handlers use this form when the output is also stored in the view cache.
func (rn *Renderer) Render(name string, data *PageData) ([]byte, error) {
	tmpl, ok := rn.templates[name]
	if !ok {
		return nil, fmt.Errorf("template %q not found", name)
	}

	execName := "base.html"
	if standaloneTemplates[name] {
		execName = name + ".html"
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, execName, data); err != nil {
		return nil, fmt.Errorf("execute template %q: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Page renders the named template straight to the response, filling in the
// CSRF token and session from the request context when not already set.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, name string, data *PageData) {
	if data.CSRFToken == "" {
		data.CSRFToken = middleware.GetCSRFToken(r)
	}
	if data.Session == nil {
		data.Session = middleware.SessionFromCtx(r.Context())
	}

	html, err := rn.Render(name, data)
	if err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
}

// NotFound renders the public 404 page.
func (rn *Renderer) NotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)

	html, err := rn.Render("not_found", &PageData{Title: "Page not found"})
	if err != nil {
		fmt.Fprintln(w, "404 page not found")
		return
	}
	w.Write(html)
}
