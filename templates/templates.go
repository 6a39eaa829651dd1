// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package templates holds the embedded HTML pages and renders them.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"path"
	"time"

	"github.com/dustin/go-humanize"
)

//go:embed polls/*.html maps/*.html
var files embed.FS

// Page names
const (
	PollsIndex = "polls/index.html"
	MapsIndex  = "maps/index.html"
)

var funcs = template.FuncMap{
	"ago": humanize.Time,
	"km": func(v float64) string {
		return humanize.FormatFloat("#,###.##", v) + " km"
	},
	"date": func(t time.Time) string {
		return t.UTC().Format("Jan 2, 2006 15:04 UTC")
	},
}

type Renderer struct {
	pages map[string]*template.Template
}

// New parses every embedded page. It fails on the first bad template.
func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, name := range []string{PollsIndex, MapsIndex} {
		t, err := template.New(path.Base(name)).Funcs(funcs).ParseFS(files, name)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Must is New for package-level setup and tests.
func Must() *Renderer {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

// Render executes the named page into w. Output is buffered so a failing
// template never leaves a half-written response.
func (r *Renderer) Render(w io.Writer, name string, data any) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
