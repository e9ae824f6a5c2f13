package view

import (
	"fmt"
	"html/template"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/multitemplate"
)

// funcMap holds the helpers the page templates use for date fields.
var funcMap = template.FuncMap{
	// formatDate renders a date for display (listing page).
	"formatDate": func(t time.Time) string {
		return t.Format("02-01-2006")
	},
	// dateValue renders a date for an <input type="date"> value.
	"dateValue": func(t time.Time) string {
		return t.Format("2006-01-02")
	},
}

// NewRenderer composes every page template under <dir>/pages with the
// shared layout, registering each page under its base name. Handlers
// render with c.HTML(status, "<page>", data).
func NewRenderer(dir string) (multitemplate.Renderer, error) {
	layout := filepath.Join(dir, "layouts", "main.html")

	pages, err := filepath.Glob(filepath.Join(dir, "pages", "*.html"))
	if err != nil {
		return nil, fmt.Errorf("glob pages: %w", err)
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("no page templates under %s", dir)
	}

	r := multitemplate.NewRenderer()
	for _, page := range pages {
		name := strings.TrimSuffix(filepath.Base(page), ".html")
		r.AddFromFilesFuncs(name, funcMap, layout, page)
	}
	return r, nil
}
