package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	log "github.com/sirupsen/logrus"

	"redblack/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// pageNames are the content templates, each paired with the shared layout
var pageNames = []string{
	"auth", "dashboard", "paywall", "create_game", "play", "wallet", "admin",
}

// Templates holds the parsed page templates
type Templates struct {
	pages map[string]*template.Template
}

// NewTemplates parses the embedded templates. Each page gets its own template
// set so their "content" blocks do not collide.
func NewTemplates() (*Templates, error) {
	funcs := template.FuncMap{
		"money": FormatMoney,
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(
			templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		pages[name] = t
	}

	return &Templates{pages: pages}, nil
}

// Render writes a page to the response. Render errors surface as a 500 rather
// than a half-written page.
func (t *Templates) Render(w http.ResponseWriter, name string, data any) {
	tmpl, ok := t.pages[name]
	if !ok {
		log.WithField("template", name).Error("Unknown template")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		log.WithError(err).WithField("template", name).Error("Failed to render template")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// basePage carries the fields every page needs
type basePage struct {
	User    *models.User
	Flashes []string
	Active  string
}
