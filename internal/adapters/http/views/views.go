// Package views renders the portfolio page from embedded html/template files
// and serves the embedded CSS and JavaScript.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"

	"github.com/jsamuelsen/portfolio/internal/app"
	"github.com/jsamuelsen/portfolio/internal/scroll"
)

// Template names.
const (
	PageTemplate        = "page"
	SectionTemplate     = "section"
	ContactFormTemplate = "contact-form"
	NavLinkTemplate     = "nav-link"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Renderer executes the page templates.
type Renderer struct {
	tmpl *template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	tmpl, err := template.New("portfolio").Funcs(funcs()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	return &Renderer{tmpl: tmpl}, nil
}

// Template returns the parsed template set, for gin's HTML renderer.
func (r *Renderer) Template() *template.Template {
	return r.tmpl
}

// Page writes the full page.
func (r *Renderer) Page(w io.Writer, v app.PageView) error {
	return r.tmpl.ExecuteTemplate(w, PageTemplate, v)
}

// Section writes one section fragment.
func (r *Renderer) Section(w io.Writer, v app.SectionView) error {
	return r.tmpl.ExecuteTemplate(w, SectionTemplate, v)
}

// Static returns the embedded assets rooted at the static directory.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err) // the directory is embedded above
	}

	return sub
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"width":       barWidth,
		"headerStyle": headerStyle,
		"fieldError":  fieldError,
		"href":        href,
	}
}

// barWidth renders a skill level as a CSS width, clamped to 0..100.
func barWidth(level int) template.CSS {
	level = min(max(level, 0), 100)
	return template.CSS(fmt.Sprintf("width: %d%%", level)) //nolint:gosec // integer only
}

// headerStyle renders the header's server-computed background and blur.
func headerStyle(h scroll.Header) template.CSS {
	return template.CSS(fmt.Sprintf( //nolint:gosec // values are computed, not user input
		"background-color: %s; backdrop-filter: blur(%gpx)", h.Background, h.Blur))
}

func fieldError(errs map[string]string, field string) string {
	return errs[field]
}

// href trusts a content link. Content is operator-supplied and carries
// tel: and maps links that html/template would otherwise replace.
func href(u string) template.URL {
	return template.URL(u) //nolint:gosec // content file is trusted
}
