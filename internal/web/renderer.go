package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"path"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/ravison1985/advamolsanap/internal/models"
	"github.com/ravison1985/advamolsanap/internal/report"
)

//go:embed templates
var templateFS embed.FS

// TemplateRenderer is an html/template renderer for echo. Each page is
// parsed into its own clone of the base layout so pages can define the same
// blocks without clashing.
type TemplateRenderer struct {
	templates map[string]*template.Template
}

// NewTemplateRenderer parses the embedded templates. Amounts are shown with
// currencySymbol.
func NewTemplateRenderer(currencySymbol string) (*TemplateRenderer, error) {
	funcs := template.FuncMap{
		"money": func(d decimal.Decimal) string {
			return report.FormatMoney(currencySymbol, d)
		},
		"date": models.DateOnly,
		"orDash": func(s string) string {
			if s == "" {
				return "-"
			}
			return s
		},
	}

	base, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/layouts/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse layouts: %w", err)
	}

	templates := make(map[string]*template.Template)

	pages, err := fs.Glob(templateFS, "templates/pages/*.html")
	if err != nil {
		return nil, err
	}
	for _, page := range pages {
		tmpl, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := tmpl.ParseFS(templateFS, page); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", page, err)
		}
		templates[path.Base(page)] = tmpl
	}

	// Standalone pages such as login do not use the layout.
	standalone, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	for _, page := range standalone {
		name := path.Base(page)
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(templateFS, page)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", page, err)
		}
		templates[name] = tmpl
	}

	return &TemplateRenderer{templates: templates}, nil
}

// Render implements echo.Renderer.
func (t *TemplateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	tmpl, ok := t.templates[name]
	if !ok {
		return echo.NewHTTPError(http.StatusInternalServerError, "template not found: "+name)
	}
	if tmpl.Lookup("base") != nil {
		return tmpl.ExecuteTemplate(w, "base", data)
	}
	return tmpl.Execute(w, data)
}
