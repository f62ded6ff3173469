// Package render turns region data into HTML fragments.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	HeaderDropdown      = "header_dropdown"
	HeaderDropdownItems = "header_dropdown_recursive"
	FooterCustomContent = "footer_custom_content"
	BlockRegions        = "block_regions"
	CompletionFooter    = "completion_footer"
	ActivityNavigation  = "activity_navigation"
)

// Renderer executes the embedded templates. It is safe for concurrent use.
type Renderer struct {
	tmpl *template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	tmpl, err := template.New("theme").Funcs(template.FuncMap{
		// Values passed here were sanitised by the settings formatter.
		"safeHTML": func(s string) template.HTML { return template.HTML(s) },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render executes the named template with data.
func (r *Renderer) Render(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}
