package bookbinder

import (
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed templates/*.tex
var templateFS embed.FS

// Templates are parsed once at startup. The << >> delimiters keep the
// template actions out of LaTeX's brace soup, and missingkey=error makes
// an unsupplied variable a hard failure instead of a blank in the PDF.
var templates = template.Must(template.New("bookbinder").
	Delims("<<", ">>").
	Option("missingkey=error").
	ParseFS(templateFS, "templates/*.tex"))

// Render fills the named template with vars and returns the LaTeX text.
func Render(name string, vars map[string]any) (string, error) {
	tmpl := templates.Lookup(name)
	if tmpl == nil {
		return "", fmt.Errorf("unknown template %s", name)
	}
	var buf strings.Builder
	if err := tmpl.Execute(&buf, vars); err != nil {
		return "", fmt.Errorf("template %s: %w: %v", name, ErrTemplateVariable, err)
	}
	return buf.String(), nil
}
