package render

import (
	"embed"
	"html/template"
	"strings"

	"github.com/careerforge/resume-builder/internal/types"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// templateStyle maps a template name to its cosmetic settings. Unknown names
// fall back to the classic style.
type templateStyle struct {
	FontFamily  string
	AccentColor string
}

var templateStyles = map[string]templateStyle{
	"Classic Professional": {FontFamily: `Georgia, "Times New Roman", serif`, AccentColor: "#1a355e"},
	"Modern Minimal":       {FontFamily: `"Helvetica Neue", Arial, sans-serif`, AccentColor: "#111111"},
	"Bold Accent":          {FontFamily: `"Helvetica Neue", Arial, sans-serif`, AccentColor: "#8c2f39"},
}

// TemplateNames lists the selectable template names.
func TemplateNames() []string {
	return []string{"Classic Professional", "Modern Minimal", "Bold Accent"}
}

type templateData struct {
	Document    types.ResumeDocument
	FontFamily  template.CSS
	AccentColor template.CSS
}

var resumeTemplate = template.Must(
	template.New("resume.html.tmpl").
		Funcs(template.FuncMap{"join": strings.Join}).
		ParseFS(templateFS, "templates/*.tmpl"),
)

// RenderHTML renders the document into a standalone HTML page using the
// named cosmetic template.
func RenderHTML(doc types.ResumeDocument, templateName string) (string, error) {
	style, ok := templateStyles[templateName]
	if !ok {
		style = templateStyles["Classic Professional"]
	}

	data := templateData{
		Document:    doc,
		FontFamily:  template.CSS(style.FontFamily),
		AccentColor: template.CSS(style.AccentColor),
	}

	var sb strings.Builder
	if err := resumeTemplate.Execute(&sb, data); err != nil {
		return "", &TemplateError{Message: "failed to execute resume template", Cause: err}
	}
	return sb.String(), nil
}
