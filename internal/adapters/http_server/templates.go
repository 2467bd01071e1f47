package httpserver

import (
	"embed"
	"html/template"
	"strings"
)

//go:embed templates/*.html
var templatesFS embed.FS

func ParseTemplates() (*template.Template, error) {
	funcs := template.FuncMap{
		"displayDate":  displayDate,
		"displayPrice": displayPrice,
		"join":         strings.Join,
	}
	return template.New("").Funcs(funcs).ParseFS(templatesFS, "templates/*.html")
}
