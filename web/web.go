package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var TemplatesFS embed.FS

// Templates 解析嵌入的页面模板
func Templates() (*template.Template, error) {
	return template.ParseFS(TemplatesFS, "templates/*.html")
}

// MustTemplates 解析嵌入的页面模板，失败则 panic
func MustTemplates() *template.Template {
	return template.Must(Templates())
}
