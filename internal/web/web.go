// Package web 内嵌首页与地图文档模板
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var Templates embed.FS

const (
	IndexTemplate = "index.html"
	MapTemplate   = "map.html"
)

// ParseTemplates 解析全部内嵌模板
func ParseTemplates() (*template.Template, error) {
	return template.ParseFS(Templates, "templates/*.html")
}
