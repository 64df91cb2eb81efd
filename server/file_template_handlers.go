package server

import (
	"embed"
	"html/template"
	"io/fs"

	"github.com/jrsteele09/go-onboarding-server/server/ui"
)

//go:embed templates/*
var templateFiles embed.FS

func TemplateFilesFS() fs.FS {
	// Create the sub filesystem once
	subFS, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		panic("Failed to create templates sub filesystem: " + err.Error())
	}
	return subFS
}

var templateFuncs = template.FuncMap{
	"button": func(b ui.Button) (template.HTML, error) {
		return b.HTML()
	},
}

// ParseTemplate parses a page together with the shared layout from the embedded filesystem
func ParseTemplate(name string) (*template.Template, error) {
	return template.New(name).Funcs(templateFuncs).ParseFS(TemplateFilesFS(), "layout.html", name)
}
