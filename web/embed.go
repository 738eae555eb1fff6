// Package web provides embedded static assets and templates for the web application.
package web

import (
	"embed"
	"fmt"
	"io/fs"
)

// TemplatesFS contains the embedded HTML templates.
//
//go:embed all:templates
var TemplatesFS embed.FS

// StaticFS contains the embedded static assets (CSS).
//
//go:embed all:static
var StaticFS embed.FS

// Sub returns the template and static trees rooted at their own directories.
func Sub() (templates, static fs.FS, err error) {
	templates, err = fs.Sub(TemplatesFS, "templates")
	if err != nil {
		return nil, nil, fmt.Errorf("creating templates filesystem: %w", err)
	}
	static, err = fs.Sub(StaticFS, "static")
	if err != nil {
		return nil, nil, fmt.Errorf("creating static filesystem: %w", err)
	}
	return templates, static, nil
}
