// Package views holds the embedded HTML templates.
package views

import (
	"embed"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

//go:embed *.html
var files embed.FS

// Layout is the name of the shared page layout
const Layout = "layout"

// NewEngine returns a template engine over the embedded templates
func NewEngine() *html.Engine {
	return html.NewFileSystem(http.FS(files), ".html")
}
