// Package views embeds the HTML templates and builds the fiber view engine.
package views

import (
	"embed"
	"io/fs"
	"net/http"
	"strconv"

	"github.com/curlykit/PTLab2/internal/adapters/persistence/models"

	"github.com/gofiber/template/html/v2"
)

//go:embed templates
var templates embed.FS

// Layout is the default layout passed to fiber.Config.ViewsLayout
const Layout = "layouts/main"

// Engine returns an html engine over the embedded templates
func Engine() *html.Engine {
	sub, err := fs.Sub(templates, "templates")
	if err != nil {
		panic(err)
	}

	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFunc("money", models.FormatMoney)
	engine.AddFunc("fixed", fixed)
	engine.AddFunc("optional", func(v *float64) string {
		if v == nil {
			return "n/a"
		}
		return fixed(*v)
	})
	return engine
}

func fixed(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
