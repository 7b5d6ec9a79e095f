// Package views embeds the HTML templates and static assets.
package views

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

//go:embed templates
var templateFiles embed.FS

//go:embed static
var staticFiles embed.FS

// Engine returns the template engine over the embedded templates.
func Engine() *html.Engine {
	engine := html.NewFileSystem(http.FS(mustSub(templateFiles, "templates")), ".html")
	engine.AddFunc("stars", func(n int) string {
		out := make([]rune, 0, 5)
		for i := 1; i <= 5; i++ {
			if i <= n {
				out = append(out, '★')
			} else {
				out = append(out, '☆')
			}
		}
		return string(out)
	})
	return engine
}

// Static serves css and other assets.
func Static() http.FileSystem {
	return http.FS(mustSub(staticFiles, "static"))
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
