// Package web serves the embedded browser UI.
package web

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed static
var staticFS embed.FS

// Register mounts the UI at / and its assets under /ui.
func Register(r *gin.Engine) {
	index, err := staticFS.ReadFile("static/index.html")
	if err != nil {
		panic(err)
	}
	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", index)
	})

	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	r.StaticFS("/ui", http.FS(sub))
}
