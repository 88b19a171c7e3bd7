// Package web holds the embedded templates and static assets.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"time"

	"guestbook/internal/utils"

	"github.com/gin-contrib/multitemplate"
)

//go:embed templates static
var files embed.FS

// Views are registered under the name handlers render them by.
var views = []string{
	"home.html",
	"error.html",
	"auth/login.html",
	"auth/register.html",
	"comment/list.html",
	"comment/new.html",
	"user/profile.html",
}

// DateLayout renders "18/10/2026 at 14:05".
const DateLayout = "02/01/2006 at 15:04"

func funcMap() template.FuncMap {
	return template.FuncMap{
		"formatDate": func(t time.Time) string {
			return t.Format(DateLayout)
		},
		"commentHTML": utils.CommentHTML,
	}
}

// LoadTemplates builds one template set per view: layouts, includes, then
// the view itself.
func LoadTemplates() (multitemplate.Renderer, error) {
	r := multitemplate.NewRenderer()

	layouts, err := fs.Glob(files, "templates/layouts/*.html")
	if err != nil {
		return nil, err
	}
	if len(layouts) == 0 {
		return nil, fmt.Errorf("no layouts found")
	}

	includes, err := fs.Glob(files, "templates/includes/*.html")
	if err != nil {
		return nil, err
	}

	assemble := func(view string) []string {
		paths := make([]string, 0, len(layouts)+len(includes)+1)
		paths = append(paths, layouts...)
		paths = append(paths, includes...)
		paths = append(paths, view)
		return paths
	}

	for _, name := range views {
		tmpl, err := template.New(path.Base(layouts[0])).
			Funcs(funcMap()).
			ParseFS(files, assemble("templates/views/"+name)...)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		r.Add(name, tmpl)
	}

	return r, nil
}

// Static serves web/static.
func Static() http.FileSystem {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
