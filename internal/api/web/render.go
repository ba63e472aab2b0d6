package web

import (
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/gin-gonic/gin/render"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Page template names
const (
	PageHome     = "home.html"
	PageSignIn   = "signin.html"
	PageSignUp   = "signup.html"
	PageMessages = "messages.html"
	PageUser     = "user.html"
	PageAdmin    = "admin.html"
)

var pages = []string{PageHome, PageSignIn, PageSignUp, PageMessages, PageUser, PageAdmin}

var funcs = template.FuncMap{
	"formatTime": func(t time.Time) string {
		return t.Local().Format("Jan 2, 2006 15:04")
	},
}

// Renderer implements gin's render.HTMLRender over the embedded page
// templates. Each page is parsed together with the shared layout.
type Renderer struct {
	templates map[string]*template.Template
}

// NewRenderer parses every page template.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{templates: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		t, err := template.New(page).Funcs(funcs).ParseFS(templatesFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", page, err)
		}
		r.templates[page] = t
	}
	return r, nil
}

// Instance returns the render for page name.
func (r *Renderer) Instance(name string, data any) render.Render {
	t, ok := r.templates[name]
	if !ok {
		return render.String{Format: "template %s not found", Data: []any{name}}
	}
	return render.HTML{Template: t, Name: "layout", Data: data}
}
