package pages

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"path"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"events-cms/internal/dashboard"
	"events-cms/internal/permission"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutFile = "templates/layout.html"

// Renderer executes a page template inside the shared layout.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer(loc *time.Location) (*Renderer, error) {
	if loc == nil {
		loc = time.UTC
	}
	funcs := template.FuncMap{
		"datetime": func(t time.Time) string {
			return t.In(loc).Format("Mon 2 Jan 2006 15:04")
		},
		"clock": func(t time.Time) string {
			return t.In(loc).Format("15:04")
		},
	}

	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(files))}
	for _, file := range files {
		if file == layoutFile {
			continue
		}
		t, err := template.New(path.Base(layoutFile)).Funcs(funcs).ParseFS(templateFS, layoutFile, file)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		r.pages[path.Base(file)] = t
	}
	return r, nil
}

func (r *Renderer) Render(w io.Writer, name string, data any, c echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

// View is the data every page template receives.
type View struct {
	Title   string
	Session permission.Session
	CSRF    string
	Toasts  []dashboard.Notification
	Data    any
}

func render(c echo.Context, status int, name, title string, data any, toasts []dashboard.Notification) error {
	csrf, _ := c.Get(middleware.DefaultCSRFConfig.ContextKey).(string)
	return c.Render(status, name, View{
		Title:   title,
		Session: permission.FromContext(c),
		CSRF:    csrf,
		Toasts:  append(takeFlash(c), toasts...),
		Data:    data,
	})
}

func redirect(c echo.Context, to string) error {
	return c.Redirect(http.StatusSeeOther, to)
}
