package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"

	"userCatalog/models"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Renderer executes the embedded page templates.
type Renderer struct {
	pages map[string]*template.Template
}

var pageNames = []string{"index", "user", "notice"}

func NewRenderer() (*Renderer, error) {
	rd := &Renderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := template.ParseFS(templatesFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		rd.pages[name] = t
	}
	return rd, nil
}

// indexPage is the data for the list page.
type indexPage struct {
	Users    []models.User
	Error    string
	NumUsers string
	Max      int
	Mode     string
}

type userPage struct {
	User   *models.User
	Random bool
}

type noticePage struct {
	Title   string
	Message string
}

// Render writes page with status. The page is executed into a buffer first,
// so a template failure produces a clean 500 instead of a half-written body.
// Once the header is sent Render returns nil.
func (rd *Renderer) Render(w http.ResponseWriter, status int, page string, data any) error {
	t, ok := rd.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	// The header is out; a failed body write can only be logged.
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("write %s page: %v", page, err)
	}
	return nil
}

// Notice renders the shared "nothing to show" page. It is used for every
// no-data response: missing id, empty random pool and unknown routes.
func (rd *Renderer) Notice(w http.ResponseWriter, status int, title, message string) {
	if err := rd.Render(w, status, "notice", noticePage{Title: title, Message: message}); err != nil {
		log.Printf("render notice: %v", err)
		http.Error(w, title, status)
	}
}
