package web

import (
	"embed"
	"html/template"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/eventx/namecard-services/internal/cardsvc/models"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Renderer serves the server-rendered pages from embedded templates.
type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("").ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: tmpl}, nil
}

func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := r.tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Errorf("render %s: %v", name, err)
	}
}

// CardPage is the data behind the public card templates.
type CardPage struct {
	models.CardView
	FullPhone   string
	WhatsappURL string
}

func NewCardPage(view models.CardView) CardPage {
	full := view.Phone
	if view.AreaCode != "" {
		full = view.AreaCode + view.Phone
	}
	page := CardPage{CardView: view, FullPhone: full}
	if view.IsWhatsapp {
		page.WhatsappURL = "https://wa.me/" + digits(full)
	}
	return page
}

func digits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}
