package handler

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"classroom/internal/session"
)

//go:embed templates/*.html
var templatesFS embed.FS

type PageHandler struct {
	sessions *session.Manager
	tmpl     *template.Template
}

func NewPageHandler(sessions *session.Manager) *PageHandler {
	return &PageHandler{
		sessions: sessions,
		tmpl:     template.Must(template.ParseFS(templatesFS, "templates/*.html")),
	}
}

func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	if h.sessions.HasAccessToken(r) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	h.render(w, r, "index.html", map[string]any{"Title": "Classroom"})
}

func (h *PageHandler) Login(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "login.html", map[string]any{"Title": "Sign in"})
}

func (h *PageHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{"Title": "Dashboard"}
	if id, ok := h.sessions.Load(r); ok {
		data["Email"] = id.Email
	}
	h.render(w, r, "dashboard.html", data)
}

func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.ExecuteTemplate(w, name, data); err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("template", name).Msg("render page")
	}
}
