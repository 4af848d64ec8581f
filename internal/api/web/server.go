package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/google/uuid"

	app "thurianx/internal/application"
	"thurianx/internal/i18n"
)

//go:embed templates/*.html
var templateFS embed.FS

// SessionCookie carries the view session ID.
const SessionCookie = "thurianx_session"

// Options tune the web front-end.
type Options struct {
	MaxUploadBytes int64
	StaticDir      string
	SecureCookies  bool
}

// Server serves the capture-and-classify page.
type Server struct {
	sessions *app.SessionService
	classify *app.ClassificationService
	catalog  *i18n.Catalog
	opts     Options
	page     *template.Template
}

// NewServer parses the embedded templates and creates the server.
func NewServer(sessions *app.SessionService, classify *app.ClassificationService, catalog *i18n.Catalog, opts Options) (*Server, error) {
	page, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, err
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 10 << 20
	}
	return &Server{
		sessions: sessions,
		classify: classify,
		catalog:  catalog,
		opts:     opts,
		page:     page,
	}, nil
}

// sessionID returns the caller's session ID, issuing a new cookie when the
// request carries none or a malformed one.
func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) string {
	if id, ok := existingSessionID(r); ok {
		return id
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.opts.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func existingSessionID(r *http.Request) (string, bool) {
	c, err := r.Cookie(SessionCookie)
	if err != nil {
		return "", false
	}
	if _, err := uuid.Parse(c.Value); err != nil {
		return "", false
	}
	return c.Value, true
}

func (s *Server) clearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.opts.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
