package web

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
)

// Router wires the routes of the page.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(hlog.NewHandler(log.Logger), hlog.AccessHandler(accessLog))

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "OK")
	}).Methods(http.MethodGet)

	r.HandleFunc("/", s.IndexHandler).Methods(http.MethodGet)
	r.HandleFunc("/images", s.SelectImageHandler).Methods(http.MethodPost)
	r.HandleFunc("/analyze", s.AnalyzeHandler).Methods(http.MethodPost)
	r.HandleFunc("/language", s.ToggleLanguageHandler).Methods(http.MethodPost)
	r.HandleFunc("/session/close", s.CloseHandler).Methods(http.MethodPost)
	r.HandleFunc("/previews/{id}", s.PreviewHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/session", s.StateHandler).Methods(http.MethodGet)

	if s.opts.StaticDir != "" {
		r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir(s.opts.StaticDir))))
	}
	return r
}

func accessLog(r *http.Request, status, size int, duration time.Duration) {
	hlog.FromRequest(r).Info().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", duration).
		Msg("request")
}
