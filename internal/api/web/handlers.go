package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/hlog"

	app "thurianx/internal/application"
	"thurianx/internal/domain/port"
	"thurianx/internal/view"
)

// IndexHandler renders the page for the caller's session.
func (s *Server) IndexHandler(w http.ResponseWriter, r *http.Request) {
	id := s.sessionID(w, r)
	sess, err := s.sessions.Open(r.Context(), id)
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := s.page.Execute(&buf, view.Build(sess, s.catalog)); err != nil {
		s.internalError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(buf.Bytes())
}

// SelectImageHandler accepts a multipart upload in the "image" field. A form
// without a file is treated as a cancelled selection.
func (s *Server) SelectImageHandler(w http.ResponseWriter, r *http.Request) {
	id := s.sessionID(w, r)
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)

	if err := r.ParseMultipartForm(1 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "image too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "invalid upload", http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		redirectHome(w, r)
		return
	}
	if err != nil {
		http.Error(w, "invalid upload", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "invalid upload", http.StatusBadRequest)
		return
	}
	if len(data) == 0 {
		redirectHome(w, r)
		return
	}

	_, err = s.sessions.SelectImage(r.Context(), id, app.Upload{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	})
	switch {
	case errors.Is(err, port.ErrNotAnImage), errors.Is(err, port.ErrEmptyImage):
		hlog.FromRequest(r).Info().Err(err).Str("session", id).Str("source", r.FormValue("source")).Msg("upload rejected")
		http.Error(w, "unsupported image", http.StatusUnsupportedMediaType)
		return
	case err != nil:
		s.internalError(w, r, err)
		return
	}
	redirectHome(w, r)
}

// AnalyzeHandler starts the simulated analysis. Submitting without an image
// or while processing changes nothing.
func (s *Server) AnalyzeHandler(w http.ResponseWriter, r *http.Request) {
	id := s.sessionID(w, r)
	if _, err := s.sessions.Open(r.Context(), id); err != nil {
		s.internalError(w, r, err)
		return
	}
	if _, _, err := s.classify.Submit(r.Context(), id); err != nil {
		s.internalError(w, r, err)
		return
	}
	redirectHome(w, r)
}

// ToggleLanguageHandler switches between Thai and English.
func (s *Server) ToggleLanguageHandler(w http.ResponseWriter, r *http.Request) {
	id := s.sessionID(w, r)
	if _, err := s.sessions.ToggleLanguage(r.Context(), id); err != nil {
		s.internalError(w, r, err)
		return
	}
	redirectHome(w, r)
}

// CloseHandler tears the view session down.
func (s *Server) CloseHandler(w http.ResponseWriter, r *http.Request) {
	if id, ok := existingSessionID(r); ok {
		if err := s.sessions.Close(r.Context(), id); err != nil {
			s.internalError(w, r, err)
			return
		}
	}
	s.clearSession(w)
	w.WriteHeader(http.StatusNoContent)
}

// PreviewHandler serves a preview to the session that owns it.
func (s *Server) PreviewHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := existingSessionID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	data, meta, err := s.sessions.Preview(r.Context(), id, mux.Vars(r)["id"])
	if errors.Is(err, port.ErrPreviewNotFound) || errors.Is(err, port.ErrSessionNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", meta.ContentType)
	w.Header().Set("Cache-Control", "no-store")
	w.Write(data)
}

// StateHandler returns the rendered page as JSON for polling clients.
func (s *Server) StateHandler(w http.ResponseWriter, r *http.Request) {
	id := s.sessionID(w, r)
	sess, err := s.sessions.Open(r.Context(), id)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	json.NewEncoder(w).Encode(view.Build(sess, s.catalog))
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	hlog.FromRequest(r).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
