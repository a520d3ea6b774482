package api

import (
	"encoding/json"
	"net/http"

	"github.com/dgallion1/inkpost/internal/theme"
)

func (s *Server) themeState(r *http.Request) *theme.State {
	return theme.NewState(s.prefs.ForVisitor(visitorFrom(r.Context())))
}

func writeTheme(w http.ResponseWriter, t theme.Theme) {
	setThemeHints(w)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"theme": string(t)})
}

func (s *Server) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	t, err := s.themeState(r).Resolve(r.Context(), ambientFrom(r))
	if err != nil {
		s.log.Error("resolve theme failed", "error", err)
		jsonError(w, "theme unavailable", http.StatusInternalServerError)
		return
	}
	writeTheme(w, t)
}

func (s *Server) handleSetTheme(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Theme string `json:"theme"`
	}
	r.Body = http.MaxBytesReader(w, r.Body, 1024)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid json body", http.StatusBadRequest)
		return
	}
	t := theme.Theme(req.Theme)
	if !t.Valid() {
		jsonError(w, "theme must be light or dark", http.StatusBadRequest)
		return
	}
	if err := s.themeState(r).Set(r.Context(), t); err != nil {
		s.log.Error("save theme failed", "error", err)
		jsonError(w, "theme unavailable", http.StatusInternalServerError)
		return
	}
	writeTheme(w, t)
}

func (s *Server) handleToggleTheme(w http.ResponseWriter, r *http.Request) {
	t, err := s.themeState(r).Toggle(r.Context(), ambientFrom(r))
	if err != nil {
		s.log.Error("toggle theme failed", "error", err)
		jsonError(w, "theme unavailable", http.StatusInternalServerError)
		return
	}
	writeTheme(w, t)
}
