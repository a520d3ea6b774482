package api

import (
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/dgallion1/inkpost/internal/doctree"
	"github.com/dgallion1/inkpost/internal/enhance"
	"github.com/dgallion1/inkpost/internal/site"
	"github.com/dgallion1/inkpost/internal/theme"
	"github.com/go-chi/chi/v5"
)

type postSummary struct {
	Slug    string    `json:"slug"`
	Title   string    `json:"title"`
	Date    time.Time `json:"date,omitzero"`
	Tags    []string  `json:"tags,omitempty"`
	Summary string    `json:"summary,omitempty"`
	Draft   bool      `json:"draft,omitempty"`
	URL     string    `json:"url"`
}

func summarize(p *doctree.Post) postSummary {
	return postSummary{
		Slug:    p.Slug,
		Title:   p.Title,
		Date:    p.Date,
		Tags:    p.Tags,
		Summary: p.Summary,
		Draft:   p.Draft,
		URL:     "/posts/" + p.Slug + "/",
	}
}

// lookupPost resolves the slug URL param. Drafts are only visible to
// callers holding the build key.
func (s *Server) lookupPost(w http.ResponseWriter, r *http.Request) (*doctree.Post, bool) {
	slug := chi.URLParam(r, "slug")
	if unescaped, err := url.PathUnescape(slug); err == nil {
		slug = unescaped
	}
	post, ok := s.library.Get(slug)
	if !ok || (post.Draft && !bearerMatches(r, s.cfg.BuildAPIKey)) {
		jsonError(w, "post not found", http.StatusNotFound)
		return nil, false
	}
	return post, true
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := s.renderer.RenderIndex(s.library.List(false))
	if err != nil {
		s.log.Error("render index failed", "error", err)
		jsonError(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(page))
}

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	includeDrafts := r.URL.Query().Get("drafts") == "true" && bearerMatches(r, s.cfg.BuildAPIKey)
	posts := s.library.List(includeDrafts)
	out := make([]postSummary, 0, len(posts))
	for _, p := range posts {
		out = append(out, summarize(p))
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"posts": out})
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	post, ok := s.lookupPost(w, r)
	if !ok {
		return
	}

	t, err := s.themeState(r).Resolve(r.Context(), ambientFrom(r))
	if err != nil {
		// The runtime script still applies the reader's local choice.
		s.log.Warn("resolve theme failed", "slug", post.Slug, "error", err)
		t = ""
	}

	v, err, _ := s.renders.Do(post.Slug+"|"+string(t), func() (any, error) {
		return s.renderer.Render(post, t)
	})
	if err != nil {
		s.log.Error("render failed", "slug", post.Slug, "error", err)
		jsonError(w, "render failed", http.StatusInternalServerError)
		return
	}

	setThemeHints(w)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(v.(*site.Page).HTML))
}

func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	post, ok := s.lookupPost(w, r)
	if !ok {
		return
	}
	outline, shown, err := s.renderer.Outline(post, s.cfg.TOCMinHeadings)
	if err != nil {
		s.log.Error("outline failed", "slug", post.Slug, "error", err)
		jsonError(w, "outline failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"slug":     post.Slug,
		"headings": outline.Len(),
		"shown":    shown,
		"outline":  outline.Children,
	})
}

func (s *Server) handleRuntime(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(enhance.Runtime)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// ambientHeader is the client hint carrying the reader's OS color scheme.
const ambientHeader = "Sec-CH-Prefers-Color-Scheme"

func ambientFrom(r *http.Request) theme.Ambient {
	return theme.ParseAmbient(r.Header.Get(ambientHeader))
}

// setThemeHints asks the browser to send the ambient hint on later requests.
func setThemeHints(w http.ResponseWriter) {
	w.Header().Set("Accept-CH", ambientHeader)
	w.Header().Add("Vary", ambientHeader)
	w.Header().Add("Vary", "Cookie")
}
