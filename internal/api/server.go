package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/inkpost/internal/config"
	"github.com/dgallion1/inkpost/internal/pipeline"
	"github.com/dgallion1/inkpost/internal/site"
	"github.com/dgallion1/inkpost/internal/stats"
	"github.com/dgallion1/inkpost/internal/theme"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/singleflight"
)

// Preferences hands out a theme store scoped to one visitor.
type Preferences interface {
	ForVisitor(visitor string) theme.Store
}

// Server is the HTTP server for inkpost.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	library      *site.Library
	renderer     *site.Renderer
	prefs        Preferences
	stats        *stats.Registry
	log          *slog.Logger
	cfg          config.Config

	// renders collapses concurrent renders of the same page and theme.
	renders singleflight.Group
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, lib *site.Library, renderer *site.Renderer, prefs Preferences, reg *stats.Registry, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		library:      lib,
		renderer:     renderer,
		prefs:        prefs,
		stats:        reg,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)
	r.Get("/assets/main.js", s.handleRuntime)

	// Reader endpoints carry a visitor cookie for the theme preference.
	r.Group(func(r chi.Router) {
		r.Use(VisitorMiddleware)

		r.Get("/", s.handleIndex)
		r.Get("/posts", s.handleListPosts)
		r.Get("/posts/{slug}", s.handlePost)
		r.Get("/posts/{slug}/", s.handlePost)
		r.Get("/posts/{slug}/outline", s.handleOutline)

		r.Get("/api/theme", s.handleGetTheme)
		r.Put("/api/theme", s.handleSetTheme)
		r.Post("/api/theme/toggle", s.handleToggleTheme)
	})

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.BuildAPIKey, s.log))

		r.Post("/api/build", s.handleBuild)
		r.Get("/api/build/{jobID}/status", s.handleBuildStatus)
		r.Get("/api/stats/render", s.handleRenderStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
