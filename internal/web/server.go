// Package web provides the HTTP API and preview pages for MoodTune.
package web

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/justestif/go-moodtune/internal/auth"
	"github.com/justestif/go-moodtune/internal/db"
	"github.com/justestif/go-moodtune/internal/preferences"
	"github.com/justestif/go-moodtune/internal/recommend"
)

// DefaultAddr is the default server address.
const DefaultAddr = "127.0.0.1:8080"

// ServerConfig holds server configuration.
type ServerConfig struct {
	Addr        string
	Store       db.Store
	Auth        *auth.Authenticator   // nil disables Spotify routes
	Recommender *recommend.Service    // defaults to the store's catalog
	Preferences *preferences.Service  // defaults to the store with no genre fallback
	Sessions    SessionManager        // defaults to a DBSessionStore
	Logger      *slog.Logger
	TemplatesFS fs.FS
	StaticFS    fs.FS
}

// Server is the HTTP server for the web application.
type Server struct {
	router   chi.Router
	server   *http.Server
	handlers *Handlers
	logger   *slog.Logger
}

// NewServer creates a new web server.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Store == nil {
		return nil, errors.New("server needs a store")
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Recommender == nil {
		cfg.Recommender = recommend.New(cfg.Store.Recommendations())
	}
	if cfg.Preferences == nil {
		cfg.Preferences = preferences.New(cfg.Store.Listeners(), cfg.Store.Preferences())
	}
	if cfg.Sessions == nil {
		cfg.Sessions = NewDBSessionStore(cfg.Store, cfg.Logger)
	}

	templates, err := NewTemplates(cfg.TemplatesFS)
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}

	handlers := &Handlers{
		store:       cfg.Store,
		recommender: cfg.Recommender,
		engine:      recommend.NewEngine(cfg.Recommender, cfg.Store.Preferences()),
		prefs:       cfg.Preferences,
		auth:        cfg.Auth,
		sessions:    cfg.Sessions,
		templates:   templates,
		logger:      cfg.Logger,
	}

	s := &Server{
		router:   chi.NewRouter(),
		handlers: handlers,
		logger:   cfg.Logger,
	}
	s.setupMiddleware()
	s.setupRoutes(cfg.StaticFS)

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
}

func (s *Server) setupRoutes(staticFS fs.FS) {
	h := s.handlers

	fileServer := http.FileServer(http.FS(staticFS))
	s.router.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	s.router.Get("/healthz", h.Health)
	s.router.Get("/", h.Home)
	s.router.Get("/preview", h.Preview)

	s.router.Route("/auth", func(r chi.Router) {
		r.Get("/spotify/login", h.Login)
		r.Get("/spotify/callback", h.Callback)
		r.Post("/logout", h.Logout)
	})

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/mood", func(r chi.Router) {
			r.Get("/color", h.MoodColor)

			r.Post("/entries", h.CreateEntry)
			r.Get("/entries", h.ListEntries)
			r.Get("/entries/recent", h.RecentEntries)
			r.Get("/entries/{id}", h.GetEntry)
			r.Put("/entries/{id}", h.UpdateEntry)
			r.Delete("/entries/{id}", h.DeleteEntry)

			r.Get("/analytics/trends", h.Trends)
			r.Get("/analytics/phases", h.Phases)

			r.Post("/twins/send-warmth", h.SendWarmth)
			r.Get("/twins/{happiness}/{calmness}", h.Twins)
		})

		r.Route("/emotions", func(r chi.Router) {
			r.Get("/global", h.GlobalWall)
			r.Post("/messages", h.CreateMessage)
			r.Get("/messages", h.ListMessages)
			r.Post("/messages/{id}/support", h.AddSupport)
		})

		r.Route("/music", func(r chi.Router) {
			r.Get("/recommendations", h.Recommendations)
			r.Post("/recommendations", h.CreateRecommendation)
			r.Get("/recommendations/personalized", h.Personalized)
			r.Get("/recommendations/personalized/history", h.PersonalizedHistory)
			r.Get("/preferences", h.Preferences)
			r.Post("/preferences/analyze", h.AnalyzePreferences)
		})
	})
}

// Handler returns the routed handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info("starting server", "url", "http://"+s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Run starts the server and handles graceful shutdown on interrupt signals.
func (s *Server) Run() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	errCh := make(chan error, 1)
	go func() {
		if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-stop:
		s.logger.Info("shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}
