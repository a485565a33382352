package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/a11yfix/internal/batch"
	"github.com/dgallion1/a11yfix/internal/config"
	"github.com/dgallion1/a11yfix/internal/rewrite"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server exposes the rewriter over HTTP.
type Server struct {
	router   chi.Router
	rewriter *rewrite.Rewriter
	stats    *rewrite.Stats
	opts     batch.Options
	log      *slog.Logger
	cfg      config.Config
}

// NewServer creates and configures the HTTP server. stats should be the
// sink rw records into; it backs /api/stats.
func NewServer(rw *rewrite.Rewriter, stats *rewrite.Stats, opts batch.Options, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		rewriter: rw,
		stats:    stats,
		opts:     opts,
		log:      log,
		cfg:      cfg,
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

	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}

		r.Post("/api/rewrite", s.handleRewrite)
		r.Get("/api/stats", s.handleStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
