// Package api serves the blog content over a read-only JSON HTTP API.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/goliatone/go-blog-content/internal/logger"
	"github.com/goliatone/go-blog-content/usecase"
)

// Server holds the use cases behind the HTTP handlers.
type Server struct {
	uc          *usecase.UseCases
	router      *chi.Mux
	logger      *slog.Logger
	corsOrigins []string
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for request logs and handler failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCORSOrigins sets the allowed CORS origins. Empty keeps "*".
func WithCORSOrigins(origins []string) Option {
	return func(s *Server) {
		if len(origins) > 0 {
			s.corsOrigins = origins
		}
	}
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(uc *usecase.UseCases, opts ...Option) *Server {
	s := &Server{
		uc:          uc,
		router:      chi.NewRouter(),
		logger:      logger.Discard(),
		corsOrigins: []string{"*"},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Route("/posts", func(r chi.Router) {
			r.Get("/", s.handleListPosts)
			r.Get("/featured", s.handleFeaturedPost)
			r.Get("/recent", s.handleRecentPosts)
			r.Get("/{slug}", s.handleGetPost)
		})
		r.Get("/slugs", s.handleListSlugs)
		r.Get("/tags", s.handleListTags)
		r.Get("/tags/{tag}/posts", s.handlePostsByTag)
		r.Get("/search", s.handleSearch)
	})

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		notFound(w, "route not found", s.logger)
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		failure(w, http.StatusMethodNotAllowed, "method not allowed", s.logger)
	})
}

// requestLogger logs one line per request with slog.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		defer func() {
			s.logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
