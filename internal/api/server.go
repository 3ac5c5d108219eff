// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires the HTTP router, middleware chain, and all domain
handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - Only this package and cmd/api import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/yamdb/internal/core/comment"
	"github.com/taibuivan/yamdb/internal/core/review"
	"github.com/taibuivan/yamdb/internal/core/taxonomy"
	"github.com/taibuivan/yamdb/internal/core/title"
	"github.com/taibuivan/yamdb/internal/platform/config"
	"github.com/taibuivan/yamdb/internal/platform/constants"
	"github.com/taibuivan/yamdb/internal/platform/middleware"
	"github.com/taibuivan/yamdb/internal/platform/respond"
	"github.com/taibuivan/yamdb/internal/users/account"
	"github.com/taibuivan/yamdb/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	Liveness  http.HandlerFunc
	Readiness http.HandlerFunc

	Auth    *auth.Handler
	Account *account.Handler

	Categories *taxonomy.Handler
	Genres     *taxonomy.Handler
	Titles     *title.Handler
	Reviews    *review.Handler
	Comments   *comment.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups. The rate limiter janitor stops with context.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, handlers Handlers) *Server {
	router := NewRouter(context, cfg, log, verifier, handlers)

	return &Server{
		router: router,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           router,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// NewRouter builds the routing tree without binding a listener.
func NewRouter(context context.Context, cfg middleware.CORSConfig, log *slog.Logger, verifier middleware.TokenVerifier, handlers Handlers) *chi.Mux {
	router := chi.NewRouter()
	limiter := middleware.NewRateLimiter(context, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst)

	// # Middleware Chain
	router.Use(chimw.StripSlashes)
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger(log))
	router.Use(middleware.PanicRecovery)
	router.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	router.Use(middleware.CORS(cfg))
	router.Use(limiter.Middleware)
	router.Use(middleware.Authenticate(verifier))

	router.NotFound(respond.NotFound)
	router.MethodNotAllowed(respond.MethodNotAllowed)

	// # Infrastructure Endpoints
	router.Get("/health", handlers.Liveness)
	router.Get("/ready", handlers.Readiness)

	// # Application API
	router.Route("/api/v1", func(api chi.Router) {
		api.NotFound(respond.NotFound)
		api.MethodNotAllowed(respond.MethodNotAllowed)

		api.Mount("/auth", handlers.Auth.Routes())
		api.Mount("/users", handlers.Account.Routes())
		api.Mount("/categories", handlers.Categories.Routes())
		api.Mount("/genres", handlers.Genres.Routes())
		api.Mount("/titles", handlers.Titles.Routes())
		api.Mount("/titles/{title_id}/reviews", handlers.Reviews.Routes())
		api.Mount("/titles/{title_id}/reviews/{review_id}/comments", handlers.Comments.Routes())
	})

	return router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server and blocks until it stops.
func (server *Server) ListenAndServe() error {
	server.log.Info("server_starting", slog.String("addr", server.httpServer.Addr))
	return server.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (server *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return server.httpServer.Shutdown(ctx)
}
