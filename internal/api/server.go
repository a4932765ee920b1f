// Copyright (c) 2026 Pizza Noir. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/pizzanoir/internal/auth"
	"github.com/taibuivan/pizzanoir/internal/pizza"
	"github.com/taibuivan/pizzanoir/internal/platform/config"
	"github.com/taibuivan/pizzanoir/internal/platform/constants"
	"github.com/taibuivan/pizzanoir/internal/platform/middleware"
	"github.com/taibuivan/pizzanoir/internal/role"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler. Always 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. 200 only when Postgres and Redis answer.
	Readiness http.HandlerFunc

	Auth       *auth.Handler
	Pizza      *pizza.PizzaHandler
	Ingredient *pizza.IngredientHandler
	Role       *role.Handler
}

// Security carries what the authentication filter needs to turn a cookie
// into a principal.
type Security struct {
	Verifier middleware.TokenVerifier
	Denylist middleware.Denylist
	Loader   middleware.PrincipalLoader
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
//
// # Routes
//
// Only sign-in, sign-up and the health endpoints are public. Everything else
// under /api requires a principal.
func NewServer(ctx context.Context, cfg *config.Config, log *slog.Logger, security Security, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(ctx, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst))
	r.Use(middleware.PanicRecovery())
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)
	r.Use(middleware.Authenticate(security.Verifier, security.Denylist, security.Loader))

	// # Infrastructure Endpoints
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	r.Route("/api", func(api chi.Router) {
		api.Post("/auth/sign-in", h.Auth.SignIn)
		api.Post("/auth/sign-up", h.Auth.SignUp)

		api.Group(func(protected chi.Router) {
			protected.Use(middleware.RequireAuth)

			protected.Post("/auth/sign-out", h.Auth.SignOut)
			protected.Get("/auth/current-user", h.Auth.CurrentUser)

			protected.Route("/pizza", h.Pizza.RegisterRoutes)
			protected.Route("/ingredient", h.Ingredient.RegisterRoutes)
			protected.Route("/user/role", h.Role.RegisterRoutes)
		})
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler exposes the router, mainly for in-process tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
