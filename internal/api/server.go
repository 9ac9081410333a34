// Copyright (c) 2026 CRM Local. All rights reserved.
// Author: dev@crm-local.app

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

	"github.com/crmlocal/api/internal/crm/catalog"
	"github.com/crmlocal/api/internal/crm/client"
	"github.com/crmlocal/api/internal/crm/company"
	"github.com/crmlocal/api/internal/crm/importer"
	"github.com/crmlocal/api/internal/crm/inventory"
	"github.com/crmlocal/api/internal/crm/serviceorder"
	"github.com/crmlocal/api/internal/crm/workload"
	"github.com/crmlocal/api/internal/platform/config"
	"github.com/crmlocal/api/internal/platform/constants"
	"github.com/crmlocal/api/internal/platform/middleware"
	"github.com/crmlocal/api/internal/platform/sec"
	"github.com/crmlocal/api/internal/users/auth"
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
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles session routes (login, logout, password change, profile).
	Auth *auth.Handler

	// Company manages the billing entities clients belong to.
	Company *company.Handler

	// Client manages clients and their contacts.
	Client *client.Handler

	// ServiceOrder manages subcontracted service orders.
	ServiceOrder *serviceorder.Handler

	// Catalog exposes the prestation definitions.
	Catalog *catalog.Handler

	// Inventory manages filter and belt stock lines.
	Inventory *inventory.Handler

	// Workload manages the yearly planning board.
	Workload *workload.Handler

	// Importer handles the Excel client import/export.
	Importer *importer.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(
	context context.Context,
	cfg *config.Config,
	log *slog.Logger,
	cookies sec.SessionCookie,
	verifier middleware.TokenVerifier,
	resolver middleware.IdentityResolver,
	h Handlers,
) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(cookies, verifier, resolver))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/users", h.Auth.UserRoutes())

		// The CRM surface requires a signed-in user.
		api.Group(func(crm chi.Router) {
			crm.Use(middleware.RequireAuth)

			crm.Route("/companies", h.Company.RegisterRoutes)
			crm.Route("/clients", func(clients chi.Router) {
				h.Client.RegisterRoutes(clients)
				h.Importer.RegisterRoutes(clients)
				clients.Route("/{id}/services", h.ServiceOrder.RegisterClientRoutes)
			})
			crm.Route("/services", h.ServiceOrder.RegisterRoutes)
			crm.Route("/catalog", h.Catalog.RegisterRoutes)
			crm.Route("/inventory", h.Inventory.RegisterRoutes)
			crm.Route("/workload", h.Workload.RegisterRoutes)
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
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
