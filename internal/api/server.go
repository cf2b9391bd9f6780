// Package api provides the HTTP API of the MyLists server.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mylists/mylists-server/internal/metrics"
	"github.com/mylists/mylists-server/internal/ratelimit"
	"github.com/mylists/mylists-server/internal/store"
)

// Options tunes the HTTP surface.
type Options struct {
	CORSOrigins   []string
	Metrics       bool // serve /metrics
	AuthPerMinute int  // requests per client IP on the public auth endpoints
	AuthBurst     int
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store           store.Store
	services        *Services
	router          *chi.Mux
	api             huma.API
	logger          *slog.Logger
	authRateLimiter *ratelimit.KeyedRateLimiter
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(st store.Store, services *Services, opts Options, logger *slog.Logger) *Server {
	if opts.AuthPerMinute <= 0 {
		opts.AuthPerMinute = 20
	}
	if opts.AuthBurst <= 0 {
		opts.AuthBurst = 5
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(remoteAddrMiddleware)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	if len(opts.CORSOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}
	router.Use(metricsMiddleware)
	router.Use(authMiddleware(services.Auth))

	humaConfig := huma.DefaultConfig("MyLists API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	api := humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s := &Server{
		store:           st,
		services:        services,
		router:          router,
		api:             api,
		logger:          logger,
		authRateLimiter: ratelimit.New(float64(opts.AuthPerMinute)/time.Minute.Seconds(), opts.AuthBurst),
	}

	if opts.Metrics {
		router.Handle("/metrics", metrics.Handler())
	}

	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerUserRoutes()
	s.registerListRoutes()
	s.registerEntryRoutes()
	s.registerLabelRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// API exposes the huma API, mostly for OpenAPI generation.
func (s *Server) API() huma.API {
	return s.api
}

// Stop releases background resources held by the server.
func (s *Server) Stop() {
	s.authRateLimiter.Stop()
}
