package http

import (
	"context"
	"net/http"
	"time"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m-mizutani/keycodes/pkg/domain/interfaces"
	"github.com/m-mizutani/keycodes/pkg/infra/metrics"
)

// config holds internal HTTP server configuration
type config struct {
	addr     string
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
	sentry   bool
}

// Option is a functional option for Server configuration
type Option func(*config)

// WithAddr sets the server address
func WithAddr(addr string) Option {
	return func(c *config) {
		c.addr = addr
	}
}

// WithMetrics counts requests into m and serves gatherer on /metrics
func WithMetrics(m *metrics.Metrics, gatherer prometheus.Gatherer) Option {
	return func(c *config) {
		c.metrics = m
		c.gatherer = gatherer
	}
}

// WithSentry enables panic capture through the Sentry HTTP integration.
// sentry.Init must have been called beforehand.
func WithSentry(enabled bool) Option {
	return func(c *config) {
		c.sentry = enabled
	}
}

// Server represents the HTTP server
type Server struct {
	*http.Server
}

// NewServer creates a new HTTP server
func NewServer(
	ctx context.Context,
	gatewayUC interfaces.GatewayUseCase,
	opts ...Option,
) (*Server, error) {
	// Default configuration
	cfg := &config{
		addr: "localhost:4000",
	}

	// Apply options
	for _, opt := range opts {
		opt(cfg)
	}

	router := chi.NewRouter()

	// Global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	if cfg.metrics != nil {
		router.Use(MetricsMiddleware(cfg.metrics))
	}
	router.Use(RecoverMiddleware)
	if cfg.sentry {
		router.Use(sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle)
	}
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	}))
	router.Use(middleware.GetHead)

	router.NotFound(handleNotFound)
	router.MethodNotAllowed(handleMethodNotAllowed)

	// Health check
	router.Get("/health", handleHealth)
	if cfg.gatherer != nil {
		router.Handle("/metrics", promhttp.HandlerFor(cfg.gatherer, promhttp.HandlerOpts{}))
	}

	// Gateway endpoints
	gatewayHandler := NewGatewayHandler(gatewayUC)
	router.Get("/", gatewayHandler.Home)
	router.Get("/file", gatewayHandler.DownloadFile)
	router.Get("/tree", gatewayHandler.SearchTree)
	router.Get("/search/repo", gatewayHandler.SearchRepositories)
	router.Get("/search/files", gatewayHandler.SearchFiles)

	server := &Server{
		Server: &http.Server{
			Addr:              cfg.addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
	}

	return server, nil
}
