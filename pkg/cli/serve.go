package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/keycodes/pkg/cli/config"
	controller "github.com/m-mizutani/keycodes/pkg/controller/http"
	githubinfra "github.com/m-mizutani/keycodes/pkg/infra/github"
	"github.com/m-mizutani/keycodes/pkg/infra/metrics"
	"github.com/m-mizutani/keycodes/pkg/usecase"
)

func cmdServe() *cli.Command {
	var (
		serverCfg config.Server
		githubCfg config.GitHub
		sentryCfg config.Sentry
	)

	flags := append(serverCfg.Flags(), githubCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting keycodes server",
				slog.String("addr", serverCfg.Addr),
				slog.String("github_base_url", githubCfg.BaseURL),
				slog.Any("credential", githubCfg.Credential()),
				slog.Bool("metrics", serverCfg.Metrics),
			)
			if !githubCfg.Credential().IsSet() {
				logger.Warn("GitHub client credentials are not set, upstream calls are unauthenticated")
			}

			sentryEnabled, err := sentryCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to initialize Sentry")
			}
			if sentryEnabled {
				defer sentry.Flush(2 * time.Second)
			}

			// Create metrics
			registry := prometheus.NewRegistry()
			registry.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			m := metrics.New(registry)

			// Create GitHub client
			githubClient, err := githubinfra.NewClient(
				githubCfg.Credential(),
				githubinfra.WithBaseURL(githubCfg.BaseURL),
				githubinfra.WithTimeout(githubCfg.Timeout),
				githubinfra.WithTransport(m.RoundTripper(http.DefaultTransport)),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create GitHub client")
			}

			// Create use cases
			gatewayUC := usecase.NewGateway(githubClient)

			// Create HTTP server with options
			opts := []controller.Option{
				controller.WithAddr(serverCfg.Addr),
				controller.WithSentry(sentryEnabled),
			}
			if serverCfg.Metrics {
				opts = append(opts, controller.WithMetrics(m, registry))
			}

			server, err := controller.NewServer(ctx, gatewayUC, opts...)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					serverErr <- err
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigChan)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			case err := <-serverErr:
				return goerr.Wrap(err, "HTTP server stopped", goerr.V("addr", serverCfg.Addr))
			}

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
