package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/telhawk-systems/ocsf-mcp/internal/codegen"
	"github.com/telhawk-systems/ocsf-mcp/internal/config"
	"github.com/telhawk-systems/ocsf-mcp/internal/event"
	"github.com/telhawk-systems/ocsf-mcp/internal/handlers"
	"github.com/telhawk-systems/ocsf-mcp/internal/logging"
	natsclient "github.com/telhawk-systems/ocsf-mcp/internal/messaging/nats"
	"github.com/telhawk-systems/ocsf-mcp/internal/middleware"
	"github.com/telhawk-systems/ocsf-mcp/internal/observability"
	"github.com/telhawk-systems/ocsf-mcp/internal/ratelimit"
	"github.com/telhawk-systems/ocsf-mcp/internal/schema"
	"github.com/telhawk-systems/ocsf-mcp/internal/server"
	"github.com/telhawk-systems/ocsf-mcp/internal/service"
	"github.com/telhawk-systems/ocsf-mcp/internal/tools"
	"github.com/telhawk-systems/ocsf-mcp/internal/transport"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	addr := flag.String("addr", "", "override listen address")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := logging.New(
		logging.ParseLevel(cfg.Logging.Level),
		cfg.Logging.Format,
	).With(logging.Service("ocsf-mcp"))
	logging.SetDefault(logger)

	slog.Info("Starting OCSF tool server",
		slog.Int("port", cfg.Server.Port),
		slog.String("default_version", cfg.Schema.DefaultVersion),
		slog.String("log_level", cfg.Logging.Level),
	)

	shutdownTracing := observability.Setup(cfg.Tracing, logger)

	repo, err := newRepository(cfg.Schema, logger)
	if err != nil {
		slog.Error("Failed to open schema directory", logging.Error(err))
		os.Exit(1)
	}

	gen, err := codegen.New()
	if err != nil {
		slog.Error("Failed to parse code templates", logging.Error(err))
		os.Exit(1)
	}

	svc := service.NewToolService(repo, gen, logger,
		service.WithDefaultVersion(cfg.Schema.DefaultVersion),
		service.WithBuilder(newEventBuilder(repo, cfg.Event.Product)),
	)
	dispatcher := tools.NewDispatcher(svc, logger)

	limiter := newRateLimiter(cfg)
	defer limiter.Close()

	var verifier *middleware.TokenVerifier
	if cfg.Auth.Enabled {
		verifier = middleware.NewTokenVerifier(cfg.Auth.JWTSecret)
		slog.Info("Bearer token authentication enabled")
	}

	h := handlers.NewToolHandler(dispatcher, svc, logger, cfg.Server.MaxBodyBytes)
	router := server.NewRouter(h, server.Options{
		Logger:      logger,
		RateLimiter: limiter,
		Verifier:    verifier,
		CORSOrigins: cfg.Server.CORSAllowedOrigins,
	})

	// The NATS transport is optional; the HTTP API works without it.
	var natsTransport *transport.Server
	var natsConn *natsclient.Client
	if cfg.NATS.Enabled {
		natsConn, natsTransport = startNATS(cfg, dispatcher, logger)
	} else {
		slog.Info("NATS transport disabled")
	}

	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	if *addr != "" {
		listenAddr = *addr
	}
	srv := &http.Server{
		Addr:         listenAddr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("OCSF tool server listening", slog.String("addr", listenAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", logging.Error(err))
			os.Exit(1)
		}
	}()

	<-shutdownCtx.Done()
	slog.Info("Shutdown signal received")

	if natsTransport != nil {
		if err := natsTransport.Stop(); err != nil {
			slog.Warn("NATS transport shutdown error", logging.Error(err))
		}
		if err := natsConn.Drain(); err != nil {
			slog.Warn("NATS drain error", logging.Error(err))
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Graceful shutdown failed", logging.Error(err))
	}
	if err := shutdownTracing(ctx); err != nil {
		slog.Warn("Tracer shutdown error", logging.Error(err))
	}

	slog.Info("Server stopped gracefully")
}

func newRepository(cfg config.SchemaConfig, logger *logging.Logger) (*schema.Repository, error) {
	if cfg.Dir == "" {
		return schema.NewEmbeddedRepository(logger), nil
	}
	slog.Info("Loading schemas from directory", slog.String("dir", cfg.Dir))
	return schema.NewDirRepository(cfg.Dir, logger)
}

func newEventBuilder(repo *schema.Repository, p config.ProductConfig) *event.Builder {
	if p.Name == "" {
		return event.NewBuilder(repo)
	}
	return event.NewBuilder(repo, event.WithProduct(event.Product{
		Name:       p.Name,
		VendorName: p.VendorName,
		Version:    p.Version,
	}))
}

func newRateLimiter(cfg *config.Config) ratelimit.RateLimiter {
	if !cfg.Redis.Enabled {
		slog.Info("Rate limiting disabled")
		return &ratelimit.NoOpRateLimiter{}
	}

	limiter, err := ratelimit.NewRedisRateLimiter(cfg.Redis.URL, cfg.RateLimit.Requests, cfg.RateLimit.Window)
	if err != nil {
		slog.Warn("Failed to initialize Redis rate limiter (continuing without rate limiting)",
			slog.String("url", cfg.Redis.URL),
			logging.Error(err),
		)
		return &ratelimit.NoOpRateLimiter{}
	}

	slog.Info("Rate limiting enabled",
		slog.Int("requests", cfg.RateLimit.Requests),
		slog.Duration("window", cfg.RateLimit.Window),
	)
	return limiter
}

func startNATS(cfg *config.Config, dispatcher *tools.Dispatcher, logger *logging.Logger) (*natsclient.Client, *transport.Server) {
	natsCfg := natsclient.DefaultConfig()
	natsCfg.URL = cfg.NATS.URL
	natsCfg.MaxReconnects = cfg.NATS.MaxReconnects
	natsCfg.ReconnectWait = cfg.NATS.ReconnectWait

	client, err := natsclient.NewClient(natsCfg, logger)
	if err != nil {
		slog.Warn("Failed to connect to NATS (continuing without NATS)",
			slog.String("url", cfg.NATS.URL),
			logging.Error(err),
		)
		return nil, nil
	}
	slog.Info("Connected to NATS", slog.String("url", cfg.NATS.URL))

	srv := transport.NewServer(client, dispatcher, logger, transport.Config{
		SubjectPrefix: cfg.NATS.SubjectPrefix,
		Queue:         cfg.NATS.Queue,
		CallTimeout:   30 * time.Second,
	})
	if err := srv.Start(); err != nil {
		slog.Warn("Failed to start NATS transport", logging.Error(err))
		_ = client.Close()
		return nil, nil
	}
	return client, srv
}
