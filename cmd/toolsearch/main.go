package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/jakeolschewski/toolforge-ai-sub002/internal/config"
	logpkg "github.com/jakeolschewski/toolforge-ai-sub002/internal/logger"
	"github.com/jakeolschewski/toolforge-ai-sub002/internal/metrics"
	"github.com/jakeolschewski/toolforge-ai-sub002/internal/version"
)

func main() {
	cmd := "serve"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}
	if cmd == "version" {
		fmt.Println(version.String())
		return
	}

	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	container := buildContainer(cfg, logger)

	switch cmd {
	case "serve":
		err = container.Invoke(func(p serveParams) error {
			return serve(cfg, env, p, logger)
		})
	case "seed":
		path := cfg.Source.CatalogPath
		if len(os.Args) > 2 {
			path = os.Args[2]
		}
		err = container.Invoke(func(p seedParams) error {
			return seed(context.Background(), path, p, logger)
		})
	default:
		err = fmt.Errorf("unknown command %q (want serve, seed or version)", cmd)
	}
	if err != nil {
		logger.Fatal("Command failed", zap.String("command", cmd), zap.Error(dig.RootCause(err)))
	}
}

// serveParams is everything the HTTP server needs from the container.
type serveParams struct {
	dig.In

	Handler http.Handler
	Closer  storeCloser `optional:"true"`
}

func serve(cfg config.Config, env string, p serveParams, logger *zap.Logger) error {
	if p.Closer != nil {
		defer p.Closer.Close()
	}

	metrics.RegisterSearchMetrics()

	logger.Info("Starting toolforge search API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("source", cfg.Source.Driver),
		zap.Bool("shared_cache", cfg.Cache.Shared),
	)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      p.Handler,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-quit:
		logger.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
	return nil
}
