// Command blogd serves blog posts from a directory of markdown files over a
// read-only JSON API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/goliatone/go-blog-content/config"
	"github.com/goliatone/go-blog-content/internal/logger"
	"github.com/goliatone/go-blog-content/pkg/di"
)

// Version information (set by build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

const (
	ExitSuccess     = 0
	ExitConfigError = 1
	ExitServerError = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "Path to config file")
	contentDir := flag.String("content", "", "Content directory (overrides config)")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("blogd %s (built %s)\n", Version, BuildTime)
		return ExitSuccess
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return ExitConfigError
	}
	if *contentDir != "" {
		cfg.Content.Dir = *contentDir
	}

	log := logger.New(cfg.Log.LoggerConfig())
	log.Info("starting blogd", "version", Version, "config", *configPath, "content", cfg.Content.Dir)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	container, err := di.NewContainer(ctx, *cfg, log)
	if err != nil {
		log.Error("failed to build container", "error", err)
		return ExitConfigError
	}
	defer container.Close()

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      container.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 2)
	go func() {
		if err := container.Run(ctx); err != nil {
			errCh <- fmt.Errorf("content watcher: %w", err)
		}
	}()
	go func() {
		log.Info("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	code := ExitSuccess
	select {
	case <-ctx.Done():
		log.Info("received shutdown signal")
	case err := <-errCh:
		log.Error("server error", "error", err)
		code = ExitServerError
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		code = ExitServerError
	}

	log.Info("blogd stopped")
	return code
}
