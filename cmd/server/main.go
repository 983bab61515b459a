package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/foxestech/foxes-search/internal/app"
	"github.com/foxestech/foxes-search/internal/config"
	"github.com/foxestech/foxes-search/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("site-search", "error").Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.New("site-search", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Error("failed to build application", "error", err)
		os.Exit(1)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.Run(ctx)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			log.Error("server error", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := a.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
