// cmd/membership/main.go
package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/time/rate"

	"loyaltyhub/internal/config"
	"loyaltyhub/internal/membership"
	"loyaltyhub/internal/obs"
	"loyaltyhub/internal/pointrate"
	"loyaltyhub/internal/storage"
)

func main() {
	cfg := config.Load()
	logger := obs.NewLogger()
	logger.Info("service_starting")

	shutdownTracing, err := obs.InitTracing(context.Background(), "loyaltyhub-membership")
	if err != nil {
		logger.Error("tracing_init_failed", "error", err)
		os.Exit(1)
	}

	var repo membership.Repository
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			logger.Error("database_open_failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		repo = storage.NewPostgresRepository(db)
	} else {
		logger.Warn("no DATABASE_URL set, using in-memory record store")
		repo = storage.NewMemoryRepository()
	}

	resolver := pointrate.NewFixedRateResolver(nil)
	svc := membership.NewService(repo, resolver)
	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimitPerSecond), cfg.RateLimitBurst)
	handler := membership.NewHandler(svc, logger, limiter)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("http_listen", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http_server_error", "error", err)
			os.Exit(1)
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	s := <-sigc
	logger.Info("shutdown_signal", "signal", s.String())

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("http_shutdown_error", "error", err)
	}
	if err := shutdownTracing(ctx); err != nil {
		logger.Error("tracing_shutdown_error", "error", err)
	}
	logger.Info("service_stopped")
}
