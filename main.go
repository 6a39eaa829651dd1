// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pollmaps/mysite/cliparse"
	"github.com/pollmaps/mysite/db"
	"github.com/pollmaps/mysite/logging"
	"github.com/pollmaps/mysite/middleware"
	"github.com/pollmaps/mysite/router"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Real environment variables win over .env
	if err := cliparse.LoadDotEnv(".env"); err != nil {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat))

	ctx := context.Background()

	// Connect to the configured database
	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(ctx, dbConn, cfg.DatabaseType); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready")

	if cfg.Seed {
		n, err := db.SeedQuestions(ctx, dbConn)
		if err != nil {
			slog.Error("seeding questions failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Seeded demo questions", "count", n)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	saveLimiter := middleware.NewRateLimiter(cfg.SaveRouteRate, cfg.SaveRouteBurst).
		TrustProxies(cfg.TrustedProxies...)

	// Create server
	server := http.Server{
		Handler:           router.Handler(router.NewRouter(dbConn, cfg, saveLimiter)),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Listening", "port", cfg.Port, "database", cfg.DatabaseType)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		saveLimiter.Run(gCtx.Done())
		return nil
	})

	g.Go(func() error {
		// Wait for Ctrl-C signal or a failed listener
		<-gCtx.Done()
		slog.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("Server closed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server closed")
}
