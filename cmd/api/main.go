// Copyright (c) 2026 Citely. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Citely web shell.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Build the citation service client.
//  4. Wire domain services.
//  5. Populate the working set (remote samples or static fallback).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/taibuivan/citely/internal/api"
	"github.com/taibuivan/citely/internal/core/citation"
	"github.com/taibuivan/citely/internal/core/reading"
	"github.com/taibuivan/citely/internal/core/source"
	"github.com/taibuivan/citely/internal/platform/config"
	"github.com/taibuivan/citely/internal/platform/constants"
	"github.com/taibuivan/citely/internal/platform/remote"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("citation_service_url", cfg.ServiceURL),
	)

	// Cancelled on shutdown; stops background middleware goroutines.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	// ── 3. Citation Service Client ────────────────────────────────────────
	client := remote.NewClient(cfg.ServiceURL,
		remote.WithTimeout(cfg.RequestTimeout),
		remote.WithLogger(log),
	)

	// ── 4. Domain Services ────────────────────────────────────────────────
	sourceService := source.NewService(source.NewRemoteRepository(client), log)
	citationService := citation.NewService(citation.NewRemoteGenerator(client), log)
	readingService := reading.NewService(sourceService, client, cfg.HealthTimeout, log)

	// ── 5. Working Set ────────────────────────────────────────────────────
	readingHandler := reading.NewHandler(readingService, reading.NewWorkingSet())
	readingHandler.Initialize(rootCtx)

	_, state := readingHandler.Snapshot()
	log.Info("working_set_ready", slog.String("state", string(state)))

	// ── 6. HTTP Handlers ──────────────────────────────────────────────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckCitationService: readingService.HealthCheck,
	}, log)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Readings:  readingHandler,
		Citation:  citation.NewHandler(citationService),
		Source:    source.NewHandler(sourceService),
	}

	server := api.NewServer(rootCtx, cfg, log, handlers)

	// ── 7. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting_down_server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

// newLogger builds the JSON logger tagged with the application name and
// installs it as the slog default.
func newLogger(level slog.Level) *slog.Logger {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})).With(slog.String("app", constants.AppName))
	slog.SetDefault(log)
	return log
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
