// Package main is the entry point for the GraphQL user API server.
//
// main() stays minimal — its only jobs are:
//  1. Set up logging
//  2. Load configuration from the environment
//  3. Create and start the server
//
// All actual logic lives in the internal packages. The cmd/ directory is
// the Go convention for executable entry points; this project has two
// (cmd/server and cmd/seed), each with its own main.go.
package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rmaia/graphql-users/internal/config"
	"github.com/rmaia/graphql-users/internal/server"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Make sure the database directory exists (no-op for ":memory:").
	if cfg.DBPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			logger.Error("failed to create database directory",
				slog.String("dir", filepath.Dir(cfg.DBPath)),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start() blocks until the server is shut down (Ctrl+C or SIGTERM).
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
