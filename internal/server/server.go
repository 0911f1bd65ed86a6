// Package server sets up the HTTP server, router, and route definitions.
//
// This is the composition root: the database, token and password services,
// user service, and GraphQL schema are assembled here and nowhere else. Each
// layer only receives what it needs; the service gets the repository
// interface, not the concrete sqlite.DB.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/graph-gophers/graphql-go/relay"

	"github.com/rmaia/graphql-users/internal/auth"
	"github.com/rmaia/graphql-users/internal/config"
	"github.com/rmaia/graphql-users/internal/graph"
	"github.com/rmaia/graphql-users/internal/middleware"
	sqliteRepo "github.com/rmaia/graphql-users/internal/repository/sqlite"
	"github.com/rmaia/graphql-users/internal/service"
)

// Server owns the router and the resources behind it. The database
// connection belongs to the server and is closed during graceful shutdown.
type Server struct {
	router *chi.Mux
	cfg    *config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New creates a Server with its full dependency graph wired up.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		cfg:    cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures middleware and mounts the GraphQL endpoint.
//
// Middleware executes in the order it is added: RequestID, RealIP,
// Recoverer, request logging, then BearerToken. BearerToken only copies the
// Authorization header into the context and never rejects; whether a token
// is required is decided per-operation inside the resolvers.
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(auth.BearerToken)

	tokens, err := auth.NewTokenService(s.cfg.JWTSecret, s.cfg.TokenTTL, s.cfg.RememberMeTokenTTL)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService(s.cfg.BcryptCost)

	userService := service.NewUserService(s.db, tokens, passwords, s.logger)

	schema, err := graph.ParseSchema(graph.NewResolver(userService, tokens))
	if err != nil {
		return fmt.Errorf("parsing GraphQL schema: %w", err)
	}

	// relay.Handler speaks standard GraphQL-over-HTTP:
	// POST / with {"query": ..., "variables": ..., "operationName": ...}
	s.router.Handle("/", &relay.Handler{Schema: schema})
	s.router.Handle("/graphql", &relay.Handler{Schema: schema})

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := s.db.Ping(); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return nil
}

// Start runs the HTTP server and handles graceful shutdown.
//
// On SIGINT/SIGTERM:
//  1. Stop accepting new connections
//  2. Wait for in-flight requests to finish (30s timeout)
//  3. Close the database connection (flushes the WAL, releases the file lock)
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.cfg.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d/graphql", s.cfg.Port)),
			slog.String("database", s.cfg.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
