// Package main seeds the database with 50 test users so the paginated
// users query has something to page through during development.
//
// Usage:
//
//	JWT_KEY=whatever DB_PATH=data/users.db go run ./cmd/seed
//
// Seeded accounts all share the password "123456a" (hashed, like any other
// account). Emails follow seed<N>@email.com.br; running the command twice
// is safe — existing emails are skipped, not duplicated.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/rmaia/graphql-users/internal/apperror"
	"github.com/rmaia/graphql-users/internal/auth"
	"github.com/rmaia/graphql-users/internal/config"
	"github.com/rmaia/graphql-users/internal/model"
	sqliteRepo "github.com/rmaia/graphql-users/internal/repository/sqlite"
)

const (
	seedCount    = 50
	seedPassword = "123456a"
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

	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		logger.Error("opening database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()

	passwords := auth.NewPasswordService(cfg.BcryptCost)

	// One hash shared by all seed users: they all get the same password, and
	// hashing once instead of 50 times keeps the command quick even with a
	// production-grade cost.
	hash, err := passwords.Hash(seedPassword)
	if err != nil {
		logger.Error("hashing seed password", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()
	created, skipped := 0, 0

	for i := 1; i <= seedCount; i++ {
		user := &model.User{
			Name:         fmt.Sprintf("seed user %d", i),
			Email:        fmt.Sprintf("seed%d@email.com.br", i),
			PasswordHash: hash,
		}

		err := db.Create(ctx, user)
		switch {
		case err == nil:
			created++
		case errors.Is(err, apperror.ErrConflict):
			skipped++ // already seeded on a previous run
		default:
			logger.Error("seeding user",
				slog.String("email", user.Email),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
	}

	logger.Info("seed completed",
		slog.Int("created", created),
		slog.Int("skipped", skipped),
		slog.String("database", cfg.DBPath),
	)
}
