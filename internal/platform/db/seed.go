package db

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"paydesk/internal/auth"
	"paydesk/internal/platform/config"
)

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Seed creates the bootstrap owner account when one is configured and no
// user with that email exists yet. A fresh deployment has no way to log
// in otherwise.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	return ensureOwnerUser(ctx, pool, cfg.SeedOwnerEmail, cfg.SeedOwnerPassword)
}

func ensureOwnerUser(ctx context.Context, db querier, email, password string) error {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return nil
	}

	var id string
	err := db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&id)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	_, err = db.Exec(ctx, `
    INSERT INTO users (email, password_hash, role)
    VALUES ($1, $2, $3)
  `, email, hash, auth.RoleOwner)
	return err
}
