// Package postgres implements the domain repositories on PostgreSQL via pgx.
package postgres

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/msomdec/ideabox/internal/domain"
)

//go:embed schema.sql
var schemaSQL string

// pgUniqueViolation is the SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

// DB wraps a pgx connection pool and hands out repositories built on it.
type DB struct {
	Pool *pgxpool.Pool

	users       *UserRepository
	ideas       *IdeaRepository
	revocations *RevocationRepository
}

var _ domain.Database = (*DB)(nil)

// New connects to the database at url.
func New(ctx context.Context, url string) (*DB, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	cfg.MaxConns = 10

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{
		Pool:        pool,
		users:       &UserRepository{pool: pool},
		ideas:       &IdeaRepository{pool: pool},
		revocations: &RevocationRepository{pool: pool},
	}, nil
}

// InitSchema creates any missing tables.
func (d *DB) InitSchema(ctx context.Context) error {
	if _, err := d.Pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Ping checks that the server answers.
func (d *DB) Ping(ctx context.Context) error {
	return d.Pool.Ping(ctx)
}

func (d *DB) Users() domain.UserRepository                    { return d.users }
func (d *DB) Ideas() domain.IdeaRepository                    { return d.ideas }
func (d *DB) Revocations() domain.SessionRevocationRepository { return d.revocations }

// Close releases every pooled connection.
func (d *DB) Close() error {
	d.Pool.Close()
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
