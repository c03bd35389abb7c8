package domain

import "context"

// Database defines lifecycle operations for the underlying database.
// SQLite and Postgres each embed their own schema and expose the same
// repositories, so the backend is chosen at startup.
type Database interface {
	InitSchema(ctx context.Context) error
	Ping(ctx context.Context) error
	Users() UserRepository
	Ideas() IdeaRepository
	Revocations() SessionRevocationRepository
	Close() error
}
