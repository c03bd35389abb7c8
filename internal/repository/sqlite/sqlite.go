package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"

	"github.com/jmoiron/sqlx"
	"github.com/msomdec/ideabox/internal/domain"
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// DB wraps a SQLite connection and hands out the repositories built on it.
type DB struct {
	SqlDB *sql.DB
	x     *sqlx.DB

	users       *UserRepository
	ideas       *IdeaRepository
	revocations *RevocationRepository
}

var _ domain.Database = (*DB)(nil)

// New opens a SQLite database at the given path and configures it for use.
// WAL mode, foreign keys and a busy timeout are set through the DSN so that
// every pooled connection gets them.
func New(dbPath string) (*DB, error) {
	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "busy_timeout(5000)")
	q.Set("_time_format", "sqlite")
	dsn := "file:" + dbPath + "?" + q.Encode()

	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite serializes writers; one connection avoids SQLITE_BUSY churn.
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(context.Background()); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	x := sqlx.NewDb(sqlDB, "sqlite")
	db := &DB{SqlDB: sqlDB, x: x}
	db.users = &UserRepository{db: x}
	db.ideas = &IdeaRepository{db: x}
	db.revocations = &RevocationRepository{db: x}
	return db, nil
}

// InitSchema creates any missing tables.
func (d *DB) InitSchema(ctx context.Context) error {
	return applySchema(ctx, d.SqlDB)
}

// Ping checks that the database file is reachable.
func (d *DB) Ping(ctx context.Context) error {
	return d.SqlDB.PingContext(ctx)
}

func (d *DB) Users() domain.UserRepository                    { return d.users }
func (d *DB) Ideas() domain.IdeaRepository                    { return d.ideas }
func (d *DB) Revocations() domain.SessionRevocationRepository { return d.revocations }

// Close closes the underlying connection pool.
func (d *DB) Close() error {
	return d.SqlDB.Close()
}

// isUniqueConstraintError reports whether err is a SQLite UNIQUE violation.
func isUniqueConstraintError(err error) bool {
	var se *msqlite.Error
	if errors.As(err, &se) {
		return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			se.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}
