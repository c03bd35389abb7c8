package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/msomdec/ideabox/internal/domain"
)

// UserRepository implements domain.UserRepository using PostgreSQL.
type UserRepository struct {
	pool *pgxpool.Pool
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (login_id, nickname, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		user.LoginID, user.Nickname, user.PasswordHash,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateLoginID
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getOne(ctx, "id", `SELECT id, login_id, nickname, password_hash, created_at
		FROM users WHERE id = $1`, id)
}

func (r *UserRepository) GetByLoginID(ctx context.Context, loginID string) (*domain.User, error) {
	return r.getOne(ctx, "login id", `SELECT id, login_id, nickname, password_hash, created_at
		FROM users WHERE login_id = $1`, loginID)
}

func (r *UserRepository) getOne(ctx context.Context, by, query string, arg any) (*domain.User, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("query user by %s: %w", by, err)
	}
	user, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByNameLax[domain.User])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query user by %s: %w", by, err)
	}
	return user, nil
}
