package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/msomdec/ideabox/internal/domain"
)

// IdeaRepository implements domain.IdeaRepository using PostgreSQL.
type IdeaRepository struct {
	pool *pgxpool.Pool
}

func (r *IdeaRepository) Create(ctx context.Context, idea *domain.Idea) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO ideas (user_id, title, memo) VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		idea.UserID, idea.Title, idea.Memo,
	).Scan(&idea.ID, &idea.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert idea: %w", err)
	}
	return nil
}

func (r *IdeaRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Idea, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, title, memo, created_at
		 FROM ideas WHERE user_id = $1 ORDER BY id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list ideas by user: %w", err)
	}
	ideas, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[domain.Idea])
	if err != nil {
		return nil, fmt.Errorf("scan ideas: %w", err)
	}
	if ideas == nil {
		ideas = []domain.Idea{}
	}
	return ideas, nil
}
