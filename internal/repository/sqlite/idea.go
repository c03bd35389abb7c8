package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/msomdec/ideabox/internal/domain"
)

// IdeaRepository implements domain.IdeaRepository using SQLite.
type IdeaRepository struct {
	db *sqlx.DB
}

func (r *IdeaRepository) Create(ctx context.Context, idea *domain.Idea) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO ideas (user_id, title, memo, created_at) VALUES (?, ?, ?, ?)`,
		idea.UserID, idea.Title, idea.Memo, now,
	)
	if err != nil {
		return fmt.Errorf("insert idea: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	idea.ID = id
	idea.CreatedAt = now
	return nil
}

func (r *IdeaRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Idea, error) {
	ideas := []domain.Idea{}
	err := r.db.SelectContext(ctx, &ideas,
		`SELECT id, user_id, title, memo, created_at
		 FROM ideas WHERE user_id = ? ORDER BY id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list ideas by user: %w", err)
	}
	return ideas, nil
}
