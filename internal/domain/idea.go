package domain

import (
	"context"
	"time"
)

// Idea is a short note owned by exactly one user.
type Idea struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	Title     string    `db:"title"`
	Memo      string    `db:"memo"`
	CreatedAt time.Time `db:"created_at"`
}

// IdeaRepository defines persistence operations for ideas.
type IdeaRepository interface {
	Create(ctx context.Context, idea *Idea) error
	// ListByUser returns the user's ideas, most recently created first.
	ListByUser(ctx context.Context, userID int64) ([]Idea, error)
}
