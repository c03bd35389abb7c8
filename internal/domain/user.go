package domain

import (
	"context"
	"time"
)

// User represents a registered account. PasswordHash holds a bcrypt hash;
// the plaintext password is never stored.
type User struct {
	ID           int64     `db:"id"`
	LoginID      string    `db:"login_id"`
	Nickname     string    `db:"nickname"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByLoginID(ctx context.Context, loginID string) (*User, error)
}
