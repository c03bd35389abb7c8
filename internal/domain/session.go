package domain

import (
	"context"
	"time"
)

// SessionRevocationRepository records session token IDs that were logged out
// before their natural expiry.
type SessionRevocationRepository interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
	// PurgeExpired drops revocations whose token would have expired anyway.
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}
