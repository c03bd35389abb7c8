package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevocationRepository_RevokeAndCheck(t *testing.T) {
	db := newTestDB(t)
	repo := db.Revocations()
	ctx := context.Background()

	revoked, err := repo.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	exp := time.Now().Add(time.Hour)
	require.NoError(t, repo.Revoke(ctx, "jti-1", exp))
	// Revoking twice is a no-op.
	require.NoError(t, repo.Revoke(ctx, "jti-1", exp))

	revoked, err = repo.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestRevocationRepository_PurgeExpired(t *testing.T) {
	db := newTestDB(t)
	repo := db.Revocations()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.Revoke(ctx, "old", now.Add(-time.Hour)))
	require.NoError(t, repo.Revoke(ctx, "fresh", now.Add(time.Hour)))

	n, err := repo.PurgeExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	revoked, err := repo.IsRevoked(ctx, "fresh")
	require.NoError(t, err)
	assert.True(t, revoked)
}
