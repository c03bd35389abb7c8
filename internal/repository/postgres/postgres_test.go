package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msomdec/ideabox/internal/domain"
	"github.com/msomdec/ideabox/internal/repository/postgres"
)

// newTestDB connects to IDEABOX_TEST_POSTGRES_URL or skips the test.
func newTestDB(t *testing.T) *postgres.DB {
	t.Helper()
	url := os.Getenv("IDEABOX_TEST_POSTGRES_URL")
	if url == "" {
		t.Skip("IDEABOX_TEST_POSTGRES_URL not set")
	}

	ctx := context.Background()
	db, err := postgres.New(ctx, url)
	require.NoError(t, err)
	require.NoError(t, db.InitSchema(ctx))
	t.Cleanup(func() { db.Close() })
	return db
}

// uniqueLogin keeps runs against a shared database from colliding.
func uniqueLogin(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString())
}

func TestUsers_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	u := &domain.User{LoginID: uniqueLogin("alice"), Nickname: "Alice", PasswordHash: "hash"}
	require.NoError(t, db.Users().Create(ctx, u))
	assert.NotZero(t, u.ID)

	byID, err := db.Users().GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.LoginID, byID.LoginID)

	byLogin, err := db.Users().GetByLoginID(ctx, u.LoginID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, byLogin.ID)

	_, err = db.Users().GetByLoginID(ctx, uniqueLogin("missing"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUsers_DuplicateLoginID(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	login := uniqueLogin("dup")

	require.NoError(t, db.Users().Create(ctx, &domain.User{LoginID: login, Nickname: "a", PasswordHash: "h"}))
	err := db.Users().Create(ctx, &domain.User{LoginID: login, Nickname: "b", PasswordHash: "h"})
	assert.ErrorIs(t, err, domain.ErrDuplicateLoginID)
}

func TestIdeas_ListNewestFirstAndIsolated(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	a := &domain.User{LoginID: uniqueLogin("a"), Nickname: "A", PasswordHash: "h"}
	b := &domain.User{LoginID: uniqueLogin("b"), Nickname: "B", PasswordHash: "h"}
	require.NoError(t, db.Users().Create(ctx, a))
	require.NoError(t, db.Users().Create(ctx, b))

	for _, title := range []string{"I1", "I2", "I3"} {
		require.NoError(t, db.Ideas().Create(ctx, &domain.Idea{UserID: a.ID, Title: title}))
	}
	require.NoError(t, db.Ideas().Create(ctx, &domain.Idea{UserID: b.ID, Title: "other"}))

	ideas, err := db.Ideas().ListByUser(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, ideas, 3)
	assert.Equal(t, "I3", ideas[0].Title)
	assert.Equal(t, "I1", ideas[2].Title)
}

func TestRevocations(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	jti := uuid.NewString()

	require.NoError(t, db.Revocations().Revoke(ctx, jti, time.Now().Add(time.Hour)))
	revoked, err := db.Revocations().IsRevoked(ctx, jti)
	require.NoError(t, err)
	assert.True(t, revoked)
}
