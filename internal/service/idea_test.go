package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msomdec/ideabox/internal/domain"
	"github.com/msomdec/ideabox/internal/service"
)

func newTestIdeaService(t *testing.T) (*service.IdeaService, *service.AuthService) {
	t.Helper()
	auth, db := newTestAuthService(t)
	return service.NewIdeaService(db.Ideas()), auth
}

func TestIdeaService_Add(t *testing.T) {
	ideas, auth := newTestIdeaService(t)
	ctx := context.Background()
	user, err := auth.Register(ctx, "alice", "Alice", "pw1")
	require.NoError(t, err)

	idea, err := ideas.Add(ctx, user.ID, "  Buy milk  ", "  two litres ")
	require.NoError(t, err)
	assert.NotZero(t, idea.ID)
	assert.Equal(t, "Buy milk", idea.Title)
	assert.Equal(t, "two litres", idea.Memo)
	assert.Equal(t, user.ID, idea.UserID)
}

func TestIdeaService_Add_EmptyTitleWritesNothing(t *testing.T) {
	ideas, auth := newTestIdeaService(t)
	ctx := context.Background()
	user, err := auth.Register(ctx, "alice", "Alice", "pw1")
	require.NoError(t, err)

	for _, title := range []string{"", " ", "\t\n  "} {
		_, err := ideas.Add(ctx, user.ID, title, "memo")
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "title %q", title)
	}

	list, err := ideas.List(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestIdeaService_List_NewestFirst(t *testing.T) {
	ideas, auth := newTestIdeaService(t)
	ctx := context.Background()
	user, err := auth.Register(ctx, "alice", "Alice", "pw1")
	require.NoError(t, err)

	i1, err := ideas.Add(ctx, user.ID, "I1", "")
	require.NoError(t, err)
	i2, err := ideas.Add(ctx, user.ID, "I2", "")
	require.NoError(t, err)
	i3, err := ideas.Add(ctx, user.ID, "I3", "")
	require.NoError(t, err)

	list, err := ideas.List(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []int64{i3.ID, i2.ID, i1.ID}, []int64{list[0].ID, list[1].ID, list[2].ID})
}

func TestIdeaService_List_OwnershipIsolation(t *testing.T) {
	ideas, auth := newTestIdeaService(t)
	ctx := context.Background()
	a, err := auth.Register(ctx, "a", "A", "pw")
	require.NoError(t, err)
	b, err := auth.Register(ctx, "b", "B", "pw")
	require.NoError(t, err)

	_, err = ideas.Add(ctx, a.ID, "a1", "")
	require.NoError(t, err)
	_, err = ideas.Add(ctx, b.ID, "b1", "")
	require.NoError(t, err)
	_, err = ideas.Add(ctx, b.ID, "b2", "")
	require.NoError(t, err)

	listA, err := ideas.List(ctx, a.ID)
	require.NoError(t, err)
	for _, i := range listA {
		assert.Equal(t, a.ID, i.UserID)
	}
	assert.Len(t, listA, 1)

	listB, err := ideas.List(ctx, b.ID)
	require.NoError(t, err)
	for _, i := range listB {
		assert.Equal(t, b.ID, i.UserID)
	}
	assert.Len(t, listB, 2)
}
