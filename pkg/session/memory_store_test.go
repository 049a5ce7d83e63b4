package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fortunecookie/pkg/session"
)

func TestMemoryStore_SaveLoad(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore(0)
	t.Cleanup(func() { _ = store.Close() })
	ctx := context.Background()

	_, err := store.Load(ctx, "missing")
	assert.ErrorIs(t, err, session.ErrNoSession)

	s := session.NewSession("tok", time.Hour)
	s.Set("quizIndex", 2)
	require.NoError(t, store.Save(ctx, s))

	s.Set("quizIndex", 3)
	loaded, err := store.Load(ctx, "tok")
	require.NoError(t, err)
	idx, _ := loaded.Int("quizIndex")
	assert.Equal(t, 2, idx, "store keeps its own copy")
	assert.False(t, loaded.Dirty())

	require.NoError(t, store.Delete(ctx, "tok"))
	_, err = store.Load(ctx, "tok")
	assert.ErrorIs(t, err, session.ErrNoSession)

	assert.ErrorIs(t, store.Save(ctx, nil), session.ErrInvalidSession)
	assert.ErrorIs(t, store.Save(ctx, &session.Session{}), session.ErrInvalidSession)
}

func TestMemoryStore_Expiry(t *testing.T) {
	t.Parallel()

	now := time.Now()
	store := session.NewMemoryStore(0, session.WithMemoryClock(func() time.Time { return now }))
	t.Cleanup(func() { _ = store.Close() })
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, session.NewSession("short", time.Minute)))
	require.NoError(t, store.Save(ctx, session.NewSession("long", time.Hour)))
	require.NoError(t, store.Save(ctx, session.NewSession("gone", time.Minute)))

	now = now.Add(2 * time.Minute)

	_, err := store.Load(ctx, "short")
	assert.ErrorIs(t, err, session.ErrExpired)
	assert.Equal(t, 2, store.Len(), "expired load evicts")

	assert.Equal(t, 1, store.Sweep())
	assert.Equal(t, 1, store.Len())

	_, err = store.Load(ctx, "long")
	assert.NoError(t, err)
}

func TestMemoryStore_CloseTwice(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore(time.Millisecond)
	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}
