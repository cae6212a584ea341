package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lfc-estoque/internal/domain"
	"github.com/jhoicas/lfc-estoque/internal/domain/entity"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client), mr
}

func TestRedisStore_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)

	now := time.Now().UTC().Truncate(time.Second)
	sess := &entity.Session{
		ID:        "s-1",
		UserID:    "u-1",
		Email:     "ana@example.com",
		IssuedAt:  now,
		ExpiresAt: now.Add(30 * time.Minute),
	}
	require.NoError(t, store.Save(ctx, sess))
	assert.True(t, mr.Exists("session:s-1"))
	assert.InDelta(t, (30 * time.Minute).Seconds(), mr.TTL("session:s-1").Seconds(), 5)

	got, err := store.Get(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, "u-1", got.UserID)
	assert.Equal(t, "ana@example.com", got.Email)
	assert.True(t, got.ExpiresAt.Equal(sess.ExpiresAt))

	require.NoError(t, store.Delete(ctx, "s-1"))
	_, err = store.Get(ctx, "s-1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.ErrorIs(t, store.Delete(ctx, "s-1"), domain.ErrSessionNotFound)
}

func TestRedisStore_ExpiresWithTTL(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)

	now := time.Now()
	require.NoError(t, store.Save(ctx, &entity.Session{ID: "s-2", UserID: "u", IssuedAt: now, ExpiresAt: now.Add(time.Minute)}))

	mr.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, "s-2")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestRedisStore_RejectsExpiredOrEmpty(t *testing.T) {
	ctx := context.Background()
	store, _ := newRedisStore(t)

	assert.ErrorIs(t, store.Save(ctx, nil), domain.ErrInvalidInput)
	assert.ErrorIs(t, store.Save(ctx, &entity.Session{ID: "old", ExpiresAt: time.Now().Add(-time.Second)}), domain.ErrInvalidInput)
}

func TestRedisStore_ConnectionError(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)
	mr.Close()

	_, err := store.Get(ctx, "any")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSessionNotFound)
}
