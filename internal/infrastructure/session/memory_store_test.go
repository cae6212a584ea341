package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lfc-estoque/internal/domain"
	"github.com/jhoicas/lfc-estoque/internal/domain/entity"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, &entity.Session{ID: "a", UserID: "u", ExpiresAt: now.Add(time.Hour)}))

	got, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "u", got.UserID)

	got.UserID = "changed"
	again, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "u", again.UserID)

	now = now.Add(2 * time.Hour)
	_, err = store.Get(ctx, "a")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.ErrorIs(t, store.Delete(ctx, "a"), domain.ErrSessionNotFound)
}

func TestMemoryStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Save(ctx, &entity.Session{ID: "b", ExpiresAt: time.Now().Add(time.Hour)}))
	require.NoError(t, store.Delete(ctx, "b"))

	_, err := store.Get(ctx, "b")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.ErrorIs(t, store.Save(ctx, &entity.Session{}), domain.ErrInvalidInput)
}

func TestMemoryStore_SavePurgaVencidas(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, &entity.Session{ID: "abandonada-1", ExpiresAt: now.Add(time.Minute)}))
	require.NoError(t, store.Save(ctx, &entity.Session{ID: "abandonada-2", ExpiresAt: now.Add(time.Minute)}))
	require.NoError(t, store.Save(ctx, &entity.Session{ID: "larga", ExpiresAt: now.Add(24 * time.Hour)}))
	require.Equal(t, 3, store.Len())

	now = now.Add(time.Hour)
	require.NoError(t, store.Save(ctx, &entity.Session{ID: "nueva", ExpiresAt: now.Add(time.Hour)}))

	assert.Equal(t, 2, store.Len(), "las sesiones vencidas se purgan sin que nadie las lea")
	_, err := store.Get(ctx, "larga")
	assert.NoError(t, err)

	assert.ErrorIs(t, store.Save(ctx, &entity.Session{ID: "vieja", ExpiresAt: now.Add(-time.Second)}), domain.ErrInvalidInput)
}
