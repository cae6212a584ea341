package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lfc-estoque/internal/domain/entity"
	"github.com/jhoicas/lfc-estoque/internal/domain/repository"
	"github.com/jhoicas/lfc-estoque/pkg/config"
	"github.com/jhoicas/lfc-estoque/pkg/logger"
)

func TestOpen_Memory(t *testing.T) {
	ctx := context.Background()
	b, err := Open(ctx, config.Config{Storage: config.StorageConfig{Driver: config.StorageDriverMemory}}, logger.Nop())
	require.NoError(t, err)
	defer b.Close()

	assert.Equal(t, config.StorageDriverMemory, b.Driver)
	require.NoError(t, b.Products.Create(ctx, &entity.Product{ID: "p1", Name: "Lixa", SKU: "LIX", Barcode: "1"}))
	got, err := b.Products.GetByID(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Lixa", got.Name)

	moves, err := b.Movements.List(ctx, repository.MovementFilter{})
	require.NoError(t, err)
	assert.Empty(t, moves)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.Config{Storage: config.StorageConfig{Driver: "sqlite"}}, logger.Nop())
	assert.Error(t, err)
}
