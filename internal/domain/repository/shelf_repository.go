package repository

import (
	"context"

	"github.com/jhoicas/lfc-estoque/internal/domain/entity"
)

// ShelfFilter criterios de listado de estanterías (búsqueda por nombre).
type ShelfFilter struct {
	Term   string
	Limit  int
	Offset int
}

// ShelfRepository define el puerto de persistencia para Shelf (DIP).
// GetByID devuelve (nil, nil) cuando no existe; Update y Delete devuelven domain.ErrNotFound.
type ShelfRepository interface {
	Create(ctx context.Context, shelf *entity.Shelf) error
	GetByID(ctx context.Context, id string) (*entity.Shelf, error)
	Update(ctx context.Context, shelf *entity.Shelf) error
	List(ctx context.Context, filter ShelfFilter) ([]*entity.Shelf, error)
	Count(ctx context.Context, filter ShelfFilter) (int, error) // ignora Limit y Offset
	Delete(ctx context.Context, id string) error
}
