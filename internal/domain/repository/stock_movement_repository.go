package repository

import (
	"context"
	"time"

	"github.com/jhoicas/lfc-estoque/internal/domain/entity"
)

// MovementFilter filtros del historial. Campos vacíos o nil no filtran.
type MovementFilter struct {
	ProductID string
	ShelfID   string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// StockMovementRepository define el puerto de persistencia para el historial de movimientos.
// List devuelve los más recientes primero; Count ignora Limit y Offset.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	List(ctx context.Context, filter MovementFilter) ([]*entity.StockMovement, error)
	Count(ctx context.Context, filter MovementFilter) (int, error)
}
