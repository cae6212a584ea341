package repository

import (
	"context"

	"github.com/jhoicas/lfc-estoque/internal/domain/entity"
)

// ProductFilter criterios de listado: búsqueda "contiene" sin distinguir mayúsculas sobre Field.
type ProductFilter struct {
	Field  entity.SearchField
	Term   string
	Limit  int
	Offset int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID y GetBySKU devuelven (nil, nil) cuando no existe; Update, Delete y AdjustTotal
// devuelven domain.ErrNotFound. Un SKU repetido se reporta como domain.ErrDuplicate.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	// Count cuenta los productos que cumplen filter, ignorando Limit y Offset.
	Count(ctx context.Context, filter ProductFilter) (int, error)
	Delete(ctx context.Context, id string) error
	// AdjustTotal suma delta (puede ser negativo) a TotalQuantity y devuelve el nuevo total.
	AdjustTotal(ctx context.Context, id string, delta int) (int, error)
	// RecomputeTotals recalcula TotalQuantity desde los StockLink y devuelve cuántos productos cambiaron.
	RecomputeTotals(ctx context.Context) (int, error)
}
