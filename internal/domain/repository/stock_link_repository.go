package repository

import (
	"context"

	"github.com/jhoicas/lfc-estoque/internal/domain/entity"
)

// StockLinkFilter restringe ListDetails; campos vacíos no filtran.
type StockLinkFilter struct {
	ProductID string
	ShelfIDs  []string
}

// StockLinkRepository define el puerto para los vínculos producto-estantería.
// Los métodos *ForUpdate bloquean la fila y solo tienen sentido dentro de TxRunner.
// Los Get* devuelven (nil, nil) cuando no existe.
type StockLinkRepository interface {
	Create(ctx context.Context, link *entity.StockLink) error
	GetByID(ctx context.Context, id string) (*entity.StockLink, error)
	GetForUpdate(ctx context.Context, id string) (*entity.StockLink, error)
	GetByProductAndShelfForUpdate(ctx context.Context, productID, shelfID string) (*entity.StockLink, error)
	UpdateQuantity(ctx context.Context, id string, quantity int) error
	Delete(ctx context.Context, id string) error
	DeleteByProduct(ctx context.Context, productID string) (int, error)
	CountByShelf(ctx context.Context, shelfID string) (int, error)
	// ListDetails devuelve los vínculos con producto y estantería embebidos, en orden de creación.
	ListDetails(ctx context.Context, filter StockLinkFilter) ([]*entity.StockLinkDetail, error)
}
