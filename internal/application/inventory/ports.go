package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/lfc-estoque/internal/domain/repository"
	"github.com/jhoicas/lfc-estoque/internal/domain/stock"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error todo lo escrito se descarta.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockLinkRepository,
		productRepo repository.ProductRepository,
		shelfRepo repository.ShelfRepository,
		movementRepo repository.StockMovementRepository,
	) error) error
}

// StockReportGenerator renderiza el listado agrupado de inventario (p. ej. como PDF).
type StockReportGenerator interface {
	GenerateStockReport(ctx context.Context, rows []stock.GroupedRow, generatedAt time.Time) ([]byte, error)
}
