package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/lfc-estoque/internal/application/dto"
	"github.com/jhoicas/lfc-estoque/internal/domain"
	"github.com/jhoicas/lfc-estoque/internal/domain/entity"
	"github.com/jhoicas/lfc-estoque/internal/domain/repository"
	"github.com/jhoicas/lfc-estoque/internal/domain/stock"
	"github.com/jhoicas/lfc-estoque/pkg/logger"
)

// StockUseCase flujos de stock: asignar y retirar cantidades de una estantería, listar el
// inventario agrupado por producto y reconciliar los totales cacheados. Las mutaciones corren
// en una sola transacción con bloqueo de fila (SELECT FOR UPDATE), de modo que el total del
// producto nunca se separa de la suma de sus vínculos.
type StockUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	stockRepo   repository.StockLinkRepository
	moveRepo    repository.StockMovementRepository
	report      StockReportGenerator
	log         *logger.Logger
	now         func() time.Time
}

// NewStockUseCase construye el caso de uso. report puede ser nil si no se expone el PDF.
func NewStockUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	stockRepo repository.StockLinkRepository,
	moveRepo repository.StockMovementRepository,
	report StockReportGenerator,
	log *logger.Logger,
) *StockUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &StockUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		stockRepo:   stockRepo,
		moveRepo:    moveRepo,
		report:      report,
		log:         log.Named("stock"),
		now:         time.Now,
	}
}

// Assign suma quantity al vínculo (producto, estantería), creándolo si no existe, y suma lo mismo
// al total del producto. La validación ocurre antes de tocar el almacenamiento.
func (uc *StockUseCase) Assign(ctx context.Context, in dto.AssignStockRequest) (*dto.AssignStockResponse, error) {
	productID := strings.TrimSpace(in.ProductID)
	shelfID := strings.TrimSpace(in.ShelfID)
	if productID == "" || shelfID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	var (
		result *entity.StockLink
		total  int
	)
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockLinkRepository,
		productRepo repository.ProductRepository,
		shelfRepo repository.ShelfRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		product, err := productRepo.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		shelf, err := shelfRepo.GetByID(ctx, shelfID)
		if err != nil {
			return err
		}
		if shelf == nil {
			return domain.ErrNotFound
		}

		now := uc.now()
		link, err := stockRepo.GetByProductAndShelfForUpdate(ctx, productID, shelfID)
		if err != nil {
			return err
		}
		if link == nil {
			link = &entity.StockLink{
				ID:        uuid.New().String(),
				ProductID: productID,
				ShelfID:   shelfID,
				Quantity:  in.Quantity,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := stockRepo.Create(ctx, link); err != nil {
				return err
			}
		} else {
			link.Quantity += in.Quantity
			link.UpdatedAt = now
			if err := stockRepo.UpdateQuantity(ctx, link.ID, link.Quantity); err != nil {
				return err
			}
		}

		total, err = productRepo.AdjustTotal(ctx, productID, in.Quantity)
		if err != nil {
			return err
		}
		result = link
		return movementRepo.Create(ctx, &entity.StockMovement{
			ID:           uuid.New().String(),
			ProductID:    productID,
			ShelfID:      shelfID,
			LinkID:       link.ID,
			Type:         entity.MovementTypeAssign,
			Quantity:     in.Quantity,
			LinkBalance:  link.Quantity,
			ProductTotal: total,
			CreatedBy:    in.CreatedBy,
			CreatedAt:    now,
		})
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("product_id", productID).
		Str("shelf_id", shelfID).
		Int("quantity", in.Quantity).
		Int("link_quantity", result.Quantity).
		Int("product_total", total).
		Msg("stock asignado")

	return &dto.AssignStockResponse{
		Message:      "Stock asignado correctamente",
		Link:         toStockLinkResponse(result),
		ProductTotal: total,
	}, nil
}

// Withdraw resta quantity del vínculo y del total del producto. Si el vínculo llega a cero se
// elimina. Retirar más de lo disponible devuelve domain.ErrInsufficientStock sin cambios.
func (uc *StockUseCase) Withdraw(ctx context.Context, linkID string, in dto.WithdrawStockRequest) (*dto.WithdrawStockResponse, error) {
	linkID = strings.TrimSpace(linkID)
	if linkID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	out := &dto.WithdrawStockResponse{LinkID: linkID}
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockLinkRepository,
		productRepo repository.ProductRepository,
		_ repository.ShelfRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		link, err := stockRepo.GetForUpdate(ctx, linkID)
		if err != nil {
			return err
		}
		if link == nil {
			return domain.ErrNotFound
		}
		if in.Quantity > link.Quantity {
			return domain.ErrInsufficientStock
		}

		remaining := link.Quantity - in.Quantity
		if remaining == 0 {
			if err := stockRepo.Delete(ctx, link.ID); err != nil {
				return err
			}
			out.Deleted = true
		} else if err := stockRepo.UpdateQuantity(ctx, link.ID, remaining); err != nil {
			return err
		}

		total, err := productRepo.AdjustTotal(ctx, link.ProductID, -in.Quantity)
		if err != nil {
			return err
		}
		out.ProductID = link.ProductID
		out.Quantity = remaining
		out.ProductTotal = total
		return movementRepo.Create(ctx, &entity.StockMovement{
			ID:           uuid.New().String(),
			ProductID:    link.ProductID,
			ShelfID:      link.ShelfID,
			LinkID:       link.ID,
			Type:         entity.MovementTypeWithdraw,
			Quantity:     in.Quantity,
			LinkBalance:  remaining,
			ProductTotal: total,
			CreatedBy:    in.CreatedBy,
			CreatedAt:    uc.now(),
		})
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("link_id", linkID).
		Str("product_id", out.ProductID).
		Int("quantity", in.Quantity).
		Int("link_quantity", out.Quantity).
		Bool("deleted", out.Deleted).
		Int("product_total", out.ProductTotal).
		Msg("stock retirado")

	out.Message = "Stock retirado correctamente"
	return out, nil
}

// GroupedRows devuelve el inventario agrupado por producto, filtrado en memoria por el campo elegido.
func (uc *StockUseCase) GroupedRows(ctx context.Context, in dto.StockSearchRequest) ([]stock.GroupedRow, error) {
	field, err := entity.ParseSearchField(in.Field)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	details, err := uc.stockRepo.ListDetails(ctx, repository.StockLinkFilter{})
	if err != nil {
		return nil, err
	}
	rows := stock.GroupByProduct(details)
	return stock.FilterRows(rows, field, strings.TrimSpace(in.Q)), nil
}

// ListGrouped es GroupedRows con la presentación de la API (incluye shelves_display truncado).
func (uc *StockUseCase) ListGrouped(ctx context.Context, in dto.StockSearchRequest) (*dto.GroupedStockResponse, error) {
	rows, err := uc.GroupedRows(ctx, in)
	if err != nil {
		return nil, err
	}
	items := make([]dto.GroupedStockRow, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.GroupedStockRow{
			ProductID:      r.ProductID,
			Name:           r.Name,
			SKU:            r.SKU,
			Barcode:        r.Barcode,
			TotalQuantity:  r.TotalQuantity,
			Shelves:        r.Shelves,
			ShelvesDisplay: stock.FormatShelfNames(r.Shelves),
		})
	}
	return &dto.GroupedStockResponse{Items: items, Total: len(items)}, nil
}

// ByProduct devuelve el producto con sus vínculos y estanterías (pantalla de retirada).
func (uc *StockUseCase) ByProduct(ctx context.Context, productID string) (*dto.ProductStockResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	details, err := uc.stockRepo.ListDetails(ctx, repository.StockLinkFilter{ProductID: productID})
	if err != nil {
		return nil, err
	}
	links := make([]dto.ProductStockLink, 0, len(details))
	for _, d := range details {
		names := d.ShelfNames
		if names == nil {
			names = []string{}
		}
		links = append(links, dto.ProductStockLink{
			ID:         d.ID,
			ShelfID:    d.ShelfID,
			ShelfNames: names,
			Quantity:   d.Quantity,
		})
	}
	return &dto.ProductStockResponse{
		Product: dto.ProductResponse{
			ID:            product.ID,
			Name:          product.Name,
			SKU:           product.SKU,
			Barcode:       product.Barcode,
			TotalQuantity: product.TotalQuantity,
			CreatedAt:     product.CreatedAt,
			UpdatedAt:     product.UpdatedAt,
		},
		Links: links,
	}, nil
}

// Reconcile recalcula el total de cada producto desde sus vínculos.
func (uc *StockUseCase) Reconcile(ctx context.Context) (*dto.ReconcileResponse, error) {
	var corrected int
	err := uc.txRunner.Run(ctx, func(
		_ repository.StockLinkRepository,
		productRepo repository.ProductRepository,
		_ repository.ShelfRepository,
		_ repository.StockMovementRepository,
	) error {
		n, err := productRepo.RecomputeTotals(ctx)
		corrected = n
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int("corrected", corrected).Msg("totales reconciliados")
	return &dto.ReconcileResponse{Message: "Totales recalculados", Corrected: corrected}, nil
}

// Report genera el reporte de inventario agrupado.
func (uc *StockUseCase) Report(ctx context.Context, in dto.StockSearchRequest) ([]byte, error) {
	if uc.report == nil {
		return nil, domain.ErrNotFound
	}
	rows, err := uc.GroupedRows(ctx, in)
	if err != nil {
		return nil, err
	}
	return uc.report.GenerateStockReport(ctx, rows, uc.now())
}

// Movements lista el historial de asignaciones y retiradas, más reciente primero.
func (uc *StockUseCase) Movements(ctx context.Context, in dto.MovementSearchRequest) (*dto.MovementListResponse, error) {
	in.DefaultPage()
	if in.From != nil && in.To != nil && !in.From.Before(*in.To) {
		return nil, domain.ErrInvalidInput
	}
	filter := repository.MovementFilter{
		ProductID: strings.TrimSpace(in.ProductID),
		ShelfID:   strings.TrimSpace(in.ShelfID),
		From:      in.From,
		To:        in.To,
		Limit:     in.Limit,
		Offset:    in.Offset,
	}
	list, err := uc.moveRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := uc.moveRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.MovementResponse{
			ID:           m.ID,
			ProductID:    m.ProductID,
			ShelfID:      m.ShelfID,
			LinkID:       m.LinkID,
			Type:         m.Type,
			Quantity:     m.Quantity,
			LinkBalance:  m.LinkBalance,
			ProductTotal: m.ProductTotal,
			CreatedBy:    m.CreatedBy,
			CreatedAt:    m.CreatedAt,
		})
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

func toStockLinkResponse(l *entity.StockLink) dto.StockLinkResponse {
	return dto.StockLinkResponse{
		ID:        l.ID,
		ProductID: l.ProductID,
		ShelfID:   l.ShelfID,
		Quantity:  l.Quantity,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}
