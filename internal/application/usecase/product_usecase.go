package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/lfc-estoque/internal/application/dto"
	"github.com/jhoicas/lfc-estoque/internal/application/inventory"
	"github.com/jhoicas/lfc-estoque/internal/domain"
	"github.com/jhoicas/lfc-estoque/internal/domain/entity"
	"github.com/jhoicas/lfc-estoque/internal/domain/repository"
	"github.com/jhoicas/lfc-estoque/pkg/logger"
)

// ProductUseCase casos de uso CRUD para productos. TotalQuantity se maneja vía flujos de stock.
type ProductUseCase struct {
	repo     repository.ProductRepository
	txRunner inventory.TxRunner
	log      *logger.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, txRunner inventory.TxRunner, log *logger.Logger) *ProductUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ProductUseCase{repo: repo, txRunner: txRunner, log: log.Named("products")}
}

// Create crea un nuevo producto con TotalQuantity en 0. Nombre, SKU y código de barras son obligatorios.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	sku := strings.TrimSpace(in.SKU)
	barcode := strings.TrimSpace(in.Barcode)
	if name == "" || sku == "" || barcode == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		ID:        uuid.New().String(),
		Name:      name,
		SKU:       sku,
		Barcode:   barcode,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update aplica una actualización parcial. No permite modificar TotalQuantity.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if product.Name = strings.TrimSpace(*in.Name); product.Name == "" {
			return nil, domain.ErrInvalidInput
		}
	}
	if in.Barcode != nil {
		if product.Barcode = strings.TrimSpace(*in.Barcode); product.Barcode == "" {
			return nil, domain.ErrInvalidInput
		}
	}
	if in.SKU != nil {
		sku := strings.TrimSpace(*in.SKU)
		if sku == "" {
			return nil, domain.ErrInvalidInput
		}
		if sku != product.SKU {
			other, err := uc.repo.GetBySKU(ctx, sku)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != product.ID {
				return nil, domain.ErrDuplicate
			}
			product.SKU = sku
		}
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos con búsqueda "contiene" sobre el campo elegido (por defecto barcode).
func (uc *ProductUseCase) List(ctx context.Context, in dto.ProductSearchRequest) (*dto.ProductListResponse, error) {
	in.DefaultPage()
	field, err := entity.ParseSearchField(in.Field)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	filter := repository.ProductFilter{
		Field:  field,
		Term:   strings.TrimSpace(in.Q),
		Limit:  in.Limit,
		Offset: in.Offset,
	}
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// Delete elimina el producto y todos sus vínculos de stock en una sola transacción:
// si falla el borrado de vínculos el producto se conserva.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	var removed int
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockLinkRepository,
		productRepo repository.ProductRepository,
		_ repository.ShelfRepository,
		_ repository.StockMovementRepository,
	) error {
		product, err := productRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if removed, err = stockRepo.DeleteByProduct(ctx, id); err != nil {
			return err
		}
		return productRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("product_id", id).Int("links_removed", removed).Msg("producto eliminado")
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		SKU:           p.SKU,
		Barcode:       p.Barcode,
		TotalQuantity: p.TotalQuantity,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
