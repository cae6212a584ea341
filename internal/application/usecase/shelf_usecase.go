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
	"github.com/jhoicas/lfc-estoque/internal/domain/stock"
)

// ShelfUseCase casos de uso CRUD para estanterías.
type ShelfUseCase struct {
	repo      repository.ShelfRepository
	stockRepo repository.StockLinkRepository
	txRunner  inventory.TxRunner
}

// NewShelfUseCase construye el caso de uso.
func NewShelfUseCase(repo repository.ShelfRepository, stockRepo repository.StockLinkRepository, txRunner inventory.TxRunner) *ShelfUseCase {
	return &ShelfUseCase{repo: repo, stockRepo: stockRepo, txRunner: txRunner}
}

// Create crea una nueva estantería.
func (uc *ShelfUseCase) Create(ctx context.Context, in dto.CreateShelfRequest) (*dto.ShelfResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	shelf := &entity.Shelf{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, shelf); err != nil {
		return nil, err
	}
	return toShelfResponse(shelf, nil), nil
}

// GetByID obtiene una estantería con los productos que guarda.
func (uc *ShelfUseCase) GetByID(ctx context.Context, id string) (*dto.ShelfResponse, error) {
	shelf, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if shelf == nil {
		return nil, domain.ErrNotFound
	}
	return uc.withProducts(ctx, shelf)
}

// Update renombra una estantería.
func (uc *ShelfUseCase) Update(ctx context.Context, id string, in dto.UpdateShelfRequest) (*dto.ShelfResponse, error) {
	shelf, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if shelf == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if shelf.Name = strings.TrimSpace(*in.Name); shelf.Name == "" {
			return nil, domain.ErrInvalidInput
		}
	}
	shelf.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, shelf); err != nil {
		return nil, err
	}
	return uc.withProducts(ctx, shelf)
}

// withProducts arma la respuesta con los productos guardados en la estantería.
func (uc *ShelfUseCase) withProducts(ctx context.Context, shelf *entity.Shelf) (*dto.ShelfResponse, error) {
	details, err := uc.stockRepo.ListDetails(ctx, repository.StockLinkFilter{ShelfIDs: []string{shelf.ID}})
	if err != nil {
		return nil, err
	}
	return toShelfResponse(shelf, stock.GroupByShelf(details)[shelf.ID]), nil
}

// List lista estanterías (búsqueda por nombre) junto con los productos guardados en cada una.
// Una estantería vacía se devuelve con products = [].
func (uc *ShelfUseCase) List(ctx context.Context, in dto.ShelfSearchRequest) (*dto.ShelfListResponse, error) {
	in.DefaultPage()
	filter := repository.ShelfFilter{
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
	byShelf := map[string][]stock.ShelfItem{}
	if len(list) > 0 {
		ids := make([]string, 0, len(list))
		for _, s := range list {
			ids = append(ids, s.ID)
		}
		details, err := uc.stockRepo.ListDetails(ctx, repository.StockLinkFilter{ShelfIDs: ids})
		if err != nil {
			return nil, err
		}
		byShelf = stock.GroupByShelf(details)
	}
	items := make([]dto.ShelfResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toShelfResponse(s, byShelf[s.ID]))
	}
	return &dto.ShelfListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// Delete elimina una estantería. Mientras tenga vínculos de stock devuelve domain.ErrShelfInUse.
func (uc *ShelfUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(
		stockRepo repository.StockLinkRepository,
		_ repository.ProductRepository,
		shelfRepo repository.ShelfRepository,
		_ repository.StockMovementRepository,
	) error {
		shelf, err := shelfRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if shelf == nil {
			return domain.ErrNotFound
		}
		n, err := stockRepo.CountByShelf(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrShelfInUse
		}
		return shelfRepo.Delete(ctx, id)
	})
}

func toShelfResponse(s *entity.Shelf, items []stock.ShelfItem) *dto.ShelfResponse {
	if s == nil {
		return nil
	}
	products := make([]dto.ShelfProductResponse, 0, len(items))
	for _, it := range items {
		products = append(products, dto.ShelfProductResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
		})
	}
	return &dto.ShelfResponse{
		ID:        s.ID,
		Name:      s.Name,
		Products:  products,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
