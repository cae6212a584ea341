package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/jhoicas/lfc-estoque/internal/domain"
	"github.com/jhoicas/lfc-estoque/internal/domain/entity"
	"github.com/jhoicas/lfc-estoque/internal/domain/repository"
	"github.com/jhoicas/lfc-estoque/pkg/textsearch"
)

var _ repository.ProductRepository = (*ProductRepository)(nil)

// ProductRepository implementación en memoria de repository.ProductRepository.
type ProductRepository struct {
	store *Store
	inTx  bool
}

// NewProductRepository construye el repositorio.
func NewProductRepository(store *Store) *ProductRepository {
	return &ProductRepository{store: store}
}

// Create inserta un producto. SKU repetido → domain.ErrDuplicate.
func (r *ProductRepository) Create(_ context.Context, p *entity.Product) error {
	return r.store.scope(r.inTx, func(st *state) error {
		if _, ok := st.products[p.ID]; ok {
			return domain.ErrDuplicate
		}
		if skuTaken(st, p.SKU, "") {
			return domain.ErrDuplicate
		}
		st.products[p.ID] = *p
		st.productOrder = append(st.productOrder, p.ID)
		return nil
	})
}

// GetByID devuelve el producto o (nil, nil).
func (r *ProductRepository) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.store.scope(r.inTx, func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

// GetBySKU devuelve el producto con ese SKU o (nil, nil).
func (r *ProductRepository) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	var out *entity.Product
	err := r.store.scope(r.inTx, func(st *state) error {
		for _, id := range st.productOrder {
			if p := st.products[id]; p.SKU == sku {
				out = &p
				return nil
			}
		}
		return nil
	})
	return out, err
}

// Update reemplaza nombre, SKU y código de barras. TotalQuantity no se toca.
func (r *ProductRepository) Update(_ context.Context, p *entity.Product) error {
	return r.store.scope(r.inTx, func(st *state) error {
		cur, ok := st.products[p.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if skuTaken(st, p.SKU, p.ID) {
			return domain.ErrDuplicate
		}
		cur.Name = p.Name
		cur.SKU = p.SKU
		cur.Barcode = p.Barcode
		cur.UpdatedAt = p.UpdatedAt
		st.products[p.ID] = cur
		return nil
	})
}

// List filtra por "contiene" sin distinguir mayúsculas (como ILIKE: los acentos cuentan) y ordena por nombre.
func (r *ProductRepository) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0)
	err := r.store.scope(r.inTx, func(st *state) error {
		for _, id := range st.productOrder {
			p := st.products[id]
			snap := entity.ProductSnapshot{Name: p.Name, SKU: p.SKU, Barcode: p.Barcode}
			if f.Term != "" && !textsearch.ContainsFold(f.Field.Value(snap), f.Term) {
				continue
			}
			out = append(out, &p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(out, func(a, b *entity.Product) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	return page(out, f.Limit, f.Offset), nil
}

// Delete elimina el producto. Con vínculos de stock restantes devuelve domain.ErrConflict.
func (r *ProductRepository) Delete(_ context.Context, id string) error {
	return r.store.scope(r.inTx, func(st *state) error {
		if _, ok := st.products[id]; !ok {
			return domain.ErrNotFound
		}
		for _, l := range st.links {
			if l.ProductID == id {
				return domain.ErrConflict
			}
		}
		delete(st.products, id)
		st.productOrder = removeID(st.productOrder, id)
		return nil
	})
}

// AdjustTotal suma delta al total. Un total negativo se rechaza con domain.ErrConflict.
func (r *ProductRepository) AdjustTotal(_ context.Context, id string, delta int) (int, error) {
	var total int
	err := r.store.scope(r.inTx, func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return domain.ErrNotFound
		}
		if p.TotalQuantity+delta < 0 {
			return domain.ErrConflict
		}
		p.TotalQuantity += delta
		st.products[id] = p
		total = p.TotalQuantity
		return nil
	})
	return total, err
}

// RecomputeTotals iguala cada total a la suma de sus vínculos.
func (r *ProductRepository) RecomputeTotals(_ context.Context) (int, error) {
	var changed int
	err := r.store.scope(r.inTx, func(st *state) error {
		sums := make(map[string]int, len(st.products))
		for _, l := range st.links {
			sums[l.ProductID] += l.Quantity
		}
		for id, p := range st.products {
			if p.TotalQuantity != sums[id] {
				p.TotalQuantity = sums[id]
				st.products[id] = p
				changed++
			}
		}
		return nil
	})
	return changed, err
}

func skuTaken(st *state, sku, exceptID string) bool {
	for id, p := range st.products {
		if id != exceptID && p.SKU == sku {
			return true
		}
	}
	return false
}

// Count cuenta los productos del filtro sin paginar.
func (r *ProductRepository) Count(ctx context.Context, f repository.ProductFilter) (int, error) {
	f.Limit, f.Offset = 0, 0
	list, err := r.List(ctx, f)
	return len(list), err
}

func page[T any](items []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return items[:0]
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
