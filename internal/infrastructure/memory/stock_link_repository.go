package memory

import (
	"context"

	"github.com/jhoicas/lfc-estoque/internal/domain"
	"github.com/jhoicas/lfc-estoque/internal/domain/entity"
	"github.com/jhoicas/lfc-estoque/internal/domain/repository"
)

var _ repository.StockLinkRepository = (*StockLinkRepository)(nil)

// StockLinkRepository implementación en memoria de repository.StockLinkRepository.
// Los métodos *ForUpdate equivalen a sus lecturas simples: el Store ya está bloqueado en la tx.
type StockLinkRepository struct {
	store *Store
	inTx  bool
}

// NewStockLinkRepository construye el repositorio.
func NewStockLinkRepository(store *Store) *StockLinkRepository {
	return &StockLinkRepository{store: store}
}

// Create inserta el vínculo. Par (producto, estantería) repetido → domain.ErrConflict.
func (r *StockLinkRepository) Create(_ context.Context, l *entity.StockLink) error {
	return r.store.scope(r.inTx, func(st *state) error {
		if l.Quantity <= 0 {
			return domain.ErrInvalidQuantity
		}
		if _, ok := st.products[l.ProductID]; !ok {
			return domain.ErrNotFound
		}
		if _, ok := st.shelves[l.ShelfID]; !ok {
			return domain.ErrNotFound
		}
		for _, cur := range st.links {
			if cur.ID == l.ID || (cur.ProductID == l.ProductID && cur.ShelfID == l.ShelfID) {
				return domain.ErrConflict
			}
		}
		st.links[l.ID] = *l
		st.linkOrder = append(st.linkOrder, l.ID)
		return nil
	})
}

// GetByID devuelve el vínculo o (nil, nil).
func (r *StockLinkRepository) GetByID(_ context.Context, id string) (*entity.StockLink, error) {
	var out *entity.StockLink
	err := r.store.scope(r.inTx, func(st *state) error {
		if l, ok := st.links[id]; ok {
			out = &l
		}
		return nil
	})
	return out, err
}

// GetForUpdate equivale a GetByID.
func (r *StockLinkRepository) GetForUpdate(ctx context.Context, id string) (*entity.StockLink, error) {
	return r.GetByID(ctx, id)
}

// GetByProductAndShelfForUpdate busca el vínculo del par (producto, estantería) o (nil, nil).
func (r *StockLinkRepository) GetByProductAndShelfForUpdate(_ context.Context, productID, shelfID string) (*entity.StockLink, error) {
	var out *entity.StockLink
	err := r.store.scope(r.inTx, func(st *state) error {
		for _, id := range st.linkOrder {
			if l := st.links[id]; l.ProductID == productID && l.ShelfID == shelfID {
				out = &l
				return nil
			}
		}
		return nil
	})
	return out, err
}

// UpdateQuantity fija la cantidad. Vínculo inexistente → domain.ErrNotFound.
func (r *StockLinkRepository) UpdateQuantity(_ context.Context, id string, quantity int) error {
	return r.store.scope(r.inTx, func(st *state) error {
		if quantity <= 0 {
			return domain.ErrInvalidQuantity
		}
		l, ok := st.links[id]
		if !ok {
			return domain.ErrNotFound
		}
		l.Quantity = quantity
		st.links[id] = l
		return nil
	})
}

// Delete elimina el vínculo. Inexistente → domain.ErrNotFound.
func (r *StockLinkRepository) Delete(_ context.Context, id string) error {
	return r.store.scope(r.inTx, func(st *state) error {
		if _, ok := st.links[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.links, id)
		st.linkOrder = removeID(st.linkOrder, id)
		return nil
	})
}

// DeleteByProduct elimina todos los vínculos del producto y devuelve cuántos borró.
func (r *StockLinkRepository) DeleteByProduct(_ context.Context, productID string) (int, error) {
	var n int
	err := r.store.scope(r.inTx, func(st *state) error {
		kept := st.linkOrder[:0]
		for _, id := range st.linkOrder {
			if st.links[id].ProductID == productID {
				delete(st.links, id)
				n++
				continue
			}
			kept = append(kept, id)
		}
		st.linkOrder = kept
		return nil
	})
	return n, err
}

// CountByShelf cuenta los vínculos de la estantería.
func (r *StockLinkRepository) CountByShelf(_ context.Context, shelfID string) (int, error) {
	var n int
	err := r.store.scope(r.inTx, func(st *state) error {
		for _, l := range st.links {
			if l.ShelfID == shelfID {
				n++
			}
		}
		return nil
	})
	return n, err
}

// ListDetails devuelve los vínculos en orden de inserción con producto y estantería embebidos.
func (r *StockLinkRepository) ListDetails(_ context.Context, f repository.StockLinkFilter) ([]*entity.StockLinkDetail, error) {
	out := make([]*entity.StockLinkDetail, 0)
	var shelfSet map[string]struct{}
	if len(f.ShelfIDs) > 0 {
		shelfSet = make(map[string]struct{}, len(f.ShelfIDs))
		for _, id := range f.ShelfIDs {
			shelfSet[id] = struct{}{}
		}
	}
	err := r.store.scope(r.inTx, func(st *state) error {
		for _, id := range st.linkOrder {
			l := st.links[id]
			if f.ProductID != "" && l.ProductID != f.ProductID {
				continue
			}
			if shelfSet != nil {
				if _, ok := shelfSet[l.ShelfID]; !ok {
					continue
				}
			}
			p := st.products[l.ProductID]
			names := []string{}
			if s, ok := st.shelves[l.ShelfID]; ok {
				names = append(names, s.Name)
			}
			out = append(out, &entity.StockLinkDetail{
				StockLink: l,
				Product: entity.ProductSnapshot{
					Name:          p.Name,
					SKU:           p.SKU,
					Barcode:       p.Barcode,
					TotalQuantity: p.TotalQuantity,
				},
				ShelfNames: names,
			})
		}
		return nil
	})
	return out, err
}
