package memory

import (
	"context"

	"github.com/jhoicas/lfc-estoque/internal/domain/entity"
	"github.com/jhoicas/lfc-estoque/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepository)(nil)

// StockMovementRepository historial de movimientos en memoria (solo inserción).
type StockMovementRepository struct {
	store *Store
	inTx  bool
}

// NewStockMovementRepository construye el repositorio.
func NewStockMovementRepository(store *Store) *StockMovementRepository {
	return &StockMovementRepository{store: store}
}

// Create añade el movimiento al final del historial.
func (r *StockMovementRepository) Create(_ context.Context, m *entity.StockMovement) error {
	return r.store.scope(r.inTx, func(st *state) error {
		st.movements = append(st.movements, *m)
		return nil
	})
}

// List recorre el historial del más reciente al más antiguo.
func (r *StockMovementRepository) List(_ context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	out := make([]*entity.StockMovement, 0)
	err := r.store.scope(r.inTx, func(st *state) error {
		for i := len(st.movements) - 1; i >= 0; i-- {
			m := st.movements[i]
			if f.ProductID != "" && m.ProductID != f.ProductID {
				continue
			}
			if f.ShelfID != "" && m.ShelfID != f.ShelfID {
				continue
			}
			if f.From != nil && m.CreatedAt.Before(*f.From) {
				continue
			}
			if f.To != nil && !m.CreatedAt.Before(*f.To) {
				continue
			}
			out = append(out, &m)
		}
		return nil
	})
	return page(out, f.Limit, f.Offset), err
}

// Count cuenta los movimientos del filtro sin paginar.
func (r *StockMovementRepository) Count(ctx context.Context, f repository.MovementFilter) (int, error) {
	f.Limit, f.Offset = 0, 0
	list, err := r.List(ctx, f)
	return len(list), err
}
