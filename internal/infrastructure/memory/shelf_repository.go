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

var _ repository.ShelfRepository = (*ShelfRepository)(nil)

// ShelfRepository implementación en memoria de repository.ShelfRepository.
type ShelfRepository struct {
	store *Store
	inTx  bool
}

// NewShelfRepository construye el repositorio.
func NewShelfRepository(store *Store) *ShelfRepository {
	return &ShelfRepository{store: store}
}

// Create inserta la estantería. ID repetido → domain.ErrDuplicate.
func (r *ShelfRepository) Create(_ context.Context, s *entity.Shelf) error {
	return r.store.scope(r.inTx, func(st *state) error {
		if _, ok := st.shelves[s.ID]; ok {
			return domain.ErrDuplicate
		}
		st.shelves[s.ID] = *s
		st.shelfOrder = append(st.shelfOrder, s.ID)
		return nil
	})
}

// GetByID devuelve la estantería o (nil, nil).
func (r *ShelfRepository) GetByID(_ context.Context, id string) (*entity.Shelf, error) {
	var out *entity.Shelf
	err := r.store.scope(r.inTx, func(st *state) error {
		if s, ok := st.shelves[id]; ok {
			out = &s
		}
		return nil
	})
	return out, err
}

// Update reemplaza el nombre. Inexistente → domain.ErrNotFound.
func (r *ShelfRepository) Update(_ context.Context, s *entity.Shelf) error {
	return r.store.scope(r.inTx, func(st *state) error {
		cur, ok := st.shelves[s.ID]
		if !ok {
			return domain.ErrNotFound
		}
		cur.Name = s.Name
		cur.UpdatedAt = s.UpdatedAt
		st.shelves[s.ID] = cur
		return nil
	})
}

// List filtra por nombre con la misma regla que ProductRepository.List.
func (r *ShelfRepository) List(_ context.Context, f repository.ShelfFilter) ([]*entity.Shelf, error) {
	out := make([]*entity.Shelf, 0)
	err := r.store.scope(r.inTx, func(st *state) error {
		for _, id := range st.shelfOrder {
			s := st.shelves[id]
			if f.Term != "" && !textsearch.ContainsFold(s.Name, f.Term) {
				continue
			}
			out = append(out, &s)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(out, func(a, b *entity.Shelf) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	return page(out, f.Limit, f.Offset), nil
}

// Count cuenta las estanterías del filtro sin paginar.
func (r *ShelfRepository) Count(ctx context.Context, f repository.ShelfFilter) (int, error) {
	f.Limit, f.Offset = 0, 0
	list, err := r.List(ctx, f)
	return len(list), err
}

// Delete elimina la estantería. Con vínculos de stock devuelve domain.ErrShelfInUse.
func (r *ShelfRepository) Delete(_ context.Context, id string) error {
	return r.store.scope(r.inTx, func(st *state) error {
		if _, ok := st.shelves[id]; !ok {
			return domain.ErrNotFound
		}
		for _, l := range st.links {
			if l.ShelfID == id {
				return domain.ErrShelfInUse
			}
		}
		delete(st.shelves, id)
		st.shelfOrder = removeID(st.shelfOrder, id)
		return nil
	})
}
