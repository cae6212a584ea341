package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/lfc-estoque/internal/domain"
	"github.com/jhoicas/lfc-estoque/internal/domain/entity"
	"github.com/jhoicas/lfc-estoque/internal/domain/repository"
)

var _ repository.ShelfRepository = (*ShelfRepo)(nil)

const shelfColumns = "id, name, created_at, updated_at"

// ShelfRepo implementación del puerto ShelfRepository sobre PostgreSQL.
type ShelfRepo struct {
	q Querier
}

// NewShelfRepository construye el adaptador. Pasar pool o tx (Querier).
func NewShelfRepository(q Querier) *ShelfRepo {
	return &ShelfRepo{q: q}
}

// Create persiste una nueva estantería.
func (r *ShelfRepo) Create(ctx context.Context, s *entity.Shelf) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO shelves (id, name, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
		s.ID, s.Name, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert shelf: %w", err)
	}
	return nil
}

// GetByID obtiene una estantería por ID.
func (r *ShelfRepo) GetByID(ctx context.Context, id string) (*entity.Shelf, error) {
	s, err := scanShelf(r.q.QueryRow(ctx, `SELECT `+shelfColumns+` FROM shelves WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidID(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shelf: %w", err)
	}
	return s, nil
}

// Update renombra la estantería.
func (r *ShelfRepo) Update(ctx context.Context, s *entity.Shelf) error {
	cmd, err := r.q.Exec(ctx, `UPDATE shelves SET name = $2, updated_at = $3 WHERE id = $1`, s.ID, s.Name, s.UpdatedAt)
	if err != nil {
		if isInvalidID(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update shelf: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista estanterías con búsqueda ILIKE por nombre.
func (r *ShelfRepo) List(ctx context.Context, f repository.ShelfFilter) ([]*entity.Shelf, error) {
	query, args, err := buildShelfListQuery(f)
	if err != nil {
		return nil, fmt.Errorf("build shelf list: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list shelves: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Shelf, 0)
	for rows.Next() {
		s, err := scanShelf(rows)
		if err != nil {
			return nil, fmt.Errorf("scan shelf: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Delete elimina la estantería. La FK ON DELETE RESTRICT de stock_links la protege (domain.ErrShelfInUse).
func (r *ShelfRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM shelves WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrShelfInUse
		}
		if isInvalidID(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete shelf: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Count cuenta las estanterías del filtro.
func (r *ShelfRepo) Count(ctx context.Context, f repository.ShelfFilter) (int, error) {
	query, args, err := shelfWhere(psql.Select("COUNT(*)").From("shelves"), f).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build shelf count: %w", err)
	}
	var n int
	if err := r.q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count shelves: %w", err)
	}
	return n, nil
}

func shelfWhere(qb sq.SelectBuilder, f repository.ShelfFilter) sq.SelectBuilder {
	if f.Term != "" {
		qb = qb.Where(sq.ILike{"name": containsPattern(f.Term)})
	}
	return qb
}

func buildShelfListQuery(f repository.ShelfFilter) (string, []any, error) {
	qb := shelfWhere(psql.Select(shelfColumns).From("shelves"), f)
	qb = qb.OrderBy("name ASC", "id ASC")
	if f.Limit > 0 {
		qb = qb.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		qb = qb.Offset(uint64(f.Offset))
	}
	return qb.ToSql()
}

func scanShelf(row pgx.Row) (*entity.Shelf, error) {
	var s entity.Shelf
	if err := row.Scan(&s.ID, &s.Name, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
