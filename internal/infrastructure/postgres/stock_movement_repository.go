package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/lfc-estoque/internal/domain/entity"
	"github.com/jhoicas/lfc-estoque/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const stockMovementColumns = "id, product_id, shelf_id, link_id, type, quantity, link_balance, product_total, created_by, created_at"

// StockMovementRepo implementación del historial de movimientos sobre PostgreSQL.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO stock_movements (`+stockMovementColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		m.ID, m.ProductID, m.ShelfID, m.LinkID, m.Type, m.Quantity, m.LinkBalance, m.ProductTotal, m.CreatedBy, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// List devuelve el historial filtrado, más reciente primero. Un ID de filtro que no es UUID no coincide con nada.
func (r *StockMovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	query, args, err := buildMovementListQuery(f)
	if err != nil {
		return nil, fmt.Errorf("build movement list: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		if isInvalidID(err) {
			return []*entity.StockMovement{}, nil
		}
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.StockMovement, 0)
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		if isInvalidID(err) {
			return []*entity.StockMovement{}, nil
		}
		return nil, err
	}
	return list, nil
}

// Count cuenta los movimientos del filtro. Un ID que no es UUID cuenta cero.
func (r *StockMovementRepo) Count(ctx context.Context, f repository.MovementFilter) (int, error) {
	query, args, err := movementWhere(psql.Select("COUNT(*)").From("stock_movements"), f).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build movement count: %w", err)
	}
	var n int
	if err := r.q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		if isInvalidID(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("count stock movements: %w", err)
	}
	return n, nil
}

func buildMovementListQuery(f repository.MovementFilter) (string, []any, error) {
	qb := movementWhere(psql.Select(stockMovementColumns).From("stock_movements"), f)
	qb = qb.OrderBy("created_at DESC", "id DESC")
	if f.Limit > 0 {
		qb = qb.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		qb = qb.Offset(uint64(f.Offset))
	}
	return qb.ToSql()
}

func movementWhere(qb sq.SelectBuilder, f repository.MovementFilter) sq.SelectBuilder {
	if f.ProductID != "" {
		qb = qb.Where("product_id = ?", f.ProductID)
	}
	if f.ShelfID != "" {
		qb = qb.Where("shelf_id = ?", f.ShelfID)
	}
	if f.From != nil {
		qb = qb.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		qb = qb.Where("created_at < ?", *f.To)
	}
	return qb
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	if err := row.Scan(&m.ID, &m.ProductID, &m.ShelfID, &m.LinkID, &m.Type, &m.Quantity, &m.LinkBalance, &m.ProductTotal, &m.CreatedBy, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}
