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

var _ repository.StockLinkRepository = (*StockLinkRepo)(nil)

const stockLinkColumns = "id, product_id, shelf_id, quantity, created_at, updated_at"

// StockLinkRepo implementación del puerto StockLinkRepository sobre PostgreSQL.
type StockLinkRepo struct {
	q Querier
}

// NewStockLinkRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockLinkRepository(q Querier) *StockLinkRepo {
	return &StockLinkRepo{q: q}
}

// Create inserta el vínculo. El índice único (product_id, shelf_id) convierte un alta concurrente
// del mismo par en domain.ErrConflict.
func (r *StockLinkRepo) Create(ctx context.Context, l *entity.StockLink) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO stock_links (id, product_id, shelf_id, quantity, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		l.ID, l.ProductID, l.ShelfID, l.Quantity, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrConflict
		case isForeignKeyViolation(err), isInvalidID(err):
			return domain.ErrNotFound
		case isCheckViolation(err):
			return domain.ErrInvalidQuantity
		}
		return fmt.Errorf("insert stock link: %w", err)
	}
	return nil
}

// GetByID obtiene un vínculo por ID.
func (r *StockLinkRepo) GetByID(ctx context.Context, id string) (*entity.StockLink, error) {
	return r.getOne(ctx, `SELECT `+stockLinkColumns+` FROM stock_links WHERE id = $1`, id)
}

// GetForUpdate bloquea la fila del vínculo (SELECT FOR UPDATE). Usar dentro de TxRunner.
func (r *StockLinkRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockLink, error) {
	return r.getOne(ctx, `SELECT `+stockLinkColumns+` FROM stock_links WHERE id = $1 FOR UPDATE`, id)
}

// GetByProductAndShelfForUpdate bloquea el vínculo del par (producto, estantería) si existe.
func (r *StockLinkRepo) GetByProductAndShelfForUpdate(ctx context.Context, productID, shelfID string) (*entity.StockLink, error) {
	return r.getOne(ctx,
		`SELECT `+stockLinkColumns+` FROM stock_links WHERE product_id = $1 AND shelf_id = $2 FOR UPDATE`,
		productID, shelfID,
	)
}

func (r *StockLinkRepo) getOne(ctx context.Context, query string, args ...any) (*entity.StockLink, error) {
	var l entity.StockLink
	err := r.q.QueryRow(ctx, query, args...).Scan(&l.ID, &l.ProductID, &l.ShelfID, &l.Quantity, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidID(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock link: %w", err)
	}
	return &l, nil
}

// UpdateQuantity fija la cantidad del vínculo.
func (r *StockLinkRepo) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	cmd, err := r.q.Exec(ctx, `UPDATE stock_links SET quantity = $2, updated_at = now() WHERE id = $1`, id, quantity)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInvalidQuantity
		}
		return fmt.Errorf("update stock link: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un vínculo.
func (r *StockLinkRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM stock_links WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete stock link: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteByProduct elimina todos los vínculos del producto y devuelve cuántos borró.
func (r *StockLinkRepo) DeleteByProduct(ctx context.Context, productID string) (int, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM stock_links WHERE product_id = $1`, productID)
	if err != nil {
		return 0, fmt.Errorf("delete stock links by product: %w", err)
	}
	return int(cmd.RowsAffected()), nil
}

// CountByShelf cuenta los vínculos que referencian la estantería.
func (r *StockLinkRepo) CountByShelf(ctx context.Context, shelfID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM stock_links WHERE shelf_id = $1`, shelfID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count stock links by shelf: %w", err)
	}
	return n, nil
}

// ListDetails une stock_links con products y shelves, en orden de creación del vínculo.
func (r *StockLinkRepo) ListDetails(ctx context.Context, f repository.StockLinkFilter) ([]*entity.StockLinkDetail, error) {
	query, args, err := buildStockDetailsQuery(f)
	if err != nil {
		return nil, fmt.Errorf("build stock details: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock details: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.StockLinkDetail, 0)
	for rows.Next() {
		var (
			d         entity.StockLinkDetail
			shelfName string
		)
		if err := rows.Scan(
			&d.ID, &d.ProductID, &d.ShelfID, &d.Quantity, &d.CreatedAt, &d.UpdatedAt,
			&d.Product.Name, &d.Product.SKU, &d.Product.Barcode, &d.Product.TotalQuantity,
			&shelfName,
		); err != nil {
			return nil, fmt.Errorf("scan stock detail: %w", err)
		}
		d.ShelfNames = []string{}
		if shelfName != "" {
			d.ShelfNames = append(d.ShelfNames, shelfName)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

func buildStockDetailsQuery(f repository.StockLinkFilter) (string, []any, error) {
	qb := psql.Select(
		"l.id", "l.product_id", "l.shelf_id", "l.quantity", "l.created_at", "l.updated_at",
		"p.name", "p.sku", "p.barcode", "p.total_quantity",
		"COALESCE(s.name, '')",
	).
		From("stock_links l").
		Join("products p ON p.id = l.product_id").
		LeftJoin("shelves s ON s.id = l.shelf_id")
	if f.ProductID != "" {
		qb = qb.Where(sq.Eq{"l.product_id": f.ProductID})
	}
	if len(f.ShelfIDs) > 0 {
		qb = qb.Where(sq.Eq{"l.shelf_id": f.ShelfIDs})
	}
	return qb.OrderBy("l.created_at ASC", "l.id ASC").ToSql()
}
