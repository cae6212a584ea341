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

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = "id, name, sku, barcode, total_quantity, created_at, updated_at"

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, name, sku, barcode, total_quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, p.ID, p.Name, p.SKU, p.Barcode, p.TotalQuantity, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidID(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetBySKU obtiene un producto por SKU.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE sku = $1`, sku))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by sku: %w", err)
	}
	return p, nil
}

// Update actualiza nombre, SKU y código de barras. total_quantity solo cambia vía AdjustTotal.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `UPDATE products SET name = $2, sku = $3, barcode = $4, updated_at = $5 WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, p.ID, p.Name, p.SKU, p.Barcode, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isInvalidID(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista productos con búsqueda ILIKE sobre el campo del filtro, ordenados por nombre.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	query, args, err := buildProductListQuery(f)
	if err != nil {
		return nil, fmt.Errorf("build product list: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete elimina un producto por ID. Si aún tiene vínculos la FK lo impide (domain.ErrConflict).
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		if isInvalidID(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AdjustTotal suma delta a total_quantity y devuelve el nuevo valor.
func (r *ProductRepo) AdjustTotal(ctx context.Context, id string, delta int) (int, error) {
	var total int
	err := r.q.QueryRow(ctx,
		`UPDATE products SET total_quantity = total_quantity + $2, updated_at = now() WHERE id = $1 RETURNING total_quantity`,
		id, delta,
	).Scan(&total)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows), isInvalidID(err):
			return 0, domain.ErrNotFound
		case isCheckViolation(err):
			return 0, domain.ErrConflict
		}
		return 0, fmt.Errorf("adjust product total: %w", err)
	}
	return total, nil
}

// RecomputeTotals iguala total_quantity a la suma de stock_links y devuelve cuántas filas cambiaron.
func (r *ProductRepo) RecomputeTotals(ctx context.Context) (int, error) {
	query := `
		WITH sums AS (
			SELECT p.id, COALESCE(SUM(l.quantity), 0)::int AS total
			FROM products p
			LEFT JOIN stock_links l ON l.product_id = p.id
			GROUP BY p.id
		)
		UPDATE products p SET total_quantity = sums.total, updated_at = now()
		FROM sums
		WHERE p.id = sums.id AND p.total_quantity <> sums.total`
	cmd, err := r.q.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("recompute product totals: %w", err)
	}
	return int(cmd.RowsAffected()), nil
}

// Count cuenta los productos del filtro para PageResponse.Total.
func (r *ProductRepo) Count(ctx context.Context, f repository.ProductFilter) (int, error) {
	query, args, err := productWhere(psql.Select("COUNT(*)").From("products"), f).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build product count: %w", err)
	}
	var n int
	if err := r.q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

func productWhere(qb sq.SelectBuilder, f repository.ProductFilter) sq.SelectBuilder {
	if f.Term != "" {
		qb = qb.Where(sq.ILike{productSearchColumn(f.Field): containsPattern(f.Term)})
	}
	return qb
}

func buildProductListQuery(f repository.ProductFilter) (string, []any, error) {
	qb := productWhere(psql.Select(productColumns).From("products"), f)
	qb = qb.OrderBy("name ASC", "id ASC")
	if f.Limit > 0 {
		qb = qb.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		qb = qb.Offset(uint64(f.Offset))
	}
	return qb.ToSql()
}

func productSearchColumn(field entity.SearchField) string {
	switch field {
	case entity.SearchByName:
		return "name"
	case entity.SearchBySKU:
		return "sku"
	default:
		return "barcode"
	}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	if err := row.Scan(&p.ID, &p.Name, &p.SKU, &p.Barcode, &p.TotalQuantity, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
