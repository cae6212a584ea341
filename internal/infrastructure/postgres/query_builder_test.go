package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lfc-estoque/internal/domain/entity"
	"github.com/jhoicas/lfc-estoque/internal/domain/repository"
)

func TestContainsPattern_EscapaMetacaracteres(t *testing.T) {
	assert.Equal(t, "%cane%", containsPattern("cane"))
	assert.Equal(t, `%50\%\_off\\%`, containsPattern(`50%_off\`))
}

func TestBuildProductListQuery(t *testing.T) {
	query, args, err := buildProductListQuery(repository.ProductFilter{
		Field: entity.SearchByName, Term: "cane", Limit: 20, Offset: 40,
	})
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT id, name, sku, barcode, total_quantity, created_at, updated_at FROM products WHERE name ILIKE $1 ORDER BY name ASC, id ASC LIMIT 20 OFFSET 40",
		query)
	assert.Equal(t, []any{"%cane%"}, args)
}

// El backend en memoria aplica la misma regla: ILIKE pliega mayúsculas pero no quita acentos.
func TestBuildProductListQuery_AcentosCuentan(t *testing.T) {
	query, args, err := buildProductListQuery(repository.ProductFilter{Field: entity.SearchByName, Term: "cafe"})
	require.NoError(t, err)
	assert.Contains(t, query, "WHERE name ILIKE $1")
	assert.NotContains(t, query, "unaccent")
	assert.Equal(t, []any{"%cafe%"}, args)
}

func TestBuildProductListQuery_CampoPorDefectoYSinTermino(t *testing.T) {
	query, args, err := buildProductListQuery(repository.ProductFilter{Term: "789"})
	require.NoError(t, err)
	assert.Contains(t, query, "WHERE barcode ILIKE $1")
	assert.Equal(t, []any{"%789%"}, args)

	query, args, err = buildProductListQuery(repository.ProductFilter{})
	require.NoError(t, err)
	assert.NotContains(t, query, "WHERE")
	assert.Empty(t, args)
}

func TestBuildShelfListQuery(t *testing.T) {
	query, args, err := buildShelfListQuery(repository.ShelfFilter{Term: "a1", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, "SELECT id, name, created_at, updated_at FROM shelves WHERE name ILIKE $1 ORDER BY name ASC, id ASC LIMIT 10", query)
	assert.Equal(t, []any{"%a1%"}, args)
}

func TestBuildStockDetailsQuery(t *testing.T) {
	query, args, err := buildStockDetailsQuery(repository.StockLinkFilter{ShelfIDs: []string{"s1", "s2"}})
	require.NoError(t, err)
	assert.Contains(t, query, "FROM stock_links l JOIN products p ON p.id = l.product_id LEFT JOIN shelves s ON s.id = l.shelf_id")
	assert.Contains(t, query, "WHERE l.shelf_id IN ($1,$2)")
	assert.Contains(t, query, "ORDER BY l.created_at ASC, l.id ASC")
	assert.Equal(t, []any{"s1", "s2"}, args)

	query, args, err = buildStockDetailsQuery(repository.StockLinkFilter{ProductID: "p1"})
	require.NoError(t, err)
	assert.Contains(t, query, "WHERE l.product_id = $1")
	assert.Equal(t, []any{"p1"}, args)
}

func TestBuildMovementListQuery(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	query, args, err := buildMovementListQuery(repository.MovementFilter{ProductID: "p1", From: &from, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT id, product_id, shelf_id, link_id, type, quantity, link_balance, product_total, created_by, created_at FROM stock_movements WHERE product_id = $1 AND created_at >= $2 ORDER BY created_at DESC, id DESC LIMIT 10",
		query)
	assert.Equal(t, []any{"p1", from}, args)
}
