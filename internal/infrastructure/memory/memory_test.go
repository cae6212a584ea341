package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lfc-estoque/internal/domain"
	"github.com/jhoicas/lfc-estoque/internal/domain/entity"
	"github.com/jhoicas/lfc-estoque/internal/domain/repository"
	"github.com/jhoicas/lfc-estoque/internal/infrastructure/memory"
)

func seed(t *testing.T, store *memory.Store) {
	t.Helper()
	ctx := context.Background()
	products := memory.NewProductRepository(store)
	shelves := memory.NewShelfRepository(store)
	links := memory.NewStockLinkRepository(store)

	require.NoError(t, products.Create(ctx, &entity.Product{ID: "p1", Name: "Caneta", SKU: "CAN-1", Barcode: "7891", TotalQuantity: 5}))
	require.NoError(t, products.Create(ctx, &entity.Product{ID: "p2", Name: "Caderno", SKU: "CAD-1", Barcode: "7892"}))
	require.NoError(t, shelves.Create(ctx, &entity.Shelf{ID: "s1", Name: "A1"}))
	require.NoError(t, shelves.Create(ctx, &entity.Shelf{ID: "s2", Name: "B2"}))
	require.NoError(t, links.Create(ctx, &entity.StockLink{ID: "l1", ProductID: "p1", ShelfID: "s1", Quantity: 5}))
}

func TestProductRepository_SKUDuplicado(t *testing.T) {
	store := memory.NewStore()
	seed(t, store)

	err := memory.NewProductRepository(store).Create(context.Background(), &entity.Product{ID: "p3", Name: "X", SKU: "CAN-1", Barcode: "1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductRepository_ListFiltraYOrdena(t *testing.T) {
	store := memory.NewStore()
	seed(t, store)
	repo := memory.NewProductRepository(store)

	all, err := repo.List(context.Background(), repository.ProductFilter{Field: entity.SearchByName})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Caderno", all[0].Name)

	found, err := repo.List(context.Background(), repository.ProductFilter{Field: entity.SearchByName, Term: "CANE"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "p1", found[0].ID)

	paged, err := repo.List(context.Background(), repository.ProductFilter{Field: entity.SearchByName, Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, paged, 1)
	assert.Equal(t, "Caneta", paged[0].Name)

	// Misma regla que ILIKE en PostgreSQL: sin mayúsculas, con acentos.
	require.NoError(t, repo.Create(context.Background(), &entity.Product{ID: "p3", Name: "Café", SKU: "CAF-1", Barcode: "7893"}))
	accented, err := repo.List(context.Background(), repository.ProductFilter{Field: entity.SearchByName, Term: "CAFÉ"})
	require.NoError(t, err)
	assert.Len(t, accented, 1)
	plain, err := repo.List(context.Background(), repository.ProductFilter{Field: entity.SearchByName, Term: "cafe"})
	require.NoError(t, err)
	assert.Empty(t, plain)
	shelves, err := memory.NewShelfRepository(store).List(context.Background(), repository.ShelfFilter{Term: "a1"})
	require.NoError(t, err)
	assert.Len(t, shelves, 1)
}

func TestStockLinkRepository_ParUnico(t *testing.T) {
	store := memory.NewStore()
	seed(t, store)

	err := memory.NewStockLinkRepository(store).Create(context.Background(), &entity.StockLink{ID: "l2", ProductID: "p1", ShelfID: "s1", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestStockLinkRepository_ListDetailsEmbebeProductoYEstanteria(t *testing.T) {
	store := memory.NewStore()
	seed(t, store)

	details, err := memory.NewStockLinkRepository(store).ListDetails(context.Background(), repository.StockLinkFilter{})
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "Caneta", details[0].Product.Name)
	assert.Equal(t, []string{"A1"}, details[0].ShelfNames)

	none, err := memory.NewStockLinkRepository(store).ListDetails(context.Background(), repository.StockLinkFilter{ShelfIDs: []string{"s2"}})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestShelfRepository_DeleteConStock(t *testing.T) {
	store := memory.NewStore()
	seed(t, store)
	shelves := memory.NewShelfRepository(store)

	assert.ErrorIs(t, shelves.Delete(context.Background(), "s1"), domain.ErrShelfInUse)
	assert.NoError(t, shelves.Delete(context.Background(), "s2"))
}

func TestTxRunner_RollbackRestauraEstado(t *testing.T) {
	store := memory.NewStore()
	seed(t, store)
	tx := memory.NewTxRunner(store)
	boom := errors.New("boom")

	err := tx.Run(context.Background(), func(stockRepo repository.StockLinkRepository, productRepo repository.ProductRepository, _ repository.ShelfRepository, movementRepo repository.StockMovementRepository) error {
		if err := movementRepo.Create(context.Background(), &entity.StockMovement{ID: "m1", ProductID: "p1", Type: entity.MovementTypeWithdraw, Quantity: 5}); err != nil {
			return err
		}
		if _, err := stockRepo.DeleteByProduct(context.Background(), "p1"); err != nil {
			return err
		}
		if _, err := productRepo.AdjustTotal(context.Background(), "p1", -5); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	p, err := memory.NewProductRepository(store).GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 5, p.TotalQuantity)
	l, err := memory.NewStockLinkRepository(store).GetByID(context.Background(), "l1")
	require.NoError(t, err)
	assert.NotNil(t, l)
	moves, err := memory.NewStockMovementRepository(store).List(context.Background(), repository.MovementFilter{})
	require.NoError(t, err)
	assert.Empty(t, moves)
}

func TestProductRepository_RecomputeTotals(t *testing.T) {
	store := memory.NewStore()
	seed(t, store)
	repo := memory.NewProductRepository(store)
	_, err := repo.AdjustTotal(context.Background(), "p2", 7)
	require.NoError(t, err)

	n, err := repo.RecomputeTotals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	p2, _ := repo.GetByID(context.Background(), "p2")
	assert.Equal(t, 0, p2.TotalQuantity)
}

func TestUserRepository_EmailSinDistinguirMayusculas(t *testing.T) {
	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	require.NoError(t, users.Create(context.Background(), &entity.User{ID: "u1", Email: "ana@lfc.com"}))

	u, err := users.FindByEmail(context.Background(), "ANA@lfc.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.ErrorIs(t, users.Create(context.Background(), &entity.User{ID: "u2", Email: "Ana@LFC.com"}), domain.ErrEmailAlreadyExists)
}

func TestStockMovementRepository_List(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStockMovementRepository(memory.NewStore())
	base := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	for i, m := range []entity.StockMovement{
		{ID: "m1", ProductID: "p1", ShelfID: "s1", Type: entity.MovementTypeAssign, Quantity: 5},
		{ID: "m2", ProductID: "p2", ShelfID: "s1", Type: entity.MovementTypeAssign, Quantity: 2},
		{ID: "m3", ProductID: "p1", ShelfID: "s2", Type: entity.MovementTypeWithdraw, Quantity: 1},
	} {
		m.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, repo.Create(ctx, &m))
	}

	all, err := repo.List(ctx, repository.MovementFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "m3", all[0].ID, "más reciente primero")

	byProduct, err := repo.List(ctx, repository.MovementFilter{ProductID: "p1"})
	require.NoError(t, err)
	assert.Len(t, byProduct, 2)

	from := base.Add(30 * time.Minute)
	to := base.Add(2 * time.Hour)
	window, err := repo.List(ctx, repository.MovementFilter{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, window, 1)
	assert.Equal(t, "m2", window[0].ID)

	paged, err := repo.List(ctx, repository.MovementFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, paged, 1)
	assert.Equal(t, "m2", paged[0].ID)
}
