//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/suite"

	"github.com/jhoicas/lfc-estoque/internal/domain"
	"github.com/jhoicas/lfc-estoque/internal/domain/entity"
	"github.com/jhoicas/lfc-estoque/internal/domain/repository"
	"github.com/jhoicas/lfc-estoque/internal/infrastructure/postgres"
	"github.com/jhoicas/lfc-estoque/pkg/config"
	"github.com/jhoicas/lfc-estoque/pkg/logger"
)

type RepositorySuite struct {
	suite.Suite
	pool     *dockertest.Pool
	resource *dockertest.Resource
	db       *pgxpool.Pool
	products *postgres.ProductRepo
	shelves  *postgres.ShelfRepo
	links    *postgres.StockLinkRepo
	users    *postgres.UserRepo
	moves    *postgres.StockMovementRepo
	tx       *postgres.TxRunner
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositorySuite))
}

func (s *RepositorySuite) SetupSuite() {
	pool, err := dockertest.NewPool("")
	s.Require().NoError(err, "no se pudo conectar a Docker")
	s.pool = pool

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=test",
			"POSTGRES_PASSWORD=test",
			"POSTGRES_DB=lfc_estoque_test",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	s.Require().NoError(err, "no se pudo iniciar PostgreSQL")
	s.resource = resource

	port, err := strconv.Atoi(resource.GetPort("5432/tcp"))
	s.Require().NoError(err)
	dbCfg := config.DBConfig{
		Host: "127.0.0.1", Port: port, User: "test", Password: "test",
		DBName: "lfc_estoque_test", SSLMode: "disable",
	}

	pool.MaxWait = 2 * time.Minute
	s.Require().NoError(pool.Retry(func() error {
		db, err := postgres.NewPool(context.Background(), dbCfg)
		if err != nil {
			return err
		}
		s.db = db
		return nil
	}))
	s.Require().NoError(postgres.Migrate(dbCfg.ConnectionString(), logger.Nop()))

	s.products = postgres.NewProductRepository(s.db)
	s.shelves = postgres.NewShelfRepository(s.db)
	s.links = postgres.NewStockLinkRepository(s.db)
	s.users = postgres.NewUserRepository(s.db)
	s.moves = postgres.NewStockMovementRepository(s.db)
	s.tx = postgres.NewTxRunner(s.db)
}

func (s *RepositorySuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
	if s.resource != nil {
		_ = s.pool.Purge(s.resource)
	}
}

func (s *RepositorySuite) SetupTest() {
	_, err := s.db.Exec(context.Background(), `TRUNCATE stock_movements, stock_links, shelves, products, users`)
	s.Require().NoError(err)
}

func (s *RepositorySuite) newProduct(name, sku, barcode string) *entity.Product {
	now := time.Now().UTC()
	p := &entity.Product{ID: uuid.NewString(), Name: name, SKU: sku, Barcode: barcode, CreatedAt: now, UpdatedAt: now}
	s.Require().NoError(s.products.Create(context.Background(), p))
	return p
}

func (s *RepositorySuite) newShelf(name string) *entity.Shelf {
	now := time.Now().UTC()
	sh := &entity.Shelf{ID: uuid.NewString(), Name: name, CreatedAt: now, UpdatedAt: now}
	s.Require().NoError(s.shelves.Create(context.Background(), sh))
	return sh
}

func (s *RepositorySuite) newLink(p *entity.Product, sh *entity.Shelf, qty int) *entity.StockLink {
	now := time.Now().UTC()
	l := &entity.StockLink{ID: uuid.NewString(), ProductID: p.ID, ShelfID: sh.ID, Quantity: qty, CreatedAt: now, UpdatedAt: now}
	s.Require().NoError(s.links.Create(context.Background(), l))
	return l
}

func (s *RepositorySuite) TestProducts_SKUUnicoYBusquedaILike() {
	ctx := context.Background()
	s.newProduct("Caneta", "CAN-1", "7891")
	s.newProduct("Caderno", "CAD-1", "7892")

	err := s.products.Create(ctx, &entity.Product{ID: uuid.NewString(), Name: "X", SKU: "CAN-1", Barcode: "1"})
	s.ErrorIs(err, domain.ErrDuplicate)

	found, err := s.products.List(ctx, repository.ProductFilter{Field: entity.SearchByName, Term: "CANE"})
	s.Require().NoError(err)
	s.Require().Len(found, 1)
	s.Equal("Caneta", found[0].Name)

	s.newProduct("Café", "CAF-1", "7893")
	accented, err := s.products.List(ctx, repository.ProductFilter{Field: entity.SearchByName, Term: "café"})
	s.Require().NoError(err)
	s.Len(accented, 1)
	plain, err := s.products.List(ctx, repository.ProductFilter{Field: entity.SearchByName, Term: "cafe"})
	s.Require().NoError(err)
	s.Empty(plain, "los acentos cuentan, igual que en el backend en memoria")

	total, err := s.products.Count(ctx, repository.ProductFilter{Field: entity.SearchByName, Term: "ca", Limit: 1})
	s.Require().NoError(err)
	s.Equal(3, total, "Count ignora la paginación")

	none, err := s.products.List(ctx, repository.ProductFilter{Field: entity.SearchByName, Term: "%"})
	s.Require().NoError(err)
	s.Empty(none, "los metacaracteres de LIKE se buscan literalmente")

	missing, err := s.products.GetByID(ctx, "no-es-uuid")
	s.NoError(err)
	s.Nil(missing)
}

func (s *RepositorySuite) TestStockLinks_ParUnicoYDetalles() {
	ctx := context.Background()
	p := s.newProduct("Caneta", "CAN-1", "7891")
	a := s.newShelf("A1")
	s.newLink(p, a, 5)

	err := s.links.Create(ctx, &entity.StockLink{ID: uuid.NewString(), ProductID: p.ID, ShelfID: a.ID, Quantity: 1, CreatedAt: time.Now(), UpdatedAt: time.Now()})
	s.ErrorIs(err, domain.ErrConflict)

	details, err := s.links.ListDetails(ctx, repository.StockLinkFilter{})
	s.Require().NoError(err)
	s.Require().Len(details, 1)
	s.Equal([]string{"A1"}, details[0].ShelfNames)
	s.Equal("Caneta", details[0].Product.Name)
}

func (s *RepositorySuite) TestShelves_DeleteConStockRestringido() {
	ctx := context.Background()
	p := s.newProduct("Caneta", "CAN-1", "7891")
	a := s.newShelf("A1")
	s.newLink(p, a, 5)

	s.ErrorIs(s.shelves.Delete(ctx, a.ID), domain.ErrShelfInUse)
}

func (s *RepositorySuite) TestTxRunner_RollbackYTotales() {
	ctx := context.Background()
	p := s.newProduct("Caneta", "CAN-1", "7891")
	a := s.newShelf("A1")
	s.newLink(p, a, 5)
	_, err := s.products.AdjustTotal(ctx, p.ID, 5)
	s.Require().NoError(err)

	boom := errors.New("boom")
	err = s.tx.Run(ctx, func(stockRepo repository.StockLinkRepository, _ repository.ProductRepository, _ repository.ShelfRepository, movementRepo repository.StockMovementRepository) error {
		if err := movementRepo.Create(ctx, &entity.StockMovement{ID: uuid.New().String(), ProductID: p.ID, ShelfID: a.ID, LinkID: uuid.New().String(), Type: entity.MovementTypeWithdraw, Quantity: 5, CreatedAt: time.Now()}); err != nil {
			return err
		}
		if _, err := stockRepo.DeleteByProduct(ctx, p.ID); err != nil {
			return err
		}
		return boom
	})
	s.ErrorIs(err, boom)
	moves, err := s.moves.List(ctx, repository.MovementFilter{ProductID: p.ID})
	s.Require().NoError(err)
	s.Empty(moves, "el movimiento se descarta junto con la transacción")
	n, err := s.links.CountByShelf(ctx, a.ID)
	s.Require().NoError(err)
	s.Equal(1, n)

	_, err = s.products.AdjustTotal(ctx, p.ID, -6)
	s.ErrorIs(err, domain.ErrConflict)

	_, err = s.db.Exec(ctx, `UPDATE products SET total_quantity = 42 WHERE id = $1`, p.ID)
	s.Require().NoError(err)
	changed, err := s.products.RecomputeTotals(ctx)
	s.Require().NoError(err)
	s.Equal(1, changed)
	got, err := s.products.GetByID(ctx, p.ID)
	s.Require().NoError(err)
	s.Equal(5, got.TotalQuantity)
}

func (s *RepositorySuite) TestUsers_EmailUnicoSinMayusculas() {
	ctx := context.Background()
	now := time.Now()
	u := &entity.User{ID: uuid.NewString(), Email: "ana@lfc.com", PasswordHash: "x", Name: "Ana", Status: entity.UserStatusActive, CreatedAt: now, UpdatedAt: now}
	s.Require().NoError(s.users.Create(ctx, u))

	got, err := s.users.FindByEmail(ctx, "ANA@LFC.COM")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(u.ID, got.ID)

	dup := *u
	dup.ID = uuid.NewString()
	dup.Email = "Ana@lfc.com"
	s.ErrorIs(s.users.Create(ctx, &dup), domain.ErrEmailAlreadyExists)
}

func (s *RepositorySuite) TestStockMovements_ListFiltros() {
	ctx := context.Background()
	p := s.newProduct("Caneta", "CAN-1", "7891")
	a := s.newShelf("A1")
	base := time.Now().UTC().Truncate(time.Second)
	for i, typ := range []string{entity.MovementTypeAssign, entity.MovementTypeAssign, entity.MovementTypeWithdraw} {
		s.Require().NoError(s.moves.Create(ctx, &entity.StockMovement{
			ID: uuid.NewString(), ProductID: p.ID, ShelfID: a.ID, LinkID: uuid.NewString(),
			Type: typ, Quantity: i + 1, LinkBalance: 10, ProductTotal: 10, CreatedBy: "u-1",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	all, err := s.moves.List(ctx, repository.MovementFilter{ProductID: p.ID})
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal(entity.MovementTypeWithdraw, all[0].Type)

	from := base.Add(30 * time.Second)
	window, err := s.moves.List(ctx, repository.MovementFilter{From: &from, Limit: 1})
	s.Require().NoError(err)
	s.Require().Len(window, 1)
	s.Equal(3, window[0].Quantity)

	none, err := s.moves.List(ctx, repository.MovementFilter{ShelfID: "no-es-uuid"})
	s.Require().NoError(err)
	s.Empty(none)
}
