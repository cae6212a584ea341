// Package storage elige el backend de persistencia según STORAGE_DRIVER y expone los
// repositorios ya construidos sobre él.
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/lfc-estoque/internal/application/inventory"
	"github.com/jhoicas/lfc-estoque/internal/domain/repository"
	"github.com/jhoicas/lfc-estoque/internal/infrastructure/memory"
	"github.com/jhoicas/lfc-estoque/internal/infrastructure/postgres"
	"github.com/jhoicas/lfc-estoque/pkg/config"
	"github.com/jhoicas/lfc-estoque/pkg/logger"
)

// Backend repositorios y TxRunner de un mismo almacenamiento.
type Backend struct {
	Driver    string
	Products  repository.ProductRepository
	Shelves   repository.ShelfRepository
	Stock     repository.StockLinkRepository
	Movements repository.StockMovementRepository
	Users     repository.UserRepository
	TxRunner  inventory.TxRunner

	close func()
}

// Close libera las conexiones del backend.
func (b *Backend) Close() {
	if b.close != nil {
		b.close()
	}
}

// Open construye el backend configurado. Con postgres y DB_AUTO_MIGRATE aplica las migraciones antes de abrir el pool.
func Open(ctx context.Context, cfg config.Config, log *logger.Logger) (*Backend, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		return NewMemory(), nil
	case config.StorageDriverPostgres, "":
		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(cfg.DB.ConnectionString(), log); err != nil {
				return nil, err
			}
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		return &Backend{
			Driver:    config.StorageDriverPostgres,
			Products:  postgres.NewProductRepository(pool),
			Shelves:   postgres.NewShelfRepository(pool),
			Stock:     postgres.NewStockLinkRepository(pool),
			Movements: postgres.NewStockMovementRepository(pool),
			Users:     postgres.NewUserRepository(pool),
			TxRunner:  postgres.NewTxRunner(pool),
			close:     pool.Close,
		}, nil
	default:
		return nil, fmt.Errorf("storage driver desconocido: %q", cfg.Storage.Driver)
	}
}

// NewMemory backend en proceso; los datos se pierden al reiniciar.
func NewMemory() *Backend {
	store := memory.NewStore()
	return &Backend{
		Driver:    config.StorageDriverMemory,
		Products:  memory.NewProductRepository(store),
		Shelves:   memory.NewShelfRepository(store),
		Stock:     memory.NewStockLinkRepository(store),
		Movements: memory.NewStockMovementRepository(store),
		Users:     memory.NewUserRepository(store),
		TxRunner:  memory.NewTxRunner(store),
	}
}
