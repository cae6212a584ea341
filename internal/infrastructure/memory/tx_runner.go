package memory

import (
	"context"

	"github.com/jhoicas/lfc-estoque/internal/application/inventory"
	"github.com/jhoicas/lfc-estoque/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks con el Store bloqueado; si fn falla restaura la copia previa.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el Store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn con repos atados a la transacción y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockLinkRepository,
	productRepo repository.ProductRepository,
	shelfRepo repository.ShelfRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	snapshot := r.store.st.clone()
	err := fn(
		&StockLinkRepository{store: r.store, inTx: true},
		&ProductRepository{store: r.store, inTx: true},
		&ShelfRepository{store: r.store, inTx: true},
		&StockMovementRepository{store: r.store, inTx: true},
	)
	if err != nil {
		r.store.st = snapshot
		return err
	}
	return nil
}
