package memory

import (
	"context"

	"github.com/jhoicas/bookkeeping-api/internal/application/transaction"
	"github.com/jhoicas/bookkeeping-api/internal/domain/repository"
)

var _ transaction.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta fn sobre una copia del estado con el store bloqueado.
// Si fn falla la copia se descarta (rollback); si no, reemplaza al estado (commit).
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn de forma atómica respecto a cualquier otra operación del store.
func (r *TxRunner) Run(ctx context.Context, fn func(
	inventory repository.InventoryStore,
	ledger repository.TransactionRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	work := r.store.st.clone()
	sc := scope{store: r.store, tx: work}
	if err := fn(&InventoryRepo{sc: sc}, &TransactionRepo{sc: sc}); err != nil {
		return err
	}
	r.store.st = work
	return nil
}
