package transaction

import (
	"context"

	"github.com/jhoicas/bookkeeping-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de almacenamiento, pasando el
// inventario y el ledger atados a esa transacción. Si fn devuelve error no queda ningún
// cambio aplicado (ni stock ni registro del ledger).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		inventory repository.InventoryStore,
		ledger repository.TransactionRepository,
	) error) error
}
