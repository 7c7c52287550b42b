package repository

import (
	"context"
	"time"

	"github.com/jhoicas/bookkeeping-api/internal/domain/entity"
)

// TransactionFilter filtros de consulta del ledger. Campos vacíos/nil no filtran.
type TransactionFilter struct {
	BusinessID string
	Type       entity.TransactionType
	From       *time.Time
	To         *time.Time
	CustomerID string
	VendorID   string
}

// TransactionRepository es el ledger: append de transacciones y consultas ordenadas por fecha desc.
type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.Transaction) error
	GetByID(ctx context.Context, id, businessID string) (*entity.Transaction, error)
	List(ctx context.Context, filter TransactionFilter) ([]*entity.Transaction, error)
}
