package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/bookkeeping-api/internal/domain"
	"github.com/jhoicas/bookkeeping-api/internal/domain/entity"
	"github.com/jhoicas/bookkeeping-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo ledger en memoria (append-only).
type TransactionRepo struct {
	sc scope
}

// NewTransactionRepository construye el ledger sobre el store.
func NewTransactionRepository(store *Store) *TransactionRepo {
	return &TransactionRepo{sc: scope{store: store}}
}

func (r *TransactionRepo) Create(_ context.Context, tx *entity.Transaction) error {
	st, release := r.sc.acquire()
	defer release()
	for i := range st.transactions {
		if st.transactions[i].ID == tx.ID {
			return domain.ErrDuplicate
		}
	}
	st.transactions = append(st.transactions, *tx)
	return nil
}

func (r *TransactionRepo) GetByID(_ context.Context, id, businessID string) (*entity.Transaction, error) {
	st, release := r.sc.acquire()
	defer release()
	for i := range st.transactions {
		t := st.transactions[i]
		if t.ID == id && t.BusinessID == businessID {
			return &t, nil
		}
	}
	return nil, nil
}

func (r *TransactionRepo) List(_ context.Context, filter repository.TransactionFilter) ([]*entity.Transaction, error) {
	st, release := r.sc.acquire()
	defer release()
	var list []*entity.Transaction
	// Recorrido inverso: ante empate de fecha queda primero la última registrada.
	for i := len(st.transactions) - 1; i >= 0; i-- {
		t := st.transactions[i]
		if !matches(&t, filter) {
			continue
		}
		list = append(list, &t)
	}
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.After(list[j].Date)
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

func matches(t *entity.Transaction, f repository.TransactionFilter) bool {
	switch {
	case t.BusinessID != f.BusinessID:
		return false
	case f.Type != "" && t.Type != f.Type:
		return false
	case f.From != nil && t.Date.Before(*f.From):
		return false
	case f.To != nil && t.Date.After(*f.To):
		return false
	case f.CustomerID != "" && t.CustomerID() != f.CustomerID:
		return false
	case f.VendorID != "" && t.VendorID() != f.VendorID:
		return false
	}
	return true
}
