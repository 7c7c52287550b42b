package transaction

import (
	"context"
	"strings"

	"github.com/jhoicas/bookkeeping-api/internal/application/dto"
	"github.com/jhoicas/bookkeeping-api/internal/domain"
	"github.com/jhoicas/bookkeeping-api/internal/domain/entity"
	"github.com/jhoicas/bookkeeping-api/internal/domain/repository"
)

// QueryUseCase lado de lectura del ledger.
type QueryUseCase struct {
	ledger   repository.TransactionRepository
	enricher *Enricher
}

// NewQueryUseCase construye el caso de uso de consulta.
func NewQueryUseCase(ledger repository.TransactionRepository, enricher *Enricher) *QueryUseCase {
	return &QueryUseCase{ledger: ledger, enricher: enricher}
}

// List devuelve las transacciones del negocio, más recientes primero, con nombres resueltos.
func (uc *QueryUseCase) List(ctx context.Context, businessID string, q dto.TransactionQuery) ([]dto.TransactionResponse, error) {
	filter, err := BuildFilter(businessID, q)
	if err != nil {
		return nil, err
	}
	txs, err := uc.ledger.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return uc.enricher.Present(ctx, businessID, txs)
}

// Get devuelve una transacción del negocio; ErrNotFound si no existe o es de otro negocio.
func (uc *QueryUseCase) Get(ctx context.Context, businessID, id string) (*dto.TransactionResponse, error) {
	tx, err := uc.ledger.GetByID(ctx, id, businessID)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, domain.ErrNotFound
	}
	return uc.enricher.PresentOne(ctx, businessID, tx)
}

// Present enriquece un registro recién creado.
func (uc *QueryUseCase) Present(ctx context.Context, tx *entity.Transaction) (*dto.TransactionResponse, error) {
	return uc.enricher.PresentOne(ctx, tx.BusinessID, tx)
}

// BuildFilter traduce los query params al filtro del ledger.
func BuildFilter(businessID string, q dto.TransactionQuery) (repository.TransactionFilter, error) {
	filter := repository.TransactionFilter{
		BusinessID: businessID,
		CustomerID: strings.TrimSpace(q.CustomerID),
		VendorID:   strings.TrimSpace(q.VendorID),
	}
	if t := strings.TrimSpace(q.Type); t != "" {
		filter.Type = entity.TransactionType(strings.ToLower(t))
		if !filter.Type.Valid() {
			return filter, domain.ErrInvalidTransactionType
		}
	}
	var err error
	if filter.From, err = parseRangeBound(q.StartDate, false); err != nil {
		return filter, err
	}
	if filter.To, err = parseRangeBound(q.EndDate, true); err != nil {
		return filter, err
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return filter, domain.ErrInvalidInput
	}
	return filter, nil
}
