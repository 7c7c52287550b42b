package transaction

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/bookkeeping-api/internal/application/dto"
	"github.com/jhoicas/bookkeeping-api/internal/domain"
	"github.com/jhoicas/bookkeeping-api/internal/domain/entity"
	"github.com/jhoicas/bookkeeping-api/internal/domain/repository"
)

// SubmitInput solicitud de transacción ya tipada.
type SubmitInput struct {
	Type       entity.TransactionType
	CustomerID string
	VendorID   string
	Lines      []entity.TransactionLine
	Date       time.Time // cero = hora de registro
}

// Processor registra ventas y compras manteniendo el stock consistente con el ledger:
// todas las líneas se aplican junto con el registro, o no se aplica nada.
type Processor struct {
	txRunner TxRunner
	contacts repository.ContactRepository
	log      zerolog.Logger
	now      func() time.Time
}

// NewProcessor construye el procesador de transacciones.
func NewProcessor(txRunner TxRunner, contacts repository.ContactRepository, log zerolog.Logger) *Processor {
	return &Processor{
		txRunner: txRunner,
		contacts: contacts,
		log:      log.With().Str("component", "transaction_processor").Logger(),
		now:      time.Now,
	}
}

// SubmitFromRequest adapta el body HTTP a Submit.
func (p *Processor) SubmitFromRequest(ctx context.Context, businessID string, in dto.CreateTransactionRequest) (*entity.Transaction, error) {
	date, err := parseTransactionDate(in.Date)
	if err != nil {
		return nil, err
	}
	lines := make([]entity.TransactionLine, 0, len(in.Products))
	for _, l := range in.Products {
		lines = append(lines, entity.TransactionLine{
			ProductID: strings.TrimSpace(l.ProductID),
			Quantity:  l.Quantity,
			Price:     l.Price,
		})
	}
	return p.Submit(ctx, businessID, SubmitInput{
		Type:       entity.TransactionType(in.Type),
		CustomerID: strings.TrimSpace(in.CustomerID),
		VendorID:   strings.TrimSpace(in.VendorID),
		Lines:      lines,
		Date:       date,
	})
}

// Submit valida la solicitud, aplica los deltas de stock línea por línea (en orden) y
// agrega el registro al ledger dentro de una sola transacción de almacenamiento.
//
// Una línea cuyo producto no existe en el negocio se registra sin efecto en stock.
// Una venta que dejaría stock negativo devuelve *domain.InsufficientStockError y revierte
// los cambios de las líneas anteriores.
func (p *Processor) Submit(ctx context.Context, businessID string, in SubmitInput) (*entity.Transaction, error) {
	if businessID == "" {
		return nil, domain.ErrUnauthorized
	}
	if !in.Type.Valid() {
		return nil, domain.ErrInvalidTransactionType
	}
	if err := validateLines(in.Lines); err != nil {
		return nil, err
	}
	counterpartyID, err := p.resolveCounterparty(ctx, businessID, in)
	if err != nil {
		return nil, err
	}

	tx := entity.NewTransaction(uuid.New().String(), businessID, in.Type, counterpartyID, in.Lines, in.Date, p.now())

	err = p.txRunner.Run(ctx, func(inventory repository.InventoryStore, ledger repository.TransactionRepository) error {
		for i, line := range tx.Lines {
			product, err := inventory.ApplyDelta(ctx, line.ProductID, businessID, tx.Type.StockDelta(line.Quantity))
			if errors.Is(err, domain.ErrInsufficientStock) {
				return insufficientStock(line, product)
			}
			if err != nil {
				return fmt.Errorf("aplicar stock línea %d: %w", i+1, err)
			}
			if product == nil {
				p.log.Warn().
					Str("business_id", businessID).
					Str("product_id", line.ProductID).
					Int("line", i+1).
					Msg("producto no pertenece al negocio: línea registrada sin efecto en stock")
			}
		}
		return ledger.Create(ctx, tx)
	})
	if err != nil {
		var stockErr *domain.InsufficientStockError
		if errors.As(err, &stockErr) {
			p.log.Info().
				Str("business_id", businessID).
				Str("product_id", stockErr.ProductID).
				Int("requested", stockErr.Requested).
				Int("available", stockErr.Available).
				Msg("venta rechazada por stock insuficiente")
		}
		return nil, err
	}

	p.log.Debug().
		Str("business_id", businessID).
		Str("transaction_id", tx.ID).
		Str("type", string(tx.Type)).
		Str("total", tx.TotalAmount.String()).
		Msg("transacción registrada")
	return tx, nil
}

// resolveCounterparty valida la contraparte según el tipo: cliente en ventas, proveedor en compras.
func (p *Processor) resolveCounterparty(ctx context.Context, businessID string, in SubmitInput) (string, error) {
	id := in.CustomerID
	if in.Type == entity.TransactionTypePurchase {
		id = in.VendorID
	}
	if id == "" {
		return "", nil
	}
	contact, err := p.contacts.GetByID(ctx, id, businessID)
	if err != nil {
		return "", err
	}
	if contact == nil {
		return "", domain.ErrNotFound
	}
	if contact.Type != in.Type.CounterpartyKind() {
		return "", domain.ErrCounterpartyMismatch
	}
	return contact.ID, nil
}

func validateLines(lines []entity.TransactionLine) error {
	if len(lines) == 0 {
		return fmt.Errorf("%w: se requiere al menos un producto", domain.ErrInvalidLine)
	}
	for i, l := range lines {
		switch {
		case l.ProductID == "":
			return fmt.Errorf("%w: línea %d sin productId", domain.ErrInvalidLine, i+1)
		case l.Quantity < 1:
			return fmt.Errorf("%w: línea %d con cantidad %d", domain.ErrInvalidLine, i+1, l.Quantity)
		case l.Price.IsNegative():
			return fmt.Errorf("%w: línea %d con precio negativo", domain.ErrInvalidLine, i+1)
		}
	}
	return nil
}

func insufficientStock(line entity.TransactionLine, product *entity.Product) error {
	e := &domain.InsufficientStockError{ProductID: line.ProductID, Requested: line.Quantity}
	if product != nil {
		e.ProductName = product.Name
		e.Available = product.Stock
	}
	return e
}
