package transaction

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/bookkeeping-api/internal/application/dto"
	"github.com/jhoicas/bookkeeping-api/internal/domain/entity"
	"github.com/jhoicas/bookkeeping-api/internal/domain/repository"
)

// Enricher resuelve nombres de contrapartes y productos para las respuestas.
// Solo consulta dentro del negocio dueño: un id ajeno queda sin nombre.
type Enricher struct {
	products repository.ProductRepository
	contacts repository.ContactRepository
}

// NewEnricher construye el Enricher.
func NewEnricher(products repository.ProductRepository, contacts repository.ContactRepository) *Enricher {
	return &Enricher{products: products, contacts: contacts}
}

// Present convierte las transacciones en DTOs con nombres resueltos.
// Productos y contactos se cargan en paralelo, una consulta por tipo.
func (e *Enricher) Present(ctx context.Context, businessID string, txs []*entity.Transaction) ([]dto.TransactionResponse, error) {
	productIDs, contactIDs := collectIDs(txs)

	var (
		products map[string]*entity.Product
		contacts map[string]*entity.Contact
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = e.products.GetByIDs(gctx, businessID, productIDs)
		return err
	})
	g.Go(func() error {
		var err error
		contacts, err = e.contacts.GetByIDs(gctx, businessID, contactIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]dto.TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, toResponse(tx, products, contacts))
	}
	return out, nil
}

// PresentOne igual que Present para un solo registro.
func (e *Enricher) PresentOne(ctx context.Context, businessID string, tx *entity.Transaction) (*dto.TransactionResponse, error) {
	list, err := e.Present(ctx, businessID, []*entity.Transaction{tx})
	if err != nil {
		return nil, err
	}
	return &list[0], nil
}

func collectIDs(txs []*entity.Transaction) (productIDs, contactIDs []string) {
	seenP := make(map[string]struct{})
	seenC := make(map[string]struct{})
	for _, tx := range txs {
		if id := tx.Counterparty.ContactID; id != "" {
			if _, ok := seenC[id]; !ok {
				seenC[id] = struct{}{}
				contactIDs = append(contactIDs, id)
			}
		}
		for _, l := range tx.Lines {
			if _, ok := seenP[l.ProductID]; !ok {
				seenP[l.ProductID] = struct{}{}
				productIDs = append(productIDs, l.ProductID)
			}
		}
	}
	return productIDs, contactIDs
}

func toResponse(tx *entity.Transaction, products map[string]*entity.Product, contacts map[string]*entity.Contact) dto.TransactionResponse {
	resp := dto.TransactionResponse{
		ID:          tx.ID,
		BusinessID:  tx.BusinessID,
		Type:        string(tx.Type),
		CustomerID:  tx.CustomerID(),
		VendorID:    tx.VendorID(),
		Products:    make([]dto.TransactionLineResponse, 0, len(tx.Lines)),
		TotalAmount: tx.TotalAmount,
		Date:        tx.Date,
		CreatedAt:   tx.CreatedAt,
	}
	if c, ok := contacts[tx.Counterparty.ContactID]; ok {
		if tx.Counterparty.Kind == entity.ContactTypeVendor {
			resp.VendorName = c.Name
		} else {
			resp.CustomerName = c.Name
		}
	}
	for _, l := range tx.Lines {
		line := dto.TransactionLineResponse{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			Price:     l.Price,
			Subtotal:  l.Subtotal(),
		}
		if p, ok := products[l.ProductID]; ok {
			line.ProductName = p.Name
		}
		resp.Products = append(resp.Products, line)
	}
	return resp
}
