package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/bookkeeping-api/internal/domain"
	"github.com/jhoicas/bookkeeping-api/internal/domain/entity"
	"github.com/jhoicas/bookkeeping-api/internal/domain/repository"
)

var _ repository.InventoryStore = (*InventoryRepo)(nil)

// InventoryRepo implementación en memoria del InventoryStore. Cada operación
// corre bajo el mutex del store, así la verificación y la escritura son una sola unidad.
type InventoryRepo struct {
	sc scope
}

// NewInventoryRepository construye el inventario sobre el store.
func NewInventoryRepository(store *Store) *InventoryRepo {
	return &InventoryRepo{sc: scope{store: store}}
}

func (r *InventoryRepo) Get(_ context.Context, productID, businessID string) (*entity.Product, error) {
	st, release := r.sc.acquire()
	defer release()
	return ownedProduct(st, productID, businessID), nil
}

func (r *InventoryRepo) ApplyDelta(_ context.Context, productID, businessID string, delta int) (*entity.Product, error) {
	st, release := r.sc.acquire()
	defer release()
	p := ownedProduct(st, productID, businessID)
	if p == nil {
		return nil, nil
	}
	if p.Stock+delta < 0 {
		return p, domain.ErrInsufficientStock
	}
	p.Stock += delta
	p.UpdatedAt = time.Now()
	st.products[productID] = *p
	return p, nil
}

func (r *InventoryRepo) SetStock(_ context.Context, productID, businessID string, quantity int) (*entity.Product, error) {
	if quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	st, release := r.sc.acquire()
	defer release()
	p := ownedProduct(st, productID, businessID)
	if p == nil {
		return nil, nil
	}
	p.Stock = quantity
	p.UpdatedAt = time.Now()
	st.products[productID] = *p
	return p, nil
}

func (r *InventoryRepo) ListByStock(_ context.Context, businessID string, below *int) ([]*entity.Product, error) {
	st, release := r.sc.acquire()
	defer release()
	var list []*entity.Product
	for _, p := range st.products {
		if p.BusinessID != businessID {
			continue
		}
		if below != nil && p.Stock >= *below {
			continue
		}
		cp := p
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Stock != list[j].Stock {
			return list[i].Stock < list[j].Stock
		}
		return list[i].Name < list[j].Name
	})
	return list, nil
}
