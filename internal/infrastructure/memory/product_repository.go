package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/bookkeeping-api/internal/domain"
	"github.com/jhoicas/bookkeeping-api/internal/domain/entity"
	"github.com/jhoicas/bookkeeping-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria del catálogo.
type ProductRepo struct {
	sc scope
}

// NewProductRepository construye el repositorio sobre el store.
func NewProductRepository(store *Store) *ProductRepo {
	return &ProductRepo{sc: scope{store: store}}
}

func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	st, release := r.sc.acquire()
	defer release()
	if _, exists := st.products[product.ID]; exists {
		return domain.ErrDuplicate
	}
	st.products[product.ID] = *product
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id, businessID string) (*entity.Product, error) {
	st, release := r.sc.acquire()
	defer release()
	return ownedProduct(st, id, businessID), nil
}

func (r *ProductRepo) GetByIDs(_ context.Context, businessID string, ids []string) (map[string]*entity.Product, error) {
	st, release := r.sc.acquire()
	defer release()
	out := make(map[string]*entity.Product, len(ids))
	for _, id := range ids {
		if p := ownedProduct(st, id, businessID); p != nil {
			out[id] = p
		}
	}
	return out, nil
}

func (r *ProductRepo) List(_ context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	st, release := r.sc.acquire()
	defer release()
	var list []*entity.Product
	for _, p := range st.products {
		if p.BusinessID != filter.BusinessID {
			continue
		}
		if filter.Search != "" && !containsFold(p.Name, filter.Search) {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		cp := p
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

// Update modifica los datos del catálogo conservando el stock vigente.
func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	st, release := r.sc.acquire()
	defer release()
	current := ownedProduct(st, product.ID, product.BusinessID)
	if current == nil {
		return domain.ErrNotFound
	}
	updated := *product
	updated.Stock = current.Stock
	updated.CreatedAt = current.CreatedAt
	st.products[product.ID] = updated
	product.Stock = current.Stock
	return nil
}

func (r *ProductRepo) Delete(_ context.Context, id, businessID string) (bool, error) {
	st, release := r.sc.acquire()
	defer release()
	if ownedProduct(st, id, businessID) == nil {
		return false, nil
	}
	delete(st.products, id)
	return true, nil
}

func ownedProduct(st *state, id, businessID string) *entity.Product {
	p, ok := st.products[id]
	if !ok || p.BusinessID != businessID {
		return nil
	}
	return &p
}
