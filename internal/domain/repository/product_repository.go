package repository

import (
	"context"

	"github.com/jhoicas/bookkeeping-api/internal/domain/entity"
)

// ProductFilter filtros del listado de catálogo.
type ProductFilter struct {
	BusinessID string
	Search     string // contiene, sin distinguir mayúsculas
	Category   string
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// Update nunca modifica Stock: el stock se maneja por InventoryStore.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id, businessID string) (*entity.Product, error)
	GetByIDs(ctx context.Context, businessID string, ids []string) (map[string]*entity.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id, businessID string) (bool, error)
}
