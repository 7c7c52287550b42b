package repository

import (
	"context"

	"github.com/jhoicas/bookkeeping-api/internal/domain/entity"
)

// InventoryStore es la autoridad sobre el stock de cada producto, siempre acotado al negocio.
// Un producto de otro negocio o inexistente se reporta como ausente (nil, nil).
type InventoryStore interface {
	Get(ctx context.Context, productID, businessID string) (*entity.Product, error)

	// ApplyDelta suma delta al stock en una sola operación atómica de lectura-verificación-escritura.
	// Si el resultado fuera negativo no modifica nada y devuelve el producto actual junto con
	// domain.ErrInsufficientStock.
	ApplyDelta(ctx context.Context, productID, businessID string, delta int) (*entity.Product, error)

	// SetStock fija el stock (edición explícita del catálogo); quantity debe ser >= 0.
	SetStock(ctx context.Context, productID, businessID string, quantity int) (*entity.Product, error)

	// ListByStock lista productos ordenados por stock ascendente; below != nil filtra stock < *below.
	ListByStock(ctx context.Context, businessID string, below *int) ([]*entity.Product, error)
}
