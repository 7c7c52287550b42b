package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/bookkeeping-api/internal/domain"
	"github.com/jhoicas/bookkeeping-api/internal/domain/entity"
	"github.com/jhoicas/bookkeeping-api/internal/domain/repository"
)

var _ repository.InventoryStore = (*InventoryRepo)(nil)

// InventoryRepo stock de productos sobre PostgreSQL. Cada ajuste es un UPDATE condicional,
// así dos ventas concurrentes nunca dejan stock negativo.
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

func (r *InventoryRepo) Get(ctx context.Context, productID, businessID string) (*entity.Product, error) {
	return NewProductRepository(r.q).GetByID(ctx, productID, businessID)
}

// ApplyDelta suma delta al stock solo si el resultado queda >= 0.
// Si el UPDATE no afecta filas, se distingue entre producto ausente y stock insuficiente.
func (r *InventoryRepo) ApplyDelta(ctx context.Context, productID, businessID string, delta int) (*entity.Product, error) {
	if !validID(productID) || !validID(businessID) {
		return nil, nil
	}
	query := `
		UPDATE products SET stock = stock + $3, updated_at = now()
		WHERE id = $1 AND business_id = $2 AND stock + $3 >= 0
		RETURNING ` + productColumns
	p, err := scanProduct(r.q.QueryRow(ctx, query, productID, businessID, delta))
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("apply stock delta: %w", err)
	}
	current, err := r.Get(ctx, productID, businessID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, nil
	}
	return current, domain.ErrInsufficientStock
}

// SetStock fija el stock explícitamente (edición de catálogo).
func (r *InventoryRepo) SetStock(ctx context.Context, productID, businessID string, quantity int) (*entity.Product, error) {
	if quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	if !validID(productID) || !validID(businessID) {
		return nil, nil
	}
	query := `
		UPDATE products SET stock = $3, updated_at = now()
		WHERE id = $1 AND business_id = $2
		RETURNING ` + productColumns
	p, err := scanProduct(r.q.QueryRow(ctx, query, productID, businessID, quantity))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("set stock: %w", err)
	}
	return p, nil
}

// ListByStock productos por stock ascendente (empates por nombre); below filtra stock < *below.
func (r *InventoryRepo) ListByStock(ctx context.Context, businessID string, below *int) ([]*entity.Product, error) {
	if !validID(businessID) {
		return []*entity.Product{}, nil
	}
	products := NewProductRepository(r.q)
	var (
		list []*entity.Product
		err  error
	)
	if below != nil {
		list, err = products.query(ctx,
			`SELECT `+productColumns+` FROM products WHERE business_id = $1 AND stock < $2 ORDER BY stock ASC, name ASC`,
			businessID, *below)
	} else {
		list, err = products.query(ctx,
			`SELECT `+productColumns+` FROM products WHERE business_id = $1 ORDER BY stock ASC, name ASC`,
			businessID)
	}
	if err != nil {
		return nil, fmt.Errorf("list by stock: %w", err)
	}
	return list, nil
}
