package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/bookkeeping-api/internal/domain"
	"github.com/jhoicas/bookkeeping-api/internal/domain/entity"
	"github.com/jhoicas/bookkeeping-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, business_id, name, description, price, stock, category, created_at, updated_at`

// Create persiste un nuevo producto con su stock inicial.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `INSERT INTO products (` + productColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.BusinessID, p.Name, p.Description, p.Price, p.Stock, p.Category, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto del negocio; nil si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id, businessID string) (*entity.Product, error) {
	if !validID(id) || !validID(businessID) {
		return nil, nil
	}
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND business_id = $2`
	p, err := scanProduct(r.q.QueryRow(ctx, query, id, businessID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByIDs carga varios productos del negocio en una sola consulta.
func (r *ProductRepo) GetByIDs(ctx context.Context, businessID string, ids []string) (map[string]*entity.Product, error) {
	out := make(map[string]*entity.Product)
	ids = validIDs(ids)
	if len(ids) == 0 || !validID(businessID) {
		return out, nil
	}
	query := `SELECT ` + productColumns + ` FROM products WHERE business_id = $1 AND id = ANY($2::uuid[])`
	list, err := r.query(ctx, query, businessID, ids)
	if err != nil {
		return nil, fmt.Errorf("get products by ids: %w", err)
	}
	for _, p := range list {
		out[p.ID] = p
	}
	return out, nil
}

// List lista productos del negocio, más recientes primero.
func (r *ProductRepo) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	if !validID(filter.BusinessID) {
		return []*entity.Product{}, nil
	}
	conds := []string{"business_id = $1"}
	args := []any{filter.BusinessID}
	if filter.Search != "" {
		args = append(args, likePattern(filter.Search))
		conds = append(conds, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	query := `SELECT ` + productColumns + ` FROM products WHERE ` + strings.Join(conds, " AND ") +
		` ORDER BY created_at DESC, id`
	list, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return list, nil
}

// Update actualiza datos de catálogo. No toca stock (se maneja por InventoryStore).
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	if !validID(p.ID) || !validID(p.BusinessID) {
		return domain.ErrNotFound
	}
	query := `
		UPDATE products SET name = $3, description = $4, price = $5, category = $6, updated_at = $7
		WHERE id = $1 AND business_id = $2`
	cmd, err := r.q.Exec(ctx, query, p.ID, p.BusinessID, p.Name, p.Description, p.Price, p.Category, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el producto del negocio; false si no existía.
func (r *ProductRepo) Delete(ctx context.Context, id, businessID string) (bool, error) {
	if !validID(id) || !validID(businessID) {
		return false, nil
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1 AND business_id = $2`, id, businessID)
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *ProductRepo) query(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.BusinessID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.Category, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
