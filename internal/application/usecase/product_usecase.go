package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/bookkeeping-api/internal/application/dto"
	"github.com/jhoicas/bookkeeping-api/internal/domain"
	"github.com/jhoicas/bookkeeping-api/internal/domain/entity"
	"github.com/jhoicas/bookkeeping-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD del catálogo. El stock inicial se fija al crear;
// una edición explícita de stock pasa por el InventoryStore.
type ProductUseCase struct {
	repo      repository.ProductRepository
	inventory repository.InventoryStore
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, inventory repository.InventoryStore) *ProductUseCase {
	return &ProductUseCase{repo: repo, inventory: inventory}
}

// Create crea un nuevo producto del negocio.
func (uc *ProductUseCase) Create(ctx context.Context, businessID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Stock < 0 || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		BusinessID:  businessID,
		Name:        name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		Category:    strings.TrimSpace(in.Category),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto del negocio; ErrNotFound si no existe o es de otro negocio.
func (uc *ProductUseCase) GetByID(ctx context.Context, businessID, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id, businessID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update actualización parcial: los campos nil conservan su valor.
func (uc *ProductUseCase) Update(ctx context.Context, businessID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id, businessID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.Category != nil {
		product.Category = strings.TrimSpace(*in.Category)
	}
	if in.Stock != nil && *in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	if in.Stock != nil {
		updated, err := uc.inventory.SetStock(ctx, id, businessID, *in.Stock)
		if err != nil {
			return nil, err
		}
		if updated == nil {
			return nil, domain.ErrNotFound
		}
		product.Stock = updated.Stock
	}
	return toProductResponse(product), nil
}

// List lista productos del negocio, más recientes primero.
func (uc *ProductUseCase) List(ctx context.Context, businessID string, q dto.ProductQuery) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx, repository.ProductFilter{
		BusinessID: businessID,
		Search:     strings.TrimSpace(q.Search),
		Category:   strings.TrimSpace(q.Category),
	})
	if err != nil {
		return nil, err
	}
	return toProductResponses(list), nil
}

// Delete elimina un producto del negocio. Las transacciones históricas conservan el productId.
func (uc *ProductUseCase) Delete(ctx context.Context, businessID, id string) error {
	deleted, err := uc.repo.Delete(ctx, id, businessID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		BusinessID:  p.BusinessID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Category:    p.Category,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toProductResponses(list []*entity.Product) []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toProductResponse(p))
	}
	return out
}
