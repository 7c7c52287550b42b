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

// ContactUseCase casos de uso CRUD de clientes y proveedores.
type ContactUseCase struct {
	repo repository.ContactRepository
}

// NewContactUseCase construye el caso de uso.
func NewContactUseCase(repo repository.ContactRepository) *ContactUseCase {
	return &ContactUseCase{repo: repo}
}

// Create crea un contacto del negocio; type debe ser customer o vendor.
func (uc *ContactUseCase) Create(ctx context.Context, businessID string, in dto.CreateContactRequest) (*dto.ContactResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	typ := entity.ContactType(strings.ToLower(strings.TrimSpace(in.Type)))
	if !typ.Valid() {
		return nil, domain.ErrInvalidContactType
	}
	now := time.Now()
	contact := &entity.Contact{
		ID:         uuid.New().String(),
		BusinessID: businessID,
		Name:       name,
		Phone:      strings.TrimSpace(in.Phone),
		Email:      strings.TrimSpace(in.Email),
		Address:    strings.TrimSpace(in.Address),
		Type:       typ,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(ctx, contact); err != nil {
		return nil, err
	}
	return toContactResponse(contact), nil
}

// GetByID obtiene un contacto del negocio.
func (uc *ContactUseCase) GetByID(ctx context.Context, businessID, id string) (*dto.ContactResponse, error) {
	contact, err := uc.repo.GetByID(ctx, id, businessID)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, domain.ErrNotFound
	}
	return toContactResponse(contact), nil
}

// Update actualización parcial del contacto.
func (uc *ContactUseCase) Update(ctx context.Context, businessID, id string, in dto.UpdateContactRequest) (*dto.ContactResponse, error) {
	contact, err := uc.repo.GetByID(ctx, id, businessID)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		contact.Name = name
	}
	if in.Phone != nil {
		contact.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Email != nil {
		contact.Email = strings.TrimSpace(*in.Email)
	}
	if in.Address != nil {
		contact.Address = strings.TrimSpace(*in.Address)
	}
	if in.Type != nil {
		typ := entity.ContactType(strings.ToLower(strings.TrimSpace(*in.Type)))
		if !typ.Valid() {
			return nil, domain.ErrInvalidContactType
		}
		contact.Type = typ
	}
	contact.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, contact); err != nil {
		return nil, err
	}
	return toContactResponse(contact), nil
}

// List lista contactos del negocio, opcionalmente por tipo y búsqueda por nombre.
func (uc *ContactUseCase) List(ctx context.Context, businessID string, q dto.ContactQuery) ([]dto.ContactResponse, error) {
	filter := repository.ContactFilter{
		BusinessID: businessID,
		Search:     strings.TrimSpace(q.Search),
	}
	if t := strings.TrimSpace(q.Type); t != "" {
		filter.Type = entity.ContactType(strings.ToLower(t))
		if !filter.Type.Valid() {
			return nil, domain.ErrInvalidContactType
		}
	}
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ContactResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toContactResponse(c))
	}
	return out, nil
}

// Delete elimina un contacto del negocio.
func (uc *ContactUseCase) Delete(ctx context.Context, businessID, id string) error {
	deleted, err := uc.repo.Delete(ctx, id, businessID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}

func toContactResponse(c *entity.Contact) *dto.ContactResponse {
	return &dto.ContactResponse{
		ID:         c.ID,
		BusinessID: c.BusinessID,
		Name:       c.Name,
		Phone:      c.Phone,
		Email:      c.Email,
		Address:    c.Address,
		Type:       string(c.Type),
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}
