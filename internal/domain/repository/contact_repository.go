package repository

import (
	"context"

	"github.com/jhoicas/bookkeeping-api/internal/domain/entity"
)

// ContactFilter filtros del listado de contactos.
type ContactFilter struct {
	BusinessID string
	Type       entity.ContactType // vacío = todos
	Search     string
}

// ContactRepository define el puerto de persistencia para Contact.
type ContactRepository interface {
	Create(ctx context.Context, contact *entity.Contact) error
	GetByID(ctx context.Context, id, businessID string) (*entity.Contact, error)
	GetByIDs(ctx context.Context, businessID string, ids []string) (map[string]*entity.Contact, error)
	List(ctx context.Context, filter ContactFilter) ([]*entity.Contact, error)
	Update(ctx context.Context, contact *entity.Contact) error
	Delete(ctx context.Context, id, businessID string) (bool, error)
}
