package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/bookkeeping-api/internal/domain"
	"github.com/jhoicas/bookkeeping-api/internal/domain/entity"
	"github.com/jhoicas/bookkeeping-api/internal/domain/repository"
)

var _ repository.ContactRepository = (*ContactRepo)(nil)

// ContactRepo implementación en memoria de ContactRepository.
type ContactRepo struct {
	sc scope
}

// NewContactRepository construye el repositorio sobre el store.
func NewContactRepository(store *Store) *ContactRepo {
	return &ContactRepo{sc: scope{store: store}}
}

func (r *ContactRepo) Create(_ context.Context, contact *entity.Contact) error {
	st, release := r.sc.acquire()
	defer release()
	if _, exists := st.contacts[contact.ID]; exists {
		return domain.ErrDuplicate
	}
	st.contacts[contact.ID] = *contact
	return nil
}

func (r *ContactRepo) GetByID(_ context.Context, id, businessID string) (*entity.Contact, error) {
	st, release := r.sc.acquire()
	defer release()
	return ownedContact(st, id, businessID), nil
}

func (r *ContactRepo) GetByIDs(_ context.Context, businessID string, ids []string) (map[string]*entity.Contact, error) {
	st, release := r.sc.acquire()
	defer release()
	out := make(map[string]*entity.Contact, len(ids))
	for _, id := range ids {
		if c := ownedContact(st, id, businessID); c != nil {
			out[id] = c
		}
	}
	return out, nil
}

func (r *ContactRepo) List(_ context.Context, filter repository.ContactFilter) ([]*entity.Contact, error) {
	st, release := r.sc.acquire()
	defer release()
	var list []*entity.Contact
	for _, c := range st.contacts {
		if c.BusinessID != filter.BusinessID {
			continue
		}
		if filter.Type != "" && c.Type != filter.Type {
			continue
		}
		if filter.Search != "" && !containsFold(c.Name, filter.Search) {
			continue
		}
		cp := c
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

func (r *ContactRepo) Update(_ context.Context, contact *entity.Contact) error {
	st, release := r.sc.acquire()
	defer release()
	current := ownedContact(st, contact.ID, contact.BusinessID)
	if current == nil {
		return domain.ErrNotFound
	}
	updated := *contact
	updated.CreatedAt = current.CreatedAt
	st.contacts[contact.ID] = updated
	return nil
}

func (r *ContactRepo) Delete(_ context.Context, id, businessID string) (bool, error) {
	st, release := r.sc.acquire()
	defer release()
	if ownedContact(st, id, businessID) == nil {
		return false, nil
	}
	delete(st.contacts, id)
	return true, nil
}

func ownedContact(st *state, id, businessID string) *entity.Contact {
	c, ok := st.contacts[id]
	if !ok || c.BusinessID != businessID {
		return nil
	}
	return &c
}
