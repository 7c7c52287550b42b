package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/bookkeeping-api/internal/domain"
	"github.com/jhoicas/bookkeeping-api/internal/domain/entity"
	"github.com/jhoicas/bookkeeping-api/internal/domain/repository"
)

var _ repository.BusinessRepository = (*BusinessRepo)(nil)

// BusinessRepo implementación en memoria de BusinessRepository.
type BusinessRepo struct {
	sc scope
}

// NewBusinessRepository construye el repositorio sobre el store.
func NewBusinessRepository(store *Store) *BusinessRepo {
	return &BusinessRepo{sc: scope{store: store}}
}

func (r *BusinessRepo) Create(_ context.Context, business *entity.Business) error {
	st, release := r.sc.acquire()
	defer release()
	for _, b := range st.businesses {
		if b.Username == business.Username || strings.EqualFold(b.Email, business.Email) {
			return domain.ErrDuplicate
		}
	}
	st.businesses[business.ID] = *business
	return nil
}

func (r *BusinessRepo) GetByID(_ context.Context, id string) (*entity.Business, error) {
	st, release := r.sc.acquire()
	defer release()
	b, ok := st.businesses[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r *BusinessRepo) FindByLogin(_ context.Context, login string) (*entity.Business, error) {
	st, release := r.sc.acquire()
	defer release()
	for _, b := range st.businesses {
		if b.Username == login || strings.EqualFold(b.Email, login) {
			return &b, nil
		}
	}
	return nil, nil
}

func (r *BusinessRepo) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	st, release := r.sc.acquire()
	defer release()
	for _, b := range st.businesses {
		if b.Username == username || strings.EqualFold(b.Email, email) {
			return true, nil
		}
	}
	return false, nil
}
