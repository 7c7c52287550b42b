package repository

import (
	"context"

	"github.com/jhoicas/bookkeeping-api/internal/domain/entity"
)

// BusinessRepository define el puerto de persistencia para Business (tenant).
type BusinessRepository interface {
	Create(ctx context.Context, business *entity.Business) error
	GetByID(ctx context.Context, id string) (*entity.Business, error)
	// FindByLogin busca por username o email (login acepta cualquiera de los dos).
	FindByLogin(ctx context.Context, login string) (*entity.Business, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
}
