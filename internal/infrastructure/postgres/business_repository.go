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

var _ repository.BusinessRepository = (*BusinessRepo)(nil)

// BusinessRepo implementación de BusinessRepository sobre PostgreSQL.
type BusinessRepo struct {
	q Querier
}

// NewBusinessRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBusinessRepository(q Querier) *BusinessRepo {
	return &BusinessRepo{q: q}
}

const businessColumns = `id, username, email, password_hash, business_name, created_at, updated_at`

func (r *BusinessRepo) Create(ctx context.Context, b *entity.Business) error {
	query := `INSERT INTO businesses (` + businessColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, b.ID, b.Username, b.Email, b.PasswordHash, b.BusinessName, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert business: %w", err)
	}
	return nil
}

func (r *BusinessRepo) GetByID(ctx context.Context, id string) (*entity.Business, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+businessColumns+` FROM businesses WHERE id = $1`, id)
}

// FindByLogin busca por username exacto o email sin distinguir mayúsculas.
func (r *BusinessRepo) FindByLogin(ctx context.Context, login string) (*entity.Business, error) {
	return r.getOne(ctx, `SELECT `+businessColumns+` FROM businesses WHERE username = $1 OR lower(email) = lower($1) LIMIT 1`, login)
}

func (r *BusinessRepo) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM businesses WHERE username = $1 OR lower(email) = lower($2))`,
		username, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists business: %w", err)
	}
	return exists, nil
}

func (r *BusinessRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Business, error) {
	var b entity.Business
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&b.ID, &b.Username, &b.Email, &b.PasswordHash, &b.BusinessName, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get business: %w", err)
	}
	return &b, nil
}
