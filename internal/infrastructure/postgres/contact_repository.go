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

var _ repository.ContactRepository = (*ContactRepo)(nil)

// ContactRepo implementación de ContactRepository sobre PostgreSQL.
type ContactRepo struct {
	q Querier
}

// NewContactRepository construye el adaptador. Pasar pool o tx (Querier).
func NewContactRepository(q Querier) *ContactRepo {
	return &ContactRepo{q: q}
}

const contactColumns = `id, business_id, name, phone, email, address, type, created_at, updated_at`

func (r *ContactRepo) Create(ctx context.Context, c *entity.Contact) error {
	query := `INSERT INTO contacts (` + contactColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.BusinessID, c.Name, c.Phone, c.Email, c.Address, string(c.Type), c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}

func (r *ContactRepo) GetByID(ctx context.Context, id, businessID string) (*entity.Contact, error) {
	if !validID(id) || !validID(businessID) {
		return nil, nil
	}
	c, err := scanContact(r.q.QueryRow(ctx,
		`SELECT `+contactColumns+` FROM contacts WHERE id = $1 AND business_id = $2`, id, businessID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get contact: %w", err)
	}
	return c, nil
}

func (r *ContactRepo) GetByIDs(ctx context.Context, businessID string, ids []string) (map[string]*entity.Contact, error) {
	out := make(map[string]*entity.Contact)
	ids = validIDs(ids)
	if len(ids) == 0 || !validID(businessID) {
		return out, nil
	}
	list, err := r.query(ctx,
		`SELECT `+contactColumns+` FROM contacts WHERE business_id = $1 AND id = ANY($2::uuid[])`, businessID, ids)
	if err != nil {
		return nil, fmt.Errorf("get contacts by ids: %w", err)
	}
	for _, c := range list {
		out[c.ID] = c
	}
	return out, nil
}

// List contactos del negocio, más recientes primero.
func (r *ContactRepo) List(ctx context.Context, filter repository.ContactFilter) ([]*entity.Contact, error) {
	if !validID(filter.BusinessID) {
		return []*entity.Contact{}, nil
	}
	conds := []string{"business_id = $1"}
	args := []any{filter.BusinessID}
	if filter.Type != "" {
		args = append(args, string(filter.Type))
		conds = append(conds, fmt.Sprintf("type = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, likePattern(filter.Search))
		conds = append(conds, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	list, err := r.query(ctx,
		`SELECT `+contactColumns+` FROM contacts WHERE `+strings.Join(conds, " AND ")+` ORDER BY created_at DESC, id`,
		args...)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return list, nil
}

func (r *ContactRepo) Update(ctx context.Context, c *entity.Contact) error {
	if !validID(c.ID) || !validID(c.BusinessID) {
		return domain.ErrNotFound
	}
	cmd, err := r.q.Exec(ctx, `
		UPDATE contacts SET name = $3, phone = $4, email = $5, address = $6, type = $7, updated_at = $8
		WHERE id = $1 AND business_id = $2`,
		c.ID, c.BusinessID, c.Name, c.Phone, c.Email, c.Address, string(c.Type), c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update contact: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ContactRepo) Delete(ctx context.Context, id, businessID string) (bool, error) {
	if !validID(id) || !validID(businessID) {
		return false, nil
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM contacts WHERE id = $1 AND business_id = $2`, id, businessID)
	if err != nil {
		return false, fmt.Errorf("delete contact: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *ContactRepo) query(ctx context.Context, query string, args ...any) ([]*entity.Contact, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := make([]*entity.Contact, 0)
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func scanContact(row pgx.Row) (*entity.Contact, error) {
	var c entity.Contact
	var typ string
	err := row.Scan(&c.ID, &c.BusinessID, &c.Name, &c.Phone, &c.Email, &c.Address, &typ, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.Type = entity.ContactType(typ)
	return &c, nil
}
