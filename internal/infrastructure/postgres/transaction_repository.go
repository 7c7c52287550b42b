package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/bookkeeping-api/internal/domain/entity"
	"github.com/jhoicas/bookkeeping-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo ledger sobre PostgreSQL: cabecera en transactions y líneas en transaction_lines.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

const transactionColumns = `id, business_id, type, customer_id, vendor_id, total_amount, date, created_at`

// Create inserta cabecera y líneas. Debe correr dentro de la misma tx que los ajustes de stock.
func (r *TransactionRepo) Create(ctx context.Context, tx *entity.Transaction) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO transactions (`+transactionColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		tx.ID, tx.BusinessID, string(tx.Type),
		nullableString(tx.CustomerID()), nullableString(tx.VendorID()),
		tx.TotalAmount, tx.Date, tx.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	for i, l := range tx.Lines {
		_, err := r.q.Exec(ctx,
			`INSERT INTO transaction_lines (transaction_id, position, product_id, quantity, price) VALUES ($1, $2, $3, $4, $5)`,
			tx.ID, i, l.ProductID, l.Quantity, l.Price,
		)
		if err != nil {
			return fmt.Errorf("insert transaction line %d: %w", i+1, err)
		}
	}
	return nil
}

func (r *TransactionRepo) GetByID(ctx context.Context, id, businessID string) (*entity.Transaction, error) {
	if !validID(id) || !validID(businessID) {
		return nil, nil
	}
	tx, err := scanTransaction(r.q.QueryRow(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = $1 AND business_id = $2`, id, businessID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	if err := r.loadLines(ctx, []*entity.Transaction{tx}); err != nil {
		return nil, err
	}
	return tx, nil
}

// List transacciones del negocio por fecha descendente (empates por created_at descendente).
func (r *TransactionRepo) List(ctx context.Context, f repository.TransactionFilter) ([]*entity.Transaction, error) {
	if !validID(f.BusinessID) {
		return []*entity.Transaction{}, nil
	}
	conds := []string{"business_id = $1"}
	args := []any{f.BusinessID}
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.Type != "" {
		add("type = $%d", string(f.Type))
	}
	if f.From != nil {
		add("date >= $%d", *f.From)
	}
	if f.To != nil {
		add("date <= $%d", *f.To)
	}
	for _, c := range []struct{ col, id string }{{"customer_id", f.CustomerID}, {"vendor_id", f.VendorID}} {
		if c.id == "" {
			continue
		}
		if !validID(c.id) {
			return []*entity.Transaction{}, nil
		}
		add(c.col+" = $%d", c.id)
	}

	rows, err := r.q.Query(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE `+strings.Join(conds, " AND ")+
			` ORDER BY date DESC, created_at DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Transaction, 0)
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	rows.Close()
	if err := r.loadLines(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// loadLines carga las líneas de todas las transacciones en una sola consulta, respetando el orden original.
func (r *TransactionRepo) loadLines(ctx context.Context, txs []*entity.Transaction) error {
	if len(txs) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Transaction, len(txs))
	ids := make([]string, 0, len(txs))
	for _, tx := range txs {
		byID[tx.ID] = tx
		ids = append(ids, tx.ID)
	}
	rows, err := r.q.Query(ctx, `
		SELECT transaction_id, product_id, quantity, price
		FROM transaction_lines WHERE transaction_id = ANY($1::uuid[])
		ORDER BY transaction_id, position`, ids)
	if err != nil {
		return fmt.Errorf("load transaction lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var txID string
		var l entity.TransactionLine
		if err := rows.Scan(&txID, &l.ProductID, &l.Quantity, &l.Price); err != nil {
			return fmt.Errorf("scan transaction line: %w", err)
		}
		if tx, ok := byID[txID]; ok {
			tx.Lines = append(tx.Lines, l)
		}
	}
	return rows.Err()
}

func scanTransaction(row pgx.Row) (*entity.Transaction, error) {
	var (
		tx                   entity.Transaction
		typ                  string
		customerID, vendorID *string
	)
	err := row.Scan(&tx.ID, &tx.BusinessID, &typ, &customerID, &vendorID, &tx.TotalAmount, &tx.Date, &tx.CreatedAt)
	if err != nil {
		return nil, err
	}
	tx.Type = entity.TransactionType(typ)
	tx.Counterparty.Kind = tx.Type.CounterpartyKind()
	if tx.Type == entity.TransactionTypePurchase && vendorID != nil {
		tx.Counterparty.ContactID = *vendorID
	}
	if tx.Type == entity.TransactionTypeSale && customerID != nil {
		tx.Counterparty.ContactID = *customerID
	}
	return &tx, nil
}
