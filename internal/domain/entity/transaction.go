package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType tipo de transacción: venta o compra.
type TransactionType string

const (
	TransactionTypeSale     TransactionType = "sale"
	TransactionTypePurchase TransactionType = "purchase"
)

// Valid indica si el tipo es sale o purchase.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeSale || t == TransactionTypePurchase
}

// CounterpartyKind tipo de contacto que corresponde a la transacción (sale → customer, purchase → vendor).
func (t TransactionType) CounterpartyKind() ContactType {
	if t == TransactionTypePurchase {
		return ContactTypeVendor
	}
	return ContactTypeCustomer
}

// StockDelta devuelve el cambio de stock que produce una línea de la cantidad dada.
func (t TransactionType) StockDelta(quantity int) int {
	if t == TransactionTypeSale {
		return -quantity
	}
	return quantity
}

// Counterparty contraparte de una transacción. Kind se deriva del tipo de transacción,
// así una venta nunca lleva proveedor ni una compra cliente. ContactID vacío = sin contraparte.
type Counterparty struct {
	Kind      ContactType
	ContactID string
}

// TransactionLine una línea de producto; Price es el precio unitario al momento de la transacción.
type TransactionLine struct {
	ProductID string
	Quantity  int
	Price     decimal.Decimal
}

// Subtotal cantidad × precio.
func (l TransactionLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// LinesTotal suma exacta de cantidad × precio sobre todas las líneas.
func LinesTotal(lines []TransactionLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Transaction registro inmutable del libro (ledger) de ventas y compras.
type Transaction struct {
	ID           string
	BusinessID   string
	Type         TransactionType
	Counterparty Counterparty
	Lines        []TransactionLine
	TotalAmount  decimal.Decimal // calculado al crear, nunca se recalcula
	Date         time.Time
	CreatedAt    time.Time
}

// NewTransaction arma el registro calculando el total y la contraparte según el tipo.
func NewTransaction(id, businessID string, typ TransactionType, counterpartyID string, lines []TransactionLine, date, now time.Time) *Transaction {
	if date.IsZero() {
		date = now
	}
	copied := make([]TransactionLine, len(lines))
	copy(copied, lines)
	return &Transaction{
		ID:           id,
		BusinessID:   businessID,
		Type:         typ,
		Counterparty: Counterparty{Kind: typ.CounterpartyKind(), ContactID: counterpartyID},
		Lines:        copied,
		TotalAmount:  LinesTotal(copied),
		Date:         date,
		CreatedAt:    now,
	}
}

// CustomerID devuelve el cliente si es una venta; vacío en compras.
func (t *Transaction) CustomerID() string {
	if t.Counterparty.Kind == ContactTypeCustomer {
		return t.Counterparty.ContactID
	}
	return ""
}

// VendorID devuelve el proveedor si es una compra; vacío en ventas.
func (t *Transaction) VendorID() string {
	if t.Counterparty.Kind == ContactTypeVendor {
		return t.Counterparty.ContactID
	}
	return ""
}
