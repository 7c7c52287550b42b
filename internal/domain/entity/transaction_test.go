package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinesTotal_ExactAndOrderIndependent(t *testing.T) {
	lines := []TransactionLine{
		{ProductID: "a", Quantity: 3, Price: decimal.RequireFromString("0.10")},
		{ProductID: "b", Quantity: 7, Price: decimal.RequireFromString("19.99")},
		{ProductID: "c", Quantity: 1, Price: decimal.Zero},
	}
	reversed := []TransactionLine{lines[2], lines[1], lines[0]}

	want := decimal.RequireFromString("140.23")
	assert.True(t, LinesTotal(lines).Equal(want), LinesTotal(lines).String())
	assert.True(t, LinesTotal(reversed).Equal(want))
	assert.True(t, LinesTotal(nil).IsZero())
}

func TestTransactionType(t *testing.T) {
	assert.True(t, TransactionTypeSale.Valid())
	assert.True(t, TransactionTypePurchase.Valid())
	assert.False(t, TransactionType("refund").Valid())

	assert.Equal(t, -4, TransactionTypeSale.StockDelta(4))
	assert.Equal(t, 4, TransactionTypePurchase.StockDelta(4))

	assert.Equal(t, ContactTypeCustomer, TransactionTypeSale.CounterpartyKind())
	assert.Equal(t, ContactTypeVendor, TransactionTypePurchase.CounterpartyKind())
}

func TestNewTransaction(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	lines := []TransactionLine{{ProductID: "p1", Quantity: 20, Price: decimal.NewFromInt(4)}}

	tx := NewTransaction("t1", "b1", TransactionTypePurchase, "v1", lines, time.Time{}, now)
	require.NotNil(t, tx)
	assert.True(t, tx.TotalAmount.Equal(decimal.NewFromInt(80)))
	assert.Equal(t, now, tx.Date)
	assert.Equal(t, now, tx.CreatedAt)
	assert.Equal(t, "v1", tx.VendorID())
	assert.Empty(t, tx.CustomerID())

	// las líneas se copian: cambios posteriores del llamador no alteran el registro
	lines[0].Quantity = 1
	assert.Equal(t, 20, tx.Lines[0].Quantity)

	date := now.AddDate(0, 0, -2)
	sale := NewTransaction("t2", "b1", TransactionTypeSale, "", nil, date, now)
	assert.Equal(t, date, sale.Date)
	assert.Empty(t, sale.CustomerID())
	assert.Empty(t, sale.VendorID())
	assert.True(t, sale.TotalAmount.IsZero())
}
