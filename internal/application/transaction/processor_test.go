package transaction_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bookkeeping-api/internal/application/dto"
	"github.com/jhoicas/bookkeeping-api/internal/application/transaction"
	"github.com/jhoicas/bookkeeping-api/internal/domain"
	"github.com/jhoicas/bookkeeping-api/internal/domain/entity"
	"github.com/jhoicas/bookkeeping-api/internal/domain/repository"
	"github.com/jhoicas/bookkeeping-api/internal/infrastructure/memory"
)

// fixture procesador completo sobre el store en memoria.
type fixture struct {
	store     *memory.Store
	products  *memory.ProductRepo
	contacts  *memory.ContactRepo
	inventory *memory.InventoryRepo
	ledger    *memory.TransactionRepo
	processor *transaction.Processor
	queries   *transaction.QueryUseCase
}

func newFixture() *fixture {
	store := memory.NewStore()
	f := &fixture{
		store:     store,
		products:  memory.NewProductRepository(store),
		contacts:  memory.NewContactRepository(store),
		inventory: memory.NewInventoryRepository(store),
		ledger:    memory.NewTransactionRepository(store),
	}
	f.processor = transaction.NewProcessor(memory.NewTxRunner(store), f.contacts, zerolog.Nop())
	f.queries = transaction.NewQueryUseCase(f.ledger, transaction.NewEnricher(f.products, f.contacts))
	return f
}

func (f *fixture) product(t *testing.T, businessID, name string, stock int) string {
	t.Helper()
	id := uuid.New().String()
	now := time.Now()
	require.NoError(t, f.products.Create(context.Background(), &entity.Product{
		ID: id, BusinessID: businessID, Name: name, Price: decimal.NewFromInt(10),
		Stock: stock, CreatedAt: now, UpdatedAt: now,
	}))
	return id
}

func (f *fixture) contact(t *testing.T, businessID, name string, typ entity.ContactType) string {
	t.Helper()
	id := uuid.New().String()
	now := time.Now()
	require.NoError(t, f.contacts.Create(context.Background(), &entity.Contact{
		ID: id, BusinessID: businessID, Name: name, Type: typ, CreatedAt: now, UpdatedAt: now,
	}))
	return id
}

func (f *fixture) stock(t *testing.T, businessID, productID string) int {
	t.Helper()
	p, err := f.inventory.Get(context.Background(), productID, businessID)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

func (f *fixture) ledgerSize(t *testing.T, businessID string) int {
	t.Helper()
	list, err := f.ledger.List(context.Background(), repository.TransactionFilter{BusinessID: businessID})
	require.NoError(t, err)
	return len(list)
}

func line(productID string, qty int, price int64) entity.TransactionLine {
	return entity.TransactionLine{ProductID: productID, Quantity: qty, Price: decimal.NewFromInt(price)}
}

func TestSubmit_SaleThenInsufficientStock(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	widget := f.product(t, "b1", "Widget", 5)

	tx, err := f.processor.Submit(ctx, "b1", transaction.SubmitInput{
		Type:  entity.TransactionTypeSale,
		Lines: []entity.TransactionLine{line(widget, 3, 10)},
	})
	require.NoError(t, err)
	assert.True(t, tx.TotalAmount.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, 2, f.stock(t, "b1", widget))

	_, err = f.processor.Submit(ctx, "b1", transaction.SubmitInput{
		Type:  entity.TransactionTypeSale,
		Lines: []entity.TransactionLine{line(widget, 5, 10)},
	})
	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, "Widget", stockErr.ProductName)
	assert.Equal(t, 5, stockErr.Requested)
	assert.Equal(t, 2, stockErr.Available)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 2, f.stock(t, "b1", widget))
	assert.Equal(t, 1, f.ledgerSize(t, "b1"))
}

func TestSubmit_PurchaseRecordsVendor(t *testing.T) {
	f := newFixture()
	gadget := f.product(t, "b1", "Gadget", 0)
	vendor := f.contact(t, "b1", "Supplier", entity.ContactTypeVendor)
	customer := f.contact(t, "b1", "Ana", entity.ContactTypeCustomer)

	tx, err := f.processor.Submit(context.Background(), "b1", transaction.SubmitInput{
		Type:       entity.TransactionTypePurchase,
		VendorID:   vendor,
		CustomerID: customer, // se ignora en compras
		Lines:      []entity.TransactionLine{line(gadget, 20, 4)},
	})
	require.NoError(t, err)
	assert.Equal(t, 20, f.stock(t, "b1", gadget))
	assert.True(t, tx.TotalAmount.Equal(decimal.NewFromInt(80)))
	assert.Equal(t, vendor, tx.VendorID())
	assert.Empty(t, tx.CustomerID())
}

func TestSubmit_FailedLineRollsBackEarlierLines(t *testing.T) {
	f := newFixture()
	a := f.product(t, "b1", "A", 10)
	b := f.product(t, "b1", "B", 1)

	_, err := f.processor.Submit(context.Background(), "b1", transaction.SubmitInput{
		Type:  entity.TransactionTypeSale,
		Lines: []entity.TransactionLine{line(a, 4, 1), line(b, 2, 1)},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 10, f.stock(t, "b1", a))
	assert.Equal(t, 1, f.stock(t, "b1", b))
	assert.Equal(t, 0, f.ledgerSize(t, "b1"))
}

func TestSubmit_SameProductTwiceIsCumulative(t *testing.T) {
	f := newFixture()
	a := f.product(t, "b1", "A", 5)

	_, err := f.processor.Submit(context.Background(), "b1", transaction.SubmitInput{
		Type:  entity.TransactionTypeSale,
		Lines: []entity.TransactionLine{line(a, 3, 1), line(a, 3, 1)},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 5, f.stock(t, "b1", a))
}

func TestSubmit_ForeignProductRecordedWithoutStockEffect(t *testing.T) {
	f := newFixture()
	foreign := f.product(t, "b2", "Foreign", 5)

	tx, err := f.processor.Submit(context.Background(), "b1", transaction.SubmitInput{
		Type:  entity.TransactionTypeSale,
		Lines: []entity.TransactionLine{line(foreign, 2, 7), line("missing", 1, 3)},
	})
	require.NoError(t, err)
	assert.True(t, tx.TotalAmount.Equal(decimal.NewFromInt(17)))
	assert.Equal(t, 5, f.stock(t, "b2", foreign))
	assert.Equal(t, 1, f.ledgerSize(t, "b1"))
	assert.Equal(t, 0, f.ledgerSize(t, "b2"))
}

func TestSubmit_ValidationHappensBeforeMutation(t *testing.T) {
	f := newFixture()
	a := f.product(t, "b1", "A", 5)

	cases := []struct {
		name string
		in   transaction.SubmitInput
		want error
	}{
		{"tipo inválido", transaction.SubmitInput{Type: "refund", Lines: []entity.TransactionLine{line(a, 1, 1)}}, domain.ErrInvalidTransactionType},
		{"sin líneas", transaction.SubmitInput{Type: entity.TransactionTypeSale}, domain.ErrInvalidLine},
		{"cantidad cero", transaction.SubmitInput{Type: entity.TransactionTypeSale, Lines: []entity.TransactionLine{line(a, 1, 1), line(a, 0, 1)}}, domain.ErrInvalidLine},
		{"precio negativo", transaction.SubmitInput{Type: entity.TransactionTypeSale, Lines: []entity.TransactionLine{line(a, 1, -1)}}, domain.ErrInvalidLine},
		{"sin productId", transaction.SubmitInput{Type: entity.TransactionTypeSale, Lines: []entity.TransactionLine{line("", 1, 1)}}, domain.ErrInvalidLine},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.processor.Submit(context.Background(), "b1", tc.in)
			assert.ErrorIs(t, err, tc.want)
			assert.Equal(t, 5, f.stock(t, "b1", a))
			assert.Equal(t, 0, f.ledgerSize(t, "b1"))
		})
	}
}

func TestSubmit_CounterpartyChecks(t *testing.T) {
	f := newFixture()
	a := f.product(t, "b1", "A", 5)
	vendor := f.contact(t, "b1", "Supplier", entity.ContactTypeVendor)
	foreignCustomer := f.contact(t, "b2", "Other", entity.ContactTypeCustomer)

	_, err := f.processor.Submit(context.Background(), "b1", transaction.SubmitInput{
		Type: entity.TransactionTypeSale, CustomerID: vendor, Lines: []entity.TransactionLine{line(a, 1, 1)},
	})
	assert.ErrorIs(t, err, domain.ErrCounterpartyMismatch)

	_, err = f.processor.Submit(context.Background(), "b1", transaction.SubmitInput{
		Type: entity.TransactionTypeSale, CustomerID: foreignCustomer, Lines: []entity.TransactionLine{line(a, 1, 1)},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 5, f.stock(t, "b1", a))

	// vendorId en una venta se ignora
	tx, err := f.processor.Submit(context.Background(), "b1", transaction.SubmitInput{
		Type: entity.TransactionTypeSale, VendorID: vendor, Lines: []entity.TransactionLine{line(a, 1, 1)},
	})
	require.NoError(t, err)
	assert.Empty(t, tx.VendorID())
	assert.Empty(t, tx.CustomerID())
}

func TestSubmit_DateDefaultsToNow(t *testing.T) {
	f := newFixture()
	a := f.product(t, "b1", "A", 5)

	before := time.Now()
	tx, err := f.processor.Submit(context.Background(), "b1", transaction.SubmitInput{
		Type: entity.TransactionTypePurchase, Lines: []entity.TransactionLine{line(a, 1, 1)},
	})
	require.NoError(t, err)
	assert.False(t, tx.Date.Before(before))
	assert.Equal(t, tx.CreatedAt, tx.Date)

	explicit := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	tx, err = f.processor.Submit(context.Background(), "b1", transaction.SubmitInput{
		Type: entity.TransactionTypePurchase, Date: explicit, Lines: []entity.TransactionLine{line(a, 1, 1)},
	})
	require.NoError(t, err)
	assert.True(t, tx.Date.Equal(explicit))
}

func TestSubmitFromRequest_ParsesDateAndLines(t *testing.T) {
	f := newFixture()
	a := f.product(t, "b1", "A", 5)

	tx, err := f.processor.SubmitFromRequest(context.Background(), "b1", dto.CreateTransactionRequest{
		Type:     "sale",
		Products: []dto.TransactionLineRequest{{ProductID: a, Quantity: 2, Price: decimal.RequireFromString("2.50")}},
		Date:     "2024-02-10",
	})
	require.NoError(t, err)
	assert.True(t, tx.TotalAmount.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), tx.Date)

	_, err = f.processor.SubmitFromRequest(context.Background(), "b1", dto.CreateTransactionRequest{
		Type:     "sale",
		Products: []dto.TransactionLineRequest{{ProductID: a, Quantity: 1}},
		Date:     "10/02/2024",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 3, f.stock(t, "b1", a))
}

func TestQuery_EnrichesNamesWithinBusinessOnly(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	mine := f.product(t, "b1", "Mine", 5)
	theirs := f.product(t, "b2", "Theirs", 5)
	customer := f.contact(t, "b1", "Ana", entity.ContactTypeCustomer)

	tx, err := f.processor.Submit(ctx, "b1", transaction.SubmitInput{
		Type: entity.TransactionTypeSale, CustomerID: customer,
		Lines: []entity.TransactionLine{line(mine, 1, 10), line(theirs, 1, 10)},
	})
	require.NoError(t, err)

	out, err := f.queries.Get(ctx, "b1", tx.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", out.CustomerName)
	require.Len(t, out.Products, 2)
	assert.Equal(t, "Mine", out.Products[0].ProductName)
	assert.Empty(t, out.Products[1].ProductName)
	assert.True(t, out.Products[0].Subtotal.Equal(decimal.NewFromInt(10)))

	_, err = f.queries.Get(ctx, "b2", tx.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestQuery_ListFiltersNewestFirst(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a := f.product(t, "b1", "A", 100)
	for _, d := range []string{"2024-01-05", "2024-01-10", "2024-01-01"} {
		_, err := f.processor.SubmitFromRequest(ctx, "b1", dto.CreateTransactionRequest{
			Type: "purchase", Date: d,
			Products: []dto.TransactionLineRequest{{ProductID: a, Quantity: 1, Price: decimal.NewFromInt(1)}},
		})
		require.NoError(t, err)
	}
	_, err := f.processor.SubmitFromRequest(ctx, "b1", dto.CreateTransactionRequest{
		Type: "sale", Date: "2024-01-07",
		Products: []dto.TransactionLineRequest{{ProductID: a, Quantity: 1, Price: decimal.NewFromInt(1)}},
	})
	require.NoError(t, err)

	all, err := f.queries.List(ctx, "b1", dto.TransactionQuery{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i].Date.After(all[i-1].Date))
	}

	purchases, err := f.queries.List(ctx, "b1", dto.TransactionQuery{Type: "purchase", StartDate: "2024-01-05", EndDate: "2024-01-10"})
	require.NoError(t, err)
	assert.Len(t, purchases, 2)

	_, err = f.queries.List(ctx, "b1", dto.TransactionQuery{Type: "refund"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransactionType)
}
