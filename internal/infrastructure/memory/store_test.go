package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bookkeeping-api/internal/domain"
	"github.com/jhoicas/bookkeeping-api/internal/domain/entity"
	"github.com/jhoicas/bookkeeping-api/internal/domain/repository"
)

func seedProduct(t *testing.T, store *Store, id, businessID, name string, stock int, createdAt time.Time) {
	t.Helper()
	err := NewProductRepository(store).Create(context.Background(), &entity.Product{
		ID: id, BusinessID: businessID, Name: name, Price: decimal.NewFromInt(1),
		Stock: stock, CreatedAt: createdAt, UpdatedAt: createdAt,
	})
	require.NoError(t, err)
}

func TestApplyDelta_ConcurrentSalesNeverGoNegative(t *testing.T) {
	store := NewStore()
	seedProduct(t, store, "p1", "b1", "Widget", 50, time.Now())
	inv := NewInventoryRepository(store)

	var wg sync.WaitGroup
	var mu sync.Mutex
	ok, rejected := 0, 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := inv.ApplyDelta(context.Background(), "p1", "b1", -1)
			mu.Lock()
			defer mu.Unlock()
			if errors.Is(err, domain.ErrInsufficientStock) {
				rejected++
				return
			}
			assert.NoError(t, err)
			ok++
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, ok)
	assert.Equal(t, 50, rejected)
	p, err := inv.Get(context.Background(), "p1", "b1")
	require.NoError(t, err)
	assert.Equal(t, 0, p.Stock)
}

func TestApplyDelta_ForeignOrMissingProduct(t *testing.T) {
	store := NewStore()
	seedProduct(t, store, "p1", "b1", "Widget", 5, time.Now())
	inv := NewInventoryRepository(store)

	p, err := inv.ApplyDelta(context.Background(), "p1", "b2", -1)
	assert.NoError(t, err)
	assert.Nil(t, p)

	p, err = inv.ApplyDelta(context.Background(), "nope", "b1", 1)
	assert.NoError(t, err)
	assert.Nil(t, p)

	current, err := inv.Get(context.Background(), "p1", "b1")
	require.NoError(t, err)
	assert.Equal(t, 5, current.Stock)
}

func TestApplyDelta_InsufficientReturnsCurrent(t *testing.T) {
	store := NewStore()
	seedProduct(t, store, "p1", "b1", "Widget", 2, time.Now())

	p, err := NewInventoryRepository(store).ApplyDelta(context.Background(), "p1", "b1", -3)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	require.NotNil(t, p)
	assert.Equal(t, 2, p.Stock)
}

func TestTxRunner_RollbackDiscardsEveryChange(t *testing.T) {
	store := NewStore()
	seedProduct(t, store, "p1", "b1", "A", 10, time.Now())
	seedProduct(t, store, "p2", "b1", "B", 10, time.Now())
	boom := errors.New("boom")

	err := NewTxRunner(store).Run(context.Background(), func(inv repository.InventoryStore, ledger repository.TransactionRepository) error {
		_, err := inv.ApplyDelta(context.Background(), "p1", "b1", -4)
		require.NoError(t, err)
		require.NoError(t, ledger.Create(context.Background(), &entity.Transaction{ID: "t1", BusinessID: "b1"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	inv := NewInventoryRepository(store)
	p, _ := inv.Get(context.Background(), "p1", "b1")
	assert.Equal(t, 10, p.Stock)
	tx, _ := NewTransactionRepository(store).GetByID(context.Background(), "t1", "b1")
	assert.Nil(t, tx)
}

func TestTxRunner_Commit(t *testing.T) {
	store := NewStore()
	seedProduct(t, store, "p1", "b1", "A", 10, time.Now())

	err := NewTxRunner(store).Run(context.Background(), func(inv repository.InventoryStore, ledger repository.TransactionRepository) error {
		if _, err := inv.ApplyDelta(context.Background(), "p1", "b1", 5); err != nil {
			return err
		}
		return ledger.Create(context.Background(), &entity.Transaction{ID: "t1", BusinessID: "b1"})
	})
	require.NoError(t, err)

	p, _ := NewInventoryRepository(store).Get(context.Background(), "p1", "b1")
	assert.Equal(t, 15, p.Stock)
	tx, _ := NewTransactionRepository(store).GetByID(context.Background(), "t1", "b1")
	assert.NotNil(t, tx)
}

func TestListByStock_AscendingWithThreshold(t *testing.T) {
	store := NewStore()
	now := time.Now()
	seedProduct(t, store, "p1", "b1", "C", 12, now)
	seedProduct(t, store, "p2", "b1", "A", 3, now)
	seedProduct(t, store, "p3", "b1", "B", 9, now)
	seedProduct(t, store, "p4", "b2", "Other", 0, now)
	inv := NewInventoryRepository(store)

	all, err := inv.ListByStock(context.Background(), "b1", nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int{3, 9, 12}, []int{all[0].Stock, all[1].Stock, all[2].Stock})

	threshold := entity.LowStockThreshold
	low, err := inv.ListByStock(context.Background(), "b1", &threshold)
	require.NoError(t, err)
	require.Len(t, low, 2)
	assert.Equal(t, "p2", low[0].ID)
	assert.Equal(t, "p3", low[1].ID)
}

func TestProductList_SearchCaseInsensitiveNewestFirst(t *testing.T) {
	store := NewStore()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	seedProduct(t, store, "p1", "b1", "Blue Widget", 1, base)
	seedProduct(t, store, "p2", "b1", "WIDGET red", 1, base.Add(time.Hour))
	seedProduct(t, store, "p3", "b1", "Gadget", 1, base.Add(2*time.Hour))
	seedProduct(t, store, "p4", "b2", "widget", 1, base)

	list, err := NewProductRepository(store).List(context.Background(), repository.ProductFilter{BusinessID: "b1", Search: "widget"})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "p2", list[0].ID)
	assert.Equal(t, "p1", list[1].ID)
}

func TestProductUpdate_KeepsStock(t *testing.T) {
	store := NewStore()
	seedProduct(t, store, "p1", "b1", "A", 7, time.Now())
	repo := NewProductRepository(store)

	err := repo.Update(context.Background(), &entity.Product{ID: "p1", BusinessID: "b1", Name: "A2", Stock: 999})
	require.NoError(t, err)
	p, _ := repo.GetByID(context.Background(), "p1", "b1")
	assert.Equal(t, "A2", p.Name)
	assert.Equal(t, 7, p.Stock)

	err = repo.Update(context.Background(), &entity.Product{ID: "p1", BusinessID: "b2", Name: "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTransactionList_FiltersAndOrder(t *testing.T) {
	store := NewStore()
	repo := NewTransactionRepository(store)
	ctx := context.Background()
	day := func(d int) time.Time { return time.Date(2024, 3, d, 12, 0, 0, 0, time.UTC) }
	for _, tx := range []*entity.Transaction{
		entity.NewTransaction("t1", "b1", entity.TransactionTypeSale, "c1", nil, day(1), day(1)),
		entity.NewTransaction("t2", "b1", entity.TransactionTypePurchase, "v1", nil, day(3), day(3)),
		entity.NewTransaction("t3", "b1", entity.TransactionTypeSale, "", nil, day(2), day(2)),
		entity.NewTransaction("t4", "b2", entity.TransactionTypeSale, "", nil, day(5), day(5)),
	} {
		require.NoError(t, repo.Create(ctx, tx))
	}

	all, err := repo.List(ctx, repository.TransactionFilter{BusinessID: "b1"})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"t2", "t3", "t1"}, []string{all[0].ID, all[1].ID, all[2].ID})

	sales, err := repo.List(ctx, repository.TransactionFilter{BusinessID: "b1", Type: entity.TransactionTypeSale})
	require.NoError(t, err)
	assert.Len(t, sales, 2)

	from, to := day(2), day(3)
	ranged, err := repo.List(ctx, repository.TransactionFilter{BusinessID: "b1", From: &from, To: &to})
	require.NoError(t, err)
	assert.Len(t, ranged, 2)

	byCustomer, err := repo.List(ctx, repository.TransactionFilter{BusinessID: "b1", CustomerID: "c1"})
	require.NoError(t, err)
	require.Len(t, byCustomer, 1)
	assert.Equal(t, "t1", byCustomer[0].ID)
}
