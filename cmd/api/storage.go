package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/bookkeeping-api/internal/application/transaction"
	"github.com/jhoicas/bookkeeping-api/internal/domain/repository"
	"github.com/jhoicas/bookkeeping-api/internal/infrastructure/memory"
	"github.com/jhoicas/bookkeeping-api/internal/infrastructure/postgres"
	"github.com/jhoicas/bookkeeping-api/pkg/config"
)

// storage repositorios del backend elegido por STORAGE_DRIVER.
type storage struct {
	businesses repository.BusinessRepository
	products   repository.ProductRepository
	contacts   repository.ContactRepository
	inventory  repository.InventoryStore
	ledger     repository.TransactionRepository
	txRunner   transaction.TxRunner
	close      func()
}

func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*storage, error) {
	if cfg.Storage.Driver == config.StorageMemory {
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		store := memory.NewStore()
		return &storage{
			businesses: memory.NewBusinessRepository(store),
			products:   memory.NewProductRepository(store),
			contacts:   memory.NewContactRepository(store),
			inventory:  memory.NewInventoryRepository(store),
			ledger:     memory.NewTransactionRepository(store),
			txRunner:   memory.NewTxRunner(store),
			close:      func() {},
		}, nil
	}

	if cfg.DB.Migrate {
		if err := postgres.Migrate(cfg.DB.ConnectionString(), log); err != nil {
			return nil, fmt.Errorf("migraciones: %w", err)
		}
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	return &storage{
		businesses: postgres.NewBusinessRepository(pool),
		products:   postgres.NewProductRepository(pool),
		contacts:   postgres.NewContactRepository(pool),
		inventory:  postgres.NewInventoryRepository(pool),
		ledger:     postgres.NewTransactionRepository(pool),
		txRunner:   postgres.NewTxRunner(pool, log),
		close:      pool.Close,
	}, nil
}
