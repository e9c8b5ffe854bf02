package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Importaciones-api/internal/application/procurement"
	"github.com/jhoicas/Importaciones-api/internal/domain"
	"github.com/jhoicas/Importaciones-api/internal/domain/repository"
)

var _ procurement.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Conflictos de serialización o deadlocks se devuelven como domain.ErrConcurrentModification.
func (r *TxRunner) Run(ctx context.Context, fn func(
	orderRepo repository.PurchaseOrderRepository,
	batchRepo repository.InventoryBatchRepository,
	walletRepo repository.SupplierWalletRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	orderRepo := NewPurchaseOrderRepository(tx)
	batchRepo := NewInventoryBatchRepository(tx)
	walletRepo := NewSupplierWalletRepository(tx)

	if err := fn(orderRepo, batchRepo, walletRepo); err != nil {
		if isSerializationFailure(err) && !errors.Is(err, domain.ErrConcurrentModification) {
			return fmt.Errorf("%w: %v", domain.ErrConcurrentModification, err)
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return mapError("commit transaction", err)
	}
	return nil
}
