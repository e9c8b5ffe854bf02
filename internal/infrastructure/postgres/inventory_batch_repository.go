package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Importaciones-api/internal/domain/entity"
	"github.com/jhoicas/Importaciones-api/internal/domain/repository"
)

var _ repository.InventoryBatchRepository = (*InventoryBatchRepo)(nil)

// InventoryBatchRepo implementación de InventoryBatchRepository sobre PostgreSQL (usable con pool o tx).
type InventoryBatchRepo struct {
	q Querier
}

// NewInventoryBatchRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewInventoryBatchRepository(q Querier) *InventoryBatchRepo {
	return &InventoryBatchRepo{q: q}
}

const batchColumns = `id, company_id, product_id, order_id, source_kind, source_id, quantity, remaining_qty, unit_cost, created_by, created_at`

// Append inserta un lote nuevo.
func (r *InventoryBatchRepo) Append(ctx context.Context, b *entity.InventoryBatch) error {
	query := `INSERT INTO inventory_batches (` + batchColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.CompanyID, b.ProductID, b.OrderID, string(b.Source.Kind), b.Source.ID,
		b.Quantity, b.RemainingQty, b.UnitCost, b.CreatedBy, b.CreatedAt,
	)
	if err != nil {
		return mapError("insert inventory batch", err)
	}
	return nil
}

// ListByProduct lotes del producto en orden FIFO.
func (r *InventoryBatchRepo) ListByProduct(ctx context.Context, companyID, productID string) ([]entity.InventoryBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM inventory_batches
		WHERE company_id = $1 AND product_id = $2 ORDER BY created_at, seq`
	return r.list(ctx, query, companyID, productID)
}

// ListByOrder lotes creados desde una orden.
func (r *InventoryBatchRepo) ListByOrder(ctx context.Context, orderID string) ([]entity.InventoryBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM inventory_batches WHERE order_id = $1 ORDER BY seq`
	return r.list(ctx, query, orderID)
}

func (r *InventoryBatchRepo) list(ctx context.Context, query string, args ...any) ([]entity.InventoryBatch, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory batches: %w", err)
	}
	defer rows.Close()

	var list []entity.InventoryBatch
	for rows.Next() {
		var b entity.InventoryBatch
		var kind string
		if err := rows.Scan(
			&b.ID, &b.CompanyID, &b.ProductID, &b.OrderID, &kind, &b.Source.ID,
			&b.Quantity, &b.RemainingQty, &b.UnitCost, &b.CreatedBy, &b.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan inventory batch: %w", err)
		}
		b.Source.Kind = entity.SourceKind(kind)
		list = append(list, b)
	}
	return list, rows.Err()
}
