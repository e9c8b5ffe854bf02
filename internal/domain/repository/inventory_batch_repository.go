package repository

import (
	"context"

	"github.com/jhoicas/Importaciones-api/internal/domain/entity"
)

// InventoryBatchRepository lotes FIFO. Solo se agregan; un lote escrito nunca se modifica.
type InventoryBatchRepository interface {
	Append(ctx context.Context, batch *entity.InventoryBatch) error
	// ListByProduct en orden FIFO (created_at, seq).
	ListByProduct(ctx context.Context, companyID, productID string) ([]entity.InventoryBatch, error)
	ListByOrder(ctx context.Context, orderID string) ([]entity.InventoryBatch, error)
}
