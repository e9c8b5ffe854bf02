package repository

import (
	"context"

	"github.com/jhoicas/Importaciones-api/internal/domain/entity"
)

// PurchaseOrderRepository define el puerto de persistencia para el agregado PurchaseOrder (DIP).
// Las líneas (items) se guardan y se leen junto con la orden.
type PurchaseOrderRepository interface {
	Create(ctx context.Context, order *entity.PurchaseOrder) error
	// GetByID devuelve (nil, nil) si no existe. Las órdenes archivadas se devuelven con Archived = true.
	GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	// Update guarda la orden y sus líneas solo si la versión en BD es expectedVersion
	// (compare-and-swap); si no, devuelve domain.ErrConcurrentModification.
	// En éxito order.Version queda en expectedVersion + 1.
	Update(ctx context.Context, order *entity.PurchaseOrder, expectedVersion int) error
	AppendStatusEvent(ctx context.Context, event entity.StatusEvent) error
	ListStatusEvents(ctx context.Context, orderID string) ([]entity.StatusEvent, error)
	// NextSequence reserva el siguiente consecutivo del periodo (AAAAMM) para la empresa.
	NextSequence(ctx context.Context, companyID, period string) (int, error)
}
