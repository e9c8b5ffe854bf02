package procurement

import (
	"time"

	"github.com/jhoicas/Importaciones-api/internal/domain/entity"
)

// PlanBatch decide el lote FIFO a crear para un ítem: solo por la diferencia entre lo
// ingresado (StockedQty) y lo ya escrito en lotes (BatchedQty). Sin diferencia no hay lote.
// El costo unitario del lote es una foto de FinalUnitCost en este momento.
// Devuelve el ítem con BatchedQty actualizado; el ID del lote lo asigna el caso de uso.
func PlanBatch(order *entity.PurchaseOrder, item entity.PurchaseOrderItem, actor string, now time.Time) (*entity.InventoryBatch, entity.PurchaseOrderItem, error) {
	delta := item.StockedQty - item.BatchedQty
	if delta < 0 {
		return nil, item, &QuantityError{
			ItemID:   item.ID,
			Ordered:  item.OrderedQty,
			Received: item.ReceivedQty,
			Stocked:  item.StockedQty,
			Lost:     item.LostQty,
			Reason:   "no se puede reducir el stock ya ingresado a lotes",
		}
	}
	if delta == 0 {
		return nil, item, nil
	}
	batch := &entity.InventoryBatch{
		CompanyID:    order.CompanyID,
		ProductID:    item.ProductID,
		OrderID:      order.ID,
		Source:       entity.OrderItemSource(item.ID),
		Quantity:     delta,
		RemainingQty: delta,
		UnitCost:     item.FinalUnitCost,
		CreatedBy:    actor,
		CreatedAt:    now,
	}
	item.BatchedQty += delta
	return batch, item, nil
}

// PlanBatches aplica PlanBatch a cada ítem con receivedQty > 0, en el orden de la orden.
func PlanBatches(order *entity.PurchaseOrder, actor string, now time.Time) (*entity.PurchaseOrder, []entity.InventoryBatch, error) {
	next := order.Clone()
	var batches []entity.InventoryBatch
	for i, it := range next.Items {
		if it.ReceivedQty <= 0 {
			continue
		}
		batch, updated, err := PlanBatch(next, it, actor, now)
		if err != nil {
			return nil, nil, err
		}
		next.Items[i] = updated
		if batch != nil {
			batches = append(batches, *batch)
		}
	}
	return next, batches, nil
}
