package procurement

import (
	"fmt"

	"github.com/jhoicas/Importaciones-api/internal/domain"
	"github.com/jhoicas/Importaciones-api/internal/domain/entity"
)

// QuantityError una línea viola stockedQty + lostQty <= receivedQty <= orderedQty
// o intenta deshacer unidades ya ingresadas/liquidadas.
type QuantityError struct {
	ItemID   string
	Ordered  int
	Received int
	Stocked  int
	Lost     int
	Reason   string
}

func (e *QuantityError) Error() string {
	return fmt.Sprintf("ítem %s: %s (pedido=%d recibido=%d ingresado=%d perdido=%d)",
		e.ItemID, e.Reason, e.Ordered, e.Received, e.Stocked, e.Lost)
}

func (e *QuantityError) Unwrap() error { return domain.ErrOverReceipt }

// ValidateQuantities verifica el invariante de cantidades de cada línea.
func ValidateQuantities(items []entity.PurchaseOrderItem) error {
	for _, it := range items {
		if reason := quantityViolation(it); reason != "" {
			return &QuantityError{
				ItemID:   it.ID,
				Ordered:  it.OrderedQty,
				Received: it.ReceivedQty,
				Stocked:  it.StockedQty,
				Lost:     it.LostQty,
				Reason:   reason,
			}
		}
	}
	return nil
}

func quantityViolation(it entity.PurchaseOrderItem) string {
	switch {
	case it.ReceivedQty < 0 || it.StockedQty < 0 || it.LostQty < 0:
		return "las cantidades no pueden ser negativas"
	case it.ReceivedQty > it.OrderedQty:
		return "se recibió más de lo pedido"
	case it.StockedQty+it.LostQty > it.ReceivedQty:
		return "ingresado + perdido supera lo recibido"
	case it.BatchedQty > it.StockedQty:
		return "no se puede reducir el stock ya ingresado a lotes"
	case it.ReconciledLostQty > it.LostQty:
		return "no se puede reducir lo perdido ya liquidado con el proveedor"
	}
	return ""
}
