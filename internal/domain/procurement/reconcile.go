package procurement

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Importaciones-api/internal/domain/entity"
)

// LostSettlement movimiento de billetera pendiente por unidades perdidas de un ítem.
type LostSettlement struct {
	ItemID    string
	ProductID string
	Qty       int
	Amount    decimal.Decimal
	Type      entity.WalletNoteType
	Reason    string
}

// PlanLostSettlements liquida las unidades perdidas pendientes (LostQty − ReconciledLostQty).
// Recuperadas/cobradas de vuelta → débito al proveedor; en otro caso → crédito.
// El monto por unidad es LostUnitValue del último cálculo de costos. Marca las unidades
// como liquidadas aunque el monto sea cero, para no reintentarlas.
func PlanLostSettlements(order *entity.PurchaseOrder, resolution LostResolution) (*entity.PurchaseOrder, []LostSettlement) {
	next := order.Clone()
	noteType := entity.WalletNoteCredit
	if resolution == LostRecovered {
		noteType = entity.WalletNoteDebit
	}
	ref := order.OrderNumber
	if ref == "" {
		ref = order.ID
	}

	var out []LostSettlement
	for i := range next.Items {
		it := &next.Items[i]
		outstanding := it.OutstandingLostQty()
		if outstanding <= 0 {
			continue
		}
		amount := it.LostUnitValue.Mul(qty(outstanding))
		it.ReconciledLostQty = it.LostQty
		if !amount.IsPositive() {
			continue
		}
		out = append(out, LostSettlement{
			ItemID:    it.ID,
			ProductID: it.ProductID,
			Qty:       outstanding,
			Amount:    amount,
			Type:      noteType,
			Reason:    fmt.Sprintf("orden %s: %d unidades perdidas de %s (%s)", ref, outstanding, it.ProductID, resolution),
		})
	}
	return next, out
}
