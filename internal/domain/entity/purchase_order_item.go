package entity

import "github.com/shopspring/decimal"

// PurchaseOrderItem línea de la orden. Invariante: StockedQty + LostQty <= ReceivedQty <= OrderedQty.
type PurchaseOrderItem struct {
	ID               string
	OrderID          string
	ProductID        string
	UnitPriceForeign decimal.Decimal // moneda del proveedor
	OrderedQty       int
	ReceivedQty      int
	ReceivedKnown    bool // ReceivedQty fue capturado en el hub
	StockedQty       int
	LostQty          int
	UnitWeight       decimal.Decimal // gramos
	ExtraWeight      decimal.Decimal // gramos (empaque)

	BatchedQty        int // unidades ya escritas en lotes FIFO
	ReconciledLostQty int // unidades perdidas ya liquidadas con el proveedor

	// Calculados por el motor de costos; nunca se editan a mano.
	AllocatedCost decimal.Decimal
	FinalUnitCost decimal.Decimal
	LostUnitValue decimal.Decimal
}

// EffectiveQty cantidad sobre la que se reparte el costo asignado:
// la recibida si ya se conoce (y es positiva), si no la pedida.
func (i PurchaseOrderItem) EffectiveQty() int {
	if i.ReceivedKnown && i.ReceivedQty > 0 {
		return i.ReceivedQty
	}
	return i.OrderedQty
}

// LineWeight (unitWeight + extraWeight) × orderedQty.
func (i PurchaseOrderItem) LineWeight() decimal.Decimal {
	return i.UnitWeight.Add(i.ExtraWeight).Mul(decimal.NewFromInt(int64(i.OrderedQty)))
}

// LineValueForeign unitPriceForeign × orderedQty.
func (i PurchaseOrderItem) LineValueForeign() decimal.Decimal {
	return i.UnitPriceForeign.Mul(decimal.NewFromInt(int64(i.OrderedQty)))
}

// OutstandingLostQty unidades perdidas pendientes de liquidar.
func (i PurchaseOrderItem) OutstandingLostQty() int {
	return i.LostQty - i.ReconciledLostQty
}
