// Package procurement contiene la lógica pura del flujo de compras al exterior:
// prorrateo de costo aterrizado, máquina de estados de la orden, planificación de
// lotes FIFO y liquidación de unidades perdidas. No realiza I/O.
package procurement

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Importaciones-api/internal/domain"
	"github.com/jhoicas/Importaciones-api/internal/domain/entity"
)

// CostBreakdown totales del prorrateo de costo aterrizado de una orden.
type CostBreakdown struct {
	ProductCostLocal   decimal.Decimal // Σ(precio × cantidad) × tasa
	TotalShipping      decimal.Decimal // flete internacional + local
	OtherCosts         decimal.Decimal // misceláneos + costo extra del hub
	LostItemTotalValue decimal.Decimal
	TotalLandedCost    decimal.Decimal
	TotalWeight        decimal.Decimal
	Basis              entity.AllocationBasis
}

// ValidateCosts rechaza un prorrateo con costo aterrizado negativo (penalidad por pérdida
// mayor que el resto del costo de la orden). Se compara a centavos: el residuo de la
// división al perder todas las unidades no cuenta.
func ValidateCosts(b CostBreakdown) error {
	if b.TotalLandedCost.Round(2).IsNegative() {
		return fmt.Errorf("%w: el costo aterrizado quedaría negativo (%s); revise lost_item_penalty",
			domain.ErrInvalidInput, b.TotalLandedCost.StringFixed(2))
	}
	return nil
}

// ZeroWeightFallback indica que no había pesos y el prorrateo se hizo por valor (o cantidad).
func (b CostBreakdown) ZeroWeightFallback() bool {
	return b.Basis != entity.AllocationByWeight
}

// Recalculate calcula el costo aterrizado por unidad de cada ítem.
//
//	productCostLocal = Σ(unitPriceForeign × orderedQty) × exchangeRate
//	totalShipping    = shippingCostIntl + shippingCostLocal
//	otherCosts       = miscCost + extraCostGlobal
//	totalLandedCost  = productCostLocal + totalShipping + otherCosts − lostItemTotalValue
//
// El total se reparte por peso (unitWeight+extraWeight)×orderedQty; si el peso total es
// cero se reparte por valor y, si tampoco hay valor, por cantidad. El último ítem absorbe
// el residuo de redondeo para que Σ allocatedCost == totalLandedCost.
// No modifica order ni items; el resultado solo depende de las entradas.
func Recalculate(order *entity.PurchaseOrder, items []entity.PurchaseOrderItem) ([]entity.PurchaseOrderItem, CostBreakdown) {
	out := make([]entity.PurchaseOrderItem, len(items))
	copy(out, items)

	rate := order.ExchangeRate
	foreign := decimal.Zero
	weight := decimal.Zero
	for _, it := range out {
		foreign = foreign.Add(it.LineValueForeign())
		weight = weight.Add(it.LineWeight())
	}

	b := CostBreakdown{
		ProductCostLocal: foreign.Mul(rate),
		TotalShipping:    order.ShippingCostIntl.Add(order.ShippingCostLocal),
		OtherCosts:       order.MiscCost.Add(order.ExtraCostGlobal),
		TotalWeight:      weight,
	}

	var shares []decimal.Decimal
	var total decimal.Decimal
	b.Basis, shares, total = allocationShares(out, weight, foreign)

	lost := decimal.Zero
	for i := range out {
		it := &out[i]
		unitShipping := decimal.Zero
		if !total.IsZero() && it.OrderedQty > 0 {
			unitShipping = b.TotalShipping.Mul(shares[i]).Div(total).Div(qty(it.OrderedQty))
		}
		it.LostUnitValue = it.UnitPriceForeign.Mul(rate).Add(unitShipping).Add(order.LostItemPenalty)
		if it.LostQty > 0 {
			lost = lost.Add(it.LostUnitValue.Mul(qty(it.LostQty)))
		}
	}
	b.LostItemTotalValue = lost
	b.TotalLandedCost = b.ProductCostLocal.Add(b.TotalShipping).Add(b.OtherCosts).Sub(lost)

	allocated := decimal.Zero
	for i := range out {
		it := &out[i]
		var cost decimal.Decimal
		switch {
		case total.IsZero():
			cost = decimal.Zero
		case i == len(out)-1:
			cost = b.TotalLandedCost.Sub(allocated)
		default:
			cost = b.TotalLandedCost.Mul(shares[i]).Div(total)
		}
		allocated = allocated.Add(cost)
		it.AllocatedCost = cost
		it.FinalUnitCost = decimal.Zero
		if eff := it.EffectiveQty(); eff > 0 {
			it.FinalUnitCost = cost.Div(qty(eff))
		}
	}
	return out, b
}

// ApplyCosts devuelve una copia de la orden con los ítems y totales recalculados.
func ApplyCosts(order *entity.PurchaseOrder) (*entity.PurchaseOrder, CostBreakdown) {
	next := order.Clone()
	items, b := Recalculate(order, order.Items)
	next.Items = items
	next.TotalWeight = b.TotalWeight
	next.ProductCostLocal = b.ProductCostLocal
	next.LostItemTotalValue = b.LostItemTotalValue
	next.TotalLandedCost = b.TotalLandedCost
	next.AllocationBasis = b.Basis
	return next, b
}

// allocationShares elige el criterio de reparto: peso, valor o cantidad (en ese orden).
func allocationShares(items []entity.PurchaseOrderItem, weight, foreign decimal.Decimal) (entity.AllocationBasis, []decimal.Decimal, decimal.Decimal) {
	shares := make([]decimal.Decimal, len(items))
	if weight.GreaterThan(decimal.Zero) {
		for i, it := range items {
			shares[i] = it.LineWeight()
		}
		return entity.AllocationByWeight, shares, weight
	}
	if foreign.GreaterThan(decimal.Zero) {
		for i, it := range items {
			shares[i] = it.LineValueForeign()
		}
		return entity.AllocationByValue, shares, foreign
	}
	total := decimal.Zero
	for i, it := range items {
		shares[i] = qty(it.OrderedQty)
		total = total.Add(shares[i])
	}
	return entity.AllocationByQuantity, shares, total
}

func qty(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}
