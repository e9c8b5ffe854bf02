package procurement_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Importaciones-api/internal/domain/entity"
	"github.com/jhoicas/Importaciones-api/internal/domain/procurement"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func singleItemOrder() *entity.PurchaseOrder {
	return &entity.PurchaseOrder{
		ID:           "po-1",
		CompanyID:    "co-1",
		SupplierID:   "sup-1",
		Status:       entity.OrderStatusDraft,
		ExchangeRate: dec("17.5"),
		Version:      1,
		Items: []entity.PurchaseOrderItem{{
			ID:               "it-1",
			OrderID:          "po-1",
			ProductID:        "prod-1",
			UnitPriceForeign: dec("45.00"),
			OrderedQty:       100,
		}},
	}
}

func multiItemOrder() *entity.PurchaseOrder {
	return &entity.PurchaseOrder{
		ID:                "po-2",
		CompanyID:         "co-1",
		SupplierID:        "sup-1",
		Status:            entity.OrderStatusReceivedHub,
		ExchangeRate:      dec("1.37"),
		ShippingCostIntl:  dec("99.99"),
		ShippingCostLocal: dec("13.03"),
		MiscCost:          dec("7.77"),
		ExtraCostGlobal:   dec("41.10"),
		LostItemPenalty:   dec("0.35"),
		Items: []entity.PurchaseOrderItem{
			{ID: "a", ProductID: "p-a", UnitPriceForeign: dec("10"), OrderedQty: 3, UnitWeight: dec("100")},
			{ID: "b", ProductID: "p-b", UnitPriceForeign: dec("7.33"), OrderedQty: 7, UnitWeight: dec("0.5"), ExtraWeight: dec("0.25"),
				ReceivedQty: 6, ReceivedKnown: true, LostQty: 1, StockedQty: 5},
			{ID: "c", ProductID: "p-c", UnitPriceForeign: dec("0.01"), OrderedQty: 11, UnitWeight: dec("3.3")},
		},
	}
}

// sumAllocated Σ(finalUnitCost × effectiveQty).
func sumAllocated(items []entity.PurchaseOrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.FinalUnitCost.Mul(decimal.NewFromInt(int64(it.EffectiveQty()))))
	}
	return total
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Recalculate
// ──────────────────────────────────────────────────────────────────────────────

func TestRecalculate_CostoProductoLocal_UnItem(t *testing.T) {
	order := singleItemOrder()

	items, b := procurement.Recalculate(order, order.Items)

	require.Len(t, items, 1)
	assert.True(t, dec("78750.00").Equal(b.ProductCostLocal),
		"45.00 × 100 × 17.5 debe dar 78750.00, obtuvo %s", b.ProductCostLocal)
	assert.True(t, b.TotalLandedCost.Equal(b.ProductCostLocal), "sin fletes ni pérdidas el total es el costo del producto")
	assert.True(t, dec("787.5").Equal(items[0].FinalUnitCost), "costo unitario = 78750 / 100")
}

func TestRecalculate_SinPesos_UsaValorComoRespaldo(t *testing.T) {
	order := singleItemOrder()
	order.Items = append(order.Items, entity.PurchaseOrderItem{
		ID: "it-2", ProductID: "prod-2", UnitPriceForeign: dec("15"), OrderedQty: 100,
	})
	order.ShippingCostIntl = dec("1000")

	items, b := procurement.Recalculate(order, order.Items)

	assert.Equal(t, entity.AllocationByValue, b.Basis)
	assert.True(t, b.ZeroWeightFallback(), "sin pesos debe marcar el respaldo por valor")
	// 4500 / 6000 del valor = 75 %.
	expectedA := b.TotalLandedCost.Mul(dec("0.75"))
	assert.True(t, expectedA.Sub(items[0].AllocatedCost).Abs().LessThan(dec("0.0001")),
		"el ítem A debe recibir el 75%% del costo, obtuvo %s de %s", items[0].AllocatedCost, b.TotalLandedCost)
}

func TestRecalculate_SinPesosNiValor_RepartePorCantidad(t *testing.T) {
	order := &entity.PurchaseOrder{
		ExchangeRate:     dec("1"),
		ShippingCostIntl: dec("30"),
		Items: []entity.PurchaseOrderItem{
			{ID: "a", OrderedQty: 1},
			{ID: "b", OrderedQty: 2},
		},
	}

	items, b := procurement.Recalculate(order, order.Items)

	assert.Equal(t, entity.AllocationByQuantity, b.Basis)
	assert.True(t, dec("10").Equal(items[0].AllocatedCost))
	assert.True(t, dec("20").Equal(items[1].AllocatedCost))
}

func TestRecalculate_PorPeso_ConPerdidas(t *testing.T) {
	order := singleItemOrder()
	order.ShippingCostIntl = dec("3000")
	order.ShippingCostLocal = dec("800")
	order.MiscCost = dec("200")
	order.ExtraCostGlobal = dec("500")
	order.Items[0].UnitWeight = dec("20")
	order.Items[0].ExtraWeight = dec("2")
	order.Items[0].ReceivedQty = 95
	order.Items[0].ReceivedKnown = true
	order.Items[0].LostQty = 5
	order.Items[0].StockedQty = 90

	items, b := procurement.Recalculate(order, order.Items)

	assert.Equal(t, entity.AllocationByWeight, b.Basis)
	assert.True(t, dec("2200").Equal(b.TotalWeight), "peso total = (20+2) × 100")
	// Unidad perdida: 45 × 17.5 + 3800/100 de flete = 825.5
	assert.True(t, dec("825.5").Equal(items[0].LostUnitValue), "obtuvo %s", items[0].LostUnitValue)
	assert.True(t, dec("4127.5").Equal(b.LostItemTotalValue))
	assert.True(t, dec("79122.5").Equal(b.TotalLandedCost), "78750 + 3800 + 700 − 4127.5")
	assert.Equal(t, "832.8684", items[0].FinalUnitCost.Round(4).String(),
		"el costo final se reparte entre las 95 unidades recibidas")
}

func TestRecalculate_Idempotente(t *testing.T) {
	for name, order := range map[string]*entity.PurchaseOrder{
		"un ítem":    singleItemOrder(),
		"multi ítem": multiItemOrder(),
		"sin ítems":  {ExchangeRate: dec("2")},
		"sin tasa":   {Items: []entity.PurchaseOrderItem{{ID: "x", OrderedQty: 4, UnitPriceForeign: dec("3")}}},
		"todo perdido": func() *entity.PurchaseOrder {
			o := singleItemOrder()
			o.Items[0].ReceivedQty, o.Items[0].ReceivedKnown, o.Items[0].LostQty = 10, true, 10
			return o
		}(),
	} {
		t.Run(name, func(t *testing.T) {
			first, b1 := procurement.Recalculate(order, order.Items)
			second, b2 := procurement.Recalculate(order, first)

			require.Len(t, second, len(first))
			for i := range first {
				assert.Equal(t, first[i].FinalUnitCost.String(), second[i].FinalUnitCost.String(),
					"el costo final debe ser idéntico en la segunda corrida")
				assert.Equal(t, first[i].AllocatedCost.String(), second[i].AllocatedCost.String())
				assert.Equal(t, first[i].LostUnitValue.String(), second[i].LostUnitValue.String())
			}
			assert.Equal(t, b1.TotalLandedCost.String(), b2.TotalLandedCost.String())
			assert.Equal(t, b1.Basis, b2.Basis)
		})
	}
}

func TestRecalculate_ConservaElCostoTotal(t *testing.T) {
	cases := map[string]*entity.PurchaseOrder{
		"un ítem":    singleItemOrder(),
		"multi ítem": multiItemOrder(),
		"pesos desiguales": {
			ExchangeRate:     dec("17.5"),
			ShippingCostIntl: dec("12345.67"),
			ExtraCostGlobal:  dec("0.01"),
			Items: []entity.PurchaseOrderItem{
				{ID: "a", UnitPriceForeign: dec("1.11"), OrderedQty: 997, UnitWeight: dec("0.3")},
				{ID: "b", UnitPriceForeign: dec("2.22"), OrderedQty: 13, UnitWeight: dec("901.7"), ReceivedQty: 12, ReceivedKnown: true, StockedQty: 12},
				{ID: "c", UnitPriceForeign: dec("3.33"), OrderedQty: 3, ExtraWeight: dec("1")},
			},
		},
	}
	for name, order := range cases {
		t.Run(name, func(t *testing.T) {
			items, b := procurement.Recalculate(order, order.Items)

			diff := sumAllocated(items).Sub(b.TotalLandedCost).Abs()
			assert.True(t, diff.LessThan(dec("0.01")),
				"Σ(costo final × cantidad efectiva) debe igualar el costo total, diferencia %s", diff)
		})
	}
}

func TestRecalculate_NoModificaLaEntrada(t *testing.T) {
	order := multiItemOrder()
	before := order.Clone()

	_, _ = procurement.Recalculate(order, order.Items)
	next, _ := procurement.ApplyCosts(order)

	assert.Equal(t, before, order, "la orden original no debe cambiar")
	assert.NotSame(t, order, next)
	assert.False(t, next.TotalLandedCost.IsZero(), "la copia debe traer los totales")
}
