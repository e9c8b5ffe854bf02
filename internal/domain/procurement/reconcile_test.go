package procurement_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Importaciones-api/internal/domain/entity"
	"github.com/jhoicas/Importaciones-api/internal/domain/procurement"
)

func lossOrder() *entity.PurchaseOrder {
	o := singleItemOrder()
	o.Status = entity.OrderStatusReceivedHub
	o.OrderNumber = "PO-202610-0001"
	o.ShippingCostIntl = dec("3000")
	o.ShippingCostLocal = dec("800")
	o.Items[0].UnitWeight, o.Items[0].ExtraWeight = dec("20"), dec("2")
	o.Items[0].ReceivedQty, o.Items[0].ReceivedKnown = 95, true
	o.Items[0].LostQty, o.Items[0].StockedQty = 5, 90
	o, _ = procurement.ApplyCosts(o)
	return o
}

func TestPlanLostSettlements_Irrecuperable_Credito(t *testing.T) {
	order := lossOrder()

	next, settlements := procurement.PlanLostSettlements(order, procurement.LostUnrecoverable)

	require.Len(t, settlements, 1)
	s := settlements[0]
	assert.Equal(t, entity.WalletNoteCredit, s.Type)
	assert.Equal(t, 5, s.Qty)
	assert.True(t, dec("4127.5").Equal(s.Amount), "5 × 825.5, obtuvo %s", s.Amount)
	assert.Contains(t, s.Reason, "PO-202610-0001")
	assert.Equal(t, 5, next.Items[0].ReconciledLostQty)
	assert.Equal(t, 0, order.Items[0].ReconciledLostQty, "la orden de entrada no cambia")
}

func TestPlanLostSettlements_Recuperado_Debito(t *testing.T) {
	_, settlements := procurement.PlanLostSettlements(lossOrder(), procurement.LostRecovered)

	require.Len(t, settlements, 1)
	assert.Equal(t, entity.WalletNoteDebit, settlements[0].Type)
}

func TestPlanLostSettlements_SoloPendientes(t *testing.T) {
	first, _ := procurement.PlanLostSettlements(lossOrder(), procurement.LostUnrecoverable)

	_, again := procurement.PlanLostSettlements(first, procurement.LostUnrecoverable)
	assert.Empty(t, again, "lo ya liquidado no se vuelve a postear")

	first.Items[0].LostQty, first.Items[0].StockedQty = 7, 88
	first, _ = procurement.ApplyCosts(first)
	_, more := procurement.PlanLostSettlements(first, procurement.LostUnrecoverable)
	require.Len(t, more, 1)
	assert.Equal(t, 2, more[0].Qty, "solo las 2 unidades nuevas")
}

func TestPlanLostSettlements_MontoCero_MarcaSinPostear(t *testing.T) {
	order := singleItemOrder()
	order.Items[0].UnitPriceForeign = dec("0")
	order.Items[0].ReceivedQty, order.Items[0].ReceivedKnown, order.Items[0].LostQty = 10, true, 2
	order, _ = procurement.ApplyCosts(order)

	next, settlements := procurement.PlanLostSettlements(order, procurement.LostUnrecoverable)

	assert.Empty(t, settlements)
	assert.Equal(t, 2, next.Items[0].ReconciledLostQty)
}
