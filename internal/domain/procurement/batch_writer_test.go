package procurement_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Importaciones-api/internal/domain"
	"github.com/jhoicas/Importaciones-api/internal/domain/entity"
	"github.com/jhoicas/Importaciones-api/internal/domain/procurement"
)

func receivedOrder() *entity.PurchaseOrder {
	o := singleItemOrder()
	o.Status = entity.OrderStatusReceivedHub
	o.Items[0].ReceivedQty, o.Items[0].ReceivedKnown = 95, true
	o.Items[0].LostQty, o.Items[0].StockedQty = 5, 90
	o, _ = procurement.ApplyCosts(o)
	return o
}

func TestPlanBatches_PrimerIngreso(t *testing.T) {
	order := receivedOrder()

	next, batches, err := procurement.PlanBatches(order, "user-1", testNow)

	require.NoError(t, err)
	require.Len(t, batches, 1)
	b := batches[0]
	assert.Equal(t, 90, b.Quantity)
	assert.Equal(t, 90, b.RemainingQty)
	assert.Equal(t, "prod-1", b.ProductID)
	assert.Equal(t, entity.OrderItemSource("it-1"), b.Source)
	assert.True(t, order.Items[0].FinalUnitCost.Equal(b.UnitCost), "el lote toma el costo final vigente")
	assert.Equal(t, 90, next.Items[0].BatchedQty)
	assert.Equal(t, 0, order.Items[0].BatchedQty, "la orden de entrada no cambia")
}

func TestPlanBatches_Reentrada_NoDuplica(t *testing.T) {
	first, _, err := procurement.PlanBatches(receivedOrder(), "user-1", testNow)
	require.NoError(t, err)

	_, batches, err := procurement.PlanBatches(first, "user-1", testNow)

	require.NoError(t, err)
	assert.Empty(t, batches, "sin diferencia no se escribe otro lote")
}

func TestPlanBatches_SoloLaDiferencia(t *testing.T) {
	order := receivedOrder()
	order.Items[0].LostQty, order.Items[0].StockedQty = 10, 85
	first, _, err := procurement.PlanBatches(order, "user-1", testNow)
	require.NoError(t, err)
	snapshot := first.Items[0].FinalUnitCost

	first.Items[0].LostQty, first.Items[0].StockedQty = 5, 90
	first.ExtraCostGlobal = dec("950")
	first, _ = procurement.ApplyCosts(first)
	_, batches, err := procurement.PlanBatches(first, "user-1", testNow)

	require.NoError(t, err)
	require.Len(t, batches, 1)
	assert.Equal(t, 5, batches[0].Quantity)
	assert.False(t, snapshot.Equal(batches[0].UnitCost), "el lote nuevo usa el costo recalculado, no la foto anterior")
}

func TestPlanBatch_ReducirIngresado_Error(t *testing.T) {
	order := receivedOrder()
	item := order.Items[0]
	item.BatchedQty = 90
	item.StockedQty = 80

	batch, _, err := procurement.PlanBatch(order, item, "user-1", testNow)

	assert.Nil(t, batch)
	assert.ErrorIs(t, err, domain.ErrOverReceipt)
}

func TestPlanBatches_SinRecepcion_OmiteItem(t *testing.T) {
	order := singleItemOrder()
	order.Items[0].StockedQty = 0

	_, batches, err := procurement.PlanBatches(order, "user-1", testNow)

	require.NoError(t, err)
	assert.Empty(t, batches)
}
