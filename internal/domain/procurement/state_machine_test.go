package procurement_test

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Importaciones-api/internal/domain"
	"github.com/jhoicas/Importaciones-api/internal/domain/entity"
	"github.com/jhoicas/Importaciones-api/internal/domain/procurement"
)

var testNow = time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func orderAt(status entity.OrderStatus) *entity.PurchaseOrder {
	o := singleItemOrder()
	o.Status = status
	return o
}

// expectedTable copia literal de la tabla de transiciones del negocio.
var expectedTable = map[entity.OrderStatus][]entity.OrderStatus{
	entity.OrderStatusDraft:              {entity.OrderStatusPaymentConfirmed, entity.OrderStatusLost},
	entity.OrderStatusPaymentConfirmed:   {entity.OrderStatusSupplierDispatched, entity.OrderStatusLost},
	entity.OrderStatusSupplierDispatched: {entity.OrderStatusWarehouseReceived, entity.OrderStatusLost},
	entity.OrderStatusWarehouseReceived:  {entity.OrderStatusShippedBD, entity.OrderStatusLost},
	entity.OrderStatusShippedBD:          {entity.OrderStatusArrivedBD, entity.OrderStatusLost},
	entity.OrderStatusArrivedBD:          {entity.OrderStatusInTransitBogura, entity.OrderStatusLost},
	entity.OrderStatusInTransitBogura:    {entity.OrderStatusReceivedHub, entity.OrderStatusCompletedPartially, entity.OrderStatusLost},
	entity.OrderStatusReceivedHub:        {entity.OrderStatusCompleted, entity.OrderStatusLost},
}

// ──────────────────────────────────────────────────────────────────────────────
// Cierre de la tabla de transiciones
// ──────────────────────────────────────────────────────────────────────────────

func TestTransition_CierreDeLaTabla(t *testing.T) {
	for _, from := range entity.AllOrderStatuses() {
		for _, to := range entity.AllOrderStatuses() {
			order := orderAt(from)
			before := order.Clone()

			res, err := procurement.Transition(order, to, procurement.TransitionFields{}, "user-1", testNow)

			allowed := slices.Contains(expectedTable[from], to) || (from == to && !from.IsTerminal())
			if allowed {
				require.NoError(t, err, "%s -> %s debe estar permitido", from, to)
				assert.Equal(t, to, res.Order.Status)
			} else {
				require.Error(t, err, "%s -> %s no debe estar permitido", from, to)
				assert.True(t, errors.Is(err, domain.ErrInvalidTransition), "error esperado InvalidTransition, obtuvo %v", err)
				var te *procurement.TransitionError
				require.True(t, errors.As(err, &te))
				assert.Equal(t, from, te.From)
				assert.Equal(t, to, te.To)
			}
			assert.Equal(t, before, order, "%s -> %s: la orden original nunca cambia", from, to)
		}
	}
}

func TestTransition_DraftACompleted_Rechazada(t *testing.T) {
	order := orderAt(entity.OrderStatusDraft)

	_, err := procurement.Transition(order, entity.OrderStatusCompleted, procurement.TransitionFields{}, "user-1", testNow)

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, entity.OrderStatusDraft, order.Status)
}

func TestTransition_EstadoDesconocido(t *testing.T) {
	_, err := procurement.Transition(orderAt(entity.OrderStatusDraft), entity.OrderStatus("shipped_mars"), procurement.TransitionFields{}, "user-1", testNow)

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestTransition_LostDesdeCualquierEtapaNoTerminal(t *testing.T) {
	for _, from := range entity.AllOrderStatuses() {
		if from.IsTerminal() {
			continue
		}
		assert.True(t, procurement.CanTransition(from, entity.OrderStatusLost), "lost debe ser alcanzable desde %s", from)
	}
	for _, terminal := range []entity.OrderStatus{entity.OrderStatusCompleted, entity.OrderStatusCompletedPartially, entity.OrderStatusLost} {
		assert.Empty(t, procurement.AllowedTargets(terminal), "%s es terminal", terminal)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Campos por etapa y efectos
// ──────────────────────────────────────────────────────────────────────────────

func TestTransition_PaymentConfirmed_AsignaNumeroYRecalcula(t *testing.T) {
	order := orderAt(entity.OrderStatusDraft)
	order.ExchangeRate = dec("0")

	res, err := procurement.Transition(order, entity.OrderStatusPaymentConfirmed,
		procurement.TransitionFields{ExchangeRate: ptr(dec("17.5"))}, "user-1", testNow)

	require.NoError(t, err)
	assert.True(t, res.Effects.AssignOrderNumber, "la primera entrada a payment_confirmed debe pedir número")
	assert.False(t, res.Effects.Reentry)
	assert.True(t, dec("78750").Equal(res.Order.ProductCostLocal))
	assert.Equal(t, "user-1", res.Order.UpdatedBy)
	assert.Equal(t, testNow, res.Order.UpdatedAt)
	assert.Equal(t, entity.StatusEvent{OrderID: "po-1", From: entity.OrderStatusDraft, To: entity.OrderStatusPaymentConfirmed, Actor: "user-1", At: testNow}, res.Event)
}

func TestTransition_PaymentConfirmed_SinTasa_Rechazada(t *testing.T) {
	order := orderAt(entity.OrderStatusDraft)
	order.ExchangeRate = dec("0")

	_, err := procurement.Transition(order, entity.OrderStatusPaymentConfirmed, procurement.TransitionFields{}, "user-1", testNow)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTransition_Reentrada_NoReasignaNumero(t *testing.T) {
	order := orderAt(entity.OrderStatusPaymentConfirmed)
	order.OrderNumber = "PO-202610-0001"

	res, err := procurement.Transition(order, entity.OrderStatusPaymentConfirmed,
		procurement.TransitionFields{ExchangeRate: ptr(dec("18"))}, "user-2", testNow)

	require.NoError(t, err)
	assert.True(t, res.Effects.Reentry)
	assert.False(t, res.Effects.AssignOrderNumber)
	assert.Equal(t, "PO-202610-0001", res.Order.OrderNumber)
	assert.True(t, dec("81000").Equal(res.Order.ProductCostLocal), "la corrección de tasa debe recalcular")
}

func TestTransition_CampoNoEditable(t *testing.T) {
	order := orderAt(entity.OrderStatusDraft)

	_, err := procurement.Transition(order, entity.OrderStatusPaymentConfirmed,
		procurement.TransitionFields{ShippingCostIntl: ptr(dec("100"))}, "user-1", testNow)

	assert.ErrorIs(t, err, domain.ErrFieldNotEditable)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "campo no editable también es entrada inválida")
}

func TestTransition_ArrivedBD_FleteInternacional(t *testing.T) {
	order := orderAt(entity.OrderStatusShippedBD)

	res, err := procurement.Transition(order, entity.OrderStatusArrivedBD, procurement.TransitionFields{
		ShippingCostIntl: ptr(dec("3000")),
		ShippingMethod:   ptr(entity.ShippingMethodSea),
		MiscCost:         ptr(dec("200")),
	}, "user-1", testNow)

	require.NoError(t, err)
	assert.Equal(t, entity.ShippingMethodSea, res.Order.ShippingMethod)
	assert.True(t, dec("81950").Equal(res.Order.TotalLandedCost), "78750 + 3000 + 200")
	assert.False(t, res.Effects.WriteBatches)
	assert.False(t, res.Effects.ReconcileLost)
}

func TestTransition_ModalidadInvalida(t *testing.T) {
	_, err := procurement.Transition(orderAt(entity.OrderStatusShippedBD), entity.OrderStatusArrivedBD, procurement.TransitionFields{
		ShippingMethod: ptr(entity.ShippingMethod("rail")),
	}, "user-1", testNow)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTransition_ReceivedHub_DerivaIngresadoYPideEfectos(t *testing.T) {
	order := orderAt(entity.OrderStatusInTransitBogura)

	res, err := procurement.Transition(order, entity.OrderStatusReceivedHub, procurement.TransitionFields{
		Items: []procurement.ItemUpdate{{
			ItemID:      "it-1",
			UnitWeight:  ptr(dec("20")),
			ExtraWeight: ptr(dec("2")),
			ReceivedQty: ptr(95),
			LostQty:     ptr(5),
		}},
		ExtraCostGlobal: ptr(dec("500")),
	}, "user-1", testNow)

	require.NoError(t, err)
	it := res.Order.Items[0]
	assert.Equal(t, 95, it.ReceivedQty)
	assert.True(t, it.ReceivedKnown)
	assert.Equal(t, 90, it.StockedQty, "ingresado = recibido − perdido")
	assert.True(t, res.Effects.WriteBatches)
	assert.True(t, res.Effects.ReconcileLost)
	assert.Equal(t, procurement.LostUnrecoverable, res.Effects.LostResolution)
}

func TestTransition_InvarianteDeCantidades(t *testing.T) {
	cases := map[string]procurement.ItemUpdate{
		"recibido mayor que pedido":      {ItemID: "it-1", ReceivedQty: ptr(101)},
		"ingresado + perdido > recibido": {ItemID: "it-1", ReceivedQty: ptr(95), LostQty: ptr(10), StockedQty: ptr(90)},
		"perdido mayor que recibido":     {ItemID: "it-1", ReceivedQty: ptr(3), LostQty: ptr(4)},
		"negativo":                       {ItemID: "it-1", ReceivedQty: ptr(-1)},
	}
	for name, upd := range cases {
		t.Run(name, func(t *testing.T) {
			order := orderAt(entity.OrderStatusInTransitBogura)

			_, err := procurement.Transition(order, entity.OrderStatusReceivedHub,
				procurement.TransitionFields{Items: []procurement.ItemUpdate{upd}}, "user-1", testNow)

			assert.ErrorIs(t, err, domain.ErrOverReceipt)
			var qe *procurement.QuantityError
			assert.True(t, errors.As(err, &qe))
		})
	}
}

func TestTransition_NoPermiteReducirStockYaIngresado(t *testing.T) {
	order := orderAt(entity.OrderStatusReceivedHub)
	order.Items[0].ReceivedQty, order.Items[0].ReceivedKnown = 95, true
	order.Items[0].StockedQty, order.Items[0].BatchedQty = 90, 90

	_, err := procurement.Transition(order, entity.OrderStatusReceivedHub, procurement.TransitionFields{
		Items: []procurement.ItemUpdate{{ItemID: "it-1", StockedQty: ptr(80)}},
	}, "user-1", testNow)

	assert.ErrorIs(t, err, domain.ErrOverReceipt)
}

func TestTransition_ItemAjeno(t *testing.T) {
	_, err := procurement.Transition(orderAt(entity.OrderStatusInTransitBogura), entity.OrderStatusReceivedHub, procurement.TransitionFields{
		Items: []procurement.ItemUpdate{{ItemID: "otro", ReceivedQty: ptr(1)}},
	}, "user-1", testNow)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTransition_OrdenArchivada(t *testing.T) {
	order := orderAt(entity.OrderStatusDraft)
	order.Archived = true

	_, err := procurement.Transition(order, entity.OrderStatusPaymentConfirmed, procurement.TransitionFields{}, "user-1", testNow)

	assert.ErrorIs(t, err, domain.ErrArchived)
}

func TestTransition_TerminalPideConciliacion(t *testing.T) {
	order := orderAt(entity.OrderStatusReceivedHub)

	res, err := procurement.Transition(order, entity.OrderStatusCompleted, procurement.TransitionFields{
		LostResolution: ptr(procurement.LostRecovered),
	}, "user-1", testNow)

	require.NoError(t, err)
	assert.True(t, res.Effects.ReconcileLost)
	assert.True(t, res.Effects.WriteBatches, "completed acepta items.stocked_qty")
	assert.Equal(t, procurement.LostRecovered, res.Effects.LostResolution)
}

func TestTransition_EtapasQueEscribenLotes(t *testing.T) {
	for status := range expectedTable {
		for _, target := range expectedTable[status] {
			res, err := procurement.Transition(orderAt(status), target, procurement.TransitionFields{}, "user-1", testNow)
			require.NoError(t, err, "%s -> %s", status, target)

			acceptsStock := slices.Contains(procurement.EditableFields(target), procurement.FieldItemStockedQty)
			assert.Equal(t, acceptsStock, res.Effects.WriteBatches, "%s -> %s", status, target)
		}
	}
}

func TestTransition_PenalidadQueDejaCostoNegativo_Rechazada(t *testing.T) {
	order := orderAt(entity.OrderStatusInTransitBogura)

	_, err := procurement.Transition(order, entity.OrderStatusReceivedHub, procurement.TransitionFields{
		Items:           []procurement.ItemUpdate{{ItemID: "it-1", ReceivedQty: ptr(95), LostQty: ptr(5)}},
		LostItemPenalty: ptr(dec("1000000")),
	}, "user-1", testNow)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	res, err := procurement.Transition(order, entity.OrderStatusReceivedHub, procurement.TransitionFields{
		Items:           []procurement.ItemUpdate{{ItemID: "it-1", ReceivedQty: ptr(95), LostQty: ptr(5)}},
		LostItemPenalty: ptr(dec("100")),
	}, "user-1", testNow)
	require.NoError(t, err)
	assert.False(t, res.Order.TotalLandedCost.IsNegative())
}

func TestFormatOrderNumber(t *testing.T) {
	assert.Equal(t, "PO-202610-0007", procurement.FormatOrderNumber("PO", testNow, 7))
	assert.Equal(t, "IMP-202601-12345", procurement.FormatOrderNumber("IMP", time.Date(2026, 1, 31, 23, 0, 0, 0, time.UTC), 12345))
	assert.Equal(t, "202610", procurement.OrderNumberPeriod(testNow))
}
