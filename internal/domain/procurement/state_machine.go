package procurement

import (
	"fmt"
	"slices"
	"time"

	"github.com/jhoicas/Importaciones-api/internal/domain"
	"github.com/jhoicas/Importaciones-api/internal/domain/entity"
)

// transitions tabla explícita y exhaustiva; lo que no aparece aquí no está permitido.
var transitions = map[entity.OrderStatus][]entity.OrderStatus{
	entity.OrderStatusDraft:              {entity.OrderStatusPaymentConfirmed, entity.OrderStatusLost},
	entity.OrderStatusPaymentConfirmed:   {entity.OrderStatusSupplierDispatched, entity.OrderStatusLost},
	entity.OrderStatusSupplierDispatched: {entity.OrderStatusWarehouseReceived, entity.OrderStatusLost},
	entity.OrderStatusWarehouseReceived:  {entity.OrderStatusShippedBD, entity.OrderStatusLost},
	entity.OrderStatusShippedBD:          {entity.OrderStatusArrivedBD, entity.OrderStatusLost},
	entity.OrderStatusArrivedBD:          {entity.OrderStatusInTransitBogura, entity.OrderStatusLost},
	entity.OrderStatusInTransitBogura:    {entity.OrderStatusReceivedHub, entity.OrderStatusCompletedPartially, entity.OrderStatusLost},
	entity.OrderStatusReceivedHub:        {entity.OrderStatusCompleted, entity.OrderStatusLost},
}

// AllowedTargets etapas alcanzables desde from (sin contar la reentrada).
func AllowedTargets(from entity.OrderStatus) []entity.OrderStatus {
	targets := transitions[from]
	out := make([]entity.OrderStatus, len(targets))
	copy(out, targets)
	return out
}

// CanTransition indica si from -> to está en la tabla.
func CanTransition(from, to entity.OrderStatus) bool {
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// TransitionError la etapa destino no es alcanzable desde la actual.
type TransitionError struct {
	From entity.OrderStatus
	To   entity.OrderStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("no se permite pasar de %q a %q", e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return domain.ErrInvalidTransition }

// Effects efectos secundarios que el caso de uso debe ejecutar dentro de la misma transacción.
type Effects struct {
	Reentry           bool // misma etapa: solo actualización de datos
	AssignOrderNumber bool
	WriteBatches      bool // toda etapa que acepta items.stocked_qty escribe lotes por la diferencia
	ReconcileLost     bool
	LostResolution    LostResolution
}

// TransitionResult nueva foto de la orden más lo que hay que persistir junto con ella.
type TransitionResult struct {
	Order     *entity.PurchaseOrder
	Breakdown CostBreakdown
	Effects   Effects
	Event     entity.StatusEvent
}

// Transition valida y aplica target sobre una copia de order. La orden original no se toca.
//
// Reglas:
//   - target debe estar en la tabla para la etapa actual, o ser la misma etapa (reentrada)
//     siempre que no sea terminal.
//   - solo se admiten los campos editables de la etapa destino.
//   - el invariante de cantidades se valida después de fusionar el payload.
//   - los costos se recalculan siempre; el cálculo es idempotente.
func Transition(order *entity.PurchaseOrder, target entity.OrderStatus, fields TransitionFields, actor string, now time.Time) (TransitionResult, error) {
	if order == nil {
		return TransitionResult{}, domain.ErrNotFound
	}
	if order.Archived {
		return TransitionResult{}, domain.ErrArchived
	}
	from := order.Status
	reentry := target == from
	if !target.Valid() || (reentry && from.IsTerminal()) || (!reentry && !CanTransition(from, target)) {
		return TransitionResult{}, &TransitionError{From: from, To: target}
	}
	if err := checkEditable(target, fields); err != nil {
		return TransitionResult{}, err
	}

	next := order.Clone()
	if err := fields.mergeInto(next); err != nil {
		return TransitionResult{}, err
	}
	if target == entity.OrderStatusPaymentConfirmed && !next.ExchangeRate.IsPositive() {
		return TransitionResult{}, fmt.Errorf("%w: la tasa de cambio es obligatoria para confirmar el pago", domain.ErrInvalidInput)
	}
	if err := ValidateQuantities(next.Items); err != nil {
		return TransitionResult{}, err
	}

	next.Status = target
	next.UpdatedAt = now
	next.UpdatedBy = actor
	next, breakdown := ApplyCosts(next)
	if err := ValidateCosts(breakdown); err != nil {
		return TransitionResult{}, err
	}

	resolution := LostUnrecoverable
	if fields.LostResolution != nil {
		resolution = *fields.LostResolution
	}
	return TransitionResult{
		Order:     next,
		Breakdown: breakdown,
		Effects: Effects{
			Reentry:           reentry,
			AssignOrderNumber: target == entity.OrderStatusPaymentConfirmed && next.OrderNumber == "",
			WriteBatches:      slices.Contains(editableFields[target], FieldItemStockedQty),
			ReconcileLost:     target == entity.OrderStatusReceivedHub || target.IsTerminal(),
			LostResolution:    resolution,
		},
		Event: entity.StatusEvent{
			OrderID: order.ID,
			From:    from,
			To:      target,
			Actor:   actor,
			At:      now,
		},
	}, nil
}

// FormatOrderNumber número legible: <prefijo>-<AAAAMM>-<secuencia de 4 dígitos>.
func FormatOrderNumber(prefix string, now time.Time, seq int) string {
	return fmt.Sprintf("%s-%s-%04d", prefix, OrderNumberPeriod(now), seq)
}

// OrderNumberPeriod periodo (año-mes, UTC) al que pertenece la secuencia.
func OrderNumberPeriod(now time.Time) string {
	return now.UTC().Format("200601")
}
