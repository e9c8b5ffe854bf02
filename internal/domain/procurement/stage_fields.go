package procurement

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Importaciones-api/internal/domain"
	"github.com/jhoicas/Importaciones-api/internal/domain/entity"
)

// LostResolution cómo se liquidan con el proveedor las unidades perdidas.
type LostResolution string

const (
	LostRecovered     LostResolution = "recovered"     // el proveedor las cobra de vuelta: débito
	LostUnrecoverable LostResolution = "unrecoverable" // pérdida confirmada: crédito
)

// Valid indica si r es una resolución conocida.
func (r LostResolution) Valid() bool {
	return r == LostRecovered || r == LostUnrecoverable
}

// ItemUpdate cambios a una línea; nil = sin cambio.
type ItemUpdate struct {
	ItemID           string
	UnitPriceForeign *decimal.Decimal
	OrderedQty       *int
	UnitWeight       *decimal.Decimal
	ExtraWeight      *decimal.Decimal
	ReceivedQty      *int
	LostQty          *int
	StockedQty       *int
}

// TransitionFields payload de una transición; nil = sin cambio.
type TransitionFields struct {
	ExchangeRate      *decimal.Decimal
	ShippingMethod    *entity.ShippingMethod
	ShippingCostIntl  *decimal.Decimal
	ShippingCostLocal *decimal.Decimal
	MiscCost          *decimal.Decimal
	ExtraCostGlobal   *decimal.Decimal
	LostItemPenalty   *decimal.Decimal
	TrackingNumber    *string
	Notes             *string
	LostResolution    *LostResolution
	Items             []ItemUpdate
}

// Field nombre de un campo del payload (se usa en los mensajes de error y en la documentación).
type Field string

const (
	FieldExchangeRate      Field = "exchange_rate"
	FieldShippingMethod    Field = "shipping_method"
	FieldShippingCostIntl  Field = "shipping_cost_intl"
	FieldShippingCostLocal Field = "shipping_cost_local"
	FieldMiscCost          Field = "misc_cost"
	FieldExtraCostGlobal   Field = "extra_cost_global"
	FieldLostItemPenalty   Field = "lost_item_penalty"
	FieldTrackingNumber    Field = "tracking_number"
	FieldNotes             Field = "notes"
	FieldLostResolution    Field = "lost_resolution"
	FieldItemUnitPrice     Field = "items.unit_price_foreign"
	FieldItemOrderedQty    Field = "items.ordered_qty"
	FieldItemUnitWeight    Field = "items.unit_weight"
	FieldItemExtraWeight   Field = "items.extra_weight"
	FieldItemReceivedQty   Field = "items.received_qty"
	FieldItemLostQty       Field = "items.lost_qty"
	FieldItemStockedQty    Field = "items.stocked_qty"
)

// editableFields campos que cada etapa destino acepta.
var editableFields = map[entity.OrderStatus][]Field{
	entity.OrderStatusDraft:              {FieldExchangeRate, FieldNotes, FieldItemUnitPrice, FieldItemOrderedQty},
	entity.OrderStatusPaymentConfirmed:   {FieldExchangeRate, FieldNotes},
	entity.OrderStatusSupplierDispatched: {FieldTrackingNumber, FieldNotes},
	entity.OrderStatusWarehouseReceived:  {FieldShippingMethod, FieldItemUnitWeight, FieldItemExtraWeight, FieldNotes},
	entity.OrderStatusShippedBD:          {FieldShippingMethod, FieldTrackingNumber, FieldNotes},
	entity.OrderStatusArrivedBD:          {FieldShippingCostIntl, FieldShippingMethod, FieldMiscCost, FieldNotes},
	entity.OrderStatusInTransitBogura:    {FieldShippingCostLocal, FieldNotes},
	entity.OrderStatusReceivedHub: {
		FieldItemUnitWeight, FieldItemExtraWeight, FieldItemReceivedQty, FieldItemLostQty, FieldItemStockedQty,
		FieldExtraCostGlobal, FieldLostItemPenalty, FieldLostResolution, FieldNotes,
	},
	entity.OrderStatusCompletedPartially: {FieldItemReceivedQty, FieldItemLostQty, FieldItemStockedQty, FieldLostResolution, FieldNotes},
	entity.OrderStatusCompleted:          {FieldItemLostQty, FieldItemStockedQty, FieldLostResolution, FieldNotes},
	entity.OrderStatusLost:               {FieldLostResolution, FieldNotes},
}

// EditableFields campos que acepta la etapa status.
func EditableFields(status entity.OrderStatus) []Field {
	fields := editableFields[status]
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// Present lista los campos que trae el payload.
func (f TransitionFields) Present() []Field {
	var out []Field
	add := func(ok bool, name Field) {
		if ok && !slices.Contains(out, name) {
			out = append(out, name)
		}
	}
	add(f.ExchangeRate != nil, FieldExchangeRate)
	add(f.ShippingMethod != nil, FieldShippingMethod)
	add(f.ShippingCostIntl != nil, FieldShippingCostIntl)
	add(f.ShippingCostLocal != nil, FieldShippingCostLocal)
	add(f.MiscCost != nil, FieldMiscCost)
	add(f.ExtraCostGlobal != nil, FieldExtraCostGlobal)
	add(f.LostItemPenalty != nil, FieldLostItemPenalty)
	add(f.TrackingNumber != nil, FieldTrackingNumber)
	add(f.Notes != nil, FieldNotes)
	add(f.LostResolution != nil, FieldLostResolution)
	for _, it := range f.Items {
		add(it.UnitPriceForeign != nil, FieldItemUnitPrice)
		add(it.OrderedQty != nil, FieldItemOrderedQty)
		add(it.UnitWeight != nil, FieldItemUnitWeight)
		add(it.ExtraWeight != nil, FieldItemExtraWeight)
		add(it.ReceivedQty != nil, FieldItemReceivedQty)
		add(it.LostQty != nil, FieldItemLostQty)
		add(it.StockedQty != nil, FieldItemStockedQty)
	}
	return out
}

func checkEditable(target entity.OrderStatus, f TransitionFields) error {
	allowed := editableFields[target]
	for _, name := range f.Present() {
		if !slices.Contains(allowed, name) {
			return fmt.Errorf("%w: %s en %s", domain.ErrFieldNotEditable, name, target)
		}
	}
	return nil
}

// mergeInto copia el payload sobre next validando rangos. No valida el invariante de cantidades.
func (f TransitionFields) mergeInto(next *entity.PurchaseOrder) error {
	if f.ExchangeRate != nil {
		if !f.ExchangeRate.IsPositive() {
			return fmt.Errorf("%w: exchange_rate debe ser mayor que cero", domain.ErrInvalidInput)
		}
		next.ExchangeRate = *f.ExchangeRate
	}
	if f.ShippingMethod != nil {
		if !f.ShippingMethod.Valid() {
			return fmt.Errorf("%w: shipping_method %q", domain.ErrInvalidInput, *f.ShippingMethod)
		}
		next.ShippingMethod = *f.ShippingMethod
	}
	if f.LostResolution != nil && !f.LostResolution.Valid() {
		return fmt.Errorf("%w: lost_resolution %q", domain.ErrInvalidInput, *f.LostResolution)
	}
	amounts := []struct {
		name Field
		src  *decimal.Decimal
		dst  *decimal.Decimal
	}{
		{FieldShippingCostIntl, f.ShippingCostIntl, &next.ShippingCostIntl},
		{FieldShippingCostLocal, f.ShippingCostLocal, &next.ShippingCostLocal},
		{FieldMiscCost, f.MiscCost, &next.MiscCost},
		{FieldExtraCostGlobal, f.ExtraCostGlobal, &next.ExtraCostGlobal},
		{FieldLostItemPenalty, f.LostItemPenalty, &next.LostItemPenalty},
	}
	for _, a := range amounts {
		if a.src == nil {
			continue
		}
		if a.src.IsNegative() {
			return fmt.Errorf("%w: %s no puede ser negativo", domain.ErrInvalidInput, a.name)
		}
		*a.dst = *a.src
	}
	if f.TrackingNumber != nil {
		next.TrackingNumber = *f.TrackingNumber
	}
	if f.Notes != nil {
		next.Notes = *f.Notes
	}
	for _, u := range f.Items {
		idx, ok := next.ItemIndex(u.ItemID)
		if !ok {
			return fmt.Errorf("%w: el ítem %s no pertenece a la orden", domain.ErrInvalidInput, u.ItemID)
		}
		if err := u.mergeInto(&next.Items[idx]); err != nil {
			return err
		}
	}
	return nil
}

func (u ItemUpdate) mergeInto(it *entity.PurchaseOrderItem) error {
	for _, d := range []*decimal.Decimal{u.UnitPriceForeign, u.UnitWeight, u.ExtraWeight} {
		if d != nil && d.IsNegative() {
			return fmt.Errorf("%w: ítem %s con valores negativos", domain.ErrInvalidInput, it.ID)
		}
	}
	for _, n := range []*int{u.ReceivedQty, u.LostQty, u.StockedQty} {
		if n != nil && *n < 0 {
			return &QuantityError{ItemID: it.ID, Reason: "las cantidades no pueden ser negativas"}
		}
	}
	if u.OrderedQty != nil {
		if *u.OrderedQty < 1 {
			return fmt.Errorf("%w: ítem %s con ordered_qty < 1", domain.ErrInvalidInput, it.ID)
		}
		it.OrderedQty = *u.OrderedQty
	}
	if u.UnitPriceForeign != nil {
		it.UnitPriceForeign = *u.UnitPriceForeign
	}
	if u.UnitWeight != nil {
		it.UnitWeight = *u.UnitWeight
	}
	if u.ExtraWeight != nil {
		it.ExtraWeight = *u.ExtraWeight
	}
	if u.ReceivedQty != nil {
		it.ReceivedQty = *u.ReceivedQty
		it.ReceivedKnown = true
	}
	if u.LostQty != nil {
		it.LostQty = *u.LostQty
	}
	switch {
	case u.StockedQty != nil:
		it.StockedQty = *u.StockedQty
	case u.ReceivedQty != nil || u.LostQty != nil:
		it.StockedQty = max(it.ReceivedQty-it.LostQty, 0)
	}
	return nil
}
