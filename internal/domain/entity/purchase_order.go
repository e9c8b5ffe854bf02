package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus etapa del ciclo de vida de una orden de compra al exterior.
type OrderStatus string

// Etapas de la orden, en el orden en que avanzan.
const (
	OrderStatusDraft              OrderStatus = "draft"
	OrderStatusPaymentConfirmed   OrderStatus = "payment_confirmed"
	OrderStatusSupplierDispatched OrderStatus = "supplier_dispatched"
	OrderStatusWarehouseReceived  OrderStatus = "warehouse_received" // bodega del consolidador en origen
	OrderStatusShippedBD          OrderStatus = "shipped_bd"
	OrderStatusArrivedBD          OrderStatus = "arrived_bd" // llegada a aduana
	OrderStatusInTransitBogura    OrderStatus = "in_transit_bogura"
	OrderStatusReceivedHub        OrderStatus = "received_hub"
	OrderStatusCompleted          OrderStatus = "completed"
	OrderStatusCompletedPartially OrderStatus = "completed_partially"
	OrderStatusLost               OrderStatus = "lost"
)

var orderStatuses = []OrderStatus{
	OrderStatusDraft,
	OrderStatusPaymentConfirmed,
	OrderStatusSupplierDispatched,
	OrderStatusWarehouseReceived,
	OrderStatusShippedBD,
	OrderStatusArrivedBD,
	OrderStatusInTransitBogura,
	OrderStatusReceivedHub,
	OrderStatusCompleted,
	OrderStatusCompletedPartially,
	OrderStatusLost,
}

// AllOrderStatuses devuelve todas las etapas conocidas (copia).
func AllOrderStatuses() []OrderStatus {
	out := make([]OrderStatus, len(orderStatuses))
	copy(out, orderStatuses)
	return out
}

// Valid indica si s es una etapa conocida.
func (s OrderStatus) Valid() bool {
	for _, st := range orderStatuses {
		if st == s {
			return true
		}
	}
	return false
}

// IsTerminal indica si la etapa es absorbente (no admite más transiciones).
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCompletedPartially || s == OrderStatusLost
}

func (s OrderStatus) String() string { return string(s) }

// ShippingMethod modalidad del flete internacional.
type ShippingMethod string

const (
	ShippingMethodAir ShippingMethod = "air"
	ShippingMethodSea ShippingMethod = "sea"
)

// Valid indica si m es una modalidad conocida.
func (m ShippingMethod) Valid() bool {
	return m == ShippingMethodAir || m == ShippingMethodSea
}

// AllocationBasis criterio usado en el último prorrateo de costos.
type AllocationBasis string

const (
	AllocationByWeight   AllocationBasis = "weight"
	AllocationByValue    AllocationBasis = "value"    // respaldo cuando aún no hay pesos
	AllocationByQuantity AllocationBasis = "quantity" // respaldo cuando tampoco hay valor
)

// PurchaseOrder raíz del agregado de compras. Solo la máquina de estados la muta;
// nunca se borra físicamente (Archived marca la lápida).
type PurchaseOrder struct {
	ID          string
	CompanyID   string
	SupplierID  string
	OrderNumber string // vacío hasta la primera entrada a payment_confirmed
	Status      OrderStatus

	ExchangeRate      decimal.Decimal // moneda del proveedor -> moneda local
	ShippingMethod    ShippingMethod
	ShippingCostIntl  decimal.Decimal
	ShippingCostLocal decimal.Decimal
	MiscCost          decimal.Decimal // aduana, despacho
	ExtraCostGlobal   decimal.Decimal // mano de obra/empaque en el hub
	LostItemPenalty   decimal.Decimal // penalidad por unidad perdida
	TotalWeight       decimal.Decimal // gramos, Σ (unitWeight+extraWeight) × orderedQty

	// Resultado del último cálculo de costos.
	ProductCostLocal   decimal.Decimal
	TotalLandedCost    decimal.Decimal
	LostItemTotalValue decimal.Decimal
	AllocationBasis    AllocationBasis

	TrackingNumber string
	Notes          string

	Items []PurchaseOrderItem

	Version    int
	Archived   bool
	ArchivedAt *time.Time
	CreatedBy  string
	UpdatedBy  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Clone devuelve una copia profunda (incluye ítems) para transformar sin tocar el original.
func (o *PurchaseOrder) Clone() *PurchaseOrder {
	if o == nil {
		return nil
	}
	c := *o
	c.Items = make([]PurchaseOrderItem, len(o.Items))
	copy(c.Items, o.Items)
	if o.ArchivedAt != nil {
		t := *o.ArchivedAt
		c.ArchivedAt = &t
	}
	return &c
}

// ItemIndex busca un ítem por ID.
func (o *PurchaseOrder) ItemIndex(itemID string) (int, bool) {
	for i := range o.Items {
		if o.Items[i].ID == itemID {
			return i, true
		}
	}
	return -1, false
}

// StatusEvent registro de auditoría de cada transición aplicada.
type StatusEvent struct {
	OrderID string
	From    OrderStatus // vacío en la creación
	To      OrderStatus
	Actor   string
	At      time.Time
}
