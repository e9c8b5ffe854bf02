package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePurchaseOrderItemRequest línea de una orden nueva.
type CreatePurchaseOrderItemRequest struct {
	ProductID        string           `json:"product_id"`
	UnitPriceForeign decimal.Decimal  `json:"unit_price_foreign"`
	OrderedQty       int              `json:"ordered_qty"`
	UnitWeight       *decimal.Decimal `json:"unit_weight,omitempty"`
	ExtraWeight      *decimal.Decimal `json:"extra_weight,omitempty"`
}

// CreatePurchaseOrderRequest body para POST /api/purchase-orders.
type CreatePurchaseOrderRequest struct {
	SupplierID     string                           `json:"supplier_id"`
	ExchangeRate   *decimal.Decimal                 `json:"exchange_rate,omitempty"`
	ShippingMethod string                           `json:"shipping_method,omitempty"` // air | sea
	Notes          string                           `json:"notes,omitempty"`
	Items          []CreatePurchaseOrderItemRequest `json:"items"`
}

// PurchaseOrderItemUpdate cambios a una línea; los campos ausentes no se tocan.
type PurchaseOrderItemUpdate struct {
	ItemID           string           `json:"item_id"`
	UnitPriceForeign *decimal.Decimal `json:"unit_price_foreign,omitempty"`
	OrderedQty       *int             `json:"ordered_qty,omitempty"`
	UnitWeight       *decimal.Decimal `json:"unit_weight,omitempty"`
	ExtraWeight      *decimal.Decimal `json:"extra_weight,omitempty"`
	ReceivedQty      *int             `json:"received_qty,omitempty"`
	LostQty          *int             `json:"lost_qty,omitempty"`
	StockedQty       *int             `json:"stocked_qty,omitempty"`
}

// TransitionRequest body para POST /api/purchase-orders/:id/transitions.
// Target igual a la etapa actual = reentrada para corregir datos.
type TransitionRequest struct {
	Target            string                    `json:"target"`
	ExchangeRate      *decimal.Decimal          `json:"exchange_rate,omitempty"`
	ShippingMethod    *string                   `json:"shipping_method,omitempty"`
	ShippingCostIntl  *decimal.Decimal          `json:"shipping_cost_intl,omitempty"`
	ShippingCostLocal *decimal.Decimal          `json:"shipping_cost_local,omitempty"`
	MiscCost          *decimal.Decimal          `json:"misc_cost,omitempty"`
	ExtraCostGlobal   *decimal.Decimal          `json:"extra_cost_global,omitempty"`
	LostItemPenalty   *decimal.Decimal          `json:"lost_item_penalty,omitempty"`
	TrackingNumber    *string                   `json:"tracking_number,omitempty"`
	Notes             *string                   `json:"notes,omitempty"`
	LostResolution    *string                   `json:"lost_resolution,omitempty"` // recovered | unrecoverable
	Items             []PurchaseOrderItemUpdate `json:"items,omitempty"`
}

// ReceiptLine recepción de una línea en el hub.
type ReceiptLine struct {
	ItemID      string           `json:"item_id"`
	UnitWeight  *decimal.Decimal `json:"unit_weight,omitempty"`
	ExtraWeight *decimal.Decimal `json:"extra_weight,omitempty"`
	ReceivedQty int              `json:"received_qty"`
	LostQty     *int             `json:"lost_qty,omitempty"`
	StockedQty  *int             `json:"stocked_qty,omitempty"`
}

// ReceiveStockRequest body para POST /api/purchase-orders/:id/receive.
type ReceiveStockRequest struct {
	Items          []ReceiptLine    `json:"items"`
	AdditionalCost *decimal.Decimal `json:"additional_cost,omitempty"`
	LostResolution *string          `json:"lost_resolution,omitempty"`
}

// PurchaseOrderItemResponse línea con sus costos calculados.
type PurchaseOrderItemResponse struct {
	ID                string          `json:"id"`
	ProductID         string          `json:"product_id"`
	UnitPriceForeign  decimal.Decimal `json:"unit_price_foreign"`
	OrderedQty        int             `json:"ordered_qty"`
	ReceivedQty       int             `json:"received_qty"`
	StockedQty        int             `json:"stocked_qty"`
	LostQty           int             `json:"lost_qty"`
	UnitWeight        decimal.Decimal `json:"unit_weight"`
	ExtraWeight       decimal.Decimal `json:"extra_weight"`
	BatchedQty        int             `json:"batched_qty"`
	ReconciledLostQty int             `json:"reconciled_lost_qty"`
	AllocatedCost     decimal.Decimal `json:"allocated_cost"`
	FinalUnitCost     decimal.Decimal `json:"final_unit_cost"` // 4 decimales
	LostUnitValue     decimal.Decimal `json:"lost_unit_value"`
}

// PurchaseOrderResponse orden con totales del último cálculo de costos.
type PurchaseOrderResponse struct {
	ID                 string                      `json:"id"`
	OrderNumber        string                      `json:"order_number,omitempty"`
	SupplierID         string                      `json:"supplier_id"`
	Status             string                      `json:"status"`
	AllowedTargets     []string                    `json:"allowed_targets"`
	EditableFields     map[string][]string         `json:"editable_fields"` // por etapa destino, incluida la reentrada
	ExchangeRate       decimal.Decimal             `json:"exchange_rate"`
	ShippingMethod     string                      `json:"shipping_method,omitempty"`
	ShippingCostIntl   decimal.Decimal             `json:"shipping_cost_intl"`
	ShippingCostLocal  decimal.Decimal             `json:"shipping_cost_local"`
	MiscCost           decimal.Decimal             `json:"misc_cost"`
	ExtraCostGlobal    decimal.Decimal             `json:"extra_cost_global"`
	LostItemPenalty    decimal.Decimal             `json:"lost_item_penalty"`
	TotalWeight        decimal.Decimal             `json:"total_weight"`
	ProductCostLocal   decimal.Decimal             `json:"product_cost_local"`
	TotalLandedCost    decimal.Decimal             `json:"total_landed_cost"`
	LostItemTotalValue decimal.Decimal             `json:"lost_item_total_value"`
	AllocationBasis    string                      `json:"allocation_basis,omitempty"`
	TrackingNumber     string                      `json:"tracking_number,omitempty"`
	Notes              string                      `json:"notes,omitempty"`
	Version            int                         `json:"version"`
	Archived           bool                        `json:"archived"`
	Items              []PurchaseOrderItemResponse `json:"items"`
	CreatedAt          time.Time                   `json:"created_at"`
	UpdatedAt          time.Time                   `json:"updated_at"`
}

// InventoryBatchResponse lote FIFO.
type InventoryBatchResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id"`
	OrderID      string          `json:"order_id"`
	SourceKind   string          `json:"source_kind"`
	SourceID     string          `json:"source_id"`
	Quantity     int             `json:"quantity"`
	RemainingQty int             `json:"remaining_qty"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	CreatedAt    time.Time       `json:"created_at"`
}

// WalletNoteResponse movimiento de la billetera.
type WalletNoteResponse struct {
	ID           string          `json:"id"`
	Type         string          `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
	Reason       string          `json:"reason"`
	SourceKind   string          `json:"source_kind"`
	SourceID     string          `json:"source_id"`
	Actor        string          `json:"actor"`
	CreatedAt    time.Time       `json:"created_at"`
}

// SupplierWalletResponse saldo y últimas notas.
type SupplierWalletResponse struct {
	SupplierID  string               `json:"supplier_id"`
	Balance     decimal.Decimal      `json:"balance"`
	CreditLimit decimal.Decimal      `json:"credit_limit"`
	Available   decimal.Decimal      `json:"available"` // balance + credit_limit
	Notes       []WalletNoteResponse `json:"notes"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// StatusEventResponse entrada del historial de etapas.
type StatusEventResponse struct {
	From  string    `json:"from,omitempty"`
	To    string    `json:"to"`
	Actor string    `json:"actor"`
	At    time.Time `json:"at"`
}

// TransitionResponse resultado de una operación que modifica la orden.
type TransitionResponse struct {
	Order              PurchaseOrderResponse    `json:"order"`
	ZeroWeightFallback bool                     `json:"zero_weight_fallback"`
	BatchesCreated     []InventoryBatchResponse `json:"batches_created,omitempty"`
	WalletNotes        []WalletNoteResponse     `json:"wallet_notes,omitempty"`
}
