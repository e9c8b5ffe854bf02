package entity

// SourceKind tipo de entidad que originó un lote o un movimiento de billetera.
type SourceKind string

const (
	SourcePurchaseOrder     SourceKind = "purchase_order"
	SourcePurchaseOrderItem SourceKind = "purchase_order_item"
	SourceManual            SourceKind = "manual"
)

// SourceRef referencia tipada {Kind, ID}; reemplaza los pares polimórficos sin tipo.
type SourceRef struct {
	Kind SourceKind
	ID   string
}

// OrderItemSource referencia a una línea de orden de compra.
func OrderItemSource(itemID string) SourceRef {
	return SourceRef{Kind: SourcePurchaseOrderItem, ID: itemID}
}

// OrderSource referencia a una orden de compra.
func OrderSource(orderID string) SourceRef {
	return SourceRef{Kind: SourcePurchaseOrder, ID: orderID}
}

// Valid indica si la referencia tiene un tipo conocido e ID.
func (r SourceRef) Valid() bool {
	switch r.Kind {
	case SourcePurchaseOrder, SourcePurchaseOrderItem, SourceManual:
		return r.ID != ""
	}
	return false
}

// Actor usuario que ejecuta una operación (se propaga explícitamente, nunca se lee de un global).
type Actor struct {
	UserID    string
	CompanyID string
}
