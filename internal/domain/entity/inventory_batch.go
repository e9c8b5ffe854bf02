package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryBatch lote FIFO creado al ingresar mercancía de una orden.
// UnitCost es una foto del costo final al momento de crear el lote; correcciones
// posteriores de costos no lo reescriben.
type InventoryBatch struct {
	ID           string
	CompanyID    string
	ProductID    string
	OrderID      string
	Source       SourceRef
	Quantity     int // cantidad inicial del lote
	RemainingQty int
	UnitCost     decimal.Decimal
	CreatedBy    string
	CreatedAt    time.Time
}
