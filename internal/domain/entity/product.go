package entity

import "time"

// Product referencia mínima de catálogo: las órdenes solo validan existencia por empresa.
type Product struct {
	ID        string
	CompanyID string
	SKU       string // código único por empresa
	Name      string
	CreatedAt time.Time
}
