package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SupplierWallet saldo corriente con un proveedor. Balance positivo = crédito a favor del proveedor.
// Invariante: Balance >= -CreditLimit.
type SupplierWallet struct {
	SupplierID  string
	CompanyID   string
	Balance     decimal.Decimal
	CreditLimit decimal.Decimal
	UpdatedAt   time.Time
}

// WalletNoteType dirección del movimiento.
type WalletNoteType string

const (
	WalletNoteCredit WalletNoteType = "credit"
	WalletNoteDebit  WalletNoteType = "debit"
)

// WalletNote movimiento inmutable del historial de la billetera (solo se agrega).
type WalletNote struct {
	ID           string
	SupplierID   string
	Type         WalletNoteType
	Amount       decimal.Decimal // siempre positivo
	BalanceAfter decimal.Decimal
	Reason       string
	Source       SourceRef
	Actor        string
	CreatedAt    time.Time
}
