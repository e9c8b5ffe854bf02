// Package wallet implementa el libro de la billetera del proveedor: cada crédito o
// débito devuelve una billetera nueva y una nota inmutable para agregar al historial.
package wallet

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Importaciones-api/internal/domain"
	"github.com/jhoicas/Importaciones-api/internal/domain/entity"
)

// CreditError el débito dejaría el saldo por debajo de -CreditLimit.
type CreditError struct {
	SupplierID  string
	Balance     decimal.Decimal
	Amount      decimal.Decimal
	CreditLimit decimal.Decimal
}

func (e *CreditError) Error() string {
	return fmt.Sprintf("proveedor %s: débito %s con saldo %s excede el cupo %s",
		e.SupplierID, e.Amount.StringFixed(2), e.Balance.StringFixed(2), e.CreditLimit.StringFixed(2))
}

func (e *CreditError) Unwrap() error { return domain.ErrInsufficientCredit }

// Entry datos de un movimiento.
type Entry struct {
	Amount decimal.Decimal
	Reason string
	Source entity.SourceRef
	Actor  string
	Now    time.Time
}

// Credit suma Amount al saldo.
func Credit(w entity.SupplierWallet, e Entry) (entity.SupplierWallet, entity.WalletNote, error) {
	if err := validate(w, e); err != nil {
		return w, entity.WalletNote{}, err
	}
	return post(w, entity.WalletNoteCredit, w.Balance.Add(e.Amount), e)
}

// Debit resta Amount del saldo. Falla con ErrInsufficientCredit si balance − amount < −creditLimit;
// en ese caso la billetera se devuelve sin cambios.
func Debit(w entity.SupplierWallet, e Entry) (entity.SupplierWallet, entity.WalletNote, error) {
	if err := validate(w, e); err != nil {
		return w, entity.WalletNote{}, err
	}
	if !CanDebit(w, e.Amount) {
		return w, entity.WalletNote{}, &CreditError{
			SupplierID:  w.SupplierID,
			Balance:     w.Balance,
			Amount:      e.Amount,
			CreditLimit: w.CreditLimit,
		}
	}
	return post(w, entity.WalletNoteDebit, w.Balance.Sub(e.Amount), e)
}

// Apply despacha a Credit o Debit según t.
func Apply(w entity.SupplierWallet, t entity.WalletNoteType, e Entry) (entity.SupplierWallet, entity.WalletNote, error) {
	switch t {
	case entity.WalletNoteCredit:
		return Credit(w, e)
	case entity.WalletNoteDebit:
		return Debit(w, e)
	}
	return w, entity.WalletNote{}, fmt.Errorf("%w: tipo de movimiento %q", domain.ErrInvalidInput, t)
}

// CanDebit indica si el débito respeta el cupo de crédito.
func CanDebit(w entity.SupplierWallet, amount decimal.Decimal) bool {
	return !w.Balance.Sub(amount).LessThan(w.CreditLimit.Neg())
}

func validate(w entity.SupplierWallet, e Entry) error {
	if w.SupplierID == "" {
		return fmt.Errorf("%w: billetera sin proveedor", domain.ErrInvalidInput)
	}
	if !e.Amount.IsPositive() {
		return fmt.Errorf("%w: el monto debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if w.CreditLimit.IsNegative() {
		return fmt.Errorf("%w: cupo de crédito negativo", domain.ErrInvalidInput)
	}
	if !e.Source.Valid() {
		return fmt.Errorf("%w: origen del movimiento inválido (%q/%q)", domain.ErrInvalidInput, e.Source.Kind, e.Source.ID)
	}
	return nil
}

func post(w entity.SupplierWallet, t entity.WalletNoteType, balance decimal.Decimal, e Entry) (entity.SupplierWallet, entity.WalletNote, error) {
	w.Balance = balance
	w.UpdatedAt = e.Now
	note := entity.WalletNote{
		SupplierID:   w.SupplierID,
		Type:         t,
		Amount:       e.Amount,
		BalanceAfter: balance,
		Reason:       e.Reason,
		Source:       e.Source,
		Actor:        e.Actor,
		CreatedAt:    e.Now,
	}
	return w, note, nil
}
