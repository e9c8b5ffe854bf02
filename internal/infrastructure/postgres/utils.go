package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Importaciones-api/internal/domain"
)

// Nombres de constraints del esquema que se traducen a errores de dominio.
const (
	constraintWalletCreditLimit = "supplier_wallets_credit_limit"
	constraintItemQuantities    = "purchase_order_items_quantities"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isSerializationFailure 40001 (serialization_failure) o 40P01 (deadlock_detected).
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}

// mapError traduce errores de PostgreSQL a errores de dominio; el resto se envuelve con op.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if isSerializationFailure(err) {
		return fmt.Errorf("%s: %w", op, domain.ErrConcurrentModification)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23514" { // check_violation
		switch pgErr.ConstraintName {
		case constraintWalletCreditLimit:
			return fmt.Errorf("%s: %w", op, domain.ErrInsufficientCredit)
		case constraintItemQuantities:
			return fmt.Errorf("%s: %w", op, domain.ErrOverReceipt)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
