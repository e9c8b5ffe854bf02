package repository

import (
	"context"

	"github.com/jhoicas/Importaciones-api/internal/domain/entity"
)

// SupplierWalletRepository billetera por proveedor y su historial de notas.
type SupplierWalletRepository interface {
	// Get devuelve (nil, nil) si el proveedor no tiene billetera.
	Get(ctx context.Context, supplierID string) (*entity.SupplierWallet, error)
	// GetForUpdate igual que Get pero bloquea la fila (SELECT FOR UPDATE); solo dentro de una tx.
	GetForUpdate(ctx context.Context, supplierID string) (*entity.SupplierWallet, error)
	Save(ctx context.Context, wallet *entity.SupplierWallet) error
	AppendNote(ctx context.Context, note *entity.WalletNote) error
	ListNotes(ctx context.Context, supplierID string, limit int) ([]entity.WalletNote, error)
}
