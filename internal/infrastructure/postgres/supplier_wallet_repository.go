package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Importaciones-api/internal/domain/entity"
	"github.com/jhoicas/Importaciones-api/internal/domain/repository"
)

var _ repository.SupplierWalletRepository = (*SupplierWalletRepo)(nil)

// SupplierWalletRepo implementación de SupplierWalletRepository sobre PostgreSQL (usable con pool o tx).
type SupplierWalletRepo struct {
	q Querier
}

// NewSupplierWalletRepository construye el adaptador de billeteras. Pasar pool o tx (Querier).
func NewSupplierWalletRepository(q Querier) *SupplierWalletRepo {
	return &SupplierWalletRepo{q: q}
}

// Get obtiene la billetera del proveedor. (nil, nil) si no existe.
func (r *SupplierWalletRepo) Get(ctx context.Context, supplierID string) (*entity.SupplierWallet, error) {
	return r.get(ctx, `SELECT supplier_id, company_id, balance, credit_limit, updated_at
		FROM supplier_wallets WHERE supplier_id = $1`, supplierID)
}

// GetForUpdate bloquea la fila hasta el fin de la transacción.
func (r *SupplierWalletRepo) GetForUpdate(ctx context.Context, supplierID string) (*entity.SupplierWallet, error) {
	return r.get(ctx, `SELECT supplier_id, company_id, balance, credit_limit, updated_at
		FROM supplier_wallets WHERE supplier_id = $1 FOR UPDATE`, supplierID)
}

func (r *SupplierWalletRepo) get(ctx context.Context, query, supplierID string) (*entity.SupplierWallet, error) {
	var w entity.SupplierWallet
	err := r.q.QueryRow(ctx, query, supplierID).Scan(&w.SupplierID, &w.CompanyID, &w.Balance, &w.CreditLimit, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get supplier wallet", err)
	}
	return &w, nil
}

// Save crea o actualiza la billetera. El CHECK de la tabla rechaza saldos bajo el cupo.
func (r *SupplierWalletRepo) Save(ctx context.Context, w *entity.SupplierWallet) error {
	query := `
		INSERT INTO supplier_wallets (supplier_id, company_id, balance, credit_limit, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (supplier_id)
		DO UPDATE SET balance = EXCLUDED.balance, credit_limit = EXCLUDED.credit_limit, updated_at = EXCLUDED.updated_at`
	if _, err := r.q.Exec(ctx, query, w.SupplierID, w.CompanyID, w.Balance, w.CreditLimit, w.UpdatedAt); err != nil {
		return mapError("save supplier wallet", err)
	}
	return nil
}

// AppendNote agrega un movimiento al historial.
func (r *SupplierWalletRepo) AppendNote(ctx context.Context, n *entity.WalletNote) error {
	query := `
		INSERT INTO supplier_wallet_notes (id, supplier_id, type, amount, balance_after, reason, source_kind, source_id, actor, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		n.ID, n.SupplierID, string(n.Type), n.Amount, n.BalanceAfter, n.Reason,
		string(n.Source.Kind), n.Source.ID, n.Actor, n.CreatedAt,
	)
	if err != nil {
		return mapError("insert wallet note", err)
	}
	return nil
}

// ListNotes últimos limit movimientos, del más antiguo al más reciente.
func (r *SupplierWalletRepo) ListNotes(ctx context.Context, supplierID string, limit int) ([]entity.WalletNote, error) {
	query := `
		SELECT id, supplier_id, type, amount, balance_after, reason, source_kind, source_id, actor, created_at
		FROM (
			SELECT * FROM supplier_wallet_notes WHERE supplier_id = $1 ORDER BY seq DESC LIMIT $2
		) latest
		ORDER BY seq`
	rows, err := r.q.Query(ctx, query, supplierID, limit)
	if err != nil {
		return nil, fmt.Errorf("list wallet notes: %w", err)
	}
	defer rows.Close()

	var list []entity.WalletNote
	for rows.Next() {
		var n entity.WalletNote
		var typ, kind string
		if err := rows.Scan(
			&n.ID, &n.SupplierID, &typ, &n.Amount, &n.BalanceAfter, &n.Reason,
			&kind, &n.Source.ID, &n.Actor, &n.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan wallet note: %w", err)
		}
		n.Type = entity.WalletNoteType(typ)
		n.Source.Kind = entity.SourceKind(kind)
		list = append(list, n)
	}
	return list, rows.Err()
}
