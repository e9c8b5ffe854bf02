package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Importaciones-api/internal/domain"
	"github.com/jhoicas/Importaciones-api/internal/domain/entity"
	"github.com/jhoicas/Importaciones-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación de PurchaseOrderRepository sobre PostgreSQL (usable con pool o tx).
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador de órdenes. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

const orderColumns = `
	id, company_id, supplier_id, order_number, status, exchange_rate, shipping_method,
	shipping_cost_intl, shipping_cost_local, misc_cost, extra_cost_global, lost_item_penalty,
	total_weight, product_cost_local, total_landed_cost, lost_item_total_value, allocation_basis,
	tracking_number, notes, version, archived, archived_at, created_by, updated_by, created_at, updated_at`

const itemColumns = `
	id, order_id, product_id, unit_price_foreign, ordered_qty, received_qty, received_known,
	stocked_qty, lost_qty, unit_weight, extra_weight, batched_qty, reconciled_lost_qty,
	allocated_cost, final_unit_cost, lost_unit_value`

// Create persiste la orden y sus líneas (en el orden del slice).
func (r *PurchaseOrderRepo) Create(ctx context.Context, o *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.CompanyID, o.SupplierID, o.OrderNumber, string(o.Status), o.ExchangeRate, string(o.ShippingMethod),
		o.ShippingCostIntl, o.ShippingCostLocal, o.MiscCost, o.ExtraCostGlobal, o.LostItemPenalty,
		o.TotalWeight, o.ProductCostLocal, o.TotalLandedCost, o.LostItemTotalValue, string(o.AllocationBasis),
		o.TrackingNumber, o.Notes, o.Version, o.Archived, o.ArchivedAt, o.CreatedBy, o.UpdatedBy, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: orden duplicada", domain.ErrInvalidInput)
		}
		return mapError("insert purchase order", err)
	}

	itemQuery := `
		INSERT INTO purchase_order_items (position, ` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	for i, it := range o.Items {
		_, err := r.q.Exec(ctx, itemQuery,
			i, it.ID, o.ID, it.ProductID, it.UnitPriceForeign, it.OrderedQty, it.ReceivedQty, it.ReceivedKnown,
			it.StockedQty, it.LostQty, it.UnitWeight, it.ExtraWeight, it.BatchedQty, it.ReconciledLostQty,
			it.AllocatedCost, it.FinalUnitCost, it.LostUnitValue,
		)
		if err != nil {
			return mapError("insert purchase order item", err)
		}
	}
	return nil
}

// GetByID obtiene la orden con sus líneas. (nil, nil) si no existe.
func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders WHERE id = $1`
	var o entity.PurchaseOrder
	var status, method, basis string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.CompanyID, &o.SupplierID, &o.OrderNumber, &status, &o.ExchangeRate, &method,
		&o.ShippingCostIntl, &o.ShippingCostLocal, &o.MiscCost, &o.ExtraCostGlobal, &o.LostItemPenalty,
		&o.TotalWeight, &o.ProductCostLocal, &o.TotalLandedCost, &o.LostItemTotalValue, &basis,
		&o.TrackingNumber, &o.Notes, &o.Version, &o.Archived, &o.ArchivedAt, &o.CreatedBy, &o.UpdatedBy, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	o.Status = entity.OrderStatus(status)
	o.ShippingMethod = entity.ShippingMethod(method)
	o.AllocationBasis = entity.AllocationBasis(basis)

	items, err := r.listItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *PurchaseOrderRepo) listItems(ctx context.Context, orderID string) ([]entity.PurchaseOrderItem, error) {
	query := `SELECT ` + itemColumns + ` FROM purchase_order_items WHERE order_id = $1 ORDER BY position`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list purchase order items: %w", err)
	}
	defer rows.Close()

	var items []entity.PurchaseOrderItem
	for rows.Next() {
		var it entity.PurchaseOrderItem
		if err := rows.Scan(
			&it.ID, &it.OrderID, &it.ProductID, &it.UnitPriceForeign, &it.OrderedQty, &it.ReceivedQty, &it.ReceivedKnown,
			&it.StockedQty, &it.LostQty, &it.UnitWeight, &it.ExtraWeight, &it.BatchedQty, &it.ReconciledLostQty,
			&it.AllocatedCost, &it.FinalUnitCost, &it.LostUnitValue,
		); err != nil {
			return nil, fmt.Errorf("scan purchase order item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Update compare-and-swap por versión: 0 filas afectadas = otra operación ganó.
// Las líneas se actualizan por ID; el conjunto de líneas no cambia después de la creación.
func (r *PurchaseOrderRepo) Update(ctx context.Context, o *entity.PurchaseOrder, expectedVersion int) error {
	query := `
		UPDATE purchase_orders SET
			order_number = $3, status = $4, exchange_rate = $5, shipping_method = $6,
			shipping_cost_intl = $7, shipping_cost_local = $8, misc_cost = $9, extra_cost_global = $10,
			lost_item_penalty = $11, total_weight = $12, product_cost_local = $13, total_landed_cost = $14,
			lost_item_total_value = $15, allocation_basis = $16, tracking_number = $17, notes = $18,
			archived = $19, archived_at = $20, updated_by = $21, updated_at = $22,
			version = version + 1
		WHERE id = $1 AND version = $2`
	tag, err := r.q.Exec(ctx, query,
		o.ID, expectedVersion,
		o.OrderNumber, string(o.Status), o.ExchangeRate, string(o.ShippingMethod),
		o.ShippingCostIntl, o.ShippingCostLocal, o.MiscCost, o.ExtraCostGlobal,
		o.LostItemPenalty, o.TotalWeight, o.ProductCostLocal, o.TotalLandedCost,
		o.LostItemTotalValue, string(o.AllocationBasis), o.TrackingNumber, o.Notes,
		o.Archived, o.ArchivedAt, o.UpdatedBy, o.UpdatedAt,
	)
	if err != nil {
		return mapError("update purchase order", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConcurrentModification
	}

	itemQuery := `
		UPDATE purchase_order_items SET
			unit_price_foreign = $3, ordered_qty = $4, received_qty = $5, received_known = $6,
			stocked_qty = $7, lost_qty = $8, unit_weight = $9, extra_weight = $10,
			batched_qty = $11, reconciled_lost_qty = $12, allocated_cost = $13,
			final_unit_cost = $14, lost_unit_value = $15
		WHERE id = $1 AND order_id = $2`
	for _, it := range o.Items {
		tag, err := r.q.Exec(ctx, itemQuery,
			it.ID, o.ID,
			it.UnitPriceForeign, it.OrderedQty, it.ReceivedQty, it.ReceivedKnown,
			it.StockedQty, it.LostQty, it.UnitWeight, it.ExtraWeight,
			it.BatchedQty, it.ReconciledLostQty, it.AllocatedCost,
			it.FinalUnitCost, it.LostUnitValue,
		)
		if err != nil {
			return mapError("update purchase order item", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: el ítem %s no pertenece a la orden", domain.ErrInvalidInput, it.ID)
		}
	}
	o.Version = expectedVersion + 1
	return nil
}

// AppendStatusEvent agrega una entrada al historial (solo inserción).
func (r *PurchaseOrderRepo) AppendStatusEvent(ctx context.Context, e entity.StatusEvent) error {
	query := `
		INSERT INTO purchase_order_status_events (order_id, from_status, to_status, actor, at)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.q.Exec(ctx, query, e.OrderID, string(e.From), string(e.To), e.Actor, e.At); err != nil {
		return mapError("insert status event", err)
	}
	return nil
}

// ListStatusEvents historial en orden de inserción.
func (r *PurchaseOrderRepo) ListStatusEvents(ctx context.Context, orderID string) ([]entity.StatusEvent, error) {
	query := `
		SELECT order_id, from_status, to_status, actor, at
		FROM purchase_order_status_events WHERE order_id = $1 ORDER BY seq`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list status events: %w", err)
	}
	defer rows.Close()

	var out []entity.StatusEvent
	for rows.Next() {
		var e entity.StatusEvent
		var from, to string
		if err := rows.Scan(&e.OrderID, &from, &to, &e.Actor, &e.At); err != nil {
			return nil, fmt.Errorf("scan status event: %w", err)
		}
		e.From, e.To = entity.OrderStatus(from), entity.OrderStatus(to)
		out = append(out, e)
	}
	return out, rows.Err()
}

// NextSequence incrementa el consecutivo (empresa, periodo); la fila queda bloqueada hasta el fin de la tx.
func (r *PurchaseOrderRepo) NextSequence(ctx context.Context, companyID, period string) (int, error) {
	query := `
		INSERT INTO order_number_sequences (company_id, period, last_value)
		VALUES ($1, $2, 1)
		ON CONFLICT (company_id, period)
		DO UPDATE SET last_value = order_number_sequences.last_value + 1
		RETURNING last_value`
	var seq int
	if err := r.q.QueryRow(ctx, query, companyID, period).Scan(&seq); err != nil {
		return 0, mapError("next order sequence", err)
	}
	return seq, nil
}
