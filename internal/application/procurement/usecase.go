package procurement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Importaciones-api/internal/domain"
	"github.com/jhoicas/Importaciones-api/internal/domain/entity"
	"github.com/jhoicas/Importaciones-api/internal/domain/procurement"
	"github.com/jhoicas/Importaciones-api/internal/domain/repository"
	"github.com/jhoicas/Importaciones-api/internal/domain/wallet"
	"github.com/jhoicas/Importaciones-api/pkg/logger"
)

// Config parámetros del caso de uso.
type Config struct {
	OrderNumberPrefix string // por defecto "PO"
	WalletNotesLimit  int    // notas devueltas por GetWallet
}

// ProcurementUseCase orquesta el flujo orden de compra -> inventario: carga la orden, aplica la
// transformación pura del dominio y persiste orden, lotes y billetera en una sola transacción.
type ProcurementUseCase struct {
	txRunner   TxRunner
	orderRepo  repository.PurchaseOrderRepository
	batchRepo  repository.InventoryBatchRepository
	walletRepo repository.SupplierWalletRepository
	catalog    repository.ProductCatalog
	cache      OrderCache // opcional
	log        *logger.Logger
	cfg        Config
}

// NewProcurementUseCase construye el caso de uso. Los repositorios son los del pool (lecturas);
// las escrituras usan los que entrega txRunner. cache puede ser nil.
func NewProcurementUseCase(
	txRunner TxRunner,
	orderRepo repository.PurchaseOrderRepository,
	batchRepo repository.InventoryBatchRepository,
	walletRepo repository.SupplierWalletRepository,
	catalog repository.ProductCatalog,
	cache OrderCache,
	log *logger.Logger,
	cfg Config,
) *ProcurementUseCase {
	if cfg.OrderNumberPrefix == "" {
		cfg.OrderNumberPrefix = "PO"
	}
	if cfg.WalletNotesLimit <= 0 {
		cfg.WalletNotesLimit = 50
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ProcurementUseCase{
		txRunner:   txRunner,
		orderRepo:  orderRepo,
		batchRepo:  batchRepo,
		walletRepo: walletRepo,
		catalog:    catalog,
		cache:      cache,
		log:        log,
		cfg:        cfg,
	}
}

// CreateItemInput línea de una orden nueva.
type CreateItemInput struct {
	ProductID        string
	UnitPriceForeign decimal.Decimal
	OrderedQty       int
	UnitWeight       decimal.Decimal
	ExtraWeight      decimal.Decimal
}

// CreateOrderInput entrada de CreateOrder.
type CreateOrderInput struct {
	Actor          entity.Actor
	SupplierID     string
	ExchangeRate   decimal.Decimal
	ShippingMethod entity.ShippingMethod
	Notes          string
	Items          []CreateItemInput
	Now            time.Time
}

// TransitionInput entrada de ApplyTransition. ExpectedVersion (If-Match) es opcional.
type TransitionInput struct {
	Actor           entity.Actor
	OrderID         string
	Target          entity.OrderStatus
	Fields          procurement.TransitionFields
	ExpectedVersion *int
	Now             time.Time
}

// RecalculateInput entrada de RecalculateCosts.
type RecalculateInput struct {
	Actor           entity.Actor
	OrderID         string
	ExpectedVersion *int
	Now             time.Time
}

// Receipt recepción de una línea en el hub. LostQty/StockedQty nil = sin cambio
// (StockedQty se deriva como recibido − perdido).
type Receipt struct {
	ItemID      string
	UnitWeight  *decimal.Decimal
	ExtraWeight *decimal.Decimal
	ReceivedQty int
	LostQty     *int
	StockedQty  *int
}

// ReceiveStockInput entrada de ReceiveStock. AdditionalCost reemplaza el costo extra del hub
// (no se acumula), así repetir la misma recepción deja el mismo resultado.
type ReceiveStockInput struct {
	Actor           entity.Actor
	OrderID         string
	Receipts        []Receipt
	AdditionalCost  *decimal.Decimal
	LostResolution  *procurement.LostResolution
	ExpectedVersion *int
	Now             time.Time
}

// ArchiveInput entrada de ArchiveOrder.
type ArchiveInput struct {
	Actor           entity.Actor
	OrderID         string
	ExpectedVersion *int
	Now             time.Time
}

// OrderResult orden confirmada más lo que se escribió junto con ella.
type OrderResult struct {
	Order       *entity.PurchaseOrder
	Breakdown   procurement.CostBreakdown
	Batches     []entity.InventoryBatch
	WalletNotes []entity.WalletNote
}

// plan lo que una operación decide escribir sobre la orden cargada.
type plan struct {
	order     *entity.PurchaseOrder
	breakdown procurement.CostBreakdown
	effects   procurement.Effects
	event     *entity.StatusEvent
}

// CreateOrder crea la orden en draft con sus líneas y registra el primer evento del historial.
func (uc *ProcurementUseCase) CreateOrder(ctx context.Context, in CreateOrderInput) (*OrderResult, error) {
	if err := checkActor(in.Actor); err != nil {
		return nil, err
	}
	if err := validateCreate(in); err != nil {
		return nil, err
	}
	for _, it := range in.Items {
		ok, err := uc.catalog.Exists(ctx, in.Actor.CompanyID, it.ProductID)
		if err != nil {
			return nil, fmt.Errorf("procurement: verificar producto: %w", err)
		}
		if !ok {
			return nil, fmt.Errorf("%w: el producto %s no existe", domain.ErrInvalidInput, it.ProductID)
		}
	}

	now := in.Now.UTC()
	order := &entity.PurchaseOrder{
		ID:             uuid.NewString(),
		CompanyID:      in.Actor.CompanyID,
		SupplierID:     in.SupplierID,
		Status:         entity.OrderStatusDraft,
		ExchangeRate:   in.ExchangeRate,
		ShippingMethod: in.ShippingMethod,
		Notes:          in.Notes,
		Version:        1,
		CreatedBy:      in.Actor.UserID,
		UpdatedBy:      in.Actor.UserID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, it := range in.Items {
		order.Items = append(order.Items, entity.PurchaseOrderItem{
			ID:               uuid.NewString(),
			OrderID:          order.ID,
			ProductID:        it.ProductID,
			UnitPriceForeign: it.UnitPriceForeign,
			OrderedQty:       it.OrderedQty,
			UnitWeight:       it.UnitWeight,
			ExtraWeight:      it.ExtraWeight,
		})
	}
	order, breakdown := procurement.ApplyCosts(order)

	err := uc.txRunner.Run(ctx, func(
		orderRepo repository.PurchaseOrderRepository,
		_ repository.InventoryBatchRepository,
		walletRepo repository.SupplierWalletRepository,
	) error {
		w, err := walletRepo.Get(ctx, in.SupplierID)
		if err != nil {
			return fmt.Errorf("procurement: obtener billetera: %w", err)
		}
		if w == nil {
			return fmt.Errorf("%w: el proveedor %s no tiene billetera", domain.ErrInvalidInput, in.SupplierID)
		}
		if w.CompanyID != in.Actor.CompanyID {
			return domain.ErrForbidden
		}
		if err := orderRepo.Create(ctx, order); err != nil {
			return fmt.Errorf("procurement: crear orden: %w", err)
		}
		return orderRepo.AppendStatusEvent(ctx, entity.StatusEvent{
			OrderID: order.ID,
			To:      entity.OrderStatusDraft,
			Actor:   in.Actor.UserID,
			At:      now,
		})
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_id", order.ID).Str("supplier_id", order.SupplierID).Int("items", len(order.Items)).Msg("orden de compra creada")
	uc.logFallback(order, breakdown)
	return &OrderResult{Order: order, Breakdown: breakdown}, nil
}

// GetOrder lee la orden (primero en caché si está configurada).
func (uc *ProcurementUseCase) GetOrder(ctx context.Context, actor entity.Actor, orderID string) (*entity.PurchaseOrder, error) {
	if err := checkActor(actor); err != nil {
		return nil, err
	}
	if uc.cache != nil {
		order, err := uc.cache.Get(ctx, orderID)
		switch {
		case err == nil && order != nil:
			if order.CompanyID != actor.CompanyID {
				return nil, domain.ErrForbidden
			}
			return order, nil
		case err != nil && !errors.Is(err, ErrCacheMiss):
			uc.log.Warn().Err(err).Str("order_id", orderID).Msg("caché de órdenes no disponible")
		}
	}
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("procurement: obtener orden: %w", err)
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.CompanyID != actor.CompanyID {
		return nil, domain.ErrForbidden
	}
	if uc.cache != nil {
		if err := uc.cache.Set(ctx, order); err != nil {
			uc.log.Warn().Err(err).Str("order_id", orderID).Msg("no se pudo guardar la orden en caché")
		}
	}
	return order, nil
}

// ListStatusEvents historial de etapas de la orden, del más antiguo al más reciente.
func (uc *ProcurementUseCase) ListStatusEvents(ctx context.Context, actor entity.Actor, orderID string) ([]entity.StatusEvent, error) {
	if _, err := uc.GetOrder(ctx, actor, orderID); err != nil {
		return nil, err
	}
	events, err := uc.orderRepo.ListStatusEvents(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("procurement: historial: %w", err)
	}
	return events, nil
}

// ApplyTransition aplica la transición (o la reentrada) y sus efectos en una sola transacción.
func (uc *ProcurementUseCase) ApplyTransition(ctx context.Context, in TransitionInput) (*OrderResult, error) {
	return uc.mutate(ctx, in.Actor, in.OrderID, in.ExpectedVersion, func(order *entity.PurchaseOrder) (*plan, error) {
		res, err := procurement.Transition(order, in.Target, in.Fields, in.Actor.UserID, in.Now.UTC())
		if err != nil {
			return nil, err
		}
		return &plan{order: res.Order, breakdown: res.Breakdown, effects: res.Effects, event: &res.Event}, nil
	})
}

// RecalculateCosts fuerza el cálculo de costos sin cambiar la etapa ni escribir lotes o billetera.
func (uc *ProcurementUseCase) RecalculateCosts(ctx context.Context, in RecalculateInput) (*OrderResult, error) {
	return uc.mutate(ctx, in.Actor, in.OrderID, in.ExpectedVersion, func(order *entity.PurchaseOrder) (*plan, error) {
		if order.Archived {
			return nil, domain.ErrArchived
		}
		next, breakdown := procurement.ApplyCosts(order)
		if err := procurement.ValidateCosts(breakdown); err != nil {
			return nil, err
		}
		next.UpdatedAt = in.Now.UTC()
		next.UpdatedBy = in.Actor.UserID
		return &plan{order: next, breakdown: breakdown}, nil
	})
}

// ReceiveStock registra la recepción en el hub: transición (o reentrada) a received_hub con las
// cantidades recibidas, costo adicional y escritura de lotes por la diferencia.
func (uc *ProcurementUseCase) ReceiveStock(ctx context.Context, in ReceiveStockInput) (*OrderResult, error) {
	if len(in.Receipts) == 0 {
		return nil, fmt.Errorf("%w: la recepción no trae líneas", domain.ErrInvalidInput)
	}
	fields := procurement.TransitionFields{
		ExtraCostGlobal: in.AdditionalCost,
		LostResolution:  in.LostResolution,
	}
	for _, r := range in.Receipts {
		received := r.ReceivedQty
		fields.Items = append(fields.Items, procurement.ItemUpdate{
			ItemID:      r.ItemID,
			UnitWeight:  r.UnitWeight,
			ExtraWeight: r.ExtraWeight,
			ReceivedQty: &received,
			LostQty:     r.LostQty,
			StockedQty:  r.StockedQty,
		})
	}
	return uc.ApplyTransition(ctx, TransitionInput{
		Actor:           in.Actor,
		OrderID:         in.OrderID,
		Target:          entity.OrderStatusReceivedHub,
		Fields:          fields,
		ExpectedVersion: in.ExpectedVersion,
		Now:             in.Now,
	})
}

// ArchiveOrder marca la lápida de la orden. Solo órdenes en draft o en una etapa terminal.
func (uc *ProcurementUseCase) ArchiveOrder(ctx context.Context, in ArchiveInput) (*OrderResult, error) {
	return uc.mutate(ctx, in.Actor, in.OrderID, in.ExpectedVersion, func(order *entity.PurchaseOrder) (*plan, error) {
		if order.Archived {
			return nil, domain.ErrArchived
		}
		if order.Status != entity.OrderStatusDraft && !order.Status.IsTerminal() {
			return nil, fmt.Errorf("%w: solo se archivan órdenes en draft o terminadas (etapa %s)", domain.ErrInvalidTransition, order.Status)
		}
		now := in.Now.UTC()
		next := order.Clone()
		next.Archived = true
		next.ArchivedAt = &now
		next.UpdatedAt = now
		next.UpdatedBy = in.Actor.UserID
		return &plan{order: next}, nil
	})
}

// GetWallet saldo del proveedor y sus notas más recientes.
func (uc *ProcurementUseCase) GetWallet(ctx context.Context, actor entity.Actor, supplierID string) (*entity.SupplierWallet, []entity.WalletNote, error) {
	if err := checkActor(actor); err != nil {
		return nil, nil, err
	}
	w, err := uc.walletRepo.Get(ctx, supplierID)
	if err != nil {
		return nil, nil, fmt.Errorf("procurement: obtener billetera: %w", err)
	}
	if w == nil {
		return nil, nil, domain.ErrNotFound
	}
	if w.CompanyID != actor.CompanyID {
		return nil, nil, domain.ErrForbidden
	}
	notes, err := uc.walletRepo.ListNotes(ctx, supplierID, uc.cfg.WalletNotesLimit)
	if err != nil {
		return nil, nil, fmt.Errorf("procurement: notas de billetera: %w", err)
	}
	return w, notes, nil
}

// ListBatches lotes FIFO de un producto de la empresa del actor.
func (uc *ProcurementUseCase) ListBatches(ctx context.Context, actor entity.Actor, productID string) ([]entity.InventoryBatch, error) {
	if err := checkActor(actor); err != nil {
		return nil, err
	}
	if productID == "" {
		return nil, fmt.Errorf("%w: product_id es obligatorio", domain.ErrInvalidInput)
	}
	batches, err := uc.batchRepo.ListByProduct(ctx, actor.CompanyID, productID)
	if err != nil {
		return nil, fmt.Errorf("procurement: listar lotes: %w", err)
	}
	return batches, nil
}

// mutate ciclo cargar -> transformar (puro) -> guardar: la actualización de la orden (CAS por versión)
// va antes que cualquier lote o movimiento de billetera, y la billetera se bloquea al final.
func (uc *ProcurementUseCase) mutate(
	ctx context.Context,
	actor entity.Actor,
	orderID string,
	expectedVersion *int,
	decide func(order *entity.PurchaseOrder) (*plan, error),
) (*OrderResult, error) {
	if err := checkActor(actor); err != nil {
		return nil, err
	}
	var result *OrderResult
	var from entity.OrderStatus
	err := uc.txRunner.Run(ctx, func(
		orderRepo repository.PurchaseOrderRepository,
		batchRepo repository.InventoryBatchRepository,
		walletRepo repository.SupplierWalletRepository,
	) error {
		order, err := orderRepo.GetByID(ctx, orderID)
		if err != nil {
			return fmt.Errorf("procurement: obtener orden: %w", err)
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.CompanyID != actor.CompanyID {
			return domain.ErrForbidden
		}
		if expectedVersion != nil && *expectedVersion != order.Version {
			return domain.ErrConcurrentModification
		}
		from = order.Status

		p, err := decide(order)
		if err != nil {
			return err
		}
		next := p.order
		now := next.UpdatedAt

		if p.effects.AssignOrderNumber {
			seq, err := orderRepo.NextSequence(ctx, next.CompanyID, procurement.OrderNumberPeriod(now))
			if err != nil {
				return fmt.Errorf("procurement: consecutivo de orden: %w", err)
			}
			next.OrderNumber = procurement.FormatOrderNumber(uc.cfg.OrderNumberPrefix, now, seq)
		}
		var batches []entity.InventoryBatch
		if p.effects.WriteBatches {
			if next, batches, err = procurement.PlanBatches(next, actor.UserID, now); err != nil {
				return err
			}
		}
		var settlements []procurement.LostSettlement
		if p.effects.ReconcileLost {
			next, settlements = procurement.PlanLostSettlements(next, p.effects.LostResolution)
		}

		if err := orderRepo.Update(ctx, next, order.Version); err != nil {
			return err
		}
		if p.event != nil {
			if err := orderRepo.AppendStatusEvent(ctx, *p.event); err != nil {
				return fmt.Errorf("procurement: historial: %w", err)
			}
		}
		for i := range batches {
			batches[i].ID = uuid.NewString()
			if err := batchRepo.Append(ctx, &batches[i]); err != nil {
				return fmt.Errorf("procurement: escribir lote: %w", err)
			}
		}
		notes, err := uc.settle(ctx, walletRepo, next, settlements, actor.UserID, now)
		if err != nil {
			return err
		}
		result = &OrderResult{Order: next, Breakdown: p.breakdown, Batches: batches, WalletNotes: notes}
		return nil
	})
	if err != nil {
		uc.log.Debug().Err(err).Str("order_id", orderID).Msg("operación sobre la orden revertida")
		return nil, err
	}

	uc.refreshCache(ctx, result.Order)
	uc.log.Info().
		Str("order_id", orderID).
		Str("from", from.String()).
		Str("to", result.Order.Status.String()).
		Int("version", result.Order.Version).
		Int("batches", len(result.Batches)).
		Int("wallet_notes", len(result.WalletNotes)).
		Msg("orden actualizada")
	uc.logFallback(result.Order, result.Breakdown)
	return result, nil
}

// settle aplica las liquidaciones de perdidos sobre la billetera (bloqueada con FOR UPDATE) y
// agrega una nota por movimiento. Si un débito excede el cupo, toda la transacción se revierte.
func (uc *ProcurementUseCase) settle(
	ctx context.Context,
	walletRepo repository.SupplierWalletRepository,
	order *entity.PurchaseOrder,
	settlements []procurement.LostSettlement,
	actor string,
	now time.Time,
) ([]entity.WalletNote, error) {
	if len(settlements) == 0 {
		return nil, nil
	}
	locked, err := walletRepo.GetForUpdate(ctx, order.SupplierID)
	if err != nil {
		return nil, fmt.Errorf("procurement: bloquear billetera: %w", err)
	}
	if locked == nil {
		return nil, fmt.Errorf("%w: el proveedor %s no tiene billetera", domain.ErrNotFound, order.SupplierID)
	}
	current := *locked
	notes := make([]entity.WalletNote, 0, len(settlements))
	for _, s := range settlements {
		next, note, err := wallet.Apply(current, s.Type, wallet.Entry{
			Amount: s.Amount,
			Reason: s.Reason,
			Source: entity.OrderItemSource(s.ItemID),
			Actor:  actor,
			Now:    now,
		})
		if err != nil {
			return nil, err
		}
		note.ID = uuid.NewString()
		if err := walletRepo.AppendNote(ctx, &note); err != nil {
			return nil, fmt.Errorf("procurement: nota de billetera: %w", err)
		}
		notes = append(notes, note)
		current = next
	}
	if err := walletRepo.Save(ctx, &current); err != nil {
		return nil, fmt.Errorf("procurement: guardar billetera: %w", err)
	}
	return notes, nil
}

// refreshCache guarda la orden recién confirmada; si falla, intenta invalidar la entrada.
func (uc *ProcurementUseCase) refreshCache(ctx context.Context, order *entity.PurchaseOrder) {
	if uc.cache == nil {
		return
	}
	err := uc.cache.Set(ctx, order)
	if err == nil {
		return
	}
	uc.log.Warn().Err(err).Str("order_id", order.ID).Int("version", order.Version).Msg("no se pudo actualizar la caché de la orden")
	if err := uc.cache.Delete(ctx, order.ID); err != nil {
		uc.log.Warn().Err(err).Str("order_id", order.ID).Msg("no se pudo invalidar la caché de la orden")
	}
}

func (uc *ProcurementUseCase) logFallback(order *entity.PurchaseOrder, b procurement.CostBreakdown) {
	if !b.ZeroWeightFallback() {
		return
	}
	uc.log.Info().
		Str("event", "ZeroWeightFallback").
		Str("order_id", order.ID).
		Str("basis", string(b.Basis)).
		Msg("sin pesos: costos prorrateados por respaldo")
}

func checkActor(a entity.Actor) error {
	if a.UserID == "" || a.CompanyID == "" {
		return domain.ErrForbidden
	}
	return nil
}

func validateCreate(in CreateOrderInput) error {
	if in.SupplierID == "" {
		return fmt.Errorf("%w: supplier_id es obligatorio", domain.ErrInvalidInput)
	}
	if len(in.Items) == 0 {
		return fmt.Errorf("%w: la orden debe tener al menos un ítem", domain.ErrInvalidInput)
	}
	if in.ExchangeRate.IsNegative() {
		return fmt.Errorf("%w: exchange_rate no puede ser negativo", domain.ErrInvalidInput)
	}
	if in.ShippingMethod != "" && !in.ShippingMethod.Valid() {
		return fmt.Errorf("%w: shipping_method %q", domain.ErrInvalidInput, in.ShippingMethod)
	}
	for i, it := range in.Items {
		switch {
		case it.ProductID == "":
			return fmt.Errorf("%w: ítem %d sin product_id", domain.ErrInvalidInput, i)
		case it.OrderedQty < 1:
			return fmt.Errorf("%w: ítem %d con ordered_qty < 1", domain.ErrInvalidInput, i)
		case it.UnitPriceForeign.IsNegative() || it.UnitWeight.IsNegative() || it.ExtraWeight.IsNegative():
			return fmt.Errorf("%w: ítem %d con valores negativos", domain.ErrInvalidInput, i)
		}
	}
	return nil
}
