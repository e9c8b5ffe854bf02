package procurement

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Importaciones-api/internal/application/dto"
	"github.com/jhoicas/Importaciones-api/internal/domain/entity"
	"github.com/jhoicas/Importaciones-api/internal/domain/procurement"
)

// CreateOrderFromRequest adapta el body HTTP a CreateOrderInput.
func CreateOrderFromRequest(actor entity.Actor, now time.Time, in dto.CreatePurchaseOrderRequest) CreateOrderInput {
	out := CreateOrderInput{
		Actor:          actor,
		SupplierID:     in.SupplierID,
		ShippingMethod: entity.ShippingMethod(in.ShippingMethod),
		Notes:          in.Notes,
		Now:            now,
	}
	if in.ExchangeRate != nil {
		out.ExchangeRate = *in.ExchangeRate
	}
	for _, it := range in.Items {
		out.Items = append(out.Items, CreateItemInput{
			ProductID:        it.ProductID,
			UnitPriceForeign: it.UnitPriceForeign,
			OrderedQty:       it.OrderedQty,
			UnitWeight:       valueOrZero(it.UnitWeight),
			ExtraWeight:      valueOrZero(it.ExtraWeight),
		})
	}
	return out
}

// TransitionFromRequest adapta el body HTTP a TransitionInput.
func TransitionFromRequest(actor entity.Actor, orderID string, expectedVersion *int, now time.Time, in dto.TransitionRequest) TransitionInput {
	fields := procurement.TransitionFields{
		ExchangeRate:      in.ExchangeRate,
		ShippingCostIntl:  in.ShippingCostIntl,
		ShippingCostLocal: in.ShippingCostLocal,
		MiscCost:          in.MiscCost,
		ExtraCostGlobal:   in.ExtraCostGlobal,
		LostItemPenalty:   in.LostItemPenalty,
		TrackingNumber:    in.TrackingNumber,
		Notes:             in.Notes,
		LostResolution:    lostResolution(in.LostResolution),
	}
	if in.ShippingMethod != nil {
		m := entity.ShippingMethod(*in.ShippingMethod)
		fields.ShippingMethod = &m
	}
	for _, it := range in.Items {
		fields.Items = append(fields.Items, procurement.ItemUpdate{
			ItemID:           it.ItemID,
			UnitPriceForeign: it.UnitPriceForeign,
			OrderedQty:       it.OrderedQty,
			UnitWeight:       it.UnitWeight,
			ExtraWeight:      it.ExtraWeight,
			ReceivedQty:      it.ReceivedQty,
			LostQty:          it.LostQty,
			StockedQty:       it.StockedQty,
		})
	}
	return TransitionInput{
		Actor:           actor,
		OrderID:         orderID,
		Target:          entity.OrderStatus(in.Target),
		Fields:          fields,
		ExpectedVersion: expectedVersion,
		Now:             now,
	}
}

// ReceiveStockFromRequest adapta el body HTTP a ReceiveStockInput.
func ReceiveStockFromRequest(actor entity.Actor, orderID string, expectedVersion *int, now time.Time, in dto.ReceiveStockRequest) ReceiveStockInput {
	out := ReceiveStockInput{
		Actor:           actor,
		OrderID:         orderID,
		AdditionalCost:  in.AdditionalCost,
		LostResolution:  lostResolution(in.LostResolution),
		ExpectedVersion: expectedVersion,
		Now:             now,
	}
	for _, r := range in.Items {
		out.Receipts = append(out.Receipts, Receipt{
			ItemID:      r.ItemID,
			UnitWeight:  r.UnitWeight,
			ExtraWeight: r.ExtraWeight,
			ReceivedQty: r.ReceivedQty,
			LostQty:     r.LostQty,
			StockedQty:  r.StockedQty,
		})
	}
	return out
}

// ToOrderResponse costos redondeados para presentación (4 decimales unitarios, 2 en totales).
func ToOrderResponse(o *entity.PurchaseOrder) dto.PurchaseOrderResponse {
	targets := []string{}
	editable := map[string][]string{}
	if !o.Archived {
		reachable := procurement.AllowedTargets(o.Status)
		if !o.Status.IsTerminal() {
			editable[o.Status.String()] = fieldNames(procurement.EditableFields(o.Status))
		}
		for _, t := range reachable {
			targets = append(targets, t.String())
			editable[t.String()] = fieldNames(procurement.EditableFields(t))
		}
	}
	resp := dto.PurchaseOrderResponse{
		ID:                 o.ID,
		OrderNumber:        o.OrderNumber,
		SupplierID:         o.SupplierID,
		Status:             o.Status.String(),
		AllowedTargets:     targets,
		EditableFields:     editable,
		ExchangeRate:       o.ExchangeRate,
		ShippingMethod:     string(o.ShippingMethod),
		ShippingCostIntl:   o.ShippingCostIntl,
		ShippingCostLocal:  o.ShippingCostLocal,
		MiscCost:           o.MiscCost,
		ExtraCostGlobal:    o.ExtraCostGlobal,
		LostItemPenalty:    o.LostItemPenalty,
		TotalWeight:        o.TotalWeight,
		ProductCostLocal:   o.ProductCostLocal.Round(2),
		TotalLandedCost:    o.TotalLandedCost.Round(2),
		LostItemTotalValue: o.LostItemTotalValue.Round(2),
		AllocationBasis:    string(o.AllocationBasis),
		TrackingNumber:     o.TrackingNumber,
		Notes:              o.Notes,
		Version:            o.Version,
		Archived:           o.Archived,
		Items:              make([]dto.PurchaseOrderItemResponse, 0, len(o.Items)),
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
	for _, it := range o.Items {
		resp.Items = append(resp.Items, dto.PurchaseOrderItemResponse{
			ID:                it.ID,
			ProductID:         it.ProductID,
			UnitPriceForeign:  it.UnitPriceForeign,
			OrderedQty:        it.OrderedQty,
			ReceivedQty:       it.ReceivedQty,
			StockedQty:        it.StockedQty,
			LostQty:           it.LostQty,
			UnitWeight:        it.UnitWeight,
			ExtraWeight:       it.ExtraWeight,
			BatchedQty:        it.BatchedQty,
			ReconciledLostQty: it.ReconciledLostQty,
			AllocatedCost:     it.AllocatedCost.Round(2),
			FinalUnitCost:     it.FinalUnitCost.Round(4),
			LostUnitValue:     it.LostUnitValue.Round(4),
		})
	}
	return resp
}

func fieldNames(fields []procurement.Field) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, string(f))
	}
	return out
}

// ToBatchResponse lote para la respuesta HTTP.
func ToBatchResponse(b entity.InventoryBatch) dto.InventoryBatchResponse {
	return dto.InventoryBatchResponse{
		ID:           b.ID,
		ProductID:    b.ProductID,
		OrderID:      b.OrderID,
		SourceKind:   string(b.Source.Kind),
		SourceID:     b.Source.ID,
		Quantity:     b.Quantity,
		RemainingQty: b.RemainingQty,
		UnitCost:     b.UnitCost.Round(4),
		CreatedAt:    b.CreatedAt,
	}
}

// ToWalletNoteResponse nota para la respuesta HTTP.
func ToWalletNoteResponse(n entity.WalletNote) dto.WalletNoteResponse {
	return dto.WalletNoteResponse{
		ID:           n.ID,
		Type:         string(n.Type),
		Amount:       n.Amount.Round(2),
		BalanceAfter: n.BalanceAfter.Round(2),
		Reason:       n.Reason,
		SourceKind:   string(n.Source.Kind),
		SourceID:     n.Source.ID,
		Actor:        n.Actor,
		CreatedAt:    n.CreatedAt,
	}
}

// ToWalletResponse billetera con sus notas.
func ToWalletResponse(w *entity.SupplierWallet, notes []entity.WalletNote) dto.SupplierWalletResponse {
	resp := dto.SupplierWalletResponse{
		SupplierID:  w.SupplierID,
		Balance:     w.Balance.Round(2),
		CreditLimit: w.CreditLimit.Round(2),
		Available:   w.Balance.Add(w.CreditLimit).Round(2),
		Notes:       make([]dto.WalletNoteResponse, 0, len(notes)),
		UpdatedAt:   w.UpdatedAt,
	}
	for _, n := range notes {
		resp.Notes = append(resp.Notes, ToWalletNoteResponse(n))
	}
	return resp
}

// ToTransitionResponse resultado de una operación de escritura.
func ToTransitionResponse(r *OrderResult) dto.TransitionResponse {
	resp := dto.TransitionResponse{
		Order:              ToOrderResponse(r.Order),
		ZeroWeightFallback: r.Breakdown.ZeroWeightFallback(),
	}
	for _, b := range r.Batches {
		resp.BatchesCreated = append(resp.BatchesCreated, ToBatchResponse(b))
	}
	for _, n := range r.WalletNotes {
		resp.WalletNotes = append(resp.WalletNotes, ToWalletNoteResponse(n))
	}
	return resp
}

// ToStatusEventResponses historial para la respuesta HTTP.
func ToStatusEventResponses(events []entity.StatusEvent) []dto.StatusEventResponse {
	out := make([]dto.StatusEventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, dto.StatusEventResponse{From: e.From.String(), To: e.To.String(), Actor: e.Actor, At: e.At})
	}
	return out
}

func lostResolution(s *string) *procurement.LostResolution {
	if s == nil {
		return nil
	}
	r := procurement.LostResolution(*s)
	return &r
}

func valueOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
