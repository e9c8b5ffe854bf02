package procurement

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Importaciones-api/internal/domain"
	"github.com/jhoicas/Importaciones-api/internal/domain/entity"
	"github.com/jhoicas/Importaciones-api/internal/domain/procurement"
	"github.com/jhoicas/Importaciones-api/internal/domain/repository"
)

// DocumentsUseCase genera la hoja de costeo (PDF) y el estado de costos (XML) de una orden.
type DocumentsUseCase struct {
	orderRepo repository.PurchaseOrderRepository
	pdf       CostingPDFGenerator
	xml       CostingXMLGenerator
}

// NewDocumentsUseCase construye el caso de uso inyectando los generadores.
func NewDocumentsUseCase(orderRepo repository.PurchaseOrderRepository, pdf CostingPDFGenerator, xml CostingXMLGenerator) *DocumentsUseCase {
	return &DocumentsUseCase{orderRepo: orderRepo, pdf: pdf, xml: xml}
}

// CostingPDF devuelve (pdfBytes, filename).
func (uc *DocumentsUseCase) CostingPDF(ctx context.Context, actor entity.Actor, orderID string, now time.Time) ([]byte, string, error) {
	doc, err := uc.load(ctx, actor, orderID, now)
	if err != nil {
		return nil, "", err
	}
	b, err := uc.pdf.Generate(doc)
	if err != nil {
		return nil, "", fmt.Errorf("documentos: generar pdf: %w", err)
	}
	return b, fileName(doc.Order, "pdf"), nil
}

// CostingXML devuelve (xmlBytes, digest, filename). digest = SHA-256 base64 de la forma canónica.
func (uc *DocumentsUseCase) CostingXML(ctx context.Context, actor entity.Actor, orderID string, now time.Time) ([]byte, string, string, error) {
	doc, err := uc.load(ctx, actor, orderID, now)
	if err != nil {
		return nil, "", "", err
	}
	b, digest, err := uc.xml.Generate(doc)
	if err != nil {
		return nil, "", "", fmt.Errorf("documentos: generar xml: %w", err)
	}
	return b, digest, fileName(doc.Order, "xml"), nil
}

func (uc *DocumentsUseCase) load(ctx context.Context, actor entity.Actor, orderID string, now time.Time) (CostingDocument, error) {
	if err := checkActor(actor); err != nil {
		return CostingDocument{}, err
	}
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return CostingDocument{}, fmt.Errorf("documentos: obtener orden: %w", err)
	}
	if order == nil {
		return CostingDocument{}, domain.ErrNotFound
	}
	if order.CompanyID != actor.CompanyID {
		return CostingDocument{}, domain.ErrForbidden
	}
	events, err := uc.orderRepo.ListStatusEvents(ctx, orderID)
	if err != nil {
		return CostingDocument{}, fmt.Errorf("documentos: historial: %w", err)
	}
	// El desglose se recalcula (puro) para mostrar también fletes y otros costos.
	_, breakdown := procurement.Recalculate(order, order.Items)
	return CostingDocument{
		Order:       order,
		Breakdown:   breakdown,
		Events:      events,
		GeneratedAt: now.UTC(),
		GeneratedBy: actor.UserID,
	}, nil
}

func fileName(o *entity.PurchaseOrder, ext string) string {
	ref := o.OrderNumber
	if ref == "" {
		ref = o.ID
	}
	return fmt.Sprintf("costeo-%s.%s", ref, ext)
}
