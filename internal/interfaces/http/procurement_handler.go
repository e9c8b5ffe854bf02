package http

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Importaciones-api/internal/application/dto"
	"github.com/jhoicas/Importaciones-api/internal/application/procurement"
	"github.com/jhoicas/Importaciones-api/internal/domain"
	"github.com/jhoicas/Importaciones-api/internal/domain/entity"
	"github.com/jhoicas/Importaciones-api/pkg/logger"
)

// ProcurementService operaciones del flujo de compras que expone la API.
type ProcurementService interface {
	CreateOrder(ctx context.Context, in procurement.CreateOrderInput) (*procurement.OrderResult, error)
	GetOrder(ctx context.Context, actor entity.Actor, orderID string) (*entity.PurchaseOrder, error)
	ListStatusEvents(ctx context.Context, actor entity.Actor, orderID string) ([]entity.StatusEvent, error)
	ApplyTransition(ctx context.Context, in procurement.TransitionInput) (*procurement.OrderResult, error)
	RecalculateCosts(ctx context.Context, in procurement.RecalculateInput) (*procurement.OrderResult, error)
	ReceiveStock(ctx context.Context, in procurement.ReceiveStockInput) (*procurement.OrderResult, error)
	ArchiveOrder(ctx context.Context, in procurement.ArchiveInput) (*procurement.OrderResult, error)
	GetWallet(ctx context.Context, actor entity.Actor, supplierID string) (*entity.SupplierWallet, []entity.WalletNote, error)
	ListBatches(ctx context.Context, actor entity.Actor, productID string) ([]entity.InventoryBatch, error)
}

// DocumentsService documentos de costeo de una orden.
type DocumentsService interface {
	CostingPDF(ctx context.Context, actor entity.Actor, orderID string, now time.Time) ([]byte, string, error)
	CostingXML(ctx context.Context, actor entity.Actor, orderID string, now time.Time) ([]byte, string, string, error)
}

// ProcurementHandler maneja las peticiones HTTP de órdenes de compra, billeteras y lotes (protegido).
type ProcurementHandler struct {
	uc   ProcurementService
	docs DocumentsService
	log  *logger.Logger
	now  func() time.Time
}

// NewProcurementHandler construye el handler.
func NewProcurementHandler(uc ProcurementService, docs DocumentsService, log *logger.Logger) *ProcurementHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &ProcurementHandler{uc: uc, docs: docs, log: log.WithComponent("procurement_http"), now: time.Now}
}

// CreateOrder godoc
// @Summary      Crear orden de compra (draft)
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseOrderRequest  true  "supplier_id, exchange_rate, items"
// @Success      201   {object}  dto.PurchaseOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders [post]
func (h *ProcurementHandler) CreateOrder(c *fiber.Ctx) error {
	var in dto.CreatePurchaseOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.uc.CreateOrder(c.Context(), procurement.CreateOrderFromRequest(GetActor(c), h.now(), in))
	if err != nil {
		return h.fail(c, err)
	}
	setETag(c, res.Order.Version)
	return c.Status(fiber.StatusCreated).JSON(procurement.ToOrderResponse(res.Order))
}

// GetOrder godoc
// @Summary      Obtener orden de compra
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.PurchaseOrderResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id} [get]
func (h *ProcurementHandler) GetOrder(c *fiber.Ctx) error {
	order, err := h.uc.GetOrder(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	setETag(c, order.Version)
	return c.JSON(procurement.ToOrderResponse(order))
}

// History godoc
// @Summary      Historial de etapas de la orden
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {array}   dto.StatusEventResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/history [get]
func (h *ProcurementHandler) History(c *fiber.Ctx) error {
	events, err := h.uc.ListStatusEvents(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(procurement.ToStatusEventResponses(events))
}

// Transition godoc
// @Summary      Aplicar transición de etapa (o reentrada para corregir datos)
// @Description  Campos permitidos según la etapa destino. If-Match opcional con la versión esperada.
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id        path    string                 true   "ID de la orden"
// @Param        If-Match  header  string                 false  "Versión esperada"
// @Param        body      body    dto.TransitionRequest  true   "target y campos de la etapa"
// @Success      200  {object}  dto.TransitionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      410  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/transitions [post]
func (h *ProcurementHandler) Transition(c *fiber.Ctx) error {
	version, err := expectedVersion(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.TransitionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.uc.ApplyTransition(c.Context(), procurement.TransitionFromRequest(GetActor(c), c.Params("id"), version, h.now(), in))
	if err != nil {
		return h.fail(c, err)
	}
	return h.written(c, res)
}

// Recalculate godoc
// @Summary      Recalcular costos sin cambiar de etapa
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        id        path    string  true   "ID de la orden"
// @Param        If-Match  header  string  false  "Versión esperada"
// @Success      200  {object}  dto.TransitionResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      410  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/recalculate [post]
func (h *ProcurementHandler) Recalculate(c *fiber.Ctx) error {
	version, err := expectedVersion(c)
	if err != nil {
		return writeError(c, err)
	}
	res, err := h.uc.RecalculateCosts(c.Context(), procurement.RecalculateInput{
		Actor: GetActor(c), OrderID: c.Params("id"), ExpectedVersion: version, Now: h.now(),
	})
	if err != nil {
		return h.fail(c, err)
	}
	return h.written(c, res)
}

// Receive godoc
// @Summary      Registrar recepción en el hub
// @Description  Cantidades recibidas, pesos reales y costo adicional; escribe lotes por la diferencia.
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id        path    string                   true   "ID de la orden"
// @Param        If-Match  header  string                   false  "Versión esperada"
// @Param        body      body    dto.ReceiveStockRequest  true   "líneas recibidas"
// @Success      200  {object}  dto.TransitionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/receive [post]
func (h *ProcurementHandler) Receive(c *fiber.Ctx) error {
	version, err := expectedVersion(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.ReceiveStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.uc.ReceiveStock(c.Context(), procurement.ReceiveStockFromRequest(GetActor(c), c.Params("id"), version, h.now(), in))
	if err != nil {
		return h.fail(c, err)
	}
	return h.written(c, res)
}

// Archive godoc
// @Summary      Archivar orden (draft o terminada)
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        id        path    string  true   "ID de la orden"
// @Param        If-Match  header  string  false  "Versión esperada"
// @Success      200  {object}  dto.PurchaseOrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      410  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/archive [post]
func (h *ProcurementHandler) Archive(c *fiber.Ctx) error {
	version, err := expectedVersion(c)
	if err != nil {
		return writeError(c, err)
	}
	res, err := h.uc.ArchiveOrder(c.Context(), procurement.ArchiveInput{
		Actor: GetActor(c), OrderID: c.Params("id"), ExpectedVersion: version, Now: h.now(),
	})
	if err != nil {
		return h.fail(c, err)
	}
	setETag(c, res.Order.Version)
	return c.JSON(procurement.ToOrderResponse(res.Order))
}

// CostingPDF godoc
// @Summary      Hoja de costeo en PDF
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/costing.pdf [get]
func (h *ProcurementHandler) CostingPDF(c *fiber.Ctx) error {
	b, name, err := h.docs.CostingPDF(c.Context(), GetActor(c), c.Params("id"), h.now())
	if err != nil {
		return h.fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, name))
	return c.Send(b)
}

// CostingXML godoc
// @Summary      Estado de costos en XML (con digest SHA-256 canónico)
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      application/xml
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/costing.xml [get]
func (h *ProcurementHandler) CostingXML(c *fiber.Ctx) error {
	b, digest, name, err := h.docs.CostingXML(c.Context(), GetActor(c), c.Params("id"), h.now())
	if err != nil {
		return h.fail(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
	c.Set("Digest", "sha-256="+digest)
	return c.Send(b)
}

// GetWallet godoc
// @Summary      Billetera del proveedor
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del proveedor"
// @Success      200  {object}  dto.SupplierWalletResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/suppliers/{id}/wallet [get]
func (h *ProcurementHandler) GetWallet(c *fiber.Ctx) error {
	w, notes, err := h.uc.GetWallet(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(procurement.ToWalletResponse(w, notes))
}

// ListBatches godoc
// @Summary      Lotes FIFO de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  true  "ID del producto"
// @Success      200  {array}   dto.InventoryBatchResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/batches [get]
func (h *ProcurementHandler) ListBatches(c *fiber.Ctx) error {
	batches, err := h.uc.ListBatches(c.Context(), GetActor(c), c.Query("product_id"))
	if err != nil {
		return h.fail(c, err)
	}
	out := make([]dto.InventoryBatchResponse, 0, len(batches))
	for _, b := range batches {
		out = append(out, procurement.ToBatchResponse(b))
	}
	return c.JSON(out)
}

func (h *ProcurementHandler) written(c *fiber.Ctx, res *procurement.OrderResult) error {
	setETag(c, res.Order.Version)
	return c.JSON(procurement.ToTransitionResponse(res))
}

func (h *ProcurementHandler) fail(c *fiber.Ctx, err error) error {
	if status, _ := statusFor(err); status == fiber.StatusInternalServerError {
		h.log.Error().Err(err).Str("path", c.Path()).Str("method", c.Method()).Msg("error no controlado")
	}
	return writeError(c, err)
}

// expectedVersion lee If-Match ("3", "\"3\"" o W/"3"). nil si no viene.
func expectedVersion(c *fiber.Ctx) (*int, error) {
	raw := strings.TrimSpace(c.Get(fiber.HeaderIfMatch))
	if raw == "" {
		return nil, nil
	}
	raw = strings.TrimPrefix(raw, "W/")
	raw = strings.Trim(raw, `"`)
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return nil, fmt.Errorf("%w: If-Match debe ser la versión de la orden", domain.ErrInvalidInput)
	}
	return &v, nil
}

func setETag(c *fiber.Ctx, version int) {
	c.Set(fiber.HeaderETag, strconv.Quote(strconv.Itoa(version)))
}
