package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Importaciones-api/pkg/jwt"
	"github.com/jhoicas/Importaciones-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Procurement ProcurementService
	Documents   DocumentsService
	Logger      *logger.Logger
	JWTSecret   string
}

// Router registra las rutas de la API. Todas requieren Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	h := NewProcurementHandler(deps.Procurement, deps.Documents, deps.Logger)
	buyers := RequireRole(jwt.RoleAdmin, jwt.RoleCompras)

	// Órdenes de compra
	orders := protected.Group("/purchase-orders")
	orders.Post("/", buyers, h.CreateOrder)
	orders.Get("/:id", h.GetOrder)
	orders.Get("/:id/history", h.History)
	orders.Post("/:id/transitions", buyers, h.Transition)
	orders.Post("/:id/recalculate", buyers, h.Recalculate)
	orders.Post("/:id/receive", RequireRole(jwt.RoleAdmin, jwt.RoleBodeguero), h.Receive)
	orders.Post("/:id/archive", RequireRole(jwt.RoleAdmin), h.Archive)
	orders.Get("/:id/costing.pdf", h.CostingPDF)
	orders.Get("/:id/costing.xml", h.CostingXML)

	// Billetera de proveedores
	protected.Get("/suppliers/:id/wallet", buyers, h.GetWallet)

	// Inventario FIFO
	protected.Get("/inventory/batches", h.ListBatches)
}
