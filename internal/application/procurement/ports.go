package procurement

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/Importaciones-api/internal/domain/entity"
	"github.com/jhoicas/Importaciones-api/internal/domain/procurement"
	"github.com/jhoicas/Importaciones-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback y la orden queda sin cambios.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		orderRepo repository.PurchaseOrderRepository,
		batchRepo repository.InventoryBatchRepository,
		walletRepo repository.SupplierWalletRepository,
	) error) error
}

// ErrCacheMiss la orden no está en caché.
var ErrCacheMiss = errors.New("orden no encontrada en caché")

// OrderCache caché de lectura de órdenes. Set nunca reemplaza una versión más nueva que la
// que recibe; después de cada commit se guarda la orden confirmada.
type OrderCache interface {
	Get(ctx context.Context, orderID string) (*entity.PurchaseOrder, error)
	Set(ctx context.Context, order *entity.PurchaseOrder) error
	Delete(ctx context.Context, orderID string) error
}

// CostingDocument datos para la hoja de costeo (PDF) y el estado de costos (XML).
type CostingDocument struct {
	Order       *entity.PurchaseOrder
	Breakdown   procurement.CostBreakdown
	Events      []entity.StatusEvent
	GeneratedAt time.Time
	GeneratedBy string
}

// CostingPDFGenerator genera la hoja de costeo en PDF.
type CostingPDFGenerator interface {
	Generate(doc CostingDocument) ([]byte, error)
}

// CostingXMLGenerator genera el estado de costos en XML y devuelve también el digest
// SHA-256 (base64) de su forma canónica.
type CostingXMLGenerator interface {
	Generate(doc CostingDocument) (xml []byte, digest string, err error)
}
