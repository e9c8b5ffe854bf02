package repository

import (
	"context"

	"github.com/jhoicas/Importaciones-api/internal/domain/entity"
)

// ProductCatalog consulta mínima al catálogo de productos (la gestión del catálogo vive fuera de este servicio).
type ProductCatalog interface {
	Exists(ctx context.Context, companyID, productID string) (bool, error)
}

// ProductRepository alta y lectura de productos del catálogo local.
type ProductRepository interface {
	ProductCatalog
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
}
