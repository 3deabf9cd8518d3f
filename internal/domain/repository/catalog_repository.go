package repository

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// CatalogRepository lecturas de productos y bodegas para validar referencias.
type CatalogRepository interface {
	// GetProduct devuelve nil, nil si no existe.
	GetProduct(ctx context.Context, id string) (*entity.Product, error)
	// GetWarehouse devuelve nil, nil si no existe.
	GetWarehouse(ctx context.Context, id string) (*entity.Warehouse, error)
}
