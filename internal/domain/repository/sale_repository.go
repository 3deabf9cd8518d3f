package repository

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// SaleRepository persistencia de ventas y sus líneas.
type SaleRepository interface {
	Create(ctx context.Context, s *entity.Sale) error
	// GetByID devuelve la cabecera con sus líneas, o nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	// GetForUpdate igual que GetByID, bloqueando la cabecera.
	GetForUpdate(ctx context.Context, id string) (*entity.Sale, error)
	Update(ctx context.Context, s *entity.Sale) error
	CreateItem(ctx context.Context, item *entity.SaleItem) error
	UpdateItem(ctx context.Context, item *entity.SaleItem) error
	DeleteItems(ctx context.Context, saleID string) error
}
