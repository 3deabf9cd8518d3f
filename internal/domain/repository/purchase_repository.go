package repository

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// PurchaseRepository persistencia de compras y sus líneas.
type PurchaseRepository interface {
	Create(ctx context.Context, p *entity.Purchase) error
	// GetByID devuelve la cabecera con sus líneas, o nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Purchase, error)
	// GetForUpdate igual que GetByID, bloqueando la cabecera.
	GetForUpdate(ctx context.Context, id string) (*entity.Purchase, error)
	Update(ctx context.Context, p *entity.Purchase) error
	CreateItem(ctx context.Context, item *entity.PurchaseItem) error
	UpdateItem(ctx context.Context, item *entity.PurchaseItem) error
	DeleteItems(ctx context.Context, purchaseID string) error
}
