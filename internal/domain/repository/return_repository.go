package repository

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// ReturnRepository persistencia de devoluciones de compra y de venta.
type ReturnRepository interface {
	CreatePurchaseReturn(ctx context.Context, r *entity.PurchaseReturn) error
	CreatePurchaseReturnItem(ctx context.Context, item *entity.PurchaseReturnItem) error
	GetPurchaseReturn(ctx context.Context, id string) (*entity.PurchaseReturn, error)

	CreateSalesReturn(ctx context.Context, r *entity.SalesReturn) error
	CreateSalesReturnItem(ctx context.Context, item *entity.SalesReturnItem) error
	GetSalesReturn(ctx context.Context, id string) (*entity.SalesReturn, error)
}
