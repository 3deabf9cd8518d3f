package repository

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// TransferRepository persistencia de traslados entre bodegas.
type TransferRepository interface {
	Create(ctx context.Context, t *entity.Transfer) error
	CreateItem(ctx context.Context, item *entity.TransferItem) error
	GetByID(ctx context.Context, id string) (*entity.Transfer, error)
}

// LostDamagedRepository persistencia de bajas por pérdida o daño.
type LostDamagedRepository interface {
	Create(ctx context.Context, ld *entity.LostDamaged) error
}
