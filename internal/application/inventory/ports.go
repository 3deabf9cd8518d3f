package inventory

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// Repos repositorios que participan en un movimiento. Dentro de TxRunner.Run
// todos están atados a la misma transacción.
type Repos struct {
	Stock       repository.StockRepository
	Purchases   repository.PurchaseRepository
	Sales       repository.SaleRepository
	Transfers   repository.TransferRepository
	LostDamaged repository.LostDamagedRepository
	Returns     repository.ReturnRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback de todo; si no, Commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repos) error) error
}

// Locker bloqueo de documento entre instancias (edición o devolución concurrente
// sobre la misma compra o venta). Devuelve domain.ErrConflict si está tomado.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// CacheInvalidator descarta resultados de reportes en caché tras un movimiento.
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

type nopLocker struct{}

func (nopLocker) Lock(context.Context, string) (func(), error) { return func() {}, nil }

type nopCache struct{}

func (nopCache) Invalidate(context.Context) error { return nil }
