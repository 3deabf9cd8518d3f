package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

// MovementUseCase operaciones que mueven stock: compras, ventas, traslados, bajas,
// devoluciones y la edición de compras/ventas. Cada operación corre completa
// dentro de una transacción (TxRunner): o se aplica todo o nada.
type MovementUseCase struct {
	txRunner TxRunner
	reader   Repos
	catalog  repository.CatalogRepository
	locker   Locker
	cache    CacheInvalidator
	clock    inventory.Clock
	log      *logger.Logger
	newID    func() string
}

// NewMovementUseCase construye el caso de uso. reader son repositorios fuera de transacción
// (lecturas). locker, cache y log son opcionales.
func NewMovementUseCase(
	txRunner TxRunner,
	reader Repos,
	catalog repository.CatalogRepository,
	locker Locker,
	cache CacheInvalidator,
	clock inventory.Clock,
	log *logger.Logger,
) *MovementUseCase {
	if locker == nil {
		locker = nopLocker{}
	}
	if cache == nil {
		cache = nopCache{}
	}
	if clock == nil {
		clock = inventory.SystemClock{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &MovementUseCase{
		txRunner: txRunner,
		reader:   reader,
		catalog:  catalog,
		locker:   locker,
		cache:    cache,
		clock:    clock,
		log:      log,
		newID:    uuid.NewString,
	}
}

// run ejecuta fn en una transacción con un ledger atado a ella. Tras el Commit invalida la caché de reportes.
func (uc *MovementUseCase) run(ctx context.Context, op string, fn func(repos Repos, ledger *inventory.Ledger) error) error {
	err := uc.txRunner.Run(ctx, func(repos Repos) error {
		return fn(repos, inventory.NewLedger(repos.Stock, uc.clock))
	})
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) || errors.Is(err, domain.ErrStockNotFound) {
			uc.log.Warn().Err(err).Str("op", op).Msg("movimiento rechazado por stock")
		}
		return err
	}
	if err := uc.cache.Invalidate(ctx); err != nil {
		uc.log.Warn().Err(err).Str("op", op).Msg("no se pudo invalidar la caché de reportes")
	}
	return nil
}

// withLock toma el bloqueo del documento (compra o venta) mientras corre fn.
func (uc *MovementUseCase) withLock(ctx context.Context, key string, fn func() error) error {
	unlock, err := uc.locker.Lock(ctx, key)
	if err != nil {
		return err
	}
	defer unlock()
	return fn()
}

func (uc *MovementUseCase) nowMillis() int64 {
	return inventory.NowMillis(uc.clock)
}

func (uc *MovementUseCase) dateOr(t time.Time) time.Time {
	if t.IsZero() {
		return uc.clock.Now()
	}
	return t
}

func (uc *MovementUseCase) checkWarehouse(ctx context.Context, id string) error {
	wh, err := uc.catalog.GetWarehouse(ctx, id)
	if err != nil {
		return err
	}
	if wh == nil {
		return domain.NewNotFound("bodega", id)
	}
	return nil
}

func (uc *MovementUseCase) checkProducts(ctx context.Context, ids ...string) error {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		p, err := uc.catalog.GetProduct(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.NewNotFound("producto", id)
		}
	}
	return nil
}
