package inventory

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

// StockUseCase consulta de existencias y mantenimiento del umbral de alerta.
// La cantidad solo cambia a través de MovementUseCase.
type StockUseCase struct {
	stock repository.StockRepository
	cache CacheInvalidator
	clock inventory.Clock
	log   *logger.Logger
}

// NewStockUseCase construye el caso de uso. cache y log son opcionales.
func NewStockUseCase(stock repository.StockRepository, cache CacheInvalidator, clock inventory.Clock, log *logger.Logger) *StockUseCase {
	if cache == nil {
		cache = nopCache{}
	}
	if clock == nil {
		clock = inventory.SystemClock{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &StockUseCase{stock: stock, cache: cache, clock: clock, log: log}
}

// GetStock devuelve la existencia del par; si aún no hay entrada responde cantidad 0.
func (uc *StockUseCase) GetStock(ctx context.Context, productID, warehouseID string) (*entity.StockEntry, error) {
	e, err := uc.stock.Get(ctx, productID, warehouseID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return &entity.StockEntry{ProductID: productID, WarehouseID: warehouseID}, nil
	}
	return e, nil
}

// SetAlert cambia el umbral de alerta de una entrada existente.
func (uc *StockUseCase) SetAlert(ctx context.Context, productID, warehouseID string, in dto.SetAlertRequest) (*entity.StockEntry, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	ok, err := uc.stock.SetAlert(ctx, productID, warehouseID, in.Alert, inventory.NowMillis(uc.clock))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.StockNotFound(productID, warehouseID)
	}
	// el umbral ya quedó guardado: un fallo de la caché no revierte el cambio
	if err := uc.cache.Invalidate(ctx); err != nil {
		uc.log.Warn().Err(err).
			Str("op", "stock.set_alert").
			Str("product_id", productID).
			Str("warehouse_id", warehouseID).
			Msg("no se pudo invalidar la caché de reportes")
	}
	return uc.GetStock(ctx, productID, warehouseID)
}
