package repository

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// StockRepository define el puerto para consultar/actualizar stock por bodega+producto.
// Usado dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	// Get devuelve nil, nil si no existe entrada para el par.
	Get(ctx context.Context, productID, warehouseID string) (*entity.StockEntry, error)
	// GetForUpdate igual que Get pero bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, productID, warehouseID string) (*entity.StockEntry, error)
	// Increment suma delta (> 0) de forma atómica; crea la entrada con alert si no existe.
	// Devuelve la cantidad resultante.
	Increment(ctx context.Context, productID, warehouseID string, delta, alert, now int64) (int64, error)
	// SetQuantity fija la cantidad de una entrada existente (previamente bloqueada).
	SetQuantity(ctx context.Context, productID, warehouseID string, quantity, now int64) error
	// SetAlert fija el umbral de alerta; devuelve false si la entrada no existe.
	SetAlert(ctx context.Context, productID, warehouseID string, alert, now int64) (bool, error)
}
