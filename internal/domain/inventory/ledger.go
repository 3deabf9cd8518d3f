package inventory

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// Ledger aplica deltas de cantidad sobre el stock por (producto, bodega).
// Debe construirse con un StockRepository atado a la transacción en curso:
// el bloqueo de fila dura hasta el Commit/Rollback de esa transacción.
type Ledger struct {
	stock repository.StockRepository
	clock Clock
}

// NewLedger construye el ledger.
func NewLedger(stock repository.StockRepository, clock Clock) *Ledger {
	return &Ledger{stock: stock, clock: clock}
}

// Quantity devuelve la cantidad actual; 0 si aún no hay entrada para el par.
func (l *Ledger) Quantity(ctx context.Context, productID, warehouseID string) (int64, error) {
	entry, err := l.stock.Get(ctx, productID, warehouseID)
	if err != nil {
		return 0, err
	}
	if entry == nil {
		return 0, nil
	}
	return entry.Quantity, nil
}

// ApplyDelta suma delta a la cantidad y devuelve la nueva cantidad.
//   - delta > 0: incremento atómico; crea la entrada con alertIfCreating si no existe.
//   - delta < 0: bloquea la fila; StockNotFound si no existe, InsufficientStock si quedaría negativa.
//   - delta == 0: sin escritura.
func (l *Ledger) ApplyDelta(ctx context.Context, productID, warehouseID string, delta, alertIfCreating int64) (int64, error) {
	now := NowMillis(l.clock)
	switch {
	case delta > 0:
		return l.stock.Increment(ctx, productID, warehouseID, delta, alertIfCreating, now)
	case delta == 0:
		return l.Quantity(ctx, productID, warehouseID)
	}

	entry, err := l.stock.GetForUpdate(ctx, productID, warehouseID)
	if err != nil {
		return 0, err
	}
	if entry == nil {
		return 0, domain.StockNotFound(productID, warehouseID)
	}
	newQty := entry.Quantity + delta
	if newQty < 0 {
		return 0, domain.InsufficientStock(productID, warehouseID, -delta, entry.Quantity)
	}
	if err := l.stock.SetQuantity(ctx, productID, warehouseID, newQty, now); err != nil {
		return 0, err
	}
	return newQty, nil
}
