package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockColumns = `product_id, warehouse_id, quantity, alert, created_at, updated_at`

// Get obtiene el stock actual de un producto en una bodega.
func (r *StockRepo) Get(ctx context.Context, productID, warehouseID string) (*entity.StockEntry, error) {
	query := `SELECT ` + stockColumns + ` FROM stock WHERE product_id = $1 AND warehouse_id = $2`
	return r.scanOne(ctx, "get stock", query, productID, warehouseID)
}

// GetForUpdate obtiene el stock y bloquea la fila para update (SELECT FOR UPDATE).
func (r *StockRepo) GetForUpdate(ctx context.Context, productID, warehouseID string) (*entity.StockEntry, error) {
	query := `SELECT ` + stockColumns + ` FROM stock WHERE product_id = $1 AND warehouse_id = $2 FOR UPDATE`
	return r.scanOne(ctx, "get stock for update", query, productID, warehouseID)
}

func (r *StockRepo) scanOne(ctx context.Context, op, query string, args ...any) (*entity.StockEntry, error) {
	var s entity.StockEntry
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&s.ProductID, &s.WarehouseID, &s.Quantity, &s.Alert, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr(op, err)
	}
	return &s, nil
}

// Increment suma delta en una sola sentencia (upsert); dos incrementos concurrentes nunca se pisan.
func (r *StockRepo) Increment(ctx context.Context, productID, warehouseID string, delta, alert, now int64) (int64, error) {
	query := `
		INSERT INTO stock (product_id, warehouse_id, quantity, alert, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET quantity = stock.quantity + EXCLUDED.quantity, updated_at = EXCLUDED.updated_at
		RETURNING quantity`
	var qty int64
	if err := r.q.QueryRow(ctx, query, productID, warehouseID, delta, alert, now).Scan(&qty); err != nil {
		return 0, storageErr("increment stock", err)
	}
	return qty, nil
}

// SetQuantity fija la cantidad de una fila ya bloqueada con GetForUpdate.
func (r *StockRepo) SetQuantity(ctx context.Context, productID, warehouseID string, quantity, now int64) error {
	query := `UPDATE stock SET quantity = $3, updated_at = $4 WHERE product_id = $1 AND warehouse_id = $2`
	_, err := r.q.Exec(ctx, query, productID, warehouseID, quantity, now)
	return storageErr("set stock quantity", err)
}

// SetAlert fija el umbral de alerta. false si el par no tiene entrada.
func (r *StockRepo) SetAlert(ctx context.Context, productID, warehouseID string, alert, now int64) (bool, error) {
	query := `UPDATE stock SET alert = $3, updated_at = $4 WHERE product_id = $1 AND warehouse_id = $2`
	tag, err := r.q.Exec(ctx, query, productID, warehouseID, alert, now)
	if err != nil {
		return false, storageErr("set stock alert", err)
	}
	return tag.RowsAffected() > 0, nil
}
