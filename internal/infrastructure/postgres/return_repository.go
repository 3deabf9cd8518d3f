package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.ReturnRepository = (*ReturnRepo)(nil)

// ReturnRepo devoluciones de compra y de venta.
type ReturnRepo struct {
	q Querier
}

// NewReturnRepository construye el adaptador de devoluciones.
func NewReturnRepository(q Querier) *ReturnRepo {
	return &ReturnRepo{q: q}
}

// ── Devoluciones de compra ────────────────────────────────────────────────────

func (r *ReturnRepo) CreatePurchaseReturn(ctx context.Context, pr *entity.PurchaseReturn) error {
	query := `
		INSERT INTO purchase_returns (id, purchase_id, warehouse_id, date, total_amount, note, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query, pr.ID, pr.PurchaseID, pr.WarehouseID, pr.Date, pr.TotalAmount,
		pr.Note, pr.Status, pr.CreatedAt, pr.UpdatedAt)
	return storageErr("insert purchase_return", err)
}

func (r *ReturnRepo) CreatePurchaseReturnItem(ctx context.Context, it *entity.PurchaseReturnItem) error {
	query := `
		INSERT INTO purchase_return_items (id, purchase_return_id, product_id, quantity, product_cost, sub_total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, it.ID, it.PurchaseReturnID, it.ProductID, it.Quantity,
		it.ProductCost, it.SubTotal, it.CreatedAt, it.UpdatedAt)
	return storageErr("insert purchase_return item", err)
}

func (r *ReturnRepo) GetPurchaseReturn(ctx context.Context, id string) (*entity.PurchaseReturn, error) {
	var pr entity.PurchaseReturn
	err := r.q.QueryRow(ctx, `
		SELECT id, purchase_id, warehouse_id, date, total_amount, note, status, created_at, updated_at
		FROM purchase_returns WHERE id = $1`, id).Scan(
		&pr.ID, &pr.PurchaseID, &pr.WarehouseID, &pr.Date, &pr.TotalAmount,
		&pr.Note, &pr.Status, &pr.CreatedAt, &pr.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get purchase_return", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, purchase_return_id, product_id, quantity, product_cost, sub_total, created_at, updated_at
		FROM purchase_return_items WHERE purchase_return_id = $1 ORDER BY created_at, id`, id)
	if err != nil {
		return nil, storageErr("list purchase_return items", err)
	}
	defer rows.Close()

	pr.Items = []entity.PurchaseReturnItem{}
	for rows.Next() {
		var it entity.PurchaseReturnItem
		if err := rows.Scan(&it.ID, &it.PurchaseReturnID, &it.ProductID, &it.Quantity,
			&it.ProductCost, &it.SubTotal, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, storageErr("scan purchase_return item", err)
		}
		pr.Items = append(pr.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list purchase_return items", err)
	}
	return &pr, nil
}

// ── Devoluciones de venta ─────────────────────────────────────────────────────

func (r *ReturnRepo) CreateSalesReturn(ctx context.Context, sr *entity.SalesReturn) error {
	query := `
		INSERT INTO sales_returns (id, sale_id, warehouse_id, date, total_amount, note, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query, sr.ID, sr.SaleID, sr.WarehouseID, sr.Date, sr.TotalAmount,
		sr.Note, sr.Status, sr.CreatedAt, sr.UpdatedAt)
	return storageErr("insert sales_return", err)
}

func (r *ReturnRepo) CreateSalesReturnItem(ctx context.Context, it *entity.SalesReturnItem) error {
	query := `
		INSERT INTO sales_return_items (id, sales_return_id, product_id, quantity, product_price, product_cost, sub_total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query, it.ID, it.SalesReturnID, it.ProductID, it.Quantity,
		it.ProductPrice, it.ProductCost, it.SubTotal, it.CreatedAt, it.UpdatedAt)
	return storageErr("insert sales_return item", err)
}

func (r *ReturnRepo) GetSalesReturn(ctx context.Context, id string) (*entity.SalesReturn, error) {
	var sr entity.SalesReturn
	err := r.q.QueryRow(ctx, `
		SELECT id, sale_id, warehouse_id, date, total_amount, note, status, created_at, updated_at
		FROM sales_returns WHERE id = $1`, id).Scan(
		&sr.ID, &sr.SaleID, &sr.WarehouseID, &sr.Date, &sr.TotalAmount,
		&sr.Note, &sr.Status, &sr.CreatedAt, &sr.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get sales_return", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, sales_return_id, product_id, quantity, product_price, product_cost, sub_total, created_at, updated_at
		FROM sales_return_items WHERE sales_return_id = $1 ORDER BY created_at, id`, id)
	if err != nil {
		return nil, storageErr("list sales_return items", err)
	}
	defer rows.Close()

	sr.Items = []entity.SalesReturnItem{}
	for rows.Next() {
		var it entity.SalesReturnItem
		if err := rows.Scan(&it.ID, &it.SalesReturnID, &it.ProductID, &it.Quantity,
			&it.ProductPrice, &it.ProductCost, &it.SubTotal, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, storageErr("scan sales_return item", err)
		}
		sr.Items = append(sr.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list sales_return items", err)
	}
	return &sr, nil
}
