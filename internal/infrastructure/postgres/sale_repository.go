package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas y líneas de venta sobre PostgreSQL (pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de ventas.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, date, warehouse_id, customer_id, user_id, amount, shipping, discount,
	tax_percent, tax_amount, total_amount, payment_type_id, payment_status, note, status, created_at, updated_at`

func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.Date, s.WarehouseID, s.CustomerID, s.UserID, s.Amount, s.Shipping, s.Discount,
		s.TaxPercent, s.TaxAmount, s.TotalAmount, s.PaymentTypeID, s.PaymentStatus, s.Note, s.Status,
		s.CreatedAt, s.UpdatedAt,
	)
	return storageErr("insert sale", err)
}

// GetByID obtiene la venta con sus líneas.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	return r.get(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id)
}

// GetForUpdate obtiene la venta bloqueando la cabecera.
func (r *SaleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.get(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1 FOR UPDATE`, id)
}

func (r *SaleRepo) get(ctx context.Context, query, id string) (*entity.Sale, error) {
	var s entity.Sale
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Date, &s.WarehouseID, &s.CustomerID, &s.UserID, &s.Amount, &s.Shipping, &s.Discount,
		&s.TaxPercent, &s.TaxAmount, &s.TotalAmount, &s.PaymentTypeID, &s.PaymentStatus, &s.Note, &s.Status,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get sale", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, sale_id, product_id, quantity, product_price, product_cost, profit, sub_total, created_at, updated_at
		FROM sale_items WHERE sale_id = $1 ORDER BY created_at, id`, id)
	if err != nil {
		return nil, storageErr("list sale items", err)
	}
	defer rows.Close()

	s.Items = []entity.SaleItem{}
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.Quantity, &it.ProductPrice,
			&it.ProductCost, &it.Profit, &it.SubTotal, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, storageErr("scan sale item", err)
		}
		s.Items = append(s.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list sale items", err)
	}
	return &s, nil
}

func (r *SaleRepo) Update(ctx context.Context, s *entity.Sale) error {
	query := `
		UPDATE sales SET date = $2, warehouse_id = $3, customer_id = $4, amount = $5, shipping = $6,
			discount = $7, tax_percent = $8, tax_amount = $9, total_amount = $10, payment_type_id = $11,
			payment_status = $12, note = $13, status = $14, updated_at = $15
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.Date, s.WarehouseID, s.CustomerID, s.Amount, s.Shipping,
		s.Discount, s.TaxPercent, s.TaxAmount, s.TotalAmount, s.PaymentTypeID,
		s.PaymentStatus, s.Note, s.Status, s.UpdatedAt,
	)
	return storageErr("update sale", err)
}

func (r *SaleRepo) CreateItem(ctx context.Context, it *entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (id, sale_id, product_id, quantity, product_price, product_cost, profit, sub_total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query, it.ID, it.SaleID, it.ProductID, it.Quantity, it.ProductPrice,
		it.ProductCost, it.Profit, it.SubTotal, it.CreatedAt, it.UpdatedAt)
	return storageErr("insert sale item", err)
}

func (r *SaleRepo) UpdateItem(ctx context.Context, it *entity.SaleItem) error {
	query := `UPDATE sale_items SET quantity = $2, profit = $3, sub_total = $4, updated_at = $5 WHERE id = $1`
	_, err := r.q.Exec(ctx, query, it.ID, it.Quantity, it.Profit, it.SubTotal, it.UpdatedAt)
	return storageErr("update sale item", err)
}

func (r *SaleRepo) DeleteItems(ctx context.Context, saleID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM sale_items WHERE sale_id = $1`, saleID)
	return storageErr("delete sale items", err)
}
