package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo compras y líneas de compra sobre PostgreSQL (pool o tx).
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador de compras.
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

const purchaseColumns = `id, date, warehouse_id, supplier_id, amount, shipping, ref_code,
	payment_type_id, payment_status, note, status, created_at, updated_at`

// Create inserta la cabecera (las líneas van por CreateItem).
func (r *PurchaseRepo) Create(ctx context.Context, p *entity.Purchase) error {
	query := `INSERT INTO purchases (` + purchaseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Date, p.WarehouseID, p.SupplierID, p.Amount, p.Shipping, p.RefCode,
		p.PaymentTypeID, p.PaymentStatus, p.Note, p.Status, p.CreatedAt, p.UpdatedAt,
	)
	return storageErr("insert purchase", err)
}

// GetByID obtiene la compra con sus líneas.
func (r *PurchaseRepo) GetByID(ctx context.Context, id string) (*entity.Purchase, error) {
	return r.get(ctx, `SELECT `+purchaseColumns+` FROM purchases WHERE id = $1`, id)
}

// GetForUpdate obtiene la compra bloqueando la cabecera hasta el fin de la tx.
func (r *PurchaseRepo) GetForUpdate(ctx context.Context, id string) (*entity.Purchase, error) {
	return r.get(ctx, `SELECT `+purchaseColumns+` FROM purchases WHERE id = $1 FOR UPDATE`, id)
}

func (r *PurchaseRepo) get(ctx context.Context, query, id string) (*entity.Purchase, error) {
	var p entity.Purchase
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Date, &p.WarehouseID, &p.SupplierID, &p.Amount, &p.Shipping, &p.RefCode,
		&p.PaymentTypeID, &p.PaymentStatus, &p.Note, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get purchase", err)
	}
	items, err := r.items(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Items = items
	return &p, nil
}

func (r *PurchaseRepo) items(ctx context.Context, purchaseID string) ([]entity.PurchaseItem, error) {
	query := `
		SELECT id, purchase_id, product_id, quantity, product_cost, sub_total, created_at, updated_at
		FROM purchase_items WHERE purchase_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, purchaseID)
	if err != nil {
		return nil, storageErr("list purchase items", err)
	}
	defer rows.Close()

	items := []entity.PurchaseItem{}
	for rows.Next() {
		var it entity.PurchaseItem
		if err := rows.Scan(&it.ID, &it.PurchaseID, &it.ProductID, &it.Quantity,
			&it.ProductCost, &it.SubTotal, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, storageErr("scan purchase item", err)
		}
		items = append(items, it)
	}
	return items, storageErr("list purchase items", rows.Err())
}

// Update reescribe la cabecera (created_at no cambia).
func (r *PurchaseRepo) Update(ctx context.Context, p *entity.Purchase) error {
	query := `
		UPDATE purchases SET date = $2, warehouse_id = $3, supplier_id = $4, amount = $5, shipping = $6,
			ref_code = $7, payment_type_id = $8, payment_status = $9, note = $10, status = $11, updated_at = $12
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Date, p.WarehouseID, p.SupplierID, p.Amount, p.Shipping,
		p.RefCode, p.PaymentTypeID, p.PaymentStatus, p.Note, p.Status, p.UpdatedAt,
	)
	return storageErr("update purchase", err)
}

func (r *PurchaseRepo) CreateItem(ctx context.Context, it *entity.PurchaseItem) error {
	query := `
		INSERT INTO purchase_items (id, purchase_id, product_id, quantity, product_cost, sub_total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, it.ID, it.PurchaseID, it.ProductID, it.Quantity,
		it.ProductCost, it.SubTotal, it.CreatedAt, it.UpdatedAt)
	return storageErr("insert purchase item", err)
}

func (r *PurchaseRepo) UpdateItem(ctx context.Context, it *entity.PurchaseItem) error {
	query := `UPDATE purchase_items SET quantity = $2, sub_total = $3, updated_at = $4 WHERE id = $1`
	_, err := r.q.Exec(ctx, query, it.ID, it.Quantity, it.SubTotal, it.UpdatedAt)
	return storageErr("update purchase item", err)
}

func (r *PurchaseRepo) DeleteItems(ctx context.Context, purchaseID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM purchase_items WHERE purchase_id = $1`, purchaseID)
	return storageErr("delete purchase items", err)
}
