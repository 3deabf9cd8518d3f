package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var (
	_ repository.TransferRepository    = (*TransferRepo)(nil)
	_ repository.LostDamagedRepository = (*LostDamagedRepo)(nil)
)

// TransferRepo traslados entre bodegas.
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador de traslados.
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

func (r *TransferRepo) Create(ctx context.Context, t *entity.Transfer) error {
	query := `
		INSERT INTO transfers (id, date, from_warehouse_id, to_warehouse_id, amount, shipping, note, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query, t.ID, t.Date, t.FromWarehouseID, t.ToWarehouseID, t.Amount,
		t.Shipping, t.Note, t.Status, t.CreatedAt, t.UpdatedAt)
	return storageErr("insert transfer", err)
}

func (r *TransferRepo) CreateItem(ctx context.Context, it *entity.TransferItem) error {
	query := `
		INSERT INTO transfer_items (id, transfer_id, product_id, quantity, product_price, sub_total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, it.ID, it.TransferID, it.ProductID, it.Quantity,
		it.ProductPrice, it.SubTotal, it.CreatedAt, it.UpdatedAt)
	return storageErr("insert transfer item", err)
}

// GetByID obtiene el traslado con sus líneas; nil, nil si no existe.
func (r *TransferRepo) GetByID(ctx context.Context, id string) (*entity.Transfer, error) {
	var t entity.Transfer
	err := r.q.QueryRow(ctx, `
		SELECT id, date, from_warehouse_id, to_warehouse_id, amount, shipping, note, status, created_at, updated_at
		FROM transfers WHERE id = $1`, id).Scan(
		&t.ID, &t.Date, &t.FromWarehouseID, &t.ToWarehouseID, &t.Amount,
		&t.Shipping, &t.Note, &t.Status, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get transfer", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, transfer_id, product_id, quantity, product_price, sub_total, created_at, updated_at
		FROM transfer_items WHERE transfer_id = $1 ORDER BY created_at, id`, id)
	if err != nil {
		return nil, storageErr("list transfer items", err)
	}
	defer rows.Close()

	t.Items = []entity.TransferItem{}
	for rows.Next() {
		var it entity.TransferItem
		if err := rows.Scan(&it.ID, &it.TransferID, &it.ProductID, &it.Quantity,
			&it.ProductPrice, &it.SubTotal, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, storageErr("scan transfer item", err)
		}
		t.Items = append(t.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list transfer items", err)
	}
	return &t, nil
}

// LostDamagedRepo bajas por pérdida o daño.
type LostDamagedRepo struct {
	q Querier
}

func NewLostDamagedRepository(q Querier) *LostDamagedRepo {
	return &LostDamagedRepo{q: q}
}

func (r *LostDamagedRepo) Create(ctx context.Context, ld *entity.LostDamaged) error {
	query := `
		INSERT INTO lost_damaged (id, date, warehouse_id, product_id, quantity, reason, note, amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query, ld.ID, ld.Date, ld.WarehouseID, ld.ProductID, ld.Quantity,
		ld.Reason, ld.Note, ld.Amount, ld.CreatedAt, ld.UpdatedAt)
	return storageErr("insert lost_damaged", err)
}
