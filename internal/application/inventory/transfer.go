package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
)

// CreateTransfer mueve stock de una bodega a otra: por cada línea resta en origen
// (falla si no alcanza) y suma en destino, creando la entrada si no existe.
// El traslado aplica siempre, sin importar el status.
func (uc *MovementUseCase) CreateTransfer(ctx context.Context, in dto.CreateTransferRequest) (*entity.Transfer, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if err := uc.checkWarehouse(ctx, in.FromWarehouseID); err != nil {
		return nil, err
	}
	if err := uc.checkWarehouse(ctx, in.ToWarehouseID); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(in.Items))
	for _, it := range in.Items {
		ids = append(ids, it.ProductID)
	}
	if err := uc.checkProducts(ctx, ids...); err != nil {
		return nil, err
	}

	now := uc.nowMillis()
	t := &entity.Transfer{
		ID:              uc.newID(),
		Date:            uc.dateOr(in.Date),
		FromWarehouseID: in.FromWarehouseID,
		ToWarehouseID:   in.ToWarehouseID,
		Shipping:        in.Shipping,
		Note:            in.Note,
		Status:          in.Status,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	amount := decimal.Zero
	for _, r := range in.Items {
		it := entity.TransferItem{
			ID:           uc.newID(),
			TransferID:   t.ID,
			ProductID:    r.ProductID,
			Quantity:     r.Quantity,
			ProductPrice: r.ProductPrice,
			SubTotal:     r.ProductPrice.Mul(decimal.NewFromInt(r.Quantity)),
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		amount = amount.Add(it.SubTotal)
		t.Items = append(t.Items, it)
	}
	t.Amount = amount

	err := uc.run(ctx, "transfer.create", func(repos Repos, ledger *inventory.Ledger) error {
		if err := repos.Transfers.Create(ctx, t); err != nil {
			return err
		}
		for i := range t.Items {
			it := &t.Items[i]
			if err := repos.Transfers.CreateItem(ctx, it); err != nil {
				return err
			}
			if _, err := ledger.ApplyDelta(ctx, it.ProductID, t.FromWarehouseID, -it.Quantity, 0); err != nil {
				return err
			}
			if _, err := ledger.ApplyDelta(ctx, it.ProductID, t.ToWarehouseID, it.Quantity, 0); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("op", "transfer.create").
		Str("transfer_id", t.ID).
		Str("from", t.FromWarehouseID).
		Str("to", t.ToWarehouseID).
		Int("items", len(t.Items)).
		Msg("traslado registrado")
	return t, nil
}

// GetTransfer devuelve el traslado con sus líneas.
func (uc *MovementUseCase) GetTransfer(ctx context.Context, id string) (*entity.Transfer, error) {
	t, err := uc.reader.Transfers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.NewNotFound("traslado", id)
	}
	return t, nil
}

// RegisterLostDamaged da de baja la cantidad perdida o dañada de la bodega (falla si no alcanza).
func (uc *MovementUseCase) RegisterLostDamaged(ctx context.Context, in dto.LostDamagedRequest) (*entity.LostDamaged, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if err := uc.checkWarehouse(ctx, in.WarehouseID); err != nil {
		return nil, err
	}
	if err := uc.checkProducts(ctx, in.ProductID); err != nil {
		return nil, err
	}

	now := uc.nowMillis()
	ld := &entity.LostDamaged{
		ID:          uc.newID(),
		Date:        uc.dateOr(in.Date),
		WarehouseID: in.WarehouseID,
		ProductID:   in.ProductID,
		Quantity:    in.Quantity,
		Reason:      in.Reason,
		Note:        in.Note,
		Amount:      in.Amount,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := uc.run(ctx, "lost_damaged.create", func(repos Repos, ledger *inventory.Ledger) error {
		if err := repos.LostDamaged.Create(ctx, ld); err != nil {
			return err
		}
		_, err := ledger.ApplyDelta(ctx, ld.ProductID, ld.WarehouseID, -ld.Quantity, 0)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("op", "lost_damaged.create").
		Str("id", ld.ID).
		Str("product_id", ld.ProductID).
		Int64("quantity", ld.Quantity).
		Msg("baja registrada")
	return ld, nil
}
