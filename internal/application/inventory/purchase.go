package inventory

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
)

// CreatePurchase registra la compra y sus líneas. Con status 0 (recibida) suma cada
// cantidad al stock de la bodega de la compra; pendiente no toca el stock.
func (uc *MovementUseCase) CreatePurchase(ctx context.Context, in dto.CreatePurchaseRequest) (*entity.Purchase, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if err := uc.checkWarehouse(ctx, in.WarehouseID); err != nil {
		return nil, err
	}
	if err := uc.checkProducts(ctx, purchaseProductIDs(in.Items)...); err != nil {
		return nil, err
	}

	now := uc.nowMillis()
	p := &entity.Purchase{
		ID:            uc.newID(),
		Date:          uc.dateOr(in.Date),
		WarehouseID:   in.WarehouseID,
		SupplierID:    in.SupplierID,
		Shipping:      in.Shipping,
		RefCode:       in.RefCode,
		PaymentTypeID: in.PaymentTypeID,
		PaymentStatus: in.PaymentStatus,
		Note:          in.Note,
		Status:        in.Status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	p.Items = uc.newPurchaseItems(p.ID, in.Items, now)
	p.RecalculateTotals()

	err := uc.run(ctx, "purchase.create", func(repos Repos, ledger *inventory.Ledger) error {
		if err := repos.Purchases.Create(ctx, p); err != nil {
			return err
		}
		return insertPurchaseItems(ctx, repos, ledger, p)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("op", "purchase.create").
		Str("purchase_id", p.ID).
		Int("status", p.Status).
		Int("items", len(p.Items)).
		Msg("compra registrada")
	return p, nil
}

// UpdatePurchase reemplaza la compra: revierte el efecto en stock de la versión anterior
// (si estaba recibida), aplica los campos presentes, borra y reinserta las líneas y,
// si el nuevo status es 0, vuelve a sumar el stock. Todo en una sola transacción.
func (uc *MovementUseCase) UpdatePurchase(ctx context.Context, id string, in dto.UpdatePurchaseRequest) (*entity.Purchase, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if in.WarehouseID != nil {
		if err := uc.checkWarehouse(ctx, *in.WarehouseID); err != nil {
			return nil, err
		}
	}
	if err := uc.checkProducts(ctx, purchaseProductIDs(in.Items)...); err != nil {
		return nil, err
	}

	var out *entity.Purchase
	err := uc.withLock(ctx, "purchase:"+id, func() error {
		return uc.run(ctx, "purchase.update", func(repos Repos, ledger *inventory.Ledger) error {
			old, err := repos.Purchases.GetForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if old == nil {
				return domain.NewNotFound("compra", id)
			}

			if old.Status == entity.StatusReceived {
				for _, it := range old.Items {
					if _, err := ledger.ApplyDelta(ctx, it.ProductID, old.WarehouseID, -it.Quantity, 0); err != nil {
						return err
					}
				}
			}

			now := uc.nowMillis()
			upd := *old
			applyPurchasePatch(&upd, in)
			upd.UpdatedAt = now
			if in.Items != nil {
				upd.Items = uc.newPurchaseItems(id, in.Items, now)
			} else {
				upd.Items = uc.reissuePurchaseItems(old.Items, now)
			}
			upd.RecalculateTotals()

			if err := repos.Purchases.Update(ctx, &upd); err != nil {
				return err
			}
			if err := repos.Purchases.DeleteItems(ctx, id); err != nil {
				return err
			}
			if err := insertPurchaseItems(ctx, repos, ledger, &upd); err != nil {
				return err
			}
			out = &upd
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("op", "purchase.update").
		Str("purchase_id", id).
		Int("status", out.Status).
		Int("items", len(out.Items)).
		Msg("compra actualizada")
	return out, nil
}

// GetPurchase devuelve la compra con sus líneas.
func (uc *MovementUseCase) GetPurchase(ctx context.Context, id string) (*entity.Purchase, error) {
	p, err := uc.reader.Purchases.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NewNotFound("compra", id)
	}
	return p, nil
}

// insertPurchaseItems inserta cada línea y, si la compra está recibida, suma su cantidad.
func insertPurchaseItems(ctx context.Context, repos Repos, ledger *inventory.Ledger, p *entity.Purchase) error {
	for i := range p.Items {
		it := &p.Items[i]
		if err := repos.Purchases.CreateItem(ctx, it); err != nil {
			return err
		}
		if p.Status != entity.StatusReceived {
			continue
		}
		if _, err := ledger.ApplyDelta(ctx, it.ProductID, p.WarehouseID, it.Quantity, 0); err != nil {
			return err
		}
	}
	return nil
}

func (uc *MovementUseCase) newPurchaseItems(purchaseID string, in []dto.PurchaseItemRequest, now int64) []entity.PurchaseItem {
	items := make([]entity.PurchaseItem, 0, len(in))
	for _, r := range in {
		it := entity.PurchaseItem{
			ID:          uc.newID(),
			PurchaseID:  purchaseID,
			ProductID:   r.ProductID,
			Quantity:    r.Quantity,
			ProductCost: r.ProductCost,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		it.Recalculate()
		items = append(items, it)
	}
	return items
}

// reissuePurchaseItems copia las líneas actuales con IDs nuevos (se borran y reinsertan).
func (uc *MovementUseCase) reissuePurchaseItems(old []entity.PurchaseItem, now int64) []entity.PurchaseItem {
	items := make([]entity.PurchaseItem, 0, len(old))
	for _, o := range old {
		it := o
		it.ID = uc.newID()
		it.UpdatedAt = now
		it.Recalculate()
		items = append(items, it)
	}
	return items
}

func applyPurchasePatch(p *entity.Purchase, in dto.UpdatePurchaseRequest) {
	if in.Date != nil {
		p.Date = *in.Date
	}
	if in.WarehouseID != nil {
		p.WarehouseID = *in.WarehouseID
	}
	if in.SupplierID != nil {
		p.SupplierID = *in.SupplierID
	}
	if in.Shipping != nil {
		p.Shipping = *in.Shipping
	}
	if in.RefCode != nil {
		p.RefCode = *in.RefCode
	}
	if in.PaymentTypeID != nil {
		p.PaymentTypeID = *in.PaymentTypeID
	}
	if in.PaymentStatus != nil {
		p.PaymentStatus = *in.PaymentStatus
	}
	if in.Note != nil {
		p.Note = *in.Note
	}
	if in.Status != nil {
		p.Status = *in.Status
	}
}

func purchaseProductIDs(items []dto.PurchaseItemRequest) []string {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	return ids
}
