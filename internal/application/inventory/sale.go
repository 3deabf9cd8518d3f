package inventory

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
)

// CreateSale registra la venta y sus líneas. Con status 0 (confirmada) descuenta cada
// cantidad de la bodega de la venta; si alguna línea no tiene stock suficiente la venta
// completa se rechaza y no queda ninguna línea ni descuento aplicado.
func (uc *MovementUseCase) CreateSale(ctx context.Context, in dto.CreateSaleRequest) (*entity.Sale, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if err := uc.checkWarehouse(ctx, in.WarehouseID); err != nil {
		return nil, err
	}
	if err := uc.checkProducts(ctx, saleProductIDs(in.Items)...); err != nil {
		return nil, err
	}

	now := uc.nowMillis()
	s := &entity.Sale{
		ID:            uc.newID(),
		Date:          uc.dateOr(in.Date),
		WarehouseID:   in.WarehouseID,
		CustomerID:    in.CustomerID,
		UserID:        in.UserID,
		Shipping:      in.Shipping,
		Discount:      in.Discount,
		TaxPercent:    in.TaxPercent,
		PaymentTypeID: in.PaymentTypeID,
		PaymentStatus: in.PaymentStatus,
		Note:          in.Note,
		Status:        in.Status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.Items = uc.newSaleItems(s.ID, in.Items, now)
	s.RecalculateTotals()

	err := uc.run(ctx, "sale.create", func(repos Repos, ledger *inventory.Ledger) error {
		if err := repos.Sales.Create(ctx, s); err != nil {
			return err
		}
		return insertSaleItems(ctx, repos, ledger, s)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("op", "sale.create").
		Str("sale_id", s.ID).
		Int("status", s.Status).
		Int("items", len(s.Items)).
		Msg("venta registrada")
	return s, nil
}

// UpdateSale reemplaza la venta: devuelve al stock lo descontado por la versión anterior
// (si estaba confirmada), aplica los campos presentes, reinserta las líneas y, si el
// nuevo status es 0, descuenta de nuevo con la misma verificación de stock.
func (uc *MovementUseCase) UpdateSale(ctx context.Context, id string, in dto.UpdateSaleRequest) (*entity.Sale, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if in.WarehouseID != nil {
		if err := uc.checkWarehouse(ctx, *in.WarehouseID); err != nil {
			return nil, err
		}
	}
	if err := uc.checkProducts(ctx, saleProductIDs(in.Items)...); err != nil {
		return nil, err
	}

	var out *entity.Sale
	err := uc.withLock(ctx, "sale:"+id, func() error {
		return uc.run(ctx, "sale.update", func(repos Repos, ledger *inventory.Ledger) error {
			old, err := repos.Sales.GetForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if old == nil {
				return domain.NewNotFound("venta", id)
			}

			if old.Status == entity.StatusReceived {
				for _, it := range old.Items {
					if _, err := ledger.ApplyDelta(ctx, it.ProductID, old.WarehouseID, it.Quantity, 0); err != nil {
						return err
					}
				}
			}

			now := uc.nowMillis()
			upd := *old
			applySalePatch(&upd, in)
			upd.UpdatedAt = now
			if in.Items != nil {
				upd.Items = uc.newSaleItems(id, in.Items, now)
			} else {
				upd.Items = uc.reissueSaleItems(old.Items, now)
			}
			upd.RecalculateTotals()

			if err := repos.Sales.Update(ctx, &upd); err != nil {
				return err
			}
			if err := repos.Sales.DeleteItems(ctx, id); err != nil {
				return err
			}
			if err := insertSaleItems(ctx, repos, ledger, &upd); err != nil {
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
		Str("op", "sale.update").
		Str("sale_id", id).
		Int("status", out.Status).
		Int("items", len(out.Items)).
		Msg("venta actualizada")
	return out, nil
}

// GetSale devuelve la venta con sus líneas.
func (uc *MovementUseCase) GetSale(ctx context.Context, id string) (*entity.Sale, error) {
	s, err := uc.reader.Sales.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.NewNotFound("venta", id)
	}
	return s, nil
}

func insertSaleItems(ctx context.Context, repos Repos, ledger *inventory.Ledger, s *entity.Sale) error {
	for i := range s.Items {
		it := &s.Items[i]
		if err := repos.Sales.CreateItem(ctx, it); err != nil {
			return err
		}
		if s.Status != entity.StatusReceived {
			continue
		}
		if _, err := ledger.ApplyDelta(ctx, it.ProductID, s.WarehouseID, -it.Quantity, 0); err != nil {
			return err
		}
	}
	return nil
}

func (uc *MovementUseCase) newSaleItems(saleID string, in []dto.SaleItemRequest, now int64) []entity.SaleItem {
	items := make([]entity.SaleItem, 0, len(in))
	for _, r := range in {
		it := entity.SaleItem{
			ID:           uc.newID(),
			SaleID:       saleID,
			ProductID:    r.ProductID,
			Quantity:     r.Quantity,
			ProductPrice: r.ProductPrice,
			ProductCost:  r.ProductCost,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		it.Recalculate()
		items = append(items, it)
	}
	return items
}

func (uc *MovementUseCase) reissueSaleItems(old []entity.SaleItem, now int64) []entity.SaleItem {
	items := make([]entity.SaleItem, 0, len(old))
	for _, o := range old {
		it := o
		it.ID = uc.newID()
		it.UpdatedAt = now
		it.Recalculate()
		items = append(items, it)
	}
	return items
}

func applySalePatch(s *entity.Sale, in dto.UpdateSaleRequest) {
	if in.Date != nil {
		s.Date = *in.Date
	}
	if in.WarehouseID != nil {
		s.WarehouseID = *in.WarehouseID
	}
	if in.CustomerID != nil {
		s.CustomerID = *in.CustomerID
	}
	if in.Shipping != nil {
		s.Shipping = *in.Shipping
	}
	if in.Discount != nil {
		s.Discount = *in.Discount
	}
	if in.TaxPercent != nil {
		s.TaxPercent = *in.TaxPercent
	}
	if in.PaymentTypeID != nil {
		s.PaymentTypeID = *in.PaymentTypeID
	}
	if in.PaymentStatus != nil {
		s.PaymentStatus = *in.PaymentStatus
	}
	if in.Note != nil {
		s.Note = *in.Note
	}
	if in.Status != nil {
		s.Status = *in.Status
	}
}

func saleProductIDs(items []dto.SaleItemRequest) []string {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	return ids
}
