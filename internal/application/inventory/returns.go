package inventory

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
)

// CreatePurchaseReturn devuelve mercancía al proveedor. Por cada producto devuelto:
// descuenta el stock en la bodega de la compra (falla si no alcanza), reduce la línea
// de compra y recalcula su subtotal. El monto de la compra baja en lo devuelto.
func (uc *MovementUseCase) CreatePurchaseReturn(ctx context.Context, purchaseID string, in dto.CreateReturnRequest) (*entity.PurchaseReturn, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}

	var out *entity.PurchaseReturn
	err := uc.withLock(ctx, "purchase:"+purchaseID, func() error {
		return uc.run(ctx, "purchase_return.create", func(repos Repos, ledger *inventory.Ledger) error {
			p, err := repos.Purchases.GetForUpdate(ctx, purchaseID)
			if err != nil {
				return err
			}
			if p == nil {
				return domain.NewNotFound("compra", purchaseID)
			}
			if p.Status != entity.StatusReceived {
				return domain.NewValidationError("purchase_id", "not_received")
			}

			now := uc.nowMillis()
			r := &entity.PurchaseReturn{
				ID:          uc.newID(),
				PurchaseID:  p.ID,
				WarehouseID: p.WarehouseID,
				Date:        uc.dateOr(in.Date),
				Note:        in.Note,
				Status:      in.Status,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			touched := make([]int, 0, len(in.Items))
			total := decimal.Zero
			for i, req := range in.Items {
				idxs := purchaseLines(p.Items, req.ProductID)
				if len(idxs) == 0 {
					return domain.NewNotFound("línea de compra", req.ProductID)
				}
				parts, ok := spread(idxs, func(j int) int64 { return p.Items[j].Quantity }, req.Quantity)
				if !ok {
					return domain.NewValidationError(fmt.Sprintf("items[%d].quantity", i), "max")
				}
				for _, part := range parts {
					line := &p.Items[part.idx]
					line.Quantity -= part.qty
					line.Recalculate()
					line.UpdatedAt = now
					touched = append(touched, part.idx)

					sub := line.ProductCost.Mul(decimal.NewFromInt(part.qty))
					total = total.Add(sub)
					r.Items = append(r.Items, entity.PurchaseReturnItem{
						ID:               uc.newID(),
						PurchaseReturnID: r.ID,
						ProductID:        req.ProductID,
						Quantity:         part.qty,
						ProductCost:      line.ProductCost,
						SubTotal:         sub,
						CreatedAt:        now,
						UpdatedAt:        now,
					})
				}
			}
			r.TotalAmount = total

			if err := repos.Returns.CreatePurchaseReturn(ctx, r); err != nil {
				return err
			}
			for i := range r.Items {
				it := &r.Items[i]
				if err := repos.Returns.CreatePurchaseReturnItem(ctx, it); err != nil {
					return err
				}
				if _, err := ledger.ApplyDelta(ctx, it.ProductID, p.WarehouseID, -it.Quantity, 0); err != nil {
					return err
				}
			}
			for _, idx := range uniqueInts(touched) {
				if err := repos.Purchases.UpdateItem(ctx, &p.Items[idx]); err != nil {
					return err
				}
			}
			p.Amount = p.Amount.Sub(total)
			p.UpdatedAt = now
			if err := repos.Purchases.Update(ctx, p); err != nil {
				return err
			}
			out = r
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("op", "purchase_return.create").
		Str("purchase_id", purchaseID).
		Str("return_id", out.ID).
		Str("total", out.TotalAmount.String()).
		Msg("devolución de compra registrada")
	return out, nil
}

// CreateSalesReturn registra la devolución de un cliente. Por cada producto devuelto:
// suma el stock en la bodega de la venta, reduce la línea de venta y recalcula subtotal
// y utilidad. La venta baja su monto y recalcula impuesto y total con el descuento y
// porcentaje de impuesto guardados.
func (uc *MovementUseCase) CreateSalesReturn(ctx context.Context, saleID string, in dto.CreateReturnRequest) (*entity.SalesReturn, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}

	var out *entity.SalesReturn
	err := uc.withLock(ctx, "sale:"+saleID, func() error {
		return uc.run(ctx, "sales_return.create", func(repos Repos, ledger *inventory.Ledger) error {
			s, err := repos.Sales.GetForUpdate(ctx, saleID)
			if err != nil {
				return err
			}
			if s == nil {
				return domain.NewNotFound("venta", saleID)
			}
			if s.Status != entity.StatusReceived {
				return domain.NewValidationError("sale_id", "not_committed")
			}

			now := uc.nowMillis()
			r := &entity.SalesReturn{
				ID:          uc.newID(),
				SaleID:      s.ID,
				WarehouseID: s.WarehouseID,
				Date:        uc.dateOr(in.Date),
				Note:        in.Note,
				Status:      in.Status,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			touched := make([]int, 0, len(in.Items))
			total := decimal.Zero
			for i, req := range in.Items {
				idxs := saleLines(s.Items, req.ProductID)
				if len(idxs) == 0 {
					return domain.NewNotFound("línea de venta", req.ProductID)
				}
				parts, ok := spread(idxs, func(j int) int64 { return s.Items[j].Quantity }, req.Quantity)
				if !ok {
					return domain.NewValidationError(fmt.Sprintf("items[%d].quantity", i), "max")
				}
				for _, part := range parts {
					line := &s.Items[part.idx]
					line.Quantity -= part.qty
					line.Recalculate()
					line.UpdatedAt = now
					touched = append(touched, part.idx)

					sub := line.ProductPrice.Mul(decimal.NewFromInt(part.qty))
					total = total.Add(sub)
					r.Items = append(r.Items, entity.SalesReturnItem{
						ID:            uc.newID(),
						SalesReturnID: r.ID,
						ProductID:     req.ProductID,
						Quantity:      part.qty,
						ProductPrice:  line.ProductPrice,
						ProductCost:   line.ProductCost,
						SubTotal:      sub,
						CreatedAt:     now,
						UpdatedAt:     now,
					})
				}
			}
			r.TotalAmount = total

			if err := repos.Returns.CreateSalesReturn(ctx, r); err != nil {
				return err
			}
			for i := range r.Items {
				it := &r.Items[i]
				if err := repos.Returns.CreateSalesReturnItem(ctx, it); err != nil {
					return err
				}
				if _, err := ledger.ApplyDelta(ctx, it.ProductID, s.WarehouseID, it.Quantity, 0); err != nil {
					return err
				}
			}
			for _, idx := range uniqueInts(touched) {
				if err := repos.Sales.UpdateItem(ctx, &s.Items[idx]); err != nil {
					return err
				}
			}
			s.Amount = s.Amount.Sub(total)
			s.ApplyTax()
			s.UpdatedAt = now
			if err := repos.Sales.Update(ctx, s); err != nil {
				return err
			}
			out = r
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("op", "sales_return.create").
		Str("sale_id", saleID).
		Str("return_id", out.ID).
		Str("total", out.TotalAmount.String()).
		Msg("devolución de venta registrada")
	return out, nil
}

// GetPurchaseReturn devuelve la devolución de compra con sus líneas.
func (uc *MovementUseCase) GetPurchaseReturn(ctx context.Context, id string) (*entity.PurchaseReturn, error) {
	r, err := uc.reader.Returns.GetPurchaseReturn(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.NewNotFound("devolución de compra", id)
	}
	return r, nil
}

// GetSalesReturn devuelve la devolución de venta con sus líneas.
func (uc *MovementUseCase) GetSalesReturn(ctx context.Context, id string) (*entity.SalesReturn, error) {
	r, err := uc.reader.Returns.GetSalesReturn(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.NewNotFound("devolución de venta", id)
	}
	return r, nil
}

// portion cantidad devuelta que se toma de una línea del documento.
type portion struct {
	idx int
	qty int64
}

// spread reparte want entre las líneas idxs en orden, tomando de cada una hasta su cantidad.
// ok es false si entre todas no alcanzan.
func spread(idxs []int, qty func(int) int64, want int64) (parts []portion, ok bool) {
	for _, i := range idxs {
		if want == 0 {
			break
		}
		take := min(qty(i), want)
		if take <= 0 {
			continue
		}
		parts = append(parts, portion{idx: i, qty: take})
		want -= take
	}
	return parts, want == 0
}

// purchaseLines índices de las líneas del producto, en el orden de la compra.
func purchaseLines(items []entity.PurchaseItem, productID string) []int {
	var idxs []int
	for i := range items {
		if items[i].ProductID == productID {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

func saleLines(items []entity.SaleItem, productID string) []int {
	var idxs []int
	for i := range items {
		if items[i].ProductID == productID {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

func uniqueInts(in []int) []int {
	seen := make(map[int]struct{}, len(in))
	out := make([]int, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
