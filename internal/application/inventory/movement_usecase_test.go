package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

func assertDec(t *testing.T, want decimal.Decimal, got decimal.Decimal, msg string) {
	t.Helper()
	assert.Truef(t, want.Equal(got), "%s: esperado %s, obtenido %s", msg, want, got)
}

func purchaseReq(wh string, status int, items ...dto.PurchaseItemRequest) dto.CreatePurchaseRequest {
	return dto.CreatePurchaseRequest{WarehouseID: wh, SupplierID: "sup-1", Status: status, Items: items}
}

func saleReq(wh string, status int, items ...dto.SaleItemRequest) dto.CreateSaleRequest {
	return dto.CreateSaleRequest{WarehouseID: wh, CustomerID: "cus-1", Status: status, Items: items}
}

func intPtr(v int) *int { return &v }

// ── Compra → venta → devolución ──────────────────────────────────────────────

func TestMovement_PurchaseSaleReturnScenario(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	p, err := f.uc.CreatePurchase(ctx, purchaseReq(whW, entity.StatusReceived,
		dto.PurchaseItemRequest{ProductID: prodP, Quantity: 10, ProductCost: dec(5)}))
	require.NoError(t, err)
	assert.Equal(t, int64(10), f.store.qty(prodP, whW))
	require.Len(t, p.Items, 1)
	assertDec(t, dec(50), p.Items[0].SubTotal, "subtotal compra")
	assertDec(t, dec(50), p.Amount, "monto compra")
	assert.Equal(t, testNow.UnixMilli(), p.CreatedAt)

	s, err := f.uc.CreateSale(ctx, saleReq(whW, entity.StatusReceived,
		dto.SaleItemRequest{ProductID: prodP, Quantity: 4, ProductPrice: dec(8), ProductCost: dec(5)}))
	require.NoError(t, err)
	assert.Equal(t, int64(6), f.store.qty(prodP, whW))
	require.Len(t, s.Items, 1)
	assertDec(t, dec(32), s.Items[0].SubTotal, "subtotal venta")
	assertDec(t, dec(12), s.Items[0].Profit, "utilidad venta")

	r, err := f.uc.CreateSalesReturn(ctx, s.ID, dto.CreateReturnRequest{
		Items: []dto.ReturnItemRequest{{ProductID: prodP, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), f.store.qty(prodP, whW))
	assert.Equal(t, whW, r.WarehouseID)
	assertDec(t, dec(8), r.TotalAmount, "total devolución")

	got, err := f.uc.GetSale(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, int64(3), got.Items[0].Quantity)
	assertDec(t, dec(24), got.Items[0].SubTotal, "subtotal tras devolución")
	assertDec(t, dec(9), got.Items[0].Profit, "utilidad tras devolución")
	assertDec(t, dec(24), got.Amount, "monto tras devolución")

	stored, err := f.uc.GetSalesReturn(ctx, r.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
	assertDec(t, dec(8), stored.Items[0].ProductPrice, "precio de la línea original")
}

func TestMovement_SaleInsufficientStockRollsBack(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.store.seedStock(prodP, whW, 6)

	_, err := f.uc.CreateSale(ctx, saleReq(whW, entity.StatusReceived,
		dto.SaleItemRequest{ProductID: prodP, Quantity: 20, ProductPrice: dec(8), ProductCost: dec(5)}))

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	var se *domain.StockError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, int64(20), se.Requested)
	assert.Equal(t, int64(6), se.Available)

	assert.Equal(t, int64(6), f.store.qty(prodP, whW))
	assert.Empty(t, f.store.st.sales, "la cabecera no debe persistir")
	assert.Empty(t, f.store.st.saleItems, "no deben quedar líneas")
	assert.Equal(t, 0, f.cache.n, "sin commit no se invalida la caché")
}

func TestMovement_SaleMultiLineFailsAtomically(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.store.seedStock(prodP, whW, 5)

	// la primera línea alcanza, la segunda no tiene entrada
	_, err := f.uc.CreateSale(ctx, saleReq(whW, entity.StatusReceived,
		dto.SaleItemRequest{ProductID: prodP, Quantity: 2, ProductPrice: dec(8), ProductCost: dec(5)},
		dto.SaleItemRequest{ProductID: prodQ, Quantity: 1, ProductPrice: dec(3), ProductCost: dec(2)},
	))

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrStockNotFound))
	assert.Equal(t, int64(5), f.store.qty(prodP, whW), "el descuento de la primera línea se revierte")
	assert.False(t, f.store.hasStock(prodQ, whW))
}

func TestMovement_StorageFailureRollsBack(t *testing.T) {
	f := newFixture()
	f.store.failOn = "purchase.createItem"

	_, err := f.uc.CreatePurchase(context.Background(), purchaseReq(whW, entity.StatusReceived,
		dto.PurchaseItemRequest{ProductID: prodP, Quantity: 3, ProductCost: dec(5)}))

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrStorage))
	assert.Empty(t, f.store.st.purchases)
	assert.False(t, f.store.hasStock(prodP, whW))
}

func TestMovement_SaleTaxAndDiscount(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.store.seedStock(prodP, whW, 10)

	req := saleReq(whW, entity.StatusReceived,
		dto.SaleItemRequest{ProductID: prodP, Quantity: 4, ProductPrice: dec(8), ProductCost: dec(5)})
	req.Shipping = dec(1)
	req.Discount = dec(2)
	req.TaxPercent = dec(10)

	s, err := f.uc.CreateSale(ctx, req)
	require.NoError(t, err)
	assertDec(t, dec(32), s.Amount, "monto")
	assertDec(t, dec(3), s.TaxAmount, "impuesto")
	assertDec(t, dec(34), s.TotalAmount, "total")

	_, err = f.uc.CreateSalesReturn(ctx, s.ID, dto.CreateReturnRequest{
		Items: []dto.ReturnItemRequest{{ProductID: prodP, Quantity: 1}},
	})
	require.NoError(t, err)

	got, err := f.uc.GetSale(ctx, s.ID)
	require.NoError(t, err)
	assertDec(t, dec(24), got.Amount, "monto tras devolución")
	assertDec(t, decimal.RequireFromString("2.2"), got.TaxAmount, "impuesto tras devolución")
	assertDec(t, decimal.RequireFromString("25.2"), got.TotalAmount, "total tras devolución")
}

// ── Traslados y bajas ────────────────────────────────────────────────────────

func TestMovement_TransferConservesTotal(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.store.seedStock(prodP, whW, 10)

	tr, err := f.uc.CreateTransfer(ctx, dto.CreateTransferRequest{
		FromWarehouseID: whW,
		ToWarehouseID:   whB,
		Items:           []dto.TransferItemRequest{{ProductID: prodP, Quantity: 4, ProductPrice: dec(8)}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(6), f.store.qty(prodP, whW))
	assert.Equal(t, int64(4), f.store.qty(prodP, whB))
	assert.Equal(t, int64(10), f.store.qty(prodP, whW)+f.store.qty(prodP, whB))
	assertDec(t, dec(32), tr.Amount, "monto traslado")

	got, err := f.uc.GetTransfer(ctx, tr.ID)
	require.NoError(t, err)
	assert.Len(t, got.Items, 1)
}

func TestMovement_TransferInsufficientLeavesBothUntouched(t *testing.T) {
	f := newFixture()
	f.store.seedStock(prodP, whW, 3)

	_, err := f.uc.CreateTransfer(context.Background(), dto.CreateTransferRequest{
		FromWarehouseID: whW,
		ToWarehouseID:   whB,
		Items:           []dto.TransferItemRequest{{ProductID: prodP, Quantity: 4, ProductPrice: dec(8)}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.Equal(t, int64(3), f.store.qty(prodP, whW))
	assert.False(t, f.store.hasStock(prodP, whB))
	assert.Empty(t, f.store.st.transfers)
}

func TestMovement_TransferSameWarehouseRejected(t *testing.T) {
	f := newFixture()
	_, err := f.uc.CreateTransfer(context.Background(), dto.CreateTransferRequest{
		FromWarehouseID: whW,
		ToWarehouseID:   whW,
		Items:           []dto.TransferItemRequest{{ProductID: prodP, Quantity: 1}},
	})
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "to_warehouse_id")
	assert.Equal(t, 0, f.store.runs)
}

func TestMovement_LostDamaged(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.store.seedStock(prodP, whW, 5)

	ld, err := f.uc.RegisterLostDamaged(ctx, dto.LostDamagedRequest{
		WarehouseID: whW, ProductID: prodP, Quantity: 2, Reason: "vencido",
	})
	require.NoError(t, err)
	assert.Equal(t, "vencido", ld.Reason)
	assert.Equal(t, int64(3), f.store.qty(prodP, whW))

	_, err = f.uc.RegisterLostDamaged(ctx, dto.LostDamagedRequest{
		WarehouseID: whW, ProductID: prodP, Quantity: 4, Reason: "robo",
	})
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.Equal(t, int64(3), f.store.qty(prodP, whW))
	assert.Len(t, f.store.st.lostDamaged, 1)
}

// ── Pendientes y edición ─────────────────────────────────────────────────────

func TestMovement_PendingPurchaseIsInertUntilReceived(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	p, err := f.uc.CreatePurchase(ctx, purchaseReq(whW, entity.StatusPending,
		dto.PurchaseItemRequest{ProductID: prodP, Quantity: 7, ProductCost: dec(5)}))
	require.NoError(t, err)
	assert.False(t, f.store.hasStock(prodP, whW))

	// sin Items: se reaplican las líneas actuales
	upd, err := f.uc.UpdatePurchase(ctx, p.ID, dto.UpdatePurchaseRequest{Status: intPtr(entity.StatusReceived)})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusReceived, upd.Status)
	assert.Equal(t, int64(7), f.store.qty(prodP, whW))
	require.Len(t, upd.Items, 1)
	assert.NotEqual(t, p.Items[0].ID, upd.Items[0].ID, "las líneas se reinsertan con id nuevo")
	assert.Equal(t, []string{"purchase:" + p.ID}, f.locker.keys)
}

func TestMovement_PendingSaleDoesNotTouchStock(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	s, err := f.uc.CreateSale(ctx, saleReq(whW, entity.StatusPending,
		dto.SaleItemRequest{ProductID: prodP, Quantity: 3, ProductPrice: dec(8), ProductCost: dec(5)}))
	require.NoError(t, err)
	assert.False(t, f.store.hasStock(prodP, whW))

	// confirmarla sin stock falla y deja la venta pendiente
	_, err = f.uc.UpdateSale(ctx, s.ID, dto.UpdateSaleRequest{Status: intPtr(entity.StatusReceived)})
	assert.True(t, errors.Is(err, domain.ErrStockNotFound))
	got, err := f.uc.GetSale(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPending, got.Status)
	assert.Equal(t, s.Items[0].ID, got.Items[0].ID)
}

func TestMovement_UpdatePurchaseReversesOldQuantity(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	p, err := f.uc.CreatePurchase(ctx, purchaseReq(whW, entity.StatusReceived,
		dto.PurchaseItemRequest{ProductID: prodP, Quantity: 10, ProductCost: dec(5)}))
	require.NoError(t, err)

	upd, err := f.uc.UpdatePurchase(ctx, p.ID, dto.UpdatePurchaseRequest{
		Items: []dto.PurchaseItemRequest{{ProductID: prodP, Quantity: 4, ProductCost: dec(6)}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), f.store.qty(prodP, whW))
	assertDec(t, dec(24), upd.Amount, "monto recalculado")
	assert.Len(t, f.store.st.purchaseItems[p.ID], 1)
}

func TestMovement_UpdatePurchaseReversalBlockedBySales(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	p, err := f.uc.CreatePurchase(ctx, purchaseReq(whW, entity.StatusReceived,
		dto.PurchaseItemRequest{ProductID: prodP, Quantity: 10, ProductCost: dec(5)}))
	require.NoError(t, err)
	_, err = f.uc.CreateSale(ctx, saleReq(whW, entity.StatusReceived,
		dto.SaleItemRequest{ProductID: prodP, Quantity: 8, ProductPrice: dec(8), ProductCost: dec(5)}))
	require.NoError(t, err)

	// revertir 10 con solo 2 en bodega no es posible
	_, err = f.uc.UpdatePurchase(ctx, p.ID, dto.UpdatePurchaseRequest{Status: intPtr(entity.StatusPending)})
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.Equal(t, int64(2), f.store.qty(prodP, whW))

	got, err := f.uc.GetPurchase(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusReceived, got.Status)
}

func TestMovement_UpdateSaleMovesWarehouse(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.store.seedStock(prodP, whW, 5)
	f.store.seedStock(prodP, whB, 5)

	s, err := f.uc.CreateSale(ctx, saleReq(whW, entity.StatusReceived,
		dto.SaleItemRequest{ProductID: prodP, Quantity: 2, ProductPrice: dec(8), ProductCost: dec(5)}))
	require.NoError(t, err)
	assert.Equal(t, int64(3), f.store.qty(prodP, whW))

	wh := whB
	_, err = f.uc.UpdateSale(ctx, s.ID, dto.UpdateSaleRequest{WarehouseID: &wh})
	require.NoError(t, err)
	assert.Equal(t, int64(5), f.store.qty(prodP, whW))
	assert.Equal(t, int64(3), f.store.qty(prodP, whB))
}

func TestMovement_UpdateSaleSameWarehouseReversesFirst(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.store.seedStock(prodP, whW, 6)

	s, err := f.uc.CreateSale(ctx, saleReq(whW, entity.StatusReceived,
		dto.SaleItemRequest{ProductID: prodP, Quantity: 4, ProductPrice: dec(8), ProductCost: dec(5)}))
	require.NoError(t, err)
	require.Equal(t, int64(2), f.store.qty(prodP, whW))

	t.Run("nueva cantidad cabe tras revertir", func(t *testing.T) {
		// +4 de la versión anterior, luego -5
		got, err := f.uc.UpdateSale(ctx, s.ID, dto.UpdateSaleRequest{
			Items: []dto.SaleItemRequest{{ProductID: prodP, Quantity: 5, ProductPrice: dec(8), ProductCost: dec(5)}},
		})
		require.NoError(t, err)
		require.Len(t, got.Items, 1)
		assert.Equal(t, int64(5), got.Items[0].Quantity)
		assert.Equal(t, int64(1), f.store.qty(prodP, whW))
	})

	t.Run("nueva cantidad excede stock más lo revertido", func(t *testing.T) {
		// disponible tras revertir: 1 + 5 = 6
		_, err := f.uc.UpdateSale(ctx, s.ID, dto.UpdateSaleRequest{
			Items: []dto.SaleItemRequest{{ProductID: prodP, Quantity: 7, ProductPrice: dec(8), ProductCost: dec(5)}},
		})
		assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
		assert.Equal(t, int64(1), f.store.qty(prodP, whW))

		got, err := f.uc.GetSale(ctx, s.ID)
		require.NoError(t, err)
		require.Len(t, got.Items, 1)
		assert.Equal(t, int64(5), got.Items[0].Quantity)
	})
}

func TestMovement_UpdateUnknownAndLocked(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.uc.UpdatePurchase(ctx, "nope", dto.UpdatePurchaseRequest{})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	f.locker.busy["sale:s-1"] = true
	_, err = f.uc.UpdateSale(ctx, "s-1", dto.UpdateSaleRequest{})
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

// ── Devoluciones de compra ───────────────────────────────────────────────────

func TestMovement_PurchaseReturnFailsClosed(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	p, err := f.uc.CreatePurchase(ctx, purchaseReq(whW, entity.StatusReceived,
		dto.PurchaseItemRequest{ProductID: prodP, Quantity: 10, ProductCost: dec(5)}))
	require.NoError(t, err)
	_, err = f.uc.CreateSale(ctx, saleReq(whW, entity.StatusReceived,
		dto.SaleItemRequest{ProductID: prodP, Quantity: 8, ProductPrice: dec(8), ProductCost: dec(5)}))
	require.NoError(t, err)

	_, err = f.uc.CreatePurchaseReturn(ctx, p.ID, dto.CreateReturnRequest{
		Items: []dto.ReturnItemRequest{{ProductID: prodP, Quantity: 5}},
	})
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.Equal(t, int64(2), f.store.qty(prodP, whW))
	assert.Empty(t, f.store.st.pReturns)

	got, err := f.uc.GetPurchase(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), got.Items[0].Quantity)
	assertDec(t, dec(50), got.Amount, "monto sin cambios")
}

func TestMovement_PurchaseReturnAdjustsLine(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	p, err := f.uc.CreatePurchase(ctx, purchaseReq(whW, entity.StatusReceived,
		dto.PurchaseItemRequest{ProductID: prodP, Quantity: 10, ProductCost: dec(5)}))
	require.NoError(t, err)

	r, err := f.uc.CreatePurchaseReturn(ctx, p.ID, dto.CreateReturnRequest{
		Items: []dto.ReturnItemRequest{{ProductID: prodP, Quantity: 3}},
	})
	require.NoError(t, err)
	assertDec(t, dec(15), r.TotalAmount, "total devolución")
	assert.Equal(t, int64(7), f.store.qty(prodP, whW))

	got, err := f.uc.GetPurchase(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.Items[0].Quantity)
	assertDec(t, dec(35), got.Items[0].SubTotal, "subtotal línea")
	assertDec(t, dec(35), got.Amount, "monto compra")

	stored, err := f.uc.GetPurchaseReturn(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, stored.PurchaseID)
	assert.Len(t, stored.Items, 1)
}

func TestMovement_ReturnValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	p, err := f.uc.CreatePurchase(ctx, purchaseReq(whW, entity.StatusReceived,
		dto.PurchaseItemRequest{ProductID: prodP, Quantity: 2, ProductCost: dec(5)}))
	require.NoError(t, err)
	pending, err := f.uc.CreateSale(ctx, saleReq(whW, entity.StatusPending,
		dto.SaleItemRequest{ProductID: prodP, Quantity: 1, ProductPrice: dec(8), ProductCost: dec(5)}))
	require.NoError(t, err)

	t.Run("compra inexistente", func(t *testing.T) {
		_, err := f.uc.CreatePurchaseReturn(ctx, "nope", dto.CreateReturnRequest{
			Items: []dto.ReturnItemRequest{{ProductID: prodP, Quantity: 1}},
		})
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("producto fuera de la compra", func(t *testing.T) {
		_, err := f.uc.CreatePurchaseReturn(ctx, p.ID, dto.CreateReturnRequest{
			Items: []dto.ReturnItemRequest{{ProductID: prodQ, Quantity: 1}},
		})
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("más de lo comprado", func(t *testing.T) {
		_, err := f.uc.CreatePurchaseReturn(ctx, p.ID, dto.CreateReturnRequest{
			Items: []dto.ReturnItemRequest{{ProductID: prodP, Quantity: 3}},
		})
		var ve *domain.ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, "max", ve.Fields["items[0].quantity"])
	})

	t.Run("venta pendiente", func(t *testing.T) {
		_, err := f.uc.CreateSalesReturn(ctx, pending.ID, dto.CreateReturnRequest{
			Items: []dto.ReturnItemRequest{{ProductID: prodP, Quantity: 1}},
		})
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	})

	t.Run("sin líneas", func(t *testing.T) {
		_, err := f.uc.CreateSalesReturn(ctx, pending.ID, dto.CreateReturnRequest{})
		var ve *domain.ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Contains(t, ve.Fields, "items")
	})

	assert.Equal(t, int64(2), f.store.qty(prodP, whW))
}

func TestMovement_ReturnSpreadsAcrossLines(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.store.seedStock(prodP, whW, 10)

	t.Run("venta en dos líneas", func(t *testing.T) {
		s, err := f.uc.CreateSale(ctx, saleReq(whW, entity.StatusReceived,
			dto.SaleItemRequest{ProductID: prodP, Quantity: 2, ProductPrice: dec(8), ProductCost: dec(5)},
			dto.SaleItemRequest{ProductID: prodP, Quantity: 3, ProductPrice: dec(8), ProductCost: dec(5)}))
		require.NoError(t, err)
		require.Equal(t, int64(5), f.store.qty(prodP, whW))

		r, err := f.uc.CreateSalesReturn(ctx, s.ID, dto.CreateReturnRequest{
			Items: []dto.ReturnItemRequest{{ProductID: prodP, Quantity: 4}},
		})
		require.NoError(t, err)
		assert.Len(t, r.Items, 2)
		assertDec(t, dec(32), r.TotalAmount, "total devolución")
		assert.Equal(t, int64(9), f.store.qty(prodP, whW))

		got, err := f.uc.GetSale(ctx, s.ID)
		require.NoError(t, err)
		var left int64
		for _, it := range got.Items {
			left += it.Quantity
		}
		assert.Equal(t, int64(1), left)

		// solo queda 1 en total
		_, err = f.uc.CreateSalesReturn(ctx, s.ID, dto.CreateReturnRequest{
			Items: []dto.ReturnItemRequest{{ProductID: prodP, Quantity: 2}},
		})
		var ve *domain.ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, "max", ve.Fields["items[0].quantity"])
		assert.Equal(t, int64(9), f.store.qty(prodP, whW))
	})

	t.Run("compra en dos líneas", func(t *testing.T) {
		p, err := f.uc.CreatePurchase(ctx, purchaseReq(whW, entity.StatusReceived,
			dto.PurchaseItemRequest{ProductID: prodP, Quantity: 2, ProductCost: dec(5)},
			dto.PurchaseItemRequest{ProductID: prodP, Quantity: 3, ProductCost: dec(6)}))
		require.NoError(t, err)
		require.Equal(t, int64(14), f.store.qty(prodP, whW))

		r, err := f.uc.CreatePurchaseReturn(ctx, p.ID, dto.CreateReturnRequest{
			Items: []dto.ReturnItemRequest{{ProductID: prodP, Quantity: 4}},
		})
		require.NoError(t, err)
		assert.Len(t, r.Items, 2)
		// 2 x 5 + 2 x 6
		assertDec(t, dec(22), r.TotalAmount, "total devolución")
		assert.Equal(t, int64(10), f.store.qty(prodP, whW))

		got, err := f.uc.GetPurchase(ctx, p.ID)
		require.NoError(t, err)
		assertDec(t, dec(6), got.Amount, "monto compra")
	})
}

// ── Catálogo y lecturas ──────────────────────────────────────────────────────

func TestMovement_UnknownCatalogEntries(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.uc.CreatePurchase(ctx, purchaseReq("wh-x", entity.StatusReceived,
		dto.PurchaseItemRequest{ProductID: prodP, Quantity: 1, ProductCost: dec(5)}))
	var nf *domain.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "bodega", nf.Entity)

	_, err = f.uc.CreatePurchase(ctx, purchaseReq(whW, entity.StatusReceived,
		dto.PurchaseItemRequest{ProductID: "prod-x", Quantity: 1, ProductCost: dec(5)}))
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "producto", nf.Entity)
	assert.Equal(t, 0, f.store.runs)
}

func TestMovement_GetMissingDocuments(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.uc.GetPurchase(ctx, "x")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	_, err = f.uc.GetSale(ctx, "x")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	_, err = f.uc.GetTransfer(ctx, "x")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	_, err = f.uc.GetPurchaseReturn(ctx, "x")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	_, err = f.uc.GetSalesReturn(ctx, "x")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestMovement_CacheInvalidatedAfterCommit(t *testing.T) {
	f := newFixture()
	_, err := f.uc.CreatePurchase(context.Background(), purchaseReq(whW, entity.StatusReceived,
		dto.PurchaseItemRequest{ProductID: prodP, Quantity: 1, ProductCost: dec(5)}))
	require.NoError(t, err)
	assert.Equal(t, 1, f.cache.n)
}
