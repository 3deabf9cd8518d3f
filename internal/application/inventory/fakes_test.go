package inventory_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	appinv "github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Almacén en memoria con semántica de transacción: Run toma una copia del estado
// y la restaura si fn devuelve error.
// ──────────────────────────────────────────────────────────────────────────────

type stockKey struct{ product, warehouse string }

type state struct {
	stock         map[stockKey]entity.StockEntry
	purchases     map[string]entity.Purchase
	purchaseItems map[string][]entity.PurchaseItem
	sales         map[string]entity.Sale
	saleItems     map[string][]entity.SaleItem
	transfers     map[string]entity.Transfer
	transferItems map[string][]entity.TransferItem
	lostDamaged   map[string]entity.LostDamaged
	pReturns      map[string]entity.PurchaseReturn
	pReturnItems  map[string][]entity.PurchaseReturnItem
	sReturns      map[string]entity.SalesReturn
	sReturnItems  map[string][]entity.SalesReturnItem
}

func newState() *state {
	return &state{
		stock:         map[stockKey]entity.StockEntry{},
		purchases:     map[string]entity.Purchase{},
		purchaseItems: map[string][]entity.PurchaseItem{},
		sales:         map[string]entity.Sale{},
		saleItems:     map[string][]entity.SaleItem{},
		transfers:     map[string]entity.Transfer{},
		transferItems: map[string][]entity.TransferItem{},
		lostDamaged:   map[string]entity.LostDamaged{},
		pReturns:      map[string]entity.PurchaseReturn{},
		pReturnItems:  map[string][]entity.PurchaseReturnItem{},
		sReturns:      map[string]entity.SalesReturn{},
		sReturnItems:  map[string][]entity.SalesReturnItem{},
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneSliceMap[K comparable, V any](m map[K][]V) map[K][]V {
	out := make(map[K][]V, len(m))
	for k, v := range m {
		out[k] = append([]V(nil), v...)
	}
	return out
}

func (s *state) clone() *state {
	return &state{
		stock:         cloneMap(s.stock),
		purchases:     cloneMap(s.purchases),
		purchaseItems: cloneSliceMap(s.purchaseItems),
		sales:         cloneMap(s.sales),
		saleItems:     cloneSliceMap(s.saleItems),
		transfers:     cloneMap(s.transfers),
		transferItems: cloneSliceMap(s.transferItems),
		lostDamaged:   cloneMap(s.lostDamaged),
		pReturns:      cloneMap(s.pReturns),
		pReturnItems:  cloneSliceMap(s.pReturnItems),
		sReturns:      cloneMap(s.sReturns),
		sReturnItems:  cloneSliceMap(s.sReturnItems),
	}
}

type memStore struct {
	mu       sync.Mutex
	st       *state
	products map[string]entity.Product
	whs      map[string]entity.Warehouse

	// failOn hace fallar la operación con ese nombre (p.ej. "sale.createItem") para simular un fallo del almacén.
	failOn string
	runs   int
}

var errStorage = errors.New("fallo simulado del almacén")

func newMemStore() *memStore {
	return &memStore{
		st:       newState(),
		products: map[string]entity.Product{},
		whs:      map[string]entity.Warehouse{},
	}
}

func (m *memStore) fail(op string) error {
	if m.failOn == op {
		return domain.NewStorageError(op, errStorage)
	}
	return nil
}

// Run implementa appinv.TxRunner.
func (m *memStore) Run(ctx context.Context, fn func(repos appinv.Repos) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs++
	snapshot := m.st.clone()
	if err := fn(m.repos()); err != nil {
		m.st = snapshot
		return err
	}
	return nil
}

// reader repos fuera de transacción (el mutex no se toma: los tests son secuenciales).
func (m *memStore) repos() appinv.Repos {
	return appinv.Repos{
		Stock:       memStockRepo{m},
		Purchases:   memPurchaseRepo{m},
		Sales:       memSaleRepo{m},
		Transfers:   memTransferRepo{m},
		LostDamaged: memLostDamagedRepo{m},
		Returns:     memReturnRepo{m},
	}
}

func (m *memStore) qty(product, warehouse string) int64 {
	return m.st.stock[stockKey{product, warehouse}].Quantity
}

func (m *memStore) hasStock(product, warehouse string) bool {
	_, ok := m.st.stock[stockKey{product, warehouse}]
	return ok
}

func (m *memStore) seedStock(product, warehouse string, qty int64) {
	m.st.stock[stockKey{product, warehouse}] = entity.StockEntry{ProductID: product, WarehouseID: warehouse, Quantity: qty}
}

// ── Catálogo ─────────────────────────────────────────────────────────────────

func (m *memStore) GetProduct(_ context.Context, id string) (*entity.Product, error) {
	if p, ok := m.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (m *memStore) GetWarehouse(_ context.Context, id string) (*entity.Warehouse, error) {
	if w, ok := m.whs[id]; ok {
		return &w, nil
	}
	return nil, nil
}

// ── Stock ────────────────────────────────────────────────────────────────────

type memStockRepo struct{ m *memStore }

func (r memStockRepo) Get(_ context.Context, p, w string) (*entity.StockEntry, error) {
	if err := r.m.fail("stock.get"); err != nil {
		return nil, err
	}
	e, ok := r.m.st.stock[stockKey{p, w}]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (r memStockRepo) GetForUpdate(ctx context.Context, p, w string) (*entity.StockEntry, error) {
	return r.Get(ctx, p, w)
}

func (r memStockRepo) Increment(_ context.Context, p, w string, delta, alert, now int64) (int64, error) {
	if err := r.m.fail("stock.increment"); err != nil {
		return 0, err
	}
	k := stockKey{p, w}
	e, ok := r.m.st.stock[k]
	if !ok {
		e = entity.StockEntry{ProductID: p, WarehouseID: w, Alert: alert, CreatedAt: now}
	}
	e.Quantity += delta
	e.UpdatedAt = now
	r.m.st.stock[k] = e
	return e.Quantity, nil
}

func (r memStockRepo) SetQuantity(_ context.Context, p, w string, qty, now int64) error {
	k := stockKey{p, w}
	e := r.m.st.stock[k]
	e.Quantity = qty
	e.UpdatedAt = now
	r.m.st.stock[k] = e
	return nil
}

func (r memStockRepo) SetAlert(_ context.Context, p, w string, alert, now int64) (bool, error) {
	k := stockKey{p, w}
	e, ok := r.m.st.stock[k]
	if !ok {
		return false, nil
	}
	e.Alert = alert
	e.UpdatedAt = now
	r.m.st.stock[k] = e
	return true, nil
}

// ── Compras ──────────────────────────────────────────────────────────────────

type memPurchaseRepo struct{ m *memStore }

func (r memPurchaseRepo) Create(_ context.Context, p *entity.Purchase) error {
	if err := r.m.fail("purchase.create"); err != nil {
		return err
	}
	h := *p
	h.Items = nil
	r.m.st.purchases[p.ID] = h
	return nil
}

func (r memPurchaseRepo) GetByID(_ context.Context, id string) (*entity.Purchase, error) {
	h, ok := r.m.st.purchases[id]
	if !ok {
		return nil, nil
	}
	h.Items = append([]entity.PurchaseItem(nil), r.m.st.purchaseItems[id]...)
	return &h, nil
}

func (r memPurchaseRepo) GetForUpdate(ctx context.Context, id string) (*entity.Purchase, error) {
	return r.GetByID(ctx, id)
}

func (r memPurchaseRepo) Update(_ context.Context, p *entity.Purchase) error {
	h := *p
	h.Items = nil
	r.m.st.purchases[p.ID] = h
	return nil
}

func (r memPurchaseRepo) CreateItem(_ context.Context, it *entity.PurchaseItem) error {
	if err := r.m.fail("purchase.createItem"); err != nil {
		return err
	}
	r.m.st.purchaseItems[it.PurchaseID] = append(r.m.st.purchaseItems[it.PurchaseID], *it)
	return nil
}

func (r memPurchaseRepo) UpdateItem(_ context.Context, it *entity.PurchaseItem) error {
	items := r.m.st.purchaseItems[it.PurchaseID]
	for i := range items {
		if items[i].ID == it.ID {
			items[i] = *it
			return nil
		}
	}
	return domain.NewNotFound("línea de compra", it.ID)
}

func (r memPurchaseRepo) DeleteItems(_ context.Context, purchaseID string) error {
	delete(r.m.st.purchaseItems, purchaseID)
	return nil
}

// ── Ventas ───────────────────────────────────────────────────────────────────

type memSaleRepo struct{ m *memStore }

func (r memSaleRepo) Create(_ context.Context, s *entity.Sale) error {
	h := *s
	h.Items = nil
	r.m.st.sales[s.ID] = h
	return nil
}

func (r memSaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	h, ok := r.m.st.sales[id]
	if !ok {
		return nil, nil
	}
	h.Items = append([]entity.SaleItem(nil), r.m.st.saleItems[id]...)
	return &h, nil
}

func (r memSaleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.GetByID(ctx, id)
}

func (r memSaleRepo) Update(_ context.Context, s *entity.Sale) error {
	h := *s
	h.Items = nil
	r.m.st.sales[s.ID] = h
	return nil
}

func (r memSaleRepo) CreateItem(_ context.Context, it *entity.SaleItem) error {
	if err := r.m.fail("sale.createItem"); err != nil {
		return err
	}
	r.m.st.saleItems[it.SaleID] = append(r.m.st.saleItems[it.SaleID], *it)
	return nil
}

func (r memSaleRepo) UpdateItem(_ context.Context, it *entity.SaleItem) error {
	items := r.m.st.saleItems[it.SaleID]
	for i := range items {
		if items[i].ID == it.ID {
			items[i] = *it
			return nil
		}
	}
	return domain.NewNotFound("línea de venta", it.ID)
}

func (r memSaleRepo) DeleteItems(_ context.Context, saleID string) error {
	delete(r.m.st.saleItems, saleID)
	return nil
}

// ── Traslados, bajas y devoluciones ──────────────────────────────────────────

type memTransferRepo struct{ m *memStore }

func (r memTransferRepo) Create(_ context.Context, t *entity.Transfer) error {
	h := *t
	h.Items = nil
	r.m.st.transfers[t.ID] = h
	return nil
}

func (r memTransferRepo) CreateItem(_ context.Context, it *entity.TransferItem) error {
	r.m.st.transferItems[it.TransferID] = append(r.m.st.transferItems[it.TransferID], *it)
	return nil
}

func (r memTransferRepo) GetByID(_ context.Context, id string) (*entity.Transfer, error) {
	h, ok := r.m.st.transfers[id]
	if !ok {
		return nil, nil
	}
	h.Items = append([]entity.TransferItem(nil), r.m.st.transferItems[id]...)
	return &h, nil
}

type memLostDamagedRepo struct{ m *memStore }

func (r memLostDamagedRepo) Create(_ context.Context, ld *entity.LostDamaged) error {
	r.m.st.lostDamaged[ld.ID] = *ld
	return nil
}

type memReturnRepo struct{ m *memStore }

func (r memReturnRepo) CreatePurchaseReturn(_ context.Context, pr *entity.PurchaseReturn) error {
	h := *pr
	h.Items = nil
	r.m.st.pReturns[pr.ID] = h
	return nil
}

func (r memReturnRepo) CreatePurchaseReturnItem(_ context.Context, it *entity.PurchaseReturnItem) error {
	r.m.st.pReturnItems[it.PurchaseReturnID] = append(r.m.st.pReturnItems[it.PurchaseReturnID], *it)
	return nil
}

func (r memReturnRepo) GetPurchaseReturn(_ context.Context, id string) (*entity.PurchaseReturn, error) {
	h, ok := r.m.st.pReturns[id]
	if !ok {
		return nil, nil
	}
	h.Items = append([]entity.PurchaseReturnItem(nil), r.m.st.pReturnItems[id]...)
	return &h, nil
}

func (r memReturnRepo) CreateSalesReturn(_ context.Context, sr *entity.SalesReturn) error {
	h := *sr
	h.Items = nil
	r.m.st.sReturns[sr.ID] = h
	return nil
}

func (r memReturnRepo) CreateSalesReturnItem(_ context.Context, it *entity.SalesReturnItem) error {
	r.m.st.sReturnItems[it.SalesReturnID] = append(r.m.st.sReturnItems[it.SalesReturnID], *it)
	return nil
}

func (r memReturnRepo) GetSalesReturn(_ context.Context, id string) (*entity.SalesReturn, error) {
	h, ok := r.m.st.sReturns[id]
	if !ok {
		return nil, nil
	}
	h.Items = append([]entity.SalesReturnItem(nil), r.m.st.sReturnItems[id]...)
	return &h, nil
}

// ── Reloj, bloqueo y caché ───────────────────────────────────────────────────

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type recordingLocker struct {
	keys []string
	busy map[string]bool
}

func (l *recordingLocker) Lock(_ context.Context, key string) (func(), error) {
	if l.busy[key] {
		return nil, domain.ErrConflict
	}
	l.keys = append(l.keys, key)
	return func() {}, nil
}

type countingCache struct{ n int }

func (c *countingCache) Invalidate(context.Context) error {
	c.n++
	return nil
}

// ── Fixture ──────────────────────────────────────────────────────────────────

var testNow = time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)

const (
	prodP = "prod-p"
	prodQ = "prod-q"
	whW   = "wh-w"
	whB   = "wh-b"
)

type fixture struct {
	store  *memStore
	locker *recordingLocker
	cache  *countingCache
	uc     *appinv.MovementUseCase
}

func newFixture() *fixture {
	store := newMemStore()
	store.products[prodP] = entity.Product{ID: prodP, Name: "Producto P", Cost: decimal.NewFromInt(5), Price: decimal.NewFromInt(8)}
	store.products[prodQ] = entity.Product{ID: prodQ, Name: "Producto Q", Cost: decimal.NewFromInt(2), Price: decimal.NewFromInt(3)}
	store.whs[whW] = entity.Warehouse{ID: whW, Name: "Bodega W"}
	store.whs[whB] = entity.Warehouse{ID: whB, Name: "Bodega B"}

	locker := &recordingLocker{busy: map[string]bool{}}
	cache := &countingCache{}
	uc := appinv.NewMovementUseCase(store, store.repos(), store, locker, cache, fixedClock{testNow}, nil)
	return &fixture{store: store, locker: locker, cache: cache, uc: uc}
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }
