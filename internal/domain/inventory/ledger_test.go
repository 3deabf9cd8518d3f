package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type key struct{ p, w string }

// memStock StockRepository en memoria; registra los bloqueos pedidos.
type memStock struct {
	rows   map[key]*entity.StockEntry
	locked []key
	failOn string
}

func newMemStock() *memStock { return &memStock{rows: map[key]*entity.StockEntry{}} }

func (m *memStock) Get(_ context.Context, p, w string) (*entity.StockEntry, error) {
	if m.failOn == "get" {
		return nil, errors.New("boom")
	}
	if e, ok := m.rows[key{p, w}]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, nil
}

func (m *memStock) GetForUpdate(ctx context.Context, p, w string) (*entity.StockEntry, error) {
	m.locked = append(m.locked, key{p, w})
	return m.Get(ctx, p, w)
}

func (m *memStock) Increment(_ context.Context, p, w string, delta, alert, now int64) (int64, error) {
	e, ok := m.rows[key{p, w}]
	if !ok {
		e = &entity.StockEntry{ProductID: p, WarehouseID: w, Alert: alert, CreatedAt: now}
		m.rows[key{p, w}] = e
	}
	e.Quantity += delta
	e.UpdatedAt = now
	return e.Quantity, nil
}

func (m *memStock) SetQuantity(_ context.Context, p, w string, qty, now int64) error {
	e := m.rows[key{p, w}]
	e.Quantity = qty
	e.UpdatedAt = now
	return nil
}

func (m *memStock) SetAlert(_ context.Context, p, w string, alert, now int64) (bool, error) {
	e, ok := m.rows[key{p, w}]
	if !ok {
		return false, nil
	}
	e.Alert = alert
	e.UpdatedAt = now
	return true, nil
}

var testNow = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func newLedger() (*inventory.Ledger, *memStock) {
	st := newMemStock()
	return inventory.NewLedger(st, fixedClock{testNow}), st
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestQuantity_SinEntradaDevuelveCero(t *testing.T) {
	l, _ := newLedger()
	qty, err := l.Quantity(context.Background(), "p1", "w1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), qty)
}

func TestApplyDelta_PositivoCreaEntrada(t *testing.T) {
	l, st := newLedger()
	ctx := context.Background()

	qty, err := l.ApplyDelta(ctx, "p1", "w1", 10, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(10), qty)

	e := st.rows[key{"p1", "w1"}]
	require.NotNil(t, e)
	assert.Equal(t, int64(3), e.Alert, "el umbral solo se fija al crear")
	assert.Equal(t, testNow.UnixMilli(), e.CreatedAt)
	assert.Equal(t, testNow.UnixMilli(), e.UpdatedAt)

	qty, err = l.ApplyDelta(ctx, "p1", "w1", 5, 99)
	require.NoError(t, err)
	assert.Equal(t, int64(15), qty)
	assert.Equal(t, int64(3), st.rows[key{"p1", "w1"}].Alert)
}

func TestApplyDelta_NegativoBloqueaYDescuenta(t *testing.T) {
	l, st := newLedger()
	ctx := context.Background()
	_, err := l.ApplyDelta(ctx, "p1", "w1", 10, 0)
	require.NoError(t, err)

	qty, err := l.ApplyDelta(ctx, "p1", "w1", -10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), qty, "se permite llegar exactamente a cero")
	assert.Equal(t, []key{{"p1", "w1"}}, st.locked, "el descuento debe bloquear la fila")
}

func TestApplyDelta_StockInsuficiente(t *testing.T) {
	l, st := newLedger()
	ctx := context.Background()
	_, err := l.ApplyDelta(ctx, "p1", "w1", 6, 0)
	require.NoError(t, err)

	_, err = l.ApplyDelta(ctx, "p1", "w1", -20, 0)
	require.Error(t, err)

	var se *domain.StockError
	require.True(t, errors.As(err, &se))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(20), se.Requested)
	assert.Equal(t, int64(6), se.Available)
	assert.Equal(t, int64(6), st.rows[key{"p1", "w1"}].Quantity, "la cantidad no debe cambiar")
}

func TestApplyDelta_NegativoSinEntrada(t *testing.T) {
	l, st := newLedger()
	_, err := l.ApplyDelta(context.Background(), "p1", "w1", -1, 0)
	assert.ErrorIs(t, err, domain.ErrStockNotFound)
	assert.Empty(t, st.rows)
}

func TestApplyDelta_CeroNoEscribe(t *testing.T) {
	l, st := newLedger()
	qty, err := l.ApplyDelta(context.Background(), "p1", "w1", 0, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(0), qty)
	assert.Empty(t, st.rows, "delta cero no crea entradas")
}

func TestApplyDelta_PropagaErrorDeAlmacen(t *testing.T) {
	l, st := newLedger()
	st.failOn = "get"
	_, err := l.ApplyDelta(context.Background(), "p1", "w1", -1, 0)
	assert.EqualError(t, err, "boom")
}

func TestQuantity_LecturaIdempotente(t *testing.T) {
	l, _ := newLedger()
	ctx := context.Background()
	_, err := l.ApplyDelta(ctx, "p1", "w1", 7, 0)
	require.NoError(t, err)

	a, err := l.Quantity(ctx, "p1", "w1")
	require.NoError(t, err)
	b, err := l.Quantity(ctx, "p1", "w1")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
