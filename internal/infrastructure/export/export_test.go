package export_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/analytics"
	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/export"
)

var (
	_ analytics.Exporter = (*export.XLSXExporter)(nil)
	_ analytics.Exporter = (*export.PDFExporter)(nil)
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func sampleAlerts() []dto.StockAlertDTO {
	return []dto.StockAlertDTO{
		{ProductID: "p1", ProductCode: "A-1", ProductName: "Arroz", WarehouseID: "w1", WarehouseName: "Centro", Quantity: 2, Alert: 5},
		{ProductID: "p2", ProductCode: "B-2", ProductName: "Café", WarehouseID: "w1", WarehouseName: "Centro", Quantity: 0, Alert: 3},
	}
}

func sampleValue() *dto.InventoryValueDTO {
	return &dto.InventoryValueDTO{
		Warehouses: []dto.WarehouseValueDTO{
			{WarehouseID: "w1", WarehouseName: "Centro", TotalQuantity: 10, CostValue: decimal.NewFromInt(50), PriceValue: decimal.NewFromInt(80)},
			{WarehouseID: "w2", WarehouseName: "Norte", TotalQuantity: 0, CostValue: decimal.Zero, PriceValue: decimal.Zero},
		},
		TotalQuantity:  10,
		TotalCostValue: decimal.NewFromInt(50),
		TotalPrice:     decimal.NewFromInt(80),
	}
}

// ── XLSX ──────────────────────────────────────────────────────────────────────

func TestXLSX_StockAlerts(t *testing.T) {
	e := export.NewXLSXExporter()
	assert.Equal(t, "xlsx", e.Format())

	data, err := e.StockAlerts(sampleAlerts())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Código", "Producto", "Bodega", "Cantidad", "Alerta"}, rows[0])
	assert.Equal(t, []string{"A-1", "Arroz", "Centro", "2", "5"}, rows[1])
}

func TestXLSX_InventoryValueIncluyeTotal(t *testing.T) {
	data, err := export.NewXLSXExporter().InventoryValue(sampleValue())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "TOTAL", rows[3][0])
	assert.Equal(t, "50", rows[3][2])
}

func TestXLSX_SinFilas(t *testing.T) {
	data, err := export.NewXLSXExporter().StockAlerts(nil)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

// ── PDF ───────────────────────────────────────────────────────────────────────

func TestPDF_Documentos(t *testing.T) {
	e := export.NewPDFExporter(fixedClock{time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)})
	assert.Equal(t, "pdf", e.Format())
	assert.Equal(t, "application/pdf", e.ContentType())

	data, err := e.StockAlerts(sampleAlerts())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))

	data, err = e.InventoryValue(sampleValue())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}
