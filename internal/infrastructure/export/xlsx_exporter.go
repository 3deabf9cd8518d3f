// Package export genera los archivos descargables de los reportes (xlsx y pdf).
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
)

const sheetName = "Sheet1"

// XLSXExporter reportes en hoja de cálculo (excelize).
type XLSXExporter struct{}

func NewXLSXExporter() *XLSXExporter { return &XLSXExporter{} }

func (XLSXExporter) Format() string { return "xlsx" }

func (XLSXExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// StockAlerts una fila por entrada en alerta.
func (e XLSXExporter) StockAlerts(items []dto.StockAlertDTO) ([]byte, error) {
	rows := make([][]interface{}, 0, len(items))
	for _, it := range items {
		rows = append(rows, []interface{}{
			it.ProductCode, it.ProductName, it.WarehouseName, it.Quantity, it.Alert,
		})
	}
	return writeSheet([]string{"Código", "Producto", "Bodega", "Cantidad", "Alerta"}, rows)
}

// InventoryValue una fila por bodega y una fila final de totales.
func (e XLSXExporter) InventoryValue(v *dto.InventoryValueDTO) ([]byte, error) {
	rows := make([][]interface{}, 0, len(v.Warehouses)+1)
	for _, w := range v.Warehouses {
		rows = append(rows, []interface{}{
			w.WarehouseName, w.TotalQuantity, w.CostValue.InexactFloat64(), w.PriceValue.InexactFloat64(),
		})
	}
	rows = append(rows, []interface{}{
		"TOTAL", v.TotalQuantity, v.TotalCostValue.InexactFloat64(), v.TotalPrice.InexactFloat64(),
	})
	return writeSheet([]string{"Bodega", "Cantidad", "Valor costo", "Valor precio"}, rows)
}

func writeSheet(headings []string, rows [][]interface{}) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, h := range headings {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, fmt.Errorf("xlsx: encabezado: %w", err)
		}
	}
	for r, values := range rows {
		for c, v := range values {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, fmt.Errorf("xlsx: celda %s: %w", cell, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir archivo: %w", err)
	}
	return buf.Bytes(), nil
}
