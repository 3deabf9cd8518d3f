package export

import (
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// column celda de tabla: ancho en la grilla de 12 y alineación.
type column struct {
	label string
	size  int
	align align.Type
}

// PDFExporter reportes en PDF A4 (Maroto v2).
type PDFExporter struct {
	clock inventory.Clock
}

// NewPDFExporter construye el exportador. clock fija la fecha impresa; nil usa la hora del sistema.
func NewPDFExporter(clock inventory.Clock) *PDFExporter {
	if clock == nil {
		clock = inventory.SystemClock{}
	}
	return &PDFExporter{clock: clock}
}

func (PDFExporter) Format() string      { return "pdf" }
func (PDFExporter) ContentType() string { return "application/pdf" }

// StockAlerts tabla de productos en alerta.
func (e *PDFExporter) StockAlerts(items []dto.StockAlertDTO) ([]byte, error) {
	cols := []column{
		{"Código", 2, align.Left},
		{"Producto", 4, align.Left},
		{"Bodega", 3, align.Left},
		{"Cant.", 1, align.Right},
		{"Alerta", 2, align.Right},
	}
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			it.ProductCode, it.ProductName, it.WarehouseName,
			strconv.FormatInt(it.Quantity, 10), strconv.FormatInt(it.Alert, 10),
		})
	}
	return e.render("ALERTAS DE STOCK", cols, rows, nil)
}

// InventoryValue tabla por bodega con la fila de totales resaltada.
func (e *PDFExporter) InventoryValue(v *dto.InventoryValueDTO) ([]byte, error) {
	cols := []column{
		{"Bodega", 4, align.Left},
		{"Cantidad", 2, align.Right},
		{"Valor costo", 3, align.Right},
		{"Valor precio", 3, align.Right},
	}
	rows := make([][]string, 0, len(v.Warehouses))
	for _, w := range v.Warehouses {
		rows = append(rows, []string{
			w.WarehouseName, strconv.FormatInt(w.TotalQuantity, 10), money(w.CostValue), money(w.PriceValue),
		})
	}
	total := []string{"TOTAL", strconv.FormatInt(v.TotalQuantity, 10), money(v.TotalCostValue), money(v.TotalPrice)}
	return e.render("VALOR DE INVENTARIO", cols, rows, total)
}

func (e *PDFExporter) render(title string, cols []column, rows [][]string, total []string) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(titleRow(title, e.clock.Now().Format("02/01/2006 15:04")))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableRow(cols, labels(cols), props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}))
	for _, r := range rows {
		m.AddRows(tableRow(cols, r, props.Text{Size: 8, Top: 1}))
	}
	if total != nil {
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(tableRow(cols, total, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1}))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func titleRow(title, date string) core.Row {
	return row.New(14).Add(
		col.New(8).Add(text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 2,
		})),
		col.New(4).Add(text.New("Generado: "+date, props.Text{
			Size: 8, Align: align.Right, Top: 4, Color: colorGray,
		})),
	)
}

func tableRow(cols []column, values []string, base props.Text) core.Row {
	cells := make([]core.Col, 0, len(cols))
	for i, c := range cols {
		p := base
		p.Align = c.align
		p.Left, p.Right = 1, 1
		cells = append(cells, col.New(c.size).Add(text.New(values[i], p)))
	}
	return row.New(7).Add(cells...)
}

func labels(cols []column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.label
	}
	return out
}

// money formatea con puntos de miles y sin decimales: 25000 -> "$25.000".
func money(d decimal.Decimal) string {
	s := d.Abs().StringFixed(0)
	n := len(s)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	if d.IsNegative() {
		return "-$" + string(buf)
	}
	return "$" + string(buf)
}
