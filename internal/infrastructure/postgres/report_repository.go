package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para los reportes.
// Solo cuentan compras y ventas con status = 0.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// alertSortColumns columnas permitidas en ORDER BY (nunca se interpola texto del cliente).
var alertSortColumns = map[string]string{
	"name": "p.name",
	"qty":  "s.quantity",
	"id":   "s.product_id",
}

// alertFilter el nombre se busca como subcadena literal sin distinguir mayúsculas:
// % y _ del cliente no actúan como comodines.
const alertFilter = `
	FROM stock s
	JOIN products   p ON p.id = s.product_id
	JOIN warehouses w ON w.id = s.warehouse_id
	WHERE s.quantity <= s.alert
	  AND ($1::text = '' OR s.warehouse_id = $1)
	  AND ($2::text = '' OR position(lower($2) in lower(p.name)) > 0)`

// StockAlerts entradas con quantity <= alert y el total sin paginar.
func (r *ReportRepo) StockAlerts(ctx context.Context, q repository.StockAlertQuery) ([]repository.StockAlertRow, int64, error) {
	var total int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*)`+alertFilter, q.WarehouseID, q.Name).Scan(&total); err != nil {
		return nil, 0, storageErr("report.StockAlerts count", err)
	}

	col, ok := alertSortColumns[q.SortBy]
	if !ok {
		col = alertSortColumns["name"]
	}
	dir := "ASC"
	if q.SortDesc {
		dir = "DESC"
	}
	query := `
	SELECT s.product_id, p.code, p.name, s.warehouse_id, w.name, s.quantity, s.alert` + alertFilter +
		fmt.Sprintf(`
	ORDER BY %s %s, s.product_id, s.warehouse_id
	LIMIT $3 OFFSET $4`, col, dir)

	rows, err := r.q.Query(ctx, query, q.WarehouseID, q.Name, q.Limit, q.Offset)
	if err != nil {
		return nil, 0, storageErr("report.StockAlerts", err)
	}
	defer rows.Close()

	results := []repository.StockAlertRow{}
	for rows.Next() {
		var row repository.StockAlertRow
		if err := rows.Scan(
			&row.ProductID,
			&row.ProductCode,
			&row.ProductName,
			&row.WarehouseID,
			&row.WarehouseName,
			&row.Quantity,
			&row.Alert,
		); err != nil {
			return nil, 0, storageErr("report.StockAlerts scan", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, storageErr("report.StockAlerts rows", err)
	}
	return results, total, nil
}

// InventoryValue valorización por bodega: Σ costo × cantidad y Σ precio × cantidad.
// Las bodegas sin stock aparecen en cero.
func (r *ReportRepo) InventoryValue(ctx context.Context) ([]repository.WarehouseValueRow, error) {
	const query = `
	SELECT
	    w.id,
	    w.name,
	    COALESCE(SUM(s.quantity), 0)::bigint        AS total_quantity,
	    COALESCE(SUM(s.quantity * p.cost), 0)        AS cost_value,
	    COALESCE(SUM(s.quantity * p.price), 0)       AS price_value
	FROM warehouses w
	LEFT JOIN stock    s ON s.warehouse_id = w.id
	LEFT JOIN products p ON p.id           = s.product_id
	GROUP BY w.id, w.name
	ORDER BY w.name`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, storageErr("report.InventoryValue", err)
	}
	defer rows.Close()

	results := []repository.WarehouseValueRow{}
	for rows.Next() {
		var row repository.WarehouseValueRow
		if err := rows.Scan(&row.WarehouseID, &row.WarehouseName, &row.TotalQuantity, &row.CostValue, &row.PriceValue); err != nil {
			return nil, storageErr("report.InventoryValue scan", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("report.InventoryValue rows", err)
	}
	return results, nil
}

// TopSelling los `limit` productos con más unidades vendidas en el período.
func (r *ReportRepo) TopSelling(ctx context.Context, from, to time.Time, limit int) ([]repository.ProductQuantityRow, error) {
	const query = `
	SELECT
	    p.id,
	    p.code,
	    p.name,
	    SUM(si.quantity)::bigint     AS quantity_sold,
	    SUM(si.sub_total)            AS total_amount,
	    SUM(si.profit)               AS total_profit
	FROM sale_items si
	JOIN sales    s ON s.id = si.sale_id
	JOIN products p ON p.id = si.product_id
	WHERE s.status = 0
	  AND s.date BETWEEN $1 AND $2
	GROUP BY p.id, p.code, p.name
	ORDER BY quantity_sold DESC, p.name
	LIMIT $3`
	return r.productRows(ctx, "report.TopSelling", query, from, to, limit)
}

// SalesByProduct unidades, monto y utilidad vendidos por producto.
func (r *ReportRepo) SalesByProduct(ctx context.Context, from, to time.Time) ([]repository.ProductQuantityRow, error) {
	const query = `
	SELECT
	    p.id,
	    p.code,
	    p.name,
	    SUM(si.quantity)::bigint,
	    SUM(si.sub_total),
	    SUM(si.profit)
	FROM sale_items si
	JOIN sales    s ON s.id = si.sale_id
	JOIN products p ON p.id = si.product_id
	WHERE s.status = 0
	  AND s.date BETWEEN $1 AND $2
	GROUP BY p.id, p.code, p.name
	ORDER BY p.name`
	return r.productRows(ctx, "report.SalesByProduct", query, from, to)
}

// PurchasesByProduct unidades y monto comprados por producto (utilidad en cero).
func (r *ReportRepo) PurchasesByProduct(ctx context.Context, from, to time.Time) ([]repository.ProductQuantityRow, error) {
	const query = `
	SELECT
	    p.id,
	    p.code,
	    p.name,
	    SUM(pi.quantity)::bigint,
	    SUM(pi.sub_total),
	    0::numeric
	FROM purchase_items pi
	JOIN purchases pu ON pu.id = pi.purchase_id
	JOIN products  p  ON p.id  = pi.product_id
	WHERE pu.status = 0
	  AND pu.date BETWEEN $1 AND $2
	GROUP BY p.id, p.code, p.name
	ORDER BY p.name`
	return r.productRows(ctx, "report.PurchasesByProduct", query, from, to)
}

func (r *ReportRepo) productRows(ctx context.Context, op, query string, args ...any) ([]repository.ProductQuantityRow, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, storageErr(op, err)
	}
	defer rows.Close()

	results := []repository.ProductQuantityRow{}
	for rows.Next() {
		var row repository.ProductQuantityRow
		if err := rows.Scan(
			&row.ProductID,
			&row.ProductCode,
			&row.ProductName,
			&row.Quantity,
			&row.Amount,
			&row.Profit,
		); err != nil {
			return nil, storageErr(op+" scan", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(op+" rows", err)
	}
	return results, nil
}

// DailySales total_amount de ventas confirmadas agrupado por día.
func (r *ReportRepo) DailySales(ctx context.Context, from, to time.Time) ([]repository.DailyAmountRow, error) {
	const query = `
	SELECT s.date::date AS day, SUM(s.total_amount)
	FROM sales s
	WHERE s.status = 0
	  AND s.date BETWEEN $1 AND $2
	GROUP BY day
	ORDER BY day`
	return r.dailyRows(ctx, "report.DailySales", query, from, to)
}

// DailyPurchases monto + flete de compras recibidas agrupado por día.
func (r *ReportRepo) DailyPurchases(ctx context.Context, from, to time.Time) ([]repository.DailyAmountRow, error) {
	const query = `
	SELECT pu.date::date AS day, SUM(pu.amount + pu.shipping)
	FROM purchases pu
	WHERE pu.status = 0
	  AND pu.date BETWEEN $1 AND $2
	GROUP BY day
	ORDER BY day`
	return r.dailyRows(ctx, "report.DailyPurchases", query, from, to)
}

func (r *ReportRepo) dailyRows(ctx context.Context, op, query string, from, to time.Time) ([]repository.DailyAmountRow, error) {
	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, storageErr(op, err)
	}
	defer rows.Close()

	results := []repository.DailyAmountRow{}
	for rows.Next() {
		var row repository.DailyAmountRow
		if err := rows.Scan(&row.Day, &row.Amount); err != nil {
			return nil, storageErr(op+" scan", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(op+" rows", err)
	}
	return results, nil
}

// SaleSummary agregados de ventas confirmadas. Usa COALESCE para devolver cero si no hay filas.
// PaymentReceived suma solo ventas con payment_status = 0 (pagadas).
func (r *ReportRepo) SaleSummary(ctx context.Context, from, to time.Time) (*repository.SaleSummaryRow, error) {
	const headers = `
	SELECT
	    COUNT(*),
	    COALESCE(SUM(amount),       0),
	    COALESCE(SUM(shipping),     0),
	    COALESCE(SUM(tax_amount),   0),
	    COALESCE(SUM(discount),     0),
	    COALESCE(SUM(total_amount), 0),
	    COALESCE(SUM(total_amount) FILTER (WHERE payment_status = 0), 0)
	FROM sales
	WHERE status = 0
	  AND date BETWEEN $1 AND $2`

	var s repository.SaleSummaryRow
	if err := r.q.QueryRow(ctx, headers, from, to).Scan(
		&s.SalesCount, &s.Amount, &s.Shipping, &s.Tax, &s.Discount, &s.TotalAmount, &s.PaymentReceived,
	); err != nil {
		return nil, storageErr("report.SaleSummary", err)
	}

	const items = `
	SELECT COALESCE(SUM(si.quantity), 0)::bigint, COALESCE(SUM(si.profit), 0)
	FROM sale_items si
	JOIN sales s ON s.id = si.sale_id
	WHERE s.status = 0
	  AND s.date BETWEEN $1 AND $2`
	if err := r.q.QueryRow(ctx, items, from, to).Scan(&s.QuantitySold, &s.Profit); err != nil {
		return nil, storageErr("report.SaleSummary items", err)
	}
	return &s, nil
}

// PurchaseSummary agregados de compras recibidas. PaymentSent suma las compras pagadas.
func (r *ReportRepo) PurchaseSummary(ctx context.Context, from, to time.Time) (*repository.PurchaseSummaryRow, error) {
	const headers = `
	SELECT
	    COUNT(*),
	    COALESCE(SUM(amount),   0),
	    COALESCE(SUM(shipping), 0),
	    COALESCE(SUM(amount + shipping) FILTER (WHERE payment_status = 0), 0)
	FROM purchases
	WHERE status = 0
	  AND date BETWEEN $1 AND $2`

	var s repository.PurchaseSummaryRow
	if err := r.q.QueryRow(ctx, headers, from, to).Scan(
		&s.PurchasesCount, &s.Amount, &s.Shipping, &s.PaymentSent,
	); err != nil {
		return nil, storageErr("report.PurchaseSummary", err)
	}

	const items = `
	SELECT COALESCE(SUM(pi.quantity), 0)::bigint
	FROM purchase_items pi
	JOIN purchases pu ON pu.id = pi.purchase_id
	WHERE pu.status = 0
	  AND pu.date BETWEEN $1 AND $2`
	if err := r.q.QueryRow(ctx, items, from, to).Scan(&s.QuantityPurchased); err != nil {
		return nil, storageErr("report.PurchaseSummary items", err)
	}
	return &s, nil
}
