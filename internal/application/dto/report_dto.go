package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Query parameters ──────────────────────────────────────────────────────────

// StockAlertQuery parámetros de GET /api/reports/stock-alerts.
type StockAlertQuery struct {
	WarehouseID string `query:"warehouse_id"`
	Filter      string `query:"filter"`     // nombre del producto (contiene, sin mayúsculas)
	SortBy      string `query:"sort_by" validate:"omitempty,oneof=name qty id"`
	SortOrder   string `query:"sort_order" validate:"omitempty,oneof=asc desc"`
	PageRequest
}

// DateRangeQuery parámetros from/to (YYYY-MM-DD) de los reportes por rango.
type DateRangeQuery struct {
	From  string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To    string `query:"to" validate:"omitempty,datetime=2006-01-02"`
	Limit int    `query:"limit" validate:"omitempty,min=1,max=100"`
}

// ── Respuestas ────────────────────────────────────────────────────────────────

type StockAlertDTO struct {
	ProductID     string `json:"product_id"`
	ProductCode   string `json:"product_code"`
	ProductName   string `json:"product_name"`
	WarehouseID   string `json:"warehouse_id"`
	WarehouseName string `json:"warehouse_name"`
	Quantity      int64  `json:"quantity"`
	Alert         int64  `json:"alert"`
}

// StockAlertListDTO respuesta paginada del reporte de alertas.
type StockAlertListDTO struct {
	Items []StockAlertDTO `json:"items"`
	Page  PageResponse    `json:"page"`
}

type WarehouseValueDTO struct {
	WarehouseID   string          `json:"warehouse_id"`
	WarehouseName string          `json:"warehouse_name"`
	TotalQuantity int64           `json:"total_quantity"`
	CostValue     decimal.Decimal `json:"cost_value"`  // Σ costo × cantidad
	PriceValue    decimal.Decimal `json:"price_value"` // Σ precio × cantidad
}

// InventoryValueDTO valorización por bodega y total general.
type InventoryValueDTO struct {
	Warehouses     []WarehouseValueDTO `json:"warehouses"`
	TotalQuantity  int64               `json:"total_quantity"`
	TotalCostValue decimal.Decimal     `json:"total_cost_value"`
	TotalPrice     decimal.Decimal     `json:"total_price_value"`
}

// ProductSalesDTO cantidades y montos por producto (top ventas, ventas/compras por producto).
type ProductSalesDTO struct {
	ProductID   string          `json:"product_id"`
	ProductCode string          `json:"product_code"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	Amount      decimal.Decimal `json:"amount"`
	Profit      decimal.Decimal `json:"profit"`
}

// ProductReportDTO respuesta de top-selling y de reportes por producto.
type ProductReportDTO struct {
	From     time.Time         `json:"from"`
	To       time.Time         `json:"to"`
	Products []ProductSalesDTO `json:"products"`
}

// DailyPointDTO un día de la serie semanal.
type DailyPointDTO struct {
	Date      string          `json:"date"` // YYYY-MM-DD
	Sales     decimal.Decimal `json:"sales"`
	Purchases decimal.Decimal `json:"purchases"`
}

// WeeklySeriesDTO ventas vs compras de los últimos 7 días (incluye hoy), en orden ascendente.
type WeeklySeriesDTO struct {
	Days []DailyPointDTO `json:"days"`
}

// SaleReportDTO resumen de ventas confirmadas en un rango.
type SaleReportDTO struct {
	From            time.Time       `json:"from"`
	To              time.Time       `json:"to"`
	SalesCount      int64           `json:"sales_count"`
	TotalSales      decimal.Decimal `json:"total_sales_amount"`
	TotalShipping   decimal.Decimal `json:"total_shipping"`
	TotalTax        decimal.Decimal `json:"total_tax"`
	TotalDiscount   decimal.Decimal `json:"total_discount"`
	GrandTotal      decimal.Decimal `json:"grand_total"`
	QuantitySold    int64           `json:"quantity_sold"`
	TotalProfit     decimal.Decimal `json:"total_profit"`
	PaymentReceived decimal.Decimal `json:"payment_received"`
}

// PurchaseReportDTO resumen de compras recibidas en un rango.
type PurchaseReportDTO struct {
	From              time.Time       `json:"from"`
	To                time.Time       `json:"to"`
	PurchasesCount    int64           `json:"purchases_count"`
	TotalPurchases    decimal.Decimal `json:"total_purchase_amount"`
	TotalShipping     decimal.Decimal `json:"total_shipping"`
	QuantityPurchased int64           `json:"quantity_purchased"`
	PaymentSent       decimal.Decimal `json:"payment_sent"`
}

// ExportFile archivo generado por los endpoints de exportación.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Bounds valida y convierte el rango. to incluye el día completo; un extremo vacío queda en cero.
func (q DateRangeQuery) Bounds() (from, to time.Time, err error) {
	if err = Validate(q); err != nil {
		return
	}
	if q.From != "" {
		from, _ = time.Parse("2006-01-02", q.From)
	}
	if q.To != "" {
		to, _ = time.Parse("2006-01-02", q.To)
		to = to.Add(24*time.Hour - time.Nanosecond)
	}
	return from, to, nil
}
