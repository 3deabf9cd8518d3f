package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// StockAlertQuery filtros del reporte de alertas de stock.
type StockAlertQuery struct {
	WarehouseID string // vacío = todas las bodegas
	Name        string // subcadena del nombre del producto, sin distinguir mayúsculas
	SortBy      string // name | qty | id
	SortDesc    bool
	Limit       int
	Offset      int
}

// StockAlertRow fila del reporte de alertas (quantity <= alert).
type StockAlertRow struct {
	ProductID     string
	ProductCode   string
	ProductName   string
	WarehouseID   string
	WarehouseName string
	Quantity      int64
	Alert         int64
}

// WarehouseValueRow valorización de una bodega.
type WarehouseValueRow struct {
	WarehouseID   string
	WarehouseName string
	TotalQuantity int64
	CostValue     decimal.Decimal // Σ costo × cantidad
	PriceValue    decimal.Decimal // Σ precio × cantidad
}

// ProductQuantityRow cantidades y montos agregados por producto.
type ProductQuantityRow struct {
	ProductID   string
	ProductCode string
	ProductName string
	Quantity    int64
	Amount      decimal.Decimal
	Profit      decimal.Decimal // solo ventas
}

// DailyAmountRow total de un día (fecha truncada a medianoche).
type DailyAmountRow struct {
	Day    time.Time
	Amount decimal.Decimal
}

// SaleSummaryRow agregado de ventas confirmadas en un rango.
type SaleSummaryRow struct {
	SalesCount      int64
	Amount          decimal.Decimal
	Shipping        decimal.Decimal
	Tax             decimal.Decimal
	Discount        decimal.Decimal
	TotalAmount     decimal.Decimal
	QuantitySold    int64
	Profit          decimal.Decimal
	PaymentReceived decimal.Decimal // total de ventas con pago completo
}

// PurchaseSummaryRow agregado de compras recibidas en un rango.
type PurchaseSummaryRow struct {
	PurchasesCount    int64
	Amount            decimal.Decimal
	Shipping          decimal.Decimal
	QuantityPurchased int64
	PaymentSent       decimal.Decimal
}

// ReportRepository consultas de solo lectura sobre el ledger y las transacciones.
// Solo cuentan compras y ventas con status 0.
type ReportRepository interface {
	StockAlerts(ctx context.Context, q StockAlertQuery) ([]StockAlertRow, int64, error)
	InventoryValue(ctx context.Context) ([]WarehouseValueRow, error)
	TopSelling(ctx context.Context, from, to time.Time, limit int) ([]ProductQuantityRow, error)
	DailySales(ctx context.Context, from, to time.Time) ([]DailyAmountRow, error)
	DailyPurchases(ctx context.Context, from, to time.Time) ([]DailyAmountRow, error)
	SaleSummary(ctx context.Context, from, to time.Time) (*SaleSummaryRow, error)
	PurchaseSummary(ctx context.Context, from, to time.Time) (*PurchaseSummaryRow, error)
	SalesByProduct(ctx context.Context, from, to time.Time) ([]ProductQuantityRow, error)
	PurchasesByProduct(ctx context.Context, from, to time.Time) ([]ProductQuantityRow, error)
}
