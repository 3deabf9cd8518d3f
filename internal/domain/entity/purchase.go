package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase cabecera de compra a proveedor. Status 0 = recibida (suma stock en WarehouseID).
type Purchase struct {
	ID            string
	Date          time.Time
	WarehouseID   string
	SupplierID    string
	Amount        decimal.Decimal // suma de subtotales de las líneas
	Shipping      decimal.Decimal
	RefCode       string
	PaymentTypeID string
	PaymentStatus int
	Note          string
	Status        int
	CreatedAt     int64
	UpdatedAt     int64
	Items         []PurchaseItem
}

// PurchaseItem línea de compra. SubTotal = ProductCost × Quantity.
type PurchaseItem struct {
	ID          string
	PurchaseID  string
	ProductID   string
	Quantity    int64
	ProductCost decimal.Decimal
	SubTotal    decimal.Decimal
	CreatedAt   int64
	UpdatedAt   int64
}

// Recalculate actualiza el subtotal según cantidad y costo.
func (i *PurchaseItem) Recalculate() {
	i.SubTotal = i.ProductCost.Mul(decimal.NewFromInt(i.Quantity))
}

// RecalculateTotals suma los subtotales de las líneas en Amount.
func (p *Purchase) RecalculateTotals() {
	amount := decimal.Zero
	for _, it := range p.Items {
		amount = amount.Add(it.SubTotal)
	}
	p.Amount = amount
}
