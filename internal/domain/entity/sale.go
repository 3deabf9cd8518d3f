package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Sale cabecera de venta. Status 0 = confirmada (descuenta stock en WarehouseID).
type Sale struct {
	ID            string
	Date          time.Time
	WarehouseID   string
	CustomerID    string
	UserID        string
	Amount        decimal.Decimal // base: suma de subtotales
	Shipping      decimal.Decimal
	Discount      decimal.Decimal
	TaxPercent    decimal.Decimal
	TaxAmount     decimal.Decimal
	TotalAmount   decimal.Decimal
	PaymentTypeID string
	PaymentStatus int
	Note          string
	Status        int
	CreatedAt     int64
	UpdatedAt     int64
	Items         []SaleItem
}

// SaleItem línea de venta con su utilidad.
type SaleItem struct {
	ID           string
	SaleID       string
	ProductID    string
	Quantity     int64
	ProductPrice decimal.Decimal
	ProductCost  decimal.Decimal
	Profit       decimal.Decimal // (precio - costo) × cantidad
	SubTotal     decimal.Decimal // precio × cantidad
	CreatedAt    int64
	UpdatedAt    int64
}

// Recalculate actualiza subtotal y utilidad según la cantidad actual.
func (i *SaleItem) Recalculate() {
	qty := decimal.NewFromInt(i.Quantity)
	i.SubTotal = i.ProductPrice.Mul(qty)
	i.Profit = i.ProductPrice.Sub(i.ProductCost).Mul(qty)
}

// RecalculateTotals recalcula Amount desde las líneas y luego impuesto y total.
func (s *Sale) RecalculateTotals() {
	amount := decimal.Zero
	for _, it := range s.Items {
		amount = amount.Add(it.SubTotal)
	}
	s.Amount = amount
	s.ApplyTax()
}

// ApplyTax recalcula TaxAmount y TotalAmount sobre el Amount vigente,
// reaplicando el descuento y el porcentaje de impuesto guardados.
func (s *Sale) ApplyTax() {
	s.TaxAmount = s.Amount.Sub(s.Discount).Mul(s.TaxPercent).Div(hundred)
	s.TotalAmount = s.Amount.Add(s.Shipping).Sub(s.Discount).Add(s.TaxAmount)
}
