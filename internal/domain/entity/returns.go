package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseReturn devolución al proveedor. WarehouseID es la bodega de la compra original.
type PurchaseReturn struct {
	ID          string
	PurchaseID  string
	WarehouseID string
	Date        time.Time
	TotalAmount decimal.Decimal
	Note        string
	Status      int
	CreatedAt   int64
	UpdatedAt   int64
	Items       []PurchaseReturnItem
}

type PurchaseReturnItem struct {
	ID               string
	PurchaseReturnID string
	ProductID        string
	Quantity         int64
	ProductCost      decimal.Decimal
	SubTotal         decimal.Decimal
	CreatedAt        int64
	UpdatedAt        int64
}

// SalesReturn devolución de un cliente. WarehouseID es la bodega de la venta original.
type SalesReturn struct {
	ID          string
	SaleID      string
	WarehouseID string
	Date        time.Time
	TotalAmount decimal.Decimal
	Note        string
	Status      int
	CreatedAt   int64
	UpdatedAt   int64
	Items       []SalesReturnItem
}

type SalesReturnItem struct {
	ID            string
	SalesReturnID string
	ProductID     string
	Quantity      int64
	ProductPrice  decimal.Decimal
	ProductCost   decimal.Decimal
	SubTotal      decimal.Decimal
	CreatedAt     int64
	UpdatedAt     int64
}
