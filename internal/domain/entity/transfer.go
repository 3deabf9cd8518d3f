package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transfer traslado entre bodegas. Siempre mueve stock, sin importar Status.
type Transfer struct {
	ID              string
	Date            time.Time
	FromWarehouseID string
	ToWarehouseID   string
	Amount          decimal.Decimal
	Shipping        decimal.Decimal
	Note            string
	Status          int
	CreatedAt       int64
	UpdatedAt       int64
	Items           []TransferItem
}

// TransferItem línea del traslado.
type TransferItem struct {
	ID           string
	TransferID   string
	ProductID    string
	Quantity     int64
	ProductPrice decimal.Decimal
	SubTotal     decimal.Decimal
	CreatedAt    int64
	UpdatedAt    int64
}
