package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LostDamaged baja de inventario por pérdida o daño.
type LostDamaged struct {
	ID          string
	Date        time.Time
	WarehouseID string
	ProductID   string
	Quantity    int64
	Reason      string
	Note        string
	Amount      decimal.Decimal
	CreatedAt   int64
	UpdatedAt   int64
}
