package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Compras ───────────────────────────────────────────────────────────────────

// PurchaseItemRequest línea de compra; el subtotal lo calcula el servidor.
type PurchaseItemRequest struct {
	ProductID   string          `json:"product_id" validate:"required"`
	Quantity    int64           `json:"quantity" validate:"gt=0"`
	ProductCost decimal.Decimal `json:"product_cost" validate:"gte=0"`
}

// CreatePurchaseRequest body para POST /api/purchases.
// Status 0 = recibida (suma stock), 1 = pendiente.
type CreatePurchaseRequest struct {
	Date          time.Time             `json:"date"`
	WarehouseID   string                `json:"warehouse_id" validate:"required"`
	SupplierID    string                `json:"supplier_id" validate:"required"`
	Shipping      decimal.Decimal       `json:"shipping" validate:"gte=0"`
	RefCode       string                `json:"ref_code"`
	PaymentTypeID string                `json:"payment_type_id"`
	PaymentStatus int                   `json:"payment_status" validate:"min=0,max=2"`
	Note          string                `json:"note"`
	Status        int                   `json:"status" validate:"min=0,max=1"`
	Items         []PurchaseItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdatePurchaseRequest body para PUT /api/purchases/:id.
// Campos ausentes conservan su valor; Items ausente reaplica las líneas actuales.
type UpdatePurchaseRequest struct {
	Date          *time.Time            `json:"date"`
	WarehouseID   *string               `json:"warehouse_id" validate:"omitempty,min=1"`
	SupplierID    *string               `json:"supplier_id" validate:"omitempty,min=1"`
	Shipping      *decimal.Decimal      `json:"shipping" validate:"omitempty,gte=0"`
	RefCode       *string               `json:"ref_code"`
	PaymentTypeID *string               `json:"payment_type_id"`
	PaymentStatus *int                  `json:"payment_status" validate:"omitempty,min=0,max=2"`
	Note          *string               `json:"note"`
	Status        *int                  `json:"status" validate:"omitempty,min=0,max=1"`
	Items         []PurchaseItemRequest `json:"items" validate:"omitempty,min=1,dive"`
}

// ── Ventas ────────────────────────────────────────────────────────────────────

// SaleItemRequest línea de venta; subtotal y utilidad los calcula el servidor.
type SaleItemRequest struct {
	ProductID    string          `json:"product_id" validate:"required"`
	Quantity     int64           `json:"quantity" validate:"gt=0"`
	ProductPrice decimal.Decimal `json:"product_price" validate:"gte=0"`
	ProductCost  decimal.Decimal `json:"product_cost" validate:"gte=0"`
}

// CreateSaleRequest body para POST /api/sales. Status 0 = confirmada (descuenta stock).
type CreateSaleRequest struct {
	Date          time.Time         `json:"date"`
	WarehouseID   string            `json:"warehouse_id" validate:"required"`
	CustomerID    string            `json:"customer_id" validate:"required"`
	UserID        string            `json:"-"`
	Shipping      decimal.Decimal   `json:"shipping" validate:"gte=0"`
	Discount      decimal.Decimal   `json:"discount" validate:"gte=0"`
	TaxPercent    decimal.Decimal   `json:"tax_percent" validate:"gte=0,lte=100"`
	PaymentTypeID string            `json:"payment_type_id"`
	PaymentStatus int               `json:"payment_status" validate:"min=0,max=2"`
	Note          string            `json:"note"`
	Status        int               `json:"status" validate:"min=0,max=1"`
	Items         []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateSaleRequest body para PUT /api/sales/:id (actualización parcial de cabecera).
type UpdateSaleRequest struct {
	Date          *time.Time        `json:"date"`
	WarehouseID   *string           `json:"warehouse_id" validate:"omitempty,min=1"`
	CustomerID    *string           `json:"customer_id" validate:"omitempty,min=1"`
	Shipping      *decimal.Decimal  `json:"shipping" validate:"omitempty,gte=0"`
	Discount      *decimal.Decimal  `json:"discount" validate:"omitempty,gte=0"`
	TaxPercent    *decimal.Decimal  `json:"tax_percent" validate:"omitempty,gte=0,lte=100"`
	PaymentTypeID *string           `json:"payment_type_id"`
	PaymentStatus *int              `json:"payment_status" validate:"omitempty,min=0,max=2"`
	Note          *string           `json:"note"`
	Status        *int              `json:"status" validate:"omitempty,min=0,max=1"`
	Items         []SaleItemRequest `json:"items" validate:"omitempty,min=1,dive"`
}

// ── Traslados y bajas ─────────────────────────────────────────────────────────

type TransferItemRequest struct {
	ProductID    string          `json:"product_id" validate:"required"`
	Quantity     int64           `json:"quantity" validate:"gt=0"`
	ProductPrice decimal.Decimal `json:"product_price" validate:"gte=0"`
}

// CreateTransferRequest body para POST /api/transfers.
type CreateTransferRequest struct {
	Date            time.Time             `json:"date"`
	FromWarehouseID string                `json:"from_warehouse_id" validate:"required"`
	ToWarehouseID   string                `json:"to_warehouse_id" validate:"required,nefield=FromWarehouseID"`
	Shipping        decimal.Decimal       `json:"shipping" validate:"gte=0"`
	Note            string                `json:"note"`
	Status          int                   `json:"status" validate:"min=0,max=1"`
	Items           []TransferItemRequest `json:"items" validate:"required,min=1,dive"`
}

// LostDamagedRequest body para POST /api/lost-damaged.
type LostDamagedRequest struct {
	Date        time.Time       `json:"date"`
	WarehouseID string          `json:"warehouse_id" validate:"required"`
	ProductID   string          `json:"product_id" validate:"required"`
	Quantity    int64           `json:"quantity" validate:"gt=0"`
	Reason      string          `json:"reason" validate:"required,max=255"`
	Note        string          `json:"note"`
	Amount      decimal.Decimal `json:"amount" validate:"gte=0"`
}

// ── Devoluciones ──────────────────────────────────────────────────────────────

// ReturnItemRequest producto y cantidad devuelta; precio y costo se toman de la línea original.
type ReturnItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"gt=0"`
}

// CreateReturnRequest body para POST /api/purchases/:id/returns y /api/sales/:id/returns.
type CreateReturnRequest struct {
	Date   time.Time           `json:"date"`
	Note   string              `json:"note"`
	Status int                 `json:"status" validate:"min=0,max=1"`
	Items  []ReturnItemRequest `json:"items" validate:"required,min=1,dive"`
}

// ── Stock ─────────────────────────────────────────────────────────────────────

// SetAlertRequest body para PUT /api/stock/:productId/:warehouseId/alert.
type SetAlertRequest struct {
	Alert int64 `json:"alert" validate:"gte=0"`
}
