package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

type PurchaseItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	Quantity    int64           `json:"quantity"`
	ProductCost decimal.Decimal `json:"product_cost"`
	SubTotal    decimal.Decimal `json:"sub_total"`
}

// PurchaseResponse compra con sus líneas.
type PurchaseResponse struct {
	ID            string                 `json:"id"`
	Date          time.Time              `json:"date"`
	WarehouseID   string                 `json:"warehouse_id"`
	SupplierID    string                 `json:"supplier_id"`
	Amount        decimal.Decimal        `json:"amount"`
	Shipping      decimal.Decimal        `json:"shipping"`
	RefCode       string                 `json:"ref_code"`
	PaymentTypeID string                 `json:"payment_type_id"`
	PaymentStatus int                    `json:"payment_status"`
	Note          string                 `json:"note"`
	Status        int                    `json:"status"`
	CreatedAt     int64                  `json:"created_at"`
	UpdatedAt     int64                  `json:"updated_at"`
	Items         []PurchaseItemResponse `json:"items"`
}

func NewPurchaseResponse(p *entity.Purchase) *PurchaseResponse {
	if p == nil {
		return nil
	}
	items := make([]PurchaseItemResponse, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, PurchaseItemResponse{
			ID: it.ID, ProductID: it.ProductID, Quantity: it.Quantity,
			ProductCost: it.ProductCost, SubTotal: it.SubTotal,
		})
	}
	return &PurchaseResponse{
		ID: p.ID, Date: p.Date, WarehouseID: p.WarehouseID, SupplierID: p.SupplierID,
		Amount: p.Amount, Shipping: p.Shipping, RefCode: p.RefCode,
		PaymentTypeID: p.PaymentTypeID, PaymentStatus: p.PaymentStatus,
		Note: p.Note, Status: p.Status, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
		Items: items,
	}
}

type SaleItemResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id"`
	Quantity     int64           `json:"quantity"`
	ProductPrice decimal.Decimal `json:"product_price"`
	ProductCost  decimal.Decimal `json:"product_cost"`
	Profit       decimal.Decimal `json:"profit"`
	SubTotal     decimal.Decimal `json:"sub_total"`
}

// SaleResponse venta con sus líneas y totales.
type SaleResponse struct {
	ID            string             `json:"id"`
	Date          time.Time          `json:"date"`
	WarehouseID   string             `json:"warehouse_id"`
	CustomerID    string             `json:"customer_id"`
	UserID        string             `json:"user_id"`
	Amount        decimal.Decimal    `json:"amount"`
	Shipping      decimal.Decimal    `json:"shipping"`
	Discount      decimal.Decimal    `json:"discount"`
	TaxPercent    decimal.Decimal    `json:"tax_percent"`
	TaxAmount     decimal.Decimal    `json:"tax_amount"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
	PaymentTypeID string             `json:"payment_type_id"`
	PaymentStatus int                `json:"payment_status"`
	Note          string             `json:"note"`
	Status        int                `json:"status"`
	CreatedAt     int64              `json:"created_at"`
	UpdatedAt     int64              `json:"updated_at"`
	Items         []SaleItemResponse `json:"items"`
}

func NewSaleResponse(s *entity.Sale) *SaleResponse {
	if s == nil {
		return nil
	}
	items := make([]SaleItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, SaleItemResponse{
			ID: it.ID, ProductID: it.ProductID, Quantity: it.Quantity,
			ProductPrice: it.ProductPrice, ProductCost: it.ProductCost,
			Profit: it.Profit, SubTotal: it.SubTotal,
		})
	}
	return &SaleResponse{
		ID: s.ID, Date: s.Date, WarehouseID: s.WarehouseID, CustomerID: s.CustomerID, UserID: s.UserID,
		Amount: s.Amount, Shipping: s.Shipping, Discount: s.Discount,
		TaxPercent: s.TaxPercent, TaxAmount: s.TaxAmount, TotalAmount: s.TotalAmount,
		PaymentTypeID: s.PaymentTypeID, PaymentStatus: s.PaymentStatus,
		Note: s.Note, Status: s.Status, CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt,
		Items: items,
	}
}

type TransferItemResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id"`
	Quantity     int64           `json:"quantity"`
	ProductPrice decimal.Decimal `json:"product_price"`
	SubTotal     decimal.Decimal `json:"sub_total"`
}

type TransferResponse struct {
	ID              string                 `json:"id"`
	Date            time.Time              `json:"date"`
	FromWarehouseID string                 `json:"from_warehouse_id"`
	ToWarehouseID   string                 `json:"to_warehouse_id"`
	Amount          decimal.Decimal        `json:"amount"`
	Shipping        decimal.Decimal        `json:"shipping"`
	Note            string                 `json:"note"`
	Status          int                    `json:"status"`
	CreatedAt       int64                  `json:"created_at"`
	Items           []TransferItemResponse `json:"items"`
}

func NewTransferResponse(t *entity.Transfer) *TransferResponse {
	if t == nil {
		return nil
	}
	items := make([]TransferItemResponse, 0, len(t.Items))
	for _, it := range t.Items {
		items = append(items, TransferItemResponse{
			ID: it.ID, ProductID: it.ProductID, Quantity: it.Quantity,
			ProductPrice: it.ProductPrice, SubTotal: it.SubTotal,
		})
	}
	return &TransferResponse{
		ID: t.ID, Date: t.Date, FromWarehouseID: t.FromWarehouseID, ToWarehouseID: t.ToWarehouseID,
		Amount: t.Amount, Shipping: t.Shipping, Note: t.Note, Status: t.Status,
		CreatedAt: t.CreatedAt, Items: items,
	}
}

type LostDamagedResponse struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	WarehouseID string          `json:"warehouse_id"`
	ProductID   string          `json:"product_id"`
	Quantity    int64           `json:"quantity"`
	Reason      string          `json:"reason"`
	Note        string          `json:"note"`
	Amount      decimal.Decimal `json:"amount"`
	CreatedAt   int64           `json:"created_at"`
}

func NewLostDamagedResponse(ld *entity.LostDamaged) *LostDamagedResponse {
	if ld == nil {
		return nil
	}
	return &LostDamagedResponse{
		ID: ld.ID, Date: ld.Date, WarehouseID: ld.WarehouseID, ProductID: ld.ProductID,
		Quantity: ld.Quantity, Reason: ld.Reason, Note: ld.Note, Amount: ld.Amount,
		CreatedAt: ld.CreatedAt,
	}
}

// ReturnItemResponse línea devuelta (compra o venta).
type ReturnItemResponse struct {
	ID           string           `json:"id"`
	ProductID    string           `json:"product_id"`
	Quantity     int64            `json:"quantity"`
	ProductPrice *decimal.Decimal `json:"product_price,omitempty"`
	ProductCost  decimal.Decimal  `json:"product_cost"`
	SubTotal     decimal.Decimal  `json:"sub_total"`
}

// ReturnResponse devolución de compra (PurchaseID) o de venta (SaleID).
type ReturnResponse struct {
	ID          string               `json:"id"`
	PurchaseID  string               `json:"purchase_id,omitempty"`
	SaleID      string               `json:"sale_id,omitempty"`
	WarehouseID string               `json:"warehouse_id"`
	Date        time.Time            `json:"date"`
	TotalAmount decimal.Decimal      `json:"total_amount"`
	Note        string               `json:"note"`
	Status      int                  `json:"status"`
	CreatedAt   int64                `json:"created_at"`
	Items       []ReturnItemResponse `json:"items"`
}

func NewPurchaseReturnResponse(r *entity.PurchaseReturn) *ReturnResponse {
	if r == nil {
		return nil
	}
	items := make([]ReturnItemResponse, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, ReturnItemResponse{
			ID: it.ID, ProductID: it.ProductID, Quantity: it.Quantity,
			ProductCost: it.ProductCost, SubTotal: it.SubTotal,
		})
	}
	return &ReturnResponse{
		ID: r.ID, PurchaseID: r.PurchaseID, WarehouseID: r.WarehouseID, Date: r.Date,
		TotalAmount: r.TotalAmount, Note: r.Note, Status: r.Status, CreatedAt: r.CreatedAt,
		Items: items,
	}
}

func NewSalesReturnResponse(r *entity.SalesReturn) *ReturnResponse {
	if r == nil {
		return nil
	}
	items := make([]ReturnItemResponse, 0, len(r.Items))
	for _, it := range r.Items {
		price := it.ProductPrice
		items = append(items, ReturnItemResponse{
			ID: it.ID, ProductID: it.ProductID, Quantity: it.Quantity,
			ProductPrice: &price, ProductCost: it.ProductCost, SubTotal: it.SubTotal,
		})
	}
	return &ReturnResponse{
		ID: r.ID, SaleID: r.SaleID, WarehouseID: r.WarehouseID, Date: r.Date,
		TotalAmount: r.TotalAmount, Note: r.Note, Status: r.Status, CreatedAt: r.CreatedAt,
		Items: items,
	}
}

// StockResponse existencia de un producto en una bodega.
type StockResponse struct {
	ProductID   string `json:"product_id"`
	WarehouseID string `json:"warehouse_id"`
	Quantity    int64  `json:"quantity"`
	Alert       int64  `json:"alert"`
	UpdatedAt   int64  `json:"updated_at"`
}

func NewStockResponse(e *entity.StockEntry) *StockResponse {
	if e == nil {
		return nil
	}
	return &StockResponse{
		ProductID: e.ProductID, WarehouseID: e.WarehouseID,
		Quantity: e.Quantity, Alert: e.Alert, UpdatedAt: e.UpdatedAt,
	}
}
