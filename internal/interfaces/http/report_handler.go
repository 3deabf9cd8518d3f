package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

// ReportService reportes de solo lectura (*analytics.ReportUseCase).
type ReportService interface {
	StockAlerts(ctx context.Context, q dto.StockAlertQuery) (*dto.StockAlertListDTO, error)
	InventoryValue(ctx context.Context) (*dto.InventoryValueDTO, error)
	TopSelling(ctx context.Context, from, to time.Time, limit int) (*dto.ProductReportDTO, error)
	WeeklySeries(ctx context.Context) (*dto.WeeklySeriesDTO, error)
	SaleDateReport(ctx context.Context, from, to time.Time) (*dto.SaleReportDTO, error)
	PurchaseDateReport(ctx context.Context, from, to time.Time) (*dto.PurchaseReportDTO, error)
	SalesByProduct(ctx context.Context, from, to time.Time) (*dto.ProductReportDTO, error)
	PurchasesByProduct(ctx context.Context, from, to time.Time) (*dto.ProductReportDTO, error)
	ExportStockAlerts(ctx context.Context, q dto.StockAlertQuery, format string) (*dto.ExportFile, error)
	ExportInventoryValue(ctx context.Context, format string) (*dto.ExportFile, error)
}

// ReportHandler endpoints /api/reports.
type ReportHandler struct {
	uc  ReportService
	log *logger.Logger
}

func NewReportHandler(uc ReportService, log *logger.Logger) *ReportHandler {
	return &ReportHandler{uc: uc, log: log}
}

// StockAlerts godoc
// @Summary      Productos en alerta de stock
// @Description  Entradas con cantidad menor o igual al umbral, paginadas.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "Filtrar por bodega"
// @Param        filter        query  string  false  "Nombre del producto (contiene)"
// @Param        sort_by       query  string  false  "name | qty | id"
// @Param        sort_order    query  string  false  "asc | desc"
// @Param        limit         query  int     false  "Tamaño de página (default 20, max 100)"
// @Param        offset        query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.StockAlertListDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/stock-alerts [get]
func (h *ReportHandler) StockAlerts(c *fiber.Ctx) error {
	var q dto.StockAlertQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidParams(c)
	}
	out, err := h.uc.StockAlerts(c.UserContext(), q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// InventoryValue godoc
// @Summary      Valor del inventario por bodega
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InventoryValueDTO
// @Router       /api/reports/inventory-value [get]
func (h *ReportHandler) InventoryValue(c *fiber.Ctx) error {
	out, err := h.uc.InventoryValue(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// TopSelling godoc
// @Summary      Productos más vendidos
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from   query  string  false  "Inicio (YYYY-MM-DD). Default: 1 de enero del año en curso."
// @Param        to     query  string  false  "Fin (YYYY-MM-DD). Default: hoy."
// @Param        limit  query  int     false  "Cantidad de productos (default 5)"
// @Success      200  {object}  dto.ProductReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/top-selling [get]
func (h *ReportHandler) TopSelling(c *fiber.Ctx) error {
	var q dto.DateRangeQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidParams(c)
	}
	from, to, err := q.Bounds()
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.TopSelling(c.UserContext(), from, to, q.Limit)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// WeeklySeries godoc
// @Summary      Ventas vs compras de los últimos 7 días
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.WeeklySeriesDTO
// @Router       /api/reports/weekly [get]
func (h *ReportHandler) WeeklySeries(c *fiber.Ctx) error {
	out, err := h.uc.WeeklySeries(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// SaleDateReport godoc
// @Summary      Resumen de ventas por rango de fechas
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Inicio (YYYY-MM-DD)"
// @Param        to    query  string  false  "Fin (YYYY-MM-DD)"
// @Success      200  {object}  dto.SaleReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/sales [get]
func (h *ReportHandler) SaleDateReport(c *fiber.Ctx) error {
	return h.byRange(c, func(ctx context.Context, from, to time.Time) (interface{}, error) {
		return h.uc.SaleDateReport(ctx, from, to)
	})
}

// PurchaseDateReport godoc
// @Summary      Resumen de compras por rango de fechas
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Inicio (YYYY-MM-DD)"
// @Param        to    query  string  false  "Fin (YYYY-MM-DD)"
// @Success      200  {object}  dto.PurchaseReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/purchases [get]
func (h *ReportHandler) PurchaseDateReport(c *fiber.Ctx) error {
	return h.byRange(c, func(ctx context.Context, from, to time.Time) (interface{}, error) {
		return h.uc.PurchaseDateReport(ctx, from, to)
	})
}

// SalesByProduct godoc
// @Summary      Ventas agrupadas por producto
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Inicio (YYYY-MM-DD)"
// @Param        to    query  string  false  "Fin (YYYY-MM-DD)"
// @Success      200  {object}  dto.ProductReportDTO
// @Router       /api/reports/sales-by-product [get]
func (h *ReportHandler) SalesByProduct(c *fiber.Ctx) error {
	return h.byRange(c, func(ctx context.Context, from, to time.Time) (interface{}, error) {
		return h.uc.SalesByProduct(ctx, from, to)
	})
}

// PurchasesByProduct godoc
// @Summary      Compras agrupadas por producto
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Inicio (YYYY-MM-DD)"
// @Param        to    query  string  false  "Fin (YYYY-MM-DD)"
// @Success      200  {object}  dto.ProductReportDTO
// @Router       /api/reports/purchases-by-product [get]
func (h *ReportHandler) PurchasesByProduct(c *fiber.Ctx) error {
	return h.byRange(c, func(ctx context.Context, from, to time.Time) (interface{}, error) {
		return h.uc.PurchasesByProduct(ctx, from, to)
	})
}

func (h *ReportHandler) byRange(c *fiber.Ctx, load func(ctx context.Context, from, to time.Time) (interface{}, error)) error {
	var q dto.DateRangeQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidParams(c)
	}
	from, to, err := q.Bounds()
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := load(c.UserContext(), from, to)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// ExportStockAlerts godoc
// @Summary      Exportar alertas de stock
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      application/pdf
// @Param        format        query  string  false  "xlsx | pdf (default xlsx)"
// @Param        warehouse_id  query  string  false  "Filtrar por bodega"
// @Param        filter        query  string  false  "Nombre del producto (contiene)"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/stock-alerts/export [get]
func (h *ReportHandler) ExportStockAlerts(c *fiber.Ctx) error {
	var q dto.StockAlertQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidParams(c)
	}
	f, err := h.uc.ExportStockAlerts(c.UserContext(), q, c.Query("format"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return sendFile(c, f)
}

// ExportInventoryValue godoc
// @Summary      Exportar valor del inventario
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      application/pdf
// @Param        format  query  string  false  "xlsx | pdf (default xlsx)"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/inventory-value/export [get]
func (h *ReportHandler) ExportInventoryValue(c *fiber.Ctx) error {
	f, err := h.uc.ExportInventoryValue(c.UserContext(), c.Query("format"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return sendFile(c, f)
}

func sendFile(c *fiber.Ctx, f *dto.ExportFile) error {
	c.Set(fiber.HeaderContentType, f.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+f.Filename+`"`)
	return c.Send(f.Data)
}
