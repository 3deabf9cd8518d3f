package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Movements MovementService
	Stock     StockService
	Reports   ReportService
	JWTSecret string
	Log       *logger.Logger
}

// Router registra las rutas de la API. Todas requieren Bearer Token con uno de los roles
// reconocidos; las escrituras quedan restringidas a admin y bodeguero.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api",
		AuthMiddleware(deps.JWTSecret),
		RequireRole(RoleAdmin, RoleBodeguero, RoleVendedor),
	)
	write := RequireRole(RoleAdmin, RoleBodeguero)

	mv := NewMovementHandler(deps.Movements, deps.Log)

	purchases := api.Group("/purchases")
	purchases.Post("/", write, mv.CreatePurchase)
	purchases.Get("/:id", mv.GetPurchase)
	purchases.Put("/:id", write, mv.UpdatePurchase)
	purchases.Post("/:id/returns", write, mv.CreatePurchaseReturn)
	api.Get("/purchase-returns/:id", mv.GetPurchaseReturn)

	sales := api.Group("/sales")
	sales.Post("/", write, mv.CreateSale)
	sales.Get("/:id", mv.GetSale)
	sales.Put("/:id", write, mv.UpdateSale)
	sales.Post("/:id/returns", write, mv.CreateSalesReturn)
	api.Get("/sales-returns/:id", mv.GetSalesReturn)

	api.Post("/transfers", write, mv.CreateTransfer)
	api.Get("/transfers/:id", mv.GetTransfer)
	api.Post("/lost-damaged", write, mv.RegisterLostDamaged)

	stock := NewStockHandler(deps.Stock, deps.Log)
	api.Get("/stock/:productId/:warehouseId", stock.GetStock)
	api.Put("/stock/:productId/:warehouseId/alert", write, stock.SetAlert)

	rep := NewReportHandler(deps.Reports, deps.Log)
	reports := api.Group("/reports")
	reports.Get("/stock-alerts", rep.StockAlerts)
	reports.Get("/stock-alerts/export", rep.ExportStockAlerts)
	reports.Get("/inventory-value", rep.InventoryValue)
	reports.Get("/inventory-value/export", rep.ExportInventoryValue)
	reports.Get("/top-selling", rep.TopSelling)
	reports.Get("/weekly", rep.WeeklySeries)
	reports.Get("/sales", rep.SaleDateReport)
	reports.Get("/purchases", rep.PurchaseDateReport)
	reports.Get("/sales-by-product", rep.SalesByProduct)
	reports.Get("/purchases-by-product", rep.PurchasesByProduct)
}
