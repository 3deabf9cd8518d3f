package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

const (
	defaultTopSelling = 5    // productos en top-selling si no se indica limit
	weeklyDays        = 7    // días de la serie semanal, hoy incluido
	exportMaxRows     = 5000 // filas máximas en una exportación
	dayLayout         = "2006-01-02"
)

// ReportUseCase reportes de stock, valorización, ventas y compras.
//
// Fuente de datos: ReportRepository (consultas read-only). Solo cuentan compras
// y ventas con status 0. Los resultados se guardan en ReportCache si hay una
// configurada; los movimientos la invalidan al confirmar.
type ReportUseCase struct {
	repo      repository.ReportRepository
	cache     ReportCache
	exporters map[string]Exporter
	clock     inventory.Clock
	log       *logger.Logger
}

// NewReportUseCase construye el caso de uso. cache, clock y log son opcionales.
func NewReportUseCase(
	repo repository.ReportRepository,
	cache ReportCache,
	exporters []Exporter,
	clock inventory.Clock,
	log *logger.Logger,
) *ReportUseCase {
	if cache == nil {
		cache = nopCache{}
	}
	if clock == nil {
		clock = inventory.SystemClock{}
	}
	if log == nil {
		log = logger.Nop()
	}
	byFormat := make(map[string]Exporter, len(exporters))
	for _, e := range exporters {
		byFormat[e.Format()] = e
	}
	return &ReportUseCase{repo: repo, cache: cache, exporters: byFormat, clock: clock, log: log}
}

// cached devuelve el valor de la caché o lo calcula con load y lo guarda.
// Un fallo de la caché no rompe el reporte.
func cached[T any](ctx context.Context, uc *ReportUseCase, key string, load func() (T, error)) (T, error) {
	var v T
	ok, err := uc.cache.Get(ctx, key, &v)
	if err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("caché de reportes: lectura fallida")
	} else if ok {
		return v, nil
	}
	v, err = load()
	if err != nil {
		return v, err
	}
	if err := uc.cache.Set(ctx, key, v); err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("caché de reportes: escritura fallida")
	}
	return v, nil
}

// ── Stock ─────────────────────────────────────────────────────────────────────

// StockAlerts lista las entradas con quantity <= alert, paginadas.
func (uc *ReportUseCase) StockAlerts(ctx context.Context, q dto.StockAlertQuery) (*dto.StockAlertListDTO, error) {
	q.DefaultPage()
	if err := dto.Validate(q); err != nil {
		return nil, err
	}
	key := fmt.Sprintf("stock-alerts:%s:%s:%s:%s:%d:%d",
		q.WarehouseID, strings.ToLower(q.Filter), q.SortBy, q.SortOrder, q.Limit, q.Offset)
	return cached(ctx, uc, key, func() (*dto.StockAlertListDTO, error) {
		rows, total, err := uc.repo.StockAlerts(ctx, alertQuery(q))
		if err != nil {
			return nil, fmt.Errorf("reportes: alertas de stock: %w", err)
		}
		return &dto.StockAlertListDTO{
			Items: toAlertDTOs(rows),
			Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
		}, nil
	})
}

// InventoryValue valoriza el stock por bodega (costo y precio) con totales generales.
func (uc *ReportUseCase) InventoryValue(ctx context.Context) (*dto.InventoryValueDTO, error) {
	return cached(ctx, uc, "inventory-value", func() (*dto.InventoryValueDTO, error) {
		rows, err := uc.repo.InventoryValue(ctx)
		if err != nil {
			return nil, fmt.Errorf("reportes: valor de inventario: %w", err)
		}
		out := &dto.InventoryValueDTO{
			Warehouses:     make([]dto.WarehouseValueDTO, 0, len(rows)),
			TotalCostValue: decimal.Zero,
			TotalPrice:     decimal.Zero,
		}
		for _, r := range rows {
			out.Warehouses = append(out.Warehouses, dto.WarehouseValueDTO{
				WarehouseID:   r.WarehouseID,
				WarehouseName: r.WarehouseName,
				TotalQuantity: r.TotalQuantity,
				CostValue:     r.CostValue.Round(2),
				PriceValue:    r.PriceValue.Round(2),
			})
			out.TotalQuantity += r.TotalQuantity
			out.TotalCostValue = out.TotalCostValue.Add(r.CostValue)
			out.TotalPrice = out.TotalPrice.Add(r.PriceValue)
		}
		out.TotalCostValue = out.TotalCostValue.Round(2)
		out.TotalPrice = out.TotalPrice.Round(2)
		return out, nil
	})
}

// ── Ventas y compras ──────────────────────────────────────────────────────────

// TopSelling productos más vendidos por cantidad. Sin rango usa el año en curso; limit <= 0 usa 5.
func (uc *ReportUseCase) TopSelling(ctx context.Context, from, to time.Time, limit int) (*dto.ProductReportDTO, error) {
	from, to, err := uc.resolveRange(from, to)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultTopSelling
	}
	key := fmt.Sprintf("top-selling:%s:%s:%d", rangeKey(from), rangeKey(to), limit)
	return cached(ctx, uc, key, func() (*dto.ProductReportDTO, error) {
		rows, err := uc.repo.TopSelling(ctx, from, to, limit)
		if err != nil {
			return nil, fmt.Errorf("reportes: más vendidos: %w", err)
		}
		return &dto.ProductReportDTO{From: from, To: to, Products: toProductDTOs(rows)}, nil
	})
}

// WeeklySeries total diario de ventas y compras de los últimos 7 días (hoy incluido),
// en orden ascendente; los días sin movimiento van en cero.
//
// Las dos series se consultan en paralelo.
func (uc *ReportUseCase) WeeklySeries(ctx context.Context) (*dto.WeeklySeriesDTO, error) {
	today := startOfDay(uc.clock.Now())
	from := today.AddDate(0, 0, -(weeklyDays - 1))
	to := today.AddDate(0, 0, 1).Add(-time.Nanosecond)

	return cached(ctx, uc, "weekly:"+today.Format(dayLayout), func() (*dto.WeeklySeriesDTO, error) {
		type seriesResult struct {
			rows []repository.DailyAmountRow
			err  error
		}
		salesCh := make(chan seriesResult, 1)
		purchasesCh := make(chan seriesResult, 1)

		go func() {
			rows, err := uc.repo.DailySales(ctx, from, to)
			salesCh <- seriesResult{rows, err}
		}()
		go func() {
			rows, err := uc.repo.DailyPurchases(ctx, from, to)
			purchasesCh <- seriesResult{rows, err}
		}()

		sales := <-salesCh
		purchases := <-purchasesCh
		if sales.err != nil {
			return nil, fmt.Errorf("reportes: serie de ventas: %w", sales.err)
		}
		if purchases.err != nil {
			return nil, fmt.Errorf("reportes: serie de compras: %w", purchases.err)
		}

		salesByDay := sumByDay(sales.rows)
		purchasesByDay := sumByDay(purchases.rows)
		out := &dto.WeeklySeriesDTO{Days: make([]dto.DailyPointDTO, 0, weeklyDays)}
		for i := 0; i < weeklyDays; i++ {
			day := from.AddDate(0, 0, i).Format(dayLayout)
			out.Days = append(out.Days, dto.DailyPointDTO{
				Date:      day,
				Sales:     salesByDay[day].Round(2),
				Purchases: purchasesByDay[day].Round(2),
			})
		}
		return out, nil
	})
}

// SaleDateReport resumen de ventas confirmadas en el rango.
func (uc *ReportUseCase) SaleDateReport(ctx context.Context, from, to time.Time) (*dto.SaleReportDTO, error) {
	from, to, err := uc.resolveRange(from, to)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("sales:%s:%s", rangeKey(from), rangeKey(to))
	return cached(ctx, uc, key, func() (*dto.SaleReportDTO, error) {
		s, err := uc.repo.SaleSummary(ctx, from, to)
		if err != nil {
			return nil, fmt.Errorf("reportes: resumen de ventas: %w", err)
		}
		return &dto.SaleReportDTO{
			From:            from,
			To:              to,
			SalesCount:      s.SalesCount,
			TotalSales:      s.Amount.Round(2),
			TotalShipping:   s.Shipping.Round(2),
			TotalTax:        s.Tax.Round(2),
			TotalDiscount:   s.Discount.Round(2),
			GrandTotal:      s.TotalAmount.Round(2),
			QuantitySold:    s.QuantitySold,
			TotalProfit:     s.Profit.Round(2),
			PaymentReceived: s.PaymentReceived.Round(2),
		}, nil
	})
}

// PurchaseDateReport resumen de compras recibidas en el rango.
func (uc *ReportUseCase) PurchaseDateReport(ctx context.Context, from, to time.Time) (*dto.PurchaseReportDTO, error) {
	from, to, err := uc.resolveRange(from, to)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("purchases:%s:%s", rangeKey(from), rangeKey(to))
	return cached(ctx, uc, key, func() (*dto.PurchaseReportDTO, error) {
		s, err := uc.repo.PurchaseSummary(ctx, from, to)
		if err != nil {
			return nil, fmt.Errorf("reportes: resumen de compras: %w", err)
		}
		return &dto.PurchaseReportDTO{
			From:              from,
			To:                to,
			PurchasesCount:    s.PurchasesCount,
			TotalPurchases:    s.Amount.Round(2),
			TotalShipping:     s.Shipping.Round(2),
			QuantityPurchased: s.QuantityPurchased,
			PaymentSent:       s.PaymentSent.Round(2),
		}, nil
	})
}

// SalesByProduct cantidades, montos y utilidad vendidos por producto en el rango.
func (uc *ReportUseCase) SalesByProduct(ctx context.Context, from, to time.Time) (*dto.ProductReportDTO, error) {
	return uc.byProduct(ctx, "sales-by-product", from, to, uc.repo.SalesByProduct)
}

// PurchasesByProduct cantidades y montos comprados por producto en el rango.
func (uc *ReportUseCase) PurchasesByProduct(ctx context.Context, from, to time.Time) (*dto.ProductReportDTO, error) {
	return uc.byProduct(ctx, "purchases-by-product", from, to, uc.repo.PurchasesByProduct)
}

func (uc *ReportUseCase) byProduct(
	ctx context.Context,
	name string,
	from, to time.Time,
	query func(ctx context.Context, from, to time.Time) ([]repository.ProductQuantityRow, error),
) (*dto.ProductReportDTO, error) {
	from, to, err := uc.resolveRange(from, to)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("%s:%s:%s", name, rangeKey(from), rangeKey(to))
	return cached(ctx, uc, key, func() (*dto.ProductReportDTO, error) {
		rows, err := query(ctx, from, to)
		if err != nil {
			return nil, fmt.Errorf("reportes: %s: %w", name, err)
		}
		return &dto.ProductReportDTO{From: from, To: to, Products: toProductDTOs(rows)}, nil
	})
}

// ── Exportación ───────────────────────────────────────────────────────────────

// ExportStockAlerts genera el reporte de alertas (sin paginar) en el formato pedido.
func (uc *ReportUseCase) ExportStockAlerts(ctx context.Context, q dto.StockAlertQuery, format string) (*dto.ExportFile, error) {
	exp, err := uc.exporter(format)
	if err != nil {
		return nil, err
	}
	q.Limit, q.Offset = 1, 0
	if err := dto.Validate(q); err != nil {
		return nil, err
	}
	rq := alertQuery(q)
	rq.Limit = exportMaxRows
	rows, _, err := uc.repo.StockAlerts(ctx, rq)
	if err != nil {
		return nil, fmt.Errorf("reportes: alertas de stock: %w", err)
	}
	data, err := exp.StockAlerts(toAlertDTOs(rows))
	if err != nil {
		return nil, fmt.Errorf("reportes: exportar alertas: %w", err)
	}
	return uc.file("alertas-stock", exp, data), nil
}

// ExportInventoryValue genera la valorización de inventario en el formato pedido.
func (uc *ReportUseCase) ExportInventoryValue(ctx context.Context, format string) (*dto.ExportFile, error) {
	exp, err := uc.exporter(format)
	if err != nil {
		return nil, err
	}
	v, err := uc.InventoryValue(ctx)
	if err != nil {
		return nil, err
	}
	data, err := exp.InventoryValue(v)
	if err != nil {
		return nil, fmt.Errorf("reportes: exportar valor de inventario: %w", err)
	}
	return uc.file("valor-inventario", exp, data), nil
}

func (uc *ReportUseCase) exporter(format string) (Exporter, error) {
	if format == "" {
		format = "xlsx"
	}
	exp, ok := uc.exporters[strings.ToLower(format)]
	if !ok {
		return nil, domain.NewValidationError("format", "oneof")
	}
	return exp, nil
}

func (uc *ReportUseCase) file(name string, exp Exporter, data []byte) *dto.ExportFile {
	return &dto.ExportFile{
		Filename:    fmt.Sprintf("%s-%s.%s", name, uc.clock.Now().Format(dayLayout), exp.Format()),
		ContentType: exp.ContentType(),
		Data:        data,
	}
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// resolveRange completa los extremos vacíos (1 de enero del año en curso hasta el fin de hoy)
// y rechaza from > to.
func (uc *ReportUseCase) resolveRange(from, to time.Time) (time.Time, time.Time, error) {
	now := uc.clock.Now()
	if from.IsZero() {
		from = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
	}
	if to.IsZero() {
		to = startOfDay(now).AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	if from.After(to) {
		return from, to, domain.NewValidationError("from", "ltefield")
	}
	return from, to, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func rangeKey(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func sumByDay(rows []repository.DailyAmountRow) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(rows))
	for _, r := range rows {
		day := r.Day.Format(dayLayout)
		out[day] = out[day].Add(r.Amount)
	}
	return out
}

func alertQuery(q dto.StockAlertQuery) repository.StockAlertQuery {
	return repository.StockAlertQuery{
		WarehouseID: q.WarehouseID,
		Name:        q.Filter,
		SortBy:      q.SortBy,
		SortDesc:    q.SortOrder == "desc",
		Limit:       q.Limit,
		Offset:      q.Offset,
	}
}

func toAlertDTOs(rows []repository.StockAlertRow) []dto.StockAlertDTO {
	out := make([]dto.StockAlertDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.StockAlertDTO{
			ProductID:     r.ProductID,
			ProductCode:   r.ProductCode,
			ProductName:   r.ProductName,
			WarehouseID:   r.WarehouseID,
			WarehouseName: r.WarehouseName,
			Quantity:      r.Quantity,
			Alert:         r.Alert,
		})
	}
	return out
}

func toProductDTOs(rows []repository.ProductQuantityRow) []dto.ProductSalesDTO {
	out := make([]dto.ProductSalesDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ProductSalesDTO{
			ProductID:   r.ProductID,
			ProductCode: r.ProductCode,
			ProductName: r.ProductName,
			Quantity:    r.Quantity,
			Amount:      r.Amount.Round(2),
			Profit:      r.Profit.Round(2),
		})
	}
	return out
}
