// Package analytics contiene los reportes de solo lectura sobre el stock,
// las ventas y las compras, con caché opcional y exportación a xlsx/pdf.
package analytics

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
)

// ReportCache guarda resultados de reportes serializados (JSON) por clave.
// Get devuelve false si la clave no está.
type ReportCache interface {
	Get(ctx context.Context, key string, dst interface{}) (bool, error)
	Set(ctx context.Context, key string, v interface{}) error
}

// Exporter genera un archivo con el contenido de un reporte.
type Exporter interface {
	Format() string // "xlsx" | "pdf"
	ContentType() string
	StockAlerts(items []dto.StockAlertDTO) ([]byte, error)
	InventoryValue(v *dto.InventoryValueDTO) ([]byte, error)
}

type nopCache struct{}

func (nopCache) Get(context.Context, string, interface{}) (bool, error) { return false, nil }
func (nopCache) Set(context.Context, string, interface{}) error         { return nil }
