package entity

import "github.com/shopspring/decimal"

// Product datos de catálogo que usan los reportes (nombre, costo y precio vigentes).
type Product struct {
	ID    string
	Code  string
	Name  string
	Cost  decimal.Decimal
	Price decimal.Decimal
}
