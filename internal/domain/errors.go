package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrStockNotFound     = errors.New("no existe stock para el producto en la bodega")
	ErrStorage           = errors.New("fallo de almacenamiento")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
)

// ValidationError entrada mal formada; Fields mapea campo -> regla incumplida.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError construye un ValidationError con un solo campo.
func NewValidationError(field, rule string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: rule}}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrInvalidInput.Error()
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+e.Fields[k])
	}
	return ErrInvalidInput.Error() + ": " + strings.Join(parts, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NotFoundError entidad referenciada inexistente (compra, venta, línea...).
type NotFoundError struct {
	Entity string
	ID     string
}

// NewNotFound construye un NotFoundError.
func NewNotFound(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s no encontrado", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// StockError fallo del ledger para un par (producto, bodega).
// Kind es ErrInsufficientStock o ErrStockNotFound.
type StockError struct {
	Kind        error
	ProductID   string
	WarehouseID string
	Requested   int64
	Available   int64
}

// InsufficientStock construye el error cuando un descuento dejaría la cantidad en negativo.
func InsufficientStock(productID, warehouseID string, requested, available int64) *StockError {
	return &StockError{
		Kind:        ErrInsufficientStock,
		ProductID:   productID,
		WarehouseID: warehouseID,
		Requested:   requested,
		Available:   available,
	}
}

// StockNotFound construye el error cuando se descuenta sobre un par sin entrada en el ledger.
func StockNotFound(productID, warehouseID string) *StockError {
	return &StockError{Kind: ErrStockNotFound, ProductID: productID, WarehouseID: warehouseID}
}

func (e *StockError) Error() string {
	if errors.Is(e.Kind, ErrInsufficientStock) {
		return fmt.Sprintf("%s: producto %s bodega %s (solicitado %d, disponible %d)",
			e.Kind, e.ProductID, e.WarehouseID, e.Requested, e.Available)
	}
	return fmt.Sprintf("%s: producto %s bodega %s", e.Kind, e.ProductID, e.WarehouseID)
}

func (e *StockError) Unwrap() error { return e.Kind }

// StorageError fallo del almacén transaccional; provoca rollback de la operación.
type StorageError struct {
	Op  string
	Err error
}

// NewStorageError envuelve err; devuelve nil si err es nil.
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrStorage, e.Op, e.Err)
}

func (e *StorageError) Unwrap() []error { return []error{ErrStorage, e.Err} }
