package entity

// StockEntry contador de existencias de un producto en una bodega (único por par).
// Se crea con el primer movimiento entrante; nunca se borra en operación normal.
type StockEntry struct {
	ProductID   string
	WarehouseID string
	Quantity    int64
	Alert       int64 // umbral de alerta: quantity <= alert entra en el reporte
	CreatedAt   int64 // epoch ms
	UpdatedAt   int64 // epoch ms
}
