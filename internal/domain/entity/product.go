package entity

import "time"

// Product representa un producto del inventario.
// TotalQuantity es la suma cacheada de las cantidades de sus StockLink; solo la modifican
// los flujos de stock (asignar/retirar/reconciliar), nunca la edición del producto.
type Product struct {
	ID            string
	Name          string
	SKU           string
	Barcode       string
	TotalQuantity int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
