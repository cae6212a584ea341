package entity

import "time"

// StockLink asocia un producto a una estantería con una cantidad positiva.
// Como máximo existe uno por par (ProductID, ShelfID).
type StockLink struct {
	ID        string
	ProductID string
	ShelfID   string
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProductSnapshot copia de los campos de producto embebidos en una consulta de stock.
type ProductSnapshot struct {
	Name          string
	SKU           string
	Barcode       string
	TotalQuantity int
}

// StockLinkDetail es un StockLink con el producto y los nombres de estantería embebidos.
// ShelfNames es siempre un slice (normalmente de un elemento; vacío si la estantería no se resolvió).
type StockLinkDetail struct {
	StockLink
	Product    ProductSnapshot
	ShelfNames []string
}
