package dto

import "time"

// AssignStockRequest body para POST /api/stock.
type AssignStockRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	ShelfID   string `json:"shelf_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	CreatedBy string `json:"-"` // usuario de la sesión; lo fija el handler
}

// WithdrawStockRequest body para POST /api/stock/:id/withdraw.
type WithdrawStockRequest struct {
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	CreatedBy string `json:"-"`
}

// StockSearchRequest filtros de GET /api/stock.
type StockSearchRequest struct {
	Q     string `query:"q"`
	Field string `query:"field"`
}

// StockLinkResponse vínculo producto-estantería.
type StockLinkResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	ShelfID   string    `json:"shelf_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AssignStockResponse resultado de una asignación confirmada.
type AssignStockResponse struct {
	Message      string            `json:"message"`
	Link         StockLinkResponse `json:"link"`
	ProductTotal int               `json:"product_total"`
}

// WithdrawStockResponse resultado de una retirada. Deleted indica que el vínculo quedó en cero y se eliminó.
type WithdrawStockResponse struct {
	Message      string `json:"message"`
	LinkID       string `json:"link_id"`
	ProductID    string `json:"product_id"`
	Quantity     int    `json:"quantity"`
	Deleted      bool   `json:"deleted"`
	ProductTotal int    `json:"product_total"`
}

// GroupedStockRow fila agrupada por producto. Shelves es la lista completa; ShelvesDisplay la truncada.
type GroupedStockRow struct {
	ProductID      string `json:"product_id"`
	Name           string `json:"name"`
	SKU            string `json:"sku"`
	Barcode        string `json:"barcode"`
	TotalQuantity  int    `json:"total_quantity"`
	Shelves        string `json:"shelves"`
	ShelvesDisplay string `json:"shelves_display"`
}

// GroupedStockResponse listado agrupado de inventario.
type GroupedStockResponse struct {
	Items []GroupedStockRow `json:"items"`
	Total int               `json:"total"`
}

// ProductStockLink vínculo de un producto con los nombres de su estantería.
type ProductStockLink struct {
	ID         string   `json:"id"`
	ShelfID    string   `json:"shelf_id"`
	ShelfNames []string `json:"shelf_names"`
	Quantity   int      `json:"quantity"`
}

// ProductStockResponse datos de la pantalla de retirada de un producto.
type ProductStockResponse struct {
	Product ProductResponse    `json:"product"`
	Links   []ProductStockLink `json:"links"`
}

// ReconcileResponse resultado del recálculo de totales.
type ReconcileResponse struct {
	Message   string `json:"message"`
	Corrected int    `json:"corrected"`
}

// MovementSearchRequest filtros de GET /api/stock/movements. From es inclusivo y To exclusivo.
type MovementSearchRequest struct {
	PageRequest
	ProductID string     `query:"product_id"`
	ShelfID   string     `query:"shelf_id"`
	From      *time.Time `query:"-"`
	To        *time.Time `query:"-"`
}

// MovementResponse una asignación o retirada registrada.
type MovementResponse struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"product_id"`
	ShelfID      string    `json:"shelf_id"`
	LinkID       string    `json:"link_id"`
	Type         string    `json:"type"`
	Quantity     int       `json:"quantity"`
	LinkBalance  int       `json:"link_balance"`
	ProductTotal int       `json:"product_total"`
	CreatedBy    string    `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
}

// MovementListResponse historial paginado.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
