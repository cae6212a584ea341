package dto

import "time"

// CreateShelfRequest entrada para crear una estantería.
type CreateShelfRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

// UpdateShelfRequest entrada para renombrar una estantería.
type UpdateShelfRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=200"`
}

// ShelfSearchRequest filtros de GET /api/shelves.
type ShelfSearchRequest struct {
	PageRequest
	Q string `query:"q"`
}

// ShelfProductResponse producto guardado en la estantería con su cantidad.
type ShelfProductResponse struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}

// ShelfResponse salida de una estantería. Products solo se llena en el listado.
type ShelfResponse struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	Products  []ShelfProductResponse `json:"products"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// ShelfListResponse lista paginada de estanterías.
type ShelfListResponse struct {
	Items []ShelfResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
