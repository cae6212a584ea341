package dto

import "time"

// CreateProductRequest entrada para crear un producto. Nombre, SKU y código de barras son obligatorios.
type CreateProductRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	SKU     string `json:"sku" validate:"required,min=1,max=100"`
	Barcode string `json:"barcode" validate:"required,min=1,max=100"`
}

// UpdateProductRequest actualización parcial de un producto. La cantidad total no se edita aquí.
type UpdateProductRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	SKU     *string `json:"sku" validate:"omitempty,min=1,max=100"`
	Barcode *string `json:"barcode" validate:"omitempty,min=1,max=100"`
}

// ProductSearchRequest filtros de GET /api/products.
type ProductSearchRequest struct {
	PageRequest
	Q     string `query:"q"`
	Field string `query:"field"` // name | sku | barcode (por defecto barcode)
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	SKU           string    `json:"sku"`
	Barcode       string    `json:"barcode"`
	TotalQuantity int       `json:"total_quantity"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
