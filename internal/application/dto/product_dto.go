package dto

import "time"

// CreateProductRequest entrada para crear un producto del catálogo.
// UnitPrice con IVA incluido, en unidad monetaria mínima.
type CreateProductRequest struct {
	SKU       string `json:"sku" validate:"required,min=1,max=100"`
	Name      string `json:"name" validate:"required,min=1,max=200"`
	Category  string `json:"category"`
	UnitPrice int64  `json:"unit_price" validate:"min=0"`
	Unit      string `json:"unit"`
}

// UpdateProductRequest entrada para actualizar un producto (SKU no cambia).
type UpdateProductRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=200"`
	Category  *string `json:"category"`
	UnitPrice *int64  `json:"unit_price"`
	Unit      *string `json:"unit"`
	Status    *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// ProductResponse salida de un producto. SuggestedTaxType sale de la tabla de clasificación.
type ProductResponse struct {
	ID               string    `json:"id"`
	SKU              string    `json:"sku"`
	Name             string    `json:"name"`
	Category         string    `json:"category"`
	SuggestedTaxType string    `json:"suggested_tax_type"`
	UnitPrice        int64     `json:"unit_price"`
	Unit             string    `json:"unit"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
