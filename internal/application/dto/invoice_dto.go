package dto

import "time"

// DeliveryItemRequest línea de una entrega confirmada.
// UnitPrice ausente toma el precio del catálogo (0 explícito es un precio válido);
// TaxType vacío deriva el impuesto de la categoría.
type DeliveryItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"min=1"`
	UnitPrice *int64 `json:"unit_price"`
	TaxType   string `json:"tax_type" validate:"omitempty,oneof=taxable exempt zero_rated"`
}

// CreateFromDeliveryRequest entrada para facturar una entrega.
type CreateFromDeliveryRequest struct {
	CompanyID string                `json:"company_id" validate:"required"`
	IssueDate *time.Time            `json:"issue_date"`
	Memo      string                `json:"memo"`
	Items     []DeliveryItemRequest `json:"items" validate:"required,min=1"`
}

// ManualItemRequest línea capturada a mano, sin catálogo.
type ManualItemRequest struct {
	ProductName string `json:"product_name" validate:"required"`
	Category    string `json:"category"`
	Quantity    int64  `json:"quantity" validate:"min=1"`
	UnitPrice   int64  `json:"unit_price" validate:"min=0"`
	TaxType     string `json:"tax_type" validate:"omitempty,oneof=taxable exempt zero_rated"`
}

// CreateManualInvoiceRequest entrada para armar una factura manual.
type CreateManualInvoiceRequest struct {
	CompanyID string              `json:"company_id" validate:"required"`
	IssueDate *time.Time          `json:"issue_date"`
	Memo      string              `json:"memo"`
	Items     []ManualItemRequest `json:"items" validate:"required,min=1"`
}

// UpdateItemRequest edición de una línea en borrador. Campos nil no cambian.
type UpdateItemRequest struct {
	Quantity  *int64  `json:"quantity"`
	UnitPrice *int64  `json:"unit_price"`
	TaxType   *string `json:"tax_type" validate:"omitempty,oneof=taxable exempt zero_rated"`
}

// ChangeStatusRequest nuevo estado elegido en el menú.
type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft issued sent approved cancelled"`
}

// LineItemResponse línea de factura con sus montos derivados.
type LineItemResponse struct {
	ProductID    string `json:"product_id,omitempty"`
	ProductName  string `json:"product_name"`
	Category     string `json:"category"`
	Quantity     int64  `json:"quantity"`
	UnitPrice    int64  `json:"unit_price"`
	TaxType      string `json:"tax_type"`
	SupplyAmount int64  `json:"supply_amount"`
	TaxAmount    int64  `json:"tax_amount"`
	LineTotal    int64  `json:"line_total"`
}

// InvoiceResponse salida de una factura. Items va vacío en los listados.
type InvoiceResponse struct {
	ID                string             `json:"id"`
	InvoiceNumber     string             `json:"invoice_number"`
	CompanyID         string             `json:"company_id"`
	IssueDate         time.Time          `json:"issue_date"`
	Status            string             `json:"status"`
	Memo              string             `json:"memo,omitempty"`
	TotalSupplyAmount int64              `json:"total_supply_amount"`
	TotalTaxAmount    int64              `json:"total_tax_amount"`
	TotalAmount       int64              `json:"total_amount"`
	Items             []LineItemResponse `json:"items,omitempty"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

// InvoiceListRequest filtros del listado (query string).
type InvoiceListRequest struct {
	CompanyID string `query:"company_id"`
	Status    string `query:"status"`
	Year      int    `query:"year"`
	PageRequest
}

// InvoiceListResponse lista paginada de facturas.
type InvoiceListResponse struct {
	Items []InvoiceResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// TransitionsResponse estados a los que puede pasar la factura.
type TransitionsResponse struct {
	Status   string   `json:"status"`
	Allowed  []string `json:"allowed"`
	Terminal bool     `json:"terminal"`
}
