package dto

import "time"

// CreateCompanyRequest entrada para crear una empresa cliente/proveedor.
type CreateCompanyRequest struct {
	Name           string `json:"name" validate:"required,min=1,max=200"`
	BusinessNumber string `json:"business_number" validate:"required"`
	Region         string `json:"region"`
	Type           string `json:"type" validate:"omitempty,oneof=customer supplier both"`
	Phone          string `json:"phone"`
	Email          string `json:"email" validate:"omitempty,email"`
	Address        string `json:"address"`
}

// UpdateCompanyRequest entrada para actualizar una empresa (campos opcionales).
type UpdateCompanyRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	Region  *string `json:"region"`
	Type    *string `json:"type" validate:"omitempty,oneof=customer supplier both"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Address *string `json:"address"`
	Status  *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	BusinessNumber string    `json:"business_number"`
	Region         string    `json:"region"`
	Type           string    `json:"type"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email"`
	Address        string    `json:"address"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CompanyListResponse lista paginada de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
