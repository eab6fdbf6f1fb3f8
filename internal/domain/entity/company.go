package entity

import "time"

// Tipos de relación comercial de una empresa.
const (
	CompanyTypeCustomer = "customer"
	CompanyTypeSupplier = "supplier"
	CompanyTypeBoth     = "both"
)

// Company empresa con la que se comercia (cliente o proveedor).
// Para el motor de facturación solo importan ID y Name.
type Company struct {
	ID             string
	Name           string
	BusinessNumber string // número de registro de negocio (10 dígitos, ver pkg/bizno)
	Region         string
	Type           string // customer, supplier, both
	Phone          string
	Email          string
	Address        string
	Status         string // active, inactive
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
