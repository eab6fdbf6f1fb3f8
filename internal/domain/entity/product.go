package entity

import "time"

// Product producto del catálogo. UnitPrice es el precio de venta con IVA incluido.
type Product struct {
	ID        string
	SKU       string // código único
	Name      string
	Category  ProductCategory
	UnitPrice int64
	Unit      string // EA, BOX, KG...
	Status    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
