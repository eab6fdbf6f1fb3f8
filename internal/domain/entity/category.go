package entity

import "strings"

// ProductCategory categoría de producto (dato de referencia inmutable).
// Valores fuera de la lista se toleran y se tratan como categoría desconocida.
type ProductCategory string

const (
	CategoryA     ProductCategory = "A"
	CategoryB     ProductCategory = "B"
	CategoryC     ProductCategory = "C"
	CategoryOther ProductCategory = "OTHER"
)

// KnownCategories lista de categorías del catálogo, en orden de presentación.
var KnownCategories = []ProductCategory{CategoryA, CategoryB, CategoryC, CategoryOther}

// ParseCategory normaliza texto libre (mayúsculas, sin espacios); vacío es OTHER.
func ParseCategory(s string) ProductCategory {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return CategoryOther
	}
	return ProductCategory(s)
}
