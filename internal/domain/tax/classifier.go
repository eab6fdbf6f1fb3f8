// Package tax contiene la clasificación de impuesto por categoría y el cálculo
// de valor de suministro / IVA por línea. Funciones puras, sin I/O.
package tax

import "github.com/jhoicas/facturas-api/internal/domain/entity"

// categoryTaxTable regla de negocio: categoría → tipo de impuesto.
// Lo que no esté aquí es exento.
var categoryTaxTable = map[entity.ProductCategory]entity.TaxType{
	entity.CategoryA:     entity.TaxTypeTaxable,
	entity.CategoryB:     entity.TaxTypeTaxable,
	entity.CategoryC:     entity.TaxTypeExempt,
	entity.CategoryOther: entity.TaxTypeExempt,
}

// Classify devuelve el tipo de impuesto sugerido para la categoría.
// Nunca falla: categorías desconocidas caen en exento. ZeroRated no se deriva nunca.
func Classify(category entity.ProductCategory) entity.TaxType {
	if t, ok := categoryTaxTable[category]; ok {
		return t
	}
	return entity.TaxTypeExempt
}
