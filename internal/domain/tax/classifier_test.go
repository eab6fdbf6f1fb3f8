package tax_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/facturas-api/internal/domain/entity"
	"github.com/jhoicas/facturas-api/internal/domain/tax"
)

func TestClassify_TablaDeNegocio(t *testing.T) {
	cases := []struct {
		category entity.ProductCategory
		want     entity.TaxType
	}{
		{entity.CategoryA, entity.TaxTypeTaxable},
		{entity.CategoryB, entity.TaxTypeTaxable},
		{entity.CategoryC, entity.TaxTypeExempt},
		{entity.CategoryOther, entity.TaxTypeExempt},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tax.Classify(tc.category), "categoría %s", tc.category)
	}
}

// Categorías desconocidas no fallan: caen en exento.
func TestClassify_DesconocidaEsExenta(t *testing.T) {
	assert.Equal(t, entity.TaxTypeExempt, tax.Classify("FRUTAS"))
	assert.Equal(t, entity.TaxTypeExempt, tax.Classify(""))
}

// Ninguna categoría del catálogo se clasifica como tasa cero.
func TestClassify_NuncaDerivaTasaCero(t *testing.T) {
	for _, c := range entity.KnownCategories {
		assert.NotEqual(t, entity.TaxTypeZeroRated, tax.Classify(c))
	}
}
