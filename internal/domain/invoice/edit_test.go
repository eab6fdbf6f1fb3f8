package invoice_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturas-api/internal/domain"
	"github.com/jhoicas/facturas-api/internal/domain/entity"
	"github.com/jhoicas/facturas-api/internal/domain/invoice"
)

func buildMixed(t *testing.T) *entity.Invoice {
	t.Helper()
	inv, err := newTestBuilder().Build(invoice.BuildInput{
		CompanyID: "c1",
		Items: []invoice.ItemInput{
			{Category: entity.CategoryA, Quantity: 10, UnitPrice: 2200},
			{Category: entity.CategoryC, Quantity: 5, UnitPrice: 1500},
		},
	})
	require.NoError(t, err)
	return inv
}

func int64Ptr(v int64) *int64 { return &v }

func TestUpdateItem_RecalculaLineaYTotales(t *testing.T) {
	inv := buildMixed(t)

	out, err := invoice.UpdateItem(inv, 0, invoice.ItemPatch{Quantity: int64Ptr(5)})
	require.NoError(t, err)

	assert.Equal(t, int64(11000), out.Items[0].LineTotal)
	assert.Equal(t, int64(10000), out.Items[0].SupplyAmount)
	assert.Equal(t, int64(1000), out.Items[0].TaxAmount)
	assert.Equal(t, int64(17500), out.TotalSupplyAmount)
	assert.Equal(t, int64(1000), out.TotalTaxAmount)
	assert.Equal(t, int64(18500), out.TotalAmount)

	// el original queda intacto
	assert.Equal(t, int64(10), inv.Items[0].Quantity)
	assert.Equal(t, int64(29500), inv.TotalAmount)
}

func TestUpdateItem_CambioDeTipoDeImpuesto(t *testing.T) {
	inv := buildMixed(t)
	exempt := entity.TaxTypeExempt
	out, err := invoice.UpdateItem(inv, 0, invoice.ItemPatch{TaxType: &exempt})
	require.NoError(t, err)
	assert.Equal(t, int64(0), out.TotalTaxAmount)
	assert.Equal(t, int64(29500), out.TotalSupplyAmount)
	assert.Equal(t, int64(29500), out.TotalAmount)
}

func TestUpdateItem_ErrorLineaInvalida(t *testing.T) {
	inv := buildMixed(t)
	_, err := invoice.UpdateItem(inv, 1, invoice.ItemPatch{UnitPrice: int64Ptr(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidLineItem)
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)
	assert.Equal(t, int64(1500), inv.Items[1].UnitPrice)
}

func TestUpdateItem_IndiceFueraDeRango(t *testing.T) {
	inv := buildMixed(t)
	_, err := invoice.UpdateItem(inv, 2, invoice.ItemPatch{Quantity: int64Ptr(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = invoice.UpdateItem(inv, -1, invoice.ItemPatch{Quantity: int64Ptr(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateItem_SoloEnBorrador(t *testing.T) {
	inv := buildMixed(t)
	issued, err := invoice.Transition(inv, entity.InvoiceStatusIssued)
	require.NoError(t, err)

	_, err = invoice.UpdateItem(issued, 0, invoice.ItemPatch{Quantity: int64Ptr(1)})
	assert.ErrorIs(t, err, domain.ErrInvoiceLocked)
}

func TestUpdateItem_DesbordeDeTotalesNoCambiaFactura(t *testing.T) {
	inv := buildMixed(t)
	_, err := invoice.UpdateItem(inv, 1, invoice.ItemPatch{
		Quantity:  int64Ptr(1),
		UnitPrice: int64Ptr(math.MaxInt64 - 100),
	})
	assert.ErrorIs(t, err, domain.ErrAmountOverflow)
	assert.Equal(t, int64(29500), inv.TotalAmount)
	assert.Equal(t, int64(1500), inv.Items[1].UnitPrice)
}
