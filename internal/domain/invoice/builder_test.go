package invoice_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturas-api/internal/domain"
	"github.com/jhoicas/facturas-api/internal/domain/entity"
	"github.com/jhoicas/facturas-api/internal/domain/invoice"
)

var fixedNow = time.Date(2024, time.March, 7, 9, 5, 3, 0, time.UTC)

func newTestBuilder() *invoice.Builder {
	return invoice.NewBuilder(
		invoice.WithClock(func() time.Time { return fixedNow }),
		invoice.WithLocation(time.UTC),
	)
}

func taxTypePtr(t entity.TaxType) *entity.TaxType { return &t }

// Factura mixta: 10×2200 gravado (20000 + 2000) + 5×1500 exento (7500) → 27500 / 2000 / 29500.
func TestBuild_TotalesMixtos(t *testing.T) {
	inv, err := newTestBuilder().Build(invoice.BuildInput{
		CompanyID: "company-a",
		Items: []invoice.ItemInput{
			{ProductName: "Caja regalo", Category: entity.CategoryA, Quantity: 10, UnitPrice: 2200},
			{ProductName: "Arroz", Category: entity.CategoryC, Quantity: 5, UnitPrice: 1500},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(27500), inv.TotalSupplyAmount)
	assert.Equal(t, int64(2000), inv.TotalTaxAmount)
	assert.Equal(t, int64(29500), inv.TotalAmount)
	assert.Equal(t, entity.InvoiceStatusDraft, inv.Status)
	assert.Equal(t, "company-a", inv.CompanyID)
	require.Len(t, inv.Items, 2)
	assert.Equal(t, entity.TaxTypeTaxable, inv.Items[0].TaxType)
	assert.Equal(t, entity.TaxTypeExempt, inv.Items[1].TaxType)
}

func TestBuild_NumeroDeFactura(t *testing.T) {
	inv, err := newTestBuilder().Build(invoice.BuildInput{
		CompanyID: "c1",
		Items:     []invoice.ItemInput{{Category: entity.CategoryA, Quantity: 1, UnitPrice: 110}},
	})
	require.NoError(t, err)
	assert.Equal(t, "INV-20240307-090503", inv.InvoiceNumber)
}

func TestBuild_NumeroUsaZonaConfigurada(t *testing.T) {
	seoul := time.FixedZone("KST", 9*60*60)
	b := invoice.NewBuilder(
		invoice.WithClock(func() time.Time { return fixedNow }),
		invoice.WithLocation(seoul),
	)
	inv, err := b.Build(invoice.BuildInput{
		Items: []invoice.ItemInput{{Category: entity.CategoryA, Quantity: 1, UnitPrice: 110}},
	})
	require.NoError(t, err)
	assert.Equal(t, "INV-20240307-180503", inv.InvoiceNumber)
}

func TestBuild_FechaDeEmisionExplicita(t *testing.T) {
	issue := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)
	inv, err := newTestBuilder().Build(invoice.BuildInput{
		IssueDate: issue,
		Memo:      "entrega parcial",
		Items:     []invoice.ItemInput{{Category: entity.CategoryB, Quantity: 2, UnitPrice: 550}},
	})
	require.NoError(t, err)
	assert.True(t, issue.Equal(inv.IssueDate))
	assert.Equal(t, "entrega parcial", inv.Memo)
	// sin fecha explícita se usa el reloj
	inv2, err := newTestBuilder().Build(invoice.BuildInput{
		Items: []invoice.ItemInput{{Category: entity.CategoryB, Quantity: 2, UnitPrice: 550}},
	})
	require.NoError(t, err)
	assert.True(t, fixedNow.Equal(inv2.IssueDate))
}

// El override manual gana sobre la categoría.
func TestBuild_OverrideDeTipoDeImpuesto(t *testing.T) {
	inv, err := newTestBuilder().Build(invoice.BuildInput{
		Items: []invoice.ItemInput{
			{Category: entity.CategoryA, Quantity: 1, UnitPrice: 1000, TaxTypeOverride: taxTypePtr(entity.TaxTypeZeroRated)},
			{Category: entity.CategoryC, Quantity: 1, UnitPrice: 1100, TaxTypeOverride: taxTypePtr(entity.TaxTypeTaxable)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.TaxTypeZeroRated, inv.Items[0].TaxType)
	assert.Equal(t, int64(0), inv.Items[0].TaxAmount)
	assert.Equal(t, entity.TaxTypeTaxable, inv.Items[1].TaxType)
	assert.Equal(t, int64(1000), inv.Items[1].SupplyAmount)
	assert.Equal(t, int64(100), inv.Items[1].TaxAmount)
}

func TestBuild_ErrorFacturaVacia(t *testing.T) {
	inv, err := newTestBuilder().Build(invoice.BuildInput{CompanyID: "c1"})
	assert.Nil(t, inv)
	assert.ErrorIs(t, err, domain.ErrEmptyInvoice)
}

// Una línea inválida se reporta con su índice y su causa; no se devuelve factura.
func TestBuild_ErrorLineaInvalidaConIndice(t *testing.T) {
	inv, err := newTestBuilder().Build(invoice.BuildInput{
		Items: []invoice.ItemInput{
			{Category: entity.CategoryA, Quantity: 1, UnitPrice: 100},
			{Category: entity.CategoryA, Quantity: 1, UnitPrice: 100},
			{Category: entity.CategoryA, Quantity: 1, UnitPrice: -5},
		},
	})
	assert.Nil(t, inv)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidLineItem)
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)

	var lineErr *domain.LineItemError
	require.True(t, errors.As(err, &lineErr))
	assert.Equal(t, 2, lineErr.Index)
}

func TestBuild_ErrorCantidadCero(t *testing.T) {
	_, err := newTestBuilder().Build(invoice.BuildInput{
		Items: []invoice.ItemInput{{Category: entity.CategoryC, Quantity: 0, UnitPrice: 100}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	var lineErr *domain.LineItemError
	require.ErrorAs(t, err, &lineErr)
	assert.Equal(t, 0, lineErr.Index)
}

// Propiedad: total == supply + tax == suma de LineTotal, con cualquier mezcla de líneas.
func TestBuild_PropiedadTotalesCoherentes(t *testing.T) {
	categories := []entity.ProductCategory{entity.CategoryA, entity.CategoryB, entity.CategoryC, "X"}
	b := newTestBuilder()
	for n := 1; n <= 12; n++ {
		items := make([]invoice.ItemInput, 0, n)
		for i := 0; i < n; i++ {
			items = append(items, invoice.ItemInput{
				Category:  categories[(n+i)%len(categories)],
				Quantity:  int64(i%7 + 1),
				UnitPrice: int64(97*n + 13*i),
			})
		}
		inv, err := b.Build(invoice.BuildInput{Items: items})
		require.NoError(t, err)

		var sum int64
		for _, it := range inv.Items {
			require.Equal(t, it.Quantity*it.UnitPrice, it.LineTotal)
			require.Equal(t, it.LineTotal, it.SupplyAmount+it.TaxAmount)
			sum += it.LineTotal
		}
		require.Equal(t, sum, inv.TotalAmount)
		require.Equal(t, inv.TotalAmount, inv.TotalSupplyAmount+inv.TotalTaxAmount)
	}
}

func TestNumber_Formato(t *testing.T) {
	ts := time.Date(2023, time.December, 31, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, "INV-20231231-235959", invoice.Number(ts))
}

func TestBuild_DesbordeEnLinea(t *testing.T) {
	_, err := newTestBuilder().Build(invoice.BuildInput{
		CompanyID: "company-a",
		Items: []invoice.ItemInput{
			{ProductName: "ok", Category: entity.CategoryC, Quantity: 1, UnitPrice: 100},
			{ProductName: "enorme", Category: entity.CategoryA, Quantity: 3037000500, UnitPrice: 3037000500},
		},
	})
	var lineErr *domain.LineItemError
	require.True(t, errors.As(err, &lineErr))
	assert.Equal(t, 1, lineErr.Index)
	assert.ErrorIs(t, err, domain.ErrAmountOverflow)
}

// Cada línea cabe en int64 pero la suma no.
func TestBuild_DesbordeEnTotales(t *testing.T) {
	inv, err := newTestBuilder().Build(invoice.BuildInput{
		CompanyID: "company-a",
		Items: []invoice.ItemInput{
			{ProductName: "a", Category: entity.CategoryC, Quantity: 1, UnitPrice: math.MaxInt64 - 10},
			{ProductName: "b", Category: entity.CategoryC, Quantity: 1, UnitPrice: 11},
		},
	})
	assert.Nil(t, inv)
	assert.ErrorIs(t, err, domain.ErrAmountOverflow)
	assert.NotErrorIs(t, err, domain.ErrInvalidLineItem)
}

func TestRecalculateTotals_DesbordeNoModificaFactura(t *testing.T) {
	inv := &entity.Invoice{
		Items: []entity.LineItem{
			{SupplyAmount: math.MaxInt64, LineTotal: math.MaxInt64},
			{SupplyAmount: 1, LineTotal: 1},
		},
		TotalAmount: 7,
	}
	assert.ErrorIs(t, invoice.RecalculateTotals(inv), domain.ErrAmountOverflow)
	assert.Equal(t, int64(7), inv.TotalAmount)
}
