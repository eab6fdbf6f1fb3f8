package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturas-api/internal/application/billing"
	"github.com/jhoicas/facturas-api/internal/application/dto"
	"github.com/jhoicas/facturas-api/internal/domain/entity"
	"github.com/jhoicas/facturas-api/internal/infrastructure/pdf"
)

func sampleInvoice() *entity.Invoice {
	return &entity.Invoice{
		ID:            "i1",
		InvoiceNumber: "INV-20240307-090503",
		CompanyID:     "c1",
		IssueDate:     time.Date(2024, time.March, 7, 0, 0, 0, 0, time.UTC),
		Status:        entity.InvoiceStatusIssued,
		Items: []entity.LineItem{
			{ProductName: "Caja regalo", Category: entity.CategoryA, Quantity: 10, UnitPrice: 2200, TaxType: entity.TaxTypeTaxable, SupplyAmount: 20000, TaxAmount: 2000, LineTotal: 22000},
			{ProductName: "Arroz", Category: entity.CategoryC, Quantity: 5, UnitPrice: 1500, TaxType: entity.TaxTypeExempt, SupplyAmount: 7500, LineTotal: 7500},
		},
		TotalSupplyAmount: 27500,
		TotalTaxAmount:    2000,
		TotalAmount:       29500,
	}
}

func TestFormatMoney_SeparadorDeMiles(t *testing.T) {
	g := pdf.NewMarotoPDFGenerator()
	assert.Equal(t, "₩29,500", g.FormatMoney(29500))
	assert.Equal(t, "₩0", g.FormatMoney(0))
	assert.Equal(t, "₩1,234,567", g.FormatMoney(1234567))
}

func TestQRPayload(t *testing.T) {
	assert.Equal(t, "INV-20240307-090503|2024-03-07|29500|2000", pdf.QRPayload(sampleInvoice()))
}

func TestGenerateInvoicePDF(t *testing.T) {
	g := pdf.NewMarotoPDFGenerator()
	out, err := g.GenerateInvoicePDF(context.Background(), sampleInvoice(),
		&entity.Company{ID: "c1", Name: "Empresa A", BusinessNumber: "220-81-62517"},
		billing.Issuer{Name: "Comercial Hana", BusinessNumber: "124-81-00998"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateTaxSummaryPDF(t *testing.T) {
	g := pdf.NewMarotoPDFGenerator()
	out, err := g.GenerateTaxSummaryPDF(context.Background(), &dto.TaxSummaryResponse{
		Year: 2024, Tax: "taxable", Period: "all",
		PerCompany: []dto.CompanySummaryDTO{{CompanyID: "c1", CompanyName: "Empresa A", TaxableQuantity: 10, TaxableAmount: 20000}},
		GrandTotal: dto.CompanySummaryDTO{TaxableQuantity: 10, TaxableAmount: 20000},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	empty, err := g.GenerateTaxSummaryPDF(context.Background(), &dto.TaxSummaryResponse{Year: 2024, Tax: "exempt", Period: "h1", PerCompany: []dto.CompanySummaryDTO{}})
	require.NoError(t, err)
	assert.NotEmpty(t, empty)
}
