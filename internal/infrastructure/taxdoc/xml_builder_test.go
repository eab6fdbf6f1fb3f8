package taxdoc_test

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturas-api/internal/application/billing"
	"github.com/jhoicas/facturas-api/internal/domain/entity"
	"github.com/jhoicas/facturas-api/internal/infrastructure/taxdoc"
)

func issuedInvoice() *entity.Invoice {
	return &entity.Invoice{
		ID:            "inv-1",
		InvoiceNumber: "INV-20240307-090503",
		CompanyID:     "c1",
		IssueDate:     time.Date(2024, time.March, 7, 0, 0, 0, 0, time.UTC),
		Status:        entity.InvoiceStatusIssued,
		Items: []entity.LineItem{
			{ProductID: "p1", ProductName: "Caja regalo", Category: entity.CategoryA, Quantity: 10, UnitPrice: 2200, TaxType: entity.TaxTypeTaxable, SupplyAmount: 20000, TaxAmount: 2000, LineTotal: 22000},
			{ProductName: "Arroz & trigo", Category: entity.CategoryC, Quantity: 5, UnitPrice: 1500, TaxType: entity.TaxTypeExempt, SupplyAmount: 7500, LineTotal: 7500},
		},
		TotalSupplyAmount: 27500,
		TotalTaxAmount:    2000,
		TotalAmount:       29500,
	}
}

func TestBuildInvoiceXML_Estructura(t *testing.T) {
	b := taxdoc.NewXMLBuilder()
	out, digest, err := b.BuildInvoiceXML(issuedInvoice(),
		&entity.Company{ID: "c1", Name: "Empresa A", BusinessNumber: "220-81-62517"},
		billing.Issuer{Name: "Comercial Hana", BusinessNumber: "124-81-00998"})
	require.NoError(t, err)
	assert.Len(t, digest, 64)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))
	root := doc.Root()
	require.NotNil(t, root)
	assert.Equal(t, "TaxInvoice", root.Tag)
	assert.Equal(t, "INV-20240307-090503", root.SelectElement("Number").Text())
	assert.Equal(t, "Empresa A", root.FindElement("Buyer/Name").Text())
	assert.Equal(t, "Comercial Hana", root.FindElement("Supplier/Name").Text())

	lines := root.FindElements("Lines/Line")
	require.Len(t, lines, 2)
	assert.Equal(t, "taxable", lines[0].SelectAttrValue("TaxType", ""))
	assert.Equal(t, "Arroz & trigo", lines[1].SelectElement("Name").Text())
	assert.Nil(t, lines[1].SelectElement("ProductID"))

	assert.Equal(t, "29500", root.FindElement("Totals/TotalAmount").Text())
	assert.Equal(t, "2000", root.FindElement("Totals/TaxAmount").Text())
}

func TestBuildInvoiceXML_DigestDeterminista(t *testing.T) {
	b := taxdoc.NewXMLBuilder()
	company := &entity.Company{ID: "c1", Name: "Empresa A"}
	_, d1, err := b.BuildInvoiceXML(issuedInvoice(), company, billing.Issuer{Name: "X"})
	require.NoError(t, err)
	_, d2, err := b.BuildInvoiceXML(issuedInvoice(), company, billing.Issuer{Name: "X"})
	require.NoError(t, err)
	assert.Equal(t, d1, d2)

	changed := issuedInvoice()
	changed.Status = entity.InvoiceStatusSent
	_, d3, err := b.BuildInvoiceXML(changed, company, billing.Issuer{Name: "X"})
	require.NoError(t, err)
	assert.NotEqual(t, d1, d3)
}

func TestDigest_IgnoraDeclaracionEIndentacion(t *testing.T) {
	compact := []byte(`<a x="1"><b>hola</b></a>`)
	pretty := []byte("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<a x=\"1\">\n  <b>hola</b>\n</a>\n")
	d1, err := taxdoc.Digest(compact)
	require.NoError(t, err)
	d2, err := taxdoc.Digest(pretty)
	require.NoError(t, err)
	assert.Equal(t, d1, d2)
}

func TestBuildInvoiceXML_SinCompania(t *testing.T) {
	_, _, err := taxdoc.NewXMLBuilder().BuildInvoiceXML(issuedInvoice(), nil, billing.Issuer{})
	assert.Error(t, err)
}

func TestDigest_XMLInvalido(t *testing.T) {
	_, err := taxdoc.Digest([]byte("<a><b></a>"))
	assert.Error(t, err)
}
