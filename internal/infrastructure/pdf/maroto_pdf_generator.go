// Package pdf genera la factura y el resumen de impuestos en PDF con Maroto v2.
//
// Layout de la factura (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Emisor + N° registro  │  N° Factura + Fecha + Estado│
//	│  RECEPTOR: Empresa + N° registro + contacto                  │
//	│  TABLA: Cant | Descripción | P.Unit | Impuesto | Suministro | IVA | Total
//	│  TOTALES: Suministro / IVA / TOTAL                           │
//	│  FOOTER: QR (número|fecha|total|iva) + leyenda               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/facturas-api/internal/application/analytics"
	"github.com/jhoicas/facturas-api/internal/application/billing"
	"github.com/jhoicas/facturas-api/internal/application/dto"
	"github.com/jhoicas/facturas-api/internal/domain/entity"
)

var (
	_ billing.InvoicePDFGenerator   = (*MarotoPDFGenerator)(nil)
	_ analytics.ReportPDFGenerator = (*MarotoPDFGenerator)(nil)
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var taxTypeLabels = map[entity.TaxType]string{
	entity.TaxTypeTaxable:   "Gravado",
	entity.TaxTypeExempt:    "Exento",
	entity.TaxTypeZeroRated: "Tasa cero",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa los generadores de PDF de facturación y reportes.
type MarotoPDFGenerator struct {
	money *message.Printer
}

// NewMarotoPDFGenerator construye el generador. Los montos se imprimen con separador de miles coreano.
func NewMarotoPDFGenerator() *MarotoPDFGenerator {
	return &MarotoPDFGenerator{money: message.NewPrinter(language.Korean)}
}

// FormatMoney 29500 → "₩29,500".
func (g *MarotoPDFGenerator) FormatMoney(amount int64) string {
	return g.money.Sprintf("₩%d", amount)
}

// GenerateInvoicePDF genera el PDF de la factura y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(
	_ context.Context,
	inv *entity.Invoice,
	company *entity.Company,
	issuer billing.Issuer,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Factura "+inv.InvoiceNumber, true).
		WithAuthor(nonEmpty(issuer.Name, "facturas-api"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.invoiceHeaderRow(inv, issuer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(receiverRow(company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(itemsHeaderRow())
	m.AddRows(g.itemRows(inv.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.invoiceTotalsRow(inv))

	m.AddRows(line.NewRow(3))
	m.AddRows(qrRow(inv))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// GenerateTaxSummaryPDF genera el resumen de impuestos por empresa (A4 horizontal).
func (g *MarotoPDFGenerator) GenerateTaxSummaryPDF(_ context.Context, s *dto.TaxSummaryResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Resumen de impuestos %d", s.Year), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(row.New(14).Add(
		col.New(8).Add(text.New(fmt.Sprintf("RESUMEN DE IMPUESTOS %d", s.Year), props.Text{
			Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
		})),
		col.New(4).Add(text.New(fmt.Sprintf("Tipo: %s   |   Periodo: %s", s.Tax, s.Period), props.Text{
			Size: 9, Align: align.Right, Top: 3, Color: colorGray,
		})),
	))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(summaryRow(true, "Empresa", "Cant. gravada", "Suministro gravado", "Cant. exenta", "Monto exento"))
	for _, c := range s.PerCompany {
		m.AddRows(summaryRow(false, c.CompanyName,
			fmt.Sprint(c.TaxableQuantity), g.FormatMoney(c.TaxableAmount),
			fmt.Sprint(c.ExemptQuantity), g.FormatMoney(c.ExemptAmount)))
	}
	if len(s.PerCompany) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(text.New("Sin facturas para el filtro seleccionado.", props.Text{
			Size: 9, Align: align.Center, Top: 2, Color: colorGray,
		}))))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	gt := s.GrandTotal
	m.AddRows(summaryRow(true, "TOTAL",
		fmt.Sprint(gt.TaxableQuantity), g.FormatMoney(gt.TaxableAmount),
		fmt.Sprint(gt.ExemptQuantity), g.FormatMoney(gt.ExemptAmount)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar resumen: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoPDFGenerator) invoiceHeaderRow(inv *entity.Invoice, issuer billing.Issuer) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(issuer.Name, "-"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("N° registro: "+nonEmpty(issuer.BusinessNumber, "-"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("FACTURA DE IMPUESTOS", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(inv.InvoiceNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6,
			}),
			text.New(fmt.Sprintf("Fecha: %s   |   Estado: %s", inv.IssueDate.Format("2006-01-02"), inv.Status), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func receiverRow(company *entity.Company) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("RECEPTOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 5,
			}),
			text.New(fmt.Sprintf("N° registro: %s   |   Tel: %s   |   Email: %s",
				nonEmpty(company.BusinessNumber, "-"),
				nonEmpty(company.Phone, "-"),
				nonEmpty(company.Email, "-"),
			), props.Text{Size: 8, Top: 10, Color: colorGray}),
		),
	)
}

func itemsHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Descripción", 4, align.Left),
		h("P. Unit.", 1, align.Right),
		h("Impuesto", 1, align.Center),
		h("Suministro", 2, align.Right),
		h("IVA", 1, align.Right),
		h("Total", 2, align.Right),
	)
}

func (g *MarotoPDFGenerator) itemRows(items []entity.LineItem) []core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, row.New(7).Add(
			cell(fmt.Sprint(it.Quantity), 1, align.Center),
			cell(it.ProductName, 4, align.Left),
			cell(g.FormatMoney(it.UnitPrice), 1, align.Right),
			cell(nonEmpty(taxTypeLabels[it.TaxType], string(it.TaxType)), 1, align.Center),
			cell(g.FormatMoney(it.SupplyAmount), 2, align.Right),
			cell(g.FormatMoney(it.TaxAmount), 1, align.Right),
			cell(g.FormatMoney(it.LineTotal), 2, align.Right),
		))
	}
	return rows
}

func (g *MarotoPDFGenerator) invoiceTotalsRow(inv *entity.Invoice) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Valor de suministro:", 1),
			label("IVA (10%):", 7),
			text.New("TOTAL:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 13}),
		),
		col.New(3).Add(
			value(g.FormatMoney(inv.TotalSupplyAmount), 1),
			value(g.FormatMoney(inv.TotalTaxAmount), 7),
			text.New(g.FormatMoney(inv.TotalAmount), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 13}),
		),
	)
}

func qrRow(inv *entity.Invoice) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(QRPayload(inv), props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("Escanee el código para verificar número, fecha y montos de la factura.", props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New("Los precios de líneas gravadas incluyen IVA del 10%.", props.Text{
				Size: 8, Top: 10, Left: 3, Color: colorGray,
			}),
		),
	)
}

func summaryRow(header bool, name, tq, ta, eq, ea string) core.Row {
	p := props.Text{Size: 9, Top: 1.5, Left: 1, Right: 1}
	if header {
		p.Style = fontstyle.Bold
		p.Color = colorPrimary
	}
	cell := func(s string, size int, a align.Type) core.Col {
		q := p
		q.Align = a
		return col.New(size).Add(text.New(s, q))
	}
	return row.New(7).Add(
		cell(name, 4, align.Left),
		cell(tq, 2, align.Right),
		cell(ta, 2, align.Right),
		cell(eq, 2, align.Right),
		cell(ea, 2, align.Right),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// QRPayload contenido del QR: número|fecha|total|iva.
func QRPayload(inv *entity.Invoice) string {
	return fmt.Sprintf("%s|%s|%d|%d", inv.InvoiceNumber, inv.IssueDate.Format("2006-01-02"), inv.TotalAmount, inv.TotalTaxAmount)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
