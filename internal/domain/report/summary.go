package report

import "github.com/jhoicas/facturas-api/internal/domain/entity"

// CompanySummary cantidades y montos de suministro de una empresa.
type CompanySummary struct {
	CompanyID       string
	CompanyName     string
	TaxableQuantity int64
	TaxableAmount   int64
	ExemptQuantity  int64
	ExemptAmount    int64
}

func (s *CompanySummary) add(o CompanySummary) {
	s.TaxableQuantity += o.TaxableQuantity
	s.TaxableAmount += o.TaxableAmount
	s.ExemptQuantity += o.ExemptQuantity
	s.ExemptAmount += o.ExemptAmount
}

// Summary resultado del resumen. PerCompany nunca es nil.
type Summary struct {
	PerCompany []CompanySummary
	GrandTotal CompanySummary
}

// NameResolver devuelve el nombre de la empresa; ok=false usa el ID como nombre.
type NameResolver func(companyID string) (name string, ok bool)

// Summarize agrupa por empresa, en orden de primera aparición, las líneas que pasan el filtro.
// Una factura sin líneas que cuenten no crea entrada. GrandTotal es la suma campo a campo de PerCompany.
func Summarize(invoices []*entity.Invoice, f Filter, names NameResolver) Summary {
	out := Summary{PerCompany: []CompanySummary{}}
	pos := make(map[string]int)

	for _, inv := range invoices {
		if !f.includesInvoice(inv) {
			continue
		}
		var part CompanySummary
		counted := false
		for _, it := range inv.Items {
			if !f.countsItem(it.TaxType) {
				continue
			}
			counted = true
			if it.TaxType == entity.TaxTypeTaxable {
				part.TaxableQuantity += it.Quantity
				part.TaxableAmount += it.SupplyAmount
			} else {
				part.ExemptQuantity += it.Quantity
				part.ExemptAmount += it.SupplyAmount
			}
		}
		if !counted {
			continue
		}

		i, seen := pos[inv.CompanyID]
		if !seen {
			i = len(out.PerCompany)
			pos[inv.CompanyID] = i
			out.PerCompany = append(out.PerCompany, CompanySummary{
				CompanyID:   inv.CompanyID,
				CompanyName: resolveName(names, inv.CompanyID),
			})
		}
		out.PerCompany[i].add(part)
	}

	for _, s := range out.PerCompany {
		out.GrandTotal.add(s)
	}
	return out
}

func resolveName(names NameResolver, id string) string {
	if names != nil {
		if name, ok := names(id); ok && name != "" {
			return name
		}
	}
	return id
}
