// Package report agrega facturas por empresa para el resumen de impuestos.
// Lee los montos ya calculados de cada línea; nunca los recalcula.
package report

import "github.com/jhoicas/facturas-api/internal/domain/entity"

// TaxCategory qué líneas cuentan en el resumen.
type TaxCategory string

const (
	TaxableOnly TaxCategory = "taxable" // líneas gravadas
	ExemptOnly  TaxCategory = "exempt"  // líneas exentas y de tasa cero
)

// PeriodKind variante del periodo.
type PeriodKind string

const (
	PeriodAll        PeriodKind = "all"
	PeriodFirstHalf  PeriodKind = "h1"
	PeriodSecondHalf PeriodKind = "h2"
	PeriodByMonth    PeriodKind = "month"
	PeriodByQuarter  PeriodKind = "quarter"
	PeriodCustom     PeriodKind = "custom"
)

// Period periodo del reporte. Solo se leen los campos de su variante:
// Month para ByMonth, Quarter para ByQuarter, StartMonth/EndMonth para Custom.
type Period struct {
	Kind       PeriodKind
	Month      int
	Quarter    int
	StartMonth int // 0 = sin definir
	EndMonth   int // 0 = sin definir
}

func AllPeriod() Period            { return Period{Kind: PeriodAll} }
func FirstHalf() Period            { return Period{Kind: PeriodFirstHalf} }
func SecondHalf() Period           { return Period{Kind: PeriodSecondHalf} }
func ByMonth(m int) Period         { return Period{Kind: PeriodByMonth, Month: m} }
func ByQuarter(q int) Period       { return Period{Kind: PeriodByQuarter, Quarter: q} }
func Custom(start, end int) Period { return Period{Kind: PeriodCustom, StartMonth: start, EndMonth: end} }

// Matches informa si el mes (1–12) cae dentro del periodo.
// Custom con cualquiera de los límites sin definir acepta todo. Una variante desconocida no acepta nada.
func (p Period) Matches(month int) bool {
	switch p.Kind {
	case PeriodAll:
		return true
	case PeriodFirstHalf:
		return month >= 1 && month <= 6
	case PeriodSecondHalf:
		return month >= 7 && month <= 12
	case PeriodByMonth:
		return month == p.Month
	case PeriodByQuarter:
		return month >= 3*p.Quarter-2 && month <= 3*p.Quarter
	case PeriodCustom:
		if p.StartMonth == 0 || p.EndMonth == 0 {
			return true
		}
		return month >= p.StartMonth && month <= p.EndMonth
	default:
		return false
	}
}

// Filter filtro del resumen.
type Filter struct {
	Tax    TaxCategory
	Period Period
	// ExcludeCancelled omite las facturas anuladas. Por defecto se incluyen.
	ExcludeCancelled bool
}

// countsItem decide si la línea entra en el resumen según la categoría pedida.
func (f Filter) countsItem(t entity.TaxType) bool {
	switch f.Tax {
	case TaxableOnly:
		return t == entity.TaxTypeTaxable
	case ExemptOnly:
		return t == entity.TaxTypeExempt || t == entity.TaxTypeZeroRated
	default:
		return false
	}
}

func (f Filter) includesInvoice(inv *entity.Invoice) bool {
	if inv == nil {
		return false
	}
	if f.ExcludeCancelled && inv.Status == entity.InvoiceStatusCancelled {
		return false
	}
	return f.Period.Matches(int(inv.IssueDate.Month()))
}
