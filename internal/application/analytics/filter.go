package analytics

import (
	"fmt"
	"strings"

	"github.com/jhoicas/facturas-api/internal/domain"
	"github.com/jhoicas/facturas-api/internal/domain/report"
)

// FilterParams parámetros crudos del reporte (query string).
type FilterParams struct {
	Tax              string
	Period           string
	Month            int
	Quarter          int
	Start            int
	End              int
	ExcludeCancelled bool
}

// ParseFilter valida los parámetros y arma el filtro del dominio.
// Period vacío es "all". En "custom" un límite en 0 queda sin definir.
func ParseFilter(p FilterParams) (report.Filter, error) {
	f := report.Filter{ExcludeCancelled: p.ExcludeCancelled}

	switch report.TaxCategory(strings.ToLower(p.Tax)) {
	case report.TaxableOnly:
		f.Tax = report.TaxableOnly
	case report.ExemptOnly:
		f.Tax = report.ExemptOnly
	default:
		return report.Filter{}, fmt.Errorf("%w: tax debe ser taxable o exempt", domain.ErrInvalidInput)
	}

	kind := report.PeriodKind(strings.ToLower(p.Period))
	switch kind {
	case "", report.PeriodAll:
		f.Period = report.AllPeriod()
	case report.PeriodFirstHalf:
		f.Period = report.FirstHalf()
	case report.PeriodSecondHalf:
		f.Period = report.SecondHalf()
	case report.PeriodByMonth:
		if p.Month < 1 || p.Month > 12 {
			return report.Filter{}, fmt.Errorf("%w: month debe estar entre 1 y 12", domain.ErrInvalidInput)
		}
		f.Period = report.ByMonth(p.Month)
	case report.PeriodByQuarter:
		if p.Quarter < 1 || p.Quarter > 4 {
			return report.Filter{}, fmt.Errorf("%w: quarter debe estar entre 1 y 4", domain.ErrInvalidInput)
		}
		f.Period = report.ByQuarter(p.Quarter)
	case report.PeriodCustom:
		if p.Start < 0 || p.Start > 12 || p.End < 0 || p.End > 12 {
			return report.Filter{}, fmt.Errorf("%w: start y end deben estar entre 1 y 12", domain.ErrInvalidInput)
		}
		f.Period = report.Custom(p.Start, p.End)
	default:
		return report.Filter{}, fmt.Errorf("%w: periodo %q", domain.ErrInvalidInput, p.Period)
	}
	return f, nil
}
