package memory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturas-api/internal/domain/entity"
	"github.com/jhoicas/facturas-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo agregados calculados sobre las facturas en memoria.
type AnalyticsRepo struct{ s *Store }

// GetMonthlyTotals misma semántica que la consulta SQL: excluye anuladas, solo meses con movimiento.
func (r *AnalyticsRepo) GetMonthlyTotals(_ context.Context, year int) ([]repository.MonthlyTotal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var buckets [13]*repository.MonthlyTotal
	for _, inv := range r.s.invoices {
		if inv.IssueDate.Year() != year || inv.Status == entity.InvoiceStatusCancelled {
			continue
		}
		m := int(inv.IssueDate.Month())
		if buckets[m] == nil {
			buckets[m] = &repository.MonthlyTotal{Month: m}
		}
		b := buckets[m]
		b.InvoiceCount++
		b.SupplyAmount = b.SupplyAmount.Add(decimal.NewFromInt(inv.TotalSupplyAmount))
		b.TaxAmount = b.TaxAmount.Add(decimal.NewFromInt(inv.TotalTaxAmount))
		b.TotalAmount = b.TotalAmount.Add(decimal.NewFromInt(inv.TotalAmount))
	}

	out := make([]repository.MonthlyTotal, 0, 12)
	for m := 1; m <= 12; m++ {
		if buckets[m] != nil {
			out = append(out, *buckets[m])
		}
	}
	return out, nil
}
