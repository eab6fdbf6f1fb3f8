package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/facturas-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el tablero.
type AnalyticsRepo struct {
	db Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(db Querier) *AnalyticsRepo {
	return &AnalyticsRepo{db: db}
}

// GetMonthlyTotals suma suministro, IVA y total por mes de emisión.
// Los SUM de BIGINT llegan como NUMERIC y se escanean a decimal.Decimal (codec pgx-shopspring-decimal).
func (r *AnalyticsRepo) GetMonthlyTotals(ctx context.Context, year int) ([]repository.MonthlyTotal, error) {
	const query = `
	SELECT
	    EXTRACT(MONTH FROM i.issue_date)::INT AS month,
	    COUNT(*)::INT                         AS invoice_count,
	    SUM(i.total_supply_amount)            AS supply_amount,
	    SUM(i.total_tax_amount)               AS tax_amount,
	    SUM(i.total_amount)                   AS total_amount
	FROM invoices i
	WHERE i.issue_date >= make_date($1, 1, 1)
	  AND i.issue_date <  make_date($1 + 1, 1, 1)
	  AND i.status <> 'cancelled'
	GROUP BY 1
	ORDER BY 1`

	rows, err := r.db.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetMonthlyTotals: %w", err)
	}
	defer rows.Close()

	results := make([]repository.MonthlyTotal, 0, 12)
	for rows.Next() {
		var row repository.MonthlyTotal
		if err := rows.Scan(
			&row.Month,
			&row.InvoiceCount,
			&row.SupplyAmount,
			&row.TaxAmount,
			&row.TotalAmount,
		); err != nil {
			return nil, fmt.Errorf("analytics.GetMonthlyTotals scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
