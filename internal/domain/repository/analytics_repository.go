package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// MonthlyTotal fila cruda de totales por mes.
// Lo produce la DB; el use case lo convierte en DTO.
type MonthlyTotal struct {
	Month        int
	InvoiceCount int
	SupplyAmount decimal.Decimal
	TaxAmount    decimal.Decimal
	TotalAmount  decimal.Decimal
}

// AnalyticsRepository consultas de lectura para el tablero. Read-only.
type AnalyticsRepository interface {
	// GetMonthlyTotals agrega las facturas no anuladas del año por mes de emisión.
	// Solo devuelve los meses con movimiento, en orden ascendente.
	GetMonthlyTotals(ctx context.Context, year int) ([]MonthlyTotal, error)
}
