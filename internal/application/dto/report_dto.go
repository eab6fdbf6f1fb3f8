package dto

import "github.com/shopspring/decimal"

// CompanySummaryDTO cantidades y montos de suministro por empresa.
type CompanySummaryDTO struct {
	CompanyID       string `json:"company_id,omitempty"`
	CompanyName     string `json:"company_name,omitempty"`
	TaxableQuantity int64  `json:"taxable_quantity"`
	TaxableAmount   int64  `json:"taxable_amount"`
	ExemptQuantity  int64  `json:"exempt_quantity"`
	ExemptAmount    int64  `json:"exempt_amount"`
}

// TaxSummaryResponse resumen de impuestos por empresa.
type TaxSummaryResponse struct {
	Year       int                 `json:"year"`
	Tax        string              `json:"tax"`
	Period     string              `json:"period"`
	PerCompany []CompanySummaryDTO `json:"per_company"`
	GrandTotal CompanySummaryDTO   `json:"grand_total"`
}

// MonthlyTotalDTO totales de un mes para el gráfico del tablero.
type MonthlyTotalDTO struct {
	Month        int             `json:"month"`
	InvoiceCount int             `json:"invoice_count"`
	SupplyAmount decimal.Decimal `json:"supply_amount"`
	TaxAmount    decimal.Decimal `json:"tax_amount"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
}

// MonthlyTotalsResponse doce meses del año, con ceros donde no hubo facturas.
type MonthlyTotalsResponse struct {
	Year   int               `json:"year"`
	Months []MonthlyTotalDTO `json:"months"`
	Total  MonthlyTotalDTO   `json:"total"`
}
