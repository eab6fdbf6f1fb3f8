// Package analytics contiene los casos de uso de reportes: resumen de impuestos por empresa
// y totales mensuales del tablero.
package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturas-api/internal/application/dto"
	"github.com/jhoicas/facturas-api/internal/domain"
	"github.com/jhoicas/facturas-api/internal/domain/entity"
	"github.com/jhoicas/facturas-api/internal/domain/report"
	"github.com/jhoicas/facturas-api/internal/domain/repository"
)

// ReportPDFGenerator genera el PDF del resumen de impuestos.
type ReportPDFGenerator interface {
	GenerateTaxSummaryPDF(ctx context.Context, summary *dto.TaxSummaryResponse) ([]byte, error)
}

// ReportUseCase arma los reportes. Cada llamada lee las facturas de nuevo: el resumen no se cachea.
type ReportUseCase struct {
	invoiceRepo   repository.InvoiceRepository
	companyRepo   repository.CompanyRepository
	analyticsRepo repository.AnalyticsRepository
	pdf           ReportPDFGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	invoiceRepo repository.InvoiceRepository,
	companyRepo repository.CompanyRepository,
	analyticsRepo repository.AnalyticsRepository,
	pdf ReportPDFGenerator,
) *ReportUseCase {
	return &ReportUseCase{
		invoiceRepo:   invoiceRepo,
		companyRepo:   companyRepo,
		analyticsRepo: analyticsRepo,
		pdf:           pdf,
	}
}

// TaxSummary resume por empresa las facturas del año que pasan el filtro.
func (uc *ReportUseCase) TaxSummary(ctx context.Context, year int, f report.Filter) (*dto.TaxSummaryResponse, error) {
	if year < 1 {
		return nil, fmt.Errorf("%w: year requerido", domain.ErrInvalidInput)
	}
	invoices, err := uc.invoiceRepo.ListByYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("reporte: listar facturas: %w", err)
	}
	names, err := uc.companyRepo.GetNames(ctx, companyIDs(invoices))
	if err != nil {
		return nil, fmt.Errorf("reporte: nombres de empresas: %w", err)
	}

	summary := report.Summarize(invoices, f, func(id string) (string, bool) {
		name, ok := names[id]
		return name, ok
	})

	out := &dto.TaxSummaryResponse{
		Year:       year,
		Tax:        string(f.Tax),
		Period:     periodLabel(f.Period),
		PerCompany: make([]dto.CompanySummaryDTO, 0, len(summary.PerCompany)),
		GrandTotal: toSummaryDTO(summary.GrandTotal),
	}
	for _, s := range summary.PerCompany {
		out.PerCompany = append(out.PerCompany, toSummaryDTO(s))
	}
	return out, nil
}

// TaxSummaryPDF mismo resumen renderizado en PDF.
func (uc *ReportUseCase) TaxSummaryPDF(ctx context.Context, year int, f report.Filter) ([]byte, string, error) {
	summary, err := uc.TaxSummary(ctx, year, f)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err := uc.pdf.GenerateTaxSummaryPDF(ctx, summary)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: generar pdf: %w", err)
	}
	return pdfBytes, fmt.Sprintf("resumen_impuestos_%d_%s_%s.pdf", year, summary.Tax, summary.Period), nil
}

// MonthlyTotals devuelve los doce meses del año; los meses sin facturas van en cero.
func (uc *ReportUseCase) MonthlyTotals(ctx context.Context, year int) (*dto.MonthlyTotalsResponse, error) {
	if year < 1 {
		return nil, fmt.Errorf("%w: year requerido", domain.ErrInvalidInput)
	}
	rows, err := uc.analyticsRepo.GetMonthlyTotals(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("reporte: totales mensuales: %w", err)
	}

	months := make([]dto.MonthlyTotalDTO, 12)
	for i := range months {
		months[i] = dto.MonthlyTotalDTO{
			Month:        i + 1,
			SupplyAmount: decimal.Zero,
			TaxAmount:    decimal.Zero,
			TotalAmount:  decimal.Zero,
		}
	}
	total := dto.MonthlyTotalDTO{SupplyAmount: decimal.Zero, TaxAmount: decimal.Zero, TotalAmount: decimal.Zero}
	for _, r := range rows {
		if r.Month < 1 || r.Month > 12 {
			continue
		}
		m := &months[r.Month-1]
		m.InvoiceCount = r.InvoiceCount
		m.SupplyAmount = r.SupplyAmount
		m.TaxAmount = r.TaxAmount
		m.TotalAmount = r.TotalAmount

		total.InvoiceCount += r.InvoiceCount
		total.SupplyAmount = total.SupplyAmount.Add(r.SupplyAmount)
		total.TaxAmount = total.TaxAmount.Add(r.TaxAmount)
		total.TotalAmount = total.TotalAmount.Add(r.TotalAmount)
	}
	return &dto.MonthlyTotalsResponse{Year: year, Months: months, Total: total}, nil
}

func companyIDs(invoices []*entity.Invoice) []string {
	seen := make(map[string]struct{}, len(invoices))
	ids := make([]string, 0)
	for _, inv := range invoices {
		if _, ok := seen[inv.CompanyID]; ok {
			continue
		}
		seen[inv.CompanyID] = struct{}{}
		ids = append(ids, inv.CompanyID)
	}
	return ids
}

func periodLabel(p report.Period) string {
	switch p.Kind {
	case report.PeriodByMonth:
		return fmt.Sprintf("month-%02d", p.Month)
	case report.PeriodByQuarter:
		return fmt.Sprintf("q%d", p.Quarter)
	case report.PeriodCustom:
		return fmt.Sprintf("custom-%02d-%02d", p.StartMonth, p.EndMonth)
	default:
		return string(p.Kind)
	}
}

func toSummaryDTO(s report.CompanySummary) dto.CompanySummaryDTO {
	return dto.CompanySummaryDTO{
		CompanyID:       s.CompanyID,
		CompanyName:     s.CompanyName,
		TaxableQuantity: s.TaxableQuantity,
		TaxableAmount:   s.TaxableAmount,
		ExemptQuantity:  s.ExemptQuantity,
		ExemptAmount:    s.ExemptAmount,
	}
}
