package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/facturas-api/internal/application/analytics"
	"github.com/jhoicas/facturas-api/internal/domain/report"
)

// ReportHandler expone el resumen de impuestos y los totales mensuales.
type ReportHandler struct {
	uc *analytics.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *analytics.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// parseReportQuery lee year y los parámetros del filtro del query string.
func parseReportQuery(c *fiber.Ctx) (int, report.Filter, error) {
	f, err := analytics.ParseFilter(analytics.FilterParams{
		Tax:              c.Query("tax"),
		Period:           c.Query("period"),
		Month:            c.QueryInt("month", 0),
		Quarter:          c.QueryInt("quarter", 0),
		Start:            c.QueryInt("start", 0),
		End:              c.QueryInt("end", 0),
		ExcludeCancelled: c.QueryBool("exclude_cancelled", false),
	})
	return c.QueryInt("year", 0), f, err
}

// TaxSummary godoc
// @Summary      Resumen de impuestos por empresa
// @Description  Agrupa por empresa las líneas gravadas o exentas de las facturas del año y periodo.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        year               query  int     true   "Año"
// @Param        tax                query  string  true   "taxable o exempt"
// @Param        period             query  string  false  "all, h1, h2, month, quarter, custom"  default(all)
// @Param        month              query  int     false  "Mes (period=month)"
// @Param        quarter            query  int     false  "Trimestre (period=quarter)"
// @Param        start              query  int     false  "Mes inicial (period=custom)"
// @Param        end                query  int     false  "Mes final (period=custom)"
// @Param        exclude_cancelled  query  bool    false  "Omitir facturas canceladas"
// @Success      200  {object}  dto.TaxSummaryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/tax-summary [get]
func (h *ReportHandler) TaxSummary(c *fiber.Ctx) error {
	year, f, err := parseReportQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.TaxSummary(c.Context(), year, f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// TaxSummaryPDF godoc
// @Summary      Resumen de impuestos en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        year  query  int     true  "Año"
// @Param        tax   query  string  true  "taxable o exempt"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/tax-summary/pdf [get]
func (h *ReportHandler) TaxSummaryPDF(c *fiber.Ctx) error {
	year, f, err := parseReportQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	doc, filename, err := h.uc.TaxSummaryPDF(c.Context(), year, f)
	if err != nil {
		return writeError(c, err)
	}
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(doc)
}

// MonthlyTotals godoc
// @Summary      Totales mensuales del año
// @Description  Doce meses con cantidad de facturas y montos; las canceladas no cuentan.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        year  query  int  true  "Año"
// @Success      200  {object}  dto.MonthlyTotalsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/monthly [get]
func (h *ReportHandler) MonthlyTotals(c *fiber.Ctx) error {
	out, err := h.uc.MonthlyTotals(c.Context(), c.QueryInt("year", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
