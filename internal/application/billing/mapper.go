package billing

import (
	"github.com/jhoicas/facturas-api/internal/application/dto"
	"github.com/jhoicas/facturas-api/internal/domain/entity"
)

// ToInvoiceResponse convierte la entidad en DTO. withItems=false omite las líneas (listados).
func ToInvoiceResponse(inv *entity.Invoice, withItems bool) *dto.InvoiceResponse {
	if inv == nil {
		return nil
	}
	out := &dto.InvoiceResponse{
		ID:                inv.ID,
		InvoiceNumber:     inv.InvoiceNumber,
		CompanyID:         inv.CompanyID,
		IssueDate:         inv.IssueDate,
		Status:            string(inv.Status),
		Memo:              inv.Memo,
		TotalSupplyAmount: inv.TotalSupplyAmount,
		TotalTaxAmount:    inv.TotalTaxAmount,
		TotalAmount:       inv.TotalAmount,
		CreatedAt:         inv.CreatedAt,
		UpdatedAt:         inv.UpdatedAt,
	}
	if withItems {
		out.Items = make([]dto.LineItemResponse, 0, len(inv.Items))
		for _, it := range inv.Items {
			out.Items = append(out.Items, dto.LineItemResponse{
				ProductID:    it.ProductID,
				ProductName:  it.ProductName,
				Category:     string(it.Category),
				Quantity:     it.Quantity,
				UnitPrice:    it.UnitPrice,
				TaxType:      string(it.TaxType),
				SupplyAmount: it.SupplyAmount,
				TaxAmount:    it.TaxAmount,
				LineTotal:    it.LineTotal,
			})
		}
	}
	return out
}

func taxTypeOverride(s string) *entity.TaxType {
	if s == "" {
		return nil
	}
	t := entity.TaxType(s)
	return &t
}
