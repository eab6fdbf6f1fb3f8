package entity

import "time"

// InvoiceStatus estado del ciclo de vida de una factura.
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"     // inicial, editable
	InvoiceStatusIssued    InvoiceStatus = "issued"    // emitida
	InvoiceStatusSent      InvoiceStatus = "sent"      // enviada al cliente
	InvoiceStatusApproved  InvoiceStatus = "approved"  // terminal (éxito)
	InvoiceStatusCancelled InvoiceStatus = "cancelled" // terminal (anulada)
)

// Invoice agregado de factura. Los totales se derivan de Items:
// TotalAmount == TotalSupplyAmount + TotalTaxAmount == suma de LineTotal.
type Invoice struct {
	ID                string
	InvoiceNumber     string // INV-YYYYMMDD-HHMMSS, único (lo garantiza la base de datos)
	CompanyID         string // empresa cliente / contraparte
	Items             []LineItem
	IssueDate         time.Time
	Status            InvoiceStatus
	Memo              string
	TotalSupplyAmount int64
	TotalTaxAmount    int64
	TotalAmount       int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Clone devuelve una copia profunda (Items incluido).
func (inv *Invoice) Clone() *Invoice {
	if inv == nil {
		return nil
	}
	out := *inv
	out.Items = append([]LineItem(nil), inv.Items...)
	return &out
}
