package billing

import (
	"context"

	"github.com/jhoicas/facturas-api/internal/domain/entity"
	"github.com/jhoicas/facturas-api/internal/domain/repository"
)

// InvoiceTxRunner ejecuta fn dentro de una transacción con el repositorio de facturas atado a ella.
// Si fn retorna error se hace rollback.
type InvoiceTxRunner interface {
	RunInvoice(ctx context.Context, fn func(invoiceRepo repository.InvoiceRepository) error) error
}

// StatusNotifier recibe los cambios de estado ya persistidos.
type StatusNotifier interface {
	NotifyStatusChange(ctx context.Context, inv *entity.Invoice, from entity.InvoiceStatus) error
}

// InvoiceMetrics contadores del ciclo de facturación.
type InvoiceMetrics interface {
	InvoiceBuilt(source string)
	BuildFailed(source, reason string)
	StatusChanged(from, to entity.InvoiceStatus)
}

// Issuer datos del emisor impresos en los documentos.
type Issuer struct {
	Name           string
	BusinessNumber string
}

// InvoicePDFGenerator genera el PDF de una factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, inv *entity.Invoice, company *entity.Company, issuer Issuer) ([]byte, error)
}

// InvoiceXMLBuilder arma el documento XML de la factura y su digest SHA-256 (hex) sobre la forma canónica.
type InvoiceXMLBuilder interface {
	BuildInvoiceXML(inv *entity.Invoice, company *entity.Company, issuer Issuer) (doc []byte, digest string, err error)
}

// Orígenes de una factura, usados como etiqueta de métricas.
const (
	SourceDelivery = "delivery"
	SourceManual   = "manual"
)
