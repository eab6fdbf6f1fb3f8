// Package notify implementa billing.StatusNotifier.
package notify

import (
	"context"

	"github.com/jhoicas/facturas-api/internal/application/billing"
	"github.com/jhoicas/facturas-api/internal/domain/entity"
	"github.com/jhoicas/facturas-api/pkg/logger"
)

var _ billing.StatusNotifier = (*LogNotifier)(nil)

// LogNotifier deja constancia de cada cambio de estado en el log estructurado.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier construye el notificador.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log.Component("notify")}
}

// NotifyStatusChange registra la transición. Aprobadas y anuladas se marcan como finales.
func (n *LogNotifier) NotifyStatusChange(_ context.Context, inv *entity.Invoice, from entity.InvoiceStatus) error {
	final := inv.Status == entity.InvoiceStatusApproved || inv.Status == entity.InvoiceStatusCancelled
	n.log.Info().
		Str("invoice_id", inv.ID).
		Str("invoice_number", inv.InvoiceNumber).
		Str("company_id", inv.CompanyID).
		Str("from", string(from)).
		Str("to", string(inv.Status)).
		Bool("final", final).
		Int64("total_amount", inv.TotalAmount).
		Msg("notificación de estado de factura")
	return nil
}
