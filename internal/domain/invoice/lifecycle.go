package invoice

import (
	"github.com/jhoicas/facturas-api/internal/domain"
	"github.com/jhoicas/facturas-api/internal/domain/entity"
)

// transitions aristas permitidas del ciclo de vida.
//
//	draft → issued → sent → approved
//	draft | issued | sent → cancelled
var transitions = map[entity.InvoiceStatus][]entity.InvoiceStatus{
	entity.InvoiceStatusDraft:  {entity.InvoiceStatusIssued, entity.InvoiceStatusCancelled},
	entity.InvoiceStatusIssued: {entity.InvoiceStatusSent, entity.InvoiceStatusCancelled},
	entity.InvoiceStatusSent:   {entity.InvoiceStatusApproved, entity.InvoiceStatusCancelled},
}

// Statuses todos los estados, en el orden del menú.
var Statuses = []entity.InvoiceStatus{
	entity.InvoiceStatusDraft,
	entity.InvoiceStatusIssued,
	entity.InvoiceStatusSent,
	entity.InvoiceStatusApproved,
	entity.InvoiceStatusCancelled,
}

// CanTransition informa si from → to es una arista permitida.
func CanTransition(from, to entity.InvoiceStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// AllowedTransitions estados destino válidos desde from (vacío si es terminal).
func AllowedTransitions(from entity.InvoiceStatus) []entity.InvoiceStatus {
	return append([]entity.InvoiceStatus{}, transitions[from]...)
}

// IsTerminal informa si el estado no admite más transiciones.
func IsTerminal(s entity.InvoiceStatus) bool {
	return s == entity.InvoiceStatusApproved || s == entity.InvoiceStatusCancelled
}

// Transition devuelve una copia de inv con Status = target, o *domain.TransitionError.
// Solo cambia el estado: líneas y totales quedan intactos. No notifica ni persiste.
func Transition(inv *entity.Invoice, target entity.InvoiceStatus) (*entity.Invoice, error) {
	if !CanTransition(inv.Status, target) {
		return nil, &domain.TransitionError{From: string(inv.Status), To: string(target)}
	}
	out := inv.Clone()
	out.Status = target
	return out, nil
}
