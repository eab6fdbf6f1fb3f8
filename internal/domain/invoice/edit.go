package invoice

import (
	"github.com/jhoicas/facturas-api/internal/domain"
	"github.com/jhoicas/facturas-api/internal/domain/entity"
	"github.com/jhoicas/facturas-api/internal/domain/tax"
)

// ItemPatch cambios sobre una línea existente. Campos nil no se tocan.
type ItemPatch struct {
	Quantity  *int64
	UnitPrice *int64
	TaxType   *entity.TaxType
}

// UpdateItem aplica patch a la línea index y devuelve una copia de la factura con la
// línea y los totales recalculados. Solo se permite en Draft. inv no se modifica.
func UpdateItem(inv *entity.Invoice, index int, patch ItemPatch) (*entity.Invoice, error) {
	if inv.Status != entity.InvoiceStatusDraft {
		return nil, domain.ErrInvoiceLocked
	}
	if index < 0 || index >= len(inv.Items) {
		return nil, domain.ErrNotFound
	}

	item := inv.Items[index]
	if patch.Quantity != nil {
		item.Quantity = *patch.Quantity
	}
	if patch.UnitPrice != nil {
		item.UnitPrice = *patch.UnitPrice
	}
	if patch.TaxType != nil {
		item.TaxType = *patch.TaxType
	}
	if err := tax.ApplyTo(&item); err != nil {
		return nil, &domain.LineItemError{Index: index, Err: err}
	}

	out := inv.Clone()
	out.Items[index] = item
	if err := RecalculateTotals(out); err != nil {
		return nil, err
	}
	return out, nil
}
