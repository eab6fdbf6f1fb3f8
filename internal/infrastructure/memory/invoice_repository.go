package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/facturas-api/internal/domain"
	"github.com/jhoicas/facturas-api/internal/domain/entity"
	"github.com/jhoicas/facturas-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo facturas en memoria. Número de factura único, igual que la restricción de la tabla.
type InvoiceRepo struct{ s *Store }

func (r *InvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.create(inv)
}

// Las variantes en minúscula asumen r.s.mu tomado para escritura.
func (r *InvoiceRepo) create(inv *entity.Invoice) error {
	if _, ok := r.s.invoices[inv.ID]; ok {
		return domain.ErrDuplicate
	}
	for _, existing := range r.s.invoices {
		if existing.InvoiceNumber == inv.InvoiceNumber {
			return domain.ErrDuplicate
		}
	}
	r.s.invoices[inv.ID] = inv.Clone()
	r.s.touch(inv.ID)
	return nil
}

func (r *InvoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	inv, ok := r.s.invoices[id]
	if !ok {
		return nil, nil
	}
	return inv.Clone(), nil
}

func (r *InvoiceRepo) List(_ context.Context, f repository.InvoiceFilter) ([]*entity.Invoice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	ids := make([]string, 0, len(r.s.invoices))
	for id, inv := range r.s.invoices {
		if f.CompanyID != "" && inv.CompanyID != f.CompanyID {
			continue
		}
		if f.Status != "" && inv.Status != f.Status {
			continue
		}
		if f.Year != 0 && inv.IssueDate.Year() != f.Year {
			continue
		}
		ids = append(ids, id)
	}
	// mismo orden que la consulta SQL: fecha de emisión desc, luego alta desc
	ids = r.s.sortedIDs(ids, true)
	sort.SliceStable(ids, func(i, j int) bool {
		return r.s.invoices[ids[i]].IssueDate.After(r.s.invoices[ids[j]].IssueDate)
	})
	list := make([]*entity.Invoice, 0, len(ids))
	for _, id := range ids {
		header := r.s.invoices[id].Clone()
		header.Items = nil
		list = append(list, header)
	}
	return page(list, f.Limit, f.Offset), nil
}

func (r *InvoiceRepo) ListByYear(_ context.Context, year int) ([]*entity.Invoice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	ids := make([]string, 0, len(r.s.invoices))
	for id, inv := range r.s.invoices {
		if inv.IssueDate.Year() == year {
			ids = append(ids, id)
		}
	}
	ids = r.s.sortedIDs(ids, false)
	sort.SliceStable(ids, func(i, j int) bool {
		return r.s.invoices[ids[i]].IssueDate.Before(r.s.invoices[ids[j]].IssueDate)
	})
	list := make([]*entity.Invoice, 0, len(ids))
	for _, id := range ids {
		list = append(list, r.s.invoices[id].Clone())
	}
	return list, nil
}

// ReplaceItems solo aplica sobre borradores; si la factura cambió de estado → domain.ErrConflict.
func (r *InvoiceRepo) ReplaceItems(_ context.Context, inv *entity.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.replaceItems(inv)
}

func (r *InvoiceRepo) replaceItems(inv *entity.Invoice) error {
	stored, ok := r.s.invoices[inv.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if stored.Status != entity.InvoiceStatusDraft {
		return domain.ErrConflict
	}
	stored.Items = append([]entity.LineItem(nil), inv.Items...)
	stored.TotalSupplyAmount = inv.TotalSupplyAmount
	stored.TotalTaxAmount = inv.TotalTaxAmount
	stored.TotalAmount = inv.TotalAmount
	stored.UpdatedAt = inv.UpdatedAt
	return nil
}

// UpdateStatus cambia from → to; si el estado guardado ya no es from → domain.ErrConflict.
func (r *InvoiceRepo) UpdateStatus(_ context.Context, id string, from, to entity.InvoiceStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.updateStatus(id, from, to)
}

func (r *InvoiceRepo) updateStatus(id string, from, to entity.InvoiceStatus) error {
	stored, ok := r.s.invoices[id]
	if !ok {
		return domain.ErrNotFound
	}
	if stored.Status != from {
		return domain.ErrConflict
	}
	stored.Status = to
	return nil
}

func (r *InvoiceRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.invoices, id)
	return nil
}

func (r *InvoiceRepo) CountByCompany(_ context.Context, companyID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, inv := range r.s.invoices {
		if inv.CompanyID == companyID {
			n++
		}
	}
	return n, nil
}
