// Package memory implementa los puertos de persistencia en memoria.
// Sirve para el modo demo (STORAGE_DRIVER=memory) y como doble en las pruebas.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/facturas-api/internal/domain/entity"
	"github.com/jhoicas/facturas-api/internal/domain/repository"
)

// Store estado compartido por todos los repositorios en memoria.
// Guarda copias: lo que devuelve nunca aliasa lo almacenado.
type Store struct {
	mu        sync.RWMutex
	companies map[string]entity.Company
	products  map[string]entity.Product
	invoices  map[string]*entity.Invoice
	users     map[string]entity.User
	seq       int64
	order     map[string]int64 // orden de inserción para listados estables
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		companies: make(map[string]entity.Company),
		products:  make(map[string]entity.Product),
		invoices:  make(map[string]*entity.Invoice),
		users:     make(map[string]entity.User),
		order:     make(map[string]int64),
	}
}

func (s *Store) touch(id string) {
	if _, ok := s.order[id]; !ok {
		s.seq++
		s.order[id] = s.seq
	}
}

// sortedIDs devuelve ids ordenados por inserción (desc=true: más recientes primero).
func (s *Store) sortedIDs(ids []string, desc bool) []string {
	sort.Slice(ids, func(i, j int) bool {
		if desc {
			return s.order[ids[i]] > s.order[ids[j]]
		}
		return s.order[ids[i]] < s.order[ids[j]]
	})
	return ids
}

func page[T any](list []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(list) {
		return []T{}
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

// Companies repositorio de empresas.
func (s *Store) Companies() *CompanyRepo { return &CompanyRepo{s: s} }

// Products repositorio de productos.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

// Invoices repositorio de facturas.
func (s *Store) Invoices() *InvoiceRepo { return &InvoiceRepo{s: s} }

// Users repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// Analytics consultas agregadas sobre las facturas.
func (s *Store) Analytics() *AnalyticsRepo { return &AnalyticsRepo{s: s} }

// TxRunner ejecuta callbacks "transaccionales": si fn falla se restauran las facturas que fn tocó.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(s *Store) *TxRunner { return &TxRunner{s: s} }

// RunInvoice ejecuta fn con el repositorio de facturas. Las escrituras de fn se revierten si devuelve error;
// las facturas que otras peticiones escribieron mientras tanto no se tocan.
func (r *TxRunner) RunInvoice(ctx context.Context, fn func(invoiceRepo repository.InvoiceRepository) error) error {
	tx := &txInvoiceRepo{InvoiceRepo: r.s.Invoices(), undo: make(map[string]*entity.Invoice)}
	if err := fn(tx); err != nil {
		tx.rollback()
		return err
	}
	return nil
}

// txInvoiceRepo guarda la imagen previa de cada factura antes de su primera escritura.
// Una entrada nil en undo significa que la factura no existía.
type txInvoiceRepo struct {
	*InvoiceRepo
	undo map[string]*entity.Invoice
}

var _ repository.InvoiceRepository = (*txInvoiceRepo)(nil)

// write ejecuta op con el lock tomado, guardando antes la imagen previa de id.
// Si op falla y era la primera escritura de id, la imagen se descarta.
func (t *txInvoiceRepo) write(id string, op func() error) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	_, seen := t.undo[id]
	if !seen {
		if prev, ok := t.s.invoices[id]; ok {
			t.undo[id] = prev.Clone()
		} else {
			t.undo[id] = nil
		}
	}
	err := op()
	if err != nil && !seen {
		delete(t.undo, id)
	}
	return err
}

func (t *txInvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	return t.write(inv.ID, func() error { return t.create(inv) })
}

func (t *txInvoiceRepo) ReplaceItems(_ context.Context, inv *entity.Invoice) error {
	return t.write(inv.ID, func() error { return t.replaceItems(inv) })
}

func (t *txInvoiceRepo) UpdateStatus(_ context.Context, id string, from, to entity.InvoiceStatus) error {
	return t.write(id, func() error { return t.updateStatus(id, from, to) })
}

func (t *txInvoiceRepo) Delete(_ context.Context, id string) error {
	return t.write(id, func() error {
		delete(t.s.invoices, id)
		return nil
	})
}

func (t *txInvoiceRepo) rollback() {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for id, prev := range t.undo {
		if prev == nil {
			delete(t.s.invoices, id)
			continue
		}
		t.s.invoices[id] = prev
	}
}
