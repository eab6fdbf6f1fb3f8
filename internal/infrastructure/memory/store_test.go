package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturas-api/internal/domain"
	"github.com/jhoicas/facturas-api/internal/domain/entity"
	"github.com/jhoicas/facturas-api/internal/domain/repository"
	"github.com/jhoicas/facturas-api/internal/infrastructure/memory"
)

func sampleInvoice(id, number string) *entity.Invoice {
	return &entity.Invoice{
		ID: id, InvoiceNumber: number, CompanyID: "c1",
		IssueDate: time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC),
		Status:    entity.InvoiceStatusDraft,
		Items: []entity.LineItem{
			{ProductName: "x", Quantity: 1, UnitPrice: 1100, TaxType: entity.TaxTypeTaxable, SupplyAmount: 1000, TaxAmount: 100, LineTotal: 1100},
		},
		TotalSupplyAmount: 1000, TotalTaxAmount: 100, TotalAmount: 1100,
	}
}

func TestInvoiceRepo_GuardaCopias(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	inv := sampleInvoice("i1", "INV-1")
	require.NoError(t, s.Invoices().Create(ctx, inv))

	inv.Items[0].Quantity = 99
	got, err := s.Invoices().GetByID(ctx, "i1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Items[0].Quantity)

	got.Items[0].Quantity = 50
	again, err := s.Invoices().GetByID(ctx, "i1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), again.Items[0].Quantity)
}

func TestInvoiceRepo_NumeroUnico(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, s.Invoices().Create(ctx, sampleInvoice("i1", "INV-1")))
	assert.ErrorIs(t, s.Invoices().Create(ctx, sampleInvoice("i2", "INV-1")), domain.ErrDuplicate)
}

func TestInvoiceRepo_Inexistentes(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	got, err := s.Invoices().GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.ErrorIs(t, s.Invoices().UpdateStatus(ctx, "nope", entity.InvoiceStatusDraft, entity.InvoiceStatusIssued), domain.ErrNotFound)
	assert.ErrorIs(t, s.Invoices().ReplaceItems(ctx, sampleInvoice("nope", "x")), domain.ErrNotFound)
}

func TestTxRunner_RevierteSiFalla(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, s.Invoices().Create(ctx, sampleInvoice("i1", "INV-1")))

	boom := errors.New("boom")
	err := memory.NewTxRunner(s).RunInvoice(ctx, func(repo repository.InvoiceRepository) error {
		require.NoError(t, repo.Create(ctx, sampleInvoice("i2", "INV-2")))
		require.NoError(t, repo.UpdateStatus(ctx, "i1", entity.InvoiceStatusDraft, entity.InvoiceStatusIssued))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := s.Invoices().GetByID(ctx, "i2")
	require.NoError(t, err)
	assert.Nil(t, got)
	first, err := s.Invoices().GetByID(ctx, "i1")
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusDraft, first.Status)
}

func TestTxRunner_ConfirmaSiTodoSaleBien(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	err := memory.NewTxRunner(s).RunInvoice(ctx, func(repo repository.InvoiceRepository) error {
		return repo.Create(ctx, sampleInvoice("i1", "INV-1"))
	})
	require.NoError(t, err)
	n, err := s.Invoices().CountByCompany(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestInvoiceRepo_ListFiltros(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	a := sampleInvoice("i1", "INV-1")
	b := sampleInvoice("i2", "INV-2")
	b.CompanyID = "c2"
	b.IssueDate = time.Date(2023, time.May, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.Invoices().Create(ctx, a))
	require.NoError(t, s.Invoices().Create(ctx, b))

	all, err := s.Invoices().List(ctx, repository.InvoiceFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "i1", all[0].ID, "fecha de emisión más reciente primero")
	assert.Empty(t, all[0].Items)

	byCompany, err := s.Invoices().List(ctx, repository.InvoiceFilter{CompanyID: "c2"})
	require.NoError(t, err)
	require.Len(t, byCompany, 1)

	byYear, err := s.Invoices().ListByYear(ctx, 2024)
	require.NoError(t, err)
	require.Len(t, byYear, 1)
	assert.Len(t, byYear[0].Items, 1)
}

func TestCompanyRepo_GetNames(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, s.Companies().Create(ctx, &entity.Company{ID: "c1", Name: "Empresa A"}))
	names, err := s.Companies().GetNames(ctx, []string{"c1", "c9"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"c1": "Empresa A"}, names)
}

// Una transacción que falla no debe borrar lo que otra confirmó mientras corría.
func TestTxRunner_RollbackConcurrenteConservaOtrasFacturas(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	runner := memory.NewTxRunner(s)
	require.NoError(t, s.Invoices().Create(ctx, sampleInvoice("base", "INV-0")))

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	boom := errors.New("boom")
	go func() {
		done <- runner.RunInvoice(ctx, func(repo repository.InvoiceRepository) error {
			if err := repo.Create(ctx, sampleInvoice("a", "INV-A")); err != nil {
				return err
			}
			if err := repo.UpdateStatus(ctx, "base", entity.InvoiceStatusDraft, entity.InvoiceStatusIssued); err != nil {
				return err
			}
			close(started)
			<-release
			return boom
		})
	}()

	<-started
	err := runner.RunInvoice(ctx, func(repo repository.InvoiceRepository) error {
		return repo.Create(ctx, sampleInvoice("x", "INV-X"))
	})
	require.NoError(t, err)
	close(release)
	assert.ErrorIs(t, <-done, boom)

	x, err := s.Invoices().GetByID(ctx, "x")
	require.NoError(t, err)
	assert.NotNil(t, x, "la factura confirmada por la otra transacción sigue presente")

	a, err := s.Invoices().GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, a)

	base, err := s.Invoices().GetByID(ctx, "base")
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusDraft, base.Status)
}

func TestTxRunner_RollbackRestauraBorrada(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, s.Invoices().Create(ctx, sampleInvoice("i1", "INV-1")))

	boom := errors.New("boom")
	err := memory.NewTxRunner(s).RunInvoice(ctx, func(repo repository.InvoiceRepository) error {
		require.NoError(t, repo.Delete(ctx, "i1"))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := s.Invoices().GetByID(ctx, "i1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Len(t, got.Items, 1)
}

func TestInvoiceRepo_UpdateStatusCondicional(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, s.Invoices().Create(ctx, sampleInvoice("i1", "INV-1")))

	require.NoError(t, s.Invoices().UpdateStatus(ctx, "i1", entity.InvoiceStatusDraft, entity.InvoiceStatusCancelled))
	// una segunda petición que leyó draft antes de la anulación pierde la carrera
	err := s.Invoices().UpdateStatus(ctx, "i1", entity.InvoiceStatusDraft, entity.InvoiceStatusIssued)
	assert.ErrorIs(t, err, domain.ErrConflict)

	got, err := s.Invoices().GetByID(ctx, "i1")
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusCancelled, got.Status)
}

func TestInvoiceRepo_ReplaceItemsSoloEnBorrador(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	inv := sampleInvoice("i1", "INV-1")
	require.NoError(t, s.Invoices().Create(ctx, inv))
	require.NoError(t, s.Invoices().UpdateStatus(ctx, "i1", entity.InvoiceStatusDraft, entity.InvoiceStatusIssued))

	inv.Items[0].Quantity = 5
	assert.ErrorIs(t, s.Invoices().ReplaceItems(ctx, inv), domain.ErrConflict)

	got, err := s.Invoices().GetByID(ctx, "i1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Items[0].Quantity)
}
