package invoice_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturas-api/internal/domain"
	"github.com/jhoicas/facturas-api/internal/domain/entity"
	"github.com/jhoicas/facturas-api/internal/domain/invoice"
)

type edge struct{ from, to entity.InvoiceStatus }

var allowedEdges = map[edge]bool{
	{entity.InvoiceStatusDraft, entity.InvoiceStatusIssued}:     true,
	{entity.InvoiceStatusIssued, entity.InvoiceStatusSent}:      true,
	{entity.InvoiceStatusSent, entity.InvoiceStatusApproved}:    true,
	{entity.InvoiceStatusDraft, entity.InvoiceStatusCancelled}:  true,
	{entity.InvoiceStatusIssued, entity.InvoiceStatusCancelled}: true,
	{entity.InvoiceStatusSent, entity.InvoiceStatusCancelled}:   true,
}

// Recorre los 25 pares: solo las 6 aristas permitidas pasan.
func TestTransition_MatrizCompleta(t *testing.T) {
	for _, from := range invoice.Statuses {
		for _, to := range invoice.Statuses {
			inv := &entity.Invoice{ID: "i1", Status: from, TotalAmount: 100, Items: []entity.LineItem{{LineTotal: 100}}}
			out, err := invoice.Transition(inv, to)

			if allowedEdges[edge{from, to}] {
				require.NoError(t, err, "%s → %s debe permitirse", from, to)
				assert.Equal(t, to, out.Status)
				continue
			}
			require.Error(t, err, "%s → %s debe rechazarse", from, to)
			assert.ErrorIs(t, err, domain.ErrInvalidTransition)
			var te *domain.TransitionError
			require.True(t, errors.As(err, &te))
			assert.Equal(t, string(from), te.From)
			assert.Equal(t, string(to), te.To)
			assert.Nil(t, out)
		}
	}
}

// Escenario: draft → approved falla; hay que pasar por issued y sent.
func TestTransition_BorradorNoPuedeAprobarse(t *testing.T) {
	inv := &entity.Invoice{Status: entity.InvoiceStatusDraft}
	_, err := invoice.Transition(inv, entity.InvoiceStatusApproved)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, &domain.TransitionError{From: "draft", To: "approved"}, err)
}

func TestTransition_SoloCambiaElEstado(t *testing.T) {
	inv := buildMixed(t)
	out, err := invoice.Transition(inv, entity.InvoiceStatusIssued)
	require.NoError(t, err)

	assert.Equal(t, entity.InvoiceStatusIssued, out.Status)
	assert.Equal(t, entity.InvoiceStatusDraft, inv.Status, "el original no cambia")
	assert.Equal(t, inv.Items, out.Items)
	assert.Equal(t, inv.TotalAmount, out.TotalAmount)
	assert.Equal(t, inv.TotalTaxAmount, out.TotalTaxAmount)
	assert.Equal(t, inv.InvoiceNumber, out.InvoiceNumber)
}

func TestTransition_CaminoCompleto(t *testing.T) {
	inv := buildMixed(t)
	var err error
	for _, s := range []entity.InvoiceStatus{entity.InvoiceStatusIssued, entity.InvoiceStatusSent, entity.InvoiceStatusApproved} {
		inv, err = invoice.Transition(inv, s)
		require.NoError(t, err)
	}
	assert.True(t, invoice.IsTerminal(inv.Status))
	for _, s := range invoice.Statuses {
		_, err := invoice.Transition(inv, s)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	}
}

func TestTransition_EstadoDesconocido(t *testing.T) {
	_, err := invoice.Transition(&entity.Invoice{Status: "archived"}, entity.InvoiceStatusCancelled)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = invoice.Transition(&entity.Invoice{Status: entity.InvoiceStatusDraft}, "paid")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestAllowedTransitions(t *testing.T) {
	assert.Equal(t, []entity.InvoiceStatus{entity.InvoiceStatusIssued, entity.InvoiceStatusCancelled},
		invoice.AllowedTransitions(entity.InvoiceStatusDraft))
	assert.Equal(t, []entity.InvoiceStatus{entity.InvoiceStatusApproved, entity.InvoiceStatusCancelled},
		invoice.AllowedTransitions(entity.InvoiceStatusSent))
	assert.Empty(t, invoice.AllowedTransitions(entity.InvoiceStatusApproved))
	assert.Empty(t, invoice.AllowedTransitions(entity.InvoiceStatusCancelled))
}
