package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturas-api/internal/application/dto"
	"github.com/jhoicas/facturas-api/internal/domain"
	"github.com/jhoicas/facturas-api/pkg/logger"
)

func TestErrorStatus_MapeoDeErroresDeDominio(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"linea invalida", &domain.LineItemError{Index: 2, Err: domain.ErrInvalidQuantity}, fiber.StatusBadRequest, "INVALID_LINE_ITEM"},
		{"factura vacia", domain.ErrEmptyInvoice, fiber.StatusBadRequest, "EMPTY_INVOICE"},
		{"desborde de totales", domain.ErrAmountOverflow, fiber.StatusBadRequest, "AMOUNT_OVERFLOW"},
		{"desborde en linea", &domain.LineItemError{Index: 0, Err: domain.ErrAmountOverflow}, fiber.StatusBadRequest, "INVALID_LINE_ITEM"},
		{"tipo de impuesto", domain.ErrInvalidTaxType, fiber.StatusBadRequest, "VALIDATION"},
		{"entrada envuelta", fmt.Errorf("%w: year requerido", domain.ErrInvalidInput), fiber.StatusBadRequest, "VALIDATION"},
		{"no encontrado", domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
		{"transicion", &domain.TransitionError{From: "draft", To: "approved"}, fiber.StatusConflict, "INVALID_TRANSITION"},
		{"bloqueada", domain.ErrInvoiceLocked, fiber.StatusConflict, "INVOICE_LOCKED"},
		{"duplicado", fmt.Errorf("insert invoice: %w", domain.ErrDuplicate), fiber.StatusConflict, "DUPLICATE"},
		{"email", domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS"},
		{"prohibido", domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
		{"no autorizado", domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
		{"desconocido", errors.New("conexión perdida"), fiber.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, code := errorStatus(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, code)
		})
	}
}

func TestWriteError_InternoNoExponeCausa(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Level: "info", Output: &buf})

	app := fiber.New()
	app.Use(RequestLogger(log))
	app.Get("/falla", func(c *fiber.Ctx) error {
		return writeError(c, errors.New(`pq: relation "invoices" does not exist`))
	})
	app.Get("/validacion", func(c *fiber.Ctx) error {
		return writeError(c, fmt.Errorf("%w: year requerido", domain.ErrInvalidInput))
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/falla", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "INTERNAL", body.Code)
	assert.NotContains(t, body.Message, "relation")
	assert.Contains(t, buf.String(), `relation \"invoices\" does not exist`)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/validacion", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body = dto.ErrorResponse{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body.Message, "year requerido")
}
