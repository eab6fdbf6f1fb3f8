package tax_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturas-api/internal/domain"
	"github.com/jhoicas/facturas-api/internal/domain/entity"
	"github.com/jhoicas/facturas-api/internal/domain/tax"
)

// Escenario: 10 × 2200 con IVA incluido → 20000 + 2000 = 22000.
func TestCalculate_GravadoPrecioConIVA(t *testing.T) {
	a, err := tax.Calculate(10, 2200, entity.TaxTypeTaxable)
	require.NoError(t, err)
	assert.Equal(t, int64(20000), a.SupplyAmount)
	assert.Equal(t, int64(2000), a.TaxAmount)
	assert.Equal(t, int64(22000), a.LineTotal)
}

// Escenario: 5 × 1500 exento → 7500 sin impuesto.
func TestCalculate_Exento(t *testing.T) {
	a, err := tax.Calculate(5, 1500, entity.TaxTypeExempt)
	require.NoError(t, err)
	assert.Equal(t, tax.Amounts{SupplyAmount: 7500, TaxAmount: 0, LineTotal: 7500}, a)
}

func TestCalculate_TasaCeroSinImpuesto(t *testing.T) {
	a, err := tax.Calculate(3, 999, entity.TaxTypeZeroRated)
	require.NoError(t, err)
	assert.Equal(t, int64(0), a.TaxAmount)
	assert.Equal(t, int64(2997), a.SupplyAmount)
}

// Casos de redondeo: 1/1.1 = 0.909 → 1, 100/1.1 = 90.909 → 91, 1000/1.1 = 909.09 → 909.
func TestCalculate_RedondeoMitadArriba(t *testing.T) {
	cases := []struct {
		qty, price     int64
		supply, taxAmt int64
	}{
		{1, 1, 1, 0},
		{1, 100, 91, 9},
		{1, 1000, 909, 91},
		{3, 333, 908, 91},   // 999 / 1.1 = 908.18
		{7, 1234, 7853, 785}, // 8638 / 1.1 = 7852.727
		{1, 0, 0, 0},
	}
	for _, tc := range cases {
		a, err := tax.Calculate(tc.qty, tc.price, entity.TaxTypeTaxable)
		require.NoError(t, err)
		assert.Equal(t, tc.supply, a.SupplyAmount, "supply %d×%d", tc.qty, tc.price)
		assert.Equal(t, tc.taxAmt, a.TaxAmount, "tax %d×%d", tc.qty, tc.price)
	}
}

// Propiedad: supply + tax == qty*price y supply == round(qty*price / 1.10) para todo par válido.
func TestCalculate_PropiedadSinFugaDeRedondeo(t *testing.T) {
	for qty := int64(1); qty <= 25; qty++ {
		for price := int64(0); price <= 5000; price += 37 {
			a, err := tax.Calculate(qty, price, entity.TaxTypeTaxable)
			require.NoError(t, err)
			total := qty * price
			require.Equal(t, total, a.SupplyAmount+a.TaxAmount)
			require.Equal(t, total, a.LineTotal)
			// total*10/11 nunca cae exactamente en .5, así que math.Round coincide con half-up.
			want := int64(math.Round(float64(total) * 10 / 11))
			require.Equal(t, want, a.SupplyAmount, "total %d", total)
		}
	}
}

func TestCalculate_PropiedadExentoYTasaCero(t *testing.T) {
	for _, tt := range []entity.TaxType{entity.TaxTypeExempt, entity.TaxTypeZeroRated} {
		for qty := int64(1); qty <= 10; qty++ {
			for price := int64(0); price <= 3000; price += 101 {
				a, err := tax.Calculate(qty, price, tt)
				require.NoError(t, err)
				require.Equal(t, int64(0), a.TaxAmount)
				require.Equal(t, qty*price, a.SupplyAmount)
			}
		}
	}
}

// ── Errores de validación ─────────────────────────────────────────────────────

func TestCalculate_ErrorCantidadInvalida(t *testing.T) {
	_, err := tax.Calculate(0, 100, entity.TaxTypeTaxable)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	_, err = tax.Calculate(-2, 100, entity.TaxTypeExempt)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestCalculate_ErrorPrecioNegativo(t *testing.T) {
	_, err := tax.Calculate(1, -1, entity.TaxTypeTaxable)
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)
}

func TestCalculate_ErrorTipoDesconocido(t *testing.T) {
	_, err := tax.Calculate(1, 100, entity.TaxType("vat20"))
	assert.ErrorIs(t, err, domain.ErrInvalidTaxType)
}

func TestApplyTo_ReemplazaLosTresCampos(t *testing.T) {
	item := entity.LineItem{Quantity: 10, UnitPrice: 2200, TaxType: entity.TaxTypeTaxable}
	require.NoError(t, tax.ApplyTo(&item))
	assert.Equal(t, int64(20000), item.SupplyAmount)

	item.TaxType = entity.TaxTypeExempt
	require.NoError(t, tax.ApplyTo(&item))
	assert.Equal(t, int64(22000), item.SupplyAmount)
	assert.Equal(t, int64(0), item.TaxAmount)
	assert.Equal(t, int64(22000), item.LineTotal)
}

func TestApplyTo_FallaNoModificaLaLinea(t *testing.T) {
	item := entity.LineItem{Quantity: 2, UnitPrice: 1100, TaxType: entity.TaxTypeTaxable}
	require.NoError(t, tax.ApplyTo(&item))
	before := item

	item.Quantity = 0
	require.ErrorIs(t, tax.ApplyTo(&item), domain.ErrInvalidQuantity)
	assert.Equal(t, before.SupplyAmount, item.SupplyAmount)
	assert.Equal(t, before.TaxAmount, item.TaxAmount)
	assert.Equal(t, before.LineTotal, item.LineTotal)
}

func TestCalculate_DesbordeDeTotal(t *testing.T) {
	cases := []struct {
		name      string
		quantity  int64
		unitPrice int64
		taxType   entity.TaxType
	}{
		{"gravado", 3037000500, 3037000500, entity.TaxTypeTaxable},
		{"exento potencia de dos", 1 << 32, 1 << 32, entity.TaxTypeExempt},
		{"precio maximo por dos", 2, math.MaxInt64, entity.TaxTypeZeroRated},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a, err := tax.Calculate(tc.quantity, tc.unitPrice, tc.taxType)
			assert.ErrorIs(t, err, domain.ErrAmountOverflow)
			assert.Equal(t, tax.Amounts{}, a)
		})
	}
}

func TestCalculate_LimiteExactoSinDesborde(t *testing.T) {
	a, err := tax.Calculate(1, math.MaxInt64, entity.TaxTypeExempt)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), a.LineTotal)

	a, err = tax.Calculate(math.MaxInt64, 0, entity.TaxTypeTaxable)
	require.NoError(t, err)
	assert.Equal(t, tax.Amounts{}, a)
}
