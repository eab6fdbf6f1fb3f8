package tax

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturas-api/internal/domain"
	"github.com/jhoicas/facturas-api/internal/domain/entity"
)

// VATRate tasa de IVA fija (10%).
var VATRate = decimal.RequireFromString("0.10")

var vatDivisor = decimal.NewFromInt(1).Add(VATRate)

// Amounts campos derivados de una línea.
type Amounts struct {
	SupplyAmount int64
	TaxAmount    int64
	LineTotal    int64
}

// Calculate calcula valor de suministro, IVA y total de una línea.
//
// Para taxable el precio unitario incluye IVA: SupplyAmount = round(LineTotal / 1.10)
// redondeando la mitad hacia arriba, y TaxAmount = LineTotal - SupplyAmount, de modo que
// ambos suman exactamente LineTotal. Exento y tasa cero no llevan impuesto.
func Calculate(quantity, unitPrice int64, taxType entity.TaxType) (Amounts, error) {
	if quantity < 1 {
		return Amounts{}, domain.ErrInvalidQuantity
	}
	if unitPrice < 0 {
		return Amounts{}, domain.ErrInvalidPrice
	}
	if unitPrice > 0 && quantity > math.MaxInt64/unitPrice {
		return Amounts{}, domain.ErrAmountOverflow
	}
	lineTotal := quantity * unitPrice

	switch taxType {
	case entity.TaxTypeTaxable:
		// decimal.Round redondea la mitad alejándose de cero; con montos >= 0 es half-up.
		supply := decimal.NewFromInt(lineTotal).Div(vatDivisor).Round(0).IntPart()
		return Amounts{
			SupplyAmount: supply,
			TaxAmount:    lineTotal - supply,
			LineTotal:    lineTotal,
		}, nil
	case entity.TaxTypeExempt, entity.TaxTypeZeroRated:
		return Amounts{SupplyAmount: lineTotal, TaxAmount: 0, LineTotal: lineTotal}, nil
	default:
		return Amounts{}, domain.ErrInvalidTaxType
	}
}

// ApplyTo recalcula los tres campos derivados de item a partir de Quantity, UnitPrice y TaxType.
// Si el cálculo falla, item no se modifica.
func ApplyTo(item *entity.LineItem) error {
	a, err := Calculate(item.Quantity, item.UnitPrice, item.TaxType)
	if err != nil {
		return err
	}
	item.SupplyAmount = a.SupplyAmount
	item.TaxAmount = a.TaxAmount
	item.LineTotal = a.LineTotal
	return nil
}
