package entity

// TaxType tratamiento de IVA de una línea (no de la factura completa).
type TaxType string

const (
	TaxTypeTaxable   TaxType = "taxable"    // gravado: IVA 10% incluido en el precio
	TaxTypeExempt    TaxType = "exempt"     // exento
	TaxTypeZeroRated TaxType = "zero_rated" // tasa cero; solo por selección manual
)

// Valid informa si t es uno de los tipos conocidos.
func (t TaxType) Valid() bool {
	switch t {
	case TaxTypeTaxable, TaxTypeExempt, TaxTypeZeroRated:
		return true
	}
	return false
}

// LineItem línea de una factura. SupplyAmount, TaxAmount y LineTotal son derivados:
// solo los escribe el calculador de impuestos (tax.ApplyTo).
// Montos en unidad monetaria mínima.
type LineItem struct {
	ProductID    string
	ProductName  string
	Category     ProductCategory
	Quantity     int64
	UnitPrice    int64 // precio con IVA incluido cuando TaxType es taxable
	TaxType      TaxType
	SupplyAmount int64 // valor de suministro (sin impuesto)
	TaxAmount    int64
	LineTotal    int64 // Quantity * UnitPrice == SupplyAmount + TaxAmount
}
