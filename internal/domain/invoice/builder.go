// Package invoice arma el agregado Invoice a partir de líneas de entrega/pedido,
// mantiene sus totales y gobierna su ciclo de estados. No hace I/O.
package invoice

import (
	"math"
	"time"

	"github.com/jhoicas/facturas-api/internal/domain"
	"github.com/jhoicas/facturas-api/internal/domain/entity"
	"github.com/jhoicas/facturas-api/internal/domain/tax"
)

// ItemInput línea de entrada (datos de la entrega o captura manual).
// TaxTypeOverride nil significa "derivar de la categoría".
type ItemInput struct {
	ProductID       string
	ProductName     string
	Category        entity.ProductCategory
	Quantity        int64
	UnitPrice       int64
	TaxTypeOverride *entity.TaxType
}

// BuildInput datos para construir una factura.
type BuildInput struct {
	CompanyID string
	Items     []ItemInput
	IssueDate time.Time // cero = fecha del reloj del builder
	Memo      string
}

// Builder construye facturas. El reloj es inyectable para pruebas.
type Builder struct {
	now func() time.Time
	loc *time.Location
}

// Option configura el Builder.
type Option func(*Builder)

// WithClock fija la función de tiempo usada para el número de factura.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) { b.now = now }
}

// WithLocation fija la zona horaria en que se formatea el número de factura.
func WithLocation(loc *time.Location) Option {
	return func(b *Builder) {
		if loc != nil {
			b.loc = loc
		}
	}
}

// NewBuilder construye el Builder (por defecto time.Now en hora local).
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{now: time.Now, loc: time.Local}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build valida y calcula cada línea y devuelve la factura completa en estado Draft.
// Todo o nada: si una línea falla se devuelve *domain.LineItemError y ninguna factura.
// ID queda vacío; lo asigna quien persiste.
func (b *Builder) Build(in BuildInput) (*entity.Invoice, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrEmptyInvoice
	}

	items := make([]entity.LineItem, 0, len(in.Items))
	for i, it := range in.Items {
		taxType := tax.Classify(it.Category)
		if it.TaxTypeOverride != nil {
			taxType = *it.TaxTypeOverride
		}
		item := entity.LineItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Category:    it.Category,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TaxType:     taxType,
		}
		if err := tax.ApplyTo(&item); err != nil {
			return nil, &domain.LineItemError{Index: i, Err: err}
		}
		items = append(items, item)
	}

	now := b.now().In(b.loc)
	issueDate := in.IssueDate
	if issueDate.IsZero() {
		issueDate = now
	}

	inv := &entity.Invoice{
		InvoiceNumber: Number(now),
		CompanyID:     in.CompanyID,
		Items:         items,
		IssueDate:     issueDate,
		Status:        entity.InvoiceStatusDraft,
		Memo:          in.Memo,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := RecalculateTotals(inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// RecalculateTotals reemplaza los totales de la factura por la suma de sus líneas.
// Si la suma no cabe en int64 devuelve domain.ErrAmountOverflow y no toca inv.
func RecalculateTotals(inv *entity.Invoice) error {
	var supply, taxAmt, total int64
	for _, it := range inv.Items {
		// suministro e IVA son >= 0 y no superan LineTotal: basta acotar el total.
		if total > math.MaxInt64-it.LineTotal {
			return domain.ErrAmountOverflow
		}
		supply += it.SupplyAmount
		taxAmt += it.TaxAmount
		total += it.LineTotal
	}
	inv.TotalSupplyAmount = supply
	inv.TotalTaxAmount = taxAmt
	inv.TotalAmount = total
	return nil
}
