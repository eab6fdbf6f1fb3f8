package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/facturas-api/internal/application/dto"
	"github.com/jhoicas/facturas-api/internal/domain"
	"github.com/jhoicas/facturas-api/internal/domain/entity"
	"github.com/jhoicas/facturas-api/internal/domain/invoice"
	"github.com/jhoicas/facturas-api/internal/domain/repository"
	"github.com/jhoicas/facturas-api/pkg/logger"
)

// InvoiceUseCase orquesta el armado, la edición y el ciclo de vida de las facturas:
// carga datos de los repositorios, delega el cálculo al dominio y persiste el resultado.
type InvoiceUseCase struct {
	txRunner    InvoiceTxRunner
	invoiceRepo repository.InvoiceRepository
	companyRepo repository.CompanyRepository
	productRepo repository.ProductRepository
	builder     *invoice.Builder
	notifier    StatusNotifier
	metrics     InvoiceMetrics
	log         *logger.Logger
}

// NewInvoiceUseCase construye el caso de uso inyectando todas sus dependencias.
func NewInvoiceUseCase(
	txRunner InvoiceTxRunner,
	invoiceRepo repository.InvoiceRepository,
	companyRepo repository.CompanyRepository,
	productRepo repository.ProductRepository,
	builder *invoice.Builder,
	notifier StatusNotifier,
	metrics InvoiceMetrics,
	log *logger.Logger,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		txRunner:    txRunner,
		invoiceRepo: invoiceRepo,
		companyRepo: companyRepo,
		productRepo: productRepo,
		builder:     builder,
		notifier:    notifier,
		metrics:     metrics,
		log:         log.Component("billing"),
	}
}

// CreateFromDelivery factura una entrega confirmada. Cada línea toma nombre, categoría y
// (si no viene UnitPrice) precio del catálogo. Cabecera y líneas se guardan en una sola transacción.
func (uc *InvoiceUseCase) CreateFromDelivery(ctx context.Context, in dto.CreateFromDeliveryRequest) (*dto.InvoiceResponse, error) {
	if err := uc.ensureCompany(ctx, in.CompanyID); err != nil {
		return nil, err
	}

	items := make([]invoice.ItemInput, 0, len(in.Items))
	for i, it := range in.Items {
		product, err := uc.productRepo.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, fmt.Errorf("obtener producto %s: %w", it.ProductID, err)
		}
		if product == nil {
			uc.metrics.BuildFailed(SourceDelivery, "product_not_found")
			return nil, &domain.LineItemError{Index: i, Err: domain.ErrNotFound}
		}
		price := product.UnitPrice
		if it.UnitPrice != nil {
			price = *it.UnitPrice
		}
		items = append(items, invoice.ItemInput{
			ProductID:       product.ID,
			ProductName:     product.Name,
			Category:        product.Category,
			Quantity:        it.Quantity,
			UnitPrice:       price,
			TaxTypeOverride: taxTypeOverride(it.TaxType),
		})
	}

	return uc.create(ctx, SourceDelivery, invoice.BuildInput{
		CompanyID: in.CompanyID,
		Items:     items,
		IssueDate: derefTime(in.IssueDate),
		Memo:      in.Memo,
	})
}

// CreateManual arma una factura con líneas capturadas a mano (sin catálogo).
func (uc *InvoiceUseCase) CreateManual(ctx context.Context, in dto.CreateManualInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := uc.ensureCompany(ctx, in.CompanyID); err != nil {
		return nil, err
	}
	items := make([]invoice.ItemInput, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, invoice.ItemInput{
			ProductName:     it.ProductName,
			Category:        entity.ParseCategory(it.Category),
			Quantity:        it.Quantity,
			UnitPrice:       it.UnitPrice,
			TaxTypeOverride: taxTypeOverride(it.TaxType),
		})
	}
	return uc.create(ctx, SourceManual, invoice.BuildInput{
		CompanyID: in.CompanyID,
		Items:     items,
		IssueDate: derefTime(in.IssueDate),
		Memo:      in.Memo,
	})
}

func (uc *InvoiceUseCase) create(ctx context.Context, source string, in invoice.BuildInput) (*dto.InvoiceResponse, error) {
	inv, err := uc.builder.Build(in)
	if err != nil {
		uc.metrics.BuildFailed(source, buildFailureReason(err))
		return nil, err
	}
	inv.ID = uuid.New().String()

	err = uc.txRunner.RunInvoice(ctx, func(invoiceRepo repository.InvoiceRepository) error {
		return invoiceRepo.Create(ctx, inv)
	})
	if err != nil {
		uc.metrics.BuildFailed(source, buildFailureReason(err))
		return nil, err
	}

	uc.metrics.InvoiceBuilt(source)
	uc.log.Info().
		Str("invoice_id", inv.ID).
		Str("invoice_number", inv.InvoiceNumber).
		Str("company_id", inv.CompanyID).
		Str("source", source).
		Int64("total_amount", inv.TotalAmount).
		Msg("factura creada")
	return ToInvoiceResponse(inv, true), nil
}

// Get devuelve la factura completa.
func (uc *InvoiceUseCase) Get(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponse(inv, true), nil
}

// List lista cabeceras de factura con filtros opcionales.
func (uc *InvoiceUseCase) List(ctx context.Context, in dto.InvoiceListRequest) (*dto.InvoiceListResponse, error) {
	in.DefaultPage()
	status := entity.InvoiceStatus(in.Status)
	if status != "" && !isKnownStatus(status) {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, in.Status)
	}
	list, err := uc.invoiceRepo.List(ctx, repository.InvoiceFilter{
		CompanyID: in.CompanyID,
		Status:    status,
		Year:      in.Year,
		Limit:     in.Limit,
		Offset:    in.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		items = append(items, *ToInvoiceResponse(inv, false))
	}
	return &dto.InvoiceListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// Delete borra la factura completa. Solo borradores y anuladas; el resto → domain.ErrInvoiceLocked.
func (uc *InvoiceUseCase) Delete(ctx context.Context, id string) error {
	inv, err := uc.load(ctx, id)
	if err != nil {
		return err
	}
	if inv.Status != entity.InvoiceStatusDraft && inv.Status != entity.InvoiceStatusCancelled {
		return domain.ErrInvoiceLocked
	}
	if err := uc.invoiceRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("invoice_id", id).Str("invoice_number", inv.InvoiceNumber).Msg("factura eliminada")
	return nil
}

// UpdateItem edita una línea de un borrador y guarda líneas y totales recalculados.
func (uc *InvoiceUseCase) UpdateItem(ctx context.Context, id string, index int, in dto.UpdateItemRequest) (*dto.InvoiceResponse, error) {
	inv, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	patch := invoice.ItemPatch{Quantity: in.Quantity, UnitPrice: in.UnitPrice}
	if in.TaxType != nil {
		patch.TaxType = taxTypeOverride(*in.TaxType)
	}
	updated, err := invoice.UpdateItem(inv, index, patch)
	if err != nil {
		return nil, err
	}
	updated.UpdatedAt = time.Now()

	err = uc.txRunner.RunInvoice(ctx, func(invoiceRepo repository.InvoiceRepository) error {
		return invoiceRepo.ReplaceItems(ctx, updated)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("invoice_id", id).
		Int("index", index).
		Int64("total_amount", updated.TotalAmount).
		Msg("línea de factura actualizada")
	return ToInvoiceResponse(updated, true), nil
}

// ChangeStatus aplica la transición pedida, la persiste y notifica.
// Aprobar o anular exige rol admin (domain.ErrForbidden). Una falla del notificador solo se registra.
func (uc *InvoiceUseCase) ChangeStatus(ctx context.Context, id, target, role string) (*dto.InvoiceResponse, error) {
	to := entity.InvoiceStatus(target)
	if (to == entity.InvoiceStatusApproved || to == entity.InvoiceStatusCancelled) && role != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	inv, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	from := inv.Status

	next, err := invoice.Transition(inv, to)
	if err != nil {
		uc.log.Warn().Str("invoice_id", id).Str("from", string(from)).Str("to", target).Msg("transición rechazada")
		return nil, err
	}
	next.UpdatedAt = time.Now()
	if err := uc.invoiceRepo.UpdateStatus(ctx, id, from, next.Status); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			uc.log.Warn().Str("invoice_id", id).Str("from", string(from)).Str("to", target).Msg("estado cambiado por otra petición")
		}
		return nil, err
	}

	uc.metrics.StatusChanged(from, next.Status)
	uc.log.Info().
		Str("invoice_id", id).
		Str("invoice_number", next.InvoiceNumber).
		Str("from", string(from)).
		Str("to", string(next.Status)).
		Msg("estado de factura cambiado")

	if uc.notifier != nil {
		if err := uc.notifier.NotifyStatusChange(ctx, next, from); err != nil {
			uc.log.Error().Err(err).Str("invoice_id", id).Msg("notificación de cambio de estado fallida")
		}
	}
	return ToInvoiceResponse(next, true), nil
}

// Transitions estados a los que puede pasar la factura (menú de la UI).
func (uc *InvoiceUseCase) Transitions(ctx context.Context, id string) (*dto.TransitionsResponse, error) {
	inv, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	allowed := invoice.AllowedTransitions(inv.Status)
	out := &dto.TransitionsResponse{
		Status:   string(inv.Status),
		Allowed:  make([]string, 0, len(allowed)),
		Terminal: invoice.IsTerminal(inv.Status),
	}
	for _, s := range allowed {
		out.Allowed = append(out.Allowed, string(s))
	}
	return out, nil
}

func (uc *InvoiceUseCase) load(ctx context.Context, id string) (*entity.Invoice, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener factura: %w", err)
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return inv, nil
}

func (uc *InvoiceUseCase) ensureCompany(ctx context.Context, companyID string) error {
	if companyID == "" {
		return fmt.Errorf("%w: company_id requerido", domain.ErrInvalidInput)
	}
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return fmt.Errorf("obtener empresa: %w", err)
	}
	if company == nil {
		return fmt.Errorf("%w: empresa %s", domain.ErrNotFound, companyID)
	}
	return nil
}

// buildFailureReason etiqueta de baja cardinalidad para el contador de fallas.
func buildFailureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyInvoice):
		return "empty_invoice"
	case errors.Is(err, domain.ErrInvalidLineItem):
		return "invalid_line_item"
	case errors.Is(err, domain.ErrAmountOverflow):
		return "amount_overflow"
	case errors.Is(err, domain.ErrDuplicate):
		return "duplicate_number"
	default:
		return "storage"
	}
}

func isKnownStatus(s entity.InvoiceStatus) bool {
	for _, st := range invoice.Statuses {
		if st == s {
			return true
		}
	}
	return false
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
