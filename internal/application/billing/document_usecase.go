package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/facturas-api/internal/domain"
	"github.com/jhoicas/facturas-api/internal/domain/entity"
	"github.com/jhoicas/facturas-api/internal/domain/repository"
)

// DocumentUseCase genera las representaciones descargables de una factura (PDF y XML).
// Un borrador no tiene representación: su número y montos aún pueden cambiar.
type DocumentUseCase struct {
	invoiceRepo repository.InvoiceRepository
	companyRepo repository.CompanyRepository
	pdf         InvoicePDFGenerator
	xml         InvoiceXMLBuilder
	issuer      Issuer
}

// NewDocumentUseCase construye el caso de uso inyectando todas sus dependencias.
func NewDocumentUseCase(
	invoiceRepo repository.InvoiceRepository,
	companyRepo repository.CompanyRepository,
	pdf InvoicePDFGenerator,
	xml InvoiceXMLBuilder,
	issuer Issuer,
) *DocumentUseCase {
	return &DocumentUseCase{
		invoiceRepo: invoiceRepo,
		companyRepo: companyRepo,
		pdf:         pdf,
		xml:         xml,
		issuer:      issuer,
	}
}

// InvoicePDF genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la factura no existe.
//   - domain.ErrInvalidInput     si la factura está en borrador.
func (uc *DocumentUseCase) InvoicePDF(ctx context.Context, invoiceID string) (pdfBytes []byte, filename string, err error) {
	inv, company, err := uc.loadIssued(ctx, invoiceID)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.pdf.GenerateInvoicePDF(ctx, inv, company, uc.issuer)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, inv.InvoiceNumber + ".pdf", nil
}

// InvoiceXML genera el XML y el digest SHA-256 de su forma canónica.
func (uc *DocumentUseCase) InvoiceXML(ctx context.Context, invoiceID string) (doc []byte, digest, filename string, err error) {
	inv, company, err := uc.loadIssued(ctx, invoiceID)
	if err != nil {
		return nil, "", "", err
	}
	doc, digest, err = uc.xml.BuildInvoiceXML(inv, company, uc.issuer)
	if err != nil {
		return nil, "", "", fmt.Errorf("xml: generación fallida: %w", err)
	}
	return doc, digest, inv.InvoiceNumber + ".xml", nil
}

func (uc *DocumentUseCase) loadIssued(ctx context.Context, invoiceID string) (*entity.Invoice, *entity.Company, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, nil, fmt.Errorf("documento: obtener factura: %w", err)
	}
	if inv == nil {
		return nil, nil, domain.ErrNotFound
	}
	if inv.Status == entity.InvoiceStatusDraft {
		return nil, nil, fmt.Errorf("%w: la factura está en borrador; emítala antes de descargarla", domain.ErrInvalidInput)
	}
	company, err := uc.companyRepo.GetByID(ctx, inv.CompanyID)
	if err != nil {
		return nil, nil, fmt.Errorf("documento: obtener empresa: %w", err)
	}
	if company == nil {
		// sin registro de empresa se imprime con su ID
		company = &entity.Company{ID: inv.CompanyID, Name: inv.CompanyID}
	}
	return inv, company, nil
}
