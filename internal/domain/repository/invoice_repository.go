package repository

import (
	"context"

	"github.com/jhoicas/facturas-api/internal/domain/entity"
)

// InvoiceFilter criterios del listado. Campos vacíos o cero no filtran.
type InvoiceFilter struct {
	CompanyID string
	Status    entity.InvoiceStatus
	Year      int
	Limit     int
	Offset    int
}

// InvoiceRepository define el puerto de persistencia para el agregado Invoice (cabecera + líneas).
type InvoiceRepository interface {
	// Create inserta cabecera y líneas. Número duplicado → domain.ErrDuplicate.
	Create(ctx context.Context, invoice *entity.Invoice) error
	// GetByID devuelve la factura con sus líneas en orden.
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	// List devuelve cabeceras (sin líneas), más recientes primero.
	List(ctx context.Context, filter InvoiceFilter) ([]*entity.Invoice, error)
	// ListByYear devuelve las facturas con líneas cuya fecha de emisión cae en el año dado.
	ListByYear(ctx context.Context, year int) ([]*entity.Invoice, error)
	// ReplaceItems reemplaza todas las líneas y los totales de la cabecera.
	// Solo sobre borradores: si la factura guardada ya no es draft → domain.ErrConflict.
	ReplaceItems(ctx context.Context, invoice *entity.Invoice) error
	// UpdateStatus cambia el estado solo si el guardado sigue siendo from; si no → domain.ErrConflict.
	UpdateStatus(ctx context.Context, id string, from, to entity.InvoiceStatus) error
	// Delete borra la factura completa (las líneas caen en cascada).
	Delete(ctx context.Context, id string) error
	CountByCompany(ctx context.Context, companyID string) (int, error)
}
