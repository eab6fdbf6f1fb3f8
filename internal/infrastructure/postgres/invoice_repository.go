package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/facturas-api/internal/domain"
	"github.com/jhoicas/facturas-api/internal/domain/entity"
	"github.com/jhoicas/facturas-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

const invoiceColumns = `id, invoice_number, company_id, issue_date, status, memo,
	total_supply_amount, total_tax_amount, total_amount, created_at, updated_at`

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
// Create y ReplaceItems escriben varias tablas: llamarlos dentro de TxRunner.RunInvoice.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste cabecera y líneas. invoice_number repetido → domain.ErrDuplicate.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.InvoiceNumber, inv.CompanyID, inv.IssueDate, string(inv.Status), inv.Memo,
		inv.TotalSupplyAmount, inv.TotalTaxAmount, inv.TotalAmount,
		inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("invoice number %s: %w", inv.InvoiceNumber, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return r.insertItems(ctx, inv.ID, inv.Items)
}

func (r *InvoiceRepo) insertItems(ctx context.Context, invoiceID string, items []entity.LineItem) error {
	const query = `
		INSERT INTO invoice_items (invoice_id, position, product_id, product_name, category, quantity,
		                           unit_price, tax_type, supply_amount, tax_amount, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	for i, it := range items {
		_, err := r.q.Exec(ctx, query,
			invoiceID, i, nullIfEmpty(it.ProductID), it.ProductName, string(it.Category), it.Quantity,
			it.UnitPrice, string(it.TaxType), it.SupplyAmount, it.TaxAmount, it.LineTotal,
		)
		if err != nil {
			return fmt.Errorf("insert invoice item %d: %w", i, err)
		}
	}
	return nil
}

// GetByID obtiene una factura completa (cabecera + líneas en orden).
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	row := r.q.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id)
	inv, err := scanInvoice(row)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	if err := r.attachItems(ctx, []*entity.Invoice{inv}); err != nil {
		return nil, err
	}
	return inv, nil
}

// List devuelve cabeceras filtradas, más recientes primero.
func (r *InvoiceRepo) List(ctx context.Context, f repository.InvoiceFilter) ([]*entity.Invoice, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.CompanyID != "" {
		add("company_id = $%d", f.CompanyID)
	}
	if f.Status != "" {
		add("status = $%d", string(f.Status))
	}
	if f.Year > 0 {
		add("EXTRACT(YEAR FROM issue_date) = $%d", f.Year)
	}

	query := `SELECT ` + invoiceColumns + ` FROM invoices`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY issue_date DESC, created_at DESC`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		query += fmt.Sprintf(` OFFSET $%d`, len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return collectInvoices(rows)
}

// ListByYear devuelve las facturas del año con sus líneas (dos consultas, sin N+1).
func (r *InvoiceRepo) ListByYear(ctx context.Context, year int) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices
		WHERE issue_date >= make_date($1, 1, 1) AND issue_date < make_date($1 + 1, 1, 1)
		ORDER BY issue_date, created_at`
	rows, err := r.q.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("list invoices by year: %w", err)
	}
	list, err := collectInvoices(rows)
	if err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// ReplaceItems borra y reinserta las líneas y actualiza los totales de la cabecera.
// La cabecera solo se actualiza si sigue en draft.
func (r *InvoiceRepo) ReplaceItems(ctx context.Context, inv *entity.Invoice) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE invoices
		   SET total_supply_amount = $2, total_tax_amount = $3, total_amount = $4, updated_at = $5
		 WHERE id = $1 AND status = $6`,
		inv.ID, inv.TotalSupplyAmount, inv.TotalTaxAmount, inv.TotalAmount, inv.UpdatedAt,
		string(entity.InvoiceStatusDraft),
	)
	if err != nil {
		return fmt.Errorf("update invoice totals: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return r.notFoundOrConflict(ctx, inv.ID)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1`, inv.ID); err != nil {
		return fmt.Errorf("delete invoice items: %w", err)
	}
	return r.insertItems(ctx, inv.ID, inv.Items)
}

// UpdateStatus persiste solo el estado, condicionado a que el guardado siga siendo from.
func (r *InvoiceRepo) UpdateStatus(ctx context.Context, id string, from, to entity.InvoiceStatus) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE invoices SET status = $3, updated_at = now() WHERE id = $1 AND status = $2`,
		id, string(from), string(to))
	if err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return r.notFoundOrConflict(ctx, id)
	}
	return nil
}

// notFoundOrConflict distingue un UPDATE sin filas: factura inexistente o estado cambiado por otra petición.
func (r *InvoiceRepo) notFoundOrConflict(ctx context.Context, id string) error {
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM invoices WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("check invoice: %w", err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	return domain.ErrConflict
}

// Delete borra la factura; invoice_items cae por ON DELETE CASCADE.
func (r *InvoiceRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}

// CountByCompany cuenta las facturas de una empresa (cualquier estado).
func (r *InvoiceRepo) CountByCompany(ctx context.Context, companyID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM invoices WHERE company_id = $1`, companyID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count invoices: %w", err)
	}
	return n, nil
}

// attachItems carga las líneas de todas las facturas en una sola consulta.
func (r *InvoiceRepo) attachItems(ctx context.Context, list []*entity.Invoice) error {
	if len(list) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Invoice, len(list))
	ids := make([]string, 0, len(list))
	for _, inv := range list {
		inv.Items = make([]entity.LineItem, 0)
		byID[inv.ID] = inv
		ids = append(ids, inv.ID)
	}

	rows, err := r.q.Query(ctx, `
		SELECT invoice_id, product_id, product_name, category, quantity, unit_price, tax_type,
		       supply_amount, tax_amount, line_total
		  FROM invoice_items
		 WHERE invoice_id = ANY($1)
		 ORDER BY invoice_id, position`, ids)
	if err != nil {
		return fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			invoiceID string
			productID *string
			category  string
			taxType   string
			it        entity.LineItem
		)
		if err := rows.Scan(&invoiceID, &productID, &it.ProductName, &category, &it.Quantity, &it.UnitPrice,
			&taxType, &it.SupplyAmount, &it.TaxAmount, &it.LineTotal); err != nil {
			return fmt.Errorf("scan invoice item: %w", err)
		}
		if productID != nil {
			it.ProductID = *productID
		}
		it.Category = entity.ProductCategory(category)
		it.TaxType = entity.TaxType(taxType)
		if inv, ok := byID[invoiceID]; ok {
			inv.Items = append(inv.Items, it)
		}
	}
	return rows.Err()
}

func collectInvoices(rows pgx.Rows) ([]*entity.Invoice, error) {
	defer rows.Close()
	list := make([]*entity.Invoice, 0)
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var (
		inv    entity.Invoice
		status string
	)
	err := row.Scan(
		&inv.ID, &inv.InvoiceNumber, &inv.CompanyID, &inv.IssueDate, &status, &inv.Memo,
		&inv.TotalSupplyAmount, &inv.TotalTaxAmount, &inv.TotalAmount,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	inv.Status = entity.InvoiceStatus(status)
	return &inv, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
