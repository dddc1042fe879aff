package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// NextNumber reserva el siguiente consecutivo. Llamar dentro de la tx de
// creación: el UPDATE bloquea la fila del contador hasta el commit, así dos
// creaciones concurrentes no obtienen el mismo número.
func (r *InvoiceRepo) NextNumber() (int64, error) {
	const query = `
		UPDATE invoice_numbers SET last_value = last_value + 1
		WHERE id = 1
		RETURNING last_value`
	var n int64
	if err := r.q.QueryRow(context.Background(), query).Scan(&n); err != nil {
		return 0, fmt.Errorf("next invoice number: %w", err)
	}
	return n, nil
}

// Create persiste cabecera y líneas de la factura.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	if invoice.ID == "" {
		invoice.ID = uuid.New().String()
	}
	const query = `
		INSERT INTO invoices (
			id, number, number_formatted, status,
			client_name, client_email, client_phone, client_address,
			business_name, business_address, business_contact, business_logo_url,
			issue_date, due_date,
			tax_percent, subtotal, tax_amount, total, deposit, balance,
			payment_method_id, paid_at, deleted_at, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25)`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.Number, invoice.NumberFormatted, string(invoice.Status),
		invoice.ClientName, nullIfEmpty(invoice.ClientEmail), nullIfEmpty(invoice.ClientPhone), nullIfEmpty(invoice.ClientAddress),
		invoice.BusinessName, nullIfEmpty(invoice.BusinessAddress), nullIfEmpty(invoice.BusinessContact), nullIfEmpty(invoice.BusinessLogoURL),
		invoice.IssueDate, invoice.DueDate,
		invoice.TaxPercent, invoice.Subtotal, invoice.TaxAmount, invoice.Total, invoice.Deposit, invoice.Balance,
		nullIfEmpty(invoice.PaymentMethodID), invoice.PaidAt, invoice.DeletedAt, invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("invoice number already exists: %w", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return r.insertItems(invoice.ID, invoice.Items)
}

// Update reescribe la cabecera (sin tocar estado ni consecutivo) y reemplaza
// las líneas.
func (r *InvoiceRepo) Update(invoice *entity.Invoice) error {
	const query = `
		UPDATE invoices SET
			client_name = $2, client_email = $3, client_phone = $4, client_address = $5,
			issue_date = $6, due_date = $7,
			tax_percent = $8, subtotal = $9, tax_amount = $10, total = $11,
			deposit = $12, balance = $13,
			updated_at = $14
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		invoice.ID,
		invoice.ClientName, nullIfEmpty(invoice.ClientEmail), nullIfEmpty(invoice.ClientPhone), nullIfEmpty(invoice.ClientAddress),
		invoice.IssueDate, invoice.DueDate,
		invoice.TaxPercent, invoice.Subtotal, invoice.TaxAmount, invoice.Total,
		invoice.Deposit, invoice.Balance,
		invoice.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if _, err := r.q.Exec(context.Background(), `DELETE FROM invoice_items WHERE invoice_id = $1`, invoice.ID); err != nil {
		return fmt.Errorf("delete invoice items: %w", err)
	}
	return r.insertItems(invoice.ID, invoice.Items)
}

func (r *InvoiceRepo) insertItems(invoiceID string, items []entity.LineItem) error {
	const query = `
		INSERT INTO invoice_items (id, invoice_id, position, category, description, unit_price, quantity)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`
	for _, item := range items {
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		_, err := r.q.Exec(context.Background(), query,
			item.ID, invoiceID, item.Position, nullIfEmpty(item.Category), item.Description,
			item.UnitPrice, item.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert invoice item: %w", err)
		}
	}
	return nil
}

const invoiceColumns = `
	id, number, number_formatted, status,
	client_name, client_email, client_phone, client_address,
	business_name, business_address, business_contact, business_logo_url,
	issue_date, due_date,
	tax_percent, subtotal, tax_amount, total, deposit, balance,
	payment_method_id, paid_at, deleted_at, created_at, updated_at`

// GetByID obtiene una factura completa (con líneas) por ID, incluyendo las
// que están en la papelera.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `SELECT` + invoiceColumns + ` FROM invoices WHERE id = $1`
	inv, err := r.scanInvoice(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	items, err := r.itemsByInvoiceID(inv.ID)
	if err != nil {
		return nil, err
	}
	inv.Items = items
	return inv, nil
}

// List lista facturas ordenadas por consecutivo descendente.
func (r *InvoiceRepo) List(filter repository.InvoiceFilter) ([]*entity.Invoice, error) {
	query := `SELECT` + invoiceColumns + ` FROM invoices WHERE 1=1`
	args := []any{}
	if !filter.IncludeDeleted {
		query += ` AND deleted_at IS NULL`
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		query += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	query += ` ORDER BY number DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(` OFFSET $%d`, len(args))
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var list []*entity.Invoice
	for rows.Next() {
		inv, err := r.scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, inv := range list {
		items, err := r.itemsByInvoiceID(inv.ID)
		if err != nil {
			return nil, err
		}
		inv.Items = items
	}
	return list, nil
}

// MarkFinalized persiste draft→pending, condicional sobre el estado actual.
func (r *InvoiceRepo) MarkFinalized(invoice *entity.Invoice) error {
	const query = `
		UPDATE invoices SET status = $2, updated_at = $3
		WHERE id = $1 AND status = $4 AND deleted_at IS NULL`
	return r.conditionalTransition(query,
		invoice.ID, string(entity.StatusPending), invoice.UpdatedAt, string(entity.StatusDraft))
}

// MarkPaid persiste pending→paid. La cláusula sobre el estado actual es la
// garantía de un solo escritor: de dos completamientos concurrentes, el
// segundo afecta cero filas y recibe ErrConflict.
func (r *InvoiceRepo) MarkPaid(invoice *entity.Invoice) error {
	const query = `
		UPDATE invoices SET status = $2, payment_method_id = $3, paid_at = $4, balance = $5, updated_at = $6
		WHERE id = $1 AND status = $7 AND deleted_at IS NULL`
	tag, err := r.q.Exec(context.Background(), query,
		invoice.ID, string(entity.StatusPaid), invoice.PaymentMethodID, invoice.PaidAt,
		invoice.Balance, invoice.UpdatedAt, string(entity.StatusPending),
	)
	if err != nil {
		return fmt.Errorf("mark invoice paid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

// MarkPending persiste paid→pending: limpia método y timestamp y restaura el
// saldo, condicional sobre status='paid'.
func (r *InvoiceRepo) MarkPending(invoice *entity.Invoice) error {
	const query = `
		UPDATE invoices SET status = $2, payment_method_id = NULL, paid_at = NULL, balance = $3, updated_at = $4
		WHERE id = $1 AND status = $5 AND deleted_at IS NULL`
	tag, err := r.q.Exec(context.Background(), query,
		invoice.ID, string(entity.StatusPending), invoice.Balance, invoice.UpdatedAt, string(entity.StatusPaid),
	)
	if err != nil {
		return fmt.Errorf("mark invoice pending: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

func (r *InvoiceRepo) conditionalTransition(query string, args ...any) error {
	tag, err := r.q.Exec(context.Background(), query, args...)
	if err != nil {
		return fmt.Errorf("invoice transition: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

// SoftDelete manda la factura a la papelera (recuperable).
func (r *InvoiceRepo) SoftDelete(id string, at time.Time) error {
	const query = `UPDATE invoices SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`
	tag, err := r.q.Exec(context.Background(), query, id, at)
	if err != nil {
		return fmt.Errorf("soft delete invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Restore recupera una factura de la papelera.
func (r *InvoiceRepo) Restore(id string) error {
	const query = `UPDATE invoices SET deleted_at = NULL WHERE id = $1 AND deleted_at IS NOT NULL`
	tag, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("restore invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// HardDelete elimina la factura y sus líneas de forma definitiva.
func (r *InvoiceRepo) HardDelete(id string) error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM invoice_items WHERE invoice_id = $1`, id); err != nil {
		return fmt.Errorf("delete invoice items: %w", err)
	}
	tag, err := r.q.Exec(context.Background(), `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *InvoiceRepo) scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var status string
	var clientEmail, clientPhone, clientAddress *string
	var businessAddress, businessContact, businessLogoURL *string
	var paymentMethodID *string
	err := row.Scan(
		&inv.ID, &inv.Number, &inv.NumberFormatted, &status,
		&inv.ClientName, &clientEmail, &clientPhone, &clientAddress,
		&inv.BusinessName, &businessAddress, &businessContact, &businessLogoURL,
		&inv.IssueDate, &inv.DueDate,
		&inv.TaxPercent, &inv.Subtotal, &inv.TaxAmount, &inv.Total, &inv.Deposit, &inv.Balance,
		&paymentMethodID, &inv.PaidAt, &inv.DeletedAt, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	inv.Status = entity.Status(status)
	inv.ClientEmail = derefStr(clientEmail)
	inv.ClientPhone = derefStr(clientPhone)
	inv.ClientAddress = derefStr(clientAddress)
	inv.BusinessAddress = derefStr(businessAddress)
	inv.BusinessContact = derefStr(businessContact)
	inv.BusinessLogoURL = derefStr(businessLogoURL)
	inv.PaymentMethodID = derefStr(paymentMethodID)
	return &inv, nil
}

func (r *InvoiceRepo) itemsByInvoiceID(invoiceID string) ([]entity.LineItem, error) {
	const query = `
		SELECT id, invoice_id, position, COALESCE(category, ''), description, unit_price, quantity
		FROM invoice_items WHERE invoice_id = $1 ORDER BY position`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()
	var items []entity.LineItem
	for rows.Next() {
		var it entity.LineItem
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.Position, &it.Category, &it.Description, &it.UnitPrice, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
