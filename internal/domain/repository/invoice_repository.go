package repository

import (
	"time"

	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// InvoiceFilter filtros para listados de facturas.
type InvoiceFilter struct {
	Status         entity.Status // vacío = todos los estados
	IncludeDeleted bool          // incluir facturas en la papelera
	Limit          int
	Offset         int
}

// InvoiceRepository define el puerto de persistencia para Invoice y sus líneas.
type InvoiceRepository interface {
	// NextNumber reserva y devuelve el siguiente consecutivo. Debe llamarse
	// dentro de la transacción de creación para que el número quede atado a
	// la factura o se libere con el rollback.
	NextNumber() (int64, error)
	Create(invoice *entity.Invoice) error
	// Update reescribe cabecera y líneas de forma atómica. No permite
	// cambiar estado ni consecutivo; para transiciones de pago usar
	// MarkPaid / MarkPending.
	Update(invoice *entity.Invoice) error
	GetByID(id string) (*entity.Invoice, error)
	List(filter InvoiceFilter) ([]*entity.Invoice, error)
	// MarkFinalized persiste la transición draft→pending, condicional sobre
	// status='draft'.
	MarkFinalized(invoice *entity.Invoice) error
	// MarkPaid persiste la transición pending→paid de forma condicional
	// (UPDATE ... WHERE status='pending'): si otra transición ganó la
	// carrera devuelve domain.ErrConflict. Garantiza como máximo una
	// transición en vuelo por factura.
	MarkPaid(invoice *entity.Invoice) error
	// MarkPending persiste la transición paid→pending, condicional sobre
	// status='paid'.
	MarkPending(invoice *entity.Invoice) error
	SoftDelete(id string, at time.Time) error
	Restore(id string) error
	// HardDelete elimina la factura y sus líneas de forma definitiva.
	HardDelete(id string) error
}
