package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Status estados del ciclo de pago de una factura. Enumeración cerrada:
// toda transición pasa por las funciones de billing (CanTransition y las
// operaciones Finalize, CompletePayment, RevertPayment), nunca por
// comparación de strings dispersa en los call sites.
type Status string

const (
	StatusDraft   Status = "draft"   // Borrador, editable, sin efectos de cobro
	StatusPending Status = "pending" // Emitida, pendiente de pago
	StatusPaid    Status = "paid"    // Pagada; bloqueada para edición
)

// Valid indica si el valor pertenece a la enumeración.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusPaid:
		return true
	}
	return false
}

// Invoice representa la cabecera de una factura.
//
// Los datos del cliente y del negocio emisor son un snapshot tomado al crear
// la factura; nunca se re-derivan del registro vivo del cliente/negocio.
type Invoice struct {
	ID              string
	Number          int64  // Consecutivo asignado en la creación, inmutable
	NumberFormatted string // Variante para mostrar (ej. INV-00042)
	Status          Status

	// Snapshot del cliente
	ClientName    string
	ClientEmail   string
	ClientPhone   string
	ClientAddress string

	// Snapshot del negocio emisor
	BusinessName    string
	BusinessAddress string
	BusinessContact string
	BusinessLogoURL string

	Items []LineItem

	// Campos financieros. Balance = Total - Deposit mientras pending;
	// Balance = 0 mientras paid.
	TaxPercent decimal.Decimal
	Subtotal   decimal.Decimal
	TaxAmount  decimal.Decimal
	Total      decimal.Decimal
	Deposit    decimal.Decimal
	Balance    decimal.Decimal

	// Metadatos de pago: presentes solo cuando Status = paid.
	PaymentMethodID string
	PaidAt          *time.Time

	IssueDate time.Time
	DueDate   *time.Time

	// Eje de borrado ortogonal al estado: nil = activa, no-nil = en papelera
	// (recuperable). El borrado definitivo elimina la fila, no se representa.
	DeletedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayNumber devuelve la variante formateada del consecutivo si existe,
// o el número crudo.
func (i *Invoice) DisplayNumber() string {
	if i.NumberFormatted != "" {
		return i.NumberFormatted
	}
	return fmt.Sprintf("%d", i.Number)
}

// IsDeleted indica si la factura está en la papelera (borrado suave).
func (i *Invoice) IsDeleted() bool {
	return i.DeletedAt != nil
}

// FormatNumber genera la variante para mostrar de un consecutivo.
func FormatNumber(n int64) string {
	return fmt.Sprintf("INV-%05d", n)
}
