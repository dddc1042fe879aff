package billing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// Máquina de estados del ciclo de pago:
//
//	draft ──finalize──▶ pending ──completePayment──▶ paid
//	                       ▲                           │
//	                       └───────revertPayment───────┘
//
// El eje de borrado (activa → papelera → eliminada) es ortogonal y vive en
// Invoice.DeletedAt; el borrado definitivo tiene un punto de entrada propio
// en la capa de aplicación para que la ruta irreversible no pueda dispararse
// por accidente.

// CanTransition indica si la transición entre dos estados es legal.
func CanTransition(from, to entity.Status) bool {
	switch from {
	case entity.StatusDraft:
		return to == entity.StatusPending
	case entity.StatusPending:
		return to == entity.StatusPaid
	case entity.StatusPaid:
		return to == entity.StatusPending
	}
	return false
}

// Finalize pasa una factura de draft a pending. No recalcula nada: los
// totales ya los mantiene CalculateTotals en cada mutación.
func Finalize(inv *entity.Invoice) error {
	if !CanTransition(inv.Status, entity.StatusPending) || inv.Status != entity.StatusDraft {
		return domain.ErrIllegalTransition
	}
	inv.Status = entity.StatusPending
	return nil
}

// CompletePayment pasa una factura de pending a paid. Requiere un método de
// pago activo; fija el timestamp de pago, deja el saldo en cero y registra la
// referencia al método.
func CompletePayment(inv *entity.Invoice, method *entity.PaymentMethod, now time.Time) error {
	if !CanTransition(inv.Status, entity.StatusPaid) {
		return domain.ErrIllegalTransition
	}
	if method == nil || !method.Active {
		return domain.ErrMissingPaymentMethod
	}
	paidAt := now
	inv.Status = entity.StatusPaid
	inv.PaymentMethodID = method.ID
	inv.PaidAt = &paidAt
	inv.Balance = decimal.Zero
	return nil
}

// RevertPayment pasa una factura de paid a pending: limpia la referencia al
// método y el timestamp, y restaura el saldo al total de la factura.
//
// Nota: el saldo vuelve al total completo, no a total − abono. Es el
// comportamiento histórico del producto; ver la decisión registrada en
// DESIGN.md antes de "corregirlo".
func RevertPayment(inv *entity.Invoice) error {
	if !CanTransition(inv.Status, entity.StatusPending) || inv.Status != entity.StatusPaid {
		return domain.ErrIllegalTransition
	}
	inv.Status = entity.StatusPending
	inv.PaymentMethodID = ""
	inv.PaidAt = nil
	inv.Balance = inv.Total
	return nil
}

// EnsureEditable rechaza con ErrInvoiceLocked cualquier intento de mutar
// líneas, impuesto o abono de una factura pagada: el caller debe revertir el
// pago primero.
func EnsureEditable(inv *entity.Invoice) error {
	if inv.Status == entity.StatusPaid {
		return domain.ErrInvoiceLocked
	}
	return nil
}
