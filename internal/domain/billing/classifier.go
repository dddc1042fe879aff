package billing

import (
	"time"

	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// DerivedCategory categoría transitoria de presentación calculada a partir de
// la fecha de vencimiento. Nunca se persiste: se recalcula en cada lectura.
type DerivedCategory string

const (
	DerivedNone    DerivedCategory = ""
	DerivedDueSoon DerivedCategory = "due-soon"
	DerivedOverdue DerivedCategory = "overdue"
)

// dueSoonWindowDays ventana de aviso: 0 a 3 días antes del vencimiento.
const dueSoonWindowDays = 3

// Classify calcula la categoría derivada de una factura según el reloj
// inyectado. Solo facturas pending con fecha de vencimiento clasifican;
// draft y paid nunca reciben categoría. Idempotente, no muta la factura.
func Classify(inv *entity.Invoice, now time.Time) DerivedCategory {
	if inv.Status != entity.StatusPending || inv.DueDate == nil {
		return DerivedNone
	}
	days := DaysToDue(*inv.DueDate, now)
	switch {
	case days < 0:
		return DerivedOverdue
	case days <= dueSoonWindowDays:
		return DerivedDueSoon
	}
	return DerivedNone
}

// DaysToDue devuelve los días calendario completos entre hoy y la fecha de
// vencimiento (negativo si ya venció). Compara fechas calendario, no
// timestamps: una factura que vence hoy a cualquier hora da 0.
func DaysToDue(due, now time.Time) int {
	d := atMidnight(due)
	n := atMidnight(now)
	return int(d.Sub(n).Hours() / 24)
}

func atMidnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
