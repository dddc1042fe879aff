package billing

import (
	"context"
	"time"

	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

// InvoiceTxRunner ejecuta una función dentro de una transacción con el repo
// de facturas atado a la tx. La creación usa esto para que la reserva del
// consecutivo y la inserción sean atómicas.
type InvoiceTxRunner interface {
	RunInvoice(ctx context.Context, fn func(invoiceRepo repository.InvoiceRepository) error) error
}

// DocumentRenderer colaborador externo que mantiene el documento renderizado
// de la factura. El core solo señala: Render tras un cambio que deja el
// documento obsoleto (completar o revertir un pago), Discard en el borrado
// definitivo. Un fallo del renderer nunca revierte la transición.
type DocumentRenderer interface {
	Render(ctx context.Context, invoice *entity.Invoice) error
	Discard(ctx context.Context, invoiceID string) error
}

// Clock reloj inyectable para clasificación derivada y timestamps de pago
// (determinista en tests).
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock reloj del sistema.
func SystemClock() Clock { return systemClock{} }
