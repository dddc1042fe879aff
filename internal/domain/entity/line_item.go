package entity

import "github.com/shopspring/decimal"

// LineItem representa una línea de una factura. El total de la línea se
// recalcula siempre de UnitPrice × Quantity; no se persiste por separado.
type LineItem struct {
	ID          string
	InvoiceID   string
	Position    int // Orden dentro de la factura
	Category    string
	Description string
	UnitPrice   decimal.Decimal
	Quantity    decimal.Decimal
}

// LineTotal devuelve UnitPrice × Quantity.
func (li LineItem) LineTotal() decimal.Decimal {
	return li.UnitPrice.Mul(li.Quantity)
}
