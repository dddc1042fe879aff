// Package billing contiene la lógica pura de facturación: cálculo de
// totales, máquina de estados del ciclo de pago y clasificación derivada
// por fecha de vencimiento. Sin persistencia ni efectos secundarios.
package billing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// Totals snapshot financiero de una factura. Los valores acumulan con la
// precisión completa de decimal; el redondeo a dos decimales ocurre solo en
// la frontera de formateo (StringFixed / messaging.FormatCurrency), nunca
// línea a línea, para no componer error de redondeo.
type Totals struct {
	Subtotal  decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
	Balance   decimal.Decimal
}

// CalculateTotals calcula {subtotal, impuesto, total, saldo} a partir de las
// líneas, el porcentaje de impuesto y el abono recibido.
//
// Función pura. Rechaza con domain.ErrInvalidInput precios unitarios,
// cantidades, porcentaje de impuesto o abono negativos; el caller no debe
// persistir nada en ese caso.
func CalculateTotals(items []entity.LineItem, taxPercent, deposit decimal.Decimal) (Totals, error) {
	if taxPercent.IsNegative() || deposit.IsNegative() {
		return Totals{}, domain.ErrInvalidInput
	}

	subtotal := decimal.Zero
	for _, item := range items {
		if item.UnitPrice.IsNegative() || item.Quantity.IsNegative() {
			return Totals{}, domain.ErrInvalidInput
		}
		subtotal = subtotal.Add(item.LineTotal())
	}

	taxAmount := subtotal.Mul(taxPercent).Div(decimal.NewFromInt(100))
	total := subtotal.Add(taxAmount)

	return Totals{
		Subtotal:  subtotal,
		TaxAmount: taxAmount,
		Total:     total,
		Balance:   total.Sub(deposit),
	}, nil
}
