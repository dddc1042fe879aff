package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/billing"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

func item(price, qty float64) entity.LineItem {
	return entity.LineItem{
		UnitPrice: decimal.NewFromFloat(price),
		Quantity:  decimal.NewFromFloat(qty),
	}
}

// Vector de referencia: 2 ítems ($50×2, $10×1), IVA 7%, abono $20 →
// subtotal 110.00, impuesto 7.70, total 117.70, saldo 97.70.
func TestCalculateTotals_VectorReferencia(t *testing.T) {
	items := []entity.LineItem{item(50, 2), item(10, 1)}

	totals, err := billing.CalculateTotals(items, decimal.NewFromInt(7), decimal.NewFromInt(20))
	require.NoError(t, err)

	assert.Equal(t, "110.00", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "7.70", totals.TaxAmount.StringFixed(2))
	assert.Equal(t, "117.70", totals.Total.StringFixed(2))
	assert.Equal(t, "97.70", totals.Balance.StringFixed(2))
}

func TestCalculateTotals_SinItems(t *testing.T) {
	totals, err := billing.CalculateTotals(nil, decimal.NewFromInt(19), decimal.Zero)
	require.NoError(t, err)

	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.Total.IsZero())
	assert.True(t, totals.Balance.IsZero())
}

// La acumulación mantiene precisión completa: el redondeo ocurre solo al
// formatear, no línea a línea.
func TestCalculateTotals_SinErrorDeRedondeoAcumulado(t *testing.T) {
	// 300 líneas de $0.333 × 1: subtotal exacto 99.90
	items := make([]entity.LineItem, 300)
	for i := range items {
		items[i] = item(0.333, 1)
	}

	totals, err := billing.CalculateTotals(items, decimal.Zero, decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, "99.90", totals.Subtotal.StringFixed(2))
}

func TestCalculateTotals_RechazaNegativos(t *testing.T) {
	cases := []struct {
		name    string
		items   []entity.LineItem
		tax     decimal.Decimal
		deposit decimal.Decimal
	}{
		{"precio negativo", []entity.LineItem{item(-1, 1)}, decimal.Zero, decimal.Zero},
		{"cantidad negativa", []entity.LineItem{item(1, -1)}, decimal.Zero, decimal.Zero},
		{"impuesto negativo", []entity.LineItem{item(1, 1)}, decimal.NewFromInt(-7), decimal.Zero},
		{"abono negativo", []entity.LineItem{item(1, 1)}, decimal.Zero, decimal.NewFromInt(-20)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := billing.CalculateTotals(tc.items, tc.tax, tc.deposit)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}
