package billing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Facturacion-api/internal/domain/billing"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

var today = time.Date(2026, 4, 15, 10, 30, 0, 0, time.UTC)

func pendingDueIn(days int) *entity.Invoice {
	due := today.AddDate(0, 0, days)
	return &entity.Invoice{Status: entity.StatusPending, DueDate: &due}
}

func TestClassify_Ventanas(t *testing.T) {
	cases := []struct {
		name string
		days int
		want billing.DerivedCategory
	}{
		{"vencida ayer", -1, billing.DerivedOverdue},
		{"vencida hace un mes", -30, billing.DerivedOverdue},
		{"vence hoy", 0, billing.DerivedDueSoon},
		{"vence en 3 días (borde de la ventana)", 3, billing.DerivedDueSoon},
		{"vence en 4 días (fuera de la ventana)", 4, billing.DerivedNone},
		{"vence en un mes", 30, billing.DerivedNone},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := billing.Classify(pendingDueIn(tc.days), today)
			assert.Equal(t, tc.want, got)
		})
	}
}

// draft y paid nunca reciben categoría derivada, aunque estén vencidas.
func TestClassify_SoloPendingClasifica(t *testing.T) {
	overdueDate := today.AddDate(0, 0, -10)

	for _, status := range []entity.Status{entity.StatusDraft, entity.StatusPaid} {
		inv := &entity.Invoice{Status: status, DueDate: &overdueDate}
		assert.Equal(t, billing.DerivedNone, billing.Classify(inv, today), "status %s", status)
	}
}

func TestClassify_SinFechaDeVencimiento(t *testing.T) {
	inv := &entity.Invoice{Status: entity.StatusPending}
	assert.Equal(t, billing.DerivedNone, billing.Classify(inv, today))
}

// La clasificación compara fechas calendario, no timestamps: una factura que
// vence hoy a las 00:01 clasifica igual consultada a las 23:59.
func TestDaysToDue_FechaCalendario(t *testing.T) {
	due := time.Date(2026, 4, 15, 0, 1, 0, 0, time.UTC)
	now := time.Date(2026, 4, 15, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, 0, billing.DaysToDue(due, now))

	nextDay := time.Date(2026, 4, 16, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, 1, billing.DaysToDue(nextDay, now))
	assert.Equal(t, -1, billing.DaysToDue(now.AddDate(0, 0, -1), now))
}

// Idempotente: clasificar dos veces con el mismo reloj da lo mismo y no muta.
func TestClassify_Idempotente(t *testing.T) {
	inv := pendingDueIn(2)
	first := billing.Classify(inv, today)
	second := billing.Classify(inv, today)
	assert.Equal(t, first, second)
	assert.Equal(t, entity.StatusPending, inv.Status)
}
