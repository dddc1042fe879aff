package billing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/billing"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

func pendingInvoice() *entity.Invoice {
	return &entity.Invoice{
		ID:      "inv-1",
		Status:  entity.StatusPending,
		Total:   decimal.NewFromFloat(117.70),
		Deposit: decimal.NewFromFloat(20),
		Balance: decimal.NewFromFloat(97.70),
	}
}

func activeMethod() *entity.PaymentMethod {
	return &entity.PaymentMethod{ID: "pm-1", Name: "Nequi", Active: true}
}

// ──────────────────────────────────────────────────────────────────────────────
// Transiciones legales
// ──────────────────────────────────────────────────────────────────────────────

func TestCanTransition_TablaCerrada(t *testing.T) {
	legal := [][2]entity.Status{
		{entity.StatusDraft, entity.StatusPending},
		{entity.StatusPending, entity.StatusPaid},
		{entity.StatusPaid, entity.StatusPending},
	}
	for _, tr := range legal {
		assert.True(t, billing.CanTransition(tr[0], tr[1]), "%s → %s debe ser legal", tr[0], tr[1])
	}

	illegal := [][2]entity.Status{
		{entity.StatusDraft, entity.StatusPaid},
		{entity.StatusPaid, entity.StatusDraft},
		{entity.StatusPending, entity.StatusDraft},
		{entity.StatusDraft, entity.StatusDraft},
	}
	for _, tr := range illegal {
		assert.False(t, billing.CanTransition(tr[0], tr[1]), "%s → %s debe ser ilegal", tr[0], tr[1])
	}
}

func TestFinalize_DraftAPending(t *testing.T) {
	inv := pendingInvoice()
	inv.Status = entity.StatusDraft

	require.NoError(t, billing.Finalize(inv))
	assert.Equal(t, entity.StatusPending, inv.Status)

	// Finalizar dos veces es ilegal
	assert.ErrorIs(t, billing.Finalize(inv), domain.ErrIllegalTransition)
}

func TestCompletePayment_FijaMetodoTimestampYSaldoCero(t *testing.T) {
	inv := pendingInvoice()
	now := time.Date(2026, 3, 10, 15, 4, 0, 0, time.UTC)

	require.NoError(t, billing.CompletePayment(inv, activeMethod(), now))

	assert.Equal(t, entity.StatusPaid, inv.Status)
	assert.Equal(t, "pm-1", inv.PaymentMethodID)
	require.NotNil(t, inv.PaidAt)
	assert.Equal(t, now, *inv.PaidAt)
	assert.True(t, inv.Balance.IsZero(), "el saldo de una factura pagada es 0")
}

func TestCompletePayment_SinMetodo(t *testing.T) {
	inv := pendingInvoice()
	err := billing.CompletePayment(inv, nil, time.Now())
	assert.ErrorIs(t, err, domain.ErrMissingPaymentMethod)
	// La factura queda en su estado anterior, consistente
	assert.Equal(t, entity.StatusPending, inv.Status)
	assert.Equal(t, "97.70", inv.Balance.StringFixed(2))
}

func TestCompletePayment_MetodoInactivo(t *testing.T) {
	inv := pendingInvoice()
	m := activeMethod()
	m.Active = false
	err := billing.CompletePayment(inv, m, time.Now())
	assert.ErrorIs(t, err, domain.ErrMissingPaymentMethod)
}

func TestCompletePayment_SobreDraftEsIlegal(t *testing.T) {
	inv := pendingInvoice()
	inv.Status = entity.StatusDraft
	err := billing.CompletePayment(inv, activeMethod(), time.Now())
	assert.ErrorIs(t, err, domain.ErrIllegalTransition)
}

// Completar y revertir vuelve a pending con saldo = total (no total − abono).
// Comportamiento histórico del producto, reproducido a propósito: si este
// test rompe, alguien lo "corrigió" sin pasar por producto.
func TestRevertirPago_RestauraBalanceAlTotal(t *testing.T) {
	inv := pendingInvoice()
	require.NoError(t, billing.CompletePayment(inv, activeMethod(), time.Now()))

	require.NoError(t, billing.RevertPayment(inv))

	assert.Equal(t, entity.StatusPending, inv.Status)
	assert.Empty(t, inv.PaymentMethodID)
	assert.Nil(t, inv.PaidAt)
	assert.Equal(t, "117.70", inv.Balance.StringFixed(2),
		"el saldo se restaura al total completo, descartando el abono")
}

func TestRevertPayment_SobrePendingEsIlegal(t *testing.T) {
	inv := pendingInvoice()
	assert.ErrorIs(t, billing.RevertPayment(inv), domain.ErrIllegalTransition)
}

func TestEnsureEditable_PagadaBloqueada(t *testing.T) {
	inv := pendingInvoice()
	require.NoError(t, billing.CompletePayment(inv, activeMethod(), time.Now()))

	assert.ErrorIs(t, billing.EnsureEditable(inv), domain.ErrInvoiceLocked)

	require.NoError(t, billing.RevertPayment(inv))
	assert.NoError(t, billing.EnsureEditable(inv), "tras revertir el pago vuelve a ser editable")
}
