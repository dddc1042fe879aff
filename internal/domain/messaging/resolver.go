package messaging

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// Placeholders soportados (sensibles a mayúsculas, delimitados por llaves;
// se sustituyen todas las ocurrencias).
const (
	PlaceholderNumber              = "{number}"
	PlaceholderAmount              = "{amount}"
	PlaceholderBalanceDue          = "{balance-due}"
	PlaceholderBalance             = "{balance}" // alias de {balance-due}
	PlaceholderInvoiceLink         = "{invoice-link}"
	PlaceholderPaymentLink         = "{payment-link}"
	PlaceholderPaymentDescription  = "{payment-description}"
	PlaceholderPaymentInstructions = "{payment-instructions}"
)

// FallbackPaymentLink URL comodín que se renderiza cuando el método de pago
// no trae un link real. Un link igual a esta URL NO cuenta como link válido.
const FallbackPaymentLink = "https://your-payment-link.com"

// EffectiveText devuelve el texto sobre el que se sustituye: el contenido
// editado si el mensaje está personalizado, o el texto base del catálogo.
// Único punto del sistema donde se decide entre ambas fuentes.
func EffectiveText(msg *entity.Message, base string) string {
	if msg != nil && msg.Personalized {
		return msg.Content
	}
	return base
}

// ResolveData datos vivos para la sustitución de placeholders.
type ResolveData struct {
	Invoice     *entity.Invoice
	Method      *entity.PaymentMethod // opcional: método seleccionado al componer
	InvoiceLink string                // URL pública para ver la factura
}

// Resolve sustituye todos los placeholders del contenido con los datos de la
// factura y el método de pago. Pura respecto a sus entradas.
func Resolve(content string, data ResolveData) string {
	inv := data.Invoice
	balance := FormatCurrency(outstandingBalance(inv))

	replacer := strings.NewReplacer(
		PlaceholderNumber, inv.DisplayNumber(),
		PlaceholderAmount, FormatCurrency(inv.Total),
		PlaceholderBalanceDue, balance,
		PlaceholderBalance, balance,
		PlaceholderInvoiceLink, data.InvoiceLink,
		PlaceholderPaymentLink, paymentLink(data.Method),
		PlaceholderPaymentDescription, paymentDescription(data.Method),
		PlaceholderPaymentInstructions, PaymentInstructions(data.Method),
	)
	return replacer.Replace(content)
}

// outstandingBalance saldo a mostrar: 0 si la factura está pagada; si no, el
// saldo almacenado tal cual. El saldo siempre se calcula al crear o editar
// (total menos abono), así que cero es un saldo real, no un valor ausente:
// una factura cubierta por completo con el abono muestra $0.00.
func outstandingBalance(inv *entity.Invoice) decimal.Decimal {
	if inv.Status == entity.StatusPaid {
		return decimal.Zero
	}
	return inv.Balance
}

func paymentLink(m *entity.PaymentMethod) string {
	if m != nil && m.Link != "" {
		return m.Link
	}
	return FallbackPaymentLink
}

func paymentDescription(m *entity.PaymentMethod) string {
	if m == nil {
		return ""
	}
	return m.Instructions
}

// hasValidLink un link de pago es válido solo si no está vacío y no es la
// URL comodín.
func hasValidLink(m *entity.PaymentMethod) bool {
	return m != nil && m.Link != "" && m.Link != FallbackPaymentLink
}

// PaymentInstructions calcula el valor del placeholder principal de pago.
// Cuatro casos:
//
//	(a) link válido + descripción → link seguido de la descripción bajo un
//	    encabezado de instrucciones adicionales
//	(b) solo link válido → el link
//	(c) solo descripción → la descripción bajo un encabezado de instrucciones
//	(d) ninguno → la URL comodín
func PaymentInstructions(m *entity.PaymentMethod) string {
	link := hasValidLink(m)
	desc := m != nil && m.Instructions != ""

	switch {
	case link && desc:
		return m.Link + "\n\nAdditional payment instructions:\n" + m.Instructions
	case link:
		return m.Link
	case desc:
		return "Payment instructions:\n" + m.Instructions
	}
	return FallbackPaymentLink
}

var currencyPrinter = message.NewPrinter(language.English)

// FormatCurrency formatea un monto como moneda con exactamente dos decimales
// y separador de miles ($1,234.56). Única frontera de redondeo del sistema.
func FormatCurrency(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return currencyPrinter.Sprintf("$%.2f", f)
}
