package messaging

import "strings"

// Formato legado: las plantillas viejas traían una frase instructiva fija
// seguida del par de placeholders de link y descripción. Hoy ese bloque es el
// placeholder unificado {payment-instructions}.
const (
	legacyPayPhrase = "You can pay using the link below:"

	legacyPayBlock = legacyPayPhrase + "\n" + PlaceholderPaymentLink + "\n" + PlaceholderPaymentDescription
)

// MigrateLegacyContent reescribe el bloque de pago legado al placeholder
// unificado. Devuelve el contenido (migrado o intacto) y si hubo cambio.
//
// Transformación pura y separada de la sustitución para poder verificar su
// idempotencia en aislamiento: una vez migrado, el patrón legado ya no
// aparece y una segunda pasada no cambia nada.
func MigrateLegacyContent(content string) (string, bool) {
	if !strings.Contains(content, legacyPayBlock) {
		return content, false
	}
	return strings.ReplaceAll(content, legacyPayBlock, PlaceholderPaymentInstructions), true
}
