// Package messaging contiene la resolución de mensajes de notificación:
// catálogo de plantillas base, migración de plantillas con formato legado y
// sustitución de placeholders con datos vivos de la factura.
package messaging

import (
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

type templateKey struct {
	category entity.MessageCategory
	channel  entity.MessageChannel
}

// Catalog catálogo inyectable de plantillas base: exactamente un texto base
// por pareja (categoría, canal), definido por configuración y nunca editable
// por el usuario. Restaurar un mensaje siempre vuelve a este texto fijo.
type Catalog struct {
	base map[templateKey]string
}

// NewCatalog construye el catálogo con las plantillas por defecto,
// aplicando overrides con clave "categoría/canal" (ej. "pending/chat").
func NewCatalog(overrides map[string]string) *Catalog {
	c := &Catalog{base: make(map[templateKey]string, len(defaultTemplates))}
	for k, v := range defaultTemplates {
		c.base[k] = v
	}
	for k, v := range overrides {
		if key, ok := parseTemplateKey(k); ok && v != "" {
			c.base[key] = v
		}
	}
	return c
}

// Base devuelve el texto base para la pareja (categoría, canal).
func (c *Catalog) Base(category entity.MessageCategory, channel entity.MessageChannel) (string, bool) {
	text, ok := c.base[templateKey{category: category, channel: channel}]
	return text, ok
}

func parseTemplateKey(s string) (templateKey, bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == '/' {
			category := entity.MessageCategory(s[:i])
			channel := entity.MessageChannel(s[i+1:])
			if category.Valid() && channel.Valid() {
				return templateKey{category: category, channel: channel}, true
			}
			return templateKey{}, false
		}
	}
	return templateKey{}, false
}

// Plantillas base por defecto. Los placeholders van entre llaves y se
// sustituyen en Resolve; {payment-instructions} es el placeholder principal
// de pago ({payment-link} y {payment-description} se aceptan solo por
// compatibilidad con plantillas personalizadas viejas).
var defaultTemplates = map[templateKey]string{
	{entity.CategoryPending, entity.ChannelChat}: "Hi! Invoice {number} for {amount} is ready. " +
		"Balance due: {balance-due}.\nView it here: {invoice-link}\n\nPay online:\n{payment-instructions}",

	{entity.CategoryPending, entity.ChannelEmail}: "Hello,\n\n" +
		"Your invoice {number} for {amount} is ready. The balance due is {balance-due}.\n\n" +
		"View your invoice: {invoice-link}\n\n" +
		"Pay online:\n{payment-instructions}\n\n" +
		"Thank you for your business!",

	{entity.CategoryPaid, entity.ChannelChat}: "Thank you! We received your payment for invoice {number}. " +
		"Amount: {amount}. Balance due: {balance-due}.\nYour receipt: {invoice-link}",

	{entity.CategoryPaid, entity.ChannelEmail}: "Hello,\n\n" +
		"We received your payment for invoice {number} ({amount}). Balance due: {balance-due}.\n\n" +
		"You can view your receipt here: {invoice-link}\n\n" +
		"Thank you for your business!",

	{entity.CategoryOverdue, entity.ChannelChat}: "Friendly reminder: invoice {number} for {amount} is past due. " +
		"Balance due: {balance-due}.\nView it here: {invoice-link}\n\nPay online:\n{payment-instructions}",

	{entity.CategoryOverdue, entity.ChannelEmail}: "Hello,\n\n" +
		"This is a reminder that invoice {number} for {amount} is past due. " +
		"The balance due is {balance-due}.\n\n" +
		"View your invoice: {invoice-link}\n\n" +
		"Pay online:\n{payment-instructions}\n\n" +
		"Thank you!",

	{entity.CategoryDueSoon, entity.ChannelChat}: "Reminder: invoice {number} for {amount} is due soon. " +
		"Balance due: {balance-due}.\nView it here: {invoice-link}\n\nPay online:\n{payment-instructions}",

	{entity.CategoryDueSoon, entity.ChannelEmail}: "Hello,\n\n" +
		"This is a reminder that invoice {number} for {amount} is due soon. " +
		"The balance due is {balance-due}.\n\n" +
		"View your invoice: {invoice-link}\n\n" +
		"Pay online:\n{payment-instructions}\n\n" +
		"Thank you!",
}
