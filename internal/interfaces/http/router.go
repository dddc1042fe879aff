package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Facturacion-api/internal/application/billing"
	"github.com/jhoicas/Facturacion-api/internal/application/messaging"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	InvoiceUC       *billing.InvoiceUseCase
	PaymentMethodUC *billing.PaymentMethodUseCase
	MessageUC       *messaging.MessageUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Invoices
	invoices := api.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Put("/:id", invoiceHandler.Update)
	invoices.Post("/:id/finalize", invoiceHandler.Finalize)
	invoices.Post("/:id/payment", invoiceHandler.CompletePayment)
	invoices.Delete("/:id/payment", invoiceHandler.RevertPayment)
	invoices.Post("/:id/restore", invoiceHandler.Restore)
	// El borrado definitivo vive en una ruta separada del borrado suave:
	// la ruta irreversible no puede dispararse por accidente.
	invoices.Delete("/:id/permanent", invoiceHandler.HardDelete)
	invoices.Delete("/:id", invoiceHandler.SoftDelete)

	// Payment methods
	methods := api.Group("/payment-methods")
	methodHandler := NewPaymentMethodHandler(deps.PaymentMethodUC)
	methods.Post("/", methodHandler.Create)
	methods.Get("/", methodHandler.List)
	methods.Put("/:id", methodHandler.Update)
	methods.Delete("/:id", methodHandler.Delete)

	// Predefined messages
	messages := api.Group("/messages")
	messageHandler := NewMessageHandler(deps.MessageUC)
	messages.Get("/", messageHandler.List)
	messages.Put("/:id", messageHandler.Save)
	messages.Post("/:id/restore", messageHandler.RestoreToBase)
	messages.Get("/:category/:channel/resolve", messageHandler.Resolve)
	messages.Get("/:category/:channel", messageHandler.Get)
}
