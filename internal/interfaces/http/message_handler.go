package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/application/messaging"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// MessageHandler maneja las peticiones HTTP de mensajes predefinidos.
type MessageHandler struct {
	uc *messaging.MessageUseCase
}

// NewMessageHandler construye el handler.
func NewMessageHandler(uc *messaging.MessageUseCase) *MessageHandler {
	return &MessageHandler{uc: uc}
}

// Get obtiene (creando si no existe) el mensaje de una pareja
// (categoría, canal). El contenido llega ya migrado al esquema vigente.
// GET /api/messages/:category/:channel
func (h *MessageHandler) Get(c *fiber.Ctx) error {
	msg, err := h.uc.Get(c.Context(),
		entity.MessageCategory(c.Params("category")),
		entity.MessageChannel(c.Params("channel")),
	)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(msg)
}

// List lista los mensajes almacenados.
// GET /api/messages
func (h *MessageHandler) List(c *fiber.Ctx) error {
	msgs, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(msgs)
}

// Save guarda el contenido editado de un mensaje.
// PUT /api/messages/:id
func (h *MessageHandler) Save(c *fiber.Ctx) error {
	var in dto.SaveMessageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validator.New().Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	msg, err := h.uc.Save(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(msg)
}

// RestoreToBase devuelve el mensaje a su plantilla base fija.
// POST /api/messages/:id/restore
func (h *MessageHandler) RestoreToBase(c *fiber.Ctx) error {
	msg, err := h.uc.RestoreToBase(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(msg)
}

// Resolve produce el texto final de notificación para una factura.
// GET /api/messages/:category/:channel/resolve?invoice_id=...&payment_method_id=...
func (h *MessageHandler) Resolve(c *fiber.Ctx) error {
	var in dto.ResolveMessageRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query inválido"})
	}
	if err := validator.New().Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	resolved, err := h.uc.Resolve(c.Context(),
		entity.MessageCategory(c.Params("category")),
		entity.MessageChannel(c.Params("channel")),
		in,
	)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resolved)
}
