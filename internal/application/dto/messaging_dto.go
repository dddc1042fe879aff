package dto

// SaveMessageRequest body para PUT /api/messages/:id. Guardar con
// personalized=true preserva el contenido editado en futuras cargas.
type SaveMessageRequest struct {
	Content      string `json:"content" validate:"required"`
	Personalized bool   `json:"personalized"`
}

// MessageResponse mensaje predefinido en respuestas. Content ya viene
// migrado al esquema de placeholders vigente.
type MessageResponse struct {
	ID           string `json:"id"`
	Category     string `json:"category"`
	Channel      string `json:"channel"`
	Content      string `json:"content"`
	Personalized bool   `json:"personalized"`
}

// ResolveMessageRequest query para GET /api/messages/:category/:channel/resolve.
type ResolveMessageRequest struct {
	InvoiceID       string `query:"invoice_id" validate:"required"`
	PaymentMethodID string `query:"payment_method_id"`
}

// ResolvedMessageResponse texto final listo para el lanzador de entrega
// (correo o chat); el core solo produce el texto, nunca lo envía.
type ResolvedMessageResponse struct {
	Category string `json:"category"`
	Channel  string `json:"channel"`
	Text     string `json:"text"`
}
