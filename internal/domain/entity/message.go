package entity

import "time"

// MessageCategory categoría de mensaje para notificaciones. Es una
// clasificación de presentación, distinta del Status persistido: overdue y
// due-soon se derivan de la fecha de vencimiento de una factura pending.
type MessageCategory string

const (
	CategoryPending MessageCategory = "pending"
	CategoryPaid    MessageCategory = "paid"
	CategoryOverdue MessageCategory = "overdue"
	CategoryDueSoon MessageCategory = "due-soon"
)

// Valid indica si el valor pertenece a la enumeración.
func (c MessageCategory) Valid() bool {
	switch c {
	case CategoryPending, CategoryPaid, CategoryOverdue, CategoryDueSoon:
		return true
	}
	return false
}

// MessageChannel canal de entrega al que apunta una plantilla.
type MessageChannel string

const (
	ChannelChat  MessageChannel = "chat"
	ChannelEmail MessageChannel = "email"
)

// Valid indica si el valor pertenece a la enumeración.
func (c MessageChannel) Valid() bool {
	return c == ChannelChat || c == ChannelEmail
}

// Message plantilla de notificación almacenada para una pareja
// (categoría, canal). El texto base por pareja vive en el catálogo inyectado
// (messaging.Catalog), nunca aquí: Content solo es fuente de verdad cuando
// Personalized es true; si no, al resolver se usa siempre el texto base.
// Se crea de forma perezosa la primera vez que se solicita la pareja.
type Message struct {
	ID           string
	Category     MessageCategory
	Channel      MessageChannel
	Content      string
	Personalized bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
