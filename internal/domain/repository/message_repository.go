package repository

import "github.com/jhoicas/Facturacion-api/internal/domain/entity"

// MessageRepository define el puerto de persistencia para mensajes
// predefinidos. La edición concurrente de la misma pareja (categoría, canal)
// no usa bloqueo optimista: gana la última escritura (limitación aceptada).
type MessageRepository interface {
	Create(msg *entity.Message) error
	Update(msg *entity.Message) error
	GetByID(id string) (*entity.Message, error)
	// GetByKey devuelve (nil, nil) cuando no existe mensaje para la pareja.
	GetByKey(category entity.MessageCategory, channel entity.MessageChannel) (*entity.Message, error)
	List() ([]*entity.Message, error)
}
