package repository

import "github.com/jhoicas/Facturacion-api/internal/domain/entity"

// PaymentMethodRepository define el puerto de persistencia para métodos de pago.
type PaymentMethodRepository interface {
	Create(method *entity.PaymentMethod) error
	Update(method *entity.PaymentMethod) error
	Delete(id string) error
	GetByID(id string) (*entity.PaymentMethod, error)
	// List devuelve los métodos ordenados por display_order; con onlyActive
	// solo los seleccionables al componer una notificación.
	List(onlyActive bool) ([]*entity.PaymentMethod, error)
}
