package entity

import "time"

// PaymentMethod forma de pago configurada por el negocio (Nequi, transferencia,
// PayPal, etc.). Solo los métodos activos se ofrecen al componer una
// notificación o completar un pago.
type PaymentMethod struct {
	ID           string
	Name         string
	Link         string // URL externa de pago, opcional
	Instructions string // Texto libre con instrucciones, opcional
	Active       bool
	DisplayOrder int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
