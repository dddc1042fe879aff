package billing

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

// PaymentMethodUseCase CRUD de métodos de pago por configuración.
type PaymentMethodUseCase struct {
	methodRepo repository.PaymentMethodRepository
	clock      Clock
}

// NewPaymentMethodUseCase construye el caso de uso.
func NewPaymentMethodUseCase(methodRepo repository.PaymentMethodRepository, clock Clock) *PaymentMethodUseCase {
	return &PaymentMethodUseCase{methodRepo: methodRepo, clock: clock}
}

// Create registra un método de pago. Activo por defecto.
func (uc *PaymentMethodUseCase) Create(ctx context.Context, in dto.PaymentMethodRequest) (*dto.PaymentMethodResponse, error) {
	now := uc.clock.Now()
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	m := &entity.PaymentMethod{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Link:         in.Link,
		Instructions: in.Instructions,
		Active:       active,
		DisplayOrder: in.DisplayOrder,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.methodRepo.Create(m); err != nil {
		return nil, err
	}
	return toMethodResponse(m), nil
}

// Update edita un método de pago existente.
func (uc *PaymentMethodUseCase) Update(ctx context.Context, id string, in dto.PaymentMethodRequest) (*dto.PaymentMethodResponse, error) {
	m, err := uc.methodRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	m.Name = in.Name
	m.Link = in.Link
	m.Instructions = in.Instructions
	if in.Active != nil {
		m.Active = *in.Active
	}
	m.DisplayOrder = in.DisplayOrder
	m.UpdatedAt = uc.clock.Now()
	if err := uc.methodRepo.Update(m); err != nil {
		return nil, err
	}
	return toMethodResponse(m), nil
}

// Delete elimina un método de pago de la configuración.
func (uc *PaymentMethodUseCase) Delete(ctx context.Context, id string) error {
	m, err := uc.methodRepo.GetByID(id)
	if err != nil {
		return err
	}
	if m == nil {
		return domain.ErrNotFound
	}
	return uc.methodRepo.Delete(id)
}

// List lista métodos por display_order; con onlyActive, solo los ofrecibles
// al componer una notificación o completar un pago.
func (uc *PaymentMethodUseCase) List(ctx context.Context, onlyActive bool) ([]*dto.PaymentMethodResponse, error) {
	methods, err := uc.methodRepo.List(onlyActive)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PaymentMethodResponse, 0, len(methods))
	for _, m := range methods {
		out = append(out, toMethodResponse(m))
	}
	return out, nil
}

func toMethodResponse(m *entity.PaymentMethod) *dto.PaymentMethodResponse {
	return &dto.PaymentMethodResponse{
		ID:           m.ID,
		Name:         m.Name,
		Link:         m.Link,
		Instructions: m.Instructions,
		Active:       m.Active,
		DisplayOrder: m.DisplayOrder,
	}
}
