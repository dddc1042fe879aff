package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

var _ repository.PaymentMethodRepository = (*PaymentMethodRepo)(nil)

// PaymentMethodRepo implementación de PaymentMethodRepository.
type PaymentMethodRepo struct {
	q Querier
}

// NewPaymentMethodRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentMethodRepository(q Querier) *PaymentMethodRepo {
	return &PaymentMethodRepo{q: q}
}

// Create persiste un método de pago.
func (r *PaymentMethodRepo) Create(m *entity.PaymentMethod) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	const query = `
		INSERT INTO payment_methods (id, name, link, instructions, active, display_order, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.Name, nullIfEmpty(m.Link), nullIfEmpty(m.Instructions),
		m.Active, m.DisplayOrder, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment method: %w", err)
	}
	return nil
}

// Update actualiza un método de pago.
func (r *PaymentMethodRepo) Update(m *entity.PaymentMethod) error {
	const query = `
		UPDATE payment_methods
		SET name = $2, link = $3, instructions = $4, active = $5, display_order = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		m.ID, m.Name, nullIfEmpty(m.Link), nullIfEmpty(m.Instructions),
		m.Active, m.DisplayOrder, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update payment method: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un método de pago.
func (r *PaymentMethodRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM payment_methods WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete payment method: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene un método de pago por ID.
func (r *PaymentMethodRepo) GetByID(id string) (*entity.PaymentMethod, error) {
	const query = `
		SELECT id, name, COALESCE(link, ''), COALESCE(instructions, ''), active, display_order, created_at, updated_at
		FROM payment_methods WHERE id = $1`
	var m entity.PaymentMethod
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.Name, &m.Link, &m.Instructions, &m.Active, &m.DisplayOrder, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment method: %w", err)
	}
	return &m, nil
}

// List devuelve los métodos ordenados por display_order.
func (r *PaymentMethodRepo) List(onlyActive bool) ([]*entity.PaymentMethod, error) {
	query := `
		SELECT id, name, COALESCE(link, ''), COALESCE(instructions, ''), active, display_order, created_at, updated_at
		FROM payment_methods`
	if onlyActive {
		query += ` WHERE active`
	}
	query += ` ORDER BY display_order, name`

	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list payment methods: %w", err)
	}
	defer rows.Close()
	var list []*entity.PaymentMethod
	for rows.Next() {
		var m entity.PaymentMethod
		if err := rows.Scan(&m.ID, &m.Name, &m.Link, &m.Instructions, &m.Active, &m.DisplayOrder, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan payment method: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
