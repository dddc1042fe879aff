package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

var _ repository.MessageRepository = (*MessageRepo)(nil)

// MessageRepo implementación de MessageRepository. Sin bloqueo optimista:
// dos ediciones concurrentes de la misma pareja (categoría, canal) quedan en
// última-escritura-gana.
type MessageRepo struct {
	q Querier
}

// NewMessageRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMessageRepository(q Querier) *MessageRepo {
	return &MessageRepo{q: q}
}

// Create persiste un mensaje predefinido. La pareja (categoría, canal) es
// única; crear dos veces la misma devuelve ErrDuplicate.
func (r *MessageRepo) Create(m *entity.Message) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	now := time.Now()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
	const query = `
		INSERT INTO predefined_messages (id, category, channel, content, personalized, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, string(m.Category), string(m.Channel), m.Content, m.Personalized, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("message for pair already exists: %w", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

// Update guarda contenido y marca de personalización.
func (r *MessageRepo) Update(m *entity.Message) error {
	m.UpdatedAt = time.Now()
	const query = `
		UPDATE predefined_messages
		SET content = $2, personalized = $3, updated_at = $4
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, m.ID, m.Content, m.Personalized, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update message: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

const messageColumns = `id, category, channel, content, personalized, created_at, updated_at`

// GetByID obtiene un mensaje por ID.
func (r *MessageRepo) GetByID(id string) (*entity.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM predefined_messages WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByKey obtiene el mensaje de la pareja (categoría, canal); (nil, nil) si
// no existe.
func (r *MessageRepo) GetByKey(category entity.MessageCategory, channel entity.MessageChannel) (*entity.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM predefined_messages WHERE category = $1 AND channel = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, string(category), string(channel)))
}

// List lista todos los mensajes almacenados.
func (r *MessageRepo) List() ([]*entity.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM predefined_messages ORDER BY category, channel`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()
	var list []*entity.Message
	for rows.Next() {
		var m entity.Message
		var category, channel string
		if err := rows.Scan(&m.ID, &category, &channel, &m.Content, &m.Personalized, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		m.Category = entity.MessageCategory(category)
		m.Channel = entity.MessageChannel(channel)
		list = append(list, &m)
	}
	return list, rows.Err()
}

func (r *MessageRepo) scanOne(row pgx.Row) (*entity.Message, error) {
	var m entity.Message
	var category, channel string
	err := row.Scan(&m.ID, &category, &channel, &m.Content, &m.Personalized, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get message: %w", err)
	}
	m.Category = entity.MessageCategory(category)
	m.Channel = entity.MessageChannel(channel)
	return &m, nil
}
