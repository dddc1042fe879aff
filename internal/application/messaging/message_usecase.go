// Package messaging orquesta los mensajes predefinidos de notificación:
// creación perezosa, migración transparente en lectura, personalización y
// resolución con datos vivos de la factura.
package messaging

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	domainmsg "github.com/jhoicas/Facturacion-api/internal/domain/messaging"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
	"github.com/jhoicas/Facturacion-api/pkg/logger"
)

// MessageUseCase gestiona el almacén de plantillas y la resolución de
// mensajes.
type MessageUseCase struct {
	msgRepo     repository.MessageRepository
	invoiceRepo repository.InvoiceRepository
	methodRepo  repository.PaymentMethodRepository
	catalog     *domainmsg.Catalog
	publicURL   string // base de la URL pública de facturas
	log         *logger.Logger
}

// NewMessageUseCase construye el caso de uso.
func NewMessageUseCase(
	msgRepo repository.MessageRepository,
	invoiceRepo repository.InvoiceRepository,
	methodRepo repository.PaymentMethodRepository,
	catalog *domainmsg.Catalog,
	publicURL string,
	log *logger.Logger,
) *MessageUseCase {
	return &MessageUseCase{
		msgRepo:     msgRepo,
		invoiceRepo: invoiceRepo,
		methodRepo:  methodRepo,
		catalog:     catalog,
		publicURL:   strings.TrimRight(publicURL, "/"),
		log:         log,
	}
}

// Get obtiene el mensaje para (categoría, canal), creándolo desde la
// plantilla base si no existe y migrando el formato legado si aplica. El
// caller siempre recibe contenido ya migrado.
func (uc *MessageUseCase) Get(ctx context.Context, category entity.MessageCategory, channel entity.MessageChannel) (*dto.MessageResponse, error) {
	msg, err := uc.loadOrCreate(ctx, category, channel)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(msg), nil
}

// Save guarda el contenido editado. Con personalized=true el contenido
// sobrevive futuras cargas; con false el mensaje sigue espejando la
// plantilla base al cargar y al resolver.
func (uc *MessageUseCase) Save(ctx context.Context, id string, in dto.SaveMessageRequest) (*dto.MessageResponse, error) {
	msg, err := uc.msgRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, domain.ErrNotFound
	}
	msg.Content = in.Content
	msg.Personalized = in.Personalized
	if err := uc.msgRepo.Update(msg); err != nil {
		return nil, err
	}
	return uc.toResponse(msg), nil
}

// RestoreToBase devuelve el mensaje a la plantilla base fija de su pareja
// (categoría, canal) y limpia la marca de personalización.
func (uc *MessageUseCase) RestoreToBase(ctx context.Context, id string) (*dto.MessageResponse, error) {
	msg, err := uc.msgRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, domain.ErrNotFound
	}
	base, ok := uc.catalog.Base(msg.Category, msg.Channel)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	msg.Content = base
	msg.Personalized = false
	if err := uc.msgRepo.Update(msg); err != nil {
		return nil, err
	}
	return uc.toResponse(msg), nil
}

// Resolve produce el texto final para una factura: plantilla (personalizada
// o base) + datos vivos + método de pago opcional. El core solo produce
// texto; la entrega (correo/chat) es del lanzador externo.
func (uc *MessageUseCase) Resolve(ctx context.Context, category entity.MessageCategory, channel entity.MessageChannel, in dto.ResolveMessageRequest) (*dto.ResolvedMessageResponse, error) {
	msg, err := uc.loadOrCreate(ctx, category, channel)
	if err != nil {
		return nil, err
	}
	base, _ := uc.catalog.Base(category, channel)
	text := domainmsg.EffectiveText(msg, base)

	inv, err := uc.invoiceRepo.GetByID(in.InvoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}

	var method *entity.PaymentMethod
	if in.PaymentMethodID != "" {
		method, err = uc.methodRepo.GetByID(in.PaymentMethodID)
		if err != nil {
			return nil, err
		}
	}

	resolved := domainmsg.Resolve(text, domainmsg.ResolveData{
		Invoice:     inv,
		Method:      method,
		InvoiceLink: uc.publicURL + "/" + inv.ID,
	})
	return &dto.ResolvedMessageResponse{
		Category: string(category),
		Channel:  string(channel),
		Text:     resolved,
	}, nil
}

// List lista los mensajes almacenados (sin creación perezosa).
func (uc *MessageUseCase) List(ctx context.Context) ([]*dto.MessageResponse, error) {
	msgs, err := uc.msgRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MessageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, uc.toResponse(m))
	}
	return out, nil
}

// loadOrCreate carga el mensaje de la pareja, creándolo desde la base si no
// existe, y aplica la migración de formato legado sobre el contenido
// almacenado. La migración se persiste antes de devolver; si la persistencia
// falla se registra y se sigue sirviendo (no bloquea la lectura).
func (uc *MessageUseCase) loadOrCreate(ctx context.Context, category entity.MessageCategory, channel entity.MessageChannel) (*entity.Message, error) {
	if !category.Valid() || !channel.Valid() {
		return nil, domain.ErrInvalidInput
	}
	msg, err := uc.msgRepo.GetByKey(category, channel)
	if err != nil {
		return nil, err
	}
	if msg == nil {
		base, ok := uc.catalog.Base(category, channel)
		if !ok {
			return nil, domain.ErrInvalidInput
		}
		msg = &entity.Message{
			ID:           uuid.New().String(),
			Category:     category,
			Channel:      channel,
			Content:      base,
			Personalized: false,
		}
		if err := uc.msgRepo.Create(msg); err != nil {
			return nil, err
		}
		return msg, nil
	}

	if migrated, changed := domainmsg.MigrateLegacyContent(msg.Content); changed {
		msg.Content = migrated
		if err := uc.msgRepo.Update(msg); err != nil {
			uc.log.Warn().Err(err).
				Str("category", string(category)).
				Str("channel", string(channel)).
				Msg("persistir migración de plantilla")
		}
	}
	return msg, nil
}

// toResponse arma la respuesta de un mensaje. Un mensaje sin personalizar
// espeja siempre la plantilla base vigente del catálogo, sin importar lo que
// haya quedado almacenado en Content.
func (uc *MessageUseCase) toResponse(m *entity.Message) *dto.MessageResponse {
	content := m.Content
	if !m.Personalized {
		if base, ok := uc.catalog.Base(m.Category, m.Channel); ok {
			content = base
		}
	}
	return &dto.MessageResponse{
		ID:           m.ID,
		Category:     string(m.Category),
		Channel:      string(m.Channel),
		Content:      content,
		Personalized: m.Personalized,
	}
}
