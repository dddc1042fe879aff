package messaging_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appmessaging "github.com/jhoicas/Facturacion-api/internal/application/messaging"
	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	domainmsg "github.com/jhoicas/Facturacion-api/internal/domain/messaging"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
	"github.com/jhoicas/Facturacion-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeMessageRepo struct {
	messages map[string]*entity.Message // por ID
	updates  int
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{messages: map[string]*entity.Message{}}
}

func (r *fakeMessageRepo) Create(m *entity.Message) error {
	for _, existing := range r.messages {
		if existing.Category == m.Category && existing.Channel == m.Channel {
			return domain.ErrDuplicate
		}
	}
	cp := *m
	r.messages[m.ID] = &cp
	return nil
}

func (r *fakeMessageRepo) Update(m *entity.Message) error {
	if _, ok := r.messages[m.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *m
	r.messages[m.ID] = &cp
	r.updates++
	return nil
}

func (r *fakeMessageRepo) GetByID(id string) (*entity.Message, error) {
	m, ok := r.messages[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMessageRepo) GetByKey(category entity.MessageCategory, channel entity.MessageChannel) (*entity.Message, error) {
	for _, m := range r.messages {
		if m.Category == category && m.Channel == channel {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeMessageRepo) List() ([]*entity.Message, error) {
	var out []*entity.Message
	for _, m := range r.messages {
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

type fakeInvoiceReader struct {
	invoices map[string]*entity.Invoice
}

func (r *fakeInvoiceReader) NextNumber() (int64, error)                 { return 0, nil }
func (r *fakeInvoiceReader) Create(*entity.Invoice) error               { return nil }
func (r *fakeInvoiceReader) Update(*entity.Invoice) error               { return nil }
func (r *fakeInvoiceReader) MarkFinalized(*entity.Invoice) error        { return nil }
func (r *fakeInvoiceReader) MarkPaid(*entity.Invoice) error             { return nil }
func (r *fakeInvoiceReader) MarkPending(*entity.Invoice) error          { return nil }
func (r *fakeInvoiceReader) SoftDelete(string, time.Time) error         { return nil }
func (r *fakeInvoiceReader) Restore(string) error                       { return nil }
func (r *fakeInvoiceReader) HardDelete(string) error                    { return nil }
func (r *fakeInvoiceReader) List(repository.InvoiceFilter) ([]*entity.Invoice, error) {
	return nil, nil
}

func (r *fakeInvoiceReader) GetByID(id string) (*entity.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, nil
	}
	return inv, nil
}

type fakeMethodReader struct {
	methods map[string]*entity.PaymentMethod
}

func (r *fakeMethodReader) Create(*entity.PaymentMethod) error { return nil }
func (r *fakeMethodReader) Update(*entity.PaymentMethod) error { return nil }
func (r *fakeMethodReader) Delete(string) error                { return nil }
func (r *fakeMethodReader) List(bool) ([]*entity.PaymentMethod, error) {
	return nil, nil
}

func (r *fakeMethodReader) GetByID(id string) (*entity.PaymentMethod, error) {
	m, ok := r.methods[id]
	if !ok {
		return nil, nil
	}
	return m, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

type msgFixture struct {
	uc       *appmessaging.MessageUseCase
	msgs     *fakeMessageRepo
	invoices *fakeInvoiceReader
	methods  *fakeMethodReader
}

func newMsgFixture(t *testing.T, overrides map[string]string) *msgFixture {
	t.Helper()
	msgs := newFakeMessageRepo()
	invoices := &fakeInvoiceReader{invoices: map[string]*entity.Invoice{}}
	methods := &fakeMethodReader{methods: map[string]*entity.PaymentMethod{}}
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	uc := appmessaging.NewMessageUseCase(
		msgs, invoices, methods,
		domainmsg.NewCatalog(overrides),
		"https://app.example.com/invoices/",
		log,
	)
	return &msgFixture{uc: uc, msgs: msgs, invoices: invoices, methods: methods}
}

func pendingInvoice() *entity.Invoice {
	due := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)
	return &entity.Invoice{
		ID:              "inv-1",
		Number:          7,
		NumberFormatted: "INV-00007",
		Status:          entity.StatusPending,
		ClientName:      "Acme S.A.S.",
		Total:           decimal.RequireFromString("117.70"),
		Balance:         decimal.RequireFromString("97.70"),
		DueDate:         &due,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación perezosa y migración
// ──────────────────────────────────────────────────────────────────────────────

func TestGet_CreaDesdePlantillaBaseSiNoExiste(t *testing.T) {
	f := newMsgFixture(t, nil)

	resp, err := f.uc.Get(context.Background(), entity.CategoryPending, entity.ChannelChat)
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "pending", resp.Category)
	assert.Equal(t, "chat", resp.Channel)
	assert.False(t, resp.Personalized)
	assert.Contains(t, resp.Content, domainmsg.PlaceholderNumber)

	// La segunda lectura devuelve el mismo registro, no crea otro
	again, err := f.uc.Get(context.Background(), entity.CategoryPending, entity.ChannelChat)
	require.NoError(t, err)
	assert.Equal(t, resp.ID, again.ID)
	assert.Len(t, f.msgs.messages, 1)
}

func TestGet_CategoriaInvalida(t *testing.T) {
	f := newMsgFixture(t, nil)

	_, err := f.uc.Get(context.Background(), entity.MessageCategory("archived"), entity.ChannelChat)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGet_MigraFormatoLegadoYPersiste(t *testing.T) {
	f := newMsgFixture(t, nil)

	legacy := "Hola {number}.\nYou can pay using the link below:\n" +
		domainmsg.PlaceholderPaymentLink + "\n" + domainmsg.PlaceholderPaymentDescription +
		"\nGracias."
	require.NoError(t, f.msgs.Create(&entity.Message{
		ID:           "msg-legacy",
		Category:     entity.CategoryOverdue,
		Channel:      entity.ChannelEmail,
		Content:      legacy,
		Personalized: true,
	}))

	resp, err := f.uc.Get(context.Background(), entity.CategoryOverdue, entity.ChannelEmail)
	require.NoError(t, err)

	assert.Contains(t, resp.Content, domainmsg.PlaceholderPaymentInstructions)
	assert.NotContains(t, resp.Content, domainmsg.PlaceholderPaymentLink)
	assert.NotContains(t, resp.Content, "You can pay using the link below:")
	assert.True(t, resp.Personalized, "la migración no toca la marca de personalización")

	// La reescritura quedó persistida: la siguiente lectura no vuelve a migrar
	updatesAfterFirst := f.msgs.updates
	_, err = f.uc.Get(context.Background(), entity.CategoryOverdue, entity.ChannelEmail)
	require.NoError(t, err)
	assert.Equal(t, updatesAfterFirst, f.msgs.updates, "la migración es de una sola vez")
}

func TestCatalogo_OverridesPorConfiguracion(t *testing.T) {
	f := newMsgFixture(t, map[string]string{
		"paid/chat": "¡Gracias por tu pago de {amount}!",
	})

	resp, err := f.uc.Get(context.Background(), entity.CategoryPaid, entity.ChannelChat)
	require.NoError(t, err)
	assert.Equal(t, "¡Gracias por tu pago de {amount}!", resp.Content)
}

// ──────────────────────────────────────────────────────────────────────────────
// Guardado y restauración
// ──────────────────────────────────────────────────────────────────────────────

func TestGuardarYRestaurarPlantilla(t *testing.T) {
	f := newMsgFixture(t, nil)

	created, err := f.uc.Get(context.Background(), entity.CategoryDueSoon, entity.ChannelChat)
	require.NoError(t, err)
	base := created.Content

	saved, err := f.uc.Save(context.Background(), created.ID, dto.SaveMessageRequest{
		Content:      "Recuerda: la factura {number} vence pronto.",
		Personalized: true,
	})
	require.NoError(t, err)
	assert.True(t, saved.Personalized)
	assert.NotEqual(t, base, saved.Content)

	restored, err := f.uc.RestoreToBase(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, base, restored.Content)
	assert.False(t, restored.Personalized)
}

func TestGuardar_SinPersonalizarLaCargaEspejaLaBase(t *testing.T) {
	f := newMsgFixture(t, nil)

	created, err := f.uc.Get(context.Background(), entity.CategoryPending, entity.ChannelChat)
	require.NoError(t, err)
	base := created.Content

	// Guardar una edición sin marcar personalized: el contenido editado no
	// debe sobrevivir la siguiente carga, que vuelve a espejar la base.
	saved, err := f.uc.Save(context.Background(), created.ID, dto.SaveMessageRequest{
		Content:      "texto editado no personalizado",
		Personalized: false,
	})
	require.NoError(t, err)
	assert.Equal(t, base, saved.Content)

	loaded, err := f.uc.Get(context.Background(), entity.CategoryPending, entity.ChannelChat)
	require.NoError(t, err)
	assert.Equal(t, base, loaded.Content)
	assert.False(t, loaded.Personalized)

	list, err := f.uc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, base, list[0].Content)
}

func TestGuardar_MensajeInexistente(t *testing.T) {
	f := newMsgFixture(t, nil)

	_, err := f.uc.Save(context.Background(), "no-existe", dto.SaveMessageRequest{Content: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Resolución
// ──────────────────────────────────────────────────────────────────────────────

func TestResolver_SustituyeTodosLosPlaceholders(t *testing.T) {
	f := newMsgFixture(t, nil)
	f.invoices.invoices["inv-1"] = pendingInvoice()
	f.methods.methods["pm-1"] = &entity.PaymentMethod{
		ID:           "pm-1",
		Name:         "Transferencia",
		Link:         "https://pay.example.com/acme",
		Instructions: "Cuenta 123-456, enviar comprobante.",
		Active:       true,
	}

	resolved, err := f.uc.Resolve(context.Background(), entity.CategoryPending, entity.ChannelEmail, dto.ResolveMessageRequest{
		InvoiceID:       "inv-1",
		PaymentMethodID: "pm-1",
	})
	require.NoError(t, err)

	assert.NotContains(t, resolved.Text, "{", "no deben quedar placeholders sin resolver")
	assert.Contains(t, resolved.Text, "INV-00007")
	assert.Contains(t, resolved.Text, "$117.70")
	assert.Contains(t, resolved.Text, "https://app.example.com/invoices/inv-1")
	assert.Contains(t, resolved.Text, "https://pay.example.com/acme")
	assert.Contains(t, resolved.Text, "Cuenta 123-456, enviar comprobante.")
}

func TestResolver_SinMetodoUsaEnlaceDeRespaldo(t *testing.T) {
	f := newMsgFixture(t, nil)
	f.invoices.invoices["inv-1"] = pendingInvoice()

	resolved, err := f.uc.Resolve(context.Background(), entity.CategoryOverdue, entity.ChannelChat, dto.ResolveMessageRequest{
		InvoiceID: "inv-1",
	})
	require.NoError(t, err)
	assert.Contains(t, resolved.Text, domainmsg.FallbackPaymentLink)
}

func TestResolver_UsaPlantillaPersonalizada(t *testing.T) {
	f := newMsgFixture(t, nil)
	f.invoices.invoices["inv-1"] = pendingInvoice()

	created, err := f.uc.Get(context.Background(), entity.CategoryPending, entity.ChannelChat)
	require.NoError(t, err)
	_, err = f.uc.Save(context.Background(), created.ID, dto.SaveMessageRequest{
		Content:      "Saldo pendiente de {number}: {balance-due}",
		Personalized: true,
	})
	require.NoError(t, err)

	resolved, err := f.uc.Resolve(context.Background(), entity.CategoryPending, entity.ChannelChat, dto.ResolveMessageRequest{
		InvoiceID: "inv-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "Saldo pendiente de INV-00007: $97.70", resolved.Text)
}

func TestResolver_PlantillaEditadaSinPersonalizarVuelveALaBase(t *testing.T) {
	f := newMsgFixture(t, nil)
	f.invoices.invoices["inv-1"] = pendingInvoice()

	created, err := f.uc.Get(context.Background(), entity.CategoryPending, entity.ChannelChat)
	require.NoError(t, err)
	base := created.Content
	_, err = f.uc.Save(context.Background(), created.ID, dto.SaveMessageRequest{
		Content:      "borrador sin terminar",
		Personalized: false,
	})
	require.NoError(t, err)

	resolved, err := f.uc.Resolve(context.Background(), entity.CategoryPending, entity.ChannelChat, dto.ResolveMessageRequest{
		InvoiceID: "inv-1",
	})
	require.NoError(t, err)
	assert.NotContains(t, resolved.Text, "borrador sin terminar")
	// El texto resuelto proviene de la base, con los placeholders sustituidos
	prefix := strings.SplitN(base, "{", 2)[0]
	if prefix != "" {
		assert.Contains(t, resolved.Text, prefix)
	}
}

func TestResolver_FacturaInexistente(t *testing.T) {
	f := newMsgFixture(t, nil)

	_, err := f.uc.Resolve(context.Background(), entity.CategoryPending, entity.ChannelChat, dto.ResolveMessageRequest{
		InvoiceID: "no-existe",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
