package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	domainbilling "github.com/jhoicas/Facturacion-api/internal/domain/billing"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
	"github.com/jhoicas/Facturacion-api/pkg/logger"
)

const dateLayout = "2006-01-02"

// InvoiceUseCase orquesta el ciclo de vida de las facturas: creación,
// edición, transiciones de pago y borrado. Las reglas puras viven en
// domain/billing; aquí solo se coordinan repos, reloj y renderer.
type InvoiceUseCase struct {
	txRunner    InvoiceTxRunner
	invoiceRepo repository.InvoiceRepository
	methodRepo  repository.PaymentMethodRepository
	renderer    DocumentRenderer
	clock       Clock
	log         *logger.Logger
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	txRunner InvoiceTxRunner,
	invoiceRepo repository.InvoiceRepository,
	methodRepo repository.PaymentMethodRepository,
	renderer DocumentRenderer,
	clock Clock,
	log *logger.Logger,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		txRunner:    txRunner,
		invoiceRepo: invoiceRepo,
		methodRepo:  methodRepo,
		renderer:    renderer,
		clock:       clock,
		log:         log,
	}
}

// Create crea una factura en draft o pending (elección del caller) con el
// snapshot de cliente y negocio congelado. El consecutivo se reserva dentro
// de la misma transacción que inserta la factura.
func (uc *InvoiceUseCase) Create(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	status := entity.Status(in.Status)
	if in.Status == "" {
		status = entity.StatusDraft
	}
	if status != entity.StatusDraft && status != entity.StatusPending {
		return nil, domain.ErrInvalidInput
	}

	issueDate, err := time.Parse(dateLayout, in.IssueDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	var dueDate *time.Time
	if in.DueDate != "" {
		d, err := time.Parse(dateLayout, in.DueDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		dueDate = &d
	}

	items := itemsFromRequest(in.Items)
	totals, err := domainbilling.CalculateTotals(items, in.TaxPercent, in.Deposit)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	inv := &entity.Invoice{
		ID:     uuid.New().String(),
		Status: status,

		ClientName:    in.ClientName,
		ClientEmail:   in.ClientEmail,
		ClientPhone:   in.ClientPhone,
		ClientAddress: in.ClientAddress,

		BusinessName:    in.BusinessName,
		BusinessAddress: in.BusinessAddress,
		BusinessContact: in.BusinessContact,
		BusinessLogoURL: in.BusinessLogoURL,

		Items:      items,
		TaxPercent: in.TaxPercent,
		Subtotal:   totals.Subtotal,
		TaxAmount:  totals.TaxAmount,
		Total:      totals.Total,
		Deposit:    in.Deposit,
		Balance:    totals.Balance,

		IssueDate: issueDate,
		DueDate:   dueDate,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for i := range inv.Items {
		inv.Items[i].ID = uuid.New().String()
		inv.Items[i].InvoiceID = inv.ID
		inv.Items[i].Position = i
	}

	err = uc.txRunner.RunInvoice(ctx, func(repo repository.InvoiceRepository) error {
		number, err := repo.NextNumber()
		if err != nil {
			return err
		}
		inv.Number = number
		inv.NumberFormatted = entity.FormatNumber(number)
		return repo.Create(inv)
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(inv), nil
}

// Get obtiene una factura con su categoría derivada recalculada.
func (uc *InvoiceUseCase) Get(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toResponse(inv), nil
}

// List lista facturas con filtro de estado y paginación.
func (uc *InvoiceUseCase) List(ctx context.Context, filter repository.InvoiceFilter) ([]*dto.InvoiceResponse, error) {
	invoices, err := uc.invoiceRepo.List(filter)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, uc.toResponse(inv))
	}
	return out, nil
}

// Update reemplaza líneas, impuesto, abono, fechas y snapshot del cliente.
// Falla con ErrInvoiceLocked sobre una factura pagada: el caller debe
// revertir el pago primero. No hay escrituras parciales: los totales se
// validan antes de tocar la persistencia.
func (uc *InvoiceUseCase) Update(ctx context.Context, id string, in dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	inv, err := uc.activeInvoice(id)
	if err != nil {
		return nil, err
	}
	if err := domainbilling.EnsureEditable(inv); err != nil {
		return nil, err
	}

	issueDate, err := time.Parse(dateLayout, in.IssueDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	var dueDate *time.Time
	if in.DueDate != "" {
		d, err := time.Parse(dateLayout, in.DueDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		dueDate = &d
	}

	items := itemsFromRequest(in.Items)
	totals, err := domainbilling.CalculateTotals(items, in.TaxPercent, in.Deposit)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].ID = uuid.New().String()
		items[i].InvoiceID = inv.ID
		items[i].Position = i
	}

	inv.ClientName = in.ClientName
	inv.ClientEmail = in.ClientEmail
	inv.ClientPhone = in.ClientPhone
	inv.ClientAddress = in.ClientAddress
	inv.IssueDate = issueDate
	inv.DueDate = dueDate
	inv.Items = items
	inv.TaxPercent = in.TaxPercent
	inv.Subtotal = totals.Subtotal
	inv.TaxAmount = totals.TaxAmount
	inv.Total = totals.Total
	inv.Deposit = in.Deposit
	inv.Balance = totals.Balance
	inv.UpdatedAt = uc.clock.Now()

	if err := uc.invoiceRepo.Update(inv); err != nil {
		return nil, err
	}
	return uc.toResponse(inv), nil
}

// Finalize pasa una factura de draft a pending.
func (uc *InvoiceUseCase) Finalize(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.activeInvoice(id)
	if err != nil {
		return nil, err
	}
	if err := domainbilling.Finalize(inv); err != nil {
		return nil, err
	}
	inv.UpdatedAt = uc.clock.Now()
	if err := uc.invoiceRepo.MarkFinalized(inv); err != nil {
		return nil, err
	}
	return uc.toResponse(inv), nil
}

// CompletePayment pasa una factura de pending a paid con un método de pago
// activo. La escritura es condicional sobre el estado actual: dos llamadas
// concurrentes sobre la misma factura no pueden ganar ambas.
func (uc *InvoiceUseCase) CompletePayment(ctx context.Context, id, paymentMethodID string) (*dto.InvoiceResponse, error) {
	inv, err := uc.activeInvoice(id)
	if err != nil {
		return nil, err
	}
	if paymentMethodID == "" {
		return nil, domain.ErrMissingPaymentMethod
	}
	method, err := uc.methodRepo.GetByID(paymentMethodID)
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, domain.ErrMissingPaymentMethod
	}
	if err := domainbilling.CompletePayment(inv, method, uc.clock.Now()); err != nil {
		return nil, err
	}
	inv.UpdatedAt = uc.clock.Now()
	if err := uc.invoiceRepo.MarkPaid(inv); err != nil {
		return nil, err
	}
	uc.signalStale(ctx, inv)
	return uc.toResponse(inv), nil
}

// RevertPayment pasa una factura de paid a pending, limpiando los metadatos
// de pago y restaurando el saldo al total.
func (uc *InvoiceUseCase) RevertPayment(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.activeInvoice(id)
	if err != nil {
		return nil, err
	}
	if err := domainbilling.RevertPayment(inv); err != nil {
		return nil, err
	}
	inv.UpdatedAt = uc.clock.Now()
	if err := uc.invoiceRepo.MarkPending(inv); err != nil {
		return nil, err
	}
	uc.signalStale(ctx, inv)
	return uc.toResponse(inv), nil
}

// SoftDelete manda la factura a la papelera; factura y documento generado se
// conservan recuperables, sin tocar campos financieros.
func (uc *InvoiceUseCase) SoftDelete(ctx context.Context, id string) error {
	inv, err := uc.activeInvoice(id)
	if err != nil {
		return err
	}
	return uc.invoiceRepo.SoftDelete(inv.ID, uc.clock.Now())
}

// Restore recupera una factura de la papelera.
func (uc *InvoiceUseCase) Restore(ctx context.Context, id string) error {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return err
	}
	if inv == nil {
		return domain.ErrNotFound
	}
	if !inv.IsDeleted() {
		return domain.ErrConflict
	}
	return uc.invoiceRepo.Restore(id)
}

// HardDelete destruye la factura y su documento de forma definitiva e
// irreversible. Punto de entrada deliberadamente separado de SoftDelete; la
// doble confirmación es responsabilidad de la UI.
func (uc *InvoiceUseCase) HardDelete(ctx context.Context, id string) error {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return err
	}
	if inv == nil {
		return domain.ErrNotFound
	}
	if err := uc.invoiceRepo.HardDelete(id); err != nil {
		return err
	}
	if err := uc.renderer.Discard(ctx, id); err != nil {
		uc.log.Warn().Err(err).Str("invoice_id", id).Msg("descartar documento renderizado")
	}
	return nil
}

// activeInvoice obtiene una factura que no esté en la papelera.
func (uc *InvoiceUseCase) activeInvoice(id string) (*entity.Invoice, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil || inv.IsDeleted() {
		return nil, domain.ErrNotFound
	}
	return inv, nil
}

// signalStale avisa al renderer que el documento quedó obsoleto. El contrato
// del core es solo la señal: un fallo se registra y no revierte la transición.
func (uc *InvoiceUseCase) signalStale(ctx context.Context, inv *entity.Invoice) {
	if err := uc.renderer.Render(ctx, inv); err != nil {
		uc.log.Warn().Err(err).Str("invoice_id", inv.ID).Msg("regenerar documento de factura")
	}
}

func itemsFromRequest(in []dto.LineItemRequest) []entity.LineItem {
	items := make([]entity.LineItem, 0, len(in))
	for _, it := range in {
		items = append(items, entity.LineItem{
			Category:    it.Category,
			Description: it.Description,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
		})
	}
	return items
}

func (uc *InvoiceUseCase) toResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:              inv.ID,
		Number:          inv.Number,
		NumberFormatted: inv.NumberFormatted,
		Status:          string(inv.Status),
		DerivedCategory: string(domainbilling.Classify(inv, uc.clock.Now())),

		ClientName:    inv.ClientName,
		ClientEmail:   inv.ClientEmail,
		ClientPhone:   inv.ClientPhone,
		ClientAddress: inv.ClientAddress,

		BusinessName:    inv.BusinessName,
		BusinessAddress: inv.BusinessAddress,
		BusinessContact: inv.BusinessContact,
		BusinessLogoURL: inv.BusinessLogoURL,

		IssueDate: inv.IssueDate.Format(dateLayout),

		TaxPercent: inv.TaxPercent,
		Subtotal:   inv.Subtotal,
		TaxAmount:  inv.TaxAmount,
		Total:      inv.Total,
		Deposit:    inv.Deposit,
		Balance:    inv.Balance,

		PaymentMethodID: inv.PaymentMethodID,
		Deleted:         inv.IsDeleted(),
		Items:           make([]dto.LineItemResponse, 0, len(inv.Items)),
	}
	if inv.DueDate != nil {
		resp.DueDate = inv.DueDate.Format(dateLayout)
	}
	if inv.PaidAt != nil {
		resp.PaidAt = inv.PaidAt.Format(time.RFC3339)
	}
	for _, it := range inv.Items {
		resp.Items = append(resp.Items, dto.LineItemResponse{
			ID:          it.ID,
			Category:    it.Category,
			Description: it.Description,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
			LineTotal:   it.LineTotal(),
		})
	}
	return resp
}
