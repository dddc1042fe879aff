package dto

import "github.com/shopspring/decimal"

// LineItemRequest línea de factura en requests.
type LineItemRequest struct {
	Category    string          `json:"category"`
	Description string          `json:"description" validate:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// CreateInvoiceRequest body para POST /api/invoices.
// Status permite crear directamente en draft o pending (elección del caller).
// Los datos del cliente y del negocio se congelan como snapshot en la factura.
type CreateInvoiceRequest struct {
	Status string `json:"status" validate:"omitempty,oneof=draft pending"`

	ClientName    string `json:"client_name" validate:"required"`
	ClientEmail   string `json:"client_email" validate:"omitempty,email"`
	ClientPhone   string `json:"client_phone"`
	ClientAddress string `json:"client_address"`

	BusinessName    string `json:"business_name" validate:"required"`
	BusinessAddress string `json:"business_address"`
	BusinessContact string `json:"business_contact"`
	BusinessLogoURL string `json:"business_logo_url" validate:"omitempty,url"`

	IssueDate string `json:"issue_date" validate:"required"` // YYYY-MM-DD
	DueDate   string `json:"due_date"`                       // YYYY-MM-DD, opcional

	TaxPercent decimal.Decimal  `json:"tax_percent"`
	Deposit    decimal.Decimal  `json:"deposit"`
	Items      []LineItemRequest `json:"items" validate:"dive"`
}

// UpdateInvoiceRequest body para PUT /api/invoices/:id. No permite cambiar
// estado ni consecutivo; las transiciones tienen endpoints propios.
type UpdateInvoiceRequest struct {
	ClientName    string `json:"client_name" validate:"required"`
	ClientEmail   string `json:"client_email" validate:"omitempty,email"`
	ClientPhone   string `json:"client_phone"`
	ClientAddress string `json:"client_address"`

	IssueDate string `json:"issue_date" validate:"required"`
	DueDate   string `json:"due_date"`

	TaxPercent decimal.Decimal  `json:"tax_percent"`
	Deposit    decimal.Decimal  `json:"deposit"`
	Items      []LineItemRequest `json:"items" validate:"dive"`
}

// CompletePaymentRequest body para POST /api/invoices/:id/payment.
type CompletePaymentRequest struct {
	PaymentMethodID string `json:"payment_method_id" validate:"required"`
}

// LineItemResponse línea en respuestas; line_total siempre recalculado de
// unit_price × quantity.
type LineItemResponse struct {
	ID          string          `json:"id"`
	Category    string          `json:"category,omitempty"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    decimal.Decimal `json:"quantity"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// InvoiceResponse factura en respuestas. DerivedCategory es la categoría
// transitoria (due-soon / overdue) recalculada en cada lectura, nunca
// persistida.
type InvoiceResponse struct {
	ID              string `json:"id"`
	Number          int64  `json:"number"`
	NumberFormatted string `json:"number_formatted"`
	Status          string `json:"status"`
	DerivedCategory string `json:"derived_category,omitempty"`

	ClientName    string `json:"client_name"`
	ClientEmail   string `json:"client_email,omitempty"`
	ClientPhone   string `json:"client_phone,omitempty"`
	ClientAddress string `json:"client_address,omitempty"`

	BusinessName    string `json:"business_name"`
	BusinessAddress string `json:"business_address,omitempty"`
	BusinessContact string `json:"business_contact,omitempty"`
	BusinessLogoURL string `json:"business_logo_url,omitempty"`

	IssueDate string `json:"issue_date"`
	DueDate   string `json:"due_date,omitempty"`

	TaxPercent decimal.Decimal `json:"tax_percent"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	TaxAmount  decimal.Decimal `json:"tax_amount"`
	Total      decimal.Decimal `json:"total"`
	Deposit    decimal.Decimal `json:"deposit"`
	Balance    decimal.Decimal `json:"balance"`

	PaymentMethodID string `json:"payment_method_id,omitempty"`
	PaidAt          string `json:"paid_at,omitempty"`
	Deleted         bool   `json:"deleted,omitempty"`

	Items []LineItemResponse `json:"items"`
}

// PaymentMethodRequest body para crear/editar métodos de pago.
type PaymentMethodRequest struct {
	Name         string `json:"name" validate:"required"`
	Link         string `json:"link" validate:"omitempty,url"`
	Instructions string `json:"instructions"`
	Active       *bool  `json:"active"` // nil = true al crear
	DisplayOrder int    `json:"display_order" validate:"min=0"`
}

// PaymentMethodResponse método de pago en respuestas.
type PaymentMethodResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Link         string `json:"link,omitempty"`
	Instructions string `json:"instructions,omitempty"`
	Active       bool   `json:"active"`
	DisplayOrder int    `json:"display_order"`
}
