// Package pdf implementa el colaborador de documentos: cuando el core señala
// que el documento de una factura quedó obsoleto (pago completado o
// revertido), aquí se regenera; en el borrado definitivo, se descarta.
package pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	appbilling "github.com/jhoicas/Facturacion-api/internal/application/billing"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ appbilling.DocumentRenderer = (*MarotoInvoiceRenderer)(nil)

// MarotoInvoiceRenderer implementa billing.DocumentRenderer usando Maroto v2.
// Guarda el documento renderizado como <outDir>/<invoiceID>.pdf.
type MarotoInvoiceRenderer struct {
	outDir string
}

// NewMarotoInvoiceRenderer construye el renderer. Crea el directorio de
// salida si no existe.
func NewMarotoInvoiceRenderer(outDir string) (*MarotoInvoiceRenderer, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de documentos: %w", err)
	}
	return &MarotoInvoiceRenderer{outDir: outDir}, nil
}

// Render regenera el documento de la factura y lo persiste.
func (g *MarotoInvoiceRenderer) Render(_ context.Context, invoice *entity.Invoice) error {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Invoice "+invoice.DisplayNumber(), true).
		WithAuthor(invoice.BusinessName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(invoice))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRow(invoice))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range itemRows(invoice.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	for _, r := range totalsRows(invoice) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return fmt.Errorf("generar documento: %w", err)
	}
	if err := os.WriteFile(g.path(invoice.ID), doc.GetBytes(), 0o644); err != nil {
		return fmt.Errorf("guardar documento: %w", err)
	}
	return nil
}

// Discard elimina el documento renderizado (borrado definitivo de la factura).
func (g *MarotoInvoiceRenderer) Discard(_ context.Context, invoiceID string) error {
	if err := os.Remove(g.path(invoiceID)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("descartar documento: %w", err)
	}
	return nil
}

func (g *MarotoInvoiceRenderer) path(invoiceID string) string {
	return filepath.Join(g.outDir, invoiceID+".pdf")
}

func headerRow(inv *entity.Invoice) core.Row {
	return row.New(14).Add(
		col.New(7).Add(
			text.New(inv.BusinessName, props.Text{Size: 14, Style: fontstyle.Bold, Color: colorPrimary}),
			text.New(inv.BusinessAddress, props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(inv.DisplayNumber(), props.Text{Size: 12, Style: fontstyle.Bold, Align: align.Right}),
			text.New("Issued: "+inv.IssueDate.Format("2006-01-02"), props.Text{Size: 8, Top: 6, Align: align.Right, Color: colorGray}),
			text.New(dueLine(inv), props.Text{Size: 8, Top: 10, Align: align.Right, Color: colorGray}),
		),
	)
}

func dueLine(inv *entity.Invoice) string {
	if inv.DueDate == nil {
		return ""
	}
	return "Due: " + inv.DueDate.Format("2006-01-02")
}

func partiesRow(inv *entity.Invoice) core.Row {
	return row.New(16).Add(
		col.New(6).Add(
			text.New("Bill to", props.Text{Size: 8, Style: fontstyle.Bold, Color: colorPrimary}),
			text.New(inv.ClientName, props.Text{Size: 9, Top: 4}),
			text.New(inv.ClientEmail, props.Text{Size: 8, Top: 8, Color: colorGray}),
			text.New(inv.ClientAddress, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
		col.New(6).Add(
			text.New("From", props.Text{Size: 8, Style: fontstyle.Bold, Color: colorPrimary}),
			text.New(inv.BusinessName, props.Text{Size: 9, Top: 4}),
			text.New(inv.BusinessContact, props.Text{Size: 8, Top: 8, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	bold := props.Text{Size: 8, Style: fontstyle.Bold}
	boldRight := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right}
	return row.New(6).Add(
		text.NewCol(6, "Description", bold),
		text.NewCol(2, "Unit price", boldRight),
		text.NewCol(2, "Qty", boldRight),
		text.NewCol(2, "Amount", boldRight),
	)
}

func itemRows(items []entity.LineItem) []core.Row {
	normal := props.Text{Size: 8}
	right := props.Text{Size: 8, Align: align.Right}
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, row.New(5).Add(
			text.NewCol(6, it.Description, normal),
			text.NewCol(2, money(it.UnitPrice), right),
			text.NewCol(2, it.Quantity.String(), right),
			text.NewCol(2, money(it.LineTotal()), right),
		))
	}
	return rows
}

func totalsRows(inv *entity.Invoice) []core.Row {
	label := props.Text{Size: 8, Align: align.Right, Color: colorGray}
	value := props.Text{Size: 8, Align: align.Right}
	totalLabel := props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right, Color: colorPrimary}
	totalValue := props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}

	rows := []core.Row{
		row.New(5).Add(col.New(8), text.NewCol(2, "Subtotal", label), text.NewCol(2, money(inv.Subtotal), value)),
		row.New(5).Add(col.New(8), text.NewCol(2, fmt.Sprintf("Tax (%s%%)", inv.TaxPercent.String()), label), text.NewCol(2, money(inv.TaxAmount), value)),
		row.New(5).Add(col.New(8), text.NewCol(2, "Deposit", label), text.NewCol(2, money(inv.Deposit), value)),
		row.New(7).Add(col.New(8), text.NewCol(2, "Balance due", totalLabel), text.NewCol(2, money(inv.Balance), totalValue)),
	}
	if inv.Status == entity.StatusPaid {
		rows = append(rows, row.New(6).Add(
			col.New(8),
			text.NewCol(4, "PAID", props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Right, Color: colorPrimary}),
		))
	}
	return rows
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
