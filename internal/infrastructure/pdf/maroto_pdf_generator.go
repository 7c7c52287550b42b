// Package pdf genera el reporte impreso de transacciones.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del negocio  │  Título + fecha de emisión    │
//	│  FILTROS: tipo / rango de fechas / contraparte               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Tipo | Contraparte | Productos | Total       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: ventas / compras                                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

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

	"github.com/jhoicas/bookkeeping-api/internal/application/dto"
	"github.com/jhoicas/bookkeeping-api/internal/application/report"
	"github.com/jhoicas/bookkeeping-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ report.TransactionsPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa report.TransactionsPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	now func() time.Time
}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{now: time.Now} }

// GenerateTransactionsPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateTransactionsPDF(
	_ context.Context,
	header report.TransactionsPDFHeader,
	rows []dto.TransactionResponse,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Transactions report", true).
		WithAuthor(nonEmpty(header.BusinessName, "bookkeeping-api"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(header, g.now()))
	m.AddRows(filtersRow(header.Query))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	if len(rows) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("No transactions for the selected filters.", props.Text{
				Size: 8, Align: align.Center, Color: colorGray, Top: 2,
			}),
		)))
	}
	m.AddRows(tableDetailRows(rows)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(rows))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(header report.TransactionsPDFHeader, now time.Time) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(nonEmpty(header.BusinessName, "—"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("TRANSACTIONS REPORT", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Generated: "+now.Format("2006-01-02 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func filtersRow(q dto.TransactionQuery) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Type: %s   |   From: %s   |   To: %s   |   Customer: %s   |   Vendor: %s",
			nonEmpty(q.Type, "all"),
			nonEmpty(q.StartDate, "—"),
			nonEmpty(q.EndDate, "—"),
			nonEmpty(q.CustomerID, "—"),
			nonEmpty(q.VendorID, "—"),
		), props.Text{Size: 7, Top: 2, Color: colorGray}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Date", 2, align.Left),
		h("Type", 1, align.Center),
		h("Counterparty", 3, align.Left),
		h("Products", 4, align.Left),
		h("Total", 2, align.Right),
	)
}

func tableDetailRows(rows []dto.TransactionResponse) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for _, t := range rows {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(t.Date.Format("2006-01-02"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(t.Type, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New(counterparty(t), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(productsSummary(t.Products), props.Text{Size: 7, Top: 1, Left: 1})),
			col.New(2).Add(text.New("$"+formatMoney(t.TotalAmount), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func totalsRow(rows []dto.TransactionResponse) core.Row {
	sales, purchases := decimal.Zero, decimal.Zero
	for _, t := range rows {
		if t.Type == string(entity.TransactionTypeSale) {
			sales = sales.Add(t.TotalAmount)
		} else {
			purchases = purchases.Add(t.TotalAmount)
		}
	}
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(14).Add(
		col.New(6),
		col.New(3).Add(label("Sales:"), label("Purchases:")),
		col.New(3).Add(value("$"+formatMoney(sales)), value("$"+formatMoney(purchases))),
	)
}

func counterparty(t dto.TransactionResponse) string {
	switch {
	case t.CustomerName != "":
		return t.CustomerName
	case t.VendorName != "":
		return t.VendorName
	case t.CustomerID != "":
		return t.CustomerID
	case t.VendorID != "":
		return t.VendorID
	}
	return "—"
}

func productsSummary(lines []dto.TransactionLineResponse) string {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		parts = append(parts, fmt.Sprintf("%dx %s", l.Quantity, nonEmpty(l.ProductName, l.ProductID)))
	}
	return strings.Join(parts, ", ")
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney inserta separadores de miles en la parte entera y deja dos decimales.
// Ej: 25000 → "25,000.00", 1234567.5 → "1,234,567.50"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return sign + string(buf) + frac
}
