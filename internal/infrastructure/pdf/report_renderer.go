// Package pdf genera la versión imprimible de los reportes del panel de administración.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del reporte   │  Periodo + fecha de emisión │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: columnas del reporte                                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: registros / usuarios / productos / totales        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"sort"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/emart-api/internal/application/report"
)

var _ report.Renderer = (*ReportRenderer)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
)

// gridSize columnas de la grilla de maroto.
const gridSize = 12

// ── Renderer ──────────────────────────────────────────────────────────────────

// ReportRenderer implementa report.Renderer usando Maroto v2.
type ReportRenderer struct {
	author  string
	printer *message.Printer
}

// NewReportRenderer construye el renderer. author aparece en los metadatos del PDF.
func NewReportRenderer(author string) *ReportRenderer {
	return &ReportRenderer{author: author, printer: message.NewPrinter(language.Spanish)}
}

// Render genera el PDF y devuelve sus bytes.
func (g *ReportRenderer) Render(_ context.Context, r *report.Report) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(r.Metadata.Title, true).
		WithAuthor(g.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	widths := columnWidths(len(r.Columns))
	m.AddRows(tableHeaderRow(r.Columns, widths))
	m.AddRows(tableRows(r.Rows, widths)...)
	if len(r.Rows) == 0 {
		m.AddRows(row.New(8).Add(col.New(gridSize).Add(
			text.New("Sin registros en el periodo.", props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 2}),
		)))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.summaryRows(r.Summary)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(r *report.Report) core.Row {
	md := r.Metadata
	return row.New(16).Add(
		col.New(7).Add(
			text.New(md.Title, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
		),
		col.New(5).Add(
			text.New(fmt.Sprintf("Periodo: %s a %s", md.StartDate.Format("02/01/2006"), md.EndDate.Format("02/01/2006")),
				props.Text{Size: 9, Align: align.Right, Top: 1}),
			text.New("Generado: "+md.GeneratedAt.Format("02/01/2006 15:04"),
				props.Text{Size: 8, Align: align.Right, Top: 7, Color: colorGray}),
		),
	)
}

func tableHeaderRow(columns []string, widths []int) core.Row {
	cols := make([]core.Col, 0, len(columns))
	for i, c := range columns {
		cols = append(cols, col.New(widths[i]).Add(text.New(c, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2, Left: 1,
		})))
	}
	return row.New(8).Add(cols...)
}

func tableRows(rows [][]string, widths []int) []core.Row {
	out := make([]core.Row, 0, len(rows))
	for n, cells := range rows {
		cols := make([]core.Col, 0, len(cells))
		for i, cell := range cells {
			if i >= len(widths) {
				break
			}
			cols = append(cols, col.New(widths[i]).Add(text.New(cell, props.Text{Size: 7.5, Top: 1, Left: 1})))
		}
		r := row.New(6).Add(cols...)
		if n%2 == 1 {
			r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		out = append(out, r)
	}
	return out
}

func (g *ReportRenderer) summaryRows(s report.Summary) []core.Row {
	lines := []string{
		g.printer.Sprintf("Registros: %d", s.TotalRecords),
		g.printer.Sprintf("Usuarios únicos: %d", s.UniqueUsers),
	}
	if s.UniqueProducts > 0 {
		lines = append(lines, g.printer.Sprintf("Productos únicos: %d", s.UniqueProducts))
	}
	if s.TotalQuantity > 0 {
		lines = append(lines, g.printer.Sprintf("Unidades: %d", s.TotalQuantity))
	}
	if !s.TotalAmount.IsZero() {
		lines = append(lines, "Total vouchers: "+g.amount(s.TotalAmount))
	}
	lines = append(lines, g.breakdown("Por estado", s.ByStatus)...)
	lines = append(lines, g.breakdown("Por acción", s.ByAction)...)

	out := []core.Row{row.New(7).Add(col.New(gridSize).Add(
		text.New("RESUMEN", props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2}),
	))}
	for _, l := range lines {
		out = append(out, row.New(5).Add(col.New(gridSize).Add(text.New(l, props.Text{Size: 8, Top: 1}))))
	}
	return out
}

func (g *ReportRenderer) breakdown(label string, counts map[string]int) []string {
	if len(counts) == 0 {
		return nil
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, g.printer.Sprintf("%s %s: %d", label, k, counts[k]))
	}
	return out
}

// amount formatea con separadores de miles en español: 1234567.5 → 1.234.567,50
func (g *ReportRenderer) amount(d decimal.Decimal) string {
	return g.printer.Sprintf("%.2f", d.Round(2).InexactFloat64())
}

// ── helpers ───────────────────────────────────────────────────────────────────

// columnWidths reparte las 12 columnas de la grilla; el sobrante va a las primeras columnas de datos.
func columnWidths(n int) []int {
	if n <= 0 {
		return nil
	}
	if n > gridSize {
		n = gridSize
	}
	widths := make([]int, n)
	base, extra := gridSize/n, gridSize%n
	for i := range widths {
		widths[i] = base
	}
	for i := 1; extra > 0; i = (i % (n - 1)) + 1 {
		widths[i]++
		extra--
	}
	return widths
}
