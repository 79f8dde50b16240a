// Package pdf genera la versión imprimible del cierre diario de caja de una
// franquicia (los dueños lo pegan en el libro de caja).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Franquicia + Fecha  │  Ventas del día + Anuladas   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Vendedor | N° Ventas | Total                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL DEL DÍA                                              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

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

	"github.com/jhoicas/posjarabe-admin/internal/application/dto"
	"github.com/jhoicas/posjarabe-admin/pkg/money"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// DailyCloseGenerator genera el PDF del cierre diario usando Maroto v2.
type DailyCloseGenerator struct{}

// NewDailyCloseGenerator construye el generador.
func NewDailyCloseGenerator() *DailyCloseGenerator { return &DailyCloseGenerator{} }

// Generate genera el PDF del cierre y devuelve sus bytes.
func (g *DailyCloseGenerator) Generate(report *dto.DailyCloseReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Cierre diario "+report.FranchiseName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, seller := range report.BySeller {
		m.AddRows(sellerRow(seller))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(report))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar cierre diario: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: franquicia + fecha (izq) y conteos del día (der).
func headerRow(report *dto.DailyCloseReport) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(report.FranchiseName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Cierre diario · "+report.Date, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(fmt.Sprintf("Ventas: %d", report.SalesCount), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 3,
			}),
			text.New(fmt.Sprintf("Anuladas: %d", report.CancelledCount), props.Text{
				Size: 9, Align: align.Right, Top: 10, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	return row.New(8).Add(
		col.New(6).Add(text.New("Vendedor", props.Text{Style: fontstyle.Bold, Top: 2})),
		col.New(3).Add(text.New("N° Ventas", props.Text{Style: fontstyle.Bold, Align: align.Right, Top: 2})),
		col.New(3).Add(text.New("Total", props.Text{Style: fontstyle.Bold, Align: align.Right, Top: 2})),
	)
}

func sellerRow(seller dto.SellerClose) core.Row {
	return row.New(6).Add(
		col.New(6).Add(text.New(seller.SellerName, props.Text{Top: 1})),
		col.New(3).Add(text.New(fmt.Sprintf("%d", seller.SalesCount), props.Text{Align: align.Right, Top: 1})),
		col.New(3).Add(text.New(money.FormatCOP(seller.Total), props.Text{Align: align.Right, Top: 1})),
	)
}

func totalRow(report *dto.DailyCloseReport) core.Row {
	return row.New(10).Add(
		col.New(9).Add(text.New("TOTAL DEL DÍA", props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 2, Color: colorPrimary,
		})),
		col.New(3).Add(text.New(money.FormatCOP(report.Total), props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 2, Color: colorPrimary,
		})),
	)
}
