// Package pdf genera la hoja de costeo de una orden de compra (costo aterrizado por línea).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: HOJA DE COSTEO       │  N° Orden + Fecha            │
//	│  ORDEN: Proveedor / Etapa / Tasa / Modalidad / Guía          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Ped | Rec | Ing | Perd | Asignado | Unit  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Productos / Fletes / Otros / Perdidos / TOTAL      │
//	│  HISTORIAL: etapa, usuario, fecha                            │
//	│  FOOTER: QR con el ID de la orden                            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/Importaciones-api/internal/application/procurement"
	"github.com/jhoicas/Importaciones-api/internal/domain/entity"
)

var _ procurement.CostingPDFGenerator = (*CostingPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWarn    = &props.Color{Red: 170, Green: 90, Blue: 0}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// CostingPDFGenerator implementa procurement.CostingPDFGenerator usando Maroto v2.
type CostingPDFGenerator struct {
	printer *message.Printer
}

// NewCostingPDFGenerator construye el generador (montos con separadores de miles en español).
func NewCostingPDFGenerator() *CostingPDFGenerator {
	return &CostingPDFGenerator{printer: message.NewPrinter(language.Spanish)}
}

// Generate genera el PDF y devuelve sus bytes.
func (g *CostingPDFGenerator) Generate(doc procurement.CostingDocument) ([]byte, error) {
	if doc.Order == nil {
		return nil, fmt.Errorf("pdf: orden vacía")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Hoja de costeo "+orderLabel(doc.Order), true).
		WithAuthor(doc.GeneratedBy, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.orderRow(doc.Order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(g.itemRows(doc.Order.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(doc))
	if doc.Breakdown.ZeroWeightFallback() {
		m.AddRows(row.New(6).Add(col.New(12).Add(
			text.New(fmt.Sprintf("Sin pesos registrados: costos prorrateados por %s.", basisLabel(doc.Breakdown.Basis)),
				props.Text{Size: 8, Color: colorWarn, Top: 1}),
		)))
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(historyRows(doc.Events)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(doc))

	pdfDoc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return pdfDoc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *CostingPDFGenerator) headerRow(doc procurement.CostingDocument) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("HOJA DE COSTEO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Costo aterrizado por unidad", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ORDEN DE COMPRA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(orderLabel(doc.Order), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Generado: "+doc.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func (g *CostingPDFGenerator) orderRow(o *entity.PurchaseOrder) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("DATOS DE LA ORDEN", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Proveedor: %s   |   Etapa: %s   |   Tasa: %s",
				o.SupplierID, o.Status, o.ExchangeRate.String(),
			), props.Text{Size: 8, Top: 6, Color: colorGray}),
			text.New(fmt.Sprintf("Modalidad: %s   |   Guía: %s   |   Peso total: %s g",
				nonEmpty(string(o.ShippingMethod), "-"),
				nonEmpty(o.TrackingNumber, "-"),
				g.amount(o.TotalWeight),
			), props.Text{Size: 8, Top: 11, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Producto", 3, align.Left),
		h("Ped.", 1, align.Center),
		h("Rec.", 1, align.Center),
		h("Ing.", 1, align.Center),
		h("Perd.", 1, align.Center),
		h("Costo asignado", 2, align.Right),
		h("Costo unitario", 3, align.Right),
	)
}

func (g *CostingPDFGenerator) itemRows(items []entity.PurchaseOrderItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	for _, it := range items {
		received := "-"
		if it.ReceivedKnown {
			received = fmt.Sprint(it.ReceivedQty)
		}
		result = append(result, row.New(7).Add(
			cell(it.ProductID, 3, align.Left),
			cell(fmt.Sprint(it.OrderedQty), 1, align.Center),
			cell(received, 1, align.Center),
			cell(fmt.Sprint(it.StockedQty), 1, align.Center),
			cell(fmt.Sprint(it.LostQty), 1, align.Center),
			cell("$"+g.amount(it.AllocatedCost), 2, align.Right),
			cell("$"+g.unitAmount(it.FinalUnitCost), 3, align.Right),
		))
	}
	return result
}

func (g *CostingPDFGenerator) totalsRow(doc procurement.CostingDocument) core.Row {
	b := doc.Breakdown
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	return row.New(32).Add(
		col.New(4),
		col.New(4).Add(
			label("Productos:", 0),
			label("Fletes:", 5),
			label("Otros costos:", 10),
			label("Perdidos:", 15),
			text.New("COSTO ATERRIZADO:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 21,
			}),
		),
		col.New(4).Add(
			value("$"+g.amount(b.ProductCostLocal), 0),
			value("$"+g.amount(b.TotalShipping), 5),
			value("$"+g.amount(b.OtherCosts), 10),
			value("-$"+g.amount(b.LostItemTotalValue), 15),
			text.New("$"+g.amount(b.TotalLandedCost), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 21,
			}),
		),
	)
}

func historyRows(events []entity.StatusEvent) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("HISTORIAL DE ETAPAS", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		)),
	}
	for _, e := range events {
		from := nonEmpty(string(e.From), "creación")
		rows = append(rows, row.New(5).Add(
			col.New(6).Add(text.New(from+" -> "+string(e.To), props.Text{Size: 7.5, Top: 0.5, Left: 2})),
			col.New(3).Add(text.New(e.Actor, props.Text{Size: 7.5, Top: 0.5, Color: colorGray})),
			col.New(3).Add(text.New(e.At.Format("02/01/2006 15:04"), props.Text{Size: 7.5, Top: 0.5, Align: align.Right, Color: colorGray})),
		))
	}
	return rows
}

func footerRow(doc procurement.CostingDocument) core.Row {
	return row.New(30).Add(
		col.New(3).Add(code.NewQr(doc.Order.ID, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("Los costos unitarios se muestran con 4 decimales; los totales con 2.", props.Text{
				Size: 7, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New("Los lotes de inventario conservan el costo vigente al momento del ingreso.", props.Text{
				Size: 7, Top: 9, Left: 3, Color: colorGray,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (g *CostingPDFGenerator) amount(d decimal.Decimal) string {
	return g.printer.Sprintf("%.2f", d.Round(2).InexactFloat64())
}

func (g *CostingPDFGenerator) unitAmount(d decimal.Decimal) string {
	return g.printer.Sprintf("%.4f", d.Round(4).InexactFloat64())
}

func orderLabel(o *entity.PurchaseOrder) string {
	return nonEmpty(o.OrderNumber, "BORRADOR "+o.ID)
}

func basisLabel(b entity.AllocationBasis) string {
	if b == entity.AllocationByQuantity {
		return "cantidad"
	}
	return "valor"
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
