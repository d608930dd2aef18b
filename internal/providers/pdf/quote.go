package pdf

import (
	"bytes"
	"context"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

type PDFProvider struct{}

func New() Provider {
	return &PDFProvider{}
}

func (p *PDFProvider) GenerateQuote(ctx context.Context, doc QuoteDocument) (io.Reader, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(12, doc.ShopName, props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)
	m.AddRow(8,
		text.NewCol(12, "Presupuesto", props.Text{Size: 12}),
	)

	m.AddRow(20,
		col.New(6).Add(
			text.New("Referencia: "+doc.QuoteRef, props.Text{Top: 0}),
			text.New("Fecha: "+doc.IssueDate, props.Text{Top: 4}),
		),
		col.New(6).Add(
			text.New("Línea: "+doc.LineName, props.Text{Top: 0}),
			text.New("Código: "+doc.TemplateCode, props.Text{Top: 4}),
			text.New("Tipo: "+doc.ProductClass, props.Text{Top: 8}),
		),
	)

	if doc.AreaM2 != "" {
		m.AddRow(12,
			col.New(12).Add(
				text.New("Superficie: "+doc.AreaM2+" m²", props.Text{Top: 0}),
				text.New("Perímetro: "+doc.PerimeterM+" m", props.Text{Top: 4}),
			),
		)
	}

	m.AddRow(10,
		text.NewCol(5, "Concepto", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(4, "Detalle", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(3, "Importe", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, line := range doc.Lines {
		m.AddRow(8,
			text.NewCol(5, line.Concept, props.Text{Size: 9}),
			text.NewCol(4, line.Detail, props.Text{Size: 9}),
			text.NewCol(3, line.Amount, props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRow(10,
		col.New(7),
		text.NewCol(2, "Neto", props.Text{Size: 9}),
		text.NewCol(3, doc.Net+" "+doc.Currency, props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(10,
		col.New(7),
		text.NewCol(2, "IVA "+doc.TaxPercent+"%", props.Text{Size: 9}),
		text.NewCol(3, doc.Tax+" "+doc.Currency, props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(10,
		col.New(7),
		text.NewCol(2, "Total", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(3, doc.Gross+" "+doc.Currency, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	result, err := m.Generate()
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(result.GetBytes()), nil
}
