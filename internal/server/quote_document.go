package server

import (
	"time"

	catalogdomain "github.com/tallersur/aberturas/internal/catalog/domain"
	pricingdomain "github.com/tallersur/aberturas/internal/pricing/domain"
	"github.com/tallersur/aberturas/internal/providers/pdf"
)

// buildQuoteDocument flattens a quote into the formatted rows the PDF
// renderer expects.
func buildQuoteDocument(shopName string, quote *pricingdomain.Quote, tpl *catalogdomain.ProductTemplate, issuedAt time.Time) pdf.QuoteDocument {
	doc := pdf.QuoteDocument{
		ShopName:     shopName,
		QuoteRef:     quote.QuoteRef,
		IssueDate:    issuedAt.Format("02/01/2006"),
		LineName:     quote.LineName,
		TemplateCode: quote.TemplateCode,
		ProductClass: string(tpl.ProductClass),
		Currency:     quote.Currency,
		TaxPercent:   quote.TaxPercent.String(),
		Net:          quote.Totals.Net.StringFixed(2),
		Tax:          quote.Totals.Tax.StringFixed(2),
		Gross:        quote.Totals.Gross.StringFixed(2),
	}

	if quote.Calc.AreaM2 != nil {
		doc.AreaM2 = quote.Calc.AreaM2.String()
	}
	if quote.Calc.PerimeterM != nil {
		doc.PerimeterM = quote.Calc.PerimeterM.String()
	}

	doc.Lines = make([]pdf.QuoteLine, 0, len(quote.Breakdown))
	for _, entry := range quote.Breakdown {
		doc.Lines = append(doc.Lines, quoteLine(entry))
	}

	return doc
}

func quoteLine(entry pricingdomain.BreakdownEntry) pdf.QuoteLine {
	line := pdf.QuoteLine{Concept: entry.Source}

	switch entry.Mode {
	case catalogdomain.PricingModePerM2:
		if entry.Unit != nil && entry.AreaM2 != nil {
			line.Detail = entry.Unit.StringFixed(2) + " × " + entry.AreaM2.String() + " m²"
		}
	case catalogdomain.PricingModePerimeter:
		if entry.Unit != nil && entry.PerimeterM != nil {
			line.Detail = entry.Unit.StringFixed(2) + " × " + entry.PerimeterM.String() + " m"
		}
	case catalogdomain.PricingModePerUnit:
		if entry.Unit != nil && entry.Qty != nil {
			line.Detail = entry.Unit.StringFixed(2) + " × " + entry.Qty.String()
		}
	case catalogdomain.PricingModeFactor:
		if entry.Factor != nil && entry.AppliedOn != nil {
			line.Detail = "× " + entry.Factor.String() + " sobre " + entry.AppliedOn.StringFixed(2)
		}
	}

	switch {
	case entry.Value != nil:
		line.Amount = entry.Value.StringFixed(2)
	case entry.Delta != nil:
		line.Amount = entry.Delta.StringFixed(2)
	}

	return line
}
