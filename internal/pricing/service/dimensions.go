package service

import (
	"github.com/shopspring/decimal"
	catalogdomain "github.com/tallersur/aberturas/internal/catalog/domain"
	pricingdomain "github.com/tallersur/aberturas/internal/pricing/domain"
)

var mmPerMeter = decimal.NewFromInt(1000)

// DeriveCalc converts millimetre dimensions into the geometry the engine
// prices with. Area and perimeter are rounded half-up to 4 decimal places.
func DeriveCalc(dims pricingdomain.Dimensions) pricingdomain.Calc {
	width := decimal.NewFromInt(int64(dims.WidthMM)).Div(mmPerMeter)
	height := decimal.NewFromInt(int64(dims.HeightMM)).Div(mmPerMeter)

	area := width.Mul(height).Round(4)
	perimeter := decimal.NewFromInt(2).Mul(width.Add(height)).Round(4)

	return pricingdomain.Calc{AreaM2: &area, PerimeterM: &perimeter}
}

// resolveDimensions picks the dimensions a quote is priced against. A value
// inside the selections wins over the request-level override; the override
// only fills in what the selection left out.
func resolveDimensions(tpl *catalogdomain.ProductTemplate, sel pricingdomain.Selections, widthMM, heightMM *int) (pricingdomain.Dimensions, bool) {
	var dims pricingdomain.Dimensions

	if attr, ok := tpl.DimensionAttribute(); ok {
		if selected, ok := sel.Dimensions(attr.Code); ok {
			dims = selected
		}
	}

	if dims.WidthMM <= 0 && widthMM != nil {
		dims.WidthMM = *widthMM
	}
	if dims.HeightMM <= 0 && heightMM != nil {
		dims.HeightMM = *heightMM
	}

	return dims, dims.WidthMM > 0 && dims.HeightMM > 0
}
