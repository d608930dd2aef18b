package domain

import (
	"encoding/json"
	"strconv"

	"github.com/shopspring/decimal"
	catalogdomain "github.com/tallersur/aberturas/internal/catalog/domain"
)

// Selections maps attribute codes to the buyer's chosen values. Values arrive
// as decoded JSON: strings for SELECT, bools for BOOLEAN, numbers for
// NUMBER/QUANTITY and an object with width_mm/height_mm for DIMENSIONS_MM.
type Selections map[string]any

// Present reports whether the attribute has a non-null value.
func (s Selections) Present(code string) bool {
	v, ok := s[code]
	return ok && v != nil
}

// OptionCode returns the selected option code of a SELECT attribute.
func (s Selections) OptionCode(code string) (string, bool) {
	v, ok := s[code]
	if !ok || v == nil {
		return "", false
	}
	str, ok := v.(string)
	return str, ok
}

// Bool returns the value of a BOOLEAN attribute. Only a JSON boolean counts.
func (s Selections) Bool(code string) (bool, bool) {
	v, ok := s[code]
	if !ok || v == nil {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// Number returns the value of a NUMBER or QUANTITY attribute.
func (s Selections) Number(code string) (decimal.Decimal, bool) {
	v, ok := s[code]
	if !ok || v == nil {
		return decimal.Decimal{}, false
	}
	return coerceNumber(v)
}

// Dimensions returns the value of a DIMENSIONS_MM attribute.
func (s Selections) Dimensions(code string) (Dimensions, bool) {
	v, ok := s[code]
	if !ok || v == nil {
		return Dimensions{}, false
	}
	switch dims := v.(type) {
	case Dimensions:
		return dims, dims.WidthMM > 0 && dims.HeightMM > 0
	case map[string]any:
		width, wok := coerceInt(dims["width_mm"])
		height, hok := coerceInt(dims["height_mm"])
		if !wok || !hok || width <= 0 || height <= 0 {
			return Dimensions{}, false
		}
		return Dimensions{WidthMM: width, HeightMM: height}, true
	default:
		return Dimensions{}, false
	}
}

func coerceNumber(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, true
	case float64:
		return decimal.NewFromFloat(n), true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int64:
		return decimal.NewFromInt(n), true
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		return d, err == nil
	default:
		return decimal.Decimal{}, false
	}
}

func coerceInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	case json.Number:
		i, err := strconv.Atoi(n.String())
		return i, err == nil
	default:
		return 0, false
	}
}

// Dimensions is a width/height pair in millimetres.
type Dimensions struct {
	WidthMM  int `json:"width_mm"`
	HeightMM int `json:"height_mm"`
}

// Calc carries the derived geometry used by area and perimeter pricing.
// Both fields are nil when the quote needed no dimensions.
type Calc struct {
	AreaM2     *decimal.Decimal `json:"area_m2,omitempty"`
	PerimeterM *decimal.Decimal `json:"perimeter_m,omitempty"`
}

// BreakdownEntry documents one contribution to the net total. The populated
// detail fields depend on the pricing mode.
type BreakdownEntry struct {
	Source string                    `json:"source"`
	Mode   catalogdomain.PricingMode `json:"mode"`

	// Additive modes.
	Value      *decimal.Decimal `json:"value,omitempty"`
	AreaM2     *decimal.Decimal `json:"m2,omitempty"`
	PerimeterM *decimal.Decimal `json:"m,omitempty"`
	Unit       *decimal.Decimal `json:"unit,omitempty"`
	QtyAttr    string           `json:"qty_attr,omitempty"`
	Qty        *decimal.Decimal `json:"qty,omitempty"`

	// FACTOR mode.
	Factor    *decimal.Decimal `json:"factor,omitempty"`
	AppliedOn *decimal.Decimal `json:"applied_on,omitempty"`
	Delta     *decimal.Decimal `json:"delta,omitempty"`
}

// Totals is the priced result before and after tax.
type Totals struct {
	Net   decimal.Decimal `json:"net"`
	Tax   decimal.Decimal `json:"tax"`
	Gross decimal.Decimal `json:"gross"`
}

// Quote is a priced configuration of a template.
type Quote struct {
	QuoteRef     string           `json:"quote_ref"`
	TemplateID   string           `json:"template_id"`
	TemplateCode string           `json:"template_code"`
	LineName     string           `json:"line_name"`
	Currency     string           `json:"currency"`
	TaxPercent   decimal.Decimal  `json:"tax_percent"`
	Calc         Calc             `json:"calc"`
	Totals       Totals           `json:"price"`
	Breakdown    []BreakdownEntry `json:"breakdown"`
}
