package service

import (
	"fmt"

	"github.com/shopspring/decimal"
	catalogdomain "github.com/tallersur/aberturas/internal/catalog/domain"
	pricingdomain "github.com/tallersur/aberturas/internal/pricing/domain"
)

// ValidateSelections checks a selection map against the template definition
// and returns every problem found, in attribute display order. It never
// mutates its inputs and an empty result means the selections are quotable.
func ValidateSelections(tpl *catalogdomain.ProductTemplate, sel pricingdomain.Selections) []string {
	problems := make([]string, 0)

	for _, attr := range tpl.SortedAttributes() {
		if attr.IsRequired && !sel.Present(attr.Code) {
			problems = append(problems, fmt.Sprintf("attribute '%s' is required", attr.Name))
			continue
		}
		if !sel.Present(attr.Code) {
			continue
		}

		switch attr.Type {
		case catalogdomain.AttributeSelect:
			problems = append(problems, validateSelect(&attr, sel)...)
		case catalogdomain.AttributeBoolean:
			if _, ok := sel.Bool(attr.Code); !ok {
				problems = append(problems, fmt.Sprintf("attribute '%s' expects a boolean value", attr.Name))
			}
		case catalogdomain.AttributeDimensionsMM:
			problems = append(problems, validateDimensions(&attr, sel)...)
		case catalogdomain.AttributeNumber, catalogdomain.AttributeQuantity:
			problems = append(problems, validateNumber(&attr, sel)...)
		}
	}

	problems = append(problems, validateDimensionRequirement(tpl, sel)...)

	return problems
}

func validateSelect(attr *catalogdomain.TemplateAttribute, sel pricingdomain.Selections) []string {
	code, ok := sel.OptionCode(attr.Code)
	if !ok {
		return []string{fmt.Sprintf("invalid option for attribute '%s'", attr.Name)}
	}
	if _, ok := attr.OptionByCode(code); !ok {
		return []string{fmt.Sprintf("unknown option '%s' for attribute '%s'", code, attr.Name)}
	}
	return nil
}

func validateDimensions(attr *catalogdomain.TemplateAttribute, sel pricingdomain.Selections) []string {
	dims, ok := sel.Dimensions(attr.Code)
	if !ok {
		return []string{fmt.Sprintf("attribute '%s' expects width_mm and height_mm in millimetres", attr.Name)}
	}

	var problems []string
	if attr.MinWidthMM != nil && dims.WidthMM < *attr.MinWidthMM {
		problems = append(problems, fmt.Sprintf("width below minimum for '%s': %dmm", attr.Name, *attr.MinWidthMM))
	}
	if attr.MaxWidthMM != nil && dims.WidthMM > *attr.MaxWidthMM {
		problems = append(problems, fmt.Sprintf("width above maximum for '%s': %dmm", attr.Name, *attr.MaxWidthMM))
	}
	if attr.MinHeightMM != nil && dims.HeightMM < *attr.MinHeightMM {
		problems = append(problems, fmt.Sprintf("height below minimum for '%s': %dmm", attr.Name, *attr.MinHeightMM))
	}
	if attr.MaxHeightMM != nil && dims.HeightMM > *attr.MaxHeightMM {
		problems = append(problems, fmt.Sprintf("height above maximum for '%s': %dmm", attr.Name, *attr.MaxHeightMM))
	}
	return problems
}

func validateNumber(attr *catalogdomain.TemplateAttribute, sel pricingdomain.Selections) []string {
	value, ok := sel.Number(attr.Code)
	if !ok {
		return []string{fmt.Sprintf("attribute '%s' expects a numeric value", attr.Name)}
	}

	var problems []string
	if attr.Type == catalogdomain.AttributeQuantity && (value.IsNegative() || !value.Equal(value.Truncate(0))) {
		problems = append(problems, fmt.Sprintf("attribute '%s' expects a whole non-negative quantity", attr.Name))
	}
	if attr.MinValue != nil && value.LessThan(*attr.MinValue) {
		problems = append(problems, fmt.Sprintf("value below minimum for '%s': %s", attr.Name, formatBound(*attr.MinValue, attr.UnitLabel)))
	}
	if attr.MaxValue != nil && value.GreaterThan(*attr.MaxValue) {
		problems = append(problems, fmt.Sprintf("value above maximum for '%s': %s", attr.Name, formatBound(*attr.MaxValue, attr.UnitLabel)))
	}
	return problems
}

// validateDimensionRequirement enforces the cross-attribute rule: templates
// priced by area or perimeter cannot be quoted without dimensions.
func validateDimensionRequirement(tpl *catalogdomain.ProductTemplate, sel pricingdomain.Selections) []string {
	if !tpl.UsesAreaOrPerimeterPricing() {
		return nil
	}

	attr, ok := tpl.DimensionAttribute()
	if !ok {
		return []string{"template prices by area or perimeter but defines no dimensions attribute"}
	}
	if !attr.IsRequired && !sel.Present(attr.Code) {
		return []string{"dimensions are required to price this configuration"}
	}
	return nil
}

func formatBound(value decimal.Decimal, unitLabel string) string {
	if unitLabel == "" {
		return value.String()
	}
	return value.String() + " " + unitLabel
}
