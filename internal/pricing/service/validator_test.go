package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	pricingdomain "github.com/tallersur/aberturas/internal/pricing/domain"
)

func TestValidateSelections_CompleteConfiguration(t *testing.T) {
	tpl := windowTemplate(t)

	problems := ValidateSelections(tpl, fullSelections())

	assert.Empty(t, problems)
}

func TestValidateSelections_MissingRequiredAttribute(t *testing.T) {
	tpl := windowTemplate(t)
	sel := fullSelections()
	delete(sel, "vidrio")

	problems := ValidateSelections(tpl, sel)

	require.NotEmpty(t, problems)
	assert.Contains(t, problems[0], "Vidrio")
}

func TestValidateSelections_UnknownOption(t *testing.T) {
	tpl := windowTemplate(t)
	sel := fullSelections()
	sel["vidrio"] = "templado-10mm"

	problems := ValidateSelections(tpl, sel)

	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "templado-10mm")
	assert.Contains(t, problems[0], "Vidrio")
}

func TestValidateSelections_NonStringOptionValue(t *testing.T) {
	tpl := windowTemplate(t)
	sel := fullSelections()
	sel["hojas"] = 2

	problems := ValidateSelections(tpl, sel)

	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "Hojas")
}

func TestValidateSelections_BooleanTypeIsStrict(t *testing.T) {
	tpl := windowTemplate(t)
	sel := fullSelections()
	sel["contramarco"] = "si"

	problems := ValidateSelections(tpl, sel)

	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "boolean")
}

func TestValidateSelections_DimensionBounds(t *testing.T) {
	tpl := windowTemplate(t)
	sel := fullSelections()
	sel["dim"] = map[string]any{"width_mm": float64(300), "height_mm": float64(2600)}

	problems := ValidateSelections(tpl, sel)

	require.Len(t, problems, 2)
	assert.Contains(t, problems[0], "width below minimum")
	assert.Contains(t, problems[1], "height above maximum")
}

func TestValidateSelections_MalformedDimensions(t *testing.T) {
	tpl := windowTemplate(t)
	sel := fullSelections()
	sel["dim"] = map[string]any{"width_mm": float64(1300)}

	problems := ValidateSelections(tpl, sel)

	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "width_mm and height_mm")
}

func TestValidateSelections_QuantityMustBeWhole(t *testing.T) {
	tpl := windowTemplate(t)
	sel := fullSelections()
	sel["tornillos_qty"] = 2.5

	problems := ValidateSelections(tpl, sel)

	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "whole non-negative quantity")
}

func TestValidateSelections_OptionalAttributesSkippedWhenAbsent(t *testing.T) {
	tpl := windowTemplate(t)
	sel := fullSelections() // tornillos and tornillos_qty absent

	problems := ValidateSelections(tpl, sel)

	assert.Empty(t, problems)
}

func TestValidateSelections_DimensionsRequiredForAreaPricing(t *testing.T) {
	tpl := windowTemplate(t)
	for i := range tpl.Attributes {
		if tpl.Attributes[i].Code == "dim" {
			tpl.Attributes[i].IsRequired = false
		}
	}
	sel := fullSelections()
	delete(sel, "dim")

	problems := ValidateSelections(tpl, sel)

	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "dimensions are required")
}

func TestValidateSelections_AllProblemsReported(t *testing.T) {
	tpl := windowTemplate(t)
	sel := pricingdomain.Selections{}

	problems := ValidateSelections(tpl, sel)

	// dim, hojas, vidrio and color are required.
	assert.Len(t, problems, 4)
}
