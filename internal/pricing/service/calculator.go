package service

import (
	"github.com/shopspring/decimal"
	catalogdomain "github.com/tallersur/aberturas/internal/catalog/domain"
	pricingdomain "github.com/tallersur/aberturas/internal/pricing/domain"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

type deferredFactor struct {
	source string
	factor decimal.Decimal
}

// CalculatePricing prices a configuration against a template. It assumes the
// selections already passed ValidateSelections but stays lenient anyway:
// unknown option codes and missing quantities contribute nothing instead of
// failing. Additive contributions accumulate in attribute display order;
// FACTOR selections are deferred and compound sequentially over the additive
// net, also in display order. All arithmetic is exact decimal.
func CalculatePricing(
	tpl *catalogdomain.ProductTemplate,
	sel pricingdomain.Selections,
	widthMM, heightMM *int,
	taxPercent decimal.Decimal,
) (pricingdomain.Calc, pricingdomain.Totals, []pricingdomain.BreakdownEntry) {
	var calc pricingdomain.Calc
	if dims, ok := resolveDimensions(tpl, sel, widthMM, heightMM); ok {
		calc = DeriveCalc(dims)
	}

	net := decimal.Zero
	breakdown := make([]pricingdomain.BreakdownEntry, 0, len(tpl.Attributes)+1)

	if tpl.BasePriceNet.IsPositive() {
		base := tpl.BasePriceNet
		net = net.Add(base)
		breakdown = append(breakdown, pricingdomain.BreakdownEntry{
			Source: "template_base",
			Mode:   catalogdomain.PricingModeAbs,
			Value:  &base,
		})
	}

	var factors []deferredFactor

	for _, attr := range tpl.SortedAttributes() {
		if !sel.Present(attr.Code) {
			continue
		}

		switch attr.Type {
		case catalogdomain.AttributeSelect:
			code, ok := sel.OptionCode(attr.Code)
			if !ok {
				continue
			}
			opt, ok := attr.OptionByCode(code)
			if !ok {
				continue
			}
			source := attr.Code + "/" + opt.Code
			if opt.PricingMode == catalogdomain.PricingModeFactor {
				factors = append(factors, deferredFactor{source: source, factor: opt.PriceValue})
				continue
			}
			net, breakdown = applyAdditive(net, breakdown, source, opt.PricingMode, opt.PriceValue, opt.QtyAttrCode, calc, sel)

		case catalogdomain.AttributeBoolean:
			on, ok := sel.Bool(attr.Code)
			if !ok || !on {
				continue
			}
			rule, ok := attr.BooleanRule()
			if !ok {
				continue
			}
			source := attr.Code + "/true"
			if rule.Mode == catalogdomain.PricingModeFactor {
				factors = append(factors, deferredFactor{source: source, factor: rule.PriceValue})
				continue
			}
			net, breakdown = applyAdditive(net, breakdown, source, rule.Mode, rule.PriceValue, "", calc, sel)
		}
	}

	for _, f := range factors {
		factor := f.factor
		appliedOn := net
		delta := appliedOn.Mul(factor.Sub(one))
		net = net.Add(delta)
		breakdown = append(breakdown, pricingdomain.BreakdownEntry{
			Source:    f.source,
			Mode:      catalogdomain.PricingModeFactor,
			Factor:    &factor,
			AppliedOn: &appliedOn,
			Delta:     &delta,
		})
	}

	tax := net.Mul(taxPercent).Div(hundred)
	totals := pricingdomain.Totals{
		Net:   net,
		Tax:   tax,
		Gross: net.Add(tax),
	}

	return calc, totals, breakdown
}

// applyAdditive folds one additive contribution into the running net. Zero
// contributions are dropped from the breakdown; negative ones (discounts)
// still count and stay visible.
func applyAdditive(
	net decimal.Decimal,
	breakdown []pricingdomain.BreakdownEntry,
	source string,
	mode catalogdomain.PricingMode,
	priceValue decimal.Decimal,
	qtyAttrCode string,
	calc pricingdomain.Calc,
	sel pricingdomain.Selections,
) (decimal.Decimal, []pricingdomain.BreakdownEntry) {
	entry := pricingdomain.BreakdownEntry{Source: source, Mode: mode}
	var contribution decimal.Decimal

	switch mode {
	case catalogdomain.PricingModeAbs:
		contribution = priceValue

	case catalogdomain.PricingModePerM2:
		if calc.AreaM2 == nil {
			return net, breakdown
		}
		unit := priceValue
		contribution = unit.Mul(*calc.AreaM2)
		entry.Unit = &unit
		entry.AreaM2 = calc.AreaM2

	case catalogdomain.PricingModePerimeter:
		if calc.PerimeterM == nil {
			return net, breakdown
		}
		unit := priceValue
		contribution = unit.Mul(*calc.PerimeterM)
		entry.Unit = &unit
		entry.PerimeterM = calc.PerimeterM

	case catalogdomain.PricingModePerUnit:
		qty, ok := sel.Number(qtyAttrCode)
		if !ok || qty.IsZero() {
			return net, breakdown
		}
		unit := priceValue
		contribution = unit.Mul(qty)
		entry.Unit = &unit
		entry.Qty = &qty
		entry.QtyAttr = qtyAttrCode

	default:
		return net, breakdown
	}

	if contribution.IsZero() {
		return net, breakdown
	}

	entry.Value = &contribution
	return net.Add(contribution), append(breakdown, entry)
}
