package domain

import (
	"sort"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ProductClass categorizes a template within the catalog.
type ProductClass string

const (
	ProductClassVentana   ProductClass = "VENTANA"
	ProductClassPuerta    ProductClass = "PUERTA"
	ProductClassAccesorio ProductClass = "ACCESORIO"
)

// AttributeType determines how an attribute is selected and validated.
type AttributeType string

const (
	AttributeSelect       AttributeType = "SELECT"
	AttributeBoolean      AttributeType = "BOOLEAN"
	AttributeNumber       AttributeType = "NUMBER"
	AttributeDimensionsMM AttributeType = "DIMENSIONS_MM"
	AttributeQuantity     AttributeType = "QUANTITY"
)

// PricingMode is the formula that turns a price value into a contribution.
// FACTOR is multiplicative over the running total and is applied after all
// additive modes.
type PricingMode string

const (
	PricingModeAbs       PricingMode = "ABS"
	PricingModePerM2     PricingMode = "PER_M2"
	PricingModePerimeter PricingMode = "PERIMETER"
	PricingModePerUnit   PricingMode = "PER_UNIT"
	PricingModeFactor    PricingMode = "FACTOR"
)

// RenderVariant is a UI hint; the engine never interprets it.
type RenderVariant string

const (
	RenderSelect   RenderVariant = "select"
	RenderSwatches RenderVariant = "swatches"
	RenderRadio    RenderVariant = "radio"
	RenderButtons  RenderVariant = "buttons"
)

// ProductTemplate is a configurable product line definition.
type ProductTemplate struct {
	ID                 snowflake.ID    `json:"id" gorm:"primaryKey"`
	ProductClass       ProductClass    `json:"product_class" gorm:"column:product_class;type:text;not null"`
	LineName           string          `json:"line_name" gorm:"column:line_name;type:text;not null;uniqueIndex:idx_line_version"`
	Code               string          `json:"code" gorm:"type:text;not null;uniqueIndex"`
	BasePriceNet       decimal.Decimal `json:"base_price_net" gorm:"column:base_price_net;type:numeric(12,2);not null;default:0"`
	Currency           string          `json:"currency" gorm:"type:text;not null;default:'ARS'"`
	RequiresDimensions bool            `json:"requires_dimensions" gorm:"not null;default:true"`
	IsActive           bool            `json:"is_active" gorm:"column:is_active;not null;default:true"`
	Version            int32           `json:"version" gorm:"not null;default:1;uniqueIndex:idx_line_version"`
	CreatedAt          time.Time       `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt          time.Time       `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`

	Attributes []TemplateAttribute `json:"attributes" gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE"`
}

func (ProductTemplate) TableName() string { return "product_templates" }

// BooleanPricingRule is the inline pricing rule of a BOOLEAN attribute.
// Booleans have no option list, so the rule lives on the attribute itself.
type BooleanPricingRule struct {
	Mode       PricingMode     `json:"mode"`
	PriceValue decimal.Decimal `json:"price_value"`
}

// TemplateAttribute is one configurable dimension of a template.
type TemplateAttribute struct {
	ID            snowflake.ID  `json:"id" gorm:"primaryKey"`
	TemplateID    snowflake.ID  `json:"template_id" gorm:"column:template_id;not null;uniqueIndex:idx_attr_code"`
	Name          string        `json:"name" gorm:"type:text;not null"`
	Code          string        `json:"code" gorm:"type:text;not null;uniqueIndex:idx_attr_code"`
	Type          AttributeType `json:"type" gorm:"type:text;not null"`
	IsRequired    bool          `json:"is_required" gorm:"column:is_required;not null;default:true"`
	DisplayOrder  int32         `json:"display_order" gorm:"column:display_order;not null;default:1"`
	RenderVariant RenderVariant `json:"render_variant" gorm:"column:render_variant;type:text;not null;default:'select'"`

	// BOOLEAN attributes only.
	PricingRule datatypes.JSONType[BooleanPricingRule] `json:"pricing_rule,omitempty" gorm:"column:pricing_rule;type:jsonb"`

	// NUMBER / QUANTITY bounds.
	MinValue  *decimal.Decimal `json:"min_value,omitempty" gorm:"column:min_value;type:numeric(12,4)"`
	MaxValue  *decimal.Decimal `json:"max_value,omitempty" gorm:"column:max_value;type:numeric(12,4)"`
	StepValue *decimal.Decimal `json:"step_value,omitempty" gorm:"column:step_value;type:numeric(12,4)"`
	UnitLabel string           `json:"unit_label,omitempty" gorm:"column:unit_label;type:text"`

	// DIMENSIONS_MM bounds.
	MinWidthMM  *int `json:"min_width_mm,omitempty" gorm:"column:min_width_mm"`
	MaxWidthMM  *int `json:"max_width_mm,omitempty" gorm:"column:max_width_mm"`
	MinHeightMM *int `json:"min_height_mm,omitempty" gorm:"column:min_height_mm"`
	MaxHeightMM *int `json:"max_height_mm,omitempty" gorm:"column:max_height_mm"`
	StepMM      *int `json:"step_mm,omitempty" gorm:"column:step_mm"`

	Options []AttributeOption `json:"options" gorm:"foreignKey:AttributeID;constraint:OnDelete:CASCADE"`
}

func (TemplateAttribute) TableName() string { return "template_attributes" }

// BooleanRule returns the inline pricing rule, if one is configured.
func (a *TemplateAttribute) BooleanRule() (BooleanPricingRule, bool) {
	rule := a.PricingRule.Data()
	if rule.Mode == "" {
		return BooleanPricingRule{}, false
	}
	return rule, true
}

// OptionByCode resolves an option of a SELECT attribute by its code.
func (a *TemplateAttribute) OptionByCode(code string) (*AttributeOption, bool) {
	for i := range a.Options {
		if a.Options[i].Code == code {
			return &a.Options[i], true
		}
	}
	return nil, false
}

// AttributeOption is one selectable value of a SELECT attribute.
type AttributeOption struct {
	ID           snowflake.ID    `json:"id" gorm:"primaryKey"`
	AttributeID  snowflake.ID    `json:"attribute_id" gorm:"column:attribute_id;not null;uniqueIndex:idx_option_code"`
	Label        string          `json:"label" gorm:"type:text;not null"`
	Code         string          `json:"code" gorm:"type:text;not null;uniqueIndex:idx_option_code"`
	PricingMode  PricingMode     `json:"pricing_mode" gorm:"column:pricing_mode;type:text;not null;default:'ABS'"`
	PriceValue   decimal.Decimal `json:"price_value" gorm:"column:price_value;type:numeric(12,4);not null;default:0"`
	Currency     string          `json:"currency" gorm:"type:text;not null;default:'ARS'"`
	DisplayOrder int32           `json:"display_order" gorm:"column:display_order;not null;default:1"`
	IsDefault    bool            `json:"is_default" gorm:"column:is_default;not null;default:false"`

	SwatchHex string `json:"swatch_hex,omitempty" gorm:"column:swatch_hex;type:text"`
	Icon      string `json:"icon,omitempty" gorm:"type:text"`

	// PER_UNIT only: code of the sibling QUANTITY attribute supplying the
	// runtime multiplier.
	QtyAttrCode string `json:"qty_attr_code,omitempty" gorm:"column:qty_attr_code;type:text"`
}

func (AttributeOption) TableName() string { return "attribute_options" }

// SortedAttributes returns the attributes in evaluation order: ascending
// display order, ties broken by id.
func (t *ProductTemplate) SortedAttributes() []TemplateAttribute {
	attrs := make([]TemplateAttribute, len(t.Attributes))
	copy(attrs, t.Attributes)
	sort.SliceStable(attrs, func(i, j int) bool {
		if attrs[i].DisplayOrder != attrs[j].DisplayOrder {
			return attrs[i].DisplayOrder < attrs[j].DisplayOrder
		}
		return attrs[i].ID < attrs[j].ID
	})
	return attrs
}

// AttributeByCode resolves an attribute by its code.
func (t *ProductTemplate) AttributeByCode(code string) (*TemplateAttribute, bool) {
	for i := range t.Attributes {
		if t.Attributes[i].Code == code {
			return &t.Attributes[i], true
		}
	}
	return nil, false
}

// DimensionAttribute returns the first DIMENSIONS_MM attribute, if any.
func (t *ProductTemplate) DimensionAttribute() (*TemplateAttribute, bool) {
	for i := range t.Attributes {
		if t.Attributes[i].Type == AttributeDimensionsMM {
			return &t.Attributes[i], true
		}
	}
	return nil, false
}

// UsesAreaOrPerimeterPricing reports whether any option or boolean rule
// prices by area or perimeter, which makes dimensions mandatory.
func (t *ProductTemplate) UsesAreaOrPerimeterPricing() bool {
	for i := range t.Attributes {
		attr := &t.Attributes[i]
		switch attr.Type {
		case AttributeSelect:
			for j := range attr.Options {
				mode := attr.Options[j].PricingMode
				if mode == PricingModePerM2 || mode == PricingModePerimeter {
					return true
				}
			}
		case AttributeBoolean:
			if rule, ok := attr.BooleanRule(); ok {
				if rule.Mode == PricingModePerM2 || rule.Mode == PricingModePerimeter {
					return true
				}
			}
		}
	}
	return false
}
