package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*ProductTemplate, error)
	Get(ctx context.Context, id string) (*ProductTemplate, error)
	GetByCode(ctx context.Context, code string) (*ProductTemplate, error)
	List(ctx context.Context, filter ListFilter) ([]ProductTemplate, error)
}

type CreateRequest struct {
	ProductClass       string           `json:"product_class"`
	LineName           string           `json:"line_name"`
	Code               string           `json:"code"`
	BasePriceNet       decimal.Decimal  `json:"base_price_net"`
	Currency           string           `json:"currency"`
	RequiresDimensions *bool            `json:"requires_dimensions"`
	Version            *int32           `json:"version"`
	IsActive           *bool            `json:"is_active"`
	Attributes         []AttributeInput `json:"attributes"`
}

type AttributeInput struct {
	Name          string              `json:"name"`
	Code          string              `json:"code"`
	Type          string              `json:"type"`
	IsRequired    *bool               `json:"is_required"`
	DisplayOrder  int32               `json:"display_order"`
	RenderVariant string              `json:"render_variant"`
	PricingRule   *BooleanPricingRule `json:"pricing_rule"`

	MinValue  *decimal.Decimal `json:"min_value"`
	MaxValue  *decimal.Decimal `json:"max_value"`
	StepValue *decimal.Decimal `json:"step_value"`
	UnitLabel string           `json:"unit_label"`

	MinWidthMM  *int `json:"min_width_mm"`
	MaxWidthMM  *int `json:"max_width_mm"`
	MinHeightMM *int `json:"min_height_mm"`
	MaxHeightMM *int `json:"max_height_mm"`
	StepMM      *int `json:"step_mm"`

	Options []OptionInput `json:"options"`
}

type OptionInput struct {
	Label        string          `json:"label"`
	Code         string          `json:"code"`
	PricingMode  string          `json:"pricing_mode"`
	PriceValue   decimal.Decimal `json:"price_value"`
	Currency     string          `json:"currency"`
	DisplayOrder int32           `json:"display_order"`
	IsDefault    bool            `json:"is_default"`
	SwatchHex    string          `json:"swatch_hex"`
	Icon         string          `json:"icon"`
	QtyAttrCode  string          `json:"qty_attr_code"`
}

type ListFilter struct {
	ProductClass    string
	IncludeInactive bool
}

var (
	ErrInvalidProductClass    = errors.New("invalid_product_class")
	ErrInvalidLineName        = errors.New("invalid_line_name")
	ErrInvalidCode            = errors.New("invalid_code")
	ErrInvalidBasePrice       = errors.New("invalid_base_price")
	ErrInvalidCurrency        = errors.New("invalid_currency")
	ErrInvalidVersion         = errors.New("invalid_version")
	ErrInvalidAttributeType   = errors.New("invalid_attribute_type")
	ErrInvalidRenderVariant   = errors.New("invalid_render_variant")
	ErrInvalidPricingMode     = errors.New("invalid_pricing_mode")
	ErrInvalidAttributeName   = errors.New("invalid_attribute_name")
	ErrDuplicateAttributeCode = errors.New("duplicate_attribute_code")
	ErrMissingOptions         = errors.New("missing_options")
	ErrUnexpectedOptions      = errors.New("unexpected_options")
	ErrDuplicateOptionCode    = errors.New("duplicate_option_code")
	ErrMultipleDefaultOptions = errors.New("multiple_default_options")
	ErrInvalidQuantityRef     = errors.New("invalid_quantity_reference")
	ErrDuplicateCode          = errors.New("duplicate_code")
	ErrInvalidID              = errors.New("invalid_id")
	ErrNotFound               = errors.New("not_found")
)
