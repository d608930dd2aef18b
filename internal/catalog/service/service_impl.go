package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	catalogdomain "github.com/tallersur/aberturas/internal/catalog/domain"
	"github.com/tallersur/aberturas/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  catalogdomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  catalogdomain.Repository
}

func New(p Params) catalogdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("catalog.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req catalogdomain.CreateRequest) (*catalogdomain.ProductTemplate, error) {
	productClass, err := parseProductClass(req.ProductClass)
	if err != nil {
		return nil, err
	}

	lineName := strings.TrimSpace(req.LineName)
	if lineName == "" {
		return nil, catalogdomain.ErrInvalidLineName
	}

	code := strings.TrimSpace(req.Code)
	if code == "" {
		code = slug.Make(lineName)
	}
	if code == "" {
		return nil, catalogdomain.ErrInvalidCode
	}

	if req.BasePriceNet.IsNegative() {
		return nil, catalogdomain.ErrInvalidBasePrice
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "ARS"
	}
	if len(currency) != 3 {
		return nil, catalogdomain.ErrInvalidCurrency
	}

	version := int32(1)
	if req.Version != nil {
		if *req.Version <= 0 {
			return nil, catalogdomain.ErrInvalidVersion
		}
		version = *req.Version
	}

	requiresDimensions := true
	if req.RequiresDimensions != nil {
		requiresDimensions = *req.RequiresDimensions
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	attrs, err := s.buildAttributes(req.Attributes, currency)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entity := &catalogdomain.ProductTemplate{
		ID:                 s.genID.Generate(),
		ProductClass:       productClass,
		LineName:           lineName,
		Code:               code,
		BasePriceNet:       req.BasePriceNet,
		Currency:           currency,
		RequiresDimensions: requiresDimensions,
		IsActive:           active,
		Version:            version,
		CreatedAt:          now,
		UpdatedAt:          now,
		Attributes:         attrs,
	}

	if err := s.repo.Insert(ctx, s.db, entity); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, catalogdomain.ErrDuplicateCode
		}
		return nil, err
	}

	s.log.Info("template created",
		zap.String("template_id", entity.ID.String()),
		zap.String("code", entity.Code),
		zap.Int("attributes", len(entity.Attributes)),
	)

	return entity, nil
}

func (s *Service) Get(ctx context.Context, id string) (*catalogdomain.ProductTemplate, error) {
	templateID, err := parseID(id)
	if err != nil {
		return nil, catalogdomain.ErrInvalidID
	}

	entity, err := s.repo.FindByID(ctx, s.db, templateID)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, catalogdomain.ErrNotFound
	}
	return entity, nil
}

func (s *Service) GetByCode(ctx context.Context, code string) (*catalogdomain.ProductTemplate, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, catalogdomain.ErrInvalidCode
	}

	entity, err := s.repo.FindByCode(ctx, s.db, code)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, catalogdomain.ErrNotFound
	}
	return entity, nil
}

func (s *Service) List(ctx context.Context, filter catalogdomain.ListFilter) ([]catalogdomain.ProductTemplate, error) {
	if filter.ProductClass != "" {
		productClass, err := parseProductClass(filter.ProductClass)
		if err != nil {
			return nil, err
		}
		filter.ProductClass = string(productClass)
	}
	return s.repo.List(ctx, s.db, filter)
}

// buildAttributes turns attribute inputs into persistable entities while
// enforcing template-level rules: unique attribute codes, unique option
// codes with at most one default per attribute, and PER_UNIT options pointing
// at an existing QUANTITY attribute.
func (s *Service) buildAttributes(inputs []catalogdomain.AttributeInput, defaultCurrency string) ([]catalogdomain.TemplateAttribute, error) {
	quantityCodes := make(map[string]struct{})
	for _, in := range inputs {
		if strings.ToUpper(strings.TrimSpace(in.Type)) == string(catalogdomain.AttributeQuantity) {
			quantityCodes[strings.TrimSpace(in.Code)] = struct{}{}
		}
	}

	attrs := make([]catalogdomain.TemplateAttribute, 0, len(inputs))
	seenCodes := make(map[string]struct{}, len(inputs))

	for i, in := range inputs {
		attrType, err := parseAttributeType(in.Type)
		if err != nil {
			return nil, err
		}

		name := strings.TrimSpace(in.Name)
		if name == "" {
			return nil, catalogdomain.ErrInvalidAttributeName
		}

		code := strings.TrimSpace(in.Code)
		if code == "" {
			code = slug.Make(name)
		}
		if code == "" {
			return nil, catalogdomain.ErrInvalidCode
		}
		if _, dup := seenCodes[code]; dup {
			return nil, catalogdomain.ErrDuplicateAttributeCode
		}
		seenCodes[code] = struct{}{}

		variant, err := parseRenderVariant(in.RenderVariant)
		if err != nil {
			return nil, err
		}

		required := true
		if in.IsRequired != nil {
			required = *in.IsRequired
		}

		order := in.DisplayOrder
		if order == 0 {
			order = int32(i + 1)
		}

		attr := catalogdomain.TemplateAttribute{
			ID:            s.genID.Generate(),
			Name:          name,
			Code:          code,
			Type:          attrType,
			IsRequired:    required,
			DisplayOrder:  order,
			RenderVariant: variant,
			MinValue:      in.MinValue,
			MaxValue:      in.MaxValue,
			StepValue:     in.StepValue,
			UnitLabel:     strings.TrimSpace(in.UnitLabel),
			MinWidthMM:    in.MinWidthMM,
			MaxWidthMM:    in.MaxWidthMM,
			MinHeightMM:   in.MinHeightMM,
			MaxHeightMM:   in.MaxHeightMM,
			StepMM:        in.StepMM,
		}

		switch attrType {
		case catalogdomain.AttributeSelect:
			if len(in.Options) == 0 {
				return nil, catalogdomain.ErrMissingOptions
			}
			options, err := s.buildOptions(in.Options, defaultCurrency, quantityCodes)
			if err != nil {
				return nil, err
			}
			attr.Options = options
		case catalogdomain.AttributeBoolean:
			if len(in.Options) > 0 {
				return nil, catalogdomain.ErrUnexpectedOptions
			}
			if in.PricingRule != nil {
				mode, err := parsePricingMode(string(in.PricingRule.Mode))
				if err != nil {
					return nil, err
				}
				if mode == catalogdomain.PricingModePerUnit {
					return nil, catalogdomain.ErrInvalidPricingMode
				}
				attr.PricingRule = datatypes.NewJSONType(catalogdomain.BooleanPricingRule{
					Mode:       mode,
					PriceValue: in.PricingRule.PriceValue,
				})
			}
		default:
			if len(in.Options) > 0 {
				return nil, catalogdomain.ErrUnexpectedOptions
			}
		}

		attrs = append(attrs, attr)
	}

	return attrs, nil
}

func (s *Service) buildOptions(inputs []catalogdomain.OptionInput, defaultCurrency string, quantityCodes map[string]struct{}) ([]catalogdomain.AttributeOption, error) {
	options := make([]catalogdomain.AttributeOption, 0, len(inputs))
	seenCodes := make(map[string]struct{}, len(inputs))
	defaultSeen := false

	for i, in := range inputs {
		mode, err := parsePricingMode(in.PricingMode)
		if err != nil {
			return nil, err
		}

		label := strings.TrimSpace(in.Label)
		code := strings.TrimSpace(in.Code)
		if code == "" {
			code = slug.Make(label)
		}
		if code == "" {
			return nil, catalogdomain.ErrInvalidCode
		}
		if _, dup := seenCodes[code]; dup {
			return nil, catalogdomain.ErrDuplicateOptionCode
		}
		seenCodes[code] = struct{}{}

		if in.IsDefault {
			if defaultSeen {
				return nil, catalogdomain.ErrMultipleDefaultOptions
			}
			defaultSeen = true
		}

		qtyAttrCode := strings.TrimSpace(in.QtyAttrCode)
		if mode == catalogdomain.PricingModePerUnit {
			if _, ok := quantityCodes[qtyAttrCode]; !ok {
				return nil, catalogdomain.ErrInvalidQuantityRef
			}
		} else if qtyAttrCode != "" {
			return nil, catalogdomain.ErrInvalidQuantityRef
		}

		currency := strings.ToUpper(strings.TrimSpace(in.Currency))
		if currency == "" {
			currency = defaultCurrency
		}

		order := in.DisplayOrder
		if order == 0 {
			order = int32(i + 1)
		}

		options = append(options, catalogdomain.AttributeOption{
			ID:           s.genID.Generate(),
			Label:        label,
			Code:         code,
			PricingMode:  mode,
			PriceValue:   in.PriceValue,
			Currency:     currency,
			DisplayOrder: order,
			IsDefault:    in.IsDefault,
			SwatchHex:    strings.TrimSpace(in.SwatchHex),
			Icon:         strings.TrimSpace(in.Icon),
			QtyAttrCode:  qtyAttrCode,
		})
	}

	return options, nil
}

func parseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(value))
}

func parseProductClass(value string) (catalogdomain.ProductClass, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case string(catalogdomain.ProductClassVentana):
		return catalogdomain.ProductClassVentana, nil
	case string(catalogdomain.ProductClassPuerta):
		return catalogdomain.ProductClassPuerta, nil
	case string(catalogdomain.ProductClassAccesorio):
		return catalogdomain.ProductClassAccesorio, nil
	default:
		return "", catalogdomain.ErrInvalidProductClass
	}
}

func parseAttributeType(value string) (catalogdomain.AttributeType, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case string(catalogdomain.AttributeSelect):
		return catalogdomain.AttributeSelect, nil
	case string(catalogdomain.AttributeBoolean):
		return catalogdomain.AttributeBoolean, nil
	case string(catalogdomain.AttributeNumber):
		return catalogdomain.AttributeNumber, nil
	case string(catalogdomain.AttributeDimensionsMM):
		return catalogdomain.AttributeDimensionsMM, nil
	case string(catalogdomain.AttributeQuantity):
		return catalogdomain.AttributeQuantity, nil
	default:
		return "", catalogdomain.ErrInvalidAttributeType
	}
}

func parsePricingMode(value string) (catalogdomain.PricingMode, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case string(catalogdomain.PricingModeAbs):
		return catalogdomain.PricingModeAbs, nil
	case string(catalogdomain.PricingModePerM2):
		return catalogdomain.PricingModePerM2, nil
	case string(catalogdomain.PricingModePerimeter):
		return catalogdomain.PricingModePerimeter, nil
	case string(catalogdomain.PricingModePerUnit):
		return catalogdomain.PricingModePerUnit, nil
	case string(catalogdomain.PricingModeFactor):
		return catalogdomain.PricingModeFactor, nil
	default:
		return "", catalogdomain.ErrInvalidPricingMode
	}
}

func parseRenderVariant(value string) (catalogdomain.RenderVariant, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "":
		return catalogdomain.RenderSelect, nil
	case string(catalogdomain.RenderSelect):
		return catalogdomain.RenderSelect, nil
	case string(catalogdomain.RenderSwatches):
		return catalogdomain.RenderSwatches, nil
	case string(catalogdomain.RenderRadio):
		return catalogdomain.RenderRadio, nil
	case string(catalogdomain.RenderButtons):
		return catalogdomain.RenderButtons, nil
	default:
		return "", catalogdomain.ErrInvalidRenderVariant
	}
}
