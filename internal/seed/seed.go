package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	catalogdomain "github.com/tallersur/aberturas/internal/catalog/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const sampleTemplateCode = "modena"

// EnsureSampleCatalog seeds the Módena sliding-window line so a fresh
// install can be quoted immediately. Idempotent: a template with the same
// code short-circuits the seed.
func EnsureSampleCatalog(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&catalogdomain.ProductTemplate{}).
			Where("code = ?", sampleTemplateCode).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		return tx.Create(modenaTemplate(node)).Error
	})
}

func modenaTemplate(node *snowflake.Node) *catalogdomain.ProductTemplate {
	now := time.Now().UTC()

	dim := catalogdomain.TemplateAttribute{
		ID:           node.Generate(),
		Name:         "Medidas",
		Code:         "dim",
		Type:         catalogdomain.AttributeDimensionsMM,
		IsRequired:   true,
		DisplayOrder: 1,
		MinWidthMM:   intPtr(400),
		MaxWidthMM:   intPtr(3000),
		MinHeightMM:  intPtr(400),
		MaxHeightMM:  intPtr(2400),
		StepMM:       intPtr(10),
	}

	hojas := catalogdomain.TemplateAttribute{
		ID:            node.Generate(),
		Name:          "Hojas",
		Code:          "hojas",
		Type:          catalogdomain.AttributeSelect,
		IsRequired:    true,
		DisplayOrder:  2,
		RenderVariant: catalogdomain.RenderButtons,
		Options: []catalogdomain.AttributeOption{
			option(node, "1 hoja", "1h", catalogdomain.PricingModeAbs, "0", 1, true),
			option(node, "2 hojas", "2h", catalogdomain.PricingModeAbs, "12000", 2, false),
			option(node, "3 hojas", "3h", catalogdomain.PricingModeAbs, "26000", 3, false),
		},
	}

	vidrio := catalogdomain.TemplateAttribute{
		ID:            node.Generate(),
		Name:          "Vidrio",
		Code:          "vidrio",
		Type:          catalogdomain.AttributeSelect,
		IsRequired:    true,
		DisplayOrder:  3,
		RenderVariant: catalogdomain.RenderRadio,
		Options: []catalogdomain.AttributeOption{
			option(node, "Float 4mm", "float-4mm", catalogdomain.PricingModePerM2, "8900", 1, true),
			option(node, "Laminado 3+3", "laminado-3-3", catalogdomain.PricingModePerM2, "15800", 2, false),
			option(node, "DVH 4/9/4", "dvh-4-9-4", catalogdomain.PricingModePerM2, "21500", 3, false),
		},
	}

	contramarco := catalogdomain.TemplateAttribute{
		ID:           node.Generate(),
		Name:         "Contramarco",
		Code:         "contramarco",
		Type:         catalogdomain.AttributeBoolean,
		IsRequired:   false,
		DisplayOrder: 4,
		PricingRule: datatypes.NewJSONType(catalogdomain.BooleanPricingRule{
			Mode:       catalogdomain.PricingModePerimeter,
			PriceValue: decimal.RequireFromString("1500"),
		}),
	}

	mosquitero := catalogdomain.TemplateAttribute{
		ID:           node.Generate(),
		Name:         "Mosquitero",
		Code:         "mosquitero",
		Type:         catalogdomain.AttributeBoolean,
		IsRequired:   false,
		DisplayOrder: 5,
		PricingRule: datatypes.NewJSONType(catalogdomain.BooleanPricingRule{
			Mode:       catalogdomain.PricingModePerM2,
			PriceValue: decimal.RequireFromString("6200"),
		}),
	}

	negro := option(node, "Negro mate", "negro-mate", catalogdomain.PricingModeFactor, "1.08", 2, false)
	negro.SwatchHex = "#1C1C1C"
	simil := option(node, "Símil madera", "simil-madera", catalogdomain.PricingModeFactor, "1.15", 3, false)
	simil.SwatchHex = "#8B5A2B"
	blanco := option(node, "Blanco", "blanco", catalogdomain.PricingModeFactor, "1", 1, true)
	blanco.SwatchHex = "#FFFFFF"

	color := catalogdomain.TemplateAttribute{
		ID:            node.Generate(),
		Name:          "Color",
		Code:          "color",
		Type:          catalogdomain.AttributeSelect,
		IsRequired:    true,
		DisplayOrder:  6,
		RenderVariant: catalogdomain.RenderSwatches,
		Options:       []catalogdomain.AttributeOption{blanco, negro, simil},
	}

	tornillosQty := catalogdomain.TemplateAttribute{
		ID:           node.Generate(),
		Name:         "Cantidad de tornillos",
		Code:         "tornillos_qty",
		Type:         catalogdomain.AttributeQuantity,
		IsRequired:   false,
		DisplayOrder: 7,
		MinValue:     decPtr("0"),
		MaxValue:     decPtr("100"),
		UnitLabel:    "unidades",
	}

	inox := option(node, "Inoxidable", "inox", catalogdomain.PricingModePerUnit, "120", 1, false)
	inox.QtyAttrCode = "tornillos_qty"
	tornillos := catalogdomain.TemplateAttribute{
		ID:           node.Generate(),
		Name:         "Tornillería",
		Code:         "tornillos",
		Type:         catalogdomain.AttributeSelect,
		IsRequired:   false,
		DisplayOrder: 8,
		Options:      []catalogdomain.AttributeOption{inox},
	}

	return &catalogdomain.ProductTemplate{
		ID:                 node.Generate(),
		ProductClass:       catalogdomain.ProductClassVentana,
		LineName:           "Módena",
		Code:               sampleTemplateCode,
		BasePriceNet:       decimal.RequireFromString("50000"),
		Currency:           "ARS",
		RequiresDimensions: true,
		IsActive:           true,
		Version:            1,
		CreatedAt:          now,
		UpdatedAt:          now,
		Attributes: []catalogdomain.TemplateAttribute{
			dim, hojas, vidrio, contramarco, mosquitero, color, tornillosQty, tornillos,
		},
	}
}

func option(node *snowflake.Node, label, code string, mode catalogdomain.PricingMode, priceValue string, order int32, isDefault bool) catalogdomain.AttributeOption {
	return catalogdomain.AttributeOption{
		ID:           node.Generate(),
		Label:        label,
		Code:         code,
		PricingMode:  mode,
		PriceValue:   decimal.RequireFromString(priceValue),
		Currency:     "ARS",
		DisplayOrder: order,
		IsDefault:    isDefault,
	}
}

func intPtr(v int) *int { return &v }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
