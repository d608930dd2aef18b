package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/oklog/ulid/v2"
	catalogdomain "github.com/tallersur/aberturas/internal/catalog/domain"
	"github.com/tallersur/aberturas/internal/config"
	pricingdomain "github.com/tallersur/aberturas/internal/pricing/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	Config      *config.Config
	CatalogRepo catalogdomain.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	cfg         *config.Config
	catalogRepo catalogdomain.Repository
}

func New(p Params) pricingdomain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("pricing.service"),
		cfg:         p.Config,
		catalogRepo: p.CatalogRepo,
	}
}

func (s *Service) Validate(ctx context.Context, templateID string, selections pricingdomain.Selections) ([]string, error) {
	tpl, err := s.resolveTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}
	return ValidateSelections(tpl, selections), nil
}

func (s *Service) Quote(ctx context.Context, req pricingdomain.QuoteRequest) (*pricingdomain.Quote, error) {
	tpl, err := s.resolveTemplate(ctx, req.TemplateID)
	if err != nil {
		return nil, err
	}
	if !tpl.IsActive {
		return nil, pricingdomain.ErrTemplateInactive
	}

	if problems := ValidateSelections(tpl, req.Selections); len(problems) > 0 {
		return nil, &pricingdomain.ValidationError{Problems: problems}
	}

	taxPercent := s.cfg.DefaultTaxPercent
	if req.TaxPercent != nil {
		if req.TaxPercent.IsNegative() {
			return nil, pricingdomain.ErrInvalidTaxPercent
		}
		taxPercent = *req.TaxPercent
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = tpl.Currency
	}
	if currency == "" {
		currency = s.cfg.DefaultCurrency
	}

	calc, totals, breakdown := CalculatePricing(tpl, req.Selections, req.WidthMM, req.HeightMM, taxPercent)

	quote := &pricingdomain.Quote{
		QuoteRef:     ulid.Make().String(),
		TemplateID:   tpl.ID.String(),
		TemplateCode: tpl.Code,
		LineName:     tpl.LineName,
		Currency:     currency,
		TaxPercent:   taxPercent,
		Calc:         calc,
		Totals:       totals,
		Breakdown:    breakdown,
	}

	s.log.Info("quote calculated",
		zap.String("quote_ref", quote.QuoteRef),
		zap.String("template_code", tpl.Code),
		zap.String("net", totals.Net.String()),
	)

	return quote, nil
}

// resolveTemplate accepts either a snowflake id or a template code, which
// keeps seeded fixtures addressable without knowing their generated ids.
func (s *Service) resolveTemplate(ctx context.Context, id string) (*catalogdomain.ProductTemplate, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, pricingdomain.ErrInvalidID
	}

	var (
		tpl *catalogdomain.ProductTemplate
		err error
	)
	if templateID, parseErr := snowflake.ParseString(id); parseErr == nil {
		tpl, err = s.catalogRepo.FindByID(ctx, s.db, templateID)
	} else {
		tpl, err = s.catalogRepo.FindByCode(ctx, s.db, id)
	}
	if err != nil {
		return nil, err
	}
	if tpl == nil {
		return nil, pricingdomain.ErrTemplateNotFound
	}
	return tpl, nil
}
