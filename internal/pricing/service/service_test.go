package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	catalogdomain "github.com/tallersur/aberturas/internal/catalog/domain"
	catalogrepository "github.com/tallersur/aberturas/internal/catalog/repository"
	"github.com/tallersur/aberturas/internal/config"
	pricingdomain "github.com/tallersur/aberturas/internal/pricing/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupQuoteService(t *testing.T) (pricingdomain.Service, *catalogdomain.ProductTemplate) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&catalogdomain.ProductTemplate{},
		&catalogdomain.TemplateAttribute{},
		&catalogdomain.AttributeOption{},
	)
	require.NoError(t, err)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	tpl := windowTemplate(t)
	tpl.ID = node.Generate()
	for i := range tpl.Attributes {
		tpl.Attributes[i].ID = node.Generate()
		for j := range tpl.Attributes[i].Options {
			tpl.Attributes[i].Options[j].ID = node.Generate()
		}
	}
	require.NoError(t, db.Create(tpl).Error)

	svc := New(Params{
		DB:  db,
		Log: zap.NewNop(),
		Config: &config.Config{
			DefaultCurrency:   "ARS",
			DefaultTaxPercent: decimal.RequireFromString("21"),
		},
		CatalogRepo: catalogrepository.Provide(),
	})

	return svc, tpl
}

func TestQuote_FullConfiguration(t *testing.T) {
	svc, tpl := setupQuoteService(t)

	quote, err := svc.Quote(context.Background(), pricingdomain.QuoteRequest{
		TemplateID: tpl.ID.String(),
		Selections: fullSelections(),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, quote.QuoteRef)
	assert.Equal(t, "modena", quote.TemplateCode)
	assert.Equal(t, "ARS", quote.Currency)
	assert.True(t, quote.TaxPercent.Equal(decimal.RequireFromString("21")))
	assert.True(t, quote.Totals.Net.Equal(decimal.RequireFromString("90054.72")), "net = %s", quote.Totals.Net)
	assert.True(t, quote.Totals.Tax.Equal(decimal.RequireFromString("18911.4912")))
	assert.True(t, quote.Totals.Gross.Equal(decimal.RequireFromString("108966.2112")))
	assert.Len(t, quote.Breakdown, 5)
}

func TestQuote_ResolvesTemplateByCode(t *testing.T) {
	svc, _ := setupQuoteService(t)

	quote, err := svc.Quote(context.Background(), pricingdomain.QuoteRequest{
		TemplateID: "modena",
		Selections: fullSelections(),
	})
	require.NoError(t, err)
	assert.True(t, quote.Totals.Net.Equal(decimal.RequireFromString("90054.72")))
}

func TestQuote_InvalidSelectionsRejected(t *testing.T) {
	svc, tpl := setupQuoteService(t)

	sel := fullSelections()
	delete(sel, "vidrio")

	_, err := svc.Quote(context.Background(), pricingdomain.QuoteRequest{
		TemplateID: tpl.ID.String(),
		Selections: sel,
	})
	require.ErrorIs(t, err, pricingdomain.ErrInvalidSelections)

	var verr *pricingdomain.ValidationError
	require.ErrorAs(t, err, &verr)
	require.NotEmpty(t, verr.Problems)
	assert.Contains(t, verr.Problems[0], "Vidrio")
}

func TestQuote_CustomTaxPercent(t *testing.T) {
	svc, tpl := setupQuoteService(t)

	taxPercent := decimal.RequireFromString("10.5")
	quote, err := svc.Quote(context.Background(), pricingdomain.QuoteRequest{
		TemplateID: tpl.ID.String(),
		Selections: fullSelections(),
		TaxPercent: &taxPercent,
	})
	require.NoError(t, err)

	// 90054.72 * 10.5%
	assert.True(t, quote.Totals.Tax.Equal(decimal.RequireFromString("9455.7456")), "tax = %s", quote.Totals.Tax)
}

func TestQuote_NegativeTaxPercentRejected(t *testing.T) {
	svc, tpl := setupQuoteService(t)

	taxPercent := decimal.RequireFromString("-1")
	_, err := svc.Quote(context.Background(), pricingdomain.QuoteRequest{
		TemplateID: tpl.ID.String(),
		Selections: fullSelections(),
		TaxPercent: &taxPercent,
	})
	assert.ErrorIs(t, err, pricingdomain.ErrInvalidTaxPercent)
}

func TestQuote_TemplateNotFound(t *testing.T) {
	svc, _ := setupQuoteService(t)

	_, err := svc.Quote(context.Background(), pricingdomain.QuoteRequest{
		TemplateID: "no-such-line",
		Selections: fullSelections(),
	})
	assert.ErrorIs(t, err, pricingdomain.ErrTemplateNotFound)
}

func TestQuote_InactiveTemplateRejected(t *testing.T) {
	svc, tpl := setupQuoteService(t)

	// Retire the line directly; quoting must stop even though reads succeed.
	db := svcDB(t, svc)
	require.NoError(t, db.Model(&catalogdomain.ProductTemplate{}).
		Where("id = ?", tpl.ID).
		Update("is_active", false).Error)

	_, err := svc.Quote(context.Background(), pricingdomain.QuoteRequest{
		TemplateID: tpl.ID.String(),
		Selections: fullSelections(),
	})
	assert.ErrorIs(t, err, pricingdomain.ErrTemplateInactive)
}

func TestValidate_ReportsProblems(t *testing.T) {
	svc, tpl := setupQuoteService(t)

	sel := fullSelections()
	delete(sel, "vidrio")

	problems, err := svc.Validate(context.Background(), tpl.ID.String(), sel)
	require.NoError(t, err)
	require.NotEmpty(t, problems)
	assert.Contains(t, problems[0], "Vidrio")

	problems, err = svc.Validate(context.Background(), tpl.ID.String(), fullSelections())
	require.NoError(t, err)
	assert.Empty(t, problems)
}

func svcDB(t *testing.T, svc pricingdomain.Service) *gorm.DB {
	t.Helper()
	impl, ok := svc.(*Service)
	require.True(t, ok)
	return impl.db
}
