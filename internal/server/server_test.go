package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	catalogdomain "github.com/tallersur/aberturas/internal/catalog/domain"
	catalogrepository "github.com/tallersur/aberturas/internal/catalog/repository"
	catalogservice "github.com/tallersur/aberturas/internal/catalog/service"
	"github.com/tallersur/aberturas/internal/config"
	"github.com/tallersur/aberturas/internal/observability"
	obsmetrics "github.com/tallersur/aberturas/internal/observability/metrics"
	pricingservice "github.com/tallersur/aberturas/internal/pricing/service"
	"github.com/tallersur/aberturas/internal/providers/pdf"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

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

	cfg := &config.Config{
		AppName:           "Taller Sur",
		HTTPAddr:          ":0",
		DefaultCurrency:   "ARS",
		DefaultTaxPercent: decimal.RequireFromString("21"),
	}

	catalogRepo := catalogrepository.Provide()
	catalogSvc := catalogservice.New(catalogservice.Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  catalogRepo,
	})
	pricingSvc := pricingservice.New(pricingservice.Params{
		DB:          db,
		Log:         zap.NewNop(),
		Config:      cfg,
		CatalogRepo: catalogRepo,
	})

	httpMetrics, err := obsmetrics.NewHTTPMetrics()
	require.NoError(t, err)

	engine := NewEngine(observability.Config{}, httpMetrics)

	return NewServer(ServerParams{
		Gin:        engine,
		Cfg:        cfg,
		CatalogSvc: catalogSvc,
		PricingSvc: pricingSvc,
		PDFSvc:     pdf.New(),
	})
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	s.Engine().ServeHTTP(rec, req)
	return rec
}

func createTemplateRequest() map[string]any {
	return map[string]any{
		"product_class": "VENTANA",
		"line_name":     "Módena",
		"base_price_net": "50000",
		"attributes": []map[string]any{
			{
				"name": "Medidas", "code": "dim", "type": "DIMENSIONS_MM", "display_order": 1,
				"min_width_mm": 400, "max_width_mm": 3000, "min_height_mm": 400, "max_height_mm": 2400,
			},
			{
				"name": "Hojas", "code": "hojas", "type": "SELECT", "display_order": 2,
				"options": []map[string]any{
					{"label": "1 hoja", "code": "1h", "pricing_mode": "ABS", "price_value": "0", "is_default": true},
					{"label": "2 hojas", "code": "2h", "pricing_mode": "ABS", "price_value": "12000"},
				},
			},
			{
				"name": "Vidrio", "code": "vidrio", "type": "SELECT", "display_order": 3,
				"options": []map[string]any{
					{"label": "Float 4mm", "code": "float-4mm", "pricing_mode": "PER_M2", "price_value": "8900", "is_default": true},
				},
			},
			{
				"name": "Contramarco", "code": "contramarco", "type": "BOOLEAN", "is_required": false, "display_order": 4,
				"pricing_rule": map[string]any{"mode": "PERIMETER", "price_value": "1500"},
			},
			{
				"name": "Color", "code": "color", "type": "SELECT", "display_order": 5, "render_variant": "swatches",
				"options": []map[string]any{
					{"label": "Blanco", "code": "blanco", "pricing_mode": "FACTOR", "price_value": "1", "is_default": true, "swatch_hex": "#FFFFFF"},
					{"label": "Negro mate", "code": "negro-mate", "pricing_mode": "FACTOR", "price_value": "1.08", "swatch_hex": "#1C1C1C"},
				},
			},
		},
	}
}

func fullSelectionsBody() map[string]any {
	return map[string]any{
		"selections": map[string]any{
			"dim":         map[string]any{"width_mm": 1300, "height_mm": 1200},
			"hojas":       "2h",
			"vidrio":      "float-4mm",
			"contramarco": true,
			"color":       "negro-mate",
		},
	}
}

func TestHTTP_CreateAndFetchTemplate(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/templates", createTemplateRequest())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		ID   string `json:"id"`
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "modena", created.Code)

	rec = doJSON(t, s, http.MethodGet, "/api/templates/modena", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var fetched struct {
		Attributes []struct {
			Code string `json:"code"`
		} `json:"attributes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	assert.Len(t, fetched.Attributes, 5)

	rec = doJSON(t, s, http.MethodGet, "/api/templates", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestHTTP_DuplicateTemplateConflicts(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/templates", createTemplateRequest())
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/api/templates", createTemplateRequest())
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
}

func TestHTTP_QuoteScenario(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/templates", createTemplateRequest())
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/api/templates/modena/quote", fullSelectionsBody())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var quote struct {
		QuoteRef string `json:"quote_ref"`
		Price    struct {
			Net   string `json:"net"`
			Tax   string `json:"tax"`
			Gross string `json:"gross"`
		} `json:"price"`
		Calc struct {
			AreaM2 string `json:"area_m2"`
		} `json:"calc"`
		Breakdown []map[string]any `json:"breakdown"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &quote))

	assert.Contains(t, rec.Body.String(), `"price"`)
	assert.NotContains(t, rec.Body.String(), `"totals"`)

	assert.NotEmpty(t, quote.QuoteRef)
	assert.Equal(t, "90054.72", quote.Price.Net)
	assert.Equal(t, "18911.4912", quote.Price.Tax)
	assert.Equal(t, "108966.2112", quote.Price.Gross)
	assert.Equal(t, "1.56", quote.Calc.AreaM2)
	assert.Len(t, quote.Breakdown, 5)
}

func TestHTTP_ValidateEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/templates", createTemplateRequest())
	require.Equal(t, http.StatusCreated, rec.Code)

	body := fullSelectionsBody()
	delete(body["selections"].(map[string]any), "vidrio")

	rec = doJSON(t, s, http.MethodPost, "/api/templates/modena/validate", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var result struct {
		Valid    bool     `json:"valid"`
		Problems []string `json:"problems"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.False(t, result.Valid)
	require.NotEmpty(t, result.Problems)
	assert.Contains(t, result.Problems[0], "Vidrio")
}

func TestHTTP_QuoteRejectsInvalidSelections(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/templates", createTemplateRequest())
	require.Equal(t, http.StatusCreated, rec.Code)

	body := fullSelectionsBody()
	delete(body["selections"].(map[string]any), "vidrio")

	rec = doJSON(t, s, http.MethodPost, "/api/templates/modena/quote", body)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())

	var resp struct {
		Error struct {
			Type   string `json:"type"`
			Errors []struct {
				Message string `json:"message"`
			} `json:"errors"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "invalid_selections", resp.Error.Type)
	require.NotEmpty(t, resp.Error.Errors)
}

func TestHTTP_QuoteUnknownTemplate(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/templates/desconocida/quote", fullSelectionsBody())
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHTTP_QuotePDF(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/templates", createTemplateRequest())
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/api/templates/modena/quote/pdf", fullSelectionsBody())
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.NotZero(t, rec.Body.Len())
}

func TestHTTP_Health(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
