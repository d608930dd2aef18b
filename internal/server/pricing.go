package server

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	pricingdomain "github.com/tallersur/aberturas/internal/pricing/domain"
)

type validateRequest struct {
	Selections pricingdomain.Selections `json:"selections"`
}

func (s *Server) ValidateSelections(c *gin.Context) {
	var req validateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	problems, err := s.pricingSvc.Validate(c.Request.Context(), c.Param("id"), req.Selections)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":    len(problems) == 0,
		"problems": problems,
	})
}

func (s *Server) QuoteTemplate(c *gin.Context) {
	quote, ok := s.quoteFromRequest(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, quote)
}

func (s *Server) QuoteTemplatePDF(c *gin.Context) {
	quote, ok := s.quoteFromRequest(c)
	if !ok {
		return
	}

	tpl, err := s.catalogSvc.Get(c.Request.Context(), quote.TemplateID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	doc := buildQuoteDocument(s.cfg.AppName, quote, tpl, time.Now())
	reader, err := s.pdfSvc.GenerateQuote(c.Request.Context(), doc)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	content, err := io.ReadAll(reader)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="presupuesto-`+quote.QuoteRef+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", content)
}

func (s *Server) quoteFromRequest(c *gin.Context) (*pricingdomain.Quote, bool) {
	var req pricingdomain.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return nil, false
	}
	req.TemplateID = c.Param("id")

	quote, err := s.pricingSvc.Quote(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return nil, false
	}

	return quote, true
}
