package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	catalogdomain "github.com/tallersur/aberturas/internal/catalog/domain"
)

func (s *Server) ListTemplates(c *gin.Context) {
	filter := catalogdomain.ListFilter{
		ProductClass:    c.Query("product_class"),
		IncludeInactive: c.Query("include_inactive") == "true",
	}

	items, err := s.catalogSvc.List(c.Request.Context(), filter)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"templates": items})
}

func (s *Server) CreateTemplate(c *gin.Context) {
	var req catalogdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	created, err := s.catalogSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (s *Server) GetTemplateByID(c *gin.Context) {
	id := c.Param("id")

	tpl, err := s.catalogSvc.Get(c.Request.Context(), id)
	if errors.Is(err, catalogdomain.ErrInvalidID) {
		// Seeded fixtures are usually addressed by code.
		tpl, err = s.catalogSvc.GetByCode(c.Request.Context(), id)
	}
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, tpl)
}
