package controllers

import (
	"net/http"
	"strings"

	apperrors "catalog-service/common/errors"
	"catalog-service/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// SeoController serves the per-product SEO records.
type SeoController struct {
	service   SeoService
	validator *RequestValidator
}

func NewSeoController(service SeoService, validator *RequestValidator) *SeoController {
	return &SeoController{service: service, validator: validator}
}

func (sc *SeoController) Create(c *gin.Context) {
	var seo models.Seo
	if err := c.ShouldBindJSON(&seo); err != nil {
		respondError(c, apperrors.Validation("invalid request body"))
		return
	}
	created, err := sc.service.Create(c.Request.Context(), &seo)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": created})
}

func (sc *SeoController) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var updates bson.M
	if err := c.ShouldBindJSON(&updates); err != nil {
		respondError(c, apperrors.Validation("invalid request body"))
		return
	}
	updated, err := sc.service.Update(c.Request.Context(), id, updates)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": updated})
}

func (sc *SeoController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := sc.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Deleted successfully"})
}

func (sc *SeoController) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	seo, err := sc.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": seo})
}

func (sc *SeoController) GetBySlug(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		respondError(c, apperrors.Validation("slug is required"))
		return
	}
	seo, err := sc.service.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": seo})
}

func (sc *SeoController) List(c *gin.Context) {
	limit, skip, err := sc.validator.ParsePagination(c, 100)
	if err != nil {
		respondError(c, err)
		return
	}
	seos, err := sc.service.List(c.Request.Context(), limit, skip)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": seos, "total": len(seos)})
}
