package controllers

import (
	"net/http"
	"strconv"
	"strings"

	apperrors "catalog-service/common/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProductController exposes the product pipeline over HTTP. All invariants
// live in the service layer; the controller only parses, dispatches, and
// maps error kinds to statuses.
type ProductController struct {
	service   ProductService
	validator *RequestValidator
}

func NewProductController(service ProductService, validator *RequestValidator) *ProductController {
	return &ProductController{service: service, validator: validator}
}

func (pc *ProductController) Create(c *gin.Context) {
	req, files, closer, err := pc.validator.ParseCreateProduct(c)
	if err != nil {
		respondError(c, err)
		return
	}
	defer closer()

	product, err := pc.service.Create(c.Request.Context(), req, files)
	if err != nil {
		zap.L().Warn("Product create rejected", zap.Error(err))
		respondError(c, err)
		return
	}

	zap.L().Info("Product created",
		zap.String("id", product.ID.Hex()),
		zap.String("name", product.Name),
	)
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": product})
}

func (pc *ProductController) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	req, files, closer, err := pc.validator.ParseUpdateProduct(c)
	if err != nil {
		respondError(c, err)
		return
	}
	defer closer()

	product, err := pc.service.Update(c.Request.Context(), id, req, files)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": product})
}

func (pc *ProductController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := pc.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Deleted successfully"})
}

func (pc *ProductController) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	product, err := pc.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": product})
}

// BySlug resolves an SEO slug to its product.
func (pc *ProductController) BySlug(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		respondError(c, apperrors.Validation("slug is required"))
		return
	}
	product, err := pc.service.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": product})
}

func (pc *ProductController) List(c *gin.Context) {
	limit, skip, err := pc.validator.ParsePagination(c, 100)
	if err != nil {
		respondError(c, err)
		return
	}
	products, err := pc.service.List(c.Request.Context(), limit, skip)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": products, "total": len(products)})
}

func (pc *ProductController) Search(c *gin.Context) {
	products, err := pc.service.Search(c.Request.Context(), c.Param("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": products})
}

// ByReference returns products referencing the taxonomy id in the route.
// The field name is fixed by the route registration, never caller-supplied.
func (pc *ProductController) ByReference(field string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c)
		if !ok {
			return
		}
		products, err := pc.service.ListByReference(c.Request.Context(), field, id)
		if err != nil {
			respondError(c, err)
			return
		}
		if len(products) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "No products found for this " + field})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": products})
	}
}

// ByRange returns products whose numeric field is within 15% of the value.
func (pc *ProductController) ByRange(field string) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, err := strconv.ParseFloat(c.Param("value"), 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid " + field + " value"})
			return
		}
		products, err := pc.service.ListByRange(c.Request.Context(), field, value)
		if err != nil {
			respondError(c, err)
			return
		}
		if len(products) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "No products found in range"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": products})
	}
}
