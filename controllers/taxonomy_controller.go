package controllers

import (
	"net/http"
	"strings"

	apperrors "catalog-service/common/errors"
	"catalog-service/models"
	"catalog-service/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// taxonomyPayload is the JSON body shared by all thirteen reference tables.
// The parent fields are only honored by the kinds that carry them.
type taxonomyPayload struct {
	Name        string   `json:"name"`
	Structure   string   `json:"structure"`
	Finish      string   `json:"finish"`
	SuitableFor []string `json:"suitablefor"`
}

// TaxonomyController serves every reference table with one handler set; the
// kind is bound at route registration time.
type TaxonomyController struct {
	service   TaxonomyService
	validator *RequestValidator
}

func NewTaxonomyController(service TaxonomyService, validator *RequestValidator) *TaxonomyController {
	return &TaxonomyController{service: service, validator: validator}
}

func (tc *TaxonomyController) Create(kind models.TaxonomyKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload taxonomyPayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			respondError(c, apperrors.Validation("invalid request body"))
			return
		}
		req, err := payload.toCreateRequest()
		if err != nil {
			respondError(c, err)
			return
		}

		entity, err := tc.service.Create(c.Request.Context(), kind, req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "data": entity})
	}
}

func (tc *TaxonomyController) Update(kind models.TaxonomyKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c)
		if !ok {
			return
		}
		var payload taxonomyPayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			respondError(c, apperrors.Validation("invalid request body"))
			return
		}
		req, err := payload.toUpdateRequest()
		if err != nil {
			respondError(c, err)
			return
		}

		entity, err := tc.service.Update(c.Request.Context(), kind, id, req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": entity})
	}
}

func (tc *TaxonomyController) Delete(kind models.TaxonomyKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c)
		if !ok {
			return
		}
		if err := tc.service.Delete(c.Request.Context(), kind, id); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Deleted successfully"})
	}
}

func (tc *TaxonomyController) GetByID(kind models.TaxonomyKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c)
		if !ok {
			return
		}
		entity, err := tc.service.GetByID(c.Request.Context(), kind, id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": entity})
	}
}

func (tc *TaxonomyController) List(kind models.TaxonomyKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, skip, err := tc.validator.ParsePagination(c, 200)
		if err != nil {
			respondError(c, err)
			return
		}
		entities, err := tc.service.List(c.Request.Context(), kind, limit, skip)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": entities, "total": len(entities)})
	}
}

func (p taxonomyPayload) toCreateRequest() (services.TaxonomyCreateRequest, error) {
	req := services.TaxonomyCreateRequest{Name: strings.TrimSpace(p.Name)}

	structure, err := optionalID("structure", p.Structure)
	if err != nil {
		return req, err
	}
	req.Structure = structure

	finish, err := optionalID("finish", p.Finish)
	if err != nil {
		return req, err
	}
	req.Finish = finish

	suitable, err := idList("suitablefor", p.SuitableFor)
	if err != nil {
		return req, err
	}
	req.SuitableFor = suitable
	return req, nil
}

func (p taxonomyPayload) toUpdateRequest() (services.TaxonomyUpdateRequest, error) {
	var req services.TaxonomyUpdateRequest
	if strings.TrimSpace(p.Name) != "" {
		name := strings.TrimSpace(p.Name)
		req.Name = &name
	}

	structure, err := optionalID("structure", p.Structure)
	if err != nil {
		return req, err
	}
	req.Structure = structure

	finish, err := optionalID("finish", p.Finish)
	if err != nil {
		return req, err
	}
	req.Finish = finish

	suitable, err := idList("suitablefor", p.SuitableFor)
	if err != nil {
		return req, err
	}
	req.SuitableFor = suitable
	return req, nil
}

func optionalID(field, raw string) (*primitive.ObjectID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return nil, apperrors.Validation(field + " must be a valid id")
	}
	return &id, nil
}

func idList(field string, raw []string) ([]primitive.ObjectID, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, v := range raw {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		id, err := primitive.ObjectIDFromHex(v)
		if err != nil {
			return nil, apperrors.Validation("each " + field + " must be a valid id")
		}
		ids = append(ids, id)
	}
	return ids, nil
}
