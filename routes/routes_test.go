package routes_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"catalog-service/controllers"
	"catalog-service/models"
	"catalog-service/routes"
	"catalog-service/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ---- stub services (every call succeeds with an empty result) ----

type stubProducts struct{}

func (stubProducts) Create(_ context.Context, _ services.ProductCreateRequest, _ map[services.Slot]services.Upload) (*services.ProductDetail, error) {
	return &services.ProductDetail{}, nil
}
func (stubProducts) Update(_ context.Context, _ primitive.ObjectID, _ services.ProductUpdateRequest, _ map[services.Slot]services.Upload) (*services.ProductDetail, error) {
	return &services.ProductDetail{}, nil
}
func (stubProducts) Delete(_ context.Context, _ primitive.ObjectID) error { return nil }
func (stubProducts) GetByID(_ context.Context, _ primitive.ObjectID) (*services.ProductDetail, error) {
	return &services.ProductDetail{}, nil
}
func (stubProducts) GetBySlug(_ context.Context, _ string) (*services.ProductDetail, error) {
	return &services.ProductDetail{}, nil
}
func (stubProducts) List(_ context.Context, _, _ int64) ([]*services.ProductDetail, error) {
	return nil, nil
}
func (stubProducts) Search(_ context.Context, _ string) ([]*models.Product, error) {
	return nil, nil
}
func (stubProducts) ListByReference(_ context.Context, _ string, _ primitive.ObjectID) ([]*models.Product, error) {
	return []*models.Product{{}}, nil
}
func (stubProducts) ListByRange(_ context.Context, _ string, _ float64) ([]*models.Product, error) {
	return []*models.Product{{}}, nil
}

type stubTaxonomies struct{}

func (stubTaxonomies) Create(_ context.Context, _ models.TaxonomyKind, _ services.TaxonomyCreateRequest) (*models.TaxonomyEntity, error) {
	return &models.TaxonomyEntity{}, nil
}
func (stubTaxonomies) Update(_ context.Context, _ models.TaxonomyKind, _ primitive.ObjectID, _ services.TaxonomyUpdateRequest) (*models.TaxonomyEntity, error) {
	return &models.TaxonomyEntity{}, nil
}
func (stubTaxonomies) Delete(_ context.Context, _ models.TaxonomyKind, _ primitive.ObjectID) error {
	return nil
}
func (stubTaxonomies) GetByID(_ context.Context, _ models.TaxonomyKind, _ primitive.ObjectID) (*models.TaxonomyEntity, error) {
	return &models.TaxonomyEntity{}, nil
}
func (stubTaxonomies) List(_ context.Context, _ models.TaxonomyKind, _, _ int64) ([]models.TaxonomyEntity, error) {
	return nil, nil
}

type stubSeos struct{}

func (stubSeos) Create(_ context.Context, _ *models.Seo) (*models.Seo, error) {
	return &models.Seo{}, nil
}
func (stubSeos) Update(_ context.Context, _ primitive.ObjectID, _ bson.M) (*models.Seo, error) {
	return &models.Seo{}, nil
}
func (stubSeos) Delete(_ context.Context, _ primitive.ObjectID) error { return nil }
func (stubSeos) GetByID(_ context.Context, _ primitive.ObjectID) (*models.Seo, error) {
	return &models.Seo{}, nil
}
func (stubSeos) GetBySlug(_ context.Context, _ string) (*models.Seo, error) {
	return &models.Seo{}, nil
}
func (stubSeos) List(_ context.Context, _, _ int64) ([]models.Seo, error) { return nil, nil }

func setupEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	validator := controllers.NewRequestValidator()
	routes.RegisterRoutes(r,
		controllers.NewProductController(stubProducts{}, validator),
		controllers.NewTaxonomyController(stubTaxonomies{}, validator),
		controllers.NewSeoController(stubSeos{}, validator),
	)
	return r
}

func TestRangeRoutesRegisteredForEveryNumericField(t *testing.T) {
	r := setupEngine()

	for _, field := range []string{"gsm", "oz", "cm", "inch", "quantity"} {
		req := httptest.NewRequest(http.MethodGet, "/api/product/"+field+"/240", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, field)
	}
}

func TestProductLookupRoutesRegistered(t *testing.T) {
	r := setupEngine()
	id := primitive.NewObjectID().Hex()

	paths := []string{
		"/api/product/view/" + id,
		"/api/product/slug/navy-twill",
		"/api/product/search/twill",
		"/api/product/category/" + id,
		"/api/product/vendor/" + id,
	}
	for _, path := range paths {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestTaxonomyAndSeoRoutesRegistered(t *testing.T) {
	r := setupEngine()

	for _, kind := range models.AllTaxonomyKinds() {
		req := httptest.NewRequest(http.MethodGet, "/api/"+string(kind)+"/", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, string(kind))
	}

	req := httptest.NewRequest(http.MethodGet, "/api/seo/slug/navy-twill", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
