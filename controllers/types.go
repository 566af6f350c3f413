package controllers

import (
	"context"

	"catalog-service/models"
	"catalog-service/services"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductService is the pipeline surface the product controller drives.
type ProductService interface {
	Create(ctx context.Context, req services.ProductCreateRequest, files map[services.Slot]services.Upload) (*services.ProductDetail, error)
	Update(ctx context.Context, id primitive.ObjectID, req services.ProductUpdateRequest, files map[services.Slot]services.Upload) (*services.ProductDetail, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*services.ProductDetail, error)
	GetBySlug(ctx context.Context, slug string) (*services.ProductDetail, error)
	List(ctx context.Context, limit, skip int64) ([]*services.ProductDetail, error)
	Search(ctx context.Context, query string) ([]*models.Product, error)
	ListByReference(ctx context.Context, field string, id primitive.ObjectID) ([]*models.Product, error)
	ListByRange(ctx context.Context, field string, value float64) ([]*models.Product, error)
}

// TaxonomyService is the surface the taxonomy controller drives.
type TaxonomyService interface {
	Create(ctx context.Context, kind models.TaxonomyKind, req services.TaxonomyCreateRequest) (*models.TaxonomyEntity, error)
	Update(ctx context.Context, kind models.TaxonomyKind, id primitive.ObjectID, req services.TaxonomyUpdateRequest) (*models.TaxonomyEntity, error)
	Delete(ctx context.Context, kind models.TaxonomyKind, id primitive.ObjectID) error
	GetByID(ctx context.Context, kind models.TaxonomyKind, id primitive.ObjectID) (*models.TaxonomyEntity, error)
	List(ctx context.Context, kind models.TaxonomyKind, limit, skip int64) ([]models.TaxonomyEntity, error)
}

// SeoService is the surface the SEO controller drives.
type SeoService interface {
	Create(ctx context.Context, seo *models.Seo) (*models.Seo, error)
	Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.Seo, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Seo, error)
	GetBySlug(ctx context.Context, slug string) (*models.Seo, error)
	List(ctx context.Context, limit, skip int64) ([]models.Seo, error)
}
