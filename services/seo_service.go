package services

import (
	"context"
	"strings"
	"time"

	apperrors "catalog-service/common/errors"
	"catalog-service/models"

	"github.com/gosimple/slug"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// SeoStore is the persistence surface for SEO records.
type SeoStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Seo, error)
	FindByProduct(ctx context.Context, productID primitive.ObjectID) (*models.Seo, error)
	FindBySlug(ctx context.Context, slug string) (*models.Seo, error)
	FindAll(ctx context.Context, limit, skip int64) ([]models.Seo, error)
	ExistsByProduct(ctx context.Context, productID primitive.ObjectID) (bool, error)
	Insert(ctx context.Context, seo *models.Seo) error
	Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.Seo, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

// SeoService manages the one-to-one SEO record per product.
type SeoService struct {
	seos     SeoStore
	products ProductStore
}

func NewSeoService(seos SeoStore, products ProductStore) *SeoService {
	return &SeoService{seos: seos, products: products}
}

// Create inserts an SEO record for an existing product. A product carries at
// most one record, and slugs are unique across all records.
func (s *SeoService) Create(ctx context.Context, seo *models.Seo) (*models.Seo, error) {
	if seo.Product.IsZero() {
		return nil, apperrors.Validation("product is required")
	}

	product, err := s.products.FindByID(ctx, seo.Product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.Validation("product not found")
		}
		return nil, apperrors.Internal(err)
	}

	taken, err := s.seos.ExistsByProduct(ctx, seo.Product)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if taken {
		return nil, apperrors.Validation("SEO data already exists for this product")
	}

	if strings.TrimSpace(seo.Slug) == "" {
		seo.Slug = slug.Make(product.Name)
	} else {
		seo.Slug = slug.Make(seo.Slug)
	}

	seo.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	seo.CreatedAt = now
	seo.UpdatedAt = now

	if err := s.seos.Insert(ctx, seo); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.Validation("slug already in use")
		}
		return nil, apperrors.Internal(err)
	}
	return seo, nil
}

func (s *SeoService) Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.Seo, error) {
	if len(updates) == 0 {
		return nil, apperrors.Validation("no update fields provided")
	}
	delete(updates, "_id")
	delete(updates, "product") // the product binding is immutable

	if raw, ok := updates["slug"]; ok {
		if str, ok := raw.(string); ok && strings.TrimSpace(str) != "" {
			updates["slug"] = slug.Make(str)
		} else {
			delete(updates, "slug")
		}
	}

	updated, err := s.seos.Update(ctx, id, updates)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NotFound("seo")
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.Validation("slug already in use")
		}
		return nil, apperrors.Internal(err)
	}
	return updated, nil
}

func (s *SeoService) Delete(ctx context.Context, id primitive.ObjectID) error {
	deleted, err := s.seos.Delete(ctx, id)
	if err != nil {
		return apperrors.Internal(err)
	}
	if !deleted {
		return apperrors.NotFound("seo")
	}
	return nil
}

func (s *SeoService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Seo, error) {
	seo, err := s.seos.FindByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NotFound("seo")
		}
		return nil, apperrors.Internal(err)
	}
	return seo, nil
}

func (s *SeoService) GetBySlug(ctx context.Context, slugValue string) (*models.Seo, error) {
	seo, err := s.seos.FindBySlug(ctx, slugValue)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NotFound("seo")
		}
		return nil, apperrors.Internal(err)
	}
	return seo, nil
}

func (s *SeoService) List(ctx context.Context, limit, skip int64) ([]models.Seo, error) {
	seos, err := s.seos.FindAll(ctx, limit, skip)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return seos, nil
}
