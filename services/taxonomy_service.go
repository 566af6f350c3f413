package services

import (
	"context"
	"strings"
	"time"

	apperrors "catalog-service/common/errors"
	"catalog-service/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// TaxonomyStore is the persistence surface shared by all taxonomy kinds.
type TaxonomyStore interface {
	ExistenceChecker
	FindByID(ctx context.Context, kind models.TaxonomyKind, id primitive.ObjectID) (*models.TaxonomyEntity, error)
	FindAll(ctx context.Context, kind models.TaxonomyKind, limit, skip int64) ([]models.TaxonomyEntity, error)
	Insert(ctx context.Context, kind models.TaxonomyKind, entity *models.TaxonomyEntity) error
	Update(ctx context.Context, kind models.TaxonomyKind, id primitive.ObjectID, updates bson.M) (*models.TaxonomyEntity, error)
	Delete(ctx context.Context, kind models.TaxonomyKind, id primitive.ObjectID) (bool, error)
}

// TaxonomyCreateRequest covers every kind; the parent fields apply only to
// the kinds that carry them.
type TaxonomyCreateRequest struct {
	Name        string
	Structure   *primitive.ObjectID
	Finish      *primitive.ObjectID
	SuitableFor []primitive.ObjectID
}

// TaxonomyUpdateRequest is a partial patch.
type TaxonomyUpdateRequest struct {
	Name        *string
	Structure   *primitive.ObjectID
	Finish      *primitive.ObjectID
	SuitableFor []primitive.ObjectID
}

// TaxonomyService handles CRUD for all thirteen reference tables through one
// code path, with parent-reference validation and guarded deletes.
type TaxonomyService struct {
	store TaxonomyStore
	guard *DeletionGuard
}

func NewTaxonomyService(store TaxonomyStore, guard *DeletionGuard) *TaxonomyService {
	return &TaxonomyService{store: store, guard: guard}
}

func (s *TaxonomyService) Create(ctx context.Context, kind models.TaxonomyKind, req TaxonomyCreateRequest) (*models.TaxonomyEntity, error) {
	name := strings.TrimSpace(req.Name)
	if len(name) < 2 {
		return nil, apperrors.Validation("name must be at least 2 characters")
	}

	entity := &models.TaxonomyEntity{
		ID:   primitive.NewObjectID(),
		Name: name,
	}

	switch kind {
	case models.KindSubstructure:
		if err := s.requireParent(ctx, models.KindStructure, req.Structure); err != nil {
			return nil, err
		}
		entity.Structure = req.Structure
	case models.KindSubfinish:
		if err := s.requireParent(ctx, models.KindFinish, req.Finish); err != nil {
			return nil, err
		}
		entity.Finish = req.Finish
	case models.KindSubsuitable:
		if err := s.requireParentSet(ctx, models.KindSuitableFor, req.SuitableFor); err != nil {
			return nil, err
		}
		entity.SuitableFor = dedupeIDs(req.SuitableFor)
	}

	now := time.Now().UTC()
	entity.CreatedAt = now
	entity.UpdatedAt = now

	if err := s.store.Insert(ctx, kind, entity); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.Validation(string(kind) + " with this name already exists")
		}
		return nil, apperrors.Internal(err)
	}
	return entity, nil
}

func (s *TaxonomyService) Update(ctx context.Context, kind models.TaxonomyKind, id primitive.ObjectID, req TaxonomyUpdateRequest) (*models.TaxonomyEntity, error) {
	updates := bson.M{}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if len(name) < 2 {
			return nil, apperrors.Validation("name must be at least 2 characters")
		}
		updates["name"] = name
	}

	if req.Structure != nil && kind == models.KindSubstructure {
		if err := s.requireParent(ctx, models.KindStructure, req.Structure); err != nil {
			return nil, err
		}
		updates["structure"] = *req.Structure
	}
	if req.Finish != nil && kind == models.KindSubfinish {
		if err := s.requireParent(ctx, models.KindFinish, req.Finish); err != nil {
			return nil, err
		}
		updates["finish"] = *req.Finish
	}
	if req.SuitableFor != nil && kind == models.KindSubsuitable {
		if err := s.requireParentSet(ctx, models.KindSuitableFor, req.SuitableFor); err != nil {
			return nil, err
		}
		updates["suitablefor"] = dedupeIDs(req.SuitableFor)
	}

	if len(updates) == 0 {
		return nil, apperrors.Validation("no update fields provided")
	}

	updated, err := s.store.Update(ctx, kind, id, updates)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NotFound(string(kind))
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.Validation(string(kind) + " with this name already exists")
		}
		return nil, apperrors.Internal(err)
	}
	return updated, nil
}

func (s *TaxonomyService) Delete(ctx context.Context, kind models.TaxonomyKind, id primitive.ObjectID) error {
	if err := s.guard.Check(ctx, string(kind), id); err != nil {
		return err
	}
	deleted, err := s.store.Delete(ctx, kind, id)
	if err != nil {
		return apperrors.Internal(err)
	}
	if !deleted {
		return apperrors.NotFound(string(kind))
	}
	return nil
}

func (s *TaxonomyService) GetByID(ctx context.Context, kind models.TaxonomyKind, id primitive.ObjectID) (*models.TaxonomyEntity, error) {
	entity, err := s.store.FindByID(ctx, kind, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NotFound(string(kind))
		}
		return nil, apperrors.Internal(err)
	}
	return entity, nil
}

func (s *TaxonomyService) List(ctx context.Context, kind models.TaxonomyKind, limit, skip int64) ([]models.TaxonomyEntity, error) {
	entities, err := s.store.FindAll(ctx, kind, limit, skip)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return entities, nil
}

func (s *TaxonomyService) requireParent(ctx context.Context, parent models.TaxonomyKind, id *primitive.ObjectID) error {
	if id == nil {
		return apperrors.Validation(string(parent) + " is required")
	}
	exists, err := s.store.ExistsByID(ctx, parent, *id)
	if err != nil {
		return apperrors.Internal(err)
	}
	if !exists {
		return apperrors.InvalidReferences([]string{string(parent)})
	}
	return nil
}

func (s *TaxonomyService) requireParentSet(ctx context.Context, parent models.TaxonomyKind, ids []primitive.ObjectID) error {
	if len(ids) == 0 {
		return apperrors.Validation("at least one " + string(parent) + " is required")
	}
	deduped := dedupeIDs(ids)
	count, err := s.store.CountByIDs(ctx, parent, deduped)
	if err != nil {
		return apperrors.Internal(err)
	}
	if count != int64(len(deduped)) {
		return apperrors.InvalidReferences([]string{string(parent)})
	}
	return nil
}
