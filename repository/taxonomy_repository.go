package repository

import (
	"context"
	"time"

	"catalog-service/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TaxonomyRepository serves one taxonomy collection. The thirteen kinds
// share a document shape, so one repository type covers all of them.
type TaxonomyRepository struct {
	kind       models.TaxonomyKind
	collection *mongo.Collection
}

func NewTaxonomyRepository(db *mongo.Database, kind models.TaxonomyKind) *TaxonomyRepository {
	return &TaxonomyRepository{
		kind:       kind,
		collection: db.Collection(kind.Collection()),
	}
}

func (r *TaxonomyRepository) Kind() models.TaxonomyKind {
	return r.kind
}

func (r *TaxonomyRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.TaxonomyEntity, error) {
	var entity models.TaxonomyEntity
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&entity)
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

func (r *TaxonomyRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.TaxonomyEntity, error) {
	if len(ids) == 0 {
		return []models.TaxonomyEntity{}, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entities []models.TaxonomyEntity
	if err = cursor.All(ctx, &entities); err != nil {
		return nil, err
	}
	return entities, nil
}

func (r *TaxonomyRepository) FindAll(ctx context.Context, limit, skip int64) ([]models.TaxonomyEntity, error) {
	findOptions := options.Find().SetLimit(limit).SetSkip(skip)
	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entities []models.TaxonomyEntity
	if err = cursor.All(ctx, &entities); err != nil {
		return nil, err
	}
	return entities, nil
}

func (r *TaxonomyRepository) ExistsByID(ctx context.Context, id primitive.ObjectID) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	return count > 0, err
}

// CountByIDs returns how many of the given ids exist. Comparing the result
// to the input cardinality detects invalid ids in one round trip.
func (r *TaxonomyRepository) CountByIDs(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	return r.collection.CountDocuments(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (r *TaxonomyRepository) Insert(ctx context.Context, entity *models.TaxonomyEntity) error {
	_, err := r.collection.InsertOne(ctx, entity)
	return err
}

func (r *TaxonomyRepository) Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.TaxonomyEntity, error) {
	updates["updated_at"] = time.Now().UTC()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.TaxonomyEntity
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": updates}, opts).Decode(&updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *TaxonomyRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}

// TaxonomySet bundles one repository per taxonomy kind and dispatches the
// existence checks the reference validator issues.
type TaxonomySet struct {
	repos map[models.TaxonomyKind]*TaxonomyRepository
}

func NewTaxonomySet(db *mongo.Database) *TaxonomySet {
	repos := make(map[models.TaxonomyKind]*TaxonomyRepository, len(models.AllTaxonomyKinds()))
	for _, kind := range models.AllTaxonomyKinds() {
		repos[kind] = NewTaxonomyRepository(db, kind)
	}
	return &TaxonomySet{repos: repos}
}

// Repo returns the repository for kind, or nil for an unknown kind.
func (s *TaxonomySet) Repo(kind models.TaxonomyKind) *TaxonomyRepository {
	return s.repos[kind]
}

func (s *TaxonomySet) ExistsByID(ctx context.Context, kind models.TaxonomyKind, id primitive.ObjectID) (bool, error) {
	return s.repos[kind].ExistsByID(ctx, id)
}

func (s *TaxonomySet) CountByIDs(ctx context.Context, kind models.TaxonomyKind, ids []primitive.ObjectID) (int64, error) {
	return s.repos[kind].CountByIDs(ctx, ids)
}

func (s *TaxonomySet) FindByID(ctx context.Context, kind models.TaxonomyKind, id primitive.ObjectID) (*models.TaxonomyEntity, error) {
	return s.repos[kind].FindByID(ctx, id)
}

func (s *TaxonomySet) FindByIDs(ctx context.Context, kind models.TaxonomyKind, ids []primitive.ObjectID) ([]models.TaxonomyEntity, error) {
	return s.repos[kind].FindByIDs(ctx, ids)
}

func (s *TaxonomySet) FindAll(ctx context.Context, kind models.TaxonomyKind, limit, skip int64) ([]models.TaxonomyEntity, error) {
	return s.repos[kind].FindAll(ctx, limit, skip)
}

func (s *TaxonomySet) Insert(ctx context.Context, kind models.TaxonomyKind, entity *models.TaxonomyEntity) error {
	return s.repos[kind].Insert(ctx, entity)
}

func (s *TaxonomySet) Update(ctx context.Context, kind models.TaxonomyKind, id primitive.ObjectID, updates bson.M) (*models.TaxonomyEntity, error) {
	return s.repos[kind].Update(ctx, id, updates)
}

func (s *TaxonomySet) Delete(ctx context.Context, kind models.TaxonomyKind, id primitive.ObjectID) (bool, error) {
	return s.repos[kind].Delete(ctx, id)
}
