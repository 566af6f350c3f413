package repository

import (
	"context"
	"regexp"
	"time"

	"catalog-service/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProductRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{
		collection: db.Collection("products"),
	}
}

func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) Find(ctx context.Context, filter bson.M, findOptions *options.FindOptions) ([]*models.Product, error) {
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []*models.Product
	if err = cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductRepository) FindAll(ctx context.Context, limit, skip int64) ([]*models.Product, error) {
	findOptions := options.Find().SetLimit(limit).SetSkip(skip)
	return r.Find(ctx, bson.M{}, findOptions)
}

// FindByReference returns products whose given reference field holds id.
// Works for single-valued fields and the color array alike (mongo matches
// array elements with the same filter shape).
func (r *ProductRepository) FindByReference(ctx context.Context, field string, id primitive.ObjectID) ([]*models.Product, error) {
	return r.Find(ctx, bson.M{field: id}, nil)
}

// FindByRange returns products whose numeric field falls within [min, max].
func (r *ProductRepository) FindByRange(ctx context.Context, field string, min, max float64) ([]*models.Product, error) {
	return r.Find(ctx, bson.M{field: bson.M{"$gte": min, "$lte": max}}, nil)
}

// SearchByName performs a case-insensitive substring search. The query is
// regex-escaped so user input can never change the match semantics.
func (r *ProductRepository) SearchByName(ctx context.Context, query string) ([]*models.Product, error) {
	filter := bson.M{"name": bson.M{"$regex": regexp.QuoteMeta(query), "$options": "i"}}
	return r.Find(ctx, filter, nil)
}

func (r *ProductRepository) Count(ctx context.Context, filter bson.M) (int64, error) {
	return r.collection.CountDocuments(ctx, filter)
}

func (r *ProductRepository) Insert(ctx context.Context, product *models.Product) error {
	_, err := r.collection.InsertOne(ctx, product)
	return err
}

// Update applies a $set patch and returns the post-update document.
func (r *ProductRepository) Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.Product, error) {
	updates["updated_at"] = time.Now().UTC()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Product
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": updates}, opts).Decode(&updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the document. The deletion guard runs before this.
func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}
