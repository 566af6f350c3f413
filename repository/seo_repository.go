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

type SeoRepository struct {
	collection *mongo.Collection
}

func NewSeoRepository(db *mongo.Database) *SeoRepository {
	return &SeoRepository{
		collection: db.Collection("seos"),
	}
}

func (r *SeoRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Seo, error) {
	var seo models.Seo
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&seo)
	if err != nil {
		return nil, err
	}
	return &seo, nil
}

func (r *SeoRepository) FindByProduct(ctx context.Context, productID primitive.ObjectID) (*models.Seo, error) {
	var seo models.Seo
	err := r.collection.FindOne(ctx, bson.M{"product": productID}).Decode(&seo)
	if err != nil {
		return nil, err
	}
	return &seo, nil
}

func (r *SeoRepository) FindBySlug(ctx context.Context, slug string) (*models.Seo, error) {
	var seo models.Seo
	err := r.collection.FindOne(ctx, bson.M{"slug": slug}).Decode(&seo)
	if err != nil {
		return nil, err
	}
	return &seo, nil
}

func (r *SeoRepository) FindAll(ctx context.Context, limit, skip int64) ([]models.Seo, error) {
	findOptions := options.Find().SetLimit(limit).SetSkip(skip)
	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var seos []models.Seo
	if err = cursor.All(ctx, &seos); err != nil {
		return nil, err
	}
	return seos, nil
}

func (r *SeoRepository) ExistsByProduct(ctx context.Context, productID primitive.ObjectID) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"product": productID}, options.Count().SetLimit(1))
	return count > 0, err
}

func (r *SeoRepository) Insert(ctx context.Context, seo *models.Seo) error {
	_, err := r.collection.InsertOne(ctx, seo)
	return err
}

func (r *SeoRepository) Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.Seo, error) {
	updates["updated_at"] = time.Now().UTC()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Seo
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": updates}, opts).Decode(&updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *SeoRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}
