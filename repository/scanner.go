package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReferenceScanner counts live references to an id inside an arbitrary
// collection field. The deletion guard uses it to scan dependents without
// knowing collection layouts.
type ReferenceScanner struct {
	db *mongo.Database
}

func NewReferenceScanner(db *mongo.Database) *ReferenceScanner {
	return &ReferenceScanner{db: db}
}

func (s *ReferenceScanner) CountReferences(ctx context.Context, collection, field string, id primitive.ObjectID) (int64, error) {
	return s.db.Collection(collection).CountDocuments(ctx,
		bson.M{field: id}, options.Count().SetLimit(1))
}
