package database

import (
	"context"
	"fmt"
	"time"

	"catalog-service/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

var (
	MongoClient *mongo.Client
	DB          *mongo.Database
)

// ConnectWithConfig connects to MongoDB using the provided URI and database name.
func ConnectWithConfig(mongoURL, dbName string) error {
	timeoutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(mongoURL)

	client, err := mongo.Connect(timeoutCtx, clientOptions)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(timeoutCtx, nil); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	MongoClient = client
	DB = client.Database(dbName)
	zap.L().Info("Connected to MongoDB", zap.String("database", dbName))
	return nil
}

// EnsureIndexes creates the unique indexes the write pipeline relies on:
// product and taxonomy names, the SEO slug, and the one-SEO-per-product
// constraint. Reference-field indexes keep the deletion guard scans cheap.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	if _, err := db.Collection("products").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "substructure", Value: 1}}},
		{Keys: bson.D{{Key: "content", Value: 1}}},
		{Keys: bson.D{{Key: "design", Value: 1}}},
		{Keys: bson.D{{Key: "subfinish", Value: 1}}},
		{Keys: bson.D{{Key: "subsuitable", Value: 1}}},
		{Keys: bson.D{{Key: "vendor", Value: 1}}},
		{Keys: bson.D{{Key: "groupcode", Value: 1}}},
		{Keys: bson.D{{Key: "color", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("failed to create product indexes: %w", err)
	}

	for _, kind := range models.AllTaxonomyKinds() {
		if _, err := db.Collection(kind.Collection()).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		}); err != nil {
			return fmt.Errorf("failed to create %s index: %w", kind, err)
		}
	}

	if _, err := db.Collection("seos").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "product", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
	}); err != nil {
		return fmt.Errorf("failed to create seo indexes: %w", err)
	}

	return nil
}

// Close disconnects from MongoDB
func Close() error {
	disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer disconnectCancel()

	if err := MongoClient.Disconnect(disconnectCtx); err != nil {
		return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
	}

	zap.L().Info("Disconnected from MongoDB")
	return nil
}
