package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/raushankrgupta/product-price-compare/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const historyCollection = "searches"

// MongoHistory keeps a log of searches and how each site responded.
// Listings themselves are never stored.
type MongoHistory struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// ConnectMongoHistory connects to uri and verifies the connection
func ConnectMongoHistory(ctx context.Context, uri, database string) (*MongoHistory, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoHistory{
		client:     client,
		collection: client.Database(database).Collection(historyCollection),
	}, nil
}

// Record inserts one search record
func (h *MongoHistory) Record(ctx context.Context, rec models.SearchRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	if _, err := h.collection.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("failed to save search record: %w", err)
	}
	return nil
}

// Recent returns up to limit records, newest first
func (h *MongoHistory) Recent(ctx context.Context, limit int64) ([]models.SearchRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)
	cursor, err := h.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query search history: %w", err)
	}
	defer cursor.Close(ctx)

	records := []models.SearchRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode search history: %w", err)
	}
	return records, nil
}

// Close disconnects from MongoDB
func (h *MongoHistory) Close(ctx context.Context) error {
	return h.client.Disconnect(ctx)
}
