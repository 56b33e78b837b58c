package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"advisory-api/internal/models"
	"advisory-api/internal/repositories"
)

// MongoSnapshotRepository implements SnapshotRepository using MongoDB
type MongoSnapshotRepository struct {
	collection *mongo.Collection
}

// NewSnapshotRepository creates a new MongoDB snapshot repository
func NewSnapshotRepository(db *mongo.Database) repositories.SnapshotRepository {
	return &MongoSnapshotRepository{
		collection: db.Collection("summary_snapshots"),
	}
}

// Create inserts a snapshot
func (r *MongoSnapshotRepository) Create(ctx context.Context, snapshot *models.Snapshot) error {
	if snapshot.ID.IsZero() {
		snapshot.ID = primitive.NewObjectID()
	}

	if _, err := r.collection.InsertOne(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to create snapshot: %w", err)
	}

	return nil
}

// GetByUserID returns a user's snapshots, most recent first
func (r *MongoSnapshotRepository) GetByUserID(ctx context.Context, userID string, limit int) ([]models.Snapshot, error) {
	opts := options.Find().SetSort(bson.D{{Key: "taken_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshots: %w", err)
	}
	defer cursor.Close(ctx)

	snapshots := []models.Snapshot{}
	if err := cursor.All(ctx, &snapshots); err != nil {
		return nil, fmt.Errorf("failed to decode snapshots: %w", err)
	}

	return snapshots, nil
}
