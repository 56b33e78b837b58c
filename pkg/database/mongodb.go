package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"advisory-api/internal/config"
)

// MongoDB represents MongoDB database connection
type MongoDB struct {
	client   *mongo.Client
	database *mongo.Database
}

// NewMongoDB creates a new MongoDB connection
func NewMongoDB(cfg config.DatabaseConfig) (*MongoDB, error) {
	clientOpts := options.Client().ApplyURI(cfg.URI)

	if cfg.MaxPoolSize > 0 {
		clientOpts.SetMaxPoolSize(uint64(cfg.MaxPoolSize))
	}
	if cfg.MinPoolSize > 0 {
		clientOpts.SetMinPoolSize(uint64(cfg.MinPoolSize))
	}
	if cfg.MaxIdleTime > 0 {
		clientOpts.SetMaxConnIdleTime(time.Duration(cfg.MaxIdleTime) * time.Second)
	}
	if cfg.ConnectTimeout > 0 {
		clientOpts.SetConnectTimeout(time.Duration(cfg.ConnectTimeout) * time.Second)
	}
	if cfg.SocketTimeout > 0 {
		clientOpts.SetSocketTimeout(time.Duration(cfg.SocketTimeout) * time.Second)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Ping to verify connection
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	database := client.Database(cfg.Database)

	if err := createIndexes(ctx, database); err != nil {
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	return &MongoDB{
		client:   client,
		database: database,
	}, nil
}

// GetDatabase returns the database instance
func (m *MongoDB) GetDatabase() *mongo.Database {
	return m.database
}

// Collection returns a collection
func (m *MongoDB) Collection(name string) *mongo.Collection {
	return m.database.Collection(name)
}

// Disconnect closes the database connection
func (m *MongoDB) Disconnect() error {
	if m.client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return m.client.Disconnect(ctx)
}

// Ping checks the database connection
func (m *MongoDB) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

// IsHealthy reports whether the database is reachable
func (m *MongoDB) IsHealthy(ctx context.Context) bool {
	return m.Ping(ctx) == nil
}

// createIndexes creates necessary indexes for collections
func createIndexes(ctx context.Context, db *mongo.Database) error {
	// Users are upserted by email
	userCollection := db.Collection("user")
	userIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	if _, err := userCollection.Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}

	// At most one portfolio document per user
	portfolioCollection := db.Collection("portfolio")
	portfolioIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "updated_at", Value: -1}},
		},
	}

	if _, err := portfolioCollection.Indexes().CreateMany(ctx, portfolioIndexes); err != nil {
		return fmt.Errorf("failed to create portfolio indexes: %w", err)
	}

	snapshotCollection := db.Collection("summary_snapshots")
	snapshotIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "taken_at", Value: -1}},
		},
		{
			Keys:    bson.D{{Key: "taken_at", Value: -1}},
			Options: options.Index().SetExpireAfterSeconds(7776000), // 90 days
		},
	}

	if _, err := snapshotCollection.Indexes().CreateMany(ctx, snapshotIndexes); err != nil {
		return fmt.Errorf("failed to create snapshot indexes: %w", err)
	}

	return nil
}
