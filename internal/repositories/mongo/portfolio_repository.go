package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"advisory-api/internal/models"
	"advisory-api/internal/repositories"
	apperrors "advisory-api/pkg/errors"
)

// MongoPortfolioRepository implements PortfolioRepository using MongoDB
type MongoPortfolioRepository struct {
	collection *mongo.Collection
}

// NewPortfolioRepository creates a new MongoDB portfolio repository
func NewPortfolioRepository(db *mongo.Database) repositories.PortfolioRepository {
	return &MongoPortfolioRepository{
		collection: db.Collection("portfolio"),
	}
}

// GetByUserID retrieves the portfolio belonging to a user
func (r *MongoPortfolioRepository) GetByUserID(ctx context.Context, userID string) (*models.Portfolio, error) {
	var portfolio models.Portfolio
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&portfolio)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.ErrPortfolioNotFound
		}
		return nil, fmt.Errorf("failed to get portfolio: %w", err)
	}

	return &portfolio, nil
}

// Create inserts a new portfolio with storage-managed timestamps
func (r *MongoPortfolioRepository) Create(ctx context.Context, portfolio *models.Portfolio) error {
	if portfolio.ID.IsZero() {
		portfolio.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	portfolio.CreatedAt = now
	portfolio.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, portfolio); err != nil {
		// Concurrent saves for the same user race on the unique index;
		// last write wins at the update path
		if mongo.IsDuplicateKeyError(err) {
			return r.Update(ctx, portfolio)
		}
		return fmt.Errorf("failed to create portfolio: %w", err)
	}

	return nil
}

// Update replaces the holdings of an existing portfolio
func (r *MongoPortfolioRepository) Update(ctx context.Context, portfolio *models.Portfolio) error {
	portfolio.UpdatedAt = time.Now().UTC()

	update := bson.M{"$set": bson.M{
		"holdings":   portfolio.Holdings,
		"updated_at": portfolio.UpdatedAt,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"user_id": portfolio.UserID}, update)
	if err != nil {
		return fmt.Errorf("failed to update portfolio: %w", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrPortfolioNotFound
	}

	return nil
}

// List returns up to limit portfolios, most recently updated first
func (r *MongoPortfolioRepository) List(ctx context.Context, limit int) ([]*models.Portfolio, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list portfolios: %w", err)
	}
	defer cursor.Close(ctx)

	var portfolios []*models.Portfolio
	if err := cursor.All(ctx, &portfolios); err != nil {
		return nil, fmt.Errorf("failed to decode portfolios: %w", err)
	}

	return portfolios, nil
}
