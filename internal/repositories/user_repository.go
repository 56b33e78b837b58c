package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"advisory-api/internal/models"
)

// UserRepository defines data access for user profiles
type UserRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
}
