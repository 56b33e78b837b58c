package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"advisory-api/internal/models"
	"advisory-api/internal/repositories"
	apperrors "advisory-api/pkg/errors"
)

// UserService manages user profiles
type UserService interface {
	SignIn(ctx context.Context, user *models.User) (*models.User, error)
}

type userService struct {
	userRepo repositories.UserRepository
	logger   *logrus.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository, logger *logrus.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// SignIn upserts a user by email: an existing profile has its fields fully
// replaced, otherwise a new document is created. The stored user, including
// its identifier, is returned.
func (s *userService) SignIn(ctx context.Context, user *models.User) (*models.User, error) {
	existing, err := s.userRepo.GetByEmail(ctx, user.Email)
	if err != nil {
		if err == apperrors.ErrUserNotFound {
			if err := s.userRepo.Create(ctx, user); err != nil {
				return nil, fmt.Errorf("failed to create user: %w", err)
			}
			s.logger.WithField("user_id", user.ID.Hex()).Info("User created")
			return user, nil
		}
		return nil, err
	}

	existing.Name = user.Name
	existing.RiskTolerance = user.RiskTolerance
	existing.Goals = user.Goals
	existing.Age = user.Age
	existing.HorizonYears = user.HorizonYears

	if err := s.userRepo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.WithField("user_id", existing.ID.Hex()).Info("User profile updated")
	return existing, nil
}
