package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"advisory-api/internal/models"
	"advisory-api/internal/repositories"
	apperrors "advisory-api/pkg/errors"
)

// PortfolioService manages portfolio documents
type PortfolioService interface {
	Save(ctx context.Context, portfolio *models.Portfolio) (*models.Portfolio, error)
	GetByUserID(ctx context.Context, userID string) (*models.Portfolio, error)
	GetHistory(ctx context.Context, userID string, limit int) ([]models.Snapshot, error)
}

type portfolioService struct {
	portfolioRepo repositories.PortfolioRepository
	snapshotRepo  repositories.SnapshotRepository
	cache         SummaryCache
	logger        *logrus.Logger
}

// NewPortfolioService creates a new portfolio service
func NewPortfolioService(
	portfolioRepo repositories.PortfolioRepository,
	snapshotRepo repositories.SnapshotRepository,
	cache SummaryCache,
	logger *logrus.Logger,
) PortfolioService {
	return &portfolioService{
		portfolioRepo: portfolioRepo,
		snapshotRepo:  snapshotRepo,
		cache:         cache,
		logger:        logger,
	}
}

// Save upserts a portfolio by user_id and returns the stored document.
// Concurrent saves for the same user race last-write-wins; there is no
// version check.
func (s *portfolioService) Save(ctx context.Context, portfolio *models.Portfolio) (*models.Portfolio, error) {
	existing, err := s.portfolioRepo.GetByUserID(ctx, portfolio.UserID)
	if err != nil && err != apperrors.ErrPortfolioNotFound {
		return nil, err
	}

	if existing != nil {
		portfolio.ID = existing.ID
		portfolio.CreatedAt = existing.CreatedAt
		if err := s.portfolioRepo.Update(ctx, portfolio); err != nil {
			return nil, fmt.Errorf("failed to update portfolio: %w", err)
		}
	} else {
		if err := s.portfolioRepo.Create(ctx, portfolio); err != nil {
			return nil, fmt.Errorf("failed to create portfolio: %w", err)
		}
	}

	s.invalidateSummary(ctx, portfolio.UserID)

	s.logger.WithFields(logrus.Fields{
		"user_id":  portfolio.UserID,
		"holdings": len(portfolio.Holdings),
	}).Info("Portfolio saved")

	return portfolio, nil
}

// GetByUserID retrieves the portfolio belonging to a user
func (s *portfolioService) GetByUserID(ctx context.Context, userID string) (*models.Portfolio, error) {
	return s.portfolioRepo.GetByUserID(ctx, userID)
}

// GetHistory returns a user's recent summary snapshots
func (s *portfolioService) GetHistory(ctx context.Context, userID string, limit int) ([]models.Snapshot, error) {
	return s.snapshotRepo.GetByUserID(ctx, userID, limit)
}

// invalidateSummary drops the cached summary after a portfolio write. Cache
// errors are logged and ignored; the cache is advisory only.
func (s *portfolioService) invalidateSummary(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Delete(ctx, summaryCacheKey(userID)); err != nil {
		s.logger.Warnf("Failed to invalidate summary cache for user %s: %v", userID, err)
	}
}
