package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"advisory-api/internal/models"
	apperrors "advisory-api/pkg/errors"
)

func TestPortfolioService_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("creates when no portfolio exists for the user", func(t *testing.T) {
		portfolioRepo := new(MockPortfolioRepository)
		snapshotRepo := new(MockSnapshotRepository)
		service := NewPortfolioService(portfolioRepo, snapshotRepo, nil, testLogger())

		portfolio := &models.Portfolio{
			UserID:   "user-1",
			Holdings: []models.Holding{{Symbol: "AAPL", Quantity: 1, AvgCost: 150}},
		}

		portfolioRepo.On("GetByUserID", ctx, "user-1").Return(nil, apperrors.ErrPortfolioNotFound)
		portfolioRepo.On("Create", ctx, portfolio).Return(nil)

		stored, err := service.Save(ctx, portfolio)

		assert.NoError(t, err)
		assert.Equal(t, portfolio, stored)
		portfolioRepo.AssertExpectations(t)
	})

	t.Run("updates and keeps identity when a portfolio exists", func(t *testing.T) {
		portfolioRepo := new(MockPortfolioRepository)
		snapshotRepo := new(MockSnapshotRepository)
		service := NewPortfolioService(portfolioRepo, snapshotRepo, nil, testLogger())

		created := time.Now().Add(-24 * time.Hour)
		existing := &models.Portfolio{
			ID:        primitive.NewObjectID(),
			UserID:    "user-1",
			Holdings:  []models.Holding{{Symbol: "OLD", Quantity: 1, AvgCost: 1}},
			CreatedAt: created,
		}
		incoming := &models.Portfolio{
			UserID:   "user-1",
			Holdings: []models.Holding{{Symbol: "AAPL", Quantity: 2, AvgCost: 140}},
		}

		portfolioRepo.On("GetByUserID", ctx, "user-1").Return(existing, nil)
		portfolioRepo.On("Update", ctx, incoming).Return(nil)

		stored, err := service.Save(ctx, incoming)

		assert.NoError(t, err)
		assert.Equal(t, existing.ID, stored.ID)
		assert.Equal(t, created, stored.CreatedAt)
		assert.Equal(t, "AAPL", stored.Holdings[0].Symbol)
		portfolioRepo.AssertExpectations(t)
	})

	t.Run("invalidates the cached summary on save", func(t *testing.T) {
		portfolioRepo := new(MockPortfolioRepository)
		snapshotRepo := new(MockSnapshotRepository)
		cache := new(MockSummaryCache)
		service := NewPortfolioService(portfolioRepo, snapshotRepo, cache, testLogger())

		portfolio := &models.Portfolio{UserID: "user-1"}

		portfolioRepo.On("GetByUserID", ctx, "user-1").Return(nil, apperrors.ErrPortfolioNotFound)
		portfolioRepo.On("Create", ctx, portfolio).Return(nil)
		cache.On("Delete", ctx, []string{summaryCacheKey("user-1")}).Return(nil)

		_, err := service.Save(ctx, portfolio)

		assert.NoError(t, err)
		cache.AssertExpectations(t)
	})
}

func TestPortfolioService_GetHistory(t *testing.T) {
	ctx := context.Background()

	portfolioRepo := new(MockPortfolioRepository)
	snapshotRepo := new(MockSnapshotRepository)
	service := NewPortfolioService(portfolioRepo, snapshotRepo, nil, testLogger())

	snapshots := []models.Snapshot{
		{UserID: "user-1", EstimatedValue: 2500, HoldingsCount: 2, TakenAt: time.Now()},
	}
	snapshotRepo.On("GetByUserID", ctx, "user-1", 30).Return(snapshots, nil)

	result, err := service.GetHistory(ctx, "user-1", 30)

	assert.NoError(t, err)
	assert.Equal(t, snapshots, result)
}
