package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"advisory-api/internal/config"
	"advisory-api/internal/models"
)

type MockPortfolioRepository struct {
	mock.Mock
}

func (m *MockPortfolioRepository) GetByUserID(ctx context.Context, userID string) (*models.Portfolio, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Portfolio), args.Error(1)
}

func (m *MockPortfolioRepository) Create(ctx context.Context, portfolio *models.Portfolio) error {
	args := m.Called(ctx, portfolio)
	return args.Error(0)
}

func (m *MockPortfolioRepository) Update(ctx context.Context, portfolio *models.Portfolio) error {
	args := m.Called(ctx, portfolio)
	return args.Error(0)
}

func (m *MockPortfolioRepository) List(ctx context.Context, limit int) ([]*models.Portfolio, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Portfolio), args.Error(1)
}

type MockSnapshotRepository struct {
	mock.Mock
}

func (m *MockSnapshotRepository) Create(ctx context.Context, snapshot *models.Snapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

func (m *MockSnapshotRepository) GetByUserID(ctx context.Context, userID string, limit int) ([]models.Snapshot, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Snapshot), args.Error(1)
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func newTestScheduler(t *testing.T, portfolioRepo *MockPortfolioRepository, snapshotRepo *MockSnapshotRepository) *SnapshotScheduler {
	t.Helper()

	s, err := NewSnapshotScheduler(config.SchedulerConfig{
		SnapshotInterval: "0 0 * * *",
		TimeZone:         "UTC",
	}, portfolioRepo, snapshotRepo, nil, testLogger())
	assert.NoError(t, err)
	return s
}

func TestSnapshotScheduler_RunSnapshotJob(t *testing.T) {
	t.Run("snapshot written per portfolio", func(t *testing.T) {
		portfolioRepo := new(MockPortfolioRepository)
		snapshotRepo := new(MockSnapshotRepository)
		s := newTestScheduler(t, portfolioRepo, snapshotRepo)

		portfolios := []*models.Portfolio{
			{UserID: "u1", Holdings: []models.Holding{
				{Symbol: "AAPL", Quantity: 10, AvgCost: 150, Sector: "Technology"},
			}},
			{UserID: "u2", Holdings: []models.Holding{
				{Symbol: "BND", Quantity: 20, AvgCost: 50, Sector: "Bonds"},
			}},
		}
		portfolioRepo.On("List", mock.Anything, snapshotBatchLimit).Return(portfolios, nil)
		snapshotRepo.On("Create", mock.Anything, mock.MatchedBy(func(snap *models.Snapshot) bool {
			return snap.UserID == "u1" && snap.EstimatedValue == 1500 && snap.HoldingsCount == 1
		})).Return(nil).Once()
		snapshotRepo.On("Create", mock.Anything, mock.MatchedBy(func(snap *models.Snapshot) bool {
			return snap.UserID == "u2" && snap.EstimatedValue == 1000
		})).Return(nil).Once()

		s.runSnapshotJob()

		snapshotRepo.AssertExpectations(t)
	})

	t.Run("listing failure skips the run", func(t *testing.T) {
		portfolioRepo := new(MockPortfolioRepository)
		snapshotRepo := new(MockSnapshotRepository)
		s := newTestScheduler(t, portfolioRepo, snapshotRepo)

		portfolioRepo.On("List", mock.Anything, snapshotBatchLimit).
			Return(nil, errors.New("connection reset"))

		s.runSnapshotJob()

		snapshotRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("one failing snapshot does not stop the rest", func(t *testing.T) {
		portfolioRepo := new(MockPortfolioRepository)
		snapshotRepo := new(MockSnapshotRepository)
		s := newTestScheduler(t, portfolioRepo, snapshotRepo)

		portfolios := []*models.Portfolio{
			{UserID: "u1"},
			{UserID: "u2"},
		}
		portfolioRepo.On("List", mock.Anything, snapshotBatchLimit).Return(portfolios, nil)
		snapshotRepo.On("Create", mock.Anything, mock.MatchedBy(func(snap *models.Snapshot) bool {
			return snap.UserID == "u1"
		})).Return(errors.New("write failed")).Once()
		snapshotRepo.On("Create", mock.Anything, mock.MatchedBy(func(snap *models.Snapshot) bool {
			return snap.UserID == "u2"
		})).Return(nil).Once()

		s.runSnapshotJob()

		snapshotRepo.AssertExpectations(t)
	})

	t.Run("invalid timezone rejected", func(t *testing.T) {
		_, err := NewSnapshotScheduler(config.SchedulerConfig{
			SnapshotInterval: "0 0 * * *",
			TimeZone:         "Mars/Olympus",
		}, new(MockPortfolioRepository), new(MockSnapshotRepository), nil, testLogger())

		assert.Error(t, err)
	})

	t.Run("invalid cron expression rejected on start", func(t *testing.T) {
		portfolioRepo := new(MockPortfolioRepository)
		snapshotRepo := new(MockSnapshotRepository)

		s, err := NewSnapshotScheduler(config.SchedulerConfig{
			SnapshotInterval: "not a cron expression",
			TimeZone:         "UTC",
		}, portfolioRepo, snapshotRepo, nil, testLogger())
		assert.NoError(t, err)

		assert.Error(t, s.Start())
	})
}
