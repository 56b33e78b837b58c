package controllers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"advisory-api/internal/dto"
	"advisory-api/internal/models"
)

// Mock implementations

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) SignIn(ctx context.Context, user *models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockPortfolioService struct {
	mock.Mock
}

func (m *MockPortfolioService) Save(ctx context.Context, portfolio *models.Portfolio) (*models.Portfolio, error) {
	args := m.Called(ctx, portfolio)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Portfolio), args.Error(1)
}

func (m *MockPortfolioService) GetByUserID(ctx context.Context, userID string) (*models.Portfolio, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Portfolio), args.Error(1)
}

func (m *MockPortfolioService) GetHistory(ctx context.Context, userID string, limit int) ([]models.Snapshot, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Snapshot), args.Error(1)
}

type MockAdviceService struct {
	mock.Mock
}

func (m *MockAdviceService) Analyze(ctx context.Context, userID string) (*dto.AnalyzeResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AnalyzeResponse), args.Error(1)
}

func (m *MockAdviceService) Chat(ctx context.Context, req *dto.ChatRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}
