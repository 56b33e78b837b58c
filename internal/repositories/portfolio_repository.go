package repositories

import (
	"context"

	"advisory-api/internal/models"
)

// PortfolioRepository defines data access for portfolios
type PortfolioRepository interface {
	GetByUserID(ctx context.Context, userID string) (*models.Portfolio, error)
	Create(ctx context.Context, portfolio *models.Portfolio) error
	Update(ctx context.Context, portfolio *models.Portfolio) error
	List(ctx context.Context, limit int) ([]*models.Portfolio, error)
}
