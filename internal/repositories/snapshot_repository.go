package repositories

import (
	"context"

	"advisory-api/internal/models"
)

// SnapshotRepository defines data access for summary snapshots
type SnapshotRepository interface {
	Create(ctx context.Context, snapshot *models.Snapshot) error
	GetByUserID(ctx context.Context, userID string, limit int) ([]models.Snapshot, error)
}
