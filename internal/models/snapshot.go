package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Snapshot is a point-in-time record of a portfolio summary, written by the
// background snapshot job. Snapshots expire via a TTL index after 90 days.
type Snapshot struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID           string             `bson:"user_id" json:"user_id"`
	EstimatedValue   float64            `bson:"estimated_value" json:"estimated_value"`
	SectorAllocation map[string]float64 `bson:"sector_allocation" json:"sector_allocation"`
	HoldingsCount    int                `bson:"holdings_count" json:"holdings_count"`
	TakenAt          time.Time          `bson:"taken_at" json:"taken_at"`
}

// SnapshotFromSummary builds a snapshot from a computed summary
func SnapshotFromSummary(userID string, summary *PortfolioSummary, at time.Time) *Snapshot {
	return &Snapshot{
		UserID:           userID,
		EstimatedValue:   summary.EstimatedValue,
		SectorAllocation: summary.SectorAllocation,
		HoldingsCount:    summary.HoldingsCount,
		TakenAt:          at,
	}
}
