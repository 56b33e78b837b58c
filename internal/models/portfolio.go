package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SectorOther is the aggregation bucket for holdings without a sector
const SectorOther = "Other"

// Portfolio represents a user's investment portfolio
type Portfolio struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    string             `bson:"user_id" json:"user_id"`
	Holdings  []Holding          `bson:"holdings" json:"holdings"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// Holding represents a single position within a portfolio
type Holding struct {
	Symbol   string  `bson:"symbol" json:"symbol"`
	Quantity float64 `bson:"quantity" json:"quantity"`
	AvgCost  float64 `bson:"avg_cost" json:"avg_cost"`
	Sector   string  `bson:"sector,omitempty" json:"sector,omitempty"`
}

// CostBasis returns quantity x average cost for the holding
func (h Holding) CostBasis() decimal.Decimal {
	return decimal.NewFromFloat(h.Quantity).Mul(decimal.NewFromFloat(h.AvgCost))
}

// SectorOrOther returns the holding's sector, defaulting to the shared
// "Other" bucket when absent
func (h Holding) SectorOrOther() string {
	if h.Sector == "" {
		return SectorOther
	}
	return h.Sector
}

// TopPosition is one entry of a summary's largest holdings
type TopPosition struct {
	Symbol string  `json:"symbol"`
	Weight float64 `json:"weight"`
}

// PortfolioSummary represents derived portfolio statistics. It is computed
// on demand and never persisted.
type PortfolioSummary struct {
	EstimatedValue   float64            `json:"estimated_value"`
	SectorAllocation map[string]float64 `json:"sector_allocation"`
	TopPositions     []TopPosition      `json:"top_positions"`
	HoldingsCount    int                `json:"holdings_count"`
}

// Validate validates the portfolio data
func (p *Portfolio) Validate() error {
	if p.UserID == "" {
		return fmt.Errorf("user ID is required")
	}

	for i, holding := range p.Holdings {
		if holding.Symbol == "" {
			return fmt.Errorf("holding %d: symbol is required", i)
		}

		if holding.Quantity <= 0 {
			return fmt.Errorf("holding %s: quantity must be positive", holding.Symbol)
		}

		if holding.AvgCost < 0 {
			return fmt.Errorf("holding %s: average cost cannot be negative", holding.Symbol)
		}
	}

	return nil
}
