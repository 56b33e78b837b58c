package dto

import "advisory-api/internal/models"

// HoldingRequest is one position within a portfolio save payload
type HoldingRequest struct {
	Symbol   string  `json:"symbol" binding:"required"`
	Quantity float64 `json:"quantity" binding:"required,gt=0"`
	AvgCost  float64 `json:"avg_cost" binding:"gte=0"`
	Sector   string  `json:"sector"`
}

// SavePortfolioRequest is the payload for POST /portfolio/save
type SavePortfolioRequest struct {
	UserID   string           `json:"user_id" binding:"required"`
	Holdings []HoldingRequest `json:"holdings" binding:"required,dive"`
}

// ToModel converts the request into a portfolio model
func (r *SavePortfolioRequest) ToModel() *models.Portfolio {
	holdings := make([]models.Holding, 0, len(r.Holdings))
	for _, h := range r.Holdings {
		holdings = append(holdings, models.Holding{
			Symbol:   h.Symbol,
			Quantity: h.Quantity,
			AvgCost:  h.AvgCost,
			Sector:   h.Sector,
		})
	}

	return &models.Portfolio{
		UserID:   r.UserID,
		Holdings: holdings,
	}
}

// PortfolioResponse wraps a stored portfolio document
type PortfolioResponse struct {
	Portfolio *models.Portfolio `json:"portfolio"`
}

// HistoryResponse wraps a user's summary snapshots
type HistoryResponse struct {
	UserID    string            `json:"user_id"`
	Snapshots []models.Snapshot `json:"snapshots"`
}
