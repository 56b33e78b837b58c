package advisor

import (
	"sort"

	"github.com/shopspring/decimal"

	"advisory-api/internal/models"
)

// TopPositionsLimit caps how many holdings a summary reports
const TopPositionsLimit = 5

var (
	hundred  = decimal.NewFromInt(100)
	oneFloor = decimal.NewFromInt(1)
)

// Summarize computes aggregate statistics for a holdings list. It is a pure
// function and never fails on well-typed input.
//
// The reported estimated value and the percentage denominator are computed
// independently: an empty or zero-cost portfolio reports a value of 0, while
// percentage math divides by a floor of 1.0. The floor skews percentages
// toward zero instead of failing on division by zero; that approximation is
// kept on purpose.
func Summarize(holdings []models.Holding) *models.PortfolioSummary {
	rawTotal := decimal.Zero
	for _, h := range holdings {
		rawTotal = rawTotal.Add(h.CostBasis())
	}

	denominator := rawTotal
	if !denominator.IsPositive() {
		denominator = oneFloor
	}

	sectorTotals := make(map[string]decimal.Decimal)
	for _, h := range holdings {
		sector := h.SectorOrOther()
		sectorTotals[sector] = sectorTotals[sector].Add(h.CostBasis())
	}

	allocation := make(map[string]float64, len(sectorTotals))
	for sector, total := range sectorTotals {
		allocation[sector] = percentage(total, denominator)
	}

	positions := make([]models.TopPosition, 0, len(holdings))
	for _, h := range holdings {
		positions = append(positions, models.TopPosition{
			Symbol: h.Symbol,
			Weight: percentage(h.CostBasis(), denominator),
		})
	}
	// Stable sort keeps original order between equal weights
	sort.SliceStable(positions, func(i, j int) bool {
		return positions[i].Weight > positions[j].Weight
	})
	if len(positions) > TopPositionsLimit {
		positions = positions[:TopPositionsLimit]
	}

	value, _ := rawTotal.Round(2).Float64()

	return &models.PortfolioSummary{
		EstimatedValue:   value,
		SectorAllocation: allocation,
		TopPositions:     positions,
		HoldingsCount:    len(holdings),
	}
}

func percentage(part, total decimal.Decimal) float64 {
	pct, _ := part.Div(total).Mul(hundred).Round(2).Float64()
	return pct
}
