package advisor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"advisory-api/internal/models"
)

func TestHeuristic(t *testing.T) {
	t.Run("conservative with concentrated two-sector portfolio", func(t *testing.T) {
		user := &models.User{RiskTolerance: models.RiskConservative}
		summary := &models.PortfolioSummary{
			EstimatedValue:   12500,
			SectorAllocation: map[string]float64{"Tech": 70.0, "Bonds": 30.0},
			TopPositions:     []models.TopPosition{{Symbol: "AAPL", Weight: 70.0}},
			HoldingsCount:    2,
		}

		advice := Heuristic(user, summary)

		assert.Contains(t, advice, "~$12,500")
		assert.Contains(t, advice, "Consider adding exposure to more sectors")
		assert.Contains(t, advice, "Gradual trimming may reduce idiosyncratic risk")
		assert.Contains(t, advice, "Favor high-quality bonds")
		assert.Contains(t, advice, "Set an automatic monthly investment and rebalance quarterly.")
	})

	t.Run("diversified portfolio skips the suggestion lines", func(t *testing.T) {
		user := &models.User{RiskTolerance: models.RiskBalanced}
		summary := &models.PortfolioSummary{
			EstimatedValue: 40000,
			SectorAllocation: map[string]float64{
				"Tech": 25.0, "Bonds": 25.0, "Energy": 25.0, "Health": 25.0,
			},
			TopPositions:  []models.TopPosition{{Symbol: "VTI", Weight: 25.0}},
			HoldingsCount: 4,
		}

		advice := Heuristic(user, summary)

		assert.Contains(t, advice, "Sector mix looks reasonably diversified.")
		assert.NotContains(t, advice, "Gradual trimming")
		assert.Contains(t, advice, "e.g., 60/40")
	})

	t.Run("exactly one risk paragraph for every tolerance value", func(t *testing.T) {
		summary := &models.PortfolioSummary{
			SectorAllocation: map[string]float64{"Tech": 100.0},
			TopPositions:     []models.TopPosition{{Symbol: "AAPL", Weight: 100.0}},
			HoldingsCount:    1,
		}

		for _, risk := range []string{
			models.RiskConservative,
			models.RiskBalanced,
			models.RiskAggressive,
			"yolo", // unrecognized tags take the default branch
			"",
		} {
			advice := Heuristic(&models.User{RiskTolerance: risk}, summary)

			count := 0
			for _, paragraph := range []string{
				"Favor high-quality bonds",
				"A mix of equities and bonds",
				"Tilt toward equities/alternatives",
			} {
				if strings.Contains(advice, paragraph) {
					count++
				}
			}
			assert.Equalf(t, 1, count, "risk %q produced %d risk paragraphs", risk, count)
		}
	})

	t.Run("deterministic output", func(t *testing.T) {
		user := &models.User{RiskTolerance: models.RiskAggressive, Goals: []string{"retirement"}}
		summary := &models.PortfolioSummary{
			EstimatedValue:   999999,
			SectorAllocation: map[string]float64{"Tech": 60.0, "Bonds": 40.0},
			TopPositions:     []models.TopPosition{{Symbol: "TSLA", Weight: 60.0}},
			HoldingsCount:    2,
		}

		first := Heuristic(user, summary)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, Heuristic(user, summary))
		}
	})

	t.Run("next steps block is always present", func(t *testing.T) {
		advice := Heuristic(&models.User{}, &models.PortfolioSummary{})

		assert.Contains(t, advice, "Next steps:")
		assert.Contains(t, advice, "Map each goal to a time horizon and choose suitable vehicles (401k/IRA/taxable).")
	})
}

func TestFormatCurrency(t *testing.T) {
	cases := map[float64]string{
		0:          "0",
		999:        "999",
		1000:       "1,000",
		2500:       "2,500",
		1234567.89: "1,234,568",
	}

	for value, expected := range cases {
		assert.Equal(t, expected, formatCurrency(value))
	}
}
