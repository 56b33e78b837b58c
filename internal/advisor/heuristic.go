package advisor

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"advisory-api/internal/models"
)

// Weight above which the largest position triggers a trimming suggestion
const concentrationThreshold = 25.0

// Sector count below which the diversification suggestion fires
const minDiversifiedSectors = 4

// Heuristic produces deterministic, rule-based advisory text from a user
// profile and a portfolio summary. Identical inputs always produce
// byte-identical output.
func Heuristic(user *models.User, summary *models.PortfolioSummary) string {
	risk := user.RiskTolerance
	if risk == "" {
		risk = models.RiskBalanced
	}

	lines := []string{
		"Here’s a quick, personalized checkup on your portfolio (~$" + formatCurrency(summary.EstimatedValue) + ").",
		"Diversification:",
	}

	if len(summary.SectorAllocation) < minDiversifiedSectors {
		lines = append(lines, "- Consider adding exposure to more sectors to reduce concentration risk.")
	} else {
		lines = append(lines, "- Sector mix looks reasonably diversified. Keep monitoring exposures.")
	}

	if len(summary.TopPositions) > 0 && summary.TopPositions[0].Weight > concentrationThreshold {
		lines = append(lines, "- Your largest position is above 25% of portfolio. Gradual trimming may reduce idiosyncratic risk.")
	}

	lines = append(lines, "Risk alignment:")
	switch risk {
	case models.RiskConservative:
		lines = append(lines, "- Favor high-quality bonds, broad-market ETFs, and larger cash buffer (6–12 months expenses).")
	case models.RiskBalanced:
		lines = append(lines, "- A mix of equities and bonds (e.g., 60/40) with periodic rebalancing can fit your profile.")
	default:
		// Aggressive and any unrecognized value
		lines = append(lines, "- Tilt toward equities/alternatives with disciplined DCA and volatility management.")
	}

	lines = append(lines,
		"Next steps:",
		"- Set an automatic monthly investment and rebalance quarterly.",
		"- Map each goal to a time horizon and choose suitable vehicles (401k/IRA/taxable).",
	)

	return strings.Join(lines, "\n")
}

// formatCurrency renders a value with thousands separators and no decimals
func formatCurrency(value float64) string {
	whole := decimal.NewFromFloat(value).Round(0).IntPart()

	negative := whole < 0
	if negative {
		whole = -whole
	}

	digits := strconv.FormatInt(whole, 10)
	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return b.String()
}
