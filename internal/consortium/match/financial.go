package match

import (
	"fmt"
	"math"

	"github.com/alessandroaun/SimuladorConsorcio-sub000/internal/consortium/types"
)

// Installment deviations this close count as a tie, resolved by plan
// priority NORMAL > LIGHT > SUPERLIGHT.
const installmentTieTolerance = 1.0

func isFinancialMatch(financial []types.FinancialEntry, c claims) bool {
	return len(financial) > 0 && c.installment > 0
}

// financialMatch searches the financial-table catalog for the combination
// closest to the installment target. With a credit target the search is
// constrained to that credit; with installment only, it also discovers a
// feasible credit. The winning entry is then projected back onto the
// group catalog.
func financialMatch(financial []types.FinancialEntry, candidates []types.Group, c claims) []types.Group {
	var best *types.FinancialEntry
	bestDev := 0.0
	for i := range financial {
		e := financial[i]
		if c.credit > 0 {
			if c.credit < e.Credit*(1-creditRangeTolerance) || c.credit > e.Credit*(1+creditRangeTolerance) {
				continue
			}
		}
		if c.termMonths > 0 && e.TermMonths != c.termMonths {
			continue
		}
		dev := math.Abs(e.Installment - c.installment)
		switch {
		case best == nil:
			best, bestDev = &e, dev
		case math.Abs(dev-bestDev) <= installmentTieTolerance:
			if e.Plan.Priority() < best.Plan.Priority() {
				best, bestDev = &e, dev
			}
		case dev < bestDev:
			best, bestDev = &e, dev
		}
	}
	if best == nil {
		return nil
	}

	score := 70.0
	if bestDev <= installmentTieTolerance {
		score = 90
	}
	detail := fmt.Sprintf("Tabela %s (%s): crédito de R$ %.2f em %dx de R$ %.2f",
		best.TableID, best.Plan, best.Credit, best.TermMonths, best.Installment)

	var results []types.Group
	for _, g := range candidates {
		if best.Credit < g.CreditMin*(1-creditRangeTolerance) || best.Credit > g.CreditMax*(1+creditRangeTolerance) {
			continue
		}
		if g.MaxTermMonths < best.TermMonths {
			continue
		}
		if !g.AcceptsPlan(best.Plan) {
			continue
		}
		g.Score = score
		g.MatchDetails = append(g.MatchDetails, detail)
		results = append(results, g)
	}
	return rankAndTruncate(results)
}
