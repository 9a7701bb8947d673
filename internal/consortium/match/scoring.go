package match

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/alessandroaun/SimuladorConsorcio-sub000/internal/consortium/intent"
	"github.com/alessandroaun/SimuladorConsorcio-sub000/internal/consortium/types"
)

const (
	scoreCreditInRange  = 40.0
	scoreExactTerm      = 30.0
	scoreTermBase       = 20.0
	scoreTermFloor      = 5.0
	termGapPenalty      = 0.1
	scorePlanAccepted   = 15.0
	scoreVacancies      = 10.0
	scoreEmbeddedOK     = 10.0
	scoreBidCoversBar   = 30.0
	scoreBidNearBar     = 10.0
	bidShortfallLimit   = 10.0
	embeddedBidBoostPct = 25.0
)

// scoreCandidates is the default branch: additive per-candidate scoring
// with a justification string for every contributing rule. Candidates with
// zero or negative totals are dropped; an unrecoverable constraint excludes
// the candidate, never the search.
func scoreCandidates(candidates []types.Group, c claims, q intent.Result, window []types.AssemblyRecord) []types.Group {
	var ranked []types.Group
	for _, g := range candidates {
		scored, ok := scoreCandidate(g, c, q, window)
		if !ok {
			continue
		}
		ranked = append(ranked, scored)
	}
	return rankAndTruncate(ranked)
}

func scoreCandidate(g types.Group, c claims, q intent.Result, window []types.AssemblyRecord) (types.Group, bool) {
	score := 0.0
	var details []string

	if c.credit > 0 {
		score += scoreCreditInRange
		details = append(details, fmt.Sprintf("Crédito de R$ %.0f dentro da faixa do grupo (R$ %.0f a R$ %.0f)",
			c.credit, g.CreditMin, g.CreditMax))
	}

	if c.termMonths > 0 {
		if g.MaxTermMonths == c.termMonths {
			score += scoreExactTerm
			details = append(details, fmt.Sprintf("Prazo exato de %d meses", c.termMonths))
		} else {
			gap := float64(g.MaxTermMonths - c.termMonths)
			pts := scoreTermBase - gap*termGapPenalty
			if pts < scoreTermFloor {
				pts = scoreTermFloor
			}
			score += pts
			details = append(details, fmt.Sprintf("Prazo de até %d meses atende os %d solicitados", g.MaxTermMonths, c.termMonths))
		}
	}

	if q.Flags.Light {
		if !g.AcceptsPlan(types.PlanLight) {
			return g, false
		}
		score += scorePlanAccepted
		details = append(details, "Grupo aceita plano LIGHT")
	}
	if q.Flags.SuperLight {
		if !g.AcceptsPlan(types.PlanSuperLight) {
			return g, false
		}
		score += scorePlanAccepted
		details = append(details, "Grupo aceita plano SUPERLIGHT")
	}

	if q.Flags.Embedded {
		if !g.AcceptsEmbeddedBid {
			return g, false
		}
		score += scoreEmbeddedOK
		details = append(details, "Grupo aceita lance embutido")
	}

	if q.Flags.Vacancy && g.Vacancies > 0 {
		score += scoreVacancies
		details = append(details, fmt.Sprintf("%d vagas disponíveis", g.Vacancies))
	}

	if c.credit == 0 && (c.bidPct > 0 || c.bidValue > 0) {
		pts, detail, ok := scoreStandaloneBid(g, c, window)
		if !ok {
			return g, false
		}
		if detail != "" {
			score += pts
			details = append(details, detail)
		}
	}

	if score <= 0 {
		return g, false
	}

	g.Score = score
	g.MatchDetails = details
	return g, true
}

// scoreStandaloneBid judges a bid given without a credit target. The
// implied bid percentage — pocket only, and pocket plus 25% embedded when
// the group allows it — is measured against the group's trailing average
// lowest free bid. Meeting the bar scores high, a shortfall within 10
// points scores low, anything worse excludes the candidate. Groups without
// history stay neutral.
func scoreStandaloneBid(g types.Group, c claims, window []types.AssemblyRecord) (float64, string, bool) {
	bar := trailingLowestMean(g.Number, window)
	if bar == 0 {
		return 0, "", true
	}

	pocket := c.bidPct
	if pocket == 0 {
		mid := g.CreditMidpoint()
		if mid <= 0 {
			return 0, "", true
		}
		pocket = c.bidValue / mid * 100
	}

	best := pocket
	if g.AcceptsEmbeddedBid {
		best = pocket + embeddedBidBoostPct
	}

	scenario := ""
	if g.AcceptsEmbeddedBid && best >= bar && pocket < bar {
		scenario = " com 25% de lance embutido"
	}

	switch {
	case best >= bar:
		return scoreBidCoversBar, fmt.Sprintf("Lance de %.1f%%%s cobre a média dos menores lances (%.1f%%)", best, scenario, bar), true
	case bar-best <= bidShortfallLimit:
		return scoreBidNearBar, fmt.Sprintf("Lance de %.1f%% próximo da média dos menores lances (%.1f%%)", best, bar), true
	default:
		return 0, "", false
	}
}

func trailingLowestMean(number string, window []types.AssemblyRecord) float64 {
	var pcts []float64
	for _, r := range window {
		if r.GroupNumber == number && r.LowestFreeBidPct > 0 {
			pcts = append(pcts, r.LowestFreeBidPct)
		}
	}
	if len(pcts) == 0 {
		return 0
	}
	return stat.Mean(pcts, nil)
}
