// Package match ranks consortium groups against an interpreted query. It
// narrows the catalog with hard filters, then answers through the first
// applicable branch: result lookup, leaderboard, direct hit, financial-table
// match or additive scoring.
package match

import (
	"fmt"
	"sort"
	"time"

	"github.com/alessandroaun/SimuladorConsorcio-sub000/internal/consortium/intent"
	"github.com/alessandroaun/SimuladorConsorcio-sub000/internal/consortium/predict"
	"github.com/alessandroaun/SimuladorConsorcio-sub000/internal/consortium/types"
)

const (
	maxResults = 10

	// lookupScore marks result-lookup answers, which are not rankings.
	lookupScore = 999

	creditRangeTolerance = 0.05
)

// Input carries the materialized snapshots one search runs over. Financial
// and Weights are optional; Now anchors lookback windows and defaults to
// the most recent assembly on record.
type Input struct {
	Query     intent.Result
	Groups    []types.Group
	History   []types.AssemblyRecord
	Financial []types.FinancialEntry
	Weights   *types.NeuralWeights
	Now       time.Time
}

// Search returns up to 10 groups ranked by relevance. An empty slice is a
// valid "no results" outcome, never an error: unrecoverable constraints
// exclude candidates, not the whole search.
func Search(in Input) []types.Group {
	q := in.Query
	c := resolveClaims(q, in.Groups)
	window := historyWindow(in.History, in.Now, q.MonthsLookback, q.LastAssemblyOnly)
	candidates := filterCandidates(in.Groups, c, q)

	var results []types.Group
	switch {
	case isResultLookup(q, c):
		results = resultLookup(in.Groups, in.History, c)
	case isLeaderboard(q, c):
		results = leaderboard(candidates, window, q)
	case isDirectHit(candidates, c, q):
		results = directHit(candidates[0])
	case isFinancialMatch(in.Financial, c):
		results = financialMatch(in.Financial, candidates, c)
	default:
		results = scoreCandidates(candidates, c, q, window)
	}

	if in.Weights != nil {
		for i := range results {
			p := predict.Predict(results[i], in.History, in.Weights)
			results[i].Prediction = &p
		}
	}
	return results
}

// filterCandidates applies the hard excludes in order: group number,
// species, credit-range containment with 5% tolerance, minimum term.
func filterCandidates(groups []types.Group, c claims, q intent.Result) []types.Group {
	var out []types.Group
	for _, g := range groups {
		if c.groupNumber != "" && g.Number != c.groupNumber {
			continue
		}
		if q.Species != "" && g.Species != q.Species {
			continue
		}
		if c.credit > 0 {
			if c.credit < g.CreditMin*(1-creditRangeTolerance) || c.credit > g.CreditMax*(1+creditRangeTolerance) {
				continue
			}
		}
		if c.termMonths > 0 && g.MaxTermMonths < c.termMonths {
			continue
		}
		out = append(out, g)
	}
	return out
}

func isResultLookup(q intent.Result, c claims) bool {
	return c.groupNumber != "" && (q.Flags.Summary || q.LastAssemblyOnly)
}

// resultLookup answers "how did group N do": exactly that group annotated
// with its most recent assembly record. A lookup, not a ranking.
func resultLookup(groups []types.Group, history []types.AssemblyRecord, c claims) []types.Group {
	for _, g := range groups {
		if g.Number != c.groupNumber {
			continue
		}
		g.Score = lookupScore
		if latest := latestRecord(history, g.Number); latest != nil {
			g.LastResult = latest
			g.MatchDetails = append(g.MatchDetails, fmt.Sprintf(
				"Assembleia de %s: %d contemplações, menor lance livre %.1f%%",
				latest.Date.Format("02/01/2006"), latest.Contemplated, latest.LowestFreeBidPct))
		} else {
			g.MatchDetails = append(g.MatchDetails, "Grupo sem resultados de assembleia registrados")
		}
		return []types.Group{g}
	}
	return nil
}

// isDirectHit holds for an unambiguous single-group filter result with no
// numeric targets left to score against.
func isDirectHit(candidates []types.Group, c claims, q intent.Result) bool {
	if len(candidates) != 1 {
		return false
	}
	if c.credit > 0 || c.termMonths > 0 || c.installment > 0 || c.bidPct > 0 || c.bidValue > 0 {
		return false
	}
	return c.groupNumber != "" || q.Species != ""
}

func directHit(g types.Group) []types.Group {
	g.Score = 80
	g.MatchDetails = append(g.MatchDetails, "Único grupo compatível com os filtros informados")
	return []types.Group{g}
}

// historyWindow keeps the records inside the lookback window. With
// lastOnly set, only the most recent record of each group survives.
func historyWindow(history []types.AssemblyRecord, now time.Time, lookbackMonths int, lastOnly bool) []types.AssemblyRecord {
	if len(history) == 0 {
		return nil
	}
	if lastOnly {
		latest := map[string]types.AssemblyRecord{}
		for _, r := range history {
			if cur, ok := latest[r.GroupNumber]; !ok || r.Date.After(cur.Date) {
				latest[r.GroupNumber] = r
			}
		}
		out := make([]types.AssemblyRecord, 0, len(latest))
		for _, r := range latest {
			out = append(out, r)
		}
		return out
	}

	ref := now
	if ref.IsZero() {
		for _, r := range history {
			if r.Date.After(ref) {
				ref = r.Date
			}
		}
	}
	cutoff := ref.AddDate(0, -lookbackMonths, 0)

	var out []types.AssemblyRecord
	for _, r := range history {
		if !r.Date.Before(cutoff) {
			out = append(out, r)
		}
	}
	return out
}

func latestRecord(history []types.AssemblyRecord, number string) *types.AssemblyRecord {
	var latest *types.AssemblyRecord
	for i := range history {
		r := history[i]
		if r.GroupNumber != number {
			continue
		}
		if latest == nil || r.Date.After(latest.Date) {
			latest = &r
		}
	}
	return latest
}

// rankAndTruncate orders by score descending, group number ascending on
// ties, and keeps the top results.
func rankAndTruncate(groups []types.Group) []types.Group {
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Score != groups[j].Score {
			return groups[i].Score > groups[j].Score
		}
		return groups[i].Number < groups[j].Number
	})
	if len(groups) > maxResults {
		groups = groups[:maxResults]
	}
	return groups
}
