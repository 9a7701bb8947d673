package match

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/alessandroaun/SimuladorConsorcio-sub000/internal/consortium/intent"
	"github.com/alessandroaun/SimuladorConsorcio-sub000/internal/consortium/types"
)

type leaderboardMetric int

const (
	metricContemplated leaderboardMetric = iota
	metricFixedBidContemplated
	metricFreeBidContemplated
	metricAvgFreeBid
	metricLowestFreeBid
)

// isLeaderboard holds when the query asks about contemplation counts or
// bid statistics without putting a concrete bid on the table.
func isLeaderboard(q intent.Result, c claims) bool {
	if c.bidPct > 0 || c.bidValue > 0 {
		return false
	}
	if q.Flags.Quantity && q.Flags.Contemplation {
		return true
	}
	if q.Flags.Average && (q.Flags.Bid || q.Flags.FreeBid) {
		return true
	}
	if (q.Flags.Lowest || q.Flags.Highest) && (q.Flags.Bid || q.Flags.Contemplation) {
		return true
	}
	return false
}

func selectMetric(q intent.Result) leaderboardMetric {
	switch {
	case q.Flags.Lowest && (q.Flags.Bid || q.Flags.FreeBid):
		return metricLowestFreeBid
	case q.Flags.Average && (q.Flags.Bid || q.Flags.FreeBid):
		return metricAvgFreeBid
	case q.Flags.FixedBid && q.Flags.Contemplation:
		return metricFixedBidContemplated
	case q.Flags.FreeBid && q.Flags.Contemplation:
		return metricFreeBidContemplated
	default:
		return metricContemplated
	}
}

// leaderboard ranks the filtered candidates by the requested metric over
// the lookback window. Groups with no eligible history are excluded;
// lower-is-better metrics are inverted before ranking.
func leaderboard(candidates []types.Group, window []types.AssemblyRecord, q intent.Result) []types.Group {
	metric := selectMetric(q)

	var ranked []types.Group
	for _, g := range candidates {
		value, detail, ok := metricValue(g, window, metric, q.MonthsLookback)
		if !ok {
			continue
		}
		g.Score = value
		g.MatchDetails = append(g.MatchDetails, detail)
		ranked = append(ranked, g)
	}
	return rankAndTruncate(ranked)
}

func metricValue(g types.Group, window []types.AssemblyRecord, metric leaderboardMetric, lookback int) (float64, string, bool) {
	var contemplated, fixed, free int
	var avgPcts, lowestPcts []float64
	eligible := 0
	for _, r := range window {
		if r.GroupNumber != g.Number {
			continue
		}
		eligible++
		contemplated += r.Contemplated
		fixed += r.FixedBidCount
		free += r.FreeBidCount
		if r.AvgFreeBidPct > 0 {
			avgPcts = append(avgPcts, r.AvgFreeBidPct)
		}
		if r.LowestFreeBidPct > 0 {
			lowestPcts = append(lowestPcts, r.LowestFreeBidPct)
		}
	}
	if eligible == 0 {
		return 0, "", false
	}

	switch metric {
	case metricFixedBidContemplated:
		return float64(fixed), fmt.Sprintf("%d contemplações por lance fixo nos últimos %d meses", fixed, lookback), true
	case metricFreeBidContemplated:
		return float64(free), fmt.Sprintf("%d contemplações por lance livre nos últimos %d meses", free, lookback), true
	case metricAvgFreeBid:
		if len(avgPcts) == 0 {
			return 0, "", false
		}
		mean := stat.Mean(avgPcts, nil)
		return mean, fmt.Sprintf("Média de lance livre de %.1f%% nos últimos %d meses", mean, lookback), true
	case metricLowestFreeBid:
		if len(lowestPcts) == 0 {
			return 0, "", false
		}
		mean := stat.Mean(lowestPcts, nil)
		// Lower is better: invert before ranking
		return 100 - mean, fmt.Sprintf("Menor lance livre médio de %.1f%% nos últimos %d meses", mean, lookback), true
	default:
		return float64(contemplated), fmt.Sprintf("%d contemplações nos últimos %d meses", contemplated, lookback), true
	}
}
