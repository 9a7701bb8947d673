// Package predict scores the contemplation opportunity of a group from its
// assembly history, combining a frozen feed-forward model with a trend
// heuristic. The two signals are independent pure functions composed here.
package predict

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/alessandroaun/SimuladorConsorcio-sub000/internal/consortium/types"
)

const (
	TrendRising  = "Alta"
	TrendFalling = "Queda"
	TrendStable  = "Estável"

	LabelOpportunity     = "💎 Oportunidade Real"
	LabelHighCompetition = "Alta concorrência"
	LabelNeutral         = "Cenário neutro"

	// Disclaimer accompanies every available prediction.
	Disclaimer = "Estimativa estatística baseada no histórico do grupo. Não é garantia de contemplação."

	minHistoryRecords    = 3
	trendThreshold       = 1.5
	maxTermNormalization = 240
)

// Predict produces the opportunity assessment for one group. History may
// contain records of other groups; only the group's own records count.
// Fewer than 3 records yields an explicit unavailable result so absence of
// signal stays distinguishable from a real low score.
func Predict(g types.Group, history []types.AssemblyRecord, weights *types.NeuralWeights) types.Prediction {
	recs := groupHistory(history, g.Number)
	if len(recs) < minHistoryRecords {
		return types.Prediction{
			Label:      "Análise indisponível",
			Forecast:   fmt.Sprintf("Histórico insuficiente para o grupo %s: são necessárias ao menos %d assembleias registradas.", g.Number, minHistoryRecords),
			Disclaimer: Disclaimer,
		}
	}

	trend := ClassifyTrend(recs)
	suggested := SuggestBid(recs, trend)

	p := types.Prediction{
		Available:       true,
		Trend:           trend,
		SuggestedBidPct: round1(suggested),
		Disclaimer:      Disclaimer,
	}

	if weights != nil {
		if score, err := Forward(*weights, networkInputs(g, suggested)); err == nil {
			p.Score = score
		}
	}

	switch {
	case suggested < 45 || (suggested < 55 && trend == TrendFalling):
		p.Opportunity = true
		p.Label = LabelOpportunity
	case suggested > 65:
		p.Label = LabelHighCompetition
	default:
		p.Label = LabelNeutral
	}

	p.Forecast = forecastSentence(g.Number, trend, p.SuggestedBidPct)
	return p
}

// ClassifyTrend compares the mean of the 3 most recent lowest-free-bid
// percentages against the mean of the prior 3. Records must be the group's
// own history; order does not matter.
func ClassifyTrend(recs []types.AssemblyRecord) string {
	sorted := sortedByDateDesc(recs)

	lowest := make([]float64, len(sorted))
	for i, r := range sorted {
		lowest[i] = r.LowestFreeBidPct
	}

	if len(lowest) < 4 {
		return TrendStable
	}
	recent := stat.Mean(lowest[:3], nil)
	prior := stat.Mean(lowest[3:min(6, len(lowest))], nil)

	diff := recent - prior
	switch {
	case diff > trendThreshold:
		return TrendRising
	case diff < -trendThreshold:
		return TrendFalling
	default:
		return TrendStable
	}
}

// SuggestBid predicts the bid percentage likely to contemplate: the
// historical average lowest free bid, nudged up when the trend is rising.
// When no lowest-bid figures exist it falls back to 90% of the average
// free-bid mean.
func SuggestBid(recs []types.AssemblyRecord, trend string) float64 {
	var lowest, avg []float64
	for _, r := range recs {
		if r.LowestFreeBidPct > 0 {
			lowest = append(lowest, r.LowestFreeBidPct)
		}
		if r.AvgFreeBidPct > 0 {
			avg = append(avg, r.AvgFreeBidPct)
		}
	}

	if len(lowest) == 0 {
		if len(avg) == 0 {
			return 0
		}
		return 0.9 * stat.Mean(avg, nil)
	}

	suggested := stat.Mean(lowest, nil)
	if trend == TrendRising {
		suggested += 1.0
	}
	return suggested
}

func forecastSentence(groupNumber, trend string, suggested float64) string {
	var movement string
	switch trend {
	case TrendRising:
		movement = "em alta"
	case TrendFalling:
		movement = "em queda"
	default:
		movement = "estáveis"
	}
	return fmt.Sprintf("Lances do grupo %s %s: a projeção indica contemplação com lance em torno de %.1f%%.", groupNumber, movement, suggested)
}

func groupHistory(history []types.AssemblyRecord, number string) []types.AssemblyRecord {
	var recs []types.AssemblyRecord
	for _, r := range history {
		if r.GroupNumber == number {
			recs = append(recs, r)
		}
	}
	return recs
}

func sortedByDateDesc(recs []types.AssemblyRecord) []types.AssemblyRecord {
	sorted := make([]types.AssemblyRecord, len(recs))
	copy(sorted, recs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	return sorted
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
