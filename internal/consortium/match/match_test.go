package match

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alessandroaun/SimuladorConsorcio-sub000/internal/consortium/intent"
	"github.com/alessandroaun/SimuladorConsorcio-sub000/internal/consortium/types"
)

var testNow = time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)

func testGroups() []types.Group {
	return []types.Group{
		{
			Number:             "1503",
			Species:            types.SpeciesProperty,
			Vacancies:          5,
			CreditMin:          100000,
			CreditMax:          300000,
			MaxTermMonths:      220,
			AcceptsFixedBid:    true,
			AcceptsEmbeddedBid: true,
			Plans:              []types.PlanVariant{types.PlanLight},
		},
		{
			Number:             "2011",
			Species:            types.SpeciesAuto,
			Vacancies:          8,
			CreditMin:          150000,
			CreditMax:          250000,
			MaxTermMonths:      200,
			AcceptsEmbeddedBid: true,
			Plans:              []types.PlanVariant{types.PlanLight, types.PlanSuperLight},
		},
		{
			Number:        "809",
			Species:       types.SpeciesMotorcycle,
			Vacancies:     2,
			CreditMin:     10000,
			CreditMax:     30000,
			MaxTermMonths: 80,
		},
	}
}

func record(group string, monthsAgo int, contemplated int, lowest, avg float64) types.AssemblyRecord {
	return types.AssemblyRecord{
		GroupNumber:      group,
		Date:             testNow.AddDate(0, -monthsAgo, 0),
		Contemplated:     contemplated,
		FixedBidCount:    contemplated / 2,
		FreeBidCount:     contemplated - contemplated/2,
		AvgFreeBidPct:    avg,
		LowestFreeBidPct: lowest,
	}
}

func testHistory() []types.AssemblyRecord {
	return []types.AssemblyRecord{
		record("809", 1, 2, 30, 40),
		record("809", 2, 1, 32, 41),
		record("809", 3, 1, 31, 39),
		record("2011", 1, 1, 50, 60),
		record("2011", 2, 1, 52, 61),
	}
}

func search(query string, opts ...func(*Input)) []types.Group {
	in := Input{
		Query:   intent.Extract(query),
		Groups:  testGroups(),
		History: testHistory(),
		Now:     testNow,
	}
	for _, opt := range opts {
		opt(&in)
	}
	return Search(in)
}

func TestSearchScoredBranchExactTerm(t *testing.T) {
	results := search("grupo 2011 crédito 200000 prazo 200")

	require.Len(t, results, 1)
	assert.Equal(t, "2011", results[0].Number)
	assert.Equal(t, 70.0, results[0].Score)
	assert.Contains(t, results[0].MatchDetails, "Prazo exato de 200 meses")
}

func TestSearchDirectHit(t *testing.T) {
	results := search("grupo 809")

	require.Len(t, results, 1)
	assert.Equal(t, "809", results[0].Number)
	assert.Equal(t, 80.0, results[0].Score)
}

func TestSearchResultLookup(t *testing.T) {
	results := search("como foi o último resultado do grupo 809")

	require.Len(t, results, 1)
	g := results[0]
	assert.Equal(t, "809", g.Number)
	assert.Equal(t, 999.0, g.Score)
	require.NotNil(t, g.LastResult)
	assert.Equal(t, testNow.AddDate(0, -1, 0), g.LastResult.Date)
	assert.Equal(t, 2, g.LastResult.Contemplated)
}

func TestSearchResultLookupWithoutHistory(t *testing.T) {
	results := search("como foi o último resultado do grupo 1503")

	require.Len(t, results, 1)
	assert.Nil(t, results[0].LastResult)
	assert.Contains(t, results[0].MatchDetails, "Grupo sem resultados de assembleia registrados")
}

func TestSearchLeaderboardContemplations(t *testing.T) {
	results := search("quantas contemplações nos últimos 3 meses")

	// 1503 has no history inside the window and is excluded.
	require.Len(t, results, 2)
	assert.Equal(t, "809", results[0].Number)
	assert.Equal(t, 4.0, results[0].Score)
	assert.Equal(t, "2011", results[1].Number)
	assert.Equal(t, 2.0, results[1].Score)
}

func TestSearchLeaderboardLowestFreeBid(t *testing.T) {
	results := search("qual grupo tem o menor lance livre")

	require.Len(t, results, 2)
	// Lower average lowest bid ranks first.
	assert.Equal(t, "809", results[0].Number)
	assert.InDelta(t, 100-31.0, results[0].Score, 0.001)
	assert.Equal(t, "2011", results[1].Number)
	assert.InDelta(t, 100-51.0, results[1].Score, 0.001)
}

func TestSearchFinancialMatch(t *testing.T) {
	financial := []types.FinancialEntry{
		{TableID: "TA", Plan: types.PlanLight, Credit: 200000, TermMonths: 180, Installment: 1500},
		{TableID: "TB", Plan: types.PlanNormal, Credit: 200000, TermMonths: 180, Installment: 1499.5},
		{TableID: "TC", Plan: types.PlanNormal, Credit: 120000, TermMonths: 180, Installment: 1300},
	}

	results := search("quero crédito de 200000 com parcela de 1500", func(in *Input) {
		in.Financial = financial
	})

	// TA and TB tie within tolerance; NORMAL wins the tie. Both groups
	// covering the credit at 180 months carry the match.
	require.Len(t, results, 2)
	assert.Equal(t, "1503", results[0].Number)
	assert.Equal(t, "2011", results[1].Number)
	for _, g := range results {
		assert.Equal(t, 90.0, g.Score)
		require.Len(t, g.MatchDetails, 1)
		assert.Contains(t, g.MatchDetails[0], "TB")
		assert.Contains(t, g.MatchDetails[0], "NORMAL")
	}
}

func TestSearchStandaloneBidCoversBar(t *testing.T) {
	results := search("consigo contemplar com lance de 30 em um carro")

	// Pocket 30% plus the 25% embedded boost clears 2011's 51% bar.
	require.Len(t, results, 1)
	assert.Equal(t, "2011", results[0].Number)
	assert.Equal(t, 30.0, results[0].Score)
	require.Len(t, results[0].MatchDetails, 1)
	assert.Contains(t, results[0].MatchDetails[0], "lance embutido")
}

func TestSearchStandaloneBidNearBar(t *testing.T) {
	results := search("consigo contemplar com lance de 25 em uma moto")

	// 25% against a 31% bar is a shortfall within 10 points.
	require.Len(t, results, 1)
	assert.Equal(t, "809", results[0].Number)
	assert.Equal(t, 10.0, results[0].Score)
}

func TestSearchStandaloneBidExcluded(t *testing.T) {
	results := search("consigo contemplar com lance de 20 em uma moto")

	// 20% against a 31% bar, no embedded boost: shortfall above the limit.
	assert.Empty(t, results)
}

func TestSearchNoMatchesIsEmptyNotError(t *testing.T) {
	results := search("crédito de 900000 para moto")
	assert.Empty(t, results)
}

func TestSearchPlanExclusions(t *testing.T) {
	results := search("grupos com plano super light e vagas")

	require.Len(t, results, 1)
	assert.Equal(t, "2011", results[0].Number)
}

func TestSearchAnnotatesPredictions(t *testing.T) {
	weights := &types.NeuralWeights{
		Hidden1: types.NeuralLayer{Weights: [][]float64{{0, 0, 0}, {0, 0, 0}}, Bias: []float64{0, 0}},
		Hidden2: types.NeuralLayer{Weights: [][]float64{{0, 0}, {0, 0}}, Bias: []float64{0, 0}},
		Output:  types.NeuralLayer{Weights: [][]float64{{0, 0}}, Bias: []float64{0}},
	}

	results := search("grupo 809", func(in *Input) { in.Weights = weights })

	require.Len(t, results, 1)
	require.NotNil(t, results[0].Prediction)
	assert.True(t, results[0].Prediction.Available)
	assert.InDelta(t, 0.5, results[0].Prediction.Score, 0.001)
}

func TestSearchRankingIsOrderedAndCapped(t *testing.T) {
	groups := make([]types.Group, 0, 15)
	for _, n := range []string{"101", "102", "103", "104", "105", "106", "107", "108", "109", "110", "111", "112", "113", "114", "115"} {
		groups = append(groups, types.Group{
			Number:        n,
			Species:       types.SpeciesAuto,
			CreditMin:     50000,
			CreditMax:     150000,
			MaxTermMonths: 100,
			Vacancies:     1,
		})
	}

	results := Search(Input{
		Query:  intent.Extract("crédito de 100000 em 80 meses"),
		Groups: groups,
		Now:    testNow,
	})

	require.Len(t, results, maxResults)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
		if results[i-1].Score == results[i].Score {
			assert.Less(t, results[i-1].Number, results[i].Number)
		}
	}
}

func TestHistoryWindow(t *testing.T) {
	history := []types.AssemblyRecord{
		record("809", 1, 1, 30, 40),
		record("809", 5, 1, 32, 41),
		record("809", 9, 1, 35, 44),
	}

	t.Run("lookback cutoff", func(t *testing.T) {
		window := historyWindow(history, testNow, 6, false)
		assert.Len(t, window, 2)
	})

	t.Run("last assembly only", func(t *testing.T) {
		window := historyWindow(history, testNow, 1, true)
		require.Len(t, window, 1)
		assert.Equal(t, testNow.AddDate(0, -1, 0), window[0].Date)
	})

	t.Run("zero reference falls back to newest record", func(t *testing.T) {
		window := historyWindow(history, time.Time{}, 6, false)
		assert.Len(t, window, 2)
	})
}
