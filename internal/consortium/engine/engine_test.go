package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alessandroaun/SimuladorConsorcio-sub000/internal/consortium/types"
)

func standardTable() types.PriceTable {
	return types.PriceTable{
		ID:             "T60",
		Plan:           types.PlanNormal,
		AdminRate:      0.17,
		ReserveRate:    0.02,
		InsuranceRate:  0.0006,
		MaxEmbeddedBid: 0.25,
	}
}

func TestValidate(t *testing.T) {
	table := standardTable()

	tests := []struct {
		name    string
		input   types.SimulationInput
		wantErr error
	}{
		{
			name:    "valid input",
			input:   types.SimulationInput{Credit: 130000, TermMonths: 60, PocketBid: 30000},
			wantErr: nil,
		},
		{
			name:    "embedded bid above table maximum",
			input:   types.SimulationInput{Credit: 130000, EmbeddedBid: 0.30},
			wantErr: ErrEmbeddedBidTooHigh,
		},
		{
			name:    "embedded bid checked before credit",
			input:   types.SimulationInput{Credit: 0, EmbeddedBid: 0.30},
			wantErr: ErrEmbeddedBidTooHigh,
		},
		{
			name:    "zero credit",
			input:   types.SimulationInput{Credit: 0},
			wantErr: ErrInvalidCredit,
		},
		{
			name:    "negative credit",
			input:   types.SimulationInput{Credit: -1000},
			wantErr: ErrInvalidCredit,
		},
		{
			name:    "pocket bid equal to credit",
			input:   types.SimulationInput{Credit: 100000, PocketBid: 100000},
			wantErr: ErrBidExceedsCredit,
		},
		{
			name:    "combined bids reach credit",
			input:   types.SimulationInput{Credit: 100000, EmbeddedBid: 0.25, PocketBid: 70000, TradeInValue: 5000},
			wantErr: ErrBidExceedsCredit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.input, table)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCalculateFees(t *testing.T) {
	in := types.SimulationInput{
		Credit:           130000,
		TermMonths:       60,
		IncludeInsurance: true,
		AdhesionRate:     0.012,
	}

	result := Calculate(in, standardTable(), 2682.32)

	assert.Equal(t, 22100.0, result.AdminFee)
	assert.Equal(t, 2600.0, result.ReserveFee)
	assert.Equal(t, 78.0, result.MonthlyInsurance)
	assert.Equal(t, 1560.0, result.AdhesionFee)
	assert.Equal(t, 4242.32, result.FirstPayment)
	assert.Equal(t, 159380.0, result.TotalCost)
	assert.Equal(t, 2682.32, result.StandardInstallment)
}

func TestCalculateBidComposition(t *testing.T) {
	in := types.SimulationInput{
		Credit:       100000,
		TermMonths:   60,
		EmbeddedBid:  0.25,
		PocketBid:    10000,
		TradeInValue: 5000,
	}

	result := Calculate(in, standardTable(), 1800)

	assert.Equal(t, 25000.0, result.EmbeddedBidValue)
	assert.Equal(t, 40000.0, result.TotalBid)
	assert.Equal(t, 70000.0, result.NetCredit)
}

func TestCalculateReducedPlanInstallment(t *testing.T) {
	table := standardTable()
	table.Plan = types.PlanLight

	in := types.SimulationInput{Credit: 100000, TermMonths: 50}
	result := Calculate(in, table, 1500)

	// LIGHT delivers 75% upfront; the remaining 25% is amortized over
	// the full term after the award.
	assert.Equal(t, 1500.0, result.BaseInstallment)
	assert.Equal(t, 2000.0, result.StandardInstallment)
}

func TestCalculateScenarioTermReduction(t *testing.T) {
	in := types.SimulationInput{
		Credit:             130000,
		TermMonths:         60,
		ContemplationMonth: 1,
	}

	result := Calculate(in, standardTable(), 2682.32)

	require.Len(t, result.Scenarios, 5)
	first := result.Scenarios[0]
	assert.Equal(t, 1, first.Month)
	assert.Equal(t, "Red. Prazo (100%)", first.Allocation)
	assert.Equal(t, 2682.32, first.Installment)
	assert.InDelta(t, 59.0, first.RemainingTerm, 0.001)

	for i, s := range result.Scenarios {
		assert.Equal(t, i+1, s.Month)
	}
}

func TestCalculateScenarioFullSettlement(t *testing.T) {
	in := types.SimulationInput{
		Credit:             130000,
		TermMonths:         60,
		PocketBid:          158300,
		ContemplationMonth: 1,
	}

	result := Calculate(in, standardTable(), 2682.32)

	require.NotEmpty(t, result.Scenarios)
	first := result.Scenarios[0]
	assert.Equal(t, "Quitado", first.Allocation)
	assert.Zero(t, first.Installment)
	assert.Zero(t, first.RemainingTerm)
}

func TestCalculateScenarioInstallmentFloor(t *testing.T) {
	in := types.SimulationInput{
		Credit:             130000,
		TermMonths:         60,
		PocketBid:          80000,
		BidAllocation:      100,
		ContemplationMonth: 1,
	}

	result := Calculate(in, standardTable(), 2682.32)

	require.NotEmpty(t, result.Scenarios)
	first := result.Scenarios[0]
	// Desired installment of 1326.39 violates the 40% reduction cap, so
	// the floor of 0.60 * 2682.32 wins and the excess shortens the term.
	assert.Equal(t, "Max Red. Parcela (40%)", first.Allocation)
	assert.Equal(t, 1609.39, first.Installment)
	assert.InDelta(t, 48.63, first.RemainingTerm, 0.01)
}

func TestCalculateScenarioPartialAllocation(t *testing.T) {
	in := types.SimulationInput{
		Credit:             130000,
		TermMonths:         60,
		PocketBid:          20000,
		BidAllocation:      50,
		ContemplationMonth: 10,
	}

	result := Calculate(in, standardTable(), 2682.32)

	require.NotEmpty(t, result.Scenarios)
	first := result.Scenarios[0]
	assert.Equal(t, 10, first.Month)
	assert.Equal(t, "Red. Parcela (50%)", first.Allocation)
	assert.Equal(t, 2482.32, first.Installment)
	assert.InDelta(t, 45.97, first.RemainingTerm, 0.01)
}

func TestCalculateScenariosStopAtTermEnd(t *testing.T) {
	in := types.SimulationInput{
		Credit:             130000,
		TermMonths:         60,
		ContemplationMonth: 58,
	}

	result := Calculate(in, standardTable(), 2682.32)

	require.Len(t, result.Scenarios, 3)
	assert.Equal(t, 58, result.Scenarios[0].Month)
	assert.Equal(t, 60, result.Scenarios[2].Month)
	// Award in the final month leaves no balance to repay.
	assert.Equal(t, "Quitado", result.Scenarios[2].Allocation)
}

func TestCalculateDefaultsContemplationMonth(t *testing.T) {
	in := types.SimulationInput{Credit: 130000, TermMonths: 60}

	result := Calculate(in, standardTable(), 2682.32)

	require.NotEmpty(t, result.Scenarios)
	assert.Equal(t, 1, result.Scenarios[0].Month)
}

func TestInstallmentNeverBelowFloor(t *testing.T) {
	table := standardTable()
	base := 2682.32
	floor := 0.60 * base

	for _, bid := range []float64{10000, 50000, 90000, 120000} {
		in := types.SimulationInput{
			Credit:             130000,
			TermMonths:         60,
			PocketBid:          bid,
			BidAllocation:      100,
			ContemplationMonth: 1,
		}
		result := Calculate(in, table, base)
		for _, s := range result.Scenarios {
			if s.Allocation == "Quitado" {
				continue
			}
			assert.GreaterOrEqual(t, s.Installment, round2(floor),
				"bid %.0f month %d", bid, s.Month)
		}
	}
}
