// Package engine computes installment schedules and post-contemplation
// scenarios for consortium quota simulations.
package engine

import (
	"errors"
	"math"
	"strconv"

	"github.com/alessandroaun/SimuladorConsorcio-sub000/internal/consortium/types"
)

const (
	// A single bid may shrink the monthly payment by at most 40%.
	maxInstallmentReduction = 0.40

	maxScenarios = 5
)

var (
	ErrEmbeddedBidTooHigh = errors.New("lance embutido acima do máximo permitido pela tabela")
	ErrInvalidCredit      = errors.New("valor de crédito deve ser maior que zero")
	ErrBidExceedsCredit   = errors.New("soma dos lances deve ser menor que o crédito")
)

// Validate checks a simulation input against its price table. Checks run in
// a fixed order and the first violated rule is returned. Calculate must not
// be called with an input that fails validation.
func Validate(in types.SimulationInput, table types.PriceTable) error {
	if in.EmbeddedBid > table.MaxEmbeddedBid {
		return ErrEmbeddedBidTooHigh
	}
	if in.Credit <= 0 {
		return ErrInvalidCredit
	}
	totalBid := in.PocketBid + in.Credit*in.EmbeddedBid + in.TradeInValue
	if totalBid >= in.Credit {
		return ErrBidExceedsCredit
	}
	return nil
}

// Calculate produces the full simulation for a pre-validated input. The
// base installment comes from the financial-table catalog and already
// reflects the chosen plan's upfront credit.
func Calculate(in types.SimulationInput, table types.PriceTable, baseInstallment float64) types.SimulationResult {
	adminFee := in.Credit * table.AdminRate
	reserveFee := in.Credit * table.ReserveRate
	monthlyInsurance := 0.0
	if in.IncludeInsurance {
		monthlyInsurance = in.Credit * table.InsuranceRate
	}
	adhesionFee := in.Credit * in.AdhesionRate

	embeddedValue := in.Credit * in.EmbeddedBid
	totalBid := in.PocketBid + embeddedValue + in.TradeInValue
	netCredit := in.Credit - embeddedValue - in.TradeInValue

	// For reduced plans the standard post-award installment carries the
	// amortized cost of restoring the full credit.
	standardInstallment := baseInstallment
	if factor := table.Plan.Factor(); factor < 1.0 {
		standardInstallment = baseInstallment + (in.Credit*(1-factor))/float64(in.TermMonths)
	}

	result := types.SimulationResult{
		AdminFee:            round2(adminFee),
		ReserveFee:          round2(reserveFee),
		MonthlyInsurance:    round2(monthlyInsurance),
		AdhesionFee:         round2(adhesionFee),
		EmbeddedBidValue:    round2(embeddedValue),
		TotalBid:            round2(totalBid),
		NetCredit:           round2(netCredit),
		BaseInstallment:     round2(baseInstallment),
		StandardInstallment: round2(standardInstallment),
		FirstPayment:        round2(baseInstallment + adhesionFee),
		TotalCost:           round2(netCredit + adminFee + reserveFee + monthlyInsurance*float64(in.TermMonths)),
	}

	startMonth := in.ContemplationMonth
	if startMonth < 1 {
		startMonth = 1
	}
	for i := 0; i < maxScenarios; i++ {
		month := startMonth + i
		if month > in.TermMonths {
			break
		}
		result.Scenarios = append(result.Scenarios,
			projectScenario(month, in.TermMonths, standardInstallment, totalBid, in.BidAllocation))
	}
	return result
}

// projectScenario applies the bid at the given award month. The bid always
// retires outstanding balance in full; the allocation intent only shapes how
// the remaining debt is repaid, split between installment and term.
func projectScenario(month, termMonths int, installment, totalBid, allocation float64) types.ContemplationScenario {
	remainingTerm := float64(termMonths - month)
	balance := installment * remainingTerm
	reduced := balance - totalBid

	if reduced <= 0 || remainingTerm == 0 {
		return types.ContemplationScenario{Month: month, Allocation: "Quitado"}
	}

	desired := installment - (totalBid*allocation/100)/remainingTerm
	floor := (1 - maxInstallmentReduction) * installment

	newInstallment := desired
	label := "Red. Prazo (100%)"
	switch {
	case desired < floor:
		newInstallment = floor
		label = "Max Red. Parcela (40%)"
	case allocation > 0:
		label = "Red. Parcela (" + formatPct(allocation) + ")"
	}

	if newInstallment <= 0 {
		return types.ContemplationScenario{Month: month, Allocation: "Quitado"}
	}

	return types.ContemplationScenario{
		Month:         month,
		Installment:   round2(newInstallment),
		RemainingTerm: reduced / newInstallment,
		Allocation:    label,
	}
}

func formatPct(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
