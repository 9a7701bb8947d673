package types

import "time"

// Species identifies the asset category of a consortium group.
type Species string

const (
	SpeciesMotorcycle Species = "MOT"
	SpeciesAuto       Species = "AUT"
	SpeciesProperty   Species = "IMV"
	SpeciesService    Species = "SRV"
)

// PlanVariant is the credit-delivery plan of a price table. Reduced plans
// deliver a fraction of the credit upfront in exchange for a lower
// installment, recomposed after contemplation.
type PlanVariant string

const (
	PlanNormal     PlanVariant = "NORMAL"
	PlanLight      PlanVariant = "LIGHT"
	PlanSuperLight PlanVariant = "SUPERLIGHT"
)

// Factor returns the fraction of the credit delivered upfront.
func (p PlanVariant) Factor() float64 {
	switch p {
	case PlanLight:
		return 0.75
	case PlanSuperLight:
		return 0.50
	default:
		return 1.0
	}
}

// Priority orders plans for tie-breaking; lower wins.
func (p PlanVariant) Priority() int {
	switch p {
	case PlanNormal:
		return 0
	case PlanLight:
		return 1
	case PlanSuperLight:
		return 2
	default:
		return 3
	}
}

// PriceTable is the immutable pricing reference for a group of quotas,
// looked up by identifier in the master-data catalog.
type PriceTable struct {
	ID             string      `json:"id"`
	Plan           PlanVariant `json:"plan"`
	AdminRate      float64     `json:"admin_rate"`
	ReserveRate    float64     `json:"reserve_rate"`
	InsuranceRate  float64     `json:"insurance_rate"`
	MaxEmbeddedBid float64     `json:"max_embedded_bid"`
}

// SimulationInput carries the parameters of one simulation request.
// EmbeddedBid is a fraction of the credit, BidAllocation is the percentage
// of the bid directed to installment reduction (0 means full term reduction).
type SimulationInput struct {
	TableID            string  `json:"table_id"`
	Credit             float64 `json:"credit"`
	TermMonths         int     `json:"term_months"`
	IncludeInsurance   bool    `json:"include_insurance"`
	PocketBid          float64 `json:"pocket_bid"`
	EmbeddedBid        float64 `json:"embedded_bid"`
	TradeInValue       float64 `json:"trade_in_value"`
	AdhesionRate       float64 `json:"adhesion_rate"`
	BidAllocation      float64 `json:"bid_allocation"`
	ContemplationMonth int     `json:"contemplation_month"`
}

// ContemplationScenario projects the contract state right after an award at
// a given month. RemainingTerm may be fractional.
type ContemplationScenario struct {
	Month         int     `json:"month"`
	Installment   float64 `json:"installment"`
	RemainingTerm float64 `json:"remaining_term"`
	Allocation    string  `json:"allocation"`
}

// SimulationResult is immutable once computed.
type SimulationResult struct {
	AdminFee            float64                 `json:"admin_fee"`
	ReserveFee          float64                 `json:"reserve_fee"`
	MonthlyInsurance    float64                 `json:"monthly_insurance"`
	AdhesionFee         float64                 `json:"adhesion_fee"`
	EmbeddedBidValue    float64                 `json:"embedded_bid_value"`
	TotalBid            float64                 `json:"total_bid"`
	NetCredit           float64                 `json:"net_credit"`
	BaseInstallment     float64                 `json:"base_installment"`
	StandardInstallment float64                 `json:"standard_installment"`
	FirstPayment        float64                 `json:"first_payment"`
	TotalCost           float64                 `json:"total_cost"`
	Scenarios           []ContemplationScenario `json:"scenarios"`
}

// Group is a snapshot of an active consortium group. MatchDetails, Score,
// LastResult and Prediction are annotations attached during matching only,
// never written back to the catalog.
type Group struct {
	Number             string        `json:"number"`
	Species            Species       `json:"species"`
	Vacancies          int           `json:"vacancies"`
	CreditMin          float64       `json:"credit_min"`
	CreditMax          float64       `json:"credit_max"`
	MaxTermMonths      int           `json:"max_term_months"`
	NextAssembly       time.Time     `json:"next_assembly"`
	AcceptsFixedBid    bool          `json:"accepts_fixed_bid"`
	AcceptsEmbeddedBid bool          `json:"accepts_embedded_bid"`
	Plans              []PlanVariant `json:"plans"`

	Score        float64         `json:"score,omitempty"`
	MatchDetails []string        `json:"matchDetails,omitempty"`
	LastResult   *AssemblyRecord `json:"lastResult,omitempty"`
	Prediction   *Prediction     `json:"aiPrediction,omitempty"`
}

// AcceptsPlan reports whether the group admits quotas under the plan.
// Every group admits NORMAL.
func (g Group) AcceptsPlan(p PlanVariant) bool {
	if p == PlanNormal {
		return true
	}
	for _, v := range g.Plans {
		if v == p {
			return true
		}
	}
	return false
}

// CreditMidpoint is the reference credit used when a query names a bid but
// no credit.
func (g Group) CreditMidpoint() float64 {
	if g.CreditMax <= 0 {
		return g.CreditMin
	}
	return (g.CreditMin + g.CreditMax) / 2
}

// AssemblyRecord is one historical per-group per-month assembly outcome.
type AssemblyRecord struct {
	GroupNumber      string    `json:"group_number"`
	Date             time.Time `json:"date"`
	Contemplated     int       `json:"contemplated"`
	FixedBidCount    int       `json:"fixed_bid_count"`
	FreeBidCount     int       `json:"free_bid_count"`
	AvgFreeBidPct    float64   `json:"avg_free_bid_pct"`
	LowestFreeBidPct float64   `json:"lowest_free_bid_pct"`
}

// NeuralLayer is one dense layer of the contemplation-opportunity model.
// Weights is row-major: one row per neuron, one column per input.
type NeuralLayer struct {
	Weights [][]float64 `json:"weights"`
	Bias    []float64   `json:"bias"`
}

// NeuralWeights holds the externally trained model. Frozen for the lifetime
// of the engine; no training happens here.
type NeuralWeights struct {
	Hidden1 NeuralLayer `json:"hidden1"`
	Hidden2 NeuralLayer `json:"hidden2"`
	Output  NeuralLayer `json:"output"`
}

// Prediction is the OpportunityScorer output for one group. Available is
// false when the group has fewer than 3 history records; in that case the
// numeric fields carry no signal.
type Prediction struct {
	Available       bool    `json:"available"`
	Score           float64 `json:"score"`
	Trend           string  `json:"trend"`
	SuggestedBidPct float64 `json:"suggested_bid_pct"`
	Opportunity     bool    `json:"opportunity"`
	Label           string  `json:"label"`
	Forecast        string  `json:"forecast"`
	Disclaimer      string  `json:"disclaimer"`
}

// FinancialEntry is one row of the financial-table catalog: a credit, term
// and plan combination with its published installment.
type FinancialEntry struct {
	TableID     string      `json:"table_id"`
	Plan        PlanVariant `json:"plan"`
	Credit      float64     `json:"credit"`
	TermMonths  int         `json:"term_months"`
	Installment float64     `json:"installment"`
}
