package match

import (
	"strconv"

	"github.com/alessandroaun/SimuladorConsorcio-sub000/internal/consortium/intent"
	"github.com/alessandroaun/SimuladorConsorcio-sub000/internal/consortium/types"
)

// claims is the result of disambiguating the interpreter's number pool.
// Each claim step removes the value it consumed before the next step runs,
// so a number never feeds two fields.
type claims struct {
	pool        []float64
	groupNumber string
	credit      float64
	termMonths  int
	bidPct      float64
	bidValue    float64
	installment float64
}

const (
	creditClaimMinimum   = 1000
	installmentClaimCeil = 5000
)

// resolveClaims runs the ordered claim pipeline: group, percentage bid,
// term, credit, standalone bid, installment.
func resolveClaims(q intent.Result, groups []types.Group) claims {
	c := claims{pool: append([]float64(nil), q.Numbers...)}
	c.claimGroup(q, groups)
	c.claimBidPercent(q)
	c.claimTerm(q)
	c.claimCredit(q)
	c.claimStandaloneBid(q)
	c.claimInstallment(q)
	return c
}

// claimGroup takes an explicit "grupo N" phrase, or failing that a bare
// number that matches an existing group identifier.
func (c *claims) claimGroup(q intent.Result, groups []types.Group) {
	if q.GroupNumber != "" {
		c.groupNumber = q.GroupNumber
		if v, err := strconv.ParseFloat(q.GroupNumber, 64); err == nil {
			c.take(v)
		}
		return
	}
	for _, v := range c.pool {
		number := strconv.FormatFloat(v, 'f', 0, 64)
		for _, g := range groups {
			if g.Number == number {
				c.groupNumber = number
				c.take(v)
				return
			}
		}
	}
}

// claimBidPercent prefers a percentage-shaped bid over a money-shaped one.
func (c *claims) claimBidPercent(q intent.Result) {
	if q.Percent > 0 && q.Percent <= 100 {
		c.bidPct = q.Percent
		c.take(q.Percent)
	}
}

func (c *claims) claimTerm(q intent.Result) {
	if q.TermMonths > 0 {
		c.termMonths = q.TermMonths
		c.take(float64(q.TermMonths))
	}
}

// claimCredit takes the explicit "crédito/carta/bem N" literal when present,
// otherwise the largest remaining number above the credit threshold. A lone
// remaining number under a bid intent without credit context is left for
// claimStandaloneBid instead.
func (c *claims) claimCredit(q intent.Result) {
	if q.CreditValue > 0 {
		c.credit = q.CreditValue
		c.take(q.CreditValue)
		return
	}
	if len(c.pool) == 1 && q.Flags.Bid && !q.Flags.Credit {
		return
	}
	largest := 0.0
	for _, v := range c.pool {
		if v >= creditClaimMinimum && v > largest {
			largest = v
		}
	}
	if largest > 0 {
		c.credit = largest
		c.take(largest)
	}
}

func (c *claims) claimStandaloneBid(q intent.Result) {
	if c.bidPct > 0 || c.bidValue > 0 {
		return
	}
	if len(c.pool) == 1 && q.Flags.Bid && !q.Flags.Credit {
		c.bidValue = c.pool[0]
		c.take(c.pool[0])
	}
}

// claimInstallment takes a leftover small number only under an explicit
// installment intent.
func (c *claims) claimInstallment(q intent.Result) {
	if !q.Flags.Installment {
		return
	}
	for _, v := range c.pool {
		if v > 0 && v < installmentClaimCeil {
			c.installment = v
			c.take(v)
			return
		}
	}
}

// take removes one instance of v from the pool.
func (c *claims) take(v float64) {
	for i, p := range c.pool {
		if p == v {
			c.pool = append(c.pool[:i], c.pool[i+1:]...)
			return
		}
	}
}
