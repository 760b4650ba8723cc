package oracle

import (
	"github.com/shopspring/decimal"

	"github.com/rickgao/software-oracle/internal/api"
)

// Payload is the message broadcast to subscribers every cycle.
type Payload struct {
	ProbUp   float64 `json:"prob_up"`   // Percent, [1, 99]
	ProbDown float64 `json:"prob_down"` // 100 - ProbUp
	TS       int64   `json:"ts"`        // Unix milliseconds
}

// Quote holds the resolved price of each side, if any.
type Quote struct {
	Up   decimal.NullDecimal
	Down decimal.NullDecimal
}

// QuoteFromMarket resolves the up and down prices of a market.
func QuoteFromMarket(m *api.Market) Quote {
	var q Quote
	if m == nil {
		return q
	}

	up, down := api.ParseTokens(m.OutcomeTokens())
	if p, ok := api.TokenPrice(up); ok {
		q.Up = decimal.NullDecimal{Decimal: p, Valid: true}
	}
	if p, ok := api.TokenPrice(down); ok {
		q.Down = decimal.NullDecimal{Decimal: p, Valid: true}
	}
	return q
}

// upPrice returns the up-side price when it lies in (0, 1].
func (q *Quote) upPrice() (float64, bool) {
	if q == nil || !q.Up.Valid {
		return 0, false
	}
	p := q.Up.Decimal.InexactFloat64()
	if p <= 0 || p > 1 {
		return 0, false
	}
	return p, true
}

// Basis records what an estimate was derived from.
type Basis string

const (
	BasisMarket  Basis = "market"
	BasisNeutral Basis = "neutral"
)
