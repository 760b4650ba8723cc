package api

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// MarketsResponse is the wrapped form of GET /markets.
type MarketsResponse struct {
	Data *[]Market `json:"data"`
}

// Market represents a market record from the Gamma API.
type Market struct {
	ID       string `json:"id"`
	Slug     string `json:"slug"`
	Question string `json:"question"`
	Active   bool   `json:"active"`
	Closed   bool   `json:"closed"`

	// Per-outcome tokens, when the record carries them.
	Tokens []Token `json:"tokens"`

	// Gamma native outcome lists, double-encoded as JSON strings
	// (e.g. "[\"Up\", \"Down\"]" and "[\"0.52\", \"0.48\"]").
	Outcomes      StringList `json:"outcomes"`
	OutcomePrices StringList `json:"outcomePrices"`
}

// OutcomeTokens returns the market's tokens, building them from the
// outcomes/outcomePrices lists when no tokens are present.
func (m *Market) OutcomeTokens() []Token {
	if len(m.Tokens) > 0 {
		return m.Tokens
	}

	tokens := make([]Token, 0, len(m.Outcomes))
	for i, outcome := range m.Outcomes {
		t := Token{Outcome: outcome}
		if i < len(m.OutcomePrices) {
			t.Price = NewPrice(m.OutcomePrices[i])
		}
		tokens = append(tokens, t)
	}
	return tokens
}

// Token is one outcome of a market.
type Token struct {
	TokenID string `json:"token_id"`
	Outcome string `json:"outcome"`
	Price   Price  `json:"price"`

	// Top of book. Both naming conventions appear in the wild.
	BestBid      Price `json:"best_bid"`
	BestBidCamel Price `json:"bestBid"`
	BestAsk      Price `json:"best_ask"`
	BestAskCamel Price `json:"bestAsk"`

	// Book levels; only the first level is consulted.
	Bids []Level `json:"bids"`
	Asks []Level `json:"asks"`
}

// Level is a single book level.
type Level struct {
	Price Price  `json:"price"`
	Size  string `json:"size"`
}

// StringList decodes either a JSON array of strings or a string holding one.
// Anything else decodes to an empty list.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		data = []byte(s)
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		*l = nil
		return nil
	}
	*l = list
	return nil
}

// Price is a tolerant decimal field. It accepts a JSON string or number;
// null leaves it absent and an unparseable value leaves it present but
// invalid, so one bad field never rejects the whole record.
type Price struct {
	value   decimal.Decimal
	present bool
	valid   bool
}

var _ json.Unmarshaler = (*Price)(nil)

// NewPrice parses s as a decimal price.
func NewPrice(s string) Price {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Price{present: true}
	}
	return Price{value: d, present: true, valid: true}
}

func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*p = Price{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*p = NewPrice(s)
		return nil
	}

	*p = NewPrice(string(data))
	return nil
}

// Present reports whether the field was set to a non-null value.
func (p Price) Present() bool {
	return p.present
}

// Decimal returns the parsed value and whether it was parseable.
func (p Price) Decimal() (decimal.Decimal, bool) {
	return p.value, p.valid
}
