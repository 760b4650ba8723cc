package api

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Outcome keywords, matched as substrings of the lower-cased outcome label.
var (
	upKeywords   = []string{"up", "yes", "higher"}
	downKeywords = []string{"down", "no", "lower"}
)

var two = decimal.NewFromInt(2)

// ParseTokens picks the up and down sides of a market. Each side is the first
// token whose outcome matches one of its keywords; later matches are ignored.
// Either side may be nil.
func ParseTokens(tokens []Token) (up, down *Token) {
	for i := range tokens {
		outcome := strings.ToLower(tokens[i].Outcome)
		if up == nil && containsAny(outcome, upKeywords) {
			up = &tokens[i]
		}
		if down == nil && containsAny(outcome, downKeywords) {
			down = &tokens[i]
		}
	}
	return up, down
}

// TokenPrice extracts a token's implied probability. A parseable direct price
// wins; otherwise the bid/ask midpoint is used when both are positive.
func TokenPrice(t *Token) (decimal.Decimal, bool) {
	if t == nil {
		return decimal.Decimal{}, false
	}

	if p, ok := t.Price.Decimal(); ok {
		return p, true
	}

	bid, bidOK := firstPresent(t.BestBid, t.BestBidCamel, topLevel(t.Bids)).Decimal()
	ask, askOK := firstPresent(t.BestAsk, t.BestAskCamel, topLevel(t.Asks)).Decimal()
	if !bidOK || !askOK || !bid.IsPositive() || !ask.IsPositive() {
		return decimal.Decimal{}, false
	}

	return bid.Add(ask).Div(two), true
}

// firstPresent returns the first non-null candidate, valid or not.
func firstPresent(candidates ...Price) Price {
	for _, p := range candidates {
		if p.Present() {
			return p
		}
	}
	return Price{}
}

func topLevel(levels []Level) Price {
	if len(levels) == 0 {
		return Price{}
	}
	return levels[0].Price
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
