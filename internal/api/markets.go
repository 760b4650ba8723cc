package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// GetMarketBySlug fetches the first market matching slug. The lookup is a
// single request; every failure is returned to the caller as an error that
// FailureKind can classify.
func (c *Client) GetMarketBySlug(ctx context.Context, slug string) (*Market, error) {
	query := url.Values{}
	query.Set("slug", slug)

	body, err := c.doRequest(ctx, http.MethodGet, "/markets", query)
	if err != nil {
		return nil, fmt.Errorf("get market %s: %w", slug, err)
	}

	markets, err := decodeMarkets(body)
	if err != nil {
		return nil, fmt.Errorf("get market %s: %w", slug, err)
	}
	if len(markets) == 0 {
		return nil, fmt.Errorf("get market %s: %w", slug, ErrNoMarket)
	}

	c.logger.Debug("market found",
		"slug", slug,
		"id", markets[0].ID,
		"tokens", len(markets[0].OutcomeTokens()),
	)

	return &markets[0], nil
}

// decodeMarkets accepts either a bare JSON array of markets or an object
// wrapping the array in a "data" field.
func decodeMarkets(body []byte) ([]Market, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrMalformedBody)
	}

	switch trimmed[0] {
	case '[':
		var markets []Market
		if err := json.Unmarshal(trimmed, &markets); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
		}
		return markets, nil
	case '{':
		var page MarketsResponse
		if err := json.Unmarshal(trimmed, &page); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
		}
		if page.Data == nil {
			return nil, fmt.Errorf("%w: object without data array", ErrMalformedBody)
		}
		return *page.Data, nil
	default:
		return nil, fmt.Errorf("%w: unexpected json %q", ErrMalformedBody, trimmed[0])
	}
}
