package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

var (
	// ErrNoMarket is returned when a lookup succeeds but matches nothing.
	ErrNoMarket = errors.New("no market found")

	// ErrMalformedBody is returned when the response is not a market list.
	ErrMalformedBody = errors.New("malformed response body")
)

// APIError represents a non-2xx response from the Gamma API.
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gamma api error %d: %s", e.StatusCode, e.Message)
}

// Failure tags why a lookup produced no market.
type Failure string

const (
	FailureNone      Failure = ""
	FailureNetwork   Failure = "network"
	FailureStatus    Failure = "status"
	FailureMalformed Failure = "malformed"
	FailureEmpty     Failure = "empty"
)

// FailureKind classifies an error returned by GetMarketBySlug. Anything that
// is not a status, body or empty-result error counts as a network failure.
func FailureKind(err error) Failure {
	if err == nil {
		return FailureNone
	}

	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
		return FailureStatus
	case errors.Is(err, ErrMalformedBody):
		return FailureMalformed
	case errors.Is(err, ErrNoMarket):
		return FailureEmpty
	default:
		return FailureNetwork
	}
}

// doRequest performs an HTTP request with the given method and path.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values) ([]byte, error) {
	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
			Body:       body,
		}
	}

	return body, nil
}
