// Package api provides the Polymarket Gamma API client used to look up the
// current hourly market.
//
// REST endpoint:
//   - Production: https://gamma-api.polymarket.com
//
// Only GET /markets?slug=<slug> is used. A lookup is a single request with no
// retry; the caller polls again on its next cycle.
package api
