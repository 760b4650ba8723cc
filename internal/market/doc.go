// Package market derives the identifier of the current hourly
// "Bitcoin Up or Down" market from wall-clock time.
//
// Identifiers look like bitcoin-up-or-down-october-14-3pm-et. The -et suffix
// is fixed; no time-zone conversion is done, so the process's local zone must
// be US Eastern for the slug to name the live market.
package market
