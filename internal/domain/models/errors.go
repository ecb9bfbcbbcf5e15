package models

import "errors"

// Pipeline error kinds. Mandatory-path failures propagate to the caller
// wrapped around one of these; best-effort paths log and degrade instead.
var (
	// ErrUpstreamUnavailable covers network failures, non-2xx responses and
	// timeouts from an external provider.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrSymbolNotFound means the provider confirmed there is no such symbol.
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrMalformedResponse means the provider returned 2xx but the expected
	// shape was missing.
	ErrMalformedResponse = errors.New("malformed provider response")

	// ErrInsufficientData means a forecast was requested with empty history.
	ErrInsufficientData = errors.New("insufficient data for forecast")

	// ErrCacheUnavailable means the symbol directory store is unreachable.
	ErrCacheUnavailable = errors.New("symbol directory unavailable")
)

// ErrorKind reports which pipeline kind err wraps, or "" if none.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrSymbolNotFound):
		return "symbol_not_found"
	case errors.Is(err, ErrUpstreamUnavailable):
		return "upstream_unavailable"
	case errors.Is(err, ErrMalformedResponse):
		return "malformed_response"
	case errors.Is(err, ErrInsufficientData):
		return "insufficient_data"
	case errors.Is(err, ErrCacheUnavailable):
		return "cache_unavailable"
	default:
		return ""
	}
}
