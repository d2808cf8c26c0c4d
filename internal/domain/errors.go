package domain

import "errors"

var (
	// ErrIngestFailed is returned when both the color pipeline and the
	// heuristic fallback pipeline fail. It is the only error the engine
	// surfaces to callers; everything below it is recovered internally.
	ErrIngestFailed = errors.New("price list could not be ingested")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheUnavailable is returned when cache service is unavailable
	ErrCacheUnavailable = errors.New("cache service unavailable")

	// ErrConverterFailure is returned when the currency conversion API fails
	ErrConverterFailure = errors.New("currency conversion request failed")

	// ErrUnsupportedCurrency is returned for conversion to an unknown code
	ErrUnsupportedCurrency = errors.New("unsupported currency code")
)
