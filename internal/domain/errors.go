package domain

import "errors"

var (
	// ErrInvalidFood is returned when a food violates its field invariants
	ErrInvalidFood = errors.New("invalid food")

	// ErrTooManyCandidates is returned when exhaustive search is given 64 or more candidates
	ErrTooManyCandidates = errors.New("too many candidates for exhaustive search")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrMalformedSource is returned when a food data source cannot be parsed at all
	ErrMalformedSource = errors.New("malformed food data source")

	// ErrCatalogUnavailable is returned when the food catalog has not been loaded
	ErrCatalogUnavailable = errors.New("food catalog unavailable")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrProductNotFound is returned when a query matches nothing in the USDA database
	ErrProductNotFound = errors.New("product not found in USDA database")

	// ErrUSDAAPIFailure is returned when USDA API request fails
	ErrUSDAAPIFailure = errors.New("USDA API request failed")
)
