package domain

import "errors"

var (
	// ErrFarmNotFound is returned when a farm ID is not in the catalog
	ErrFarmNotFound = errors.New("farm not found in catalog")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheUnavailable is returned when cache service is unavailable
	ErrCacheUnavailable = errors.New("cache service unavailable")

	// ErrCatalogUnavailable is returned when the farm catalog cannot be loaded
	ErrCatalogUnavailable = errors.New("farm catalog unavailable")

	// ErrInvalidCatalog is returned when a catalog entry fails validation
	ErrInvalidCatalog = errors.New("invalid catalog entry")
)
