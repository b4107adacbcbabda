package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// CatalogRepository provides read-only access to the farm catalog
type CatalogRepository interface {
	List(ctx context.Context) ([]Farm, error)
	GetByID(ctx context.Context, id string) (*Farm, error)
}

// CatalogSource fetches raw farm data from a file or a remote service
type CatalogSource interface {
	FetchFarms(ctx context.Context) ([]Farm, error)
}
