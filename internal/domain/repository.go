package domain

import (
	"context"
	"time"
)

// FoodSource loads the full food catalog from an external source
type FoodSource interface {
	LoadFoods(ctx context.Context) ([]Food, error)
}

// FoodStore persists a food catalog
type FoodStore interface {
	FoodSource
	SaveFoods(ctx context.Context, foods []Food) error
	Count(ctx context.Context) (int, error)
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (any, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// USDAClient defines the interface for interacting with USDA FoodData Central API
type USDAClient interface {
	SearchFoods(ctx context.Context, query string) (*USDASearchResponse, error)
}
