package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/macrolens/maxprotein/internal/domain"
)

// Catalog holds the food records loaded from a FoodSource.
// It can be reloaded while readers are active.
type Catalog struct {
	source domain.FoodSource

	mu         sync.RWMutex
	foods      []domain.Food
	loaded     bool
	generation uint64
	loadedAt   time.Time
}

// NewCatalog creates an empty catalog backed by source
func NewCatalog(source domain.FoodSource) *Catalog {
	return &Catalog{source: source}
}

// Load (re)reads every food from the source and returns how many were loaded.
// On failure the previously loaded foods stay in place.
func (c *Catalog) Load(ctx context.Context) (int, error) {
	foods, err := c.source.LoadFoods(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, err)
	}

	c.mu.Lock()
	c.foods = foods
	c.loaded = true
	c.generation++
	c.loadedAt = time.Now()
	c.mu.Unlock()

	slog.Info("catalog loaded", "foods", len(foods))
	return len(foods), nil
}

// Foods returns the loaded foods in source order. The slice is shared and
// must be treated as read-only.
func (c *Catalog) Foods() ([]domain.Food, error) {
	foods, _, err := c.snapshot()
	return foods, err
}

// snapshot returns the foods together with the generation they belong to
func (c *Catalog) snapshot() ([]domain.Food, uint64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.loaded {
		return nil, 0, domain.ErrCatalogUnavailable
	}
	return c.foods, c.generation, nil
}

// Size returns the number of loaded foods
func (c *Catalog) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.foods)
}

// LoadedAt returns when the catalog was last loaded; zero if never
func (c *Catalog) LoadedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadedAt
}
