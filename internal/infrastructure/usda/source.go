package usda

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/macrolens/maxprotein/internal/domain"
)

// QuerySource builds a food catalog from a fixed list of FoodData Central searches
type QuerySource struct {
	client  domain.USDAClient
	queries []string
}

// NewQuerySource creates a QuerySource that runs each query in order
func NewQuerySource(client domain.USDAClient, queries []string) *QuerySource {
	return &QuerySource{client: client, queries: queries}
}

// LoadFoods implements domain.FoodSource. Results keep query order; a food
// returned by several queries is kept once, and hits that cannot be mapped
// are skipped. A query with no results is not an error.
func (s *QuerySource) LoadFoods(ctx context.Context) ([]domain.Food, error) {
	seen := make(map[int]bool)
	foods := make([]domain.Food, 0)

	for _, query := range s.queries {
		resp, err := s.client.SearchFoods(ctx, query)
		if errors.Is(err, domain.ErrProductNotFound) {
			slog.Warn("usda query matched nothing", "query", query)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("query %q: %w", query, err)
		}

		for i := range resp.Foods {
			hit := &resp.Foods[i]
			if seen[hit.FdcID] {
				continue
			}
			seen[hit.FdcID] = true

			food, err := MapToFood(hit)
			if err != nil {
				slog.Debug("skipping usda food", "fdcId", hit.FdcID, "error", err)
				continue
			}
			foods = append(foods, food)
		}
	}

	slog.Info("loaded USDA catalog", "queries", len(s.queries), "foods", len(foods))
	return foods, nil
}
