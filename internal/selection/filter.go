package selection

import "github.com/macrolens/maxprotein/internal/domain"

// Filter returns, in source order, the first limit foods whose calories fall
// in (minKcal, maxKcal]. Its purpose is to keep the input to Exhaustive
// small; with minKcal >= 0 it also drops zero-calorie foods.
func Filter(source []domain.Food, minKcal, maxKcal, limit int) []domain.Food {
	result := make([]domain.Food, 0, min(max(limit, 0), len(source)))
	if limit <= 0 {
		return result
	}

	for _, food := range source {
		if food.Kcal() > minKcal && food.Kcal() <= maxKcal {
			result = append(result, food)
			if len(result) == limit {
				break
			}
		}
	}
	return result
}
