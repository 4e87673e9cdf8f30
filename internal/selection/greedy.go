package selection

import "github.com/macrolens/maxprotein/internal/domain"

// Greedy approximates the maximum-protein subset of candidates that fits in
// totalKcal.
//
// Each round takes the remaining food with the strictly greatest protein
// (the earliest one on ties) out of the pool. It is kept if it fits the
// remaining budget and dropped for good otherwise, even if later rounds
// would have left room for it. That rule makes the result deterministic
// and is also why it can lose to Exhaustive.
func Greedy(candidates []domain.Food, totalKcal int) []domain.Food {
	todo := make([]domain.Food, len(candidates))
	copy(todo, candidates)

	result := make([]domain.Food, 0)
	remaining := totalKcal

	for len(todo) > 0 {
		best := 0
		for i := 1; i < len(todo); i++ {
			if todo[i].ProteinG() > todo[best].ProteinG() {
				best = i
			}
		}

		food := todo[best]
		todo = append(todo[:best], todo[best+1:]...)

		if food.Kcal() <= remaining {
			result = append(result, food)
			remaining -= food.Kcal()
		}
	}

	return result
}
