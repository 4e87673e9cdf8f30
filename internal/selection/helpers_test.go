package selection

import (
	"fmt"
	"math/rand/v2"

	"github.com/macrolens/maxprotein/internal/domain"
)

// food builds a test food with the given calories and protein
func food(name string, kcal, proteinG int) domain.Food {
	return domain.MustNewFood(name, "100 g", 100, kcal, proteinG)
}

// scenarioFoods is the three-item example where greedy is suboptimal
func scenarioFoods() []domain.Food {
	return []domain.Food{
		food("item1", 200, 20),
		food("item2", 300, 25),
		food("item3", 150, 10),
	}
}

// randomFoods returns n foods with reproducible pseudo-random values
func randomFoods(seed uint64, n int) []domain.Food {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	foods := make([]domain.Food, n)
	for i := range foods {
		foods[i] = food(fmt.Sprintf("food-%d", i), 1+rng.IntN(600), rng.IntN(40))
	}
	return foods
}
