package selection

import "github.com/macrolens/maxprotein/internal/domain"

// Sum returns the total kilocalories and protein grams of foods.
func Sum(foods []domain.Food) (kcal, proteinG int) {
	for _, food := range foods {
		kcal += food.Kcal()
		proteinG += food.ProteinG()
	}
	return kcal, proteinG
}
