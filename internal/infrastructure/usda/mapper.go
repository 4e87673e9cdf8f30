package usda

import (
	"fmt"
	"math"

	"github.com/macrolens/maxprotein/internal/domain"
)

// USDA Nutrient IDs used for selection
const (
	NutrientIDEnergy  = 1008 // Calories (kcal)
	NutrientIDProtein = 1003 // Protein (g)
)

// FoodData Central reports nutrients per 100 g
const (
	servingAmount = "100 g"
	servingGrams  = 100
)

// MapToFood converts a USDA search hit into a domain Food for one 100 g serving.
// Foods without an energy value cannot be budgeted and are rejected.
func MapToFood(usdaFood *domain.USDAFood) (domain.Food, error) {
	kcal, ok := findNutrientValue(usdaFood.Nutrients, NutrientIDEnergy)
	if !ok {
		return domain.Food{}, fmt.Errorf("%w: fdc %d has no energy value", domain.ErrInvalidFood, usdaFood.FdcID)
	}
	protein, _ := findNutrientValue(usdaFood.Nutrients, NutrientIDProtein)

	return domain.NewFood(
		usdaFood.Description,
		servingAmount,
		servingGrams,
		int(math.Round(kcal)),
		int(math.Round(protein)),
	)
}

// findNutrientValue finds a specific nutrient value by ID
func findNutrientValue(nutrients []domain.USDANutrient, nutrientID int) (float64, bool) {
	for _, nutrient := range nutrients {
		if nutrient.NutrientID == nutrientID {
			return nutrient.Value, true
		}
	}
	return 0, false
}
