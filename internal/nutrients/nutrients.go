package nutrients

import "math"

// Profile holds macronutrient amounts in grams.
// Depending on context the values are either per 100 g of a product
// or an absolute total for an item/meal/day; the caller tracks which.
type Profile struct {
	Proteins      float64 `json:"proteins"`
	Fats          float64 `json:"fats"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fiber         float64 `json:"fiber"`
}

// Scale converts a per-100g calorie value and nutrient profile to the
// absolute values for amountGrams of the product.
// Calories are rounded half-up to the nearest integer, each nutrient
// component to one decimal place. A zero Fiber stays zero.
//
// Scale performs no validation; callers reject non-positive amounts
// before reaching it.
func Scale(p Profile, caloriesPer100g, amountGrams float64) (int, Profile) {
	ratio := amountGrams / 100

	scaled := Profile{
		Proteins:      roundTenth(p.Proteins * ratio),
		Fats:          roundTenth(p.Fats * ratio),
		Carbohydrates: roundTenth(p.Carbohydrates * ratio),
		Fiber:         roundTenth(p.Fiber * ratio),
	}

	return int(math.Round(caloriesPer100g * ratio)), scaled
}

// Sum adds profiles component-wise. An empty slice yields a zero profile.
// No rounding is applied: sums are exact additions of already-rounded
// per-item values, so totals may drift from a from-scratch recomputation
// over raw grams. That drift is accepted behavior.
func Sum(profiles []Profile) Profile {
	var total Profile
	for _, p := range profiles {
		total.Proteins += p.Proteins
		total.Fats += p.Fats
		total.Carbohydrates += p.Carbohydrates
		total.Fiber += p.Fiber
	}
	return total
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
